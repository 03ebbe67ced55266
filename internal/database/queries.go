package database

// Tenant queries
const (
	UpsertCompanySQL = `
		INSERT INTO companies (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`

	GetCompanySQL = `
		SELECT id, name, created_at
		FROM companies WHERE id = $1`
)

// Catalog queries
const (
	InsertProductSQL = `
		INSERT INTO products (company_id, name, price)
		VALUES ($1, $2, $3::numeric)
		RETURNING id`

	ListProductsSQL = `
		SELECT id, company_id, name, price::text
		FROM products
		WHERE company_id = $1
		ORDER BY id ASC`

	GetProductSQL = `
		SELECT id, company_id, name, price::text
		FROM products
		WHERE company_id = $1 AND id = $2`

	UpdateProductPriceSQL = `
		UPDATE products SET price = $3::numeric
		WHERE company_id = $1 AND id = $2`

	DeleteProductsSQL = `
		DELETE FROM products WHERE company_id = $1`
)

// Order ledger queries
const (
	InsertOrderLineSQL = `
		INSERT INTO orders (company_id, mesa, product_name, price, status)
		VALUES ($1, $2, $3, $4::numeric, $5)
		RETURNING id, created_at`

	ListPendingLinesSQL = `
		SELECT id, company_id, mesa, product_name, price::text, status, created_at
		FROM orders
		WHERE company_id = $1 AND status = $2
		ORDER BY id ASC`

	ListPendingLinesForTableSQL = `
		SELECT id, company_id, mesa, product_name, price::text, status, created_at
		FROM orders
		WHERE company_id = $1 AND mesa = $2 AND status = $3
		ORDER BY id ASC`

	SettleTableSQL = `
		UPDATE orders SET status = $3
		WHERE company_id = $1 AND mesa = $2 AND status = $4`
)
