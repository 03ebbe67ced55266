package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"comanda-system/internal/database"
	"comanda-system/internal/models"
)

// Repository is the PostgreSQL implementation of Store
type Repository struct {
	db *database.DB
}

var _ Store = (*Repository)(nil)

// NewRepository creates a catalog repository backed by PostgreSQL
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// ListProducts returns the tenant's catalog in insertion order
func (r *Repository) ListProducts(ctx context.Context, tenantID int64) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, database.ListProductsSQL, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var product models.Product
		var price string

		err := rows.Scan(&product.ID, &product.TenantID, &product.Name, &price)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		product.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("failed to parse product price: %w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// InsertProduct adds a catalog entry and fills in its ID
func (r *Repository) InsertProduct(ctx context.Context, product *models.Product) error {
	err := r.db.QueryRow(ctx, database.InsertProductSQL,
		product.TenantID, product.Name, product.Price.StringFixed(2)).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// UpdateProductPrice edits one catalog entry's price
func (r *Repository) UpdateProductPrice(ctx context.Context, tenantID, productID int64, price decimal.Decimal) error {
	_, err := r.db.Exec(ctx, database.UpdateProductPriceSQL, tenantID, productID, price.StringFixed(2))
	if err != nil {
		return fmt.Errorf("failed to update product price: %w", err)
	}
	return nil
}

// ReplaceProducts deletes the tenant's catalog and inserts the seed
func (r *Repository) ReplaceProducts(ctx context.Context, tenantID int64, seed []models.SeedItem) error {
	if _, err := r.db.Exec(ctx, database.DeleteProductsSQL, tenantID); err != nil {
		return fmt.Errorf("failed to delete products: %w", err)
	}
	for _, item := range seed {
		var id int64
		err := r.db.QueryRow(ctx, database.InsertProductSQL,
			tenantID, item.Name, item.Price.StringFixed(2)).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert seed product %s: %w", item.Name, err)
		}
	}
	return nil
}

// EnsureTenant creates or renames the tenant row
func (r *Repository) EnsureTenant(ctx context.Context, tenantID int64, name string) error {
	_, err := r.db.Exec(ctx, database.UpsertCompanySQL, tenantID, name)
	if err != nil {
		return fmt.Errorf("failed to upsert company: %w", err)
	}
	return nil
}
