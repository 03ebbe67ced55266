package ordering

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"comanda-system/internal/database"
	"comanda-system/internal/models"
)

// Repository is the PostgreSQL implementation of Store
type Repository struct {
	db *database.DB
}

var _ Store = (*Repository)(nil)

// NewRepository creates a ledger repository backed by PostgreSQL
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// GetProduct resolves a catalog entry under the tenant
func (r *Repository) GetProduct(ctx context.Context, tenantID, productID int64) (*models.Product, error) {
	var product models.Product
	var price string

	err := r.db.QueryRow(ctx, database.GetProductSQL, tenantID, productID).Scan(
		&product.ID,
		&product.TenantID,
		&product.Name,
		&price,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	product.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product price: %w", err)
	}
	return &product, nil
}

// InsertLine appends one line to the ledger
func (r *Repository) InsertLine(ctx context.Context, line *models.OrderLine) error {
	err := r.db.QueryRow(ctx, database.InsertOrderLineSQL,
		line.TenantID,
		line.TableID,
		line.ProductName,
		line.UnitPrice.StringFixed(2),
		string(line.Status),
	).Scan(&line.ID, &line.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order line: %w", err)
	}
	return nil
}

// ListPending returns all pending lines of the tenant in insertion order
func (r *Repository) ListPending(ctx context.Context, tenantID int64) ([]models.OrderLine, error) {
	rows, err := r.db.Query(ctx, database.ListPendingLinesSQL, tenantID, string(models.StatusPending))
	if err != nil {
		return nil, fmt.Errorf("failed to query pending lines: %w", err)
	}
	defer rows.Close()

	return scanLines(rows)
}

// ListPendingForTable returns the pending lines of one table in insertion order
func (r *Repository) ListPendingForTable(ctx context.Context, tenantID int64, tableID string) ([]models.OrderLine, error) {
	rows, err := r.db.Query(ctx, database.ListPendingLinesForTableSQL, tenantID, tableID, string(models.StatusPending))
	if err != nil {
		return nil, fmt.Errorf("failed to query pending lines for table: %w", err)
	}
	defer rows.Close()

	return scanLines(rows)
}

// SettlePending marks the table's pending lines as settled
func (r *Repository) SettlePending(ctx context.Context, tenantID int64, tableID string) (int64, error) {
	count, err := r.db.Exec(ctx, database.SettleTableSQL,
		tenantID, tableID, string(models.StatusSettled), string(models.StatusPending))
	if err != nil {
		return 0, fmt.Errorf("failed to settle table: %w", err)
	}
	return count, nil
}

// scanLines reads order line rows into models
func scanLines(rows pgx.Rows) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	for rows.Next() {
		var line models.OrderLine
		var price string
		var status string

		err := rows.Scan(
			&line.ID,
			&line.TenantID,
			&line.TableID,
			&line.ProductName,
			&price,
			&status,
			&line.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}

		line.UnitPrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("failed to parse line price: %w", err)
		}
		line.Status = models.LineStatus(status)
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
