package ordering

import (
	"context"
	"errors"

	"comanda-system/internal/models"
)

// ErrProductNotFound is returned when an order references a product that
// does not exist under the tenant.
var ErrProductNotFound = errors.New("product not found")

// Store is the order ledger persistence boundary. Lines are append-only:
// the only mutation is the bulk pending -> settled transition.
type Store interface {
	// GetProduct resolves a catalog entry under the tenant.
	GetProduct(ctx context.Context, tenantID, productID int64) (*models.Product, error)

	// InsertLine appends one pending line and fills in ID and CreatedAt.
	InsertLine(ctx context.Context, line *models.OrderLine) error

	// ListPending returns all pending lines of the tenant in insertion order.
	ListPending(ctx context.Context, tenantID int64) ([]models.OrderLine, error)

	// ListPendingForTable returns the pending lines of one table in insertion order.
	ListPendingForTable(ctx context.Context, tenantID int64, tableID string) ([]models.OrderLine, error)

	// SettlePending marks every pending line of the table as settled and
	// returns the number of rows updated.
	SettlePending(ctx context.Context, tenantID int64, tableID string) (int64, error)
}
