package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"comanda-system/internal/models"
)

// Store is the catalog persistence boundary
type Store interface {
	// ListProducts returns the tenant's catalog in insertion order.
	ListProducts(ctx context.Context, tenantID int64) ([]models.Product, error)

	// InsertProduct adds a catalog entry and fills in its ID.
	InsertProduct(ctx context.Context, product *models.Product) error

	// UpdateProductPrice edits one catalog entry's price.
	UpdateProductPrice(ctx context.Context, tenantID, productID int64, price decimal.Decimal) error

	// ReplaceProducts deletes the tenant's catalog and inserts the seed.
	// The only destructive operation in the system, used by the demo bootstrap.
	ReplaceProducts(ctx context.Context, tenantID int64, seed []models.SeedItem) error

	// EnsureTenant creates or renames the tenant row.
	EnsureTenant(ctx context.Context, tenantID int64, name string) error
}
