package catalog

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"comanda-system/internal/models"
)

// MemoryStore is an in-memory Store used by tests
type MemoryStore struct {
	mu       sync.Mutex
	tenants  map[int64]string
	products []models.Product
	nextID   int64
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory catalog
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tenants: make(map[int64]string),
		nextID:  1,
	}
}

// ListProducts returns the tenant's catalog in insertion order
func (m *MemoryStore) ListProducts(ctx context.Context, tenantID int64) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Product
	for _, product := range m.products {
		if product.TenantID == tenantID {
			out = append(out, product)
		}
	}
	return out, nil
}

// InsertProduct adds a catalog entry and assigns its id
func (m *MemoryStore) InsertProduct(ctx context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	product.ID = m.nextID
	m.nextID++
	m.products = append(m.products, *product)
	return nil
}

// UpdateProductPrice edits one catalog entry's price
func (m *MemoryStore) UpdateProductPrice(ctx context.Context, tenantID, productID int64, price decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.products {
		if m.products[i].TenantID == tenantID && m.products[i].ID == productID {
			m.products[i].Price = price
		}
	}
	return nil
}

// ReplaceProducts deletes the tenant's catalog and inserts the seed
func (m *MemoryStore) ReplaceProducts(ctx context.Context, tenantID int64, seed []models.SeedItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var kept []models.Product
	for _, product := range m.products {
		if product.TenantID != tenantID {
			kept = append(kept, product)
		}
	}
	m.products = kept

	for _, item := range seed {
		m.products = append(m.products, models.Product{
			ID:       m.nextID,
			TenantID: tenantID,
			Name:     item.Name,
			Price:    item.Price,
		})
		m.nextID++
	}
	return nil
}

// EnsureTenant creates or renames the tenant row
func (m *MemoryStore) EnsureTenant(ctx context.Context, tenantID int64, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tenants[tenantID] = name
	return nil
}
