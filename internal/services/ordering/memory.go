package ordering

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"comanda-system/internal/models"
)

// MemoryStore is an in-memory Store used by tests and local experiments.
// It mirrors the semantics of the PostgreSQL repository: ids are assigned
// in insertion order and settle only flips pending rows.
type MemoryStore struct {
	mu         sync.Mutex
	products   map[int64]models.Product
	lines      []models.OrderLine
	nextProdID int64
	nextLineID int64
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory ledger
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:   make(map[int64]models.Product),
		nextProdID: 1,
		nextLineID: 1,
	}
}

// AddProduct seeds a catalog entry and returns it
func (m *MemoryStore) AddProduct(tenantID int64, name string, price decimal.Decimal) models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()

	product := models.Product{
		ID:       m.nextProdID,
		TenantID: tenantID,
		Name:     name,
		Price:    price,
	}
	m.products[product.ID] = product
	m.nextProdID++
	return product
}

// SetProductPrice edits a seeded catalog entry in place
func (m *MemoryStore) SetProductPrice(productID int64, price decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if product, ok := m.products[productID]; ok {
		product.Price = price
		m.products[productID] = product
	}
}

// GetProduct resolves a seeded catalog entry under the tenant
func (m *MemoryStore) GetProduct(ctx context.Context, tenantID, productID int64) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	product, ok := m.products[productID]
	if !ok || product.TenantID != tenantID {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// InsertLine appends one line and assigns its id and timestamp
func (m *MemoryStore) InsertLine(ctx context.Context, line *models.OrderLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	line.ID = m.nextLineID
	line.CreatedAt = time.Now().UTC()
	m.nextLineID++
	m.lines = append(m.lines, *line)
	return nil
}

// ListPending returns all pending lines of the tenant in insertion order
func (m *MemoryStore) ListPending(ctx context.Context, tenantID int64) ([]models.OrderLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.OrderLine
	for _, line := range m.lines {
		if line.TenantID == tenantID && line.Status == models.StatusPending {
			out = append(out, line)
		}
	}
	return out, nil
}

// ListPendingForTable returns one table's pending lines in insertion order
func (m *MemoryStore) ListPendingForTable(ctx context.Context, tenantID int64, tableID string) ([]models.OrderLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.OrderLine
	for _, line := range m.lines {
		if line.TenantID == tenantID && line.TableID == tableID && line.Status == models.StatusPending {
			out = append(out, line)
		}
	}
	return out, nil
}

// SettlePending flips the table's pending lines to settled
func (m *MemoryStore) SettlePending(ctx context.Context, tenantID int64, tableID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for i := range m.lines {
		if m.lines[i].TenantID == tenantID && m.lines[i].TableID == tableID && m.lines[i].Status == models.StatusPending {
			m.lines[i].Status = models.StatusSettled
			count++
		}
	}
	return count, nil
}
