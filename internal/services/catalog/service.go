package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"comanda-system/internal/logger"
	"comanda-system/internal/models"
)

// Service provides tenant-scoped catalog management
type Service struct {
	store  Store
	logger *logger.Logger
}

// NewService creates a new catalog service
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: log,
	}
}

// ListProducts returns the tenant's menu
func (s *Service) ListProducts(ctx context.Context, tenantID int64) ([]models.Product, error) {
	return s.store.ListProducts(ctx, tenantID)
}

// AddProduct adds one catalog entry. The price must be non-negative; there
// is no uniqueness constraint on the name.
func (s *Service) AddProduct(ctx context.Context, tenantID int64, name string, price decimal.Decimal, requestID string) (*models.Product, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative")
	}

	product := &models.Product{
		TenantID: tenantID,
		Name:     name,
		Price:    price,
	}
	if err := s.store.InsertProduct(ctx, product); err != nil {
		s.logger.Error("product_insert_failed", "Failed to add product", requestID, err, map[string]interface{}{
			"company_id": tenantID,
			"name":       name,
		})
		return nil, err
	}

	s.logger.Debug("product_added", fmt.Sprintf("Added product %s", name), requestID, map[string]interface{}{
		"company_id": tenantID,
		"product_id": product.ID,
		"price":      price.StringFixed(2),
	})
	return product, nil
}

// UpdatePrice edits one catalog entry's price. Placed order lines keep the
// price they were ordered at.
func (s *Service) UpdatePrice(ctx context.Context, tenantID, productID int64, price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("price must not be negative")
	}
	return s.store.UpdateProductPrice(ctx, tenantID, productID, price)
}

// ResetDemoData wipes the tenant's catalog and loads the seed. Demo
// bootstrap only: this is the single destructive operation in the system.
func (s *Service) ResetDemoData(ctx context.Context, tenantID int64, name string, seed []models.SeedItem, requestID string) error {
	if err := s.store.EnsureTenant(ctx, tenantID, name); err != nil {
		return err
	}
	if err := s.store.ReplaceProducts(ctx, tenantID, seed); err != nil {
		s.logger.Error("demo_reset_failed", "Failed to reset demo data", requestID, err, map[string]interface{}{
			"company_id": tenantID,
		})
		return err
	}

	s.logger.Info("demo_reset", fmt.Sprintf("Seeded %d products for company %d", len(seed), tenantID), requestID, map[string]interface{}{
		"company_id": tenantID,
		"seed_count": len(seed),
	})
	return nil
}
