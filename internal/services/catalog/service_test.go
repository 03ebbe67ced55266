package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"comanda-system/internal/logger"
	"comanda-system/internal/models"
)

func newTestService() (*Service, *MemoryStore) {
	store := NewMemoryStore()
	return NewService(store, logger.New("catalog-test")), store
}

func TestAddProduct(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	product, err := svc.AddProduct(ctx, 1, "Pizza Marguerita", decimal.RequireFromString("45.00"), "req")
	if err != nil {
		t.Fatalf("AddProduct failed: %v", err)
	}
	if product.ID == 0 {
		t.Error("expected product id to be assigned")
	}

	// Names are not unique: the same dish can be added twice.
	if _, err := svc.AddProduct(ctx, 1, "Pizza Marguerita", decimal.RequireFromString("45.00"), "req"); err != nil {
		t.Fatalf("duplicate name should be allowed: %v", err)
	}

	products, err := svc.ListProducts(ctx, 1)
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(products) != 2 {
		t.Errorf("expected 2 products, got %d", len(products))
	}
}

func TestAddProduct_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.AddProduct(ctx, 1, "", decimal.RequireFromString("10.00"), "req"); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := svc.AddProduct(ctx, 1, "Suco", decimal.RequireFromString("-1.00"), "req"); err == nil {
		t.Error("expected error for negative price")
	}
	if _, err := svc.AddProduct(ctx, 1, "Agua", decimal.Zero, "req"); err != nil {
		t.Errorf("zero price should be allowed: %v", err)
	}
}

func TestListProducts_TenantScoping(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.AddProduct(ctx, 1, "Pizza", decimal.RequireFromString("45.00"), "req"); err != nil {
		t.Fatalf("AddProduct failed: %v", err)
	}
	if _, err := svc.AddProduct(ctx, 2, "Sushi", decimal.RequireFromString("30.00"), "req"); err != nil {
		t.Fatalf("AddProduct failed: %v", err)
	}

	products, err := svc.ListProducts(ctx, 1)
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Pizza" {
		t.Errorf("expected only tenant 1 products, got %+v", products)
	}
}

func TestUpdatePrice(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	product, err := svc.AddProduct(ctx, 1, "Suco", decimal.RequireFromString("10.00"), "req")
	if err != nil {
		t.Fatalf("AddProduct failed: %v", err)
	}

	if err := svc.UpdatePrice(ctx, 1, product.ID, decimal.RequireFromString("12.50")); err != nil {
		t.Fatalf("UpdatePrice failed: %v", err)
	}
	if err := svc.UpdatePrice(ctx, 1, product.ID, decimal.RequireFromString("-1.00")); err == nil {
		t.Error("expected error for negative price")
	}

	products, err := svc.ListProducts(ctx, 1)
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if products[0].Price.StringFixed(2) != "12.50" {
		t.Errorf("expected price 12.50, got %s", products[0].Price.StringFixed(2))
	}
}

func TestResetDemoData(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// Something stale from a previous demo run.
	if _, err := svc.AddProduct(ctx, 1, "Velho Prato", decimal.RequireFromString("1.00"), "req"); err != nil {
		t.Fatalf("AddProduct failed: %v", err)
	}

	err := svc.ResetDemoData(ctx, 1, models.DemoTenantName, models.DefaultDemoSeed(), "req")
	if err != nil {
		t.Fatalf("ResetDemoData failed: %v", err)
	}

	products, err := svc.ListProducts(ctx, 1)
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 seeded products, got %d", len(products))
	}
	if products[0].Name != "Pizza Marguerita" || products[0].Price.StringFixed(2) != "45.00" {
		t.Errorf("unexpected first seed product: %+v", products[0])
	}
	for _, p := range products {
		if p.Name == "Velho Prato" {
			t.Error("expected stale product to be wiped by reset")
		}
	}
}
