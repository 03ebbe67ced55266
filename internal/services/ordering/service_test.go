package ordering

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"comanda-system/internal/logger"
	"comanda-system/internal/models"
)

func newTestService() (*Service, *MemoryStore) {
	store := NewMemoryStore()
	return NewService(store, nil, logger.New("ordering-test")), store
}

func TestPlaceOrder_AppendsPendingLinesInOrder(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	pizza := store.AddProduct(1, "Pizza Marguerita", decimal.RequireFromString("45.00"))
	soda := store.AddProduct(1, "Cerveja Lata", decimal.RequireFromString("8.00"))

	placed := []int64{pizza.ID, soda.ID, pizza.ID}
	for _, id := range placed {
		if _, err := svc.PlaceOrder(ctx, 1, "5", id, "req"); err != nil {
			t.Fatalf("PlaceOrder(%d) failed: %v", id, err)
		}
	}

	tables, err := svc.PendingByTable(ctx, 1)
	if err != nil {
		t.Fatalf("PendingByTable failed: %v", err)
	}

	lines := tables["5"]
	if len(lines) != 3 {
		t.Fatalf("expected 3 pending lines, got %d", len(lines))
	}
	wantNames := []string{"Pizza Marguerita", "Cerveja Lata", "Pizza Marguerita"}
	for i, line := range lines {
		if line.ProductName != wantNames[i] {
			t.Errorf("line %d: expected %q, got %q", i, wantNames[i], line.ProductName)
		}
		if line.Status != models.StatusPending {
			t.Errorf("line %d: expected status pending, got %s", i, line.Status)
		}
		if i > 0 && lines[i].ID <= lines[i-1].ID {
			t.Errorf("lines out of insertion order: id %d after %d", lines[i].ID, lines[i-1].ID)
		}
	}
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.PlaceOrder(context.Background(), 1, "5", 99, "req")
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestPlaceOrder_EmptyTableID(t *testing.T) {
	svc, store := newTestService()
	product := store.AddProduct(1, "Suco Natural", decimal.RequireFromString("10.00"))

	if _, err := svc.PlaceOrder(context.Background(), 1, "", product.ID, "req"); err == nil {
		t.Fatal("expected error for empty table id")
	}
}

func TestPlaceOrder_TenantScoping(t *testing.T) {
	svc, store := newTestService()
	product := store.AddProduct(2, "Pizza Marguerita", decimal.RequireFromString("45.00"))

	// The product exists, but under another tenant.
	_, err := svc.PlaceOrder(context.Background(), 1, "5", product.ID, "req")
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound across tenants, got %v", err)
	}
}

func TestSettleTable_RemovesTableAndIsIdempotent(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	product := store.AddProduct(1, "Pizza Marguerita", decimal.RequireFromString("45.00"))
	if _, err := svc.PlaceOrder(ctx, 1, "5", product.ID, "req"); err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if _, err := svc.PlaceOrder(ctx, 1, "7", product.ID, "req"); err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	result, err := svc.SettleTable(ctx, 1, "5", "req")
	if err != nil {
		t.Fatalf("SettleTable failed: %v", err)
	}
	if result.SettledCount != 1 {
		t.Errorf("expected 1 settled line, got %d", result.SettledCount)
	}
	if result.Receipt == "" {
		t.Error("expected a receipt for a settled tab")
	}

	tables, err := svc.PendingByTable(ctx, 1)
	if err != nil {
		t.Fatalf("PendingByTable failed: %v", err)
	}
	if _, ok := tables["5"]; ok {
		t.Error("expected no entry for settled table 5")
	}
	if len(tables["7"]) != 1 {
		t.Errorf("expected table 7 untouched, got %d lines", len(tables["7"]))
	}

	// Settling again with no new lines updates nothing and does not error.
	again, err := svc.SettleTable(ctx, 1, "5", "req")
	if err != nil {
		t.Fatalf("second SettleTable failed: %v", err)
	}
	if again.SettledCount != 0 {
		t.Errorf("expected 0 settled lines on repeat, got %d", again.SettledCount)
	}
}

func TestTabTotal(t *testing.T) {
	if got := TabTotal(nil).StringFixed(2); got != "0.00" {
		t.Errorf("TabTotal(empty) = %s, want 0.00", got)
	}

	lines := []models.OrderLine{
		{UnitPrice: decimal.RequireFromString("10.00")},
		{UnitPrice: decimal.RequireFromString("8.50")},
	}
	if got := TabTotal(lines).StringFixed(2); got != "18.50" {
		t.Errorf("TabTotal = %s, want 18.50", got)
	}
}

func TestPlaceOrder_DenormalizedPriceSurvivesCatalogEdit(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	product := store.AddProduct(1, "Pizza Marguerita", decimal.RequireFromString("45.00"))
	if _, err := svc.PlaceOrder(ctx, 1, "5", product.ID, "req"); err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	// Raise the catalog price after the order was placed.
	store.SetProductPrice(product.ID, decimal.RequireFromString("60.00"))

	lines, err := svc.TableTab(ctx, 1, "5")
	if err != nil {
		t.Fatalf("TableTab failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if got := lines[0].UnitPrice.StringFixed(2); got != "45.00" {
		t.Errorf("expected recorded price 45.00 after catalog edit, got %s", got)
	}
}

func TestTabScenario(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	pizza := store.AddProduct(1, "Pizza", decimal.RequireFromString("45.00"))
	soda := store.AddProduct(1, "Soda", decimal.RequireFromString("8.00"))

	for _, id := range []int64{pizza.ID, soda.ID} {
		if _, err := svc.PlaceOrder(ctx, 1, "5", id, "req"); err != nil {
			t.Fatalf("PlaceOrder failed: %v", err)
		}
	}

	tables, err := svc.PendingByTable(ctx, 1)
	if err != nil {
		t.Fatalf("PendingByTable failed: %v", err)
	}
	if got := TabTotal(tables["5"]).StringFixed(2); got != "53.00" {
		t.Errorf("tab total = %s, want 53.00", got)
	}

	if _, err := svc.SettleTable(ctx, 1, "5", "req"); err != nil {
		t.Fatalf("SettleTable failed: %v", err)
	}

	tables, err = svc.PendingByTable(ctx, 1)
	if err != nil {
		t.Fatalf("PendingByTable failed: %v", err)
	}
	if _, ok := tables["5"]; ok {
		t.Error("expected table 5 to be gone after settling")
	}
}

// collectingPublisher records published events for assertions
type collectingPublisher struct {
	events []*models.TabEventMessage
}

func (p *collectingPublisher) PublishTabEvent(ctx context.Context, msg *models.TabEventMessage) error {
	p.events = append(p.events, msg)
	return nil
}

func TestEventsPublishedOnPlaceAndSettle(t *testing.T) {
	store := NewMemoryStore()
	pub := &collectingPublisher{}
	svc := NewService(store, pub, logger.New("ordering-test"))
	ctx := context.Background()

	product := store.AddProduct(1, "Pizza Marguerita", decimal.RequireFromString("45.00"))
	if _, err := svc.PlaceOrder(ctx, 1, "5", product.ID, "req"); err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if _, err := svc.SettleTable(ctx, 1, "5", "req"); err != nil {
		t.Fatalf("SettleTable failed: %v", err)
	}
	// An already-settled table publishes nothing.
	if _, err := svc.SettleTable(ctx, 1, "5", "req"); err != nil {
		t.Fatalf("repeat SettleTable failed: %v", err)
	}

	if len(pub.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(pub.events))
	}
	if pub.events[0].Event != models.EventLinePlaced {
		t.Errorf("first event = %s, want %s", pub.events[0].Event, models.EventLinePlaced)
	}
	if pub.events[1].Event != models.EventTableSettled {
		t.Errorf("second event = %s, want %s", pub.events[1].Event, models.EventTableSettled)
	}
	if pub.events[1].Total != "45.00" {
		t.Errorf("settled total = %s, want 45.00", pub.events[1].Total)
	}
}
