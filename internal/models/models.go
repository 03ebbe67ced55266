package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineStatus represents the lifecycle status of an order line
type LineStatus string

const (
	StatusPending LineStatus = "pending"
	StatusSettled LineStatus = "settled"
)

// Tenant represents one establishment's isolated data scope
type Tenant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Product is a catalog entry scoped to a tenant
type Product struct {
	ID       int64           `json:"id"`
	TenantID int64           `json:"-"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
}

// OrderLine is one ordered item. product_name and price are copies taken
// at order time, so later catalog edits never touch an open tab. A line is
// immutable except for the single pending -> settled transition.
type OrderLine struct {
	ID          int64           `json:"id"`
	TenantID    int64           `json:"-"`
	TableID     string          `json:"mesa"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"price"`
	Status      LineStatus      `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SeedItem is one catalog entry of the demo bootstrap
type SeedItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// DemoTenantName is the establishment created by the demo seed
const DemoTenantName = "Restaurante Local"

// DefaultDemoSeed returns the sample catalog used by the demo bootstrap
func DefaultDemoSeed() []SeedItem {
	return []SeedItem{
		{Name: "Pizza Marguerita", Price: decimal.RequireFromString("45.00")},
		{Name: "Cerveja Lata", Price: decimal.RequireFromString("8.00")},
		{Name: "Suco Natural", Price: decimal.RequireFromString("10.00")},
	}
}
