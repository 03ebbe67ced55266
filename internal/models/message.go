package models

import (
	"time"
)

// Event names carried in tab event messages
const (
	EventLinePlaced   = "line_placed"
	EventTableSettled = "table_settled"
)

// Routing keys on the tab events exchange
const (
	RoutingKeyLinePlaced   = "tab.placed"
	RoutingKeyTableSettled = "tab.settled"
)

// TabEventMessage is the envelope published for every tab state change
type TabEventMessage struct {
	Event       string    `json:"event"`
	TenantID    int64     `json:"company_id"`
	TableID     string    `json:"mesa"`
	ProductName string    `json:"product_name,omitempty"`
	UnitPrice   string    `json:"price,omitempty"`
	LineCount   int64     `json:"line_count,omitempty"`
	Total       string    `json:"total,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewLinePlacedMessage builds the event published after a line is appended
func NewLinePlacedMessage(line *OrderLine, total string) *TabEventMessage {
	return &TabEventMessage{
		Event:       EventLinePlaced,
		TenantID:    line.TenantID,
		TableID:     line.TableID,
		ProductName: line.ProductName,
		UnitPrice:   line.UnitPrice.StringFixed(2),
		Total:       total,
		Timestamp:   time.Now().UTC(),
	}
}

// NewTableSettledMessage builds the event published after a table is settled
func NewTableSettledMessage(tenantID int64, tableID string, lineCount int64, total string) *TabEventMessage {
	return &TabEventMessage{
		Event:     EventTableSettled,
		TenantID:  tenantID,
		TableID:   tableID,
		LineCount: lineCount,
		Total:     total,
		Timestamp: time.Now().UTC(),
	}
}

// RoutingKey returns the routing key for the event on the tab events exchange
func (m *TabEventMessage) RoutingKey() string {
	if m.Event == EventTableSettled {
		return RoutingKeyTableSettled
	}
	return RoutingKeyLinePlaced
}
