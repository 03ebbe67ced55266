package ordering

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"comanda-system/internal/logger"
	"comanda-system/internal/messaging"
	"comanda-system/internal/models"
)

// Service enforces the order lifecycle: lines are appended as pending and
// leave the tab only through the bulk settle transition.
type Service struct {
	store     Store
	publisher messaging.TabEventPublisher
	logger    *logger.Logger
}

// NewService creates a new ordering service. The publisher may be nil when
// event fan-out is not wanted (tests, one-shot tools).
func NewService(store Store, publisher messaging.TabEventPublisher, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		logger:    log,
	}
}

// SettleResult reports the outcome of settling one table
type SettleResult struct {
	SettledCount int64           `json:"settled_count"`
	Total        decimal.Decimal `json:"-"`
	Receipt      string          `json:"receipt,omitempty"`
}

// PlaceOrder appends one pending line for the table. The product's name and
// price are copied onto the line, so later catalog edits do not change open
// or historical tabs. Repeated calls append repeated lines: there is no
// idempotency key, one tap is one line.
func (s *Service) PlaceOrder(ctx context.Context, tenantID int64, tableID string, productID int64, requestID string) (*models.OrderLine, error) {
	if err := models.ValidateTableID(tableID); err != nil {
		return nil, err
	}

	product, err := s.store.GetProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	line := &models.OrderLine{
		TenantID:    tenantID,
		TableID:     tableID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Status:      models.StatusPending,
	}
	if err := s.store.InsertLine(ctx, line); err != nil {
		s.logger.Error("line_insert_failed", "Failed to append order line", requestID, err, map[string]interface{}{
			"company_id": tenantID,
			"mesa":       tableID,
			"product_id": productID,
		})
		return nil, err
	}

	s.logger.Debug("line_placed", fmt.Sprintf("Placed %s for table %s", line.ProductName, tableID), requestID, map[string]interface{}{
		"company_id": tenantID,
		"mesa":       tableID,
		"line_id":    line.ID,
	})

	s.publishEvent(ctx, models.NewLinePlacedMessage(line, s.runningTotal(ctx, tenantID, tableID)), requestID)
	return line, nil
}

// PendingByTable returns every pending line of the tenant grouped by table.
// Within a table, lines keep insertion order. The grouping is recomputed
// from the ledger on every call, never cached.
func (s *Service) PendingByTable(ctx context.Context, tenantID int64) (map[string][]models.OrderLine, error) {
	lines, err := s.store.ListPending(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	tables := make(map[string][]models.OrderLine)
	for _, line := range lines {
		tables[line.TableID] = append(tables[line.TableID], line)
	}
	return tables, nil
}

// TableTab returns the pending lines of one table, the customer's own view
func (s *Service) TableTab(ctx context.Context, tenantID int64, tableID string) ([]models.OrderLine, error) {
	if err := models.ValidateTableID(tableID); err != nil {
		return nil, err
	}
	return s.store.ListPendingForTable(ctx, tenantID, tableID)
}

// SettleTable transitions every pending line of the table to settled and
// renders the receipt. Settling a table with no pending lines updates zero
// rows and is not an error, so the operation is idempotent.
func (s *Service) SettleTable(ctx context.Context, tenantID int64, tableID string, requestID string) (*SettleResult, error) {
	if err := models.ValidateTableID(tableID); err != nil {
		return nil, err
	}

	// Snapshot the tab before the update so the receipt can be rendered.
	lines, err := s.store.ListPendingForTable(ctx, tenantID, tableID)
	if err != nil {
		return nil, err
	}
	total := TabTotal(lines)

	count, err := s.store.SettlePending(ctx, tenantID, tableID)
	if err != nil {
		s.logger.Error("settle_failed", "Failed to settle table", requestID, err, map[string]interface{}{
			"company_id": tenantID,
			"mesa":       tableID,
		})
		return nil, err
	}

	result := &SettleResult{
		SettledCount: count,
		Total:        total,
	}
	if count > 0 {
		result.Receipt = Receipt(tableID, lines, time.Now())
		s.publishEvent(ctx, models.NewTableSettledMessage(tenantID, tableID, count, total.StringFixed(2)), requestID)
	}

	s.logger.Info("table_settled", fmt.Sprintf("Settled table %s", tableID), requestID, map[string]interface{}{
		"company_id":    tenantID,
		"mesa":          tableID,
		"settled_count": count,
		"total":         total.StringFixed(2),
	})
	return result, nil
}

// TabTotal sums the unit prices of the supplied lines
func TabTotal(lines []models.OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitPrice)
	}
	return total
}

// runningTotal computes the table's open tab total for event payloads
func (s *Service) runningTotal(ctx context.Context, tenantID int64, tableID string) string {
	lines, err := s.store.ListPendingForTable(ctx, tenantID, tableID)
	if err != nil {
		return ""
	}
	return TabTotal(lines).StringFixed(2)
}

// publishEvent fans the event out to staff subscribers. Publishing is
// best-effort: the write already committed, so a broker failure is logged
// and not surfaced to the caller.
func (s *Service) publishEvent(ctx context.Context, msg *models.TabEventMessage, requestID string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTabEvent(ctx, msg); err != nil {
		s.logger.Error("event_publish_failed", "Failed to publish tab event", requestID, err, map[string]interface{}{
			"event": msg.Event,
			"mesa":  msg.TableID,
		})
	}
}
