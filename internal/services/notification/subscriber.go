package notification

import (
	"context"
	"fmt"

	"comanda-system/internal/logger"
	"comanda-system/internal/messaging"
	"comanda-system/internal/models"
)

// Subscriber turns tab events into human-readable staff notifications
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger
}

// NewSubscriber creates a new staff notification subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
	}
}

// Start consumes tab events until the context is cancelled
func (s *Subscriber) Start(ctx context.Context) error {
	return s.consumer.StartConsuming(ctx, s.handleEvent)
}

// handleEvent processes one tab event message
func (s *Subscriber) handleEvent(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var event models.TabEventMessage
	if err := messaging.ParseMessage(body, &event); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse tab event", requestID, err, nil)
		return fmt.Errorf("failed to parse tab event: %w", err)
	}

	s.logger.Info("staff_notification", FormatNotification(&event), requestID, map[string]interface{}{
		"event":      event.Event,
		"company_id": event.TenantID,
		"mesa":       event.TableID,
	})
	return nil
}

// FormatNotification renders the line staff see for a tab event
func FormatNotification(event *models.TabEventMessage) string {
	switch event.Event {
	case models.EventLinePlaced:
		return fmt.Sprintf("Mesa %s pediu %s (%s), comanda em %s",
			event.TableID, event.ProductName, event.UnitPrice, event.Total)
	case models.EventTableSettled:
		return fmt.Sprintf("Mesa %s fechou a conta: %d itens, total %s",
			event.TableID, event.LineCount, event.Total)
	default:
		return fmt.Sprintf("Mesa %s: evento %s", event.TableID, event.Event)
	}
}
