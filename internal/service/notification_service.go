package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/issue-tracker/internal/events"
)

// EventSink forwards encoded events to an external channel.
type EventSink interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	sink       EventSink
	channel    string
}

// NewNotificationService creates the service. A nil sink or empty channel
// keeps notifications log-only.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, sink EventSink, channel string) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		sink:       sink,
		channel:    channel,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventCatalogItemAdded, n.handleCatalogItemAdded)
	n.dispatcher.Subscribe(events.EventCatalogItemRemoved, n.handleCatalogItemRemoved)
	n.dispatcher.Subscribe(events.EventIssueSubmitted, n.handleIssueSubmitted)
}

func (n *NotificationService) handleCatalogItemAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("CatalogItemAdded", zap.String("subject", event.Subject), zap.Any("payload", event.Payload))
	return n.forward(ctx, event)
}

func (n *NotificationService) handleCatalogItemRemoved(ctx context.Context, event events.Event) error {
	n.logger.Info("CatalogItemRemoved", zap.String("subject", event.Subject), zap.Any("payload", event.Payload))
	return n.forward(ctx, event)
}

func (n *NotificationService) handleIssueSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("IssueSubmitted", zap.String("subject", event.Subject), zap.Any("payload", event.Payload))
	return n.forward(ctx, event)
}

func (n *NotificationService) forward(ctx context.Context, event events.Event) error {
	if n.sink == nil || strings.TrimSpace(n.channel) == "" {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := n.sink.Publish(ctx, n.channel, payload); err != nil {
		return err
	}
	n.logger.Debug("event forwarded",
		zap.String("channel", n.channel),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
	return nil
}
