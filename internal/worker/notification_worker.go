package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/issue-tracker/internal/events"
	"github.com/spec-kit/issue-tracker/internal/persistence"
	"github.com/spec-kit/issue-tracker/internal/service"
)

// StartNotificationWorker subscribes the notification service to domain
// events. Events are forwarded to Redis when a client is available and are
// only logged otherwise.
func StartNotificationWorker(dispatcher events.Dispatcher, redis *persistence.Redis, channel string, logger *zap.Logger) *service.NotificationService {
	var sink service.EventSink
	if redis != nil {
		sink = redis
	} else {
		logger.Info("event forwarding disabled")
	}

	notifications := service.NewNotificationService(dispatcher, logger, sink, channel)
	notifications.RegisterHandlers()
	return notifications
}
