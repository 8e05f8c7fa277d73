package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/issue-tracker/internal/docstore"
	"github.com/spec-kit/issue-tracker/internal/events"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

// Clock returns the current time.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

// publisher emits events after commit; failures are logged, never returned.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

func newPublisher(dispatcher events.Dispatcher, logger *zap.Logger) publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return publisher{dispatcher: dispatcher, logger: logger}
}

func (p publisher) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = utcNow()
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil {
		p.logger.Warn("event handlers failed",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
}

// storeError maps document store failures onto domain errors.
func storeError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, docstore.ErrNotFound):
		return apperrors.NewNotFound(resource)
	case errors.Is(err, docstore.ErrConcurrency):
		return apperrors.NewConflict(resource+" was modified by another request", nil)
	case errors.Is(err, docstore.ErrConflict):
		return apperrors.NewConflict(resource+" already exists", nil)
	default:
		return err
	}
}
