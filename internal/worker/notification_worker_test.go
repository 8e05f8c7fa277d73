package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/issue-tracker/internal/events"
)

func TestWorkerWithoutRedisLogsEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()

	notifications := StartNotificationWorker(dispatcher, nil, "issue-tracker.events", zap.New(core))
	require.NotNil(t, notifications)

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventIssueSubmitted, Subject: "beth@aol.com"})
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("IssueSubmitted").Len())
}
