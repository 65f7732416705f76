package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/village-portal/internal/config"
	"github.com/spec-kit/village-portal/internal/domain"
	"github.com/spec-kit/village-portal/internal/events"
	"github.com/spec-kit/village-portal/internal/service"
)

func TestStartAuditLog(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	StartAuditLog(dispatcher, zap.New(core))

	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{ID: "evt-1", Type: events.EventStaffAdded, EntityID: "staff-9", Timestamp: at}))

	entries := logs.FilterMessage("store change").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "staff_added", fields["event_type"])
	assert.Equal(t, "staff-9", fields["entity_id"])
	assert.Equal(t, "audit", entries[0].LoggerName)
}

func TestStartNotificationWorker(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	StartNotificationWorker(service.NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{}), zap.New(core))
	StartNotificationWorker(nil, zap.New(core))

	assert.Equal(t, 1, logs.FilterMessage("notification worker started").Len())

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventServiceRequestFiled,
		EntityID: "req-9",
		Payload:  domain.ServiceRequest{ID: "req-9", Category: domain.CategoryRoads},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("ServiceRequestFiled").Len())
}
