package relay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GlebRadaev/payroll/pkg/clients"
)

func TestLogPublisher(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)

	publisher := LogPublisher{}
	assert.NoError(t, publisher.Publish(context.Background(), event(firstID)))
	assert.NoError(t, publisher.Close())

	entries := logs.FilterMessage("claim event").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "10", entries[0].ContextMap()["key"])
	}
}

func TestNewPublisher(t *testing.T) {
	client := clients.NewHTTPClient()

	assert.IsType(t, &KafkaPublisher{}, NewPublisher([]string{"broker:9092"}, "http://hooks.local", client))
	assert.IsType(t, &WebhookPublisher{}, NewPublisher(nil, "http://hooks.local", client))
	assert.IsType(t, LogPublisher{}, NewPublisher(nil, "", client))
}
