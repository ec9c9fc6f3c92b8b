package relay

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/GlebRadaev/payroll/pkg/clients"
)

// LogPublisher is used when no broker or webhook is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, event domain.OutboxEvent) error {
	zap.L().Info("claim event",
		zap.String("event_id", event.ID.String()),
		zap.String("topic", event.Topic),
		zap.String("key", event.Key),
		zap.ByteString("payload", event.Payload),
	)
	return nil
}

func (LogPublisher) Close() error {
	return nil
}

// NewPublisher picks Kafka when brokers are configured, then the webhook,
// then the log.
func NewPublisher(brokers []string, webhookURL string, client clients.HTTPClientI) Publisher {
	switch {
	case len(brokers) > 0:
		return NewKafkaPublisher(brokers)
	case webhookURL != "":
		return NewWebhookPublisher(webhookURL, client)
	default:
		return LogPublisher{}
	}
}
