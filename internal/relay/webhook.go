package relay

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/GlebRadaev/payroll/pkg/clients"
)

// WebhookPublisher POSTs the event payload to a fixed URL.
type WebhookPublisher struct {
	url    string
	client clients.HTTPClientI
}

func NewWebhookPublisher(url string, client clients.HTTPClientI) *WebhookPublisher {
	return &WebhookPublisher{url: url, client: client}
}

func (p *WebhookPublisher) Publish(ctx context.Context, event domain.OutboxEvent) error {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("X-Event-ID", event.ID.String())
	headers.Set("X-Event-Type", domain.EventPaymentClaimed)

	statusCode, _, respHeaders, err := p.client.Post(ctx, p.url, headers, event.Payload)
	if err != nil {
		return fmt.Errorf("webhook request: %w", err)
	}

	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == http.StatusTooManyRequests:
		return &RetryAfterError{After: parseRetryAfter(respHeaders.Get("Retry-After"))}
	default:
		return fmt.Errorf("webhook responded with status %d", statusCode)
	}
}

func (p *WebhookPublisher) Close() error {
	return nil
}

// parseRetryAfter accepts delay-seconds only; anything else yields zero.
func parseRetryAfter(v string) time.Duration {
	seconds, err := strconv.Atoi(v)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
