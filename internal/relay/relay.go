package relay

//go:generate mockgen -source=relay.go -destination=mock_relay.go -package=relay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/payroll/internal/config"
	"github.com/GlebRadaev/payroll/internal/domain"
)

const (
	maxRetries    = 3
	retryInterval = time.Second
)

type OutboxRepo interface {
	FindPending(ctx context.Context, limit uint32) ([]domain.OutboxEvent, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkAttemptFailed(ctx context.Context, id uuid.UUID, maxAttempts int) error
}

// Publisher delivers one outbox event to its downstream.
type Publisher interface {
	Publish(ctx context.Context, event domain.OutboxEvent) error
	Close() error
}

// RetryAfterError asks the relay to wait the given duration before the next
// delivery attempt.
type RetryAfterError struct {
	After time.Duration
}

func (e *RetryAfterError) Error() string {
	return fmt.Sprintf("downstream asked to retry after %s", e.After)
}

// Service moves pending outbox events to the publisher.
type Service struct {
	outbox         OutboxRepo
	publisher      Publisher
	workerPool     WorkerPoolI
	limit          uint32
	maxAttempts    int
	updateInterval time.Duration
	retryInterval  time.Duration
	inFlight       sync.Map
	done           chan struct{}
}

func New(cfg *config.Config, outbox OutboxRepo, publisher Publisher) *Service {
	return &Service{
		outbox:         outbox,
		publisher:      publisher,
		workerPool:     NewWorkerPool(cfg.RelayWorkers),
		limit:          cfg.RelayBatch,
		maxAttempts:    cfg.RelayMaxAttempts,
		updateInterval: cfg.RelayInterval,
		retryInterval:  retryInterval,
		done:           make(chan struct{}),
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("outbox relay started", zap.Duration("interval", s.updateInterval))
	go s.run(ctx)
}

// Done is closed once the relay loop has stopped and its workers are released.
func (s *Service) Done() <-chan struct{} {
	return s.done
}

func (s *Service) run(ctx context.Context) {
	defer close(s.done)
	defer s.workerPool.Close()

	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("context canceled, stopping outbox relay")
			return
		case <-ticker.C:
			s.processEvents(ctx)
		}
	}
}

func (s *Service) processEvents(ctx context.Context) {
	events, err := s.outbox.FindPending(ctx, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("failed to fetch pending events", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, event := range events {
		if _, loaded := s.inFlight.LoadOrStore(event.ID, struct{}{}); loaded {
			continue
		}

		event := event
		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer s.inFlight.Delete(event.ID)
				return s.handleEvent(ctx, event)
			})
			if err != nil {
				s.inFlight.Delete(event.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("error dispatching events", zap.Error(err))
	}
}

func (s *Service) handleEvent(ctx context.Context, event domain.OutboxEvent) error {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = s.publisher.Publish(ctx, event)
		if err == nil {
			if markErr := s.outbox.MarkSent(ctx, event.ID); markErr != nil {
				return fmt.Errorf("mark event %s sent: %w", event.ID, markErr)
			}
			zap.L().Info("event published", zap.String("event_id", event.ID.String()), zap.String("topic", event.Topic))
			return nil
		}
		if attempt == maxRetries {
			break
		}

		wait := s.retryInterval * time.Duration(attempt)
		var retryAfter *RetryAfterError
		if errors.As(err, &retryAfter) && retryAfter.After > 0 {
			wait = retryAfter.After
		}
		zap.L().Warn(
			"publish failed, retrying",
			zap.String("event_id", event.ID.String()),
			zap.Int("attempt", attempt),
			zap.Duration("retryAfter", wait),
			zap.Error(err),
		)
		if sleepErr := sleep(ctx, wait); sleepErr != nil {
			return sleepErr
		}
	}

	if markErr := s.outbox.MarkAttemptFailed(ctx, event.ID, s.maxAttempts); markErr != nil {
		zap.L().Error("can't record failed attempt", zap.String("event_id", event.ID.String()), zap.Error(markErr))
	}
	return fmt.Errorf("publish event %s after %d retries: %w", event.ID, maxRetries, err)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
