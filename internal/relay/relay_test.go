package relay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/payroll/internal/config"
	"github.com/GlebRadaev/payroll/internal/domain"
)

var (
	firstID  = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	secondID = uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")
)

func event(id uuid.UUID) domain.OutboxEvent {
	return domain.OutboxEvent{
		ID:      id,
		Topic:   "payroll.payment-claimed",
		Key:     "10",
		Payload: []byte(`{"ledger_id":10}`),
		Status:  domain.OutboxStatusPending,
	}
}

type mocks struct {
	outbox     *MockOutboxRepo
	publisher  *MockPublisher
	workerPool *MockWorkerPoolI
}

func NewMock(t *testing.T) (*Service, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		outbox:     NewMockOutboxRepo(ctrl),
		publisher:  NewMockPublisher(ctrl),
		workerPool: NewMockWorkerPoolI(ctrl),
	}
	service := &Service{
		outbox:         m.outbox,
		publisher:      m.publisher,
		workerPool:     m.workerPool,
		limit:          2,
		maxAttempts:    5,
		updateInterval: time.Hour,
		retryInterval:  time.Millisecond,
		done:           make(chan struct{}),
	}
	return service, m
}

// runInline executes queued tasks on the caller's goroutine.
func runInline(_ context.Context, task Task) error {
	return task()
}

func TestNew(t *testing.T) {
	cfg := &config.Config{RelayWorkers: 2, RelayBatch: 50, RelayMaxAttempts: 7, RelayInterval: time.Second}
	service := New(cfg, nil, LogPublisher{})
	t.Cleanup(service.workerPool.Close)

	assert.Equal(t, uint32(50), service.limit)
	assert.Equal(t, 7, service.maxAttempts)
	assert.Equal(t, time.Second, service.updateInterval)
	assert.Equal(t, retryInterval, service.retryInterval)
}

func TestService_Start(t *testing.T) {
	service, m := NewMock(t)
	m.workerPool.EXPECT().Close()

	ctx, cancel := context.WithCancel(context.Background())
	service.Start(ctx)
	cancel()

	select {
	case <-service.Done():
	case <-time.After(time.Second):
		t.Fatal("relay did not stop after cancel")
	}
}

func TestService_processEvents(t *testing.T) {
	tests := []struct {
		name        string
		inFlight    []uuid.UUID
		prepareMock func(m mocks)
	}{
		{
			name: "publishes every pending event",
			prepareMock: func(m mocks) {
				m.outbox.EXPECT().FindPending(gomock.Any(), uint32(2)).
					Return([]domain.OutboxEvent{event(firstID), event(secondID)}, nil)
				m.workerPool.EXPECT().AddTask(gomock.Any(), gomock.Any()).DoAndReturn(runInline).Times(2)
				m.publisher.EXPECT().Publish(gomock.Any(), event(firstID)).Return(nil)
				m.publisher.EXPECT().Publish(gomock.Any(), event(secondID)).Return(nil)
				m.outbox.EXPECT().MarkSent(gomock.Any(), firstID).Return(nil)
				m.outbox.EXPECT().MarkSent(gomock.Any(), secondID).Return(nil)
			},
		},
		{
			name: "fetch failure dispatches nothing",
			prepareMock: func(m mocks) {
				m.outbox.EXPECT().FindPending(gomock.Any(), uint32(2)).Return(nil, errors.New("db down"))
			},
		},
		{
			name:     "skips events already in flight",
			inFlight: []uuid.UUID{firstID},
			prepareMock: func(m mocks) {
				m.outbox.EXPECT().FindPending(gomock.Any(), uint32(2)).
					Return([]domain.OutboxEvent{event(firstID), event(secondID)}, nil)
				m.workerPool.EXPECT().AddTask(gomock.Any(), gomock.Any()).DoAndReturn(runInline)
				m.publisher.EXPECT().Publish(gomock.Any(), event(secondID)).Return(nil)
				m.outbox.EXPECT().MarkSent(gomock.Any(), secondID).Return(nil)
			},
		},
		{
			name: "pool rejection releases the event",
			prepareMock: func(m mocks) {
				m.outbox.EXPECT().FindPending(gomock.Any(), uint32(2)).
					Return([]domain.OutboxEvent{event(firstID)}, nil)
				m.workerPool.EXPECT().AddTask(gomock.Any(), gomock.Any()).Return(context.Canceled)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			for _, id := range tt.inFlight {
				service.inFlight.Store(id, struct{}{})
			}
			tt.prepareMock(m)

			service.processEvents(context.Background())

			_, stillFirst := service.inFlight.Load(firstID)
			assert.Equal(t, len(tt.inFlight) > 0, stillFirst)
			_, stillSecond := service.inFlight.Load(secondID)
			assert.False(t, stillSecond)
		})
	}
}

func TestService_handleEvent(t *testing.T) {
	publishErr := errors.New("broker unavailable")

	tests := []struct {
		name        string
		prepareMock func(m mocks)
		expectedErr error
	}{
		{
			name: "delivered on first attempt",
			prepareMock: func(m mocks) {
				m.publisher.EXPECT().Publish(gomock.Any(), event(firstID)).Return(nil)
				m.outbox.EXPECT().MarkSent(gomock.Any(), firstID).Return(nil)
			},
		},
		{
			name: "delivered after a retry",
			prepareMock: func(m mocks) {
				gomock.InOrder(
					m.publisher.EXPECT().Publish(gomock.Any(), event(firstID)).Return(publishErr),
					m.publisher.EXPECT().Publish(gomock.Any(), event(firstID)).Return(nil),
				)
				m.outbox.EXPECT().MarkSent(gomock.Any(), firstID).Return(nil)
			},
		},
		{
			name: "retry after hint is honoured",
			prepareMock: func(m mocks) {
				gomock.InOrder(
					m.publisher.EXPECT().Publish(gomock.Any(), event(firstID)).Return(&RetryAfterError{After: time.Millisecond}),
					m.publisher.EXPECT().Publish(gomock.Any(), event(firstID)).Return(nil),
				)
				m.outbox.EXPECT().MarkSent(gomock.Any(), firstID).Return(nil)
			},
		},
		{
			name: "attempt recorded after exhausting retries",
			prepareMock: func(m mocks) {
				m.publisher.EXPECT().Publish(gomock.Any(), event(firstID)).Return(publishErr).Times(maxRetries)
				m.outbox.EXPECT().MarkAttemptFailed(gomock.Any(), firstID, 5).Return(nil)
			},
			expectedErr: publishErr,
		},
		{
			name: "mark sent failure",
			prepareMock: func(m mocks) {
				m.publisher.EXPECT().Publish(gomock.Any(), event(firstID)).Return(nil)
				m.outbox.EXPECT().MarkSent(gomock.Any(), firstID).Return(errors.New("db down"))
			},
			expectedErr: errors.New("mark event 6ba7b810-9dad-11d1-80b4-00c04fd430c8 sent: db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			err := service.handleEvent(context.Background(), event(firstID))

			if tt.expectedErr == nil {
				assert.NoError(t, err)
				return
			}
			if !errors.Is(err, tt.expectedErr) {
				assert.EqualError(t, err, tt.expectedErr.Error())
			}
		})
	}
}

func TestService_handleEventStopsOnCancel(t *testing.T) {
	service, m := NewMock(t)
	service.retryInterval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	m.publisher.EXPECT().Publish(gomock.Any(), event(firstID)).DoAndReturn(
		func(context.Context, domain.OutboxEvent) error {
			cancel()
			return errors.New("broker unavailable")
		})

	err := service.handleEvent(ctx, event(firstID))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetryAfterError(t *testing.T) {
	var err error = &RetryAfterError{After: 3 * time.Second}
	assert.EqualError(t, err, "downstream asked to retry after 3s")
}
