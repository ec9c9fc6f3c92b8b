package outboxrepo

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/GlebRadaev/payroll/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Save stores a pending event. Called inside the transaction that produced
// the event so the two commit together.
func (r *Repository) Save(ctx context.Context, event *domain.OutboxEvent) error {
	query := `
		INSERT INTO outbox_events (id, topic, event_key, payload, status)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, event.ID, event.Topic, event.Key, event.Payload, domain.OutboxStatusPending)
	if err != nil {
		zap.L().Error("can't save outbox event", zap.String("event_id", event.ID.String()), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindPending(ctx context.Context, limit uint32) ([]domain.OutboxEvent, error) {
	query := `
		SELECT id, topic, event_key, payload, status, attempts, created_at
		FROM outbox_events
		WHERE status = 'PENDING'
		ORDER BY created_at ASC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, int(limit))
	if err != nil {
		zap.L().Error("can't get pending outbox events", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var events []domain.OutboxEvent
	for rows.Next() {
		var e domain.OutboxEvent
		if err := rows.Scan(&e.ID, &e.Topic, &e.Key, &e.Payload, &e.Status, &e.Attempts, &e.CreatedAt); err != nil {
			zap.L().Error("can't scan outbox row", zap.Error(err))
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE outbox_events
		SET status = 'SENT', sent_at = now()
		WHERE id = $1
	`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		zap.L().Error("can't mark outbox event sent", zap.String("event_id", id.String()), zap.Error(err))
		return err
	}
	return nil
}

// MarkAttemptFailed counts a failed delivery. The event is parked as FAILED
// once it has used maxAttempts deliveries.
func (r *Repository) MarkAttemptFailed(ctx context.Context, id uuid.UUID, maxAttempts int) error {
	query := `
		UPDATE outbox_events
		SET attempts = attempts + 1,
			status = CASE WHEN attempts + 1 >= $2 THEN 'FAILED' ELSE status END
		WHERE id = $1
	`
	if _, err := r.db.Exec(ctx, query, id, maxAttempts); err != nil {
		zap.L().Error("can't record outbox attempt", zap.String("event_id", id.String()), zap.Error(err))
		return err
	}
	return nil
}
