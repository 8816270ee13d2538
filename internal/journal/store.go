// Package journal keeps an append-only PostgreSQL record of fulfilled
// reservations. Nothing on the request path reads it back.
package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"lexhook/internal/domain"
)

var ErrEmptyInvocationID = errors.New("fulfillment record has no invocation id")

// querier is the subset of *pgxpool.Pool the store uses.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Store struct {
	pool  *pgxpool.Pool
	db    querier
	clock func() time.Time
}

func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping journal db: %w", err)
	}
	return &Store{pool: pool, db: pool, clock: time.Now}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) Migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS fulfillments (
			id BIGSERIAL PRIMARY KEY,
			invocation_id TEXT NOT NULL UNIQUE,
			user_id TEXT NOT NULL DEFAULT '',
			bot_name TEXT NOT NULL DEFAULT '',
			intent TEXT NOT NULL,
			reservation JSONB NOT NULL DEFAULT '{}'::jsonb,
			price TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL DEFAULT '',
			fulfilled_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_fulfillments_user_fulfilled ON fulfillments(user_id, fulfilled_at);`,
		`CREATE INDEX IF NOT EXISTS idx_fulfillments_intent_fulfilled ON fulfillments(intent, fulfilled_at);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// RecordFulfillment inserts rec. Replaying an invocation id is a no-op.
func (s *Store) RecordFulfillment(ctx context.Context, rec domain.FulfillmentRecord) error {
	if rec.InvocationID == "" {
		return ErrEmptyInvocationID
	}
	fulfilledAt := rec.FulfilledAt
	if fulfilledAt.IsZero() {
		fulfilledAt = s.clock()
	}
	reservation := rec.Reservation
	if reservation == "" {
		reservation = "{}"
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO fulfillments(invocation_id, user_id, bot_name, intent, reservation, price, message, fulfilled_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8)
		ON CONFLICT (invocation_id) DO NOTHING
	`, rec.InvocationID, rec.UserID, rec.BotName, string(rec.Intent), reservation, rec.Price, rec.Message, fulfilledAt.UTC())
	if err != nil {
		return fmt.Errorf("insert fulfillment %s: %w", rec.InvocationID, err)
	}
	return nil
}

// Recent returns the newest fulfillments for userID, newest first. An empty
// userID lists every user.
func (s *Store) Recent(ctx context.Context, userID string, limit int) ([]domain.FulfillmentRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(ctx, `
		SELECT invocation_id, user_id, bot_name, intent, reservation::text, price, message, fulfilled_at
		FROM fulfillments
		WHERE $1 = '' OR user_id = $1
		ORDER BY fulfilled_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FulfillmentRecord
	for rows.Next() {
		var rec domain.FulfillmentRecord
		var intent string
		if err := rows.Scan(
			&rec.InvocationID,
			&rec.UserID,
			&rec.BotName,
			&intent,
			&rec.Reservation,
			&rec.Price,
			&rec.Message,
			&rec.FulfilledAt,
		); err != nil {
			return nil, err
		}
		rec.Intent = domain.IntentName(intent)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
