package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the Postgres-backed action ledger.
type Store struct {
	Pool     *pgxpool.Pool
	ClaimTTL time.Duration
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool, ClaimTTL: DefaultClaimTTL}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

var schema = []string{`
CREATE TABLE IF NOT EXISTS action_submissions (
	action        TEXT NOT NULL,
	ticket_number TEXT NOT NULL,
	email         TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL,
	message       TEXT NOT NULL DEFAULT '',
	claimed_at    TIMESTAMPTZ NOT NULL,
	completed_at  TIMESTAMPTZ,
	PRIMARY KEY (action, ticket_number)
)`,
	`CREATE INDEX IF NOT EXISTS action_submissions_pending_idx
	ON action_submissions (claimed_at) WHERE status = 'pending'`,
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migrate action_submissions: %w", err)
			}
		}
		return nil
	})
}

// Claim inserts a pending row, or takes over a pending row claimed before
// the TTL cut-off. Otherwise it returns the row that holds the pair.
func (s *Store) Claim(ctx context.Context, action, ticketNumber, email string) (Submission, bool, error) {
	ttl := s.ClaimTTL
	if ttl <= 0 {
		ttl = DefaultClaimTTL
	}
	now := time.Now().UTC()
	sub := Submission{Action: action, TicketNumber: ticketNumber, Email: email, Status: SubmissionPending}
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO action_submissions (action, ticket_number, email, status, claimed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (action, ticket_number) DO UPDATE
		SET email = EXCLUDED.email, claimed_at = EXCLUDED.claimed_at
		WHERE action_submissions.status = $4 AND action_submissions.claimed_at < $6
		RETURNING claimed_at
	`, action, ticketNumber, email, SubmissionPending, now, now.Add(-ttl)).Scan(&sub.ClaimedAt)
	if err == nil {
		return sub, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Submission{}, false, err
	}

	existing, err := s.Get(ctx, action, ticketNumber)
	if errors.Is(err, ErrNotFound) {
		// released between the insert and the read
		return Submission{Action: action, TicketNumber: ticketNumber, Status: SubmissionPending, ClaimedAt: now}, false, nil
	}
	if err != nil {
		return Submission{}, false, err
	}
	return existing, false, nil
}

func (s *Store) Complete(ctx context.Context, action, ticketNumber, message string) error {
	_, err := s.Pool.Exec(ctx, `
		UPDATE action_submissions
		SET status = $1, message = $2, completed_at = NOW()
		WHERE action = $3 AND ticket_number = $4
	`, SubmissionCompleted, message, action, ticketNumber)
	return err
}

func (s *Store) Release(ctx context.Context, action, ticketNumber string) error {
	_, err := s.Pool.Exec(ctx, `
		DELETE FROM action_submissions
		WHERE action = $1 AND ticket_number = $2 AND status = $3
	`, action, ticketNumber, SubmissionPending)
	return err
}

func (s *Store) Get(ctx context.Context, action, ticketNumber string) (Submission, error) {
	var (
		sub         Submission
		completedAt *time.Time
	)
	err := s.Pool.QueryRow(ctx, `
		SELECT action, ticket_number, email, status, message, claimed_at, completed_at
		FROM action_submissions
		WHERE action = $1 AND ticket_number = $2
	`, action, ticketNumber).Scan(&sub.Action, &sub.TicketNumber, &sub.Email, &sub.Status, &sub.Message, &sub.ClaimedAt, &completedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Submission{}, ErrNotFound
		}
		return Submission{}, err
	}
	if completedAt != nil {
		sub.CompletedAt = *completedAt
	}
	return sub, nil
}
