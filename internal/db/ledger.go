package db

import (
	"context"
	"errors"
	"sync"
	"time"
)

const (
	SubmissionPending   = "pending"
	SubmissionCompleted = "completed"
)

// DefaultClaimTTL bounds how long a pending claim blocks its pair. A claim
// older than this is assumed abandoned and may be taken over.
const DefaultClaimTTL = 5 * time.Minute

var ErrNotFound = errors.New("submission not found")

// Submission records one customer action against one ticket.
type Submission struct {
	Action       string
	TicketNumber string
	Email        string
	Status       string
	Message      string
	ClaimedAt    time.Time
	CompletedAt  time.Time
}

// Ledger guarantees an (action, ticket) pair is forwarded at most once.
// Claim reports false when the pair is already held, together with the
// submission holding it, so callers can tell a completed action from one
// still in flight. Release drops a pending claim so a failed submission can
// be retried.
type Ledger interface {
	Claim(ctx context.Context, action, ticketNumber, email string) (Submission, bool, error)
	Complete(ctx context.Context, action, ticketNumber, message string) error
	Release(ctx context.Context, action, ticketNumber string) error
	Get(ctx context.Context, action, ticketNumber string) (Submission, error)
}

var (
	_ Ledger = (*Store)(nil)
	_ Ledger = (*MemoryLedger)(nil)
)

// MemoryLedger is the in-process ledger used when no database is configured.
type MemoryLedger struct {
	mu       sync.Mutex
	subs     map[[2]string]Submission
	Now      func() time.Time
	ClaimTTL time.Duration
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{subs: map[[2]string]Submission{}, Now: time.Now, ClaimTTL: DefaultClaimTTL}
}

func (m *MemoryLedger) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

func (m *MemoryLedger) Claim(_ context.Context, action, ticketNumber, email string) (Submission, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subs == nil {
		m.subs = map[[2]string]Submission{}
	}
	now := m.now().UTC()
	key := [2]string{action, ticketNumber}
	if sub, ok := m.subs[key]; ok && !staleClaim(sub, now, m.ClaimTTL) {
		return sub, false, nil
	}
	sub := Submission{
		Action:       action,
		TicketNumber: ticketNumber,
		Email:        email,
		Status:       SubmissionPending,
		ClaimedAt:    now,
	}
	m.subs[key] = sub
	return sub, true, nil
}

// staleClaim reports whether a pending claim has outlived ttl.
func staleClaim(sub Submission, now time.Time, ttl time.Duration) bool {
	if sub.Status != SubmissionPending {
		return false
	}
	if ttl <= 0 {
		ttl = DefaultClaimTTL
	}
	return now.Sub(sub.ClaimedAt) >= ttl
}

func (m *MemoryLedger) Complete(_ context.Context, action, ticketNumber, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]string{action, ticketNumber}
	sub, ok := m.subs[key]
	if !ok {
		return ErrNotFound
	}
	sub.Status = SubmissionCompleted
	sub.Message = message
	sub.CompletedAt = m.now().UTC()
	m.subs[key] = sub
	return nil
}

func (m *MemoryLedger) Release(_ context.Context, action, ticketNumber string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]string{action, ticketNumber}
	if sub, ok := m.subs[key]; ok && sub.Status == SubmissionPending {
		delete(m.subs, key)
	}
	return nil
}

func (m *MemoryLedger) Get(_ context.Context, action, ticketNumber string) (Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.subs[[2]string{action, ticketNumber}]
	if !ok {
		return Submission{}, ErrNotFound
	}
	return sub, nil
}
