// Package checkout accepts finished bookings. The only implementation is a
// stand-in that validates the snapshot and hands back a reference.
package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hammamikhairi/skiphire/internal/domain"
	"github.com/hammamikhairi/skiphire/internal/logger"
)

// ReferencePrefix starts every booking reference.
const ReferencePrefix = "SKP-"

// MockSubmitter implements domain.Submitter without talking to any
// payment or order system.
type MockSubmitter struct {
	mu        sync.Mutex
	log       *logger.Logger
	confirmed []domain.Confirmation
	newUUID   func() uuid.UUID
}

// Option configures the submitter.
type Option func(*MockSubmitter)

// WithUUIDSource overrides uuid generation, for deterministic references.
func WithUUIDSource(fn func() uuid.UUID) Option {
	return func(m *MockSubmitter) {
		m.newUUID = fn
	}
}

// NewMockSubmitter creates a submitter with an empty history.
func NewMockSubmitter(log *logger.Logger, opts ...Option) *MockSubmitter {
	m := &MockSubmitter{
		log:     log,
		newUUID: uuid.New,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Compile-time interface check.
var _ domain.Submitter = (*MockSubmitter)(nil)

// Submit validates sub and records it.
func (m *MockSubmitter) Submit(ctx context.Context, sub domain.Submission) (*domain.Confirmation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validate(sub); err != nil {
		return nil, err
	}

	conf := domain.Confirmation{
		Reference:  m.reference(),
		Submission: sub,
	}

	m.mu.Lock()
	m.confirmed = append(m.confirmed, conf)
	m.mu.Unlock()

	m.log.Info("checkout: booked %s with %s (%s)", sub.Size, sub.ProviderID, conf.Reference)
	return &conf, nil
}

// Confirmations returns every accepted booking, oldest first.
func (m *MockSubmitter) Confirmations() []domain.Confirmation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Confirmation, len(m.confirmed))
	copy(out, m.confirmed)
	return out
}

func (m *MockSubmitter) reference() string {
	id := strings.ReplaceAll(m.newUUID().String(), "-", "")
	return ReferencePrefix + strings.ToUpper(id[:8])
}

func validate(sub domain.Submission) error {
	switch {
	case sub.Size == "":
		return fmt.Errorf("%w: no container size chosen", domain.ErrInvalidInput)
	case sub.ProviderID == "":
		return fmt.Errorf("%w: no provider chosen", domain.ErrInvalidInput)
	case strings.TrimSpace(sub.Customer.Name) == "":
		return fmt.Errorf("%w: customer name is required", domain.ErrInvalidInput)
	case strings.TrimSpace(sub.Customer.Email) == "":
		return fmt.Errorf("%w: customer email is required", domain.ErrInvalidInput)
	}
	return nil
}
