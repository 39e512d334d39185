// Package storage keeps journeys that outlive a single request.
package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/skiphire/internal/domain"
	"github.com/hammamikhairi/skiphire/internal/journey"
	"github.com/hammamikhairi/skiphire/internal/logger"
)

// Entry is one stored journey.
type Entry struct {
	ID        string
	Store     *journey.Store
	CreatedAt time.Time
}

// MemoryRegistry is an in-memory journey registry. Safe for concurrent
// access.
type MemoryRegistry struct {
	mu       sync.RWMutex
	journeys map[string]*Entry
	newStore func() *journey.Store
	log      *logger.Logger
}

// NewMemoryRegistry creates an empty registry. newStore builds the store
// for each new journey; nil means journey.New with no options.
func NewMemoryRegistry(log *logger.Logger, newStore func() *journey.Store) *MemoryRegistry {
	if newStore == nil {
		newStore = func() *journey.Store { return journey.New() }
	}
	return &MemoryRegistry{
		journeys: make(map[string]*Entry),
		newStore: newStore,
		log:      log,
	}
}

// Create starts a journey with default state under a fresh id.
func (r *MemoryRegistry) Create(ctx context.Context) (*Entry, error) {
	e := &Entry{
		ID:        uuid.NewString(),
		Store:     r.newStore(),
		CreatedAt: time.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.journeys[e.ID]; ok {
		return nil, domain.ErrAlreadyExists
	}
	r.journeys[e.ID] = e
	r.log.Debug("created journey %s", e.ID)
	return e, nil
}

// Load retrieves a journey by id.
func (r *MemoryRegistry) Load(ctx context.Context, id string) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.journeys[id]
	if !ok {
		r.log.Debug("journey not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return e, nil
}

// Delete removes a journey by id.
func (r *MemoryRegistry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.journeys[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.journeys, id)
	r.log.Debug("deleted journey %s", id)
	return nil
}

// List returns every journey, oldest first.
func (r *MemoryRegistry) List(ctx context.Context) ([]*Entry, error) {
	r.mu.RLock()
	out := make([]*Entry, 0, len(r.journeys))
	for _, e := range r.journeys {
		out = append(out, e)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	r.log.Debug("listing journeys, count=%d", len(out))
	return out, nil
}
