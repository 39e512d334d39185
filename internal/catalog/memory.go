// Package catalog provides the static provider catalog and price tables.
package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/hammamikhairi/skiphire/internal/domain"
	"github.com/hammamikhairi/skiphire/internal/logger"
)

// Compile-time interface check.
var _ domain.ProviderCatalog = (*MemoryCatalog)(nil)

// MemoryCatalog holds providers in memory in catalog order. Safe for
// concurrent reads; records are never mutated after seeding.
type MemoryCatalog struct {
	mu        sync.RWMutex
	providers []*domain.Provider
	byID      map[string]*domain.Provider
	log       *logger.Logger
}

// NewMemoryCatalog creates a catalog preloaded with the built-in providers.
func NewMemoryCatalog(log *logger.Logger) *MemoryCatalog {
	c := &MemoryCatalog{
		byID: make(map[string]*domain.Provider),
		log:  log,
	}
	c.seed(defaultProviders())
	return c
}

// NewMemoryCatalogFrom creates a catalog from caller-supplied providers,
// keeping their order. Duplicate IDs keep the first record.
func NewMemoryCatalogFrom(log *logger.Logger, providers []*domain.Provider) *MemoryCatalog {
	c := &MemoryCatalog{
		byID: make(map[string]*domain.Provider),
		log:  log,
	}
	c.seed(providers)
	return c
}

// List returns every provider in catalog order. The slice is fresh but
// the records are shared.
func (c *MemoryCatalog) List(ctx context.Context) ([]*domain.Provider, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	c.log.Debug("listing providers, count=%d", len(c.providers))
	out := make([]*domain.Provider, len(c.providers))
	copy(out, c.providers)
	return out, nil
}

// Get returns a provider by ID.
func (c *MemoryCatalog) Get(ctx context.Context, id string) (*domain.Provider, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.byID[id]
	if !ok {
		c.log.Debug("provider not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Search returns providers whose id, name, badges or inclusions contain
// the query string, in catalog order.
func (c *MemoryCatalog) Search(ctx context.Context, query string) ([]*domain.Provider, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	c.log.Debug("searching providers for: %s", q)

	var out []*domain.Provider
	for _, p := range c.providers {
		if matches(p, q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func matches(p *domain.Provider, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(p.ID, query) || strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	for _, b := range p.Badges {
		if strings.Contains(strings.ToLower(b), query) {
			return true
		}
	}
	for _, inc := range p.Includes {
		if strings.Contains(strings.ToLower(inc), query) {
			return true
		}
	}
	return false
}

func (c *MemoryCatalog) seed(providers []*domain.Provider) {
	for _, p := range providers {
		if _, dup := c.byID[p.ID]; dup {
			c.log.Warn("duplicate provider id %s ignored", p.ID)
			continue
		}
		c.providers = append(c.providers, p)
		c.byID[p.ID] = p
	}
	c.log.Debug("seeded %d providers", len(c.providers))
}
