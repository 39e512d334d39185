package storage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/hammamikhairi/skiphire/internal/domain"
	"github.com/hammamikhairi/skiphire/internal/journey"
	"github.com/hammamikhairi/skiphire/internal/logger"
)

func TestMemoryRegistryCRUD(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	reg := NewMemoryRegistry(log, nil)
	ctx := context.Background()

	// Create.
	e, err := reg.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uuid.Parse(e.ID); err != nil {
		t.Fatalf("id %q is not a uuid: %v", e.ID, err)
	}
	e.Store.SetSize("8yd")

	// Load.
	loaded, err := reg.Load(ctx, e.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Store.Snapshot().Size != "8yd" {
		t.Fatal("loaded journey does not share the created store")
	}

	// Load nonexistent.
	if _, err := reg.Load(ctx, "nonexistent"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Delete.
	if err := reg.Delete(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := reg.Load(ctx, e.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := reg.Delete(ctx, e.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestMemoryRegistryUsesFactory(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	calls := 0
	reg := NewMemoryRegistry(log, func() *journey.Store {
		calls++
		return journey.New(journey.WithRecompute(func(s domain.JourneyState) domain.Totals {
			return domain.Totals{Total: 1}
		}))
	})

	e, err := reg.Create(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("expected factory to be called once, got %d", calls)
	}
	if e.Store.Totals().Total != 1 {
		t.Fatal("factory store not used")
	}
}

func TestMemoryRegistryListOrdered(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	reg := NewMemoryRegistry(log, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := reg.Create(ctx); err != nil {
			t.Fatal(err)
		}
	}

	list, err := reg.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 journeys, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].CreatedAt.Before(list[i-1].CreatedAt) {
			t.Fatal("list is not oldest first")
		}
	}
}

func TestMemoryRegistryConcurrent(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	reg := NewMemoryRegistry(log, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, err := reg.Create(ctx)
			if err != nil {
				t.Error(err)
				return
			}
			if _, err := reg.Load(ctx, e.ID); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	list, _ := reg.List(ctx)
	if len(list) != 20 {
		t.Fatalf("expected 20 journeys, got %d", len(list))
	}
}
