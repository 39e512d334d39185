package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hammamikhairi/skiphire/internal/catalog"
	"github.com/hammamikhairi/skiphire/internal/checkout"
	"github.com/hammamikhairi/skiphire/internal/delay"
	"github.com/hammamikhairi/skiphire/internal/domain"
	"github.com/hammamikhairi/skiphire/internal/logger"
	"github.com/hammamikhairi/skiphire/internal/pricing"
)

type stepChange struct{ from, to domain.Step }

type failingSubmitter struct{}

func (failingSubmitter) Submit(context.Context, domain.Submission) (*domain.Confirmation, error) {
	return nil, errors.New("order service down")
}

func setupWizard(t *testing.T, opts ...Option) (*Wizard, chan stepChange) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	changes := make(chan stepChange, 32)
	opts = append([]Option{
		WithSearchDelay(10 * time.Millisecond),
		WithSubmitDelay(10 * time.Millisecond),
		WithStepListener(func(from, to domain.Step) { changes <- stepChange{from, to} }),
	}, opts...)
	w := New(
		pricing.New(catalog.PriceTables()),
		catalog.NewMemoryCatalog(log),
		checkout.NewMockSubmitter(log),
		delay.New(log),
		log,
		opts...,
	)
	t.Cleanup(w.Close)
	return w, changes
}

func waitStep(t *testing.T, changes chan stepChange, want domain.Step) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case c := <-changes:
			if c.to == want {
				return
			}
		case <-deadline:
			t.Fatalf("never reached step %s", want)
		}
	}
}

func advance(t *testing.T, w *Wizard, want domain.Step) {
	t.Helper()
	got, err := w.Advance(context.Background())
	if err != nil {
		t.Fatalf("advance to %s: %v", want, err)
	}
	if got != want {
		t.Fatalf("expected step %s, got %s", want, got)
	}
}

// fillToDates completes every step up to and including dates.
func fillToDates(t *testing.T, w *Wizard) {
	t.Helper()
	s := w.Store()
	s.SetPostcode("SW1A 1AA")
	advance(t, w, domain.StepPlacement)
	s.SetPlacement(domain.PlacementRoad)
	advance(t, w, domain.StepWaste)
	s.SetWasteType("garden")
	advance(t, w, domain.StepSize)
	s.SetSize("6yd")
	advance(t, w, domain.StepItems)
	s.ToggleItem("Mattress")
	advance(t, w, domain.StepDates)
	s.SetDeliveryDate("2025-01-01")
	s.SetCollectionDate("2025-01-20")
}

func TestAdvanceRequiresStepComplete(t *testing.T) {
	w, _ := setupWizard(t)
	ctx := context.Background()

	if _, err := w.Advance(ctx); !errors.Is(err, domain.ErrStepIncomplete) {
		t.Fatalf("expected ErrStepIncomplete on empty postcode, got %v", err)
	}
	w.Store().SetPostcode("not a postcode")
	if _, err := w.Advance(ctx); !errors.Is(err, domain.ErrStepIncomplete) {
		t.Fatalf("expected ErrStepIncomplete on bad postcode, got %v", err)
	}
	if w.Step() != domain.StepPostcode {
		t.Fatalf("expected to stay on postcode, got %s", w.Step())
	}

	w.Store().SetPostcode("sw1a1aa")
	advance(t, w, domain.StepPlacement)
	if _, err := w.Advance(ctx); !errors.Is(err, domain.ErrStepIncomplete) {
		t.Fatalf("expected placement to be required, got %v", err)
	}
}

func TestPlacementAssignsWordCode(t *testing.T) {
	w, _ := setupWizard(t)
	w.Store().SetPostcode("SW1A 1AA")
	advance(t, w, domain.StepPlacement)
	if w.Store().Snapshot().Location.WordCode != "" {
		t.Fatal("word code assigned too early")
	}
	w.Store().SetPlacement(domain.PlacementProperty)
	advance(t, w, domain.StepWaste)

	got := w.Store().Snapshot().Location.WordCode
	if got != WordCode(domain.DefaultLat, domain.DefaultLng) {
		t.Fatalf("unexpected word code %q", got)
	}
}

func TestFullJourney(t *testing.T) {
	w, changes := setupWizard(t)
	ctx := context.Background()
	fillToDates(t, w)

	advance(t, w, domain.StepSearching)
	if _, err := w.Advance(ctx); !errors.Is(err, domain.ErrStepIncomplete) {
		t.Fatalf("searching should not advance by hand, got %v", err)
	}
	waitStep(t, changes, domain.StepProviders)

	cards, err := w.ProviderCards(ctx, domain.SortCheapest)
	if err != nil {
		t.Fatalf("provider cards: %v", err)
	}
	if cards[0].Provider.ID != "rapid-waste" {
		t.Fatalf("expected rapid-waste first, got %s", cards[0].Provider.ID)
	}
	if cards[0].ExtraDays != 5 {
		t.Fatalf("expected 5 extra days, got %d", cards[0].ExtraDays)
	}

	if err := w.SelectProvider(ctx, "no-such-provider"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := w.SelectProvider(ctx, cards[0].Provider.ID); err != nil {
		t.Fatalf("select provider: %v", err)
	}
	advance(t, w, domain.StepDetails)

	w.Store().SetCustomer(domain.Customer{Name: "Sam", Email: "sam@example", Phone: "07700900123"})
	if _, err := w.Advance(ctx); !errors.Is(err, domain.ErrStepIncomplete) {
		t.Fatalf("expected bad email to block, got %v", err)
	}
	w.Store().SetCustomer(domain.Customer{Name: "Sam", Email: "sam@example.com", Phone: "07700 900123"})
	advance(t, w, domain.StepReview)
	advance(t, w, domain.StepSubmitting)

	conf := w.Confirmation()
	if conf == nil {
		t.Fatal("expected a confirmation after submitting")
	}
	if conf.Submission.ProviderID != "rapid-waste" || conf.Submission.Totals.Total == 0 {
		t.Fatalf("unexpected submission %+v", conf.Submission)
	}
	waitStep(t, changes, domain.StepConfirmed)

	if _, err := w.Back(); !errors.Is(err, domain.ErrJourneyClosed) {
		t.Fatalf("expected no way back after confirmation, got %v", err)
	}

	w.BookAnother()
	if w.Step() != domain.StepPostcode {
		t.Fatalf("expected postcode after book another, got %s", w.Step())
	}
	if w.Confirmation() != nil {
		t.Fatal("confirmation should be cleared")
	}
	if got := w.Store().Snapshot(); got.Size != "" || len(got.Items) != 0 {
		t.Fatalf("store not reset: %+v", got)
	}
}

func TestBackFromSearchingCancelsHop(t *testing.T) {
	trigger := make(chan time.Time, 1)
	log := logger.New(logger.LevelOff, nil)
	sched := delay.New(log, delay.WithClock(func(time.Duration) <-chan time.Time { return trigger }))
	w := New(
		pricing.New(catalog.PriceTables()),
		catalog.NewMemoryCatalog(log),
		checkout.NewMockSubmitter(log),
		sched,
		log,
	)
	defer w.Close()

	fillToDates(t, w)
	advance(t, w, domain.StepSearching)
	if sched.Pending() != 1 {
		t.Fatalf("expected one pending hop, got %d", sched.Pending())
	}

	step, err := w.Back()
	if err != nil {
		t.Fatalf("back: %v", err)
	}
	if step != domain.StepDates {
		t.Fatalf("expected dates, got %s", step)
	}

	trigger <- time.Now()
	time.Sleep(20 * time.Millisecond)
	if w.Step() != domain.StepDates {
		t.Fatalf("cancelled hop moved the journey to %s", w.Step())
	}
}

func TestCloseCancelsHop(t *testing.T) {
	trigger := make(chan time.Time, 1)
	log := logger.New(logger.LevelOff, nil)
	sched := delay.New(log, delay.WithClock(func(time.Duration) <-chan time.Time { return trigger }))
	w := New(
		pricing.New(catalog.PriceTables()),
		catalog.NewMemoryCatalog(log),
		checkout.NewMockSubmitter(log),
		sched,
		log,
	)

	fillToDates(t, w)
	advance(t, w, domain.StepSearching)
	w.Close()
	trigger <- time.Now()
	time.Sleep(20 * time.Millisecond)

	if w.Step() != domain.StepSearching {
		t.Fatalf("expected to stay on searching after close, got %s", w.Step())
	}
	if _, err := w.Advance(context.Background()); !errors.Is(err, domain.ErrJourneyClosed) {
		t.Fatalf("expected ErrJourneyClosed, got %v", err)
	}
}

func TestSubmitFailureStaysOnReview(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	w := New(
		pricing.New(catalog.PriceTables()),
		catalog.NewMemoryCatalog(log),
		failingSubmitter{},
		delay.New(log),
		log,
		WithSearchDelay(time.Millisecond),
	)
	defer w.Close()
	ctx := context.Background()

	fillToDates(t, w)
	advance(t, w, domain.StepSearching)
	deadline := time.Now().Add(2 * time.Second)
	for w.Step() != domain.StepProviders {
		if time.Now().After(deadline) {
			t.Fatal("search never finished")
		}
		time.Sleep(time.Millisecond)
	}
	if err := w.SelectProvider(ctx, "eco-skips"); err != nil {
		t.Fatal(err)
	}
	advance(t, w, domain.StepDetails)
	w.Store().SetCustomer(domain.Customer{Name: "Sam", Email: "sam@example.com", Phone: "+447700900123"})
	advance(t, w, domain.StepReview)

	if _, err := w.Advance(ctx); err == nil {
		t.Fatal("expected submission error")
	}
	if w.Step() != domain.StepReview {
		t.Fatalf("expected to stay on review, got %s", w.Step())
	}
}

func TestBackFromFirstStep(t *testing.T) {
	w, _ := setupWizard(t)
	if _, err := w.Back(); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	w.Store().SetPostcode("EC1A 1BB")
	advance(t, w, domain.StepPlacement)
	step, err := w.Back()
	if err != nil || step != domain.StepPostcode {
		t.Fatalf("expected postcode, got %s (%v)", step, err)
	}
}

func TestAdjustQuantityClamps(t *testing.T) {
	w, _ := setupWizard(t)
	w.Store().SetSize("6yd")
	w.Store().ToggleItem("Mattress")

	if got := w.AdjustQuantity("Mattress", 2); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := w.AdjustQuantity("Mattress", -10); got != 1 {
		t.Fatalf("expected clamp to 1, got %d", got)
	}
	// 280 base + 25 mattress, VAT on top.
	if got := w.CurrentTotals(); got.Extras != 25 || got.Total != 366 {
		t.Fatalf("unexpected totals %+v", got)
	}
}

func TestProvidersDefaultOrder(t *testing.T) {
	w, _ := setupWizard(t)
	w.Store().SetSize("6yd")
	w.Store().SetPlacement(domain.PlacementProperty)

	got, err := w.Providers(context.Background(), domain.SortRecommended)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 8 || got[0].ID != "weekend-waste" {
		t.Fatalf("unexpected recommended order starting %s (%d providers)", got[0].ID, len(got))
	}
}
