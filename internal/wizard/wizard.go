// Package wizard implements the booking journey state machine: the ordered
// steps, what each needs before the user can move on, and the timed hops
// through the searching and submitting screens.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/skiphire/internal/delay"
	"github.com/hammamikhairi/skiphire/internal/domain"
	"github.com/hammamikhairi/skiphire/internal/journey"
	"github.com/hammamikhairi/skiphire/internal/logger"
	"github.com/hammamikhairi/skiphire/internal/pricing"
	"github.com/hammamikhairi/skiphire/internal/ranking"
)

// Option configures the wizard.
type Option func(*Wizard)

// WithSearchDelay sets how long the searching screen shows before the
// provider list appears.
func WithSearchDelay(d time.Duration) Option {
	return func(w *Wizard) {
		w.searchDelay = d
	}
}

// WithSubmitDelay sets how long the submitting screen shows before the
// confirmation.
func WithSubmitDelay(d time.Duration) Option {
	return func(w *Wizard) {
		w.submitDelay = d
	}
}

// WithStore runs the wizard over an existing store instead of a fresh one.
// The store should have been built with journey.WithRecompute.
func WithStore(s *journey.Store) Option {
	return func(w *Wizard) {
		w.store = s
	}
}

// WithStepListener registers fn to be called after every step change,
// including the timed ones. fn runs on the goroutine that made the change,
// outside the wizard's lock.
func WithStepListener(fn func(from, to domain.Step)) Option {
	return func(w *Wizard) {
		w.onStep = fn
	}
}

// Wizard drives one journey. It depends only on interfaces plus the pure
// pricing engine and is safe for concurrent use.
type Wizard struct {
	store     *journey.Store
	prices    *pricing.Engine
	catalog   domain.ProviderCatalog
	submitter domain.Submitter
	sched     *delay.Scheduler
	log       *logger.Logger

	searchDelay time.Duration
	submitDelay time.Duration
	onStep      func(from, to domain.Step)

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	step         domain.Step
	pending      *delay.Task
	confirmation *domain.Confirmation
	closed       bool
}

// New creates a wizard positioned on the first step.
func New(prices *pricing.Engine, catalog domain.ProviderCatalog, submitter domain.Submitter, sched *delay.Scheduler, log *logger.Logger, opts ...Option) *Wizard {
	w := &Wizard{
		prices:      prices,
		catalog:     catalog,
		submitter:   submitter,
		sched:       sched,
		log:         log,
		searchDelay: 1500 * time.Millisecond,
		submitDelay: 2 * time.Second,
		step:        domain.StepPostcode,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.store == nil {
		w.store = journey.New(journey.WithRecompute(prices.TotalsFor))
	}
	w.ctx, w.cancel = context.WithCancel(context.Background())
	return w
}

// Store returns the journey state the wizard is driving.
func (w *Wizard) Store() *journey.Store { return w.store }

// Step returns the current step.
func (w *Wizard) Step() domain.Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Confirmation returns the accepted booking, or nil before submission.
func (w *Wizard) Confirmation() *domain.Confirmation {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.confirmation
}

// CurrentTotals returns the checkout totals for the current state.
func (w *Wizard) CurrentTotals() domain.Totals {
	return w.store.Totals()
}

// CanContinue returns nil when step's prerequisites are satisfied by the
// current state, or an error wrapping domain.ErrStepIncomplete saying what
// is missing.
func (w *Wizard) CanContinue(ctx context.Context, step domain.Step) error {
	s := w.store.Snapshot()
	switch step {
	case domain.StepPostcode:
		if !ValidPostcode(s.Location.Postcode) {
			return incomplete("enter a valid UK postcode")
		}
	case domain.StepPlacement:
		if s.Placement == domain.PlacementUnset {
			return incomplete("choose where the skip will go")
		}
	case domain.StepWaste:
		if s.WasteType == "" {
			return incomplete("choose a waste type")
		}
	case domain.StepSize:
		if s.Size == "" {
			return incomplete("choose a skip size")
		}
	case domain.StepItems, domain.StepReview:
	case domain.StepDates:
		return checkDates(s.DeliveryDate, s.CollectionDate)
	case domain.StepSearching, domain.StepSubmitting:
		return incomplete("please wait")
	case domain.StepProviders:
		if s.ProviderID == "" {
			return incomplete("pick a provider")
		}
		if _, err := w.catalog.Get(ctx, s.ProviderID); err != nil {
			return incomplete("provider %q is not available", s.ProviderID)
		}
	case domain.StepDetails:
		return checkCustomer(s.Customer)
	case domain.StepConfirmed:
		return incomplete("booking complete")
	}
	return nil
}

// Advance moves to the next step if the current one is complete. Leaving
// the review step submits the booking; if that fails the wizard stays on
// review.
func (w *Wizard) Advance(ctx context.Context) (domain.Step, error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return w.step, domain.ErrJourneyClosed
	}
	from := w.step
	w.mu.Unlock()

	if err := w.CanContinue(ctx, from); err != nil {
		return from, err
	}

	switch from {
	case domain.StepPlacement:
		s := w.store.Snapshot()
		w.store.SetLocation(s.Location.Lat, s.Location.Lng, WordCode(s.Location.Lat, s.Location.Lng))
	case domain.StepReview:
		conf, err := w.submitter.Submit(ctx, w.store.Submission())
		if err != nil {
			w.log.Warn("submission rejected: %v", err)
			return from, fmt.Errorf("submitting booking: %w", err)
		}
		w.mu.Lock()
		w.confirmation = conf
		w.mu.Unlock()
	}

	return w.moveFrom(from, from+1)
}

// Back returns to the previous step. Leaving the searching screen cancels
// its timed hop. Once a booking is submitted there is no going back.
func (w *Wizard) Back() (domain.Step, error) {
	w.mu.Lock()
	from := w.step
	closed := w.closed
	w.mu.Unlock()

	switch {
	case closed:
		return from, domain.ErrJourneyClosed
	case from == domain.StepPostcode:
		return from, fmt.Errorf("%w: already at the first step", domain.ErrInvalidInput)
	case from >= domain.StepSubmitting:
		return from, fmt.Errorf("%w: booking already submitted", domain.ErrJourneyClosed)
	}

	to := from - 1
	if to == domain.StepSearching {
		to = domain.StepDates
	}
	return w.moveFrom(from, to)
}

// moveFrom switches step if the wizard is still on from. It cancels any
// timed hop owned by the step being left and schedules the one owned by
// the step being entered.
func (w *Wizard) moveFrom(from, to domain.Step) (domain.Step, error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return w.step, domain.ErrJourneyClosed
	}
	if w.step != from {
		cur := w.step
		w.mu.Unlock()
		return cur, fmt.Errorf("%w: journey moved to %s", domain.ErrStepIncomplete, cur)
	}
	w.pending.Cancel()
	w.pending = nil
	w.step = to

	switch to {
	case domain.StepSearching:
		w.pending = w.sched.After(w.ctx, "search", w.searchDelay, func() {
			w.autoAdvance(domain.StepSearching, domain.StepProviders)
		})
	case domain.StepSubmitting:
		w.pending = w.sched.After(w.ctx, "submit", w.submitDelay, func() {
			w.autoAdvance(domain.StepSubmitting, domain.StepConfirmed)
		})
	}
	onStep := w.onStep
	w.mu.Unlock()

	w.log.Debug("step %s -> %s", from, to)
	if onStep != nil {
		onStep(from, to)
	}
	return to, nil
}

func (w *Wizard) autoAdvance(from, to domain.Step) {
	if _, err := w.moveFrom(from, to); err != nil && !errors.Is(err, domain.ErrJourneyClosed) {
		w.log.Debug("timed hop %s -> %s skipped: %v", from, to, err)
	}
}

// Providers returns the catalog ranked for the current state.
func (w *Wizard) Providers(ctx context.Context, mode domain.SortMode) ([]*domain.Provider, error) {
	all, err := w.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing providers: %w", err)
	}
	s := w.store.Snapshot()
	return ranking.SortProviders(all, mode, s.Size, s.Items, s.Placement), nil
}

// ProviderCards returns priced cards in ranking order, including any
// extra-day charges the chosen dates imply.
func (w *Wizard) ProviderCards(ctx context.Context, mode domain.SortMode) ([]domain.ProviderQuote, error) {
	all, err := w.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing providers: %w", err)
	}
	return ranking.Quotes(all, mode, w.store.Snapshot()), nil
}

// SelectProvider records the chosen provider after checking it exists.
func (w *Wizard) SelectProvider(ctx context.Context, id string) error {
	if _, err := w.catalog.Get(ctx, id); err != nil {
		return fmt.Errorf("selecting provider: %w", err)
	}
	w.store.SetProviderID(id)
	return nil
}

// AdjustQuantity changes an item's quantity by delta, never going below 1,
// and returns the new quantity.
func (w *Wizard) AdjustQuantity(item string, delta int) int {
	s := w.store.Snapshot()
	qty := pricing.Quantity(s.ItemQuantities, item) + delta
	if qty < 1 {
		qty = 1
	}
	w.store.SetItemQuantity(item, qty)
	return qty
}

// BookAnother clears the journey and starts again at the first step.
func (w *Wizard) BookAnother() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.pending.Cancel()
	w.pending = nil
	from := w.step
	w.step = domain.StepPostcode
	w.confirmation = nil
	onStep := w.onStep
	w.mu.Unlock()

	w.store.Reset()
	w.log.Info("journey reset")
	if onStep != nil && from != domain.StepPostcode {
		onStep(from, domain.StepPostcode)
	}
}

// Close cancels any pending timed hop. The wizard refuses further moves.
func (w *Wizard) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.pending.Cancel()
	w.pending = nil
	w.mu.Unlock()
	w.cancel()
}
