// Package journey holds the in-progress booking state shared by every step
// of the wizard.
//
// A Store is an explicit container: construct one per journey and pass it
// to whatever reads or writes it. Reads take a snapshot; writes replace one
// field atomically and then notify subscribers of the field that changed.
package journey

import (
	"sync"

	"github.com/hammamikhairi/skiphire/internal/domain"
)

// Field identifies which part of the state a write touched.
type Field int

const (
	FieldAll Field = iota // reset
	FieldPostcode
	FieldAddress
	FieldLocation
	FieldPlacement
	FieldWasteType
	FieldSize
	FieldItems
	FieldItemQuantities
	FieldDeliveryDate
	FieldCollectionDate
	FieldProviderID
	FieldTotals
	FieldCustomer
	FieldCompareList
)

// String returns a human-readable field name.
func (f Field) String() string {
	switch f {
	case FieldAll:
		return "all"
	case FieldPostcode:
		return "postcode"
	case FieldAddress:
		return "address"
	case FieldLocation:
		return "location"
	case FieldPlacement:
		return "placement"
	case FieldWasteType:
		return "waste_type"
	case FieldSize:
		return "size"
	case FieldItems:
		return "items"
	case FieldItemQuantities:
		return "item_quantities"
	case FieldDeliveryDate:
		return "delivery_date"
	case FieldCollectionDate:
		return "collection_date"
	case FieldProviderID:
		return "provider_id"
	case FieldTotals:
		return "totals"
	case FieldCustomer:
		return "customer"
	case FieldCompareList:
		return "compare_list"
	default:
		return "unknown"
	}
}

// affectsPrice reports whether a change to f can change checkout totals.
func (f Field) affectsPrice() bool {
	switch f {
	case FieldAll, FieldSize, FieldItems, FieldItemQuantities, FieldPlacement:
		return true
	default:
		return false
	}
}

// RecomputeFunc derives totals from the current state.
type RecomputeFunc func(domain.JourneyState) domain.Totals

// Option configures a store.
type Option func(*Store)

// WithRecompute refreshes the totals cache after every price-affecting
// write. Without it totals only change through SetTotals.
func WithRecompute(fn RecomputeFunc) Option {
	return func(s *Store) {
		s.recompute = fn
	}
}

// WithInitial seeds the store with a state other than the defaults. Reset
// still restores the defaults.
func WithInitial(state domain.JourneyState) Option {
	return func(s *Store) {
		s.state = state.Clone()
	}
}

// Store is the single source of truth for one journey. Safe for concurrent
// use.
type Store struct {
	mu        sync.RWMutex
	state     domain.JourneyState
	recompute RecomputeFunc

	subMu  sync.Mutex
	subs   map[int]func(Field)
	nextID int
}

// New creates a store holding the default journey state.
func New(opts ...Option) *Store {
	s := &Store{
		state: domain.DefaultJourneyState(),
		subs:  make(map[int]func(Field)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.recompute != nil {
		s.state.Totals = s.recompute(s.state)
	}
	return s
}

// Subscribe registers fn to be called after every write with the field that
// changed. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Field)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() domain.JourneyState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Submission returns the read-only snapshot handed to checkout.
func (s *Store) Submission() domain.Submission {
	st := s.Snapshot()
	return domain.Submission{
		Size:           st.Size,
		Items:          st.Items,
		ItemQuantities: st.ItemQuantities,
		Placement:      st.Placement,
		Totals:         st.Totals,
		ProviderID:     st.ProviderID,
		Customer:       st.Customer,
	}
}

// Totals returns the cached totals.
func (s *Store) Totals() domain.Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Totals
}

// update applies fn under the write lock, refreshes the totals cache when
// the field affects price, then notifies subscribers outside the lock.
func (s *Store) update(f Field, fn func(st *domain.JourneyState)) {
	s.mu.Lock()
	fn(&s.state)
	refreshed := false
	if s.recompute != nil && f.affectsPrice() {
		s.state.Totals = s.recompute(s.state)
		refreshed = true
	}
	s.mu.Unlock()

	s.notify(f)
	if refreshed && f != FieldAll {
		s.notify(FieldTotals)
	}
}

func (s *Store) notify(f Field) {
	s.subMu.Lock()
	fns := make([]func(Field), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(f)
	}
}

func (s *Store) SetPostcode(postcode string) {
	s.update(FieldPostcode, func(st *domain.JourneyState) { st.Location.Postcode = postcode })
}

func (s *Store) SetAddress(address string) {
	s.update(FieldAddress, func(st *domain.JourneyState) { st.Location.Address = address })
}

// SetLocation overwrites the coordinate and word code together.
func (s *Store) SetLocation(lat, lng float64, wordCode string) {
	s.update(FieldLocation, func(st *domain.JourneyState) {
		st.Location.Lat = lat
		st.Location.Lng = lng
		st.Location.WordCode = wordCode
	})
}

func (s *Store) SetPlacement(p domain.Placement) {
	s.update(FieldPlacement, func(st *domain.JourneyState) { st.Placement = p })
}

func (s *Store) SetWasteType(w domain.WasteType) {
	s.update(FieldWasteType, func(st *domain.JourneyState) { st.WasteType = w })
}

func (s *Store) SetSize(size domain.Size) {
	s.update(FieldSize, func(st *domain.JourneyState) { st.Size = size })
}

func (s *Store) SetProviderID(id string) {
	s.update(FieldProviderID, func(st *domain.JourneyState) { st.ProviderID = id })
}

func (s *Store) SetDeliveryDate(d domain.DateSpec) {
	s.update(FieldDeliveryDate, func(st *domain.JourneyState) { st.DeliveryDate = d })
}

func (s *Store) SetCollectionDate(d domain.DateSpec) {
	s.update(FieldCollectionDate, func(st *domain.JourneyState) { st.CollectionDate = d })
}

func (s *Store) SetCustomer(c domain.Customer) {
	s.update(FieldCustomer, func(st *domain.JourneyState) { st.Customer = c })
}

func (s *Store) SetTotals(t domain.Totals) {
	s.update(FieldTotals, func(st *domain.JourneyState) { st.Totals = t })
}

// ToggleItem removes label if selected, otherwise appends it. Quantities
// are left untouched.
func (s *Store) ToggleItem(label string) {
	s.update(FieldItems, func(st *domain.JourneyState) {
		for i, it := range st.Items {
			if it == label {
				st.Items = append(st.Items[:i:i], st.Items[i+1:]...)
				return
			}
		}
		st.Items = append(st.Items, label)
	})
}

// SetItemQuantity overwrites the quantity for label. Values below 1 are
// stored as given; pricing clamps them.
func (s *Store) SetItemQuantity(label string, qty int) {
	s.update(FieldItemQuantities, func(st *domain.JourneyState) {
		if st.ItemQuantities == nil {
			st.ItemQuantities = make(map[string]int)
		}
		st.ItemQuantities[label] = qty
	})
}

// SetItems replaces the whole item set, dropping duplicates.
func (s *Store) SetItems(items []string) {
	s.update(FieldItems, func(st *domain.JourneyState) {
		seen := make(map[string]bool, len(items))
		out := make([]string, 0, len(items))
		for _, it := range items {
			if seen[it] {
				continue
			}
			seen[it] = true
			out = append(out, it)
		}
		st.Items = out
	})
}

// ToggleCompare toggles id in the compare list. Adding beyond MaxCompare
// entries is silently ignored.
func (s *Store) ToggleCompare(id string) {
	s.update(FieldCompareList, func(st *domain.JourneyState) {
		for i, c := range st.CompareList {
			if c == id {
				st.CompareList = append(st.CompareList[:i:i], st.CompareList[i+1:]...)
				return
			}
		}
		if len(st.CompareList) >= domain.MaxCompare {
			return
		}
		st.CompareList = append(st.CompareList, id)
	})
}

// Reset restores every field to its default in one step.
func (s *Store) Reset() {
	s.update(FieldAll, func(st *domain.JourneyState) { *st = domain.DefaultJourneyState() })
}
