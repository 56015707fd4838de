package event

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/youmna-rabie/eventease/internal/persist"
	"github.com/youmna-rabie/eventease/internal/types"
	"golang.org/x/text/cases"
)

var (
	ErrNotReady         = errors.New("event store not initialized")
	ErrNotFound         = errors.New("event not found")
	ErrInvalidState     = errors.New("invalid event state")
	ErrCapacityExceeded = errors.New("event is at full capacity")
	ErrInvalidPolicy    = errors.New("unknown capacity policy")
	ErrNoPersister      = errors.New("persister is required")
)

var _ Store = (*MemoryStore)(nil)

// CapacityPolicy decides what Update does when a merge leaves more attendees
// than seats.
type CapacityPolicy string

const (
	// CapacityReject fails the update with ErrInvalidState.
	CapacityReject CapacityPolicy = "reject"
	// CapacityClamp lowers attendees to the new capacity.
	CapacityClamp CapacityPolicy = "clamp"
)

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithLogger sets the logger used for store activity.
func WithLogger(logger *slog.Logger) Option {
	return func(s *MemoryStore) { s.logger = logger }
}

// WithCapacityPolicy sets how Update handles attendees above capacity.
func WithCapacityPolicy(p CapacityPolicy) Option {
	return func(s *MemoryStore) { s.policy = p }
}

// WithClock overrides the time source used for createdAt and seed data.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) { s.now = now }
}

// MemoryStore holds the authoritative event collection in memory and writes
// the whole collection through its Persister on every mutation.
//
// Mutations are copy-on-write: the next collection is built and saved first,
// and only replaces the in-memory state once Save succeeds. A failed save
// therefore leaves memory and disk in agreement.
type MemoryStore struct {
	mu        sync.RWMutex
	events    []types.Event  // insertion order
	index     map[string]int // event ID → position in events
	persister persist.Persister
	policy    CapacityPolicy
	logger    *slog.Logger
	now       func() time.Time
	ready     bool
}

// NewMemoryStore creates a MemoryStore. Init must be called before use.
func NewMemoryStore(p persist.Persister, opts ...Option) (*MemoryStore, error) {
	if p == nil {
		return nil, ErrNoPersister
	}
	s := &MemoryStore{
		index:     make(map[string]int),
		persister: p,
		policy:    CapacityReject,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.policy != CapacityReject && s.policy != CapacityClamp {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPolicy, s.policy)
	}
	return s, nil
}

// Init loads the collection. A missing data file is replaced by the seed
// events, which are persisted before Init returns. Corrupt data is never
// overwritten.
func (s *MemoryStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.persister.Load()
	switch {
	case errors.Is(err, persist.ErrNotExist):
		events = SeedEvents(s.now())
		if err := s.persister.Save(events); err != nil {
			return fmt.Errorf("saving seed events: %w", err)
		}
		s.logger.Info("event store seeded", "count", len(events))
	case err != nil:
		return fmt.Errorf("loading events: %w", err)
	default:
		if err := checkLoaded(events); err != nil {
			return fmt.Errorf("loading events: %w", err)
		}
		s.logger.Info("event store loaded", "count", len(events))
	}

	s.events = events
	s.reindex()
	s.ready = true
	return nil
}

// checkLoaded rejects collections that would break the id index or the
// attendance invariant.
func checkLoaded(events []types.Event) error {
	seen := make(map[string]struct{}, len(events))
	for i, e := range events {
		if e.ID == "" {
			return fmt.Errorf("%w: record %d has no id", persist.ErrCorrupt, i)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", persist.ErrCorrupt, e.ID)
		}
		seen[e.ID] = struct{}{}
		if e.Attendees < 0 || e.Attendees > e.Capacity {
			return fmt.Errorf("%w: event %q has %d attendees for capacity %d",
				persist.ErrCorrupt, e.ID, e.Attendees, e.Capacity)
		}
	}
	return nil
}

// Ready reports whether Init has completed.
func (s *MemoryStore) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Count returns the number of events currently stored.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Flush rewrites the current collection.
func (s *MemoryStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return ErrNotReady
	}
	if err := s.persister.Save(s.events); err != nil {
		return fmt.Errorf("flushing events: %w", err)
	}
	return nil
}

// GetAll returns a copy of every event in insertion order.
func (s *MemoryStore) GetAll() ([]types.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ready {
		return nil, ErrNotReady
	}
	return slices.Clone(s.events), nil
}

// GetByID retrieves an event by ID in O(1) time.
func (s *MemoryStore) GetByID(id string) (types.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ready {
		return types.Event{}, ErrNotReady
	}
	pos, ok := s.index[id]
	if !ok {
		return types.Event{}, ErrNotFound
	}
	return s.events[pos], nil
}

// Create fills defaults, validates and appends e. A caller-supplied ID,
// attendee count, status or creation time is kept.
func (s *MemoryStore) Create(e types.Event) (types.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return types.Event{}, ErrNotReady
	}

	if e.ID == "" {
		e.ID = s.newID()
	} else if _, exists := s.index[e.ID]; exists {
		return types.Event{}, fmt.Errorf("%w: id %q already exists", ErrInvalidState, e.ID)
	}
	if e.Capacity == 0 {
		e.Capacity = types.DefaultCapacity
	}
	if e.Time == "" {
		e.Time = types.DefaultTime
	}
	if e.Organizer == "" {
		e.Organizer = types.DefaultOrganizer
	}
	if e.Status == "" {
		e.Status = types.EventStatusUpcoming
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	if err := e.Validate(); err != nil {
		return types.Event{}, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	next := make([]types.Event, len(s.events), len(s.events)+1)
	copy(next, s.events)
	next = append(next, e)
	if err := s.commit(next); err != nil {
		return types.Event{}, fmt.Errorf("creating event %s: %w", e.ID, err)
	}

	s.logger.Info("event created", "event_id", e.ID, "title", e.Title)
	return e, nil
}

// newID returns a fresh ID not present in the index. Caller must hold mu.
func (s *MemoryStore) newID() string {
	for {
		id := uuid.NewString()
		if _, exists := s.index[id]; !exists {
			return id
		}
	}
}

// Update merges patch over the stored event and re-checks every invariant
// on the merged result.
func (s *MemoryStore) Update(id string, patch types.EventPatch) (types.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return types.Event{}, ErrNotReady
	}
	pos, ok := s.index[id]
	if !ok {
		return types.Event{}, ErrNotFound
	}

	updated := patch.Apply(s.events[pos])
	if updated.Time == "" {
		updated.Time = types.DefaultTime
	}
	if s.policy == CapacityClamp && updated.Capacity >= 0 && updated.Attendees > updated.Capacity {
		s.logger.Warn("clamping attendees to capacity",
			"event_id", id,
			"attendees", updated.Attendees,
			"capacity", updated.Capacity,
		)
		updated.Attendees = updated.Capacity
	}
	if err := updated.Validate(); err != nil {
		return types.Event{}, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	next := slices.Clone(s.events)
	next[pos] = updated
	if err := s.commit(next); err != nil {
		return types.Event{}, fmt.Errorf("updating event %s: %w", id, err)
	}

	s.logger.Info("event updated", "event_id", id)
	return updated, nil
}

// Delete removes an event and returns it.
func (s *MemoryStore) Delete(id string) (types.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return types.Event{}, ErrNotReady
	}
	pos, ok := s.index[id]
	if !ok {
		return types.Event{}, ErrNotFound
	}

	deleted := s.events[pos]
	next := slices.Delete(slices.Clone(s.events), pos, pos+1)
	if err := s.commit(next); err != nil {
		return types.Event{}, fmt.Errorf("deleting event %s: %w", id, err)
	}

	s.logger.Info("event deleted", "event_id", id)
	return deleted, nil
}

// Register takes one seat. The capacity check, increment and save happen
// under a single write lock, so concurrent registrations never overbook.
func (s *MemoryStore) Register(id string) (types.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return types.Event{}, ErrNotReady
	}
	pos, ok := s.index[id]
	if !ok {
		return types.Event{}, ErrNotFound
	}

	ev := s.events[pos]
	if ev.IsFull() {
		return types.Event{}, ErrCapacityExceeded
	}
	ev.Attendees++

	next := slices.Clone(s.events)
	next[pos] = ev
	if err := s.commit(next); err != nil {
		return types.Event{}, fmt.Errorf("registering for event %s: %w", id, err)
	}

	s.logger.Info("registration accepted", "event_id", id, "attendees", ev.Attendees, "capacity", ev.Capacity)
	return ev, nil
}

// Filter returns events matching every non-empty criterion.
func (s *MemoryStore) Filter(f types.EventFilter) ([]types.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ready {
		return nil, ErrNotReady
	}

	fold := cases.Fold()
	category := fold.String(f.Category)
	search := fold.String(f.Search)

	result := make([]types.Event, 0, len(s.events))
	for _, e := range s.events {
		if f.Category != "" && fold.String(e.Category) != category {
			continue
		}
		if f.Status != "" && string(e.Status) != f.Status {
			continue
		}
		if f.Search != "" &&
			!strings.Contains(fold.String(e.Title), search) &&
			!strings.Contains(fold.String(e.Description), search) {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

// GetCategories returns distinct categories in first-seen order.
func (s *MemoryStore) GetCategories() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ready {
		return nil, ErrNotReady
	}

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, e := range s.events {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		categories = append(categories, e.Category)
	}
	return categories, nil
}

// GetStats aggregates the collection. Events with a status outside the
// known set count toward TotalEvents only.
func (s *MemoryStore) GetStats() (types.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ready {
		return types.Stats{}, ErrNotReady
	}

	stats := types.Stats{TotalEvents: len(s.events)}
	for _, e := range s.events {
		switch e.Status {
		case types.EventStatusUpcoming:
			stats.UpcomingCount++
		case types.EventStatusCompleted:
			stats.CompletedCount++
		default:
			s.logger.Warn("event has unknown status", "event_id", e.ID, "status", e.Status)
		}
		stats.TotalAttendees += e.Attendees
		stats.TotalRevenue += float64(e.Attendees) * e.Price
	}
	return stats, nil
}

// commit persists next and, on success, makes it the current collection.
// Caller must hold the write lock.
func (s *MemoryStore) commit(next []types.Event) error {
	if err := s.persister.Save(next); err != nil {
		return err
	}
	s.events = next
	s.reindex()
	return nil
}

func (s *MemoryStore) reindex() {
	clear(s.index)
	for i, e := range s.events {
		s.index[e.ID] = i
	}
}
