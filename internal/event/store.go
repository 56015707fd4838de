package event

import (
	"github.com/youmna-rabie/eventease/internal/types"
)

// Store defines the interface for managing the event collection.
type Store interface {
	// GetAll returns every event in insertion order.
	GetAll() ([]types.Event, error)

	// GetByID retrieves an event by ID. Returns ErrNotFound if absent.
	GetByID(id string) (types.Event, error)

	// Create validates, defaults and appends a new event, then persists.
	Create(e types.Event) (types.Event, error)

	// Update merges patch over an existing event, re-validates it, then persists.
	Update(id string, patch types.EventPatch) (types.Event, error)

	// Delete removes an event and returns it.
	Delete(id string) (types.Event, error)

	// Register takes one seat. Returns ErrCapacityExceeded when the event is full.
	Register(id string) (types.Event, error)

	// Filter returns events matching every non-empty criterion, in insertion order.
	Filter(f types.EventFilter) ([]types.Event, error)

	// GetCategories returns distinct categories in first-seen order.
	GetCategories() ([]string, error)

	// GetStats aggregates counts, attendance and revenue.
	GetStats() (types.Stats, error)
}
