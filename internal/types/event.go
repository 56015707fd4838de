package types

import (
	"errors"
	"fmt"
	"time"
)

// EventStatus represents the lifecycle state of an event.
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusCompleted EventStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s EventStatus) Valid() bool {
	return s == EventStatusUpcoming || s == EventStatusCompleted
}

// Layouts for the date and time fields as they appear in the data file.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Defaults applied to a new event when the caller leaves a field empty.
const (
	DefaultCapacity  = 100
	DefaultTime      = "00:00"
	DefaultOrganizer = "Anonymous"
)

// ErrInvalidEvent is wrapped by every error returned from Validate.
var ErrInvalidEvent = errors.New("invalid event")

// Event is a single scheduled event record.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	Location    string      `json:"location"`
	Category    string      `json:"category"`
	Capacity    int         `json:"capacity"`
	Attendees   int         `json:"attendees"`
	Price       float64     `json:"price"`
	Organizer   string      `json:"organizer"`
	Status      EventStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Remaining returns the number of free seats.
func (e Event) Remaining() int {
	return e.Capacity - e.Attendees
}

// IsFull reports whether no seats remain.
func (e Event) IsFull() bool {
	return e.Attendees >= e.Capacity
}

// Validate checks the record invariants.
func (e Event) Validate() error {
	switch {
	case e.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidEvent)
	case e.Description == "":
		return fmt.Errorf("%w: description is required", ErrInvalidEvent)
	case e.Location == "":
		return fmt.Errorf("%w: location is required", ErrInvalidEvent)
	case e.Date == "":
		return fmt.Errorf("%w: date is required", ErrInvalidEvent)
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidEvent, e.Date)
	}
	if e.Time != "" {
		if _, err := time.Parse(TimeLayout, e.Time); err != nil {
			return fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidEvent, e.Time)
		}
	}
	if e.Capacity < 0 {
		return fmt.Errorf("%w: capacity must be non-negative, got %d", ErrInvalidEvent, e.Capacity)
	}
	if e.Attendees < 0 {
		return fmt.Errorf("%w: attendees must be non-negative, got %d", ErrInvalidEvent, e.Attendees)
	}
	if e.Attendees > e.Capacity {
		return fmt.Errorf("%w: attendees %d exceed capacity %d", ErrInvalidEvent, e.Attendees, e.Capacity)
	}
	if e.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative, got %g", ErrInvalidEvent, e.Price)
	}
	if !e.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidEvent, e.Status)
	}
	return nil
}

// EventPatch is a partial update. Nil fields are left untouched by Apply.
// ID and CreatedAt are immutable and have no patch field.
type EventPatch struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	Date        *string      `json:"date,omitempty"`
	Time        *string      `json:"time,omitempty"`
	Location    *string      `json:"location,omitempty"`
	Category    *string      `json:"category,omitempty"`
	Capacity    *int         `json:"capacity,omitempty"`
	Attendees   *int         `json:"attendees,omitempty"`
	Price       *float64     `json:"price,omitempty"`
	Organizer   *string      `json:"organizer,omitempty"`
	Status      *EventStatus `json:"status,omitempty"`
}

// Apply returns a copy of e with every present patch field merged in.
func (p EventPatch) Apply(e Event) Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Capacity != nil {
		e.Capacity = *p.Capacity
	}
	if p.Attendees != nil {
		e.Attendees = *p.Attendees
	}
	if p.Price != nil {
		e.Price = *p.Price
	}
	if p.Organizer != nil {
		e.Organizer = *p.Organizer
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	return e
}

// EventFilter selects events. Empty fields match everything; set fields are ANDed.
type EventFilter struct {
	Category string // case-insensitive exact match
	Status   string // exact match
	Search   string // case-insensitive substring of title or description
}

// Stats aggregates the whole collection.
type Stats struct {
	TotalEvents    int     `json:"totalEvents"`
	UpcomingCount  int     `json:"upcomingCount"`
	CompletedCount int     `json:"completedCount"`
	TotalAttendees int     `json:"totalAttendees"`
	TotalRevenue   float64 `json:"totalRevenue"`
}
