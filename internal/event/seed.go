package event

import (
	"time"

	"github.com/youmna-rabie/eventease/internal/types"
)

// SeedEvents returns the records written when no data file exists yet.
func SeedEvents(now time.Time) []types.Event {
	return []types.Event{
		{
			ID:          "1",
			Title:       "Tech Conference 2024",
			Description: "Annual technology conference featuring industry leaders",
			Date:        "2024-06-15",
			Time:        "09:00",
			Location:    "Convention Center, Downtown",
			Category:    "Technology",
			Capacity:    500,
			Attendees:   120,
			Price:       299,
			Organizer:   "Tech Events Inc.",
			Status:      types.EventStatusCompleted,
			CreatedAt:   now,
		},
		{
			ID:          "2",
			Title:       "Music Festival",
			Description: "Three-day music festival with top artists",
			Date:        "2024-07-20",
			Time:        "18:00",
			Location:    "Central Park",
			Category:    "Entertainment",
			Capacity:    1000,
			Attendees:   850,
			Price:       150,
			Organizer:   "Music Productions",
			Status:      types.EventStatusCompleted,
			CreatedAt:   now,
		},
		{
			ID:          "3",
			Title:       "Business Networking",
			Description: "Professional networking event for entrepreneurs",
			Date:        "2024-05-10",
			Time:        "19:00",
			Location:    "Grand Hotel",
			Category:    "Business",
			Capacity:    200,
			Attendees:   180,
			Price:       75,
			Organizer:   "Business Network",
			Status:      types.EventStatusCompleted,
			CreatedAt:   now,
		},
	}
}
