package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/youmna-rabie/eventease/internal/event"
	"github.com/youmna-rabie/eventease/internal/types"
)

const maxBodyBytes = 1 << 20

// Server exposes the event store over HTTP.
type Server struct {
	store  event.Store
	router chi.Router
	logger *slog.Logger
}

// NewServer creates a Server wired with the given store.
func NewServer(store event.Store, logger *slog.Logger) *Server {
	s := &Server{
		store:  store,
		logger: logger,
	}

	r := newRouter(logger)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.Get("/", s.handleListEvents)
			r.Post("/", s.handleCreateEvent)
			r.Get("/{id}", s.handleGetEvent)
			r.Put("/{id}", s.handleUpdateEvent)
			r.Delete("/{id}", s.handleDeleteEvent)
			r.Post("/{id}/register", s.handleRegister)
		})
		r.Get("/categories", s.handleCategories)
		r.Get("/stats", s.handleStats)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// response is the JSON envelope every API route returns.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Total   *int   `json:"total,omitempty"`
}

// createEventRequest is the payload for POST /api/events.
type createEventRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Location    string  `json:"location"`
	Category    string  `json:"category"`
	Capacity    int     `json:"capacity"`
	Price       float64 `json:"price"`
	Organizer   string  `json:"organizer"`
}

// handleHealth responds to GET /health with a simple liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListEvents processes GET /api/events[?category&status&search].
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	events, err := s.store.Filter(types.EventFilter{
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Search:   q.Get("search"),
	})
	if err != nil {
		s.writeStoreError(w, r, err, "fetching events")
		return
	}
	total := len(events)
	writeJSON(w, http.StatusOK, response{Success: true, Data: events, Total: &total})
}

// handleGetEvent processes GET /api/events/{id}.
func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := s.store.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, r, err, "fetching event")
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Data: ev})
}

// handleCreateEvent processes POST /api/events.
func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Message: "Invalid request body: " + err.Error()})
		return
	}
	if req.Title == "" || req.Description == "" || req.Date == "" || req.Location == "" || req.Category == "" {
		writeJSON(w, http.StatusBadRequest, response{Message: "Missing required fields"})
		return
	}

	ev, err := s.store.Create(types.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Category:    req.Category,
		Capacity:    req.Capacity,
		Price:       req.Price,
		Organizer:   req.Organizer,
	})
	if err != nil {
		s.writeStoreError(w, r, err, "creating event")
		return
	}
	writeJSON(w, http.StatusCreated, response{Success: true, Message: "Event created successfully", Data: ev})
}

// handleUpdateEvent processes PUT /api/events/{id}.
func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var patch types.EventPatch
	if err := decodeBody(w, r, &patch); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Message: "Invalid request body: " + err.Error()})
		return
	}

	ev, err := s.store.Update(chi.URLParam(r, "id"), patch)
	if err != nil {
		s.writeStoreError(w, r, err, "updating event")
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Message: "Event updated successfully", Data: ev})
}

// handleDeleteEvent processes DELETE /api/events/{id}.
func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := s.store.Delete(chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, r, err, "deleting event")
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Message: "Event deleted successfully", Data: ev})
}

// handleRegister processes POST /api/events/{id}/register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	ev, err := s.store.Register(chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, r, err, "registering for event")
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Message: "Successfully registered for event", Data: ev})
}

// handleCategories processes GET /api/categories.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.GetCategories()
	if err != nil {
		s.writeStoreError(w, r, err, "fetching categories")
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Data: categories})
}

// handleStats processes GET /api/stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetStats()
	if err != nil {
		s.writeStoreError(w, r, err, "fetching statistics")
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Data: stats})
}

// writeStoreError maps store errors to HTTP status codes. Lookup and policy
// errors are reported to the client; anything else is logged and hidden
// behind a 500.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, event.ErrNotReady):
		writeJSON(w, http.StatusServiceUnavailable, response{Message: "Storage not ready yet"})
	case errors.Is(err, event.ErrNotFound):
		writeJSON(w, http.StatusNotFound, response{Message: "Event not found"})
	case errors.Is(err, event.ErrCapacityExceeded):
		writeJSON(w, http.StatusBadRequest, response{Message: "Event is at full capacity"})
	case errors.Is(err, event.ErrInvalidState):
		writeJSON(w, http.StatusBadRequest, response{Message: err.Error()})
	default:
		s.logger.Error("store operation failed",
			"action", action,
			"error", err,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
		writeJSON(w, http.StatusInternalServerError, response{Message: "Error " + action})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
