package event

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/youmna-rabie/eventease/internal/persist"
	"github.com/youmna-rabie/eventease/internal/types"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func makeEvent(id, category string, status types.EventStatus) types.Event {
	return types.Event{
		ID:          id,
		Title:       "Event " + id,
		Description: "Description of " + id,
		Date:        "2025-09-01",
		Time:        "10:00",
		Location:    "Somewhere",
		Category:    category,
		Capacity:    10,
		Organizer:   "Org",
		Status:      status,
		CreatedAt:   fixedNow,
	}
}

// flakyPersister wraps a Persister and fails Save while failSave is set.
type flakyPersister struct {
	persist.Persister
	mu       sync.Mutex
	failSave bool
	saves    int
}

func (f *flakyPersister) Save(events []types.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return fmt.Errorf("%w: disk full", persist.ErrIO)
	}
	f.saves++
	return f.Persister.Save(events)
}

func (f *flakyPersister) setFail(v bool) {
	f.mu.Lock()
	f.failSave = v
	f.mu.Unlock()
}

// newTestStore writes events to a fresh data file and returns an initialized store.
func newTestStore(t *testing.T, events ...types.Event) (*MemoryStore, *persist.JSONFile) {
	t.Helper()
	file := persist.NewJSONFile(filepath.Join(t.TempDir(), "events.json"))
	if err := file.Save(events); err != nil {
		t.Fatal(err)
	}
	store, err := NewMemoryStore(file, WithClock(fixedClock))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return store, file
}

func newFlakyStore(t *testing.T, events ...types.Event) (*MemoryStore, *flakyPersister) {
	t.Helper()
	file := persist.NewJSONFile(filepath.Join(t.TempDir(), "events.json"))
	if err := file.Save(events); err != nil {
		t.Fatal(err)
	}
	fp := &flakyPersister{Persister: file}
	store, err := NewMemoryStore(fp, WithClock(fixedClock))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return store, fp
}

func assertInvariant(t *testing.T, s *MemoryStore) {
	t.Helper()
	all, err := s.GetAll()
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range all {
		if e.Attendees < 0 || e.Attendees > e.Capacity {
			t.Errorf("event %s: attendees %d outside [0, %d]", e.ID, e.Attendees, e.Capacity)
		}
	}
}

func TestNewMemoryStore_Errors(t *testing.T) {
	if _, err := NewMemoryStore(nil); !errors.Is(err, ErrNoPersister) {
		t.Errorf("nil persister: error = %v, want ErrNoPersister", err)
	}

	file := persist.NewJSONFile(filepath.Join(t.TempDir(), "events.json"))
	if _, err := NewMemoryStore(file, WithCapacityPolicy("ignore")); !errors.Is(err, ErrInvalidPolicy) {
		t.Errorf("bad policy: error = %v, want ErrInvalidPolicy", err)
	}
}

func TestOperationsBeforeInit(t *testing.T) {
	file := persist.NewJSONFile(filepath.Join(t.TempDir(), "events.json"))
	store, err := NewMemoryStore(file)
	if err != nil {
		t.Fatal(err)
	}
	if store.Ready() {
		t.Fatal("store reports ready before Init")
	}

	checks := map[string]error{}
	_, checks["GetAll"] = store.GetAll()
	_, checks["GetByID"] = store.GetByID("1")
	_, checks["Create"] = store.Create(makeEvent("", "Tech", ""))
	_, checks["Update"] = store.Update("1", types.EventPatch{})
	_, checks["Delete"] = store.Delete("1")
	_, checks["Register"] = store.Register("1")
	_, checks["Filter"] = store.Filter(types.EventFilter{})
	_, checks["GetCategories"] = store.GetCategories()
	_, checks["GetStats"] = store.GetStats()
	checks["Flush"] = store.Flush()

	for op, err := range checks {
		if !errors.Is(err, ErrNotReady) {
			t.Errorf("%s before Init: error = %v, want ErrNotReady", op, err)
		}
	}

	if _, err := os.Stat(file.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("operations before Init touched the data file: %v", err)
	}
}

func TestInitSeedsMissingFile(t *testing.T) {
	file := persist.NewJSONFile(filepath.Join(t.TempDir(), "data", "events.json"))
	store, err := NewMemoryStore(file, WithClock(fixedClock))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if !store.Ready() {
		t.Fatal("store not ready after Init")
	}

	all, _ := store.GetAll()
	want := SeedEvents(fixedNow)
	if len(all) != len(want) || len(all) != 3 {
		t.Fatalf("seeded %d events, want 3", len(all))
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("seed[%d] = %+v, want %+v", i, all[i], want[i])
		}
		if all[i].Status != types.EventStatusCompleted {
			t.Errorf("seed[%d].Status = %q, want completed", i, all[i].Status)
		}
	}

	// Persisted before Init returned.
	onDisk, err := file.Load()
	if err != nil {
		t.Fatalf("Load seeded file: %v", err)
	}
	if len(onDisk) != 3 {
		t.Errorf("seeded file has %d events, want 3", len(onDisk))
	}
}

func TestInitCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	content := []byte(`[{"id": "1", "title": "half`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := NewMemoryStore(persist.NewJSONFile(path))
	if err != nil {
		t.Fatal(err)
	}
	err = store.Init()
	if !errors.Is(err, persist.ErrCorrupt) {
		t.Fatalf("Init: error = %v, want ErrCorrupt", err)
	}
	if store.Ready() {
		t.Error("store ready after failed Init")
	}
	if _, err := store.GetAll(); !errors.Is(err, ErrNotReady) {
		t.Errorf("GetAll after failed Init: error = %v, want ErrNotReady", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Errorf("corrupt file was modified: %q", got)
	}
}

func TestInitRejectsInconsistentData(t *testing.T) {
	over := makeEvent("1", "Tech", types.EventStatusUpcoming)
	over.Attendees = over.Capacity + 1

	tests := []struct {
		name   string
		events []types.Event
	}{
		{"duplicate ids", []types.Event{makeEvent("1", "A", types.EventStatusUpcoming), makeEvent("1", "B", types.EventStatusUpcoming)}},
		{"missing id", []types.Event{makeEvent("", "A", types.EventStatusUpcoming)}},
		{"attendees above capacity", []types.Event{over}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := persist.NewJSONFile(filepath.Join(t.TempDir(), "events.json"))
			if err := file.Save(tt.events); err != nil {
				t.Fatal(err)
			}
			store, _ := NewMemoryStore(file)
			if err := store.Init(); !errors.Is(err, persist.ErrCorrupt) {
				t.Errorf("Init: error = %v, want ErrCorrupt", err)
			}
		})
	}
}

func TestInitLoadsExisting(t *testing.T) {
	events := []types.Event{
		makeEvent("a", "Tech", types.EventStatusUpcoming),
		makeEvent("b", "Art", types.EventStatusCompleted),
	}
	store, _ := newTestStore(t, events...)

	if c := store.Count(); c != 2 {
		t.Fatalf("Count = %d, want 2", c)
	}
	got, err := store.GetByID("b")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Category != "Art" {
		t.Errorf("Category = %q, want Art", got.Category)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store, _ := newTestStore(t)
	if _, err := store.GetByID("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID unknown: error = %v, want ErrNotFound", err)
	}
}

func TestGetAllReturnsCopy(t *testing.T) {
	store, _ := newTestStore(t, makeEvent("a", "Tech", types.EventStatusUpcoming))

	all, _ := store.GetAll()
	all[0].Title = "mutated"

	got, _ := store.GetByID("a")
	if got.Title == "mutated" {
		t.Error("GetAll exposed internal state")
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	store, file := newTestStore(t, makeEvent("a", "Tech", types.EventStatusUpcoming))

	created, err := store.Create(types.Event{
		Title:       "Go Meetup",
		Description: "Gophers",
		Date:        "2026-11-01",
		Location:    "Library",
		Category:    "Tech",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.ID == "" {
		t.Error("ID not assigned")
	}
	if created.Attendees != 0 {
		t.Errorf("Attendees = %d, want 0", created.Attendees)
	}
	if created.Capacity != types.DefaultCapacity {
		t.Errorf("Capacity = %d, want %d", created.Capacity, types.DefaultCapacity)
	}
	if created.Status != types.EventStatusUpcoming {
		t.Errorf("Status = %q, want upcoming", created.Status)
	}
	if created.Time != types.DefaultTime {
		t.Errorf("Time = %q, want %q", created.Time, types.DefaultTime)
	}
	if created.Organizer != types.DefaultOrganizer {
		t.Errorf("Organizer = %q, want %q", created.Organizer, types.DefaultOrganizer)
	}
	if !created.CreatedAt.Equal(fixedNow) {
		t.Errorf("CreatedAt = %v, want %v", created.CreatedAt, fixedNow)
	}

	// Appended at the end and persisted.
	all, _ := store.GetAll()
	if len(all) != 2 || all[1].ID != created.ID {
		t.Fatalf("collection order = %v, want new event last", all)
	}
	onDisk, err := file.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(onDisk) != 2 || onDisk[1].ID != created.ID {
		t.Errorf("data file not updated: %+v", onDisk)
	}
}

func TestCreateKeepsCallerFields(t *testing.T) {
	store, _ := newTestStore(t)

	in := makeEvent("custom-id", "Tech", types.EventStatusCompleted)
	in.Attendees = 4
	created, err := store.Create(in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created != in {
		t.Errorf("Create = %+v, want %+v", created, in)
	}
}

func TestCreateRejectsDuplicateID(t *testing.T) {
	store, _ := newTestStore(t, makeEvent("a", "Tech", types.EventStatusUpcoming))

	_, err := store.Create(makeEvent("a", "Art", types.EventStatusUpcoming))
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Create duplicate: error = %v, want ErrInvalidState", err)
	}
	if c := store.Count(); c != 1 {
		t.Errorf("Count = %d, want 1", c)
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.Event)
	}{
		{"missing title", func(e *types.Event) { e.Title = "" }},
		{"missing description", func(e *types.Event) { e.Description = "" }},
		{"missing location", func(e *types.Event) { e.Location = "" }},
		{"missing date", func(e *types.Event) { e.Date = "" }},
		{"bad date", func(e *types.Event) { e.Date = "01/02/2025" }},
		{"bad time", func(e *types.Event) { e.Time = "25:99" }},
		{"negative capacity", func(e *types.Event) { e.Capacity = -5 }},
		{"attendees above capacity", func(e *types.Event) { e.Attendees = 11 }},
		{"negative price", func(e *types.Event) { e.Price = -1 }},
		{"unknown status", func(e *types.Event) { e.Status = "cancelled" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newTestStore(t)
			e := makeEvent("", "Tech", types.EventStatusUpcoming)
			tt.mutate(&e)

			_, err := store.Create(e)
			if !errors.Is(err, ErrInvalidState) {
				t.Errorf("error = %v, want ErrInvalidState", err)
			}
			if !errors.Is(err, types.ErrInvalidEvent) {
				t.Errorf("error = %v, want wrapped ErrInvalidEvent", err)
			}
			if c := store.Count(); c != 0 {
				t.Errorf("Count = %d, want 0", c)
			}
		})
	}
}

func TestUpdateMergesFields(t *testing.T) {
	orig := makeEvent("a", "Tech", types.EventStatusUpcoming)
	store, file := newTestStore(t, orig)

	title := "Renamed"
	price := 42.5
	updated, err := store.Update("a", types.EventPatch{Title: &title, Price: &price})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	want := orig
	want.Title = title
	want.Price = price
	if updated != want {
		t.Errorf("Update = %+v, want %+v", updated, want)
	}

	onDisk, _ := file.Load()
	if onDisk[0].Title != title || onDisk[0].Price != price {
		t.Errorf("data file not updated: %+v", onDisk[0])
	}
}

func TestUpdateEmptyTimeFallsBackToMidnight(t *testing.T) {
	store, file := newTestStore(t, makeEvent("a", "Tech", types.EventStatusUpcoming))

	empty := ""
	updated, err := store.Update("a", types.EventPatch{Time: &empty})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Time != types.DefaultTime {
		t.Errorf("time = %q, want %q", updated.Time, types.DefaultTime)
	}

	onDisk, _ := file.Load()
	if onDisk[0].Time != types.DefaultTime {
		t.Errorf("stored time = %q, want %q", onDisk[0].Time, types.DefaultTime)
	}
}

func TestUpdateNotFound(t *testing.T) {
	store, _ := newTestStore(t)
	title := "x"
	if _, err := store.Update("missing", types.EventPatch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing: error = %v, want ErrNotFound", err)
	}
}

func TestUpdateRejectsAttendeesAboveCapacity(t *testing.T) {
	ev := makeEvent("a", "Tech", types.EventStatusUpcoming)
	ev.Attendees = 5
	store, _ := newTestStore(t, ev)

	tooMany := 11
	lowCap := 4
	tests := []struct {
		name  string
		patch types.EventPatch
	}{
		{"attendees above capacity", types.EventPatch{Attendees: &tooMany}},
		{"capacity below attendees", types.EventPatch{Capacity: &lowCap}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Update("a", tt.patch)
			if !errors.Is(err, ErrInvalidState) {
				t.Fatalf("Update: error = %v, want ErrInvalidState", err)
			}
			got, _ := store.GetByID("a")
			if got != ev {
				t.Errorf("event changed after rejected update: %+v", got)
			}
			assertInvariant(t, store)
		})
	}
}

func TestUpdateClampPolicy(t *testing.T) {
	ev := makeEvent("a", "Tech", types.EventStatusUpcoming)
	ev.Attendees = 8
	file := persist.NewJSONFile(filepath.Join(t.TempDir(), "events.json"))
	if err := file.Save([]types.Event{ev}); err != nil {
		t.Fatal(err)
	}
	store, err := NewMemoryStore(file, WithCapacityPolicy(CapacityClamp))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	lowCap := 3
	updated, err := store.Update("a", types.EventPatch{Capacity: &lowCap})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Capacity != 3 || updated.Attendees != 3 {
		t.Errorf("capacity/attendees = %d/%d, want 3/3", updated.Capacity, updated.Attendees)
	}
	assertInvariant(t, store)
}

func TestDelete(t *testing.T) {
	store, file := newTestStore(t,
		makeEvent("a", "Tech", types.EventStatusUpcoming),
		makeEvent("b", "Art", types.EventStatusUpcoming),
		makeEvent("c", "Food", types.EventStatusUpcoming),
	)

	deleted, err := store.Delete("b")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.ID != "b" {
		t.Errorf("deleted ID = %q, want b", deleted.ID)
	}
	if _, err := store.GetByID("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID deleted: error = %v, want ErrNotFound", err)
	}

	// Index must still resolve the record that shifted position.
	got, err := store.GetByID("c")
	if err != nil || got.ID != "c" {
		t.Errorf("GetByID(c) = %+v, %v", got, err)
	}

	onDisk, _ := file.Load()
	if len(onDisk) != 2 || onDisk[0].ID != "a" || onDisk[1].ID != "c" {
		t.Errorf("data file = %+v, want [a c]", onDisk)
	}

	if _, err := store.Delete("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: error = %v, want ErrNotFound", err)
	}
}

func TestRegisterUntilFull(t *testing.T) {
	ev := makeEvent("a", "Tech", types.EventStatusUpcoming)
	ev.Capacity = 2
	store, file := newTestStore(t, ev)

	for want := 1; want <= 2; want++ {
		got, err := store.Register("a")
		if err != nil {
			t.Fatalf("Register #%d: %v", want, err)
		}
		if got.Attendees != want {
			t.Errorf("Register #%d attendees = %d, want %d", want, got.Attendees, want)
		}
	}

	if _, err := store.Register("a"); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("third Register: error = %v, want ErrCapacityExceeded", err)
	}
	got, _ := store.GetByID("a")
	if got.Attendees != 2 {
		t.Errorf("attendees after rejection = %d, want 2", got.Attendees)
	}
	onDisk, _ := file.Load()
	if onDisk[0].Attendees != 2 {
		t.Errorf("persisted attendees = %d, want 2", onDisk[0].Attendees)
	}
}

func TestRegisterNotFound(t *testing.T) {
	store, _ := newTestStore(t)
	if _, err := store.Register("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Register missing: error = %v, want ErrNotFound", err)
	}
}

func TestRegisterConcurrent(t *testing.T) {
	ev := makeEvent("a", "Tech", types.EventStatusUpcoming)
	ev.Capacity = 1
	store, _ := newTestStore(t, ev)

	const n = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		full      int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Register("a")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrCapacityExceeded):
				full++
			default:
				t.Errorf("Register: unexpected error %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("successes = %d, want 1", successes)
	}
	if full != n-1 {
		t.Errorf("capacity rejections = %d, want %d", full, n-1)
	}
	got, _ := store.GetByID("a")
	if got.Attendees != 1 {
		t.Errorf("attendees = %d, want 1", got.Attendees)
	}
}

func TestConcurrentReadsAndWrites(t *testing.T) {
	store, _ := newTestStore(t, makeEvent("a", "Tech", types.EventStatusUpcoming))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := store.Create(makeEvent("", "Tech", types.EventStatusUpcoming)); err != nil {
				t.Errorf("Create: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := store.Filter(types.EventFilter{Category: "tech"}); err != nil {
				t.Errorf("Filter: %v", err)
			}
			if _, err := store.GetStats(); err != nil {
				t.Errorf("GetStats: %v", err)
			}
		}()
	}
	wg.Wait()

	if c := store.Count(); c != 11 {
		t.Errorf("Count = %d, want 11", c)
	}
}

func TestPersistFailureRollsBack(t *testing.T) {
	base := makeEvent("a", "Tech", types.EventStatusUpcoming)
	base.Attendees = 1

	title := "changed"
	tests := []struct {
		name string
		op   func(s *MemoryStore) error
	}{
		{"create", func(s *MemoryStore) error {
			_, err := s.Create(makeEvent("", "Art", types.EventStatusUpcoming))
			return err
		}},
		{"update", func(s *MemoryStore) error {
			_, err := s.Update("a", types.EventPatch{Title: &title})
			return err
		}},
		{"delete", func(s *MemoryStore) error {
			_, err := s.Delete("a")
			return err
		}},
		{"register", func(s *MemoryStore) error {
			_, err := s.Register("a")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, fp := newFlakyStore(t, base)
			fp.setFail(true)

			if err := tt.op(store); !errors.Is(err, persist.ErrIO) {
				t.Fatalf("error = %v, want ErrIO", err)
			}

			all, _ := store.GetAll()
			if len(all) != 1 || all[0] != base {
				t.Errorf("memory diverged after failed save: %+v", all)
			}
			onDisk, err := fp.Load()
			if err != nil {
				t.Fatal(err)
			}
			if len(onDisk) != 1 || onDisk[0] != base {
				t.Errorf("disk changed after failed save: %+v", onDisk)
			}

			// The store keeps working once the disk recovers.
			fp.setFail(false)
			if err := tt.op(store); err != nil {
				t.Errorf("retry after recovery: %v", err)
			}
		})
	}
}

func TestFlush(t *testing.T) {
	store, fp := newFlakyStore(t, makeEvent("a", "Tech", types.EventStatusUpcoming))
	before := fp.saves
	if err := store.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if fp.saves != before+1 {
		t.Errorf("saves = %d, want %d", fp.saves, before+1)
	}
}

func TestFilter(t *testing.T) {
	summit := makeEvent("1", "Tech", types.EventStatusUpcoming)
	summit.Title = "AI Summit"
	summit.Description = "Machine learning talks"
	meetup := makeEvent("2", "Tech", types.EventStatusCompleted)
	meetup.Title = "Old Meetup"
	meetup.Description = "Retro computing"
	gala := makeEvent("3", "Arts", types.EventStatusUpcoming)
	gala.Title = "Winter Gala"
	gala.Description = "An evening of summit-level music"

	store, _ := newTestStore(t, summit, meetup, gala)

	tests := []struct {
		name   string
		filter types.EventFilter
		want   []string
	}{
		{"no criteria", types.EventFilter{}, []string{"1", "2", "3"}},
		{"category and status", types.EventFilter{Category: "tech", Status: "upcoming"}, []string{"1"}},
		{"category case-insensitive", types.EventFilter{Category: "TECH"}, []string{"1", "2"}},
		{"status exact", types.EventFilter{Status: "completed"}, []string{"2"}},
		{"status is case-sensitive", types.EventFilter{Status: "Completed"}, []string{}},
		{"search title", types.EventFilter{Search: "meetup"}, []string{"2"}},
		{"search title or description", types.EventFilter{Search: "SUMMIT"}, []string{"1", "3"}},
		{"search and category", types.EventFilter{Search: "summit", Category: "arts"}, []string{"3"}},
		{"no match", types.EventFilter{Category: "Sports"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Filter(tt.filter)
			if err != nil {
				t.Fatalf("Filter: %v", err)
			}
			ids := make([]string, 0, len(got))
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			if fmt.Sprint(ids) != fmt.Sprint(tt.want) {
				t.Errorf("Filter ids = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestGetCategoriesFirstSeenOrder(t *testing.T) {
	store, _ := newTestStore(t,
		makeEvent("1", "Music", types.EventStatusUpcoming),
		makeEvent("2", "Business", types.EventStatusUpcoming),
		makeEvent("3", "Music", types.EventStatusUpcoming),
		makeEvent("4", "Art", types.EventStatusUpcoming),
	)

	got, err := store.GetCategories()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Music", "Business", "Art"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("GetCategories = %v, want %v", got, want)
	}
}

func TestGetStats(t *testing.T) {
	up := makeEvent("1", "Tech", types.EventStatusUpcoming)
	up.Attendees, up.Price = 2, 10
	done := makeEvent("2", "Tech", types.EventStatusCompleted)
	done.Attendees, done.Price = 3, 5

	store, _ := newTestStore(t, up, done)
	got, err := store.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	want := types.Stats{
		TotalEvents:    2,
		UpcomingCount:  1,
		CompletedCount: 1,
		TotalAttendees: 5,
		TotalRevenue:   35,
	}
	if got != want {
		t.Errorf("GetStats = %+v, want %+v", got, want)
	}
}

func TestGetStatsUnknownStatus(t *testing.T) {
	odd := makeEvent("3", "Tech", "cancelled")
	store, _ := newTestStore(t,
		makeEvent("1", "Tech", types.EventStatusUpcoming),
		odd,
	)

	got, err := store.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalEvents != 2 || got.UpcomingCount != 1 || got.CompletedCount != 0 {
		t.Errorf("GetStats = %+v, want total 2, upcoming 1, completed 0", got)
	}
}
