// Package backup takes timestamped snapshots of the event data file and
// prunes old ones.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/youmna-rabie/eventease/internal/persist"
)

const (
	filePrefix = "events-backup-"
	fileSuffix = ".json"

	// stampLayout is fixed-width so lexical order of file names is
	// chronological order.
	stampLayout = "20060102T150405.000000000Z"

	DefaultRetention = 5
)

var (
	ErrInvalidRetention = errors.New("retention limit must be at least 1")
	ErrInvalidInterval  = errors.New("backup interval must be positive")
)

// Backup describes one snapshot file.
type Backup struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"createdAt"`
	Size      int64     `json:"size"`
	// Events is the number of records in the snapshot. Only CreateBackup fills it.
	Events int `json:"events,omitempty"`
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for backup activity.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithClock overrides the time source used to stamp backups.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Manager copies the data file into a backup directory. It only reads the
// already-durable file, so it needs no coordination with the event store.
type Manager struct {
	mu        sync.Mutex
	source    string
	dir       string
	retention int
	logger    *slog.Logger
	now       func() time.Time
}

// NewManager creates a Manager that snapshots source into dir and keeps the
// retention most recent snapshots.
func NewManager(source, dir string, retention int, opts ...Option) (*Manager, error) {
	if retention < 1 {
		return nil, ErrInvalidRetention
	}
	m := &Manager{
		source:    source,
		dir:       dir,
		retention: retention,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Dir returns the backup directory.
func (m *Manager) Dir() string {
	return m.dir
}

// CreateBackup snapshots the data file, then enforces the retention limit.
// Pruning problems are logged and do not fail the backup.
func (m *Manager) CreateBackup() (Backup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Backup{}, fmt.Errorf("%w: %s", persist.ErrNotExist, m.source)
		}
		return Backup{}, fmt.Errorf("%w: reading %s: %w", persist.ErrIO, m.source, err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return Backup{}, fmt.Errorf("%w: %s: %w", persist.ErrCorrupt, m.source, err)
	}

	existing, err := m.list()
	if err != nil {
		return Backup{}, err
	}

	stamp := m.now().UTC()
	if len(existing) > 0 && !stamp.After(existing[0].CreatedAt) {
		// Keep names strictly increasing even if the clock stalls or steps back.
		stamp = existing[0].CreatedAt.Add(time.Nanosecond)
	}

	id := filePrefix + stamp.Format(stampLayout)
	path := filepath.Join(m.dir, id+fileSuffix)
	if err := persist.WriteAtomic(path, data); err != nil {
		return Backup{}, fmt.Errorf("%w: writing backup: %w", persist.ErrIO, err)
	}

	b := Backup{
		ID:        id,
		Path:      path,
		CreatedAt: stamp,
		Size:      int64(len(data)),
		Events:    len(records),
	}
	m.logger.Info("backup created", "backup_id", b.ID, "events", b.Events, "path", b.Path)

	if _, err := m.enforceRetention(m.retention); err != nil {
		m.logger.Warn("backup retention failed", "error", err)
	}
	return b, nil
}

// List returns existing backups, newest first.
func (m *Manager) List() ([]Backup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list()
}

// EnforceRetention deletes every backup beyond the limit most recent ones and
// returns the IDs it removed. A backup that cannot be deleted is logged and
// skipped.
func (m *Manager) EnforceRetention(limit int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enforceRetention(limit)
}

func (m *Manager) enforceRetention(limit int) ([]string, error) {
	if limit < 1 {
		return nil, ErrInvalidRetention
	}

	backups, err := m.list()
	if err != nil {
		return nil, err
	}
	if len(backups) <= limit {
		return nil, nil
	}

	var removed []string
	for _, b := range backups[limit:] {
		if err := os.Remove(b.Path); err != nil {
			m.logger.Warn("failed to remove old backup", "backup_id", b.ID, "error", err)
			continue
		}
		m.logger.Info("removed old backup", "backup_id", b.ID)
		removed = append(removed, b.ID)
	}
	return removed, nil
}

func (m *Manager) list() ([]Backup, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: listing %s: %w", persist.ErrIO, m.dir, err)
	}

	var backups []Backup
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		id := strings.TrimSuffix(name, fileSuffix)
		stamp, ok := parseStamp(strings.TrimPrefix(id, filePrefix))
		if !ok {
			continue
		}

		b := Backup{ID: id, Path: filepath.Join(m.dir, name), CreatedAt: stamp}
		if info, err := entry.Info(); err == nil {
			b.Size = info.Size()
		}
		backups = append(backups, b)
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].CreatedAt.Equal(backups[j].CreatedAt) {
			return backups[i].CreatedAt.After(backups[j].CreatedAt)
		}
		return backups[i].ID > backups[j].ID
	})
	return backups, nil
}

// parseStamp accepts the current layout and the older ISO-8601 form with ':'
// and '.' replaced by '-' (2024-06-15T10-00-00-000Z). Older backups are
// listed and pruned but never written.
func parseStamp(s string) (time.Time, bool) {
	if t, err := time.Parse(stampLayout, s); err == nil {
		return t, true
	}
	if len(s) != len("2006-01-02T15-04-05-000Z") || s[13] != '-' || s[16] != '-' || s[19] != '-' {
		return time.Time{}, false
	}
	iso := s[:13] + ":" + s[14:16] + ":" + s[17:19] + "." + s[20:]
	t, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// Run takes a backup every interval until ctx is cancelled. Failed backups
// are logged and retried on the next tick.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.logger.Info("backup scheduler started", "interval", interval.String(), "dir", m.dir)
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("backup scheduler stopped")
			return nil
		case <-ticker.C:
			if _, err := m.CreateBackup(); err != nil {
				m.logger.Error("scheduled backup failed", "error", err)
			}
		}
	}
}
