// Package store persists calendars and events as two JSON blobs in a diskv
// key-value directory.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/logging"
)

const (
	CalendarsKey = "calendars_key"
	EventsKey    = "events_key"
	// AuthPrefix is the directory holding account and session keys.
	AuthPrefix = "auth"

	tempDir = ".tmp"
)

// Blobs is raw key access to the underlying store.
type Blobs interface {
	ReadBlob(key string) ([]byte, error)
	WriteBlob(key string, data []byte) error
	EraseBlob(key string) error
}

// Persistence is the calendar/event storage contract. Reads never fail: an
// absent or unreadable blob is an empty list. Writes return their error.
type Persistence interface {
	Blobs

	GetCalendars(ctx context.Context) []calendar.Calendar
	SaveCalendars(ctx context.Context, calendars []calendar.Calendar) error
	AddCalendar(ctx context.Context, c calendar.Calendar) error
	UpdateCalendar(ctx context.Context, c calendar.Calendar) error
	DeleteCalendar(ctx context.Context, id string) error

	GetEvents(ctx context.Context) []calendar.Event
	SaveEvents(ctx context.Context, events []calendar.Event) error
	AddEvent(ctx context.Context, e calendar.Event) error
	UpdateEvent(ctx context.Context, e calendar.Event) error
	DeleteEvent(ctx context.Context, id string) error

	ClearAllData(ctx context.Context) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		TempDir:           filepath.Join(basePath, tempDir),
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// Other processes rewrite the blobs, so nothing is cached.
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string

	// mu serializes read-modify-write cycles inside this process.
	mu sync.Mutex
}

func (p *persistence) ReadBlob(key string) ([]byte, error) {
	if !p.d.Has(key) {
		return nil, os.ErrNotExist
	}
	return p.d.Read(key)
}

func (p *persistence) WriteBlob(key string, data []byte) error {
	return p.d.Write(key, data)
}

func (p *persistence) EraseBlob(key string) error {
	if !p.d.Has(key) {
		return nil
	}
	return p.d.Erase(key)
}

func readList[T any](p *persistence, key string) []T {
	out := make([]T, 0)
	data, err := p.ReadBlob(key)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.Error("store: read", err, "key", key)
		}
		return out
	}
	if len(data) == 0 {
		return out
	}
	if err := json.Unmarshal(data, &out); err != nil {
		logging.Error("store: decode", err, "key", key)
		return make([]T, 0)
	}
	return out
}

func writeList[T any](p *persistence, key string, list []T) error {
	if list == nil {
		list = make([]T, 0)
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := p.d.Write(key, data); err != nil {
		logging.Error("store: write", err, "key", key)
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) GetCalendars(_ context.Context) []calendar.Calendar {
	return readList[calendar.Calendar](p, CalendarsKey)
}

func (p *persistence) SaveCalendars(_ context.Context, calendars []calendar.Calendar) error {
	return writeList(p, CalendarsKey, calendars)
}

func (p *persistence) AddCalendar(ctx context.Context, c calendar.Calendar) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	calendars := p.GetCalendars(ctx)
	calendars = append(calendars, c)
	return p.SaveCalendars(ctx, calendars)
}

// UpdateCalendar replaces the calendar with the same id. Unknown ids are
// ignored.
func (p *persistence) UpdateCalendar(ctx context.Context, c calendar.Calendar) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	calendars := p.GetCalendars(ctx)
	for i := range calendars {
		if calendars[i].ID == c.ID {
			calendars[i] = c
			return p.SaveCalendars(ctx, calendars)
		}
	}
	return nil
}

// DeleteCalendar removes the calendar and every event that references it.
func (p *persistence) DeleteCalendar(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	calendars := p.GetCalendars(ctx)
	kept := make([]calendar.Calendar, 0, len(calendars))
	for _, c := range calendars {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if err := p.SaveCalendars(ctx, kept); err != nil {
		return err
	}

	events := p.GetEvents(ctx)
	keptEvents := make([]calendar.Event, 0, len(events))
	for _, e := range events {
		if e.CalendarID != id {
			keptEvents = append(keptEvents, e)
		}
	}
	return p.SaveEvents(ctx, keptEvents)
}

func (p *persistence) GetEvents(_ context.Context) []calendar.Event {
	return readList[calendar.Event](p, EventsKey)
}

func (p *persistence) SaveEvents(_ context.Context, events []calendar.Event) error {
	return writeList(p, EventsKey, events)
}

func (p *persistence) AddEvent(ctx context.Context, e calendar.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	events := p.GetEvents(ctx)
	events = append(events, e)
	return p.SaveEvents(ctx, events)
}

// UpdateEvent replaces the event with the same id. Unknown ids are ignored.
func (p *persistence) UpdateEvent(ctx context.Context, e calendar.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	events := p.GetEvents(ctx)
	for i := range events {
		if events[i].ID == e.ID {
			events[i] = e
			return p.SaveEvents(ctx, events)
		}
	}
	return nil
}

func (p *persistence) DeleteEvent(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	events := p.GetEvents(ctx)
	kept := make([]calendar.Event, 0, len(events))
	for _, e := range events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	return p.SaveEvents(ctx, kept)
}

// ClearAllData removes both blobs. Missing blobs are not an error.
func (p *persistence) ClearAllData(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	for _, key := range []string{CalendarsKey, EventsKey} {
		if err := p.EraseBlob(key); err != nil {
			errs = append(errs, fmt.Errorf("store: erase %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// keyToPathTransform maps "auth/session" to directory auth, file session.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s/%s", strings.Join(pathKey.Path, "/"), pathKey.FileName)
}
