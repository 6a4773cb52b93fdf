package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"tableflip.dev/daybook/pkg/logging"
)

// settle is how long writes must pause before a change is reported. One
// diskv write produces several filesystem events.
const settle = 100 * time.Millisecond

// Event is emitted by Persistence.Watch when a blob changes on disk. An
// empty Key means the change could not be attributed and callers should
// reload everything.
type Event struct {
	Key string
}

// Watch streams change events for the data blobs and the auth directory
// until ctx is cancelled. Events are dropped rather than blocking the
// watcher when the reader falls behind. The channel is closed once ctx is
// done or the watcher fails.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: base path unknown")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(p.basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}
	// The auth directory appears on first sign up; it is picked up on
	// creation below when it does not exist yet.
	authDir := filepath.Join(p.basePath, AuthPrefix)
	if info, err := os.Stat(authDir); err == nil && info.IsDir() {
		if err := watcher.Add(authDir); err != nil {
			logging.Error("store: watch", err, "dir", authDir)
		}
	}

	events := make(chan Event, 16)
	go p.watchLoop(ctx, watcher, authDir, events)
	return events, nil
}

func (p *persistence) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, authDir string, events chan<- Event) {
	defer close(events)
	defer func() {
		if err := watcher.Close(); err != nil {
			logging.Error("store: watcher close", err)
		}
	}()

	pending := map[string]struct{}{}
	timer := time.NewTimer(settle)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	mark := func(key string) {
		if len(pending) == 0 {
			timer.Reset(settle)
		}
		pending[key] = struct{}{}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			for key := range pending {
				select {
				case events <- Event{Key: key}:
				default:
				}
			}
			pending = map[string]struct{}{}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.Error("store: watcher", err)
			mark("")
		case evt, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) == authDir && evt.Op&fsnotify.Create != 0 {
				if err := watcher.Add(authDir); err != nil {
					logging.Error("store: watch", err, "dir", authDir)
				}
				continue
			}
			if key, ok := p.keyForPath(evt.Name); ok {
				mark(key)
			}
		}
	}
}

// keyForPath maps a file under the base path to the blob key it stores.
// Only the calendar blobs and auth keys are reported.
func (p *persistence) keyForPath(path string) (string, bool) {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil {
		return "", false
	}
	key := filepath.ToSlash(rel)
	switch {
	case key == CalendarsKey, key == EventsKey:
		return key, true
	case strings.HasPrefix(key, AuthPrefix+"/") && !strings.HasPrefix(filepath.Base(key), "."):
		return key, true
	default:
		return "", false
	}
}
