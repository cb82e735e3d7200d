// Package watch notices writes to the database file made by other processes,
// such as the CLI running while the TUI is open.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ErrWatcherFailed indicates the filesystem watcher failed to initialize
var ErrWatcherFailed = errors.New("failed to initialize filesystem watcher")

const defaultDebounce = 200 * time.Millisecond

// Watcher reports debounced writes to a SQLite database and its WAL file.
type Watcher struct {
	names    map[string]bool
	watcher  *fsnotify.Watcher
	log      *zap.Logger
	debounce time.Duration
	stop     chan struct{}
}

// New watches the directory holding dbPath. SQLite replaces the -wal file,
// so the directory is watched rather than the files themselves.
func New(dbPath string, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatcherFailed, err)
	}
	if err := fw.Add(filepath.Dir(dbPath)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(dbPath), err)
	}

	base := filepath.Base(dbPath)
	return &Watcher{
		names:    map[string]bool{base: true, base + "-wal": true, base + "-journal": true},
		watcher:  fw,
		log:      log,
		debounce: defaultDebounce,
		stop:     make(chan struct{}),
	}, nil
}

// Run calls onChange once per burst of writes until ctx ends or Close is
// called. It blocks; start it in its own goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func()) {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.names[filepath.Base(event.Name)] || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			onChange()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch database", zap.Error(err))
		}
	}
}

// Close stops Run and releases the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	select {
	case <-w.stop:
		return nil
	default:
		close(w.stop)
		return w.watcher.Close()
	}
}
