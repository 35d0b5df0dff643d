package watchlist

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events a single editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// Watcher re-reads a watchlist file whenever it changes and publishes the
// parsed entries. Only the latest list is kept if the consumer falls behind.
type Watcher struct {
	path     string
	debounce time.Duration

	watcher *fsnotify.Watcher
	changes chan []Entry
	errors  chan error

	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the watcher waits for events to settle.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// NewWatcher starts watching path. The current contents are published
// immediately when the file exists.
func NewWatcher(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watchlist path: %w", err)
	}

	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		changes:  make(chan []Entry, 1),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	// Watch the directory: editors often replace the file rather than write it.
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	w.watcher = fw

	w.reload()
	go w.loop()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Changes delivers the parsed watchlist after each change.
func (w *Watcher) Changes() <-chan []Entry {
	return w.changes
}

// Errors delivers read and parse failures.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		<-w.stopped
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.stopped)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watchlist] watcher error: %v", err)
			publish(w.errors, err)
		case <-timer.C:
			w.reload()
		}
	}
}

// reload parses the file and publishes the result. A missing file is
// not an error: a rename-based save briefly removes it.
func (w *Watcher) reload() {
	entries, err := ReadFile(w.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		log.Printf("[watchlist] reload %s: %v", w.path, err)
		publish(w.errors, err)
		return
	}
	publish(w.changes, entries)
}

// publish replaces any undelivered value with v.
func publish[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}
