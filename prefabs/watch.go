package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// ChangeKind says which reload a file edit calls for.
type ChangeKind int

const (
	SpecChanged ChangeKind = iota
	ScriptChanged
)

// Change is one debounced prefab edit.
type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher collects prefab and script edits under a set of directories.
// The frame loop drains it with Poll; nothing blocks on the consumer.
type Watcher struct {
	fsw *fsnotify.Watcher

	mu      sync.Mutex
	pending []Change
	seen    map[string]time.Time
	err     error

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fsw:  fsw,
		seen: make(map[string]time.Time),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.fsw.Close()
		<-w.done
	})
	return err
}

// Poll returns the edits seen since the last call, oldest first, and the
// last watcher error if any.
func (w *Watcher) Poll() ([]Change, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	out, err := w.pending, w.err
	w.pending, w.err = nil, nil
	return out, err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.record(event, time.Now())
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			w.err = err
			w.mu.Unlock()
		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) record(event fsnotify.Event, now time.Time) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}
	kind, ok := classify(event.Name)
	if !ok {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.seen[event.Name]; ok && now.Sub(t) < reloadDebounce {
		return
	}
	w.seen[event.Name] = now
	w.pending = append(w.pending, Change{Path: event.Name, Kind: kind})
}

func classify(name string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return SpecChanged, true
	case ".tengo":
		return ScriptChanged, true
	}
	return 0, false
}
