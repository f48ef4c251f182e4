package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileKind says what a changed file under the prefab directory holds.
type FileKind int

const (
	KindSpec FileKind = iota + 1
	KindScript
)

func (k FileKind) String() string {
	switch k {
	case KindSpec:
		return "spec"
	case KindScript:
		return "script"
	default:
		return "unknown"
	}
}

// Change is a debounced edit to a prefab spec or input script.
type Change struct {
	Path string
	Kind FileKind
}

// editors often write a file several times per save
const reloadDebounce = 100 * time.Millisecond

const reloadOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watcher reports prefab and script edits so a running scene can reload
// them. Changes and Errors are closed after Close returns.
type Watcher struct {
	fs      *fsnotify.Watcher
	Changes chan Change
	Errors  chan error
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Errors)
	defer close(w.Changes)

	seen := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&reloadOps == 0 {
				continue
			}
			kind, ok := classify(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if at, ok := seen[event.Name]; ok && now.Sub(at) < reloadDebounce {
				continue
			}
			seen[event.Name] = now
			if !w.send(Change{Path: event.Name, Kind: kind}) {
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.done:
				return
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) send(c Change) bool {
	select {
	case w.Changes <- c:
		return true
	case <-w.done:
		return false
	}
}

func classify(path string) (FileKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return KindSpec, true
	case ".tengo":
		return KindScript, true
	}
	return 0, false
}
