package prefabs

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watcher reports edits to spec and script files on disk. Events carries the
// base name of each changed file, debounced per file.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	errs    chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		errs:    make(chan error, 8),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

// Poll drains pending change notifications and watch errors without
// blocking. Names are deduplicated and returned in arrival order. Errors
// reported by fsnotify since the last Poll come back joined.
func (w *Watcher) Poll() ([]string, error) {
	var names []string
	seen := map[string]bool{}
events:
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				break events
			}
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		default:
			break events
		}
	}

	var errs []error
	for {
		select {
		case err, ok := <-w.errs:
			if !ok {
				return names, errors.Join(errs...)
			}
			errs = append(errs, fmt.Errorf("prefabs: watch: %w", err))
		default:
			return names, errors.Join(errs...)
		}
	}
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.errs)
		close(w.done)
	}()

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isSpecFile(event.Name) && !isScriptFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < watchDebounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- filepath.Base(event.Name):
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// dropped when Poll has fallen this far behind
			select {
			case w.errs <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
