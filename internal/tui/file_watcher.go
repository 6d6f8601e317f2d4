package tui

import (
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// FileWatcher reports changes to the previewed buffer and the active
// dictionary. Parent directories are watched so editors that save by
// rename are still seen.
type FileWatcher struct {
	watcher     *fsnotify.Watcher
	debounceDur time.Duration

	mu         sync.Mutex
	buffer     string
	dictionary string
	dirs       map[string]int
}

// NewFileWatcher creates a watcher with the given debounce window.
func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		watcher:     watcher,
		debounceDur: debounce,
		dirs:        make(map[string]int),
	}, nil
}

// SetBuffer replaces the watched buffer file. An empty path stops watching.
func (w *FileWatcher) SetBuffer(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.swap(&w.buffer, path)
}

// SetDictionary replaces the watched dictionary file. An empty path stops
// watching.
func (w *FileWatcher) SetDictionary(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.swap(&w.dictionary, path)
}

// swap points slot at path, adjusting directory watches. Callers hold mu.
func (w *FileWatcher) swap(slot *string, path string) error {
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		path = abs
	}
	if *slot == path {
		return nil
	}

	if path != "" {
		dir := filepath.Dir(path)
		if w.dirs[dir] == 0 {
			if err := w.watcher.Add(dir); err != nil {
				return err
			}
		}
		w.dirs[dir]++
	}

	if old := *slot; old != "" {
		dir := filepath.Dir(old)
		w.dirs[dir]--
		if w.dirs[dir] <= 0 {
			delete(w.dirs, dir)
			_ = w.watcher.Remove(dir)
		}
	}

	*slot = path
	return nil
}

// classify reports which watched files name refers to.
func (w *FileWatcher) classify(name string) fileChangedMsg {
	w.mu.Lock()
	defer w.mu.Unlock()

	name = filepath.Clean(name)
	return fileChangedMsg{
		buffer:     w.buffer != "" && name == w.buffer,
		dictionary: w.dictionary != "" && name == w.dictionary,
	}
}

// Start returns a command that blocks until a watched file changes. The
// caller re-issues it after handling each fileChangedMsg.
func (w *FileWatcher) Start() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}

				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}

				changed := w.classify(event.Name)
				if !changed.buffer && !changed.dictionary {
					continue
				}

				// Debounce: wait for changes to settle
				time.Sleep(w.debounceDur)

				// Drain events that arrived during debounce, keeping
				// track of which files they touched
				drained := false
				for !drained {
					select {
					case ev, ok := <-w.watcher.Events:
						if !ok {
							drained = true
							break
						}
						more := w.classify(ev.Name)
						changed.buffer = changed.buffer || more.buffer
						changed.dictionary = changed.dictionary || more.dictionary
					default:
						drained = true
					}
				}

				return changed

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				log.Debug().Err(err).Msg("file watcher error")
			}
		}
	}
}

// Close stops the watcher.
func (w *FileWatcher) Close() error {
	return w.watcher.Close()
}
