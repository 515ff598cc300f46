package watcher

import (
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// RefreshMsg is sent when a watched file settles after a change
type RefreshMsg struct {
	Path string
}

// ErrorMsg is sent when watcher encounters an error
type ErrorMsg struct {
	Error error
}

// Sender receives watcher messages; *tea.Program satisfies it
type Sender interface {
	Send(msg tea.Msg)
}

// Watcher monitors files for changes and sends refresh messages. Each
// file is debounced separately so a burst of writes yields one refresh.
type Watcher struct {
	watcher  *fsnotify.Watcher
	sender   Sender
	paths    map[string]bool
	debounce time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	done    chan struct{}
}

// New creates a new file watcher
func New(debounce time.Duration) *Watcher {
	return &Watcher{
		debounce: debounce,
		paths:    make(map[string]bool),
	}
}

// SetSender sets where messages go, usually the tea.Program
func (w *Watcher) SetSender(s Sender) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sender = s
}

// AddPath adds a file to watch. The containing directory is watched so
// that editors replacing the file by rename are still seen.
func (w *Watcher) AddPath(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.paths[abs] = true

	if w.watcher != nil && w.running {
		_ = w.watcher.Add(filepath.Dir(abs))
	}
}

// Start begins watching for file changes
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	for path := range w.paths {
		_ = fw.Add(filepath.Dir(path))
	}

	w.watcher = fw
	w.running = true
	w.stopCh = make(chan struct{})
	w.done = make(chan struct{})

	go w.run(fw, w.stopCh, w.done)
	return nil
}

// Stop stops watching and waits for the event loop to exit
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	close(w.stopCh)
	done := w.done
	fw := w.watcher
	w.mu.Unlock()

	<-done
	return fw.Close()
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

type settled struct {
	path string
}

func (w *Watcher) run(fw *fsnotify.Watcher, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	timers := make(map[string]*time.Timer)
	fired := make(chan settled, 8)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-stop:
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			path, ok := w.watchedPath(event.Name)
			if !ok {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if t, ok := timers[path]; ok {
				t.Reset(w.debounce)
				continue
			}
			timers[path] = time.AfterFunc(w.debounce, func() {
				select {
				case fired <- settled{path: path}:
				case <-stop:
				}
			})

		case s := <-fired:
			delete(timers, s.path)
			w.sendMsg(RefreshMsg{Path: s.path})

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.sendMsg(ErrorMsg{Error: err})
		}
	}
}

func (w *Watcher) watchedPath(name string) (string, bool) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return abs, w.paths[abs]
}

func (w *Watcher) sendMsg(msg tea.Msg) {
	w.mu.Lock()
	sender := w.sender
	w.mu.Unlock()

	if sender != nil {
		sender.Send(msg)
	}
}

// WatchTheme creates a watcher for a custom theme file
func WatchTheme(themePath string, debounce time.Duration) *Watcher {
	w := New(debounce)
	w.AddPath(themePath)
	return w
}
