// Package watch reloads the session when the match directory changes on
// disk, so edits made by espanso or a text editor show up without a manual
// refresh.
package watch

import (
	"fmt"
	"os"
	"sync"
	"time"

	"matchman/internal/log"

	"github.com/fsnotify/fsnotify"
)

const debounce = 250 * time.Millisecond

// Watcher monitors one directory for changes using fsnotify and invokes a
// callback after a short quiet period. Events are debounced because a
// single editor save usually arrives as a burst of write/rename events.
type Watcher struct {
	dir       string
	onChange  func()
	fsWatcher *fsnotify.Watcher

	stopChan chan struct{}

	mutex   sync.Mutex
	running bool
}

// New creates a watcher over dir that calls onChange after changes settle.
func New(dir string, onChange func()) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &Watcher{
		dir:       dir,
		onChange:  onChange,
		fsWatcher: fsWatcher,
	}, nil
}

// Start begins watching. It fails if the directory does not exist or the
// watcher is already running.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mutex.Unlock()

	info, err := os.Stat(w.dir)
	if err != nil {
		w.setStopped()
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		w.setStopped()
		return fmt.Errorf("%s is not a directory", w.dir)
	}
	if err := w.fsWatcher.Add(w.dir); err != nil {
		w.setStopped()
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	w.stopChan = make(chan struct{})
	go w.loop()

	log.WithFields(log.F("directory", w.dir)).Info("watching match directory")
	return nil
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			log.Debugf("fs event: %s", event)
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
		case <-fire:
			timer = nil
			fire = nil
			w.onChange()
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warnf("watcher error: %v", err)
		case <-w.stopChan:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Stop ends the watch. The watcher can be started again afterwards.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		return
	}
	w.running = false
	close(w.stopChan)
	if err := w.fsWatcher.Remove(w.dir); err != nil {
		log.Debugf("removing watch on %s: %v", w.dir, err)
	}
}

// Running reports whether the watcher is active.
func (w *Watcher) Running() bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.running
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	w.Stop()
	return w.fsWatcher.Close()
}

func (w *Watcher) setStopped() {
	w.mutex.Lock()
	w.running = false
	w.mutex.Unlock()
}
