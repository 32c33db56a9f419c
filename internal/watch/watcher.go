// Package watch wraps fsnotify for the transpiler's watch mode.
package watch

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher delivers debounced change notifications for files under a
// watched directory. Editors often emit several filesystem events per
// save; events closer together than the debounce window collapse into
// one notification.
type Watcher struct {
	w    *fsnotify.Watcher
	evC  chan string
	erC  chan error
	done chan struct{}
}

// New starts watching the given directory. Watching the directory
// instead of a single file survives rename-based saves.
func New(dir string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		w:    fw,
		evC:  make(chan string, 16),
		erC:  make(chan error, 1),
		done: make(chan struct{}),
	}
	go w.loop(debounce)

	return w, nil
}

func (w *Watcher) loop(debounce time.Duration) {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending string
	)

	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			pending = ev.Name
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
		case <-timerC:
			w.evC <- pending
			timer = nil
			timerC = nil
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.erC <- err
		case <-w.done:
			return
		}
	}
}

// Events returns the channel of debounced changed-file paths.
func (w *Watcher) Events() <-chan string { return w.evC }

// Errors returns the channel of watcher errors.
func (w *Watcher) Errors() <-chan error { return w.erC }

// Close stops the watcher and releases its OS resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.w.Close()
}
