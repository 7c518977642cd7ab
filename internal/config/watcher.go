package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zerodrill/zerodrill/internal/log"
)

// Watcher re-loads the config file when it changes on disk, debouncing
// editor write bursts. The trainer only consumes reloads while on the
// setup screen; an active run never re-reads its parameters.
type Watcher struct {
	path     string
	debounce time.Duration
	fw       *fsnotify.Watcher
	ch       chan Config
	done     chan struct{}
	once     sync.Once
}

// NewWatcher watches path's directory, since most editors replace the
// file on save rather than writing it in place.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		fw:       fw,
		ch:       make(chan Config, 1),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// C delivers each successfully reloaded config. Failed reloads are
// logged and skipped, keeping the last good config in effect.
func (w *Watcher) C() <-chan Config { return w.ch }

// Close stops the watcher. Safe to call repeatedly.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fw.Close()
	})
	return err
}

func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerCh = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerCh:
			timer = nil
			timerCh = nil
			cfg, err := Load(w.path)
			if err != nil {
				log.ErrorErr(log.CatConfig, "config reload failed", err)
				continue
			}
			// Drop the stale pending reload, keep the newest.
			select {
			case <-w.ch:
			default:
			}
			w.ch <- cfg
			log.Info(log.CatConfig, "config reloaded", "path", w.path)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatConfig, "config watcher error", err)

		case <-w.done:
			return
		}
	}
}
