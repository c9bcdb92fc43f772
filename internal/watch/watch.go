// Package watch reports file changes in a directory so the render thread
// can reload shaders between frames.
package watch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/attic3d/internal/logger"
)

// Watcher forwards writes and creations of matching files in one directory.
type Watcher struct {
	fs      *fsnotify.Watcher
	exts    map[string]bool
	changes chan string
	done    chan struct{}
	wg      sync.WaitGroup
	log     *zap.Logger
}

// Dir starts watching dir for files with one of exts (".vert", ".frag").
// No extensions means every file.
func Dir(dir string, exts []string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = logger.Named("watch")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &Watcher{
		fs:      fw,
		exts:    make(map[string]bool, len(exts)),
		changes: make(chan string, 16),
		done:    make(chan struct{}),
		log:     log,
	}
	for _, e := range exts {
		w.exts[strings.ToLower(e)] = true
	}

	w.wg.Add(1)
	go w.loop()
	log.Info("watching for changes", zap.String("dir", dir), zap.Strings("exts", exts))
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !w.matches(ev.Name) {
				continue
			}
			select {
			case w.changes <- ev.Name:
			default:
				// A reload is already pending.
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) matches(name string) bool {
	if len(w.exts) == 0 {
		return true
	}
	return w.exts[strings.ToLower(filepath.Ext(name))]
}

// Changes delivers the paths of changed files.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Pending drains queued changes without blocking and returns them.
func (w *Watcher) Pending() []string {
	var out []string
	for {
		select {
		case p := <-w.changes:
			out = append(out, p)
		default:
			return out
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	return err
}
