package scenefile

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a scene file whenever it changes on disk. Only the most
// recent parse result is kept; a consumer polling once per frame never sees
// stale scenes queued behind a newer one.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	scenes  chan *Scene
	errs    chan error
	done    chan struct{}
}

// Watch starts watching path. The parent directory is watched so that
// editors that replace the file on save are still picked up.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		scenes:  make(chan *Scene, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Scenes delivers freshly parsed scenes. It is closed by Close.
func (w *Watcher) Scenes() <-chan *Scene {
	return w.scenes
}

// Errors delivers load and watch errors. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching and waits for the watch goroutine to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.errs)
	defer close(w.scenes)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			scene, err := LoadFile(w.path)
			if err != nil {
				latest(w.errs, err)
				continue
			}
			latest(w.scenes, scene)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			latest(w.errs, err)
		}
	}
}

// latest replaces whatever is buffered in ch with v.
func latest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
