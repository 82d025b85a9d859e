package library

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/grovetools/shelf/errors"
)

// dbWatcher watches the database file for writes from other processes and
// turns them into Updated broadcasts. Events are debounced: SQLite touches
// the main file and its -wal/-shm siblings in bursts, and one broadcast per
// burst is enough since every Updated carries the full record set.
type dbWatcher struct {
	watcher  *fsnotify.Watcher
	store    *Store
	debounce time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// Watch starts the external-change watcher. Writes committed through this
// Store already broadcast directly; Watch only matters when other processes
// share the database file. Calling Watch on a store that is already watching
// is a no-op.
func (s *Store) Watch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New(errors.ErrCodeFeedWatch, "store is closed")
	}
	if s.watcher != nil {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeFeedWatch, "failed to create file watcher")
	}
	// Watch the directory, not the file: SQLite replaces and creates
	// sibling files, and fsnotify loses a watch on a replaced file.
	if err := fsw.Add(filepath.Dir(s.path)); err != nil {
		fsw.Close()
		return errors.Wrap(err, errors.ErrCodeFeedWatch, "failed to watch library directory").
			WithDetail("path", s.path)
	}

	w := &dbWatcher{
		watcher:  fsw,
		store:    s,
		debounce: 100 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	s.watcher = w
	go w.run()
	s.logger.WithField("path", s.path).Debug("watching library file for external changes")
	return nil
}

func (w *dbWatcher) run() {
	defer close(w.doneCh)

	base := filepath.Base(w.store.path)
	var pending *time.Timer
	var pendingC <-chan time.Time

	for {
		select {
		case <-w.stopCh:
			if pending != nil {
				pending.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Base(event.Name)
			if name != base && !strings.HasPrefix(name, base+"-") {
				continue
			}
			if pending == nil {
				pending = time.NewTimer(w.debounce)
				pendingC = pending.C
			} else {
				if !pending.Stop() {
					select {
					case <-pending.C:
					default:
					}
				}
				pending.Reset(w.debounce)
			}

		case <-pendingC:
			pending = nil
			pendingC = nil
			w.store.broadcastAll()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.store.logger.WithError(err).Warn("library file watcher error")
		}
	}
}

// stop shuts the watcher down and waits for its goroutine to exit. Must be
// called without store.mu held: the goroutine may be mid-broadcast.
func (w *dbWatcher) stop() {
	close(w.stopCh)
	w.watcher.Close()
	<-w.doneCh
}
