package cache

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/rjeczalik/notify"

	"gitlab.com/musicdb/musicdb/src/internal/catalog"
)

// Watcher invalidates cached payloads when the underlying file on disk
// changes, so a modified song/cover is re-read instead of served stale.
// Grounded on the teacher's notifier (internal/content/notifier.go): each
// inotify event is recorded under a mutex and then processed inline in the
// event-receive loop; there is no separate drain goroutine.
type Watcher struct {
	Store  *catalog.Store
	Covers *CoverCache

	mu      sync.Mutex
	changed []string
}

func NewWatcher(store *catalog.Store, covers *CoverCache) *Watcher {
	return &Watcher{Store: store, Covers: covers}
}

// Run watches store.LibraryRoot() recursively until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	events := make(chan notify.EventInfo, 32)
	root := w.Store.LibraryRoot()
	if err := notify.Watch(filepath.Join(root, "..."), events, notify.All); err != nil {
		log.WithError(err).Warnf("could not watch library root %q for changes", root)
		return
	}
	defer notify.Stop(events)

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			w.record(ev.Path())
			w.process()
		}
	}
}

func (w *Watcher) record(path string) {
	w.mu.Lock()
	w.changed = append(w.changed, path)
	w.mu.Unlock()
}

// process drains the buffered changes and evicts any song/cover whose
// location matches a changed path, so the next request re-reads from disk.
func (w *Watcher) process() {
	w.mu.Lock()
	changed := w.changed
	w.changed = nil
	w.mu.Unlock()
	if len(changed) == 0 {
		return
	}

	root := w.Store.LibraryRoot()
	set := make(map[string]struct{}, len(changed))
	for _, p := range changed {
		set[p] = struct{}{}
	}

	w.Store.Mutex.Lock()
	defer w.Store.Mutex.Unlock()

	for id, song := range w.Store.Songs() {
		if _, hit := set[filepath.Join(root, song.Location.RelPath)]; hit && song.Cache != nil {
			song.Cache.Evict()
			log.Debugf("evicted cache for changed song %d (%s)", id, song.Location.RelPath)
		}
	}
	for id, cover := range w.Store.Covers() {
		if _, hit := set[filepath.Join(root, cover.Location.RelPath)]; hit {
			w.Covers.Evict(id)
			log.Debugf("evicted cache for changed cover %d (%s)", id, cover.Location.RelPath)
		}
	}
}
