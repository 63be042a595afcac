package cache

import (
	"sync"

	"gitlab.com/musicdb/musicdb/src/internal/catalog"
)

// CoverCache holds the per-cover payload caches. Unlike Song, Cover carries
// no Cache field of its own (mirrors the original database.rs representation,
// where cover-byte caching is kept out of the Cover value entirely) so this
// cache is maintained keyed by CoverID.
type CoverCache struct {
	mu   sync.Mutex
	byID map[catalog.CoverID]*catalog.PayloadCache
}

func NewCoverCache() *CoverCache {
	return &CoverCache{byID: make(map[catalog.CoverID]*catalog.PayloadCache)}
}

func (cc *CoverCache) entry(id catalog.CoverID) *catalog.PayloadCache {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	pc, ok := cc.byID[id]
	if !ok {
		pc = catalog.NewPayloadCache()
		cc.byID[id] = pc
	}
	return pc
}

// Evict drops a cover's cached bytes (used by the cache manager when
// trimming memory usage).
func (cc *CoverCache) Evict(id catalog.CoverID) bool {
	cc.mu.Lock()
	pc, ok := cc.byID[id]
	cc.mu.Unlock()
	if !ok {
		return false
	}
	return pc.Evict()
}

// StartCachingCover transitions a cover's cache Empty→Loading.
func (cc *CoverCache) StartCachingCover(store *catalog.Store, cover catalog.Cover) bool {
	return cc.entry(cover.ID).StartLoad(coverLoader(store, cover))
}

// CoverBytes returns a cover's cached bytes without blocking.
func (cc *CoverCache) CoverBytes(id catalog.CoverID) ([]byte, bool) {
	cc.mu.Lock()
	pc, ok := cc.byID[id]
	cc.mu.Unlock()
	if !ok {
		return nil, false
	}
	return pc.Bytes()
}

// CoverBytesWait returns a cover's bytes, performing or awaiting a load if
// necessary.
func (cc *CoverCache) CoverBytesWait(store *catalog.Store, cover catalog.Cover) ([]byte, bool) {
	return cc.entry(cover.ID).BytesWait(coverLoader(store, cover))
}
