package catalog

import "sync"

// payloadState is the state of a PayloadCache (spec §4.6).
type payloadState int

const (
	payloadEmpty payloadState = iota
	payloadLoading
	payloadReady
	payloadFailed
)

// PayloadCache is the per-song (and, for covers, per-cover) lazy byte cache
// described in spec §4.6: Empty/Loading/Ready/Failed, with single-flight
// loading and a non-blocking read plus a blocking "wait for it" read.
//
// PayloadCache itself does no I/O: callers (internal/cache) supply a loader
// closure, keeping this type free of filesystem/network concerns the same
// way the catalog entities are free of them.
type PayloadCache struct {
	mu    sync.Mutex
	state payloadState
	data  []byte
	done  chan struct{} // closed when a Loading transitions to Ready/Failed
}

// NewPayloadCache returns an empty cache.
func NewPayloadCache() *PayloadCache {
	return &PayloadCache{state: payloadEmpty}
}

// StartLoad transitions Empty -> Loading and runs loader on a new goroutine,
// unless a load is already in flight or bytes are already cached (in which
// case it is a no-op and reports false). This is the single-flight point:
// concurrent callers racing StartLoad will see at most one goroutine spawned.
func (c *PayloadCache) StartLoad(loader func() ([]byte, bool)) bool {
	c.mu.Lock()
	if c.state != payloadEmpty {
		c.mu.Unlock()
		return false
	}
	c.state = payloadLoading
	done := make(chan struct{})
	c.done = done
	c.mu.Unlock()

	go func() {
		data, ok := loader()
		c.mu.Lock()
		if ok {
			c.state = payloadReady
			c.data = data
		} else {
			c.state = payloadFailed
		}
		close(done)
		c.mu.Unlock()
	}()
	return true
}

// Bytes returns the cached bytes without blocking. It returns (nil, false)
// if the state is Empty, Loading or Failed.
func (c *PayloadCache) Bytes() ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == payloadReady {
		return c.data, true
	}
	return nil, false
}

// BytesWait blocks until a Loading in flight completes, starting a
// synchronous load via loader if the cache is currently Empty. It returns
// (nil, false) if the ultimate state is Failed.
func (c *PayloadCache) BytesWait(loader func() ([]byte, bool)) ([]byte, bool) {
	c.mu.Lock()
	switch c.state {
	case payloadReady:
		data := c.data
		c.mu.Unlock()
		return data, true
	case payloadLoading:
		done := c.done
		c.mu.Unlock()
		<-done
		return c.Bytes()
	case payloadFailed:
		c.mu.Unlock()
		data, ok := loader()
		c.mu.Lock()
		if ok {
			c.state = payloadReady
			c.data = data
		} else {
			c.state = payloadFailed
		}
		c.mu.Unlock()
		return data, ok
	default: // payloadEmpty
		c.mu.Unlock()
		data, ok := loader()
		c.mu.Lock()
		if ok {
			c.state = payloadReady
			c.data = data
		} else {
			c.state = payloadFailed
		}
		c.mu.Unlock()
		if !ok {
			return nil, false
		}
		return data, true
	}
}

// Evict drops cached bytes, returning the cache to Empty. It is a no-op
// (returns false) while a load is in flight, matching the "uncache" rule
// that an in-flight load can't be cancelled.
func (c *PayloadCache) Evict() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == payloadLoading {
		return false
	}
	c.state = payloadEmpty
	c.data = nil
	return true
}

// IsReady reports whether bytes are currently cached.
func (c *PayloadCache) IsReady() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == payloadReady
}

// IsLoading reports whether a load is currently in flight.
func (c *PayloadCache) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == payloadLoading
}
