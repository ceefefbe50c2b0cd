package tst

import (
	lru "github.com/hashicorp/golang-lru"
)

// maxKeyLen bounds key length: keys are at most 512 bytes, so one
// scratch buffer for reconstructing a key during traversal never needs
// to be larger.
const maxKeyLen = 512

// bufferPoolCap bounds how many idle scratch buffers the pool holds at
// once; a DB that never nests Search/Keys calls from its own sink will
// only ever need one.
const bufferPoolCap = 8

// bufferPool is a free list of maxKeyLen-sized scratch buffers for
// traversal, backed by an LRU cache the way the teacher caches
// deserialized remote nodes: idle buffers are stored under a
// monotonically increasing key, so checking one back in is a plain
// Cache.Add, and once more than bufferPoolCap are idle at once the LRU's
// own eviction — not any bookkeeping of ours — drops the stalest one.
type bufferPool struct {
	cache *lru.Cache
	next  uint64
}

func newBufferPool() *bufferPool {
	cache, err := lru.New(bufferPoolCap)
	if err != nil {
		// Only returns an error for a non-positive size, which
		// bufferPoolCap never is.
		panic(err)
	}
	return &bufferPool{cache: cache}
}

// get returns a buffer and a release function the caller must invoke
// (typically via defer) when done with it. It first tries to reclaim the
// oldest idle buffer from the cache; if none is idle, it allocates one.
func (p *bufferPool) get() ([]byte, func()) {
	if _, v, ok := p.cache.RemoveOldest(); ok {
		buf := v.([]byte)
		return buf, func() { p.put(buf) }
	}
	buf := make([]byte, maxKeyLen)
	return buf, func() { p.put(buf) }
}

// put checks buf back in under a fresh key, so Add always looks like a
// new entry to the LRU; once the cache already holds bufferPoolCap idle
// buffers, this eviction is what reclaims the oldest one rather than
// letting the free list grow without bound.
func (p *bufferPool) put(buf []byte) {
	p.cache.Add(p.next, buf)
	p.next++
}
