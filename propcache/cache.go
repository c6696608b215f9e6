// Copyright 2016 The Propstore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package propcache implements the bounded function-cache: an
// insertion-ordered mapping with a maxsize, counters for accesses and
// size-weighted accesses, and optional one-shot or every-call timing
// and memory sampling.
//
// The underlying storage is hashicorp/golang-lru/v2/simplelru, used
// in a Peek-only access pattern: a cache hit never promotes its key,
// and a key is only ever Add-ed once (on the miss that computes it).
// That keeps eviction ordered strictly by insertion age rather than
// access recency — "LRU-by-age" semantics, which
// an ordinary access-order LRU would violate.
package propcache

import (
	"runtime"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/simplelru"
)

// Config holds the cache's mutable behavior flags.
type Config struct {
	MaxSize    int
	Enabled    bool
	SampleTime bool // one-shot: sample the first miss only
	SampleMem  bool // one-shot: sample the first miss only
	TrackTime  bool // every miss
	TrackMem   bool // every miss
}

// State is the snapshot returned by get_state(): accesses, size-
// weighted accesses, and the mean of whatever timing/memory samples
// have been collected.
type State struct {
	Accesses         int64
	AccessesWeighted float64
	MeanTime         time.Duration
	MeanMem          int64
}

// Cache is a bounded, insertion-ordered memoization cache for a
// single property's results. V is the cached result type; package
// propfunc uses *param.Wrapper for both the scalar and the gradient
// path.
type Cache[V any] struct {
	cfg   Config
	store *lru.LRU[string, V]

	accesses         int64
	accessesWeighted float64

	timeSamples []time.Duration
	memSamples  []int64
	timedOnce   bool
	memedOnce   bool
}

// New builds a cache with the given maximum size, enabled by default.
func New[V any](maxSize int) *Cache[V] {
	store, _ := lru.NewLRU[string, V](maxSize, nil) // NewLRU only errors on size <= 0; that case is rebuilt with size 1 below
	if maxSize <= 0 {
		maxSize = 1
		store, _ = lru.NewLRU[string, V](maxSize, nil)
	}
	return &Cache[V]{cfg: Config{MaxSize: maxSize, Enabled: true}, store: store}
}

// Compute returns the cached value for key if present; otherwise it
// invokes fn, samples timing/memory per configuration, and — iff
// caching is enabled — inserts the result, evicting the
// oldest-inserted entry first if the cache is full. On error from fn,
// the cache is left unmodified for key ("no poisoning" on error).
func (c *Cache[V]) Compute(key string, fn func() (V, error)) (V, error) {
	c.accesses++
	if c.cfg.MaxSize > 0 {
		c.accessesWeighted += 1.0 / float64(c.cfg.MaxSize)
	}
	if c.cfg.Enabled {
		if v, ok := c.store.Peek(key); ok {
			return v, nil
		}
	}

	wantTime := c.cfg.TrackTime || (c.cfg.SampleTime && !c.timedOnce)
	wantMem := c.cfg.TrackMem || (c.cfg.SampleMem && !c.memedOnce)

	var start time.Time
	var memBefore uint64
	if wantTime {
		start = time.Now()
	}
	if wantMem {
		memBefore = allocatedBytes()
	}

	v, err := fn()
	if err != nil {
		var zero V
		return zero, err
	}

	if wantTime {
		c.timeSamples = append(c.timeSamples, time.Since(start))
		if c.cfg.SampleTime {
			c.timedOnce = true
		}
	}
	if wantMem {
		c.memSamples = append(c.memSamples, int64(allocatedBytes()-memBefore))
		if c.cfg.SampleMem {
			c.memedOnce = true
		}
	}
	if c.cfg.Enabled {
		c.store.Add(key, v)
	}
	return v, nil
}

// Peek looks up key without affecting access order or counters; used
// by callers that need to inspect cache contents without disturbing
// the memoization law.
func (c *Cache[V]) Peek(key string) (V, bool) {
	return c.store.Peek(key)
}

// SetEnabled toggles caching on or off, per the function wrapper's
// cache-control contract.
func (c *Cache[V]) SetEnabled(enabled bool) { c.cfg.Enabled = enabled }

// Enabled reports whether caching is currently on.
func (c *Cache[V]) Enabled() bool { return c.cfg.Enabled }

// Clear empties the cache without altering configuration or counters.
func (c *Cache[V]) Clear() { c.store.Purge() }

// Resize changes the maximum cache size, evicting oldest-inserted
// entries if the new size is smaller.
func (c *Cache[V]) Resize(maxSize int) {
	if maxSize <= 0 {
		maxSize = 1
	}
	c.cfg.MaxSize = maxSize
	c.store.Resize(maxSize)
}

// SetSampling configures the one-shot and every-call timing/memory
// sampling flags.
func (c *Cache[V]) SetSampling(sampleTime, sampleMem, trackTime, trackMem bool) {
	c.cfg.SampleTime = sampleTime
	c.cfg.SampleMem = sampleMem
	c.cfg.TrackTime = trackTime
	c.cfg.TrackMem = trackMem
}

// GetState returns the (accesses, accesses_weighted, mean time, mean
// memory) snapshot.
func (c *Cache[V]) GetState() State {
	return State{
		Accesses:         c.accesses,
		AccessesWeighted: c.accessesWeighted,
		MeanTime:         meanDuration(c.timeSamples),
		MeanMem:          meanInt64(c.memSamples),
	}
}

func meanDuration(samples []time.Duration) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	var sum time.Duration
	for _, s := range samples {
		sum += s
	}
	return sum / time.Duration(len(samples))
}

func meanInt64(samples []int64) int64 {
	if len(samples) == 0 {
		return 0
	}
	var sum int64
	for _, s := range samples {
		sum += s
	}
	return sum / int64(len(samples))
}

// allocatedBytes samples the runtime's heap-allocated byte count for
// the one-shot/tracked memory-delta sampling.
func allocatedBytes() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}
