// Copyright 2016 The Propstore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store implements the registry, staged initialization, and
// query entry point: a mapping from property name to function-wrapper,
// plus a default cache size.
package store

import (
	"log"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/propstore/depgraph"
	"github.com/cpmech/propstore/param"
	"github.com/cpmech/propstore/propcache"
	"github.com/cpmech/propstore/propfunc"
)

// Store owns every registered property's wrapper. It is not
// internally synchronized: a concurrent embedder must serialize
// calls to a given store.
type Store struct {
	defaultCacheSize int
	wrappers         map[string]*propfunc.Wrapper
	order            []string // registration order
	initialized      bool
}

// New builds an empty store. defaultCacheSize is used for any
// property registered with cacheSize <= 0.
func New(defaultCacheSize int) *Store {
	if defaultCacheSize <= 0 {
		defaultCacheSize = 1
	}
	return &Store{defaultCacheSize: defaultCacheSize, wrappers: make(map[string]*propfunc.Wrapper)}
}

// AddProp registers a property. name must be unique within the store.
// cacheSize <= 0 defers to the store's default_cache_size.
func (s *Store) AddProp(name string, argNames []string, fn propfunc.Func, cacheSize int, example ...*fun.Prm) error {
	if _, exists := s.wrappers[name]; exists {
		return chk.Err("store: duplicate property name %q", name)
	}
	if fn == nil {
		return chk.Err("store: property %q: function is nil", name)
	}
	s.wrappers[name] = propfunc.New(name, argNames, fn, cacheSize, fun.Prms(example))
	s.order = append(s.order, name)
	s.initialized = false
	return nil
}

// Initialize resolves every registered property's dependency context
// and sets up its cache. It must be called before any query, and may
// be called again after AddProp registers more properties. When
// keepCache is true, a property that was already initialized keeps
// its existing cache (and thus its memoized entries) instead of
// getting a fresh one — properties newly added since the last
// Initialize always get a fresh cache.
func (s *Store) Initialize(keepCache bool) error {
	specs := make([]depgraph.Spec, 0, len(s.order))
	for _, name := range s.order {
		specs = append(specs, depgraph.Spec{Name: name, ArgNames: s.wrappers[name].ArgNames})
	}
	resolver, err := depgraph.Resolve(specs)
	if err != nil {
		return chk.Err("store: initialize: %v", err)
	}

	for _, name := range s.order {
		w := s.wrappers[name]

		ctx := propfunc.NewContext(name, w.ArgNames)
		if err := ctx.AddDependencies(resolver.DirectDerived(name)); err != nil {
			return err
		}
		if err := ctx.AddPhysicalDependencies(resolver.DirectPhysical(name)); err != nil {
			return err
		}
		if err := ctx.AddImplicitDependencies(resolver.ImplicitPhysical(name)); err != nil {
			return err
		}
		w.SetContext(ctx)

		if keepCache && w.Cache() != nil {
			continue // preserve the existing cache and its entries
		}
		size := w.CacheSize
		if size <= 0 {
			size = s.defaultCacheSize
		}
		w.SetCache(propcache.New[*param.Wrapper](size))
	}

	s.initialized = true
	log.Printf("store: initialized %d properties, keep_cache=%v", len(s.order), keepCache)
	return nil
}

// Get is the query entry point: resolves name, binding
// physical parameters from params and recursively resolving derived
// dependencies through this same store.
func (s *Store) Get(name string, params map[string]propfunc.Input) (*param.Wrapper, error) {
	if !s.initialized {
		return nil, chk.Err("store: %q: query before initialize", name)
	}
	w, ok := s.wrappers[name]
	if !ok {
		return nil, chk.Err("store: unknown property %q", name)
	}
	return w.Call(s, params)
}

// GetScalar is a convenience over Get for callers that know the query
// carries no gradient: it unwraps the result to a bare float64 and
// errors if a gradient was unexpectedly produced (e.g. because a
// derived dependency was seeded with one).
func (s *Store) GetScalar(name string, params map[string]propfunc.Input) (float64, error) {
	w, err := s.Get(name, params)
	if err != nil {
		return 0, err
	}
	if w.HasGrad() {
		return 0, chk.Err("store: %q: result carries a gradient; call Get instead of GetScalar", name)
	}
	return w.Value, nil
}

// ResetCaches clears the caches of the named properties, or of every
// registered property if names is empty.
func (s *Store) ResetCaches(names ...string) error {
	if len(names) == 0 {
		names = s.order
	}
	for _, name := range names {
		w, ok := s.wrappers[name]
		if !ok {
			return chk.Err("store: unknown property %q", name)
		}
		if w.Cache() != nil {
			w.Cache().Clear()
		}
	}
	return nil
}

// Wrapper exposes a registered property's wrapper for inspection
// (cache state, context) by diagnostics such as package viz.
func (s *Store) Wrapper(name string) (*propfunc.Wrapper, bool) {
	w, ok := s.wrappers[name]
	return w, ok
}

// Names returns every registered property name, in registration
// order.
func (s *Store) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
