// Copyright 2016 The Propstore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package propfunc implements the function wrapper and its
// per-property function context: the resolved metadata, cache,
// and gradient-call driver that together let a store evaluate one
// registered property.
package propfunc

import "github.com/cpmech/gosl/chk"

const (
	stageNone = iota
	stageDependencies
	stagePhysical
	stageImplicit
)

// Context holds a property's resolved dependency metadata. It is
// built in three mandatory stages — AddDependencies,
// AddPhysicalDependencies, AddImplicitDependencies — each of which
// fails if its predecessor has not run, or if it has already run
// once, per the staged-initialization contract.
type Context struct {
	name     string
	argNames []string

	stage int

	derived          []string
	physical         []string
	implicitPhysical []string

	physicalSet map[string]bool
}

// NewContext starts a fresh, unstaged context for the named property.
func NewContext(name string, argNames []string) *Context {
	return &Context{name: name, argNames: argNames}
}

// AddDependencies records the direct derived (property) dependencies.
// Must be the first stage run.
func (c *Context) AddDependencies(derived []string) error {
	if c.stage != stageNone {
		return chk.Err("propfunc: %q: add_dependencies called out of order (stage=%d)", c.name, c.stage)
	}
	c.derived = derived
	c.stage = stageDependencies
	return nil
}

// AddPhysicalDependencies records the direct physical dependencies.
// Must follow AddDependencies.
func (c *Context) AddPhysicalDependencies(physical []string) error {
	if c.stage != stageDependencies {
		return chk.Err("propfunc: %q: add_physical_dependencies called out of order (stage=%d)", c.name, c.stage)
	}
	c.physical = physical
	c.physicalSet = make(map[string]bool, len(physical))
	for _, p := range physical {
		c.physicalSet[p] = true
	}
	c.stage = stagePhysical
	return nil
}

// AddImplicitDependencies records the implicit physical closure
// reached through derived dependencies. Must follow
// AddPhysicalDependencies, and completes staging.
func (c *Context) AddImplicitDependencies(implicit []string) error {
	if c.stage != stagePhysical {
		return chk.Err("propfunc: %q: add_implicit_dependencies called out of order (stage=%d)", c.name, c.stage)
	}
	c.implicitPhysical = implicit
	c.stage = stageImplicit
	return nil
}

// Ready reports whether all three staging calls have completed.
func (c *Context) Ready() bool { return c.stage == stageImplicit }

// DirectDerived returns the direct derived dependencies.
func (c *Context) DirectDerived() []string { return c.derived }

// DirectPhysical returns the direct physical dependencies, in
// declared arg_names order.
func (c *Context) DirectPhysical() []string { return c.physical }

// ImplicitPhysical returns the implicit physical closure, in
// resolution order.
func (c *Context) ImplicitPhysical() []string { return c.implicitPhysical }

// IsDirectPhysical reports whether name is one of this property's
// direct physical arguments.
func (c *Context) IsDirectPhysical(name string) bool { return c.physicalSet[name] }

// ArgNames returns the property's declared argument names, in order.
func (c *Context) ArgNames() []string { return c.argNames }

// CacheKeyNames returns the ordered sequence of names that make up
// the cache key: direct physical dependencies first (declared order),
// then implicit physical dependencies (resolution order).
func (c *Context) CacheKeyNames() []string {
	names := make([]string, 0, len(c.physical)+len(c.implicitPhysical))
	names = append(names, c.physical...)
	names = append(names, c.implicitPhysical...)
	return names
}
