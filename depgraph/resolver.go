// Copyright 2016 The Propstore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package depgraph implements the dependency resolver:
// classifying each property's declared arguments as direct physical
// or direct derived dependencies, and computing the implicit physical
// closure reached transitively through derived dependencies via a
// memoized, cycle-detecting depth-first search.
package depgraph

import "github.com/cpmech/gosl/chk"

// Spec is the minimal registration data the resolver needs: a
// property's name and its declared, ordered argument names.
type Spec struct {
	Name     string
	ArgNames []string
}

// Resolver holds the resolved dependency classification for a closed
// set of property specs, built once at store initialization.
type Resolver struct {
	physical         map[string]bool
	directPhysical   map[string][]string
	directDerived    map[string][]string
	implicitPhysical map[string][]string
}

const (
	white = iota
	gray
	black
)

// Resolve classifies dependencies and computes implicit physical
// closures for the given specs. It fails on a duplicate property
// name, an argument that names neither a registered property nor a
// physical parameter, or a dependency cycle among derived properties.
func Resolve(specs []Spec) (*Resolver, error) {
	registered := make(map[string]bool, len(specs))
	for _, s := range specs {
		if registered[s.Name] {
			return nil, chk.Err("depgraph: duplicate property name %q", s.Name)
		}
		registered[s.Name] = true
	}

	physical := make(map[string]bool)
	for _, s := range specs {
		for _, a := range s.ArgNames {
			if a == "" {
				return nil, chk.Err("depgraph: %q: empty argument name", s.Name)
			}
			if !registered[a] {
				physical[a] = true
			}
		}
	}

	r := &Resolver{
		physical:         physical,
		directPhysical:   make(map[string][]string),
		directDerived:    make(map[string][]string),
		implicitPhysical: make(map[string][]string),
	}
	for _, s := range specs {
		for _, a := range s.ArgNames {
			switch {
			case physical[a]:
				r.directPhysical[s.Name] = append(r.directPhysical[s.Name], a)
			case registered[a]:
				r.directDerived[s.Name] = append(r.directDerived[s.Name], a)
			default:
				return nil, chk.Err("depgraph: %q: argument %q is neither a registered property nor a physical parameter", s.Name, a)
			}
		}
	}

	color := make(map[string]int, len(specs))
	var visit func(name string) ([]string, error)
	visit = func(name string) ([]string, error) {
		if closure, done := r.implicitPhysical[name]; done && color[name] == black {
			return closure, nil
		}
		color[name] = gray
		direct := make(map[string]bool, len(r.directPhysical[name]))
		for _, p := range r.directPhysical[name] {
			direct[p] = true
		}
		seen := make(map[string]bool)
		var order []string
		for _, dep := range r.directDerived[name] {
			switch color[dep] {
			case gray:
				return nil, chk.Err("depgraph: dependency cycle detected: %q depends on %q", name, dep)
			case white:
				if _, err := visit(dep); err != nil {
					return nil, err
				}
			}
			for _, p := range r.directPhysical[dep] {
				if !direct[p] && !seen[p] {
					seen[p] = true
					order = append(order, p)
				}
			}
			for _, p := range r.implicitPhysical[dep] {
				if !direct[p] && !seen[p] {
					seen[p] = true
					order = append(order, p)
				}
			}
		}
		color[name] = black
		r.implicitPhysical[name] = order
		return order, nil
	}

	for _, s := range specs {
		if color[s.Name] == white {
			if _, err := visit(s.Name); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

// DirectPhysical returns the physical parameters directly declared in
// name's arg_names, in declared order.
func (r *Resolver) DirectPhysical(name string) []string { return r.directPhysical[name] }

// DirectDerived returns the derived (property) dependencies directly
// declared in name's arg_names, in declared order.
func (r *Resolver) DirectDerived(name string) []string { return r.directDerived[name] }

// ImplicitPhysical returns the physical parameters reached
// transitively through name's derived dependencies, in first-seen DFS
// order, excluding anything already direct.
func (r *Resolver) ImplicitPhysical(name string) []string { return r.implicitPhysical[name] }

// IsPhysical reports whether name is a physical parameter (i.e. not a
// registered property) in this resolver's closed world.
func (r *Resolver) IsPhysical(name string) bool { return r.physical[name] }
