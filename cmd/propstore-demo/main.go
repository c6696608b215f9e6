// Copyright 2016 The Propstore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command propstore-demo registers a small running example
// (a(g)=g, b(g)=g, c(h)=h, d(h)=h, f(a,b,c,d)=(a+b)*(c+d)) and
// queries it once on the scalar path and once with gradients
// tracked, printing both results.
package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/propstore/grad"
	"github.com/cpmech/propstore/node"
	"github.com/cpmech/propstore/param"
	"github.com/cpmech/propstore/propfunc"
	"github.com/cpmech/propstore/store"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	cacheSize := flag.Int("cache", 8, "default cache size per property")
	flag.Parse()

	io.PfWhite("\npropstore -- memoized, gradient-aware property store\n\n")

	s := store.New(*cacheSize)

	identity := func(args []*node.Node) (*node.Node, error) { return grad.Mul(args[0], node.Constant(1)) }
	sum := func(args []*node.Node) (*node.Node, error) {
		ab, err := grad.Plus(args[0], args[1])
		if err != nil {
			return nil, err
		}
		cd, err := grad.Plus(args[2], args[3])
		if err != nil {
			return nil, err
		}
		return grad.Mul(ab, cd)
	}

	must := func(err error) {
		if err != nil {
			chk.Panic("%v", err)
		}
	}
	must(s.AddProp("a", []string{"g"}, identity, 0))
	must(s.AddProp("b", []string{"g"}, identity, 0))
	must(s.AddProp("c", []string{"h"}, identity, 0))
	must(s.AddProp("d", []string{"h"}, identity, 0))
	must(s.AddProp("f", []string{"a", "b", "c", "d"}, sum, 0))
	must(s.Initialize(false))

	v, err := s.GetScalar("f", map[string]propfunc.Input{"g": 1.0, "h": 2.0})
	must(err)
	io.Pf("f(g=1, h=2) = %g\n", v)

	g, err := param.NewLeaf("g", 1, []string{"g"}, []float64{1})
	must(err)
	h, err := param.NewLeaf("h", 2, []string{"h"}, []float64{1})
	must(err)
	w, err := s.Get("f", map[string]propfunc.Input{"g": g, "h": h})
	must(err)
	io.Pf("f(g=1, h=2) with gradients = %g, d/d%v = %v\n", w.Value, w.GradNames, w.GradValues)
}
