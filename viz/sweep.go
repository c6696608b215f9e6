// Copyright 2016 The Propstore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package viz implements diagnostic plotting for a property store: it
// sweeps one physical parameter over a range, queries a property at
// each point, and plots the resulting value (and, optionally,
// gradient) curve. It mirrors the sweep-and-annotate pattern every
// gofem material model's plotting.go uses (e.g. mreten.Plot,
// mconduct's Plot), adapted from a single retention/conductivity
// curve to an arbitrary registered property. It is a pure consumer of
// the public store API and plays no role in the query path.
package viz

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/propstore/param"
	"github.com/cpmech/propstore/propfunc"
)

// Queryable is the subset of the store API a sweep needs.
type Queryable interface {
	Get(name string, params map[string]propfunc.Input) (*param.Wrapper, error)
}

// SweepResult holds one swept point.
type SweepResult struct {
	X    float64
	Y    float64
	DYdX float64 // 0 if the sweep did not track gradients w.r.t. swept
}

// Sweep queries prop at npts evenly spaced values of the named
// physical parameter between lo and hi, holding every other entry of
// base fixed. If trackGrad is true, the swept parameter is seeded
// with its own gradient and DYdX in each result is ∂prop/∂swept.
func Sweep(store Queryable, prop, swept string, lo, hi float64, npts int, base map[string]propfunc.Input, trackGrad bool) ([]SweepResult, error) {
	if npts < 2 {
		return nil, chk.Err("viz: sweep: npts must be >= 2, got %d", npts)
	}
	results := make([]SweepResult, npts)
	xs := utl.LinSpace(lo, hi, npts)
	for i, x := range xs {
		params := make(map[string]propfunc.Input, len(base)+1)
		for k, v := range base {
			params[k] = v
		}
		if trackGrad {
			w, err := param.NewLeaf(swept, x, []string{swept}, []float64{1})
			if err != nil {
				return nil, err
			}
			params[swept] = w
		} else {
			params[swept] = x
		}
		w, err := store.Get(prop, params)
		if err != nil {
			return nil, chk.Err("viz: sweep: %q at %s=%g: %v", prop, swept, x, err)
		}
		r := SweepResult{X: x, Y: w.Value}
		if trackGrad {
			for j, name := range w.GradNames {
				if name == swept {
					r.DYdX = w.GradValues[j]
				}
			}
		}
		results[i] = r
	}
	return results, nil
}

// Plot renders a swept value curve (and, if any result carries a
// nonzero DYdX, the gradient curve alongside it) using gosl/plt,
// saving to dirout under the file key "sweep-" + fnkey.
func Plot(results []SweepResult, dirout, fnkey, xlabel, ylabel string) {
	X := make([]float64, len(results))
	Y := make([]float64, len(results))
	hasGrad := false
	G := make([]float64, len(results))
	for i, r := range results {
		X[i], Y[i], G[i] = r.X, r.Y, r.DYdX
		if r.DYdX != 0 {
			hasGrad = true
		}
	}
	plt.Reset(false, nil)
	plt.Plot(X, Y, "'b.-'")
	if hasGrad {
		plt.Plot(X, G, "'r+-'")
	}
	plt.Gll(xlabel, ylabel, "")
	plt.Save(dirout, io.Sf("sweep-%s", fnkey))
}
