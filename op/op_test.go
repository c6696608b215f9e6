// Copyright 2016 The Propstore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package op

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/rnd"
)

// Test_binary01 checks every binary primitive's partial derivatives
// against a central finite difference, on uniformly sampled inputs in
// each operator's domain, per the gradient-correctness testable
// property: 1e-6 relative error.
func Test_binary01(tst *testing.T) {

	chk.PrintTitle("binary op derivatives vs finite differences")

	rnd.Init(0)
	const tol = 1e-6
	const step = 1e-3

	cases := []struct {
		tag      string
		v0lo, v0hi float64
		v1lo, v1hi float64
	}{
		{"plus", -10, 10, -10, 10},
		{"minus", -10, 10, -10, 10},
		{"mul", -10, 10, -10, 10},
		{"div", 0.5, 10, 0.5, 10},
		{"pow", 0.5, 5, 0.5, 3},
	}

	for _, c := range cases {
		rule, err := Binary(c.tag)
		if err != nil {
			tst.Fatalf("%q: %v", c.tag, err)
		}
		for i := 0; i < 20; i++ {
			v0 := rnd.Float64(c.v0lo, c.v0hi)
			v1 := rnd.Float64(c.v1lo, c.v1hi)

			d0ana := rule.Partial0(v0, v1)
			chk.DerivScaSca(tst, c.tag+" ∂/∂v0", tol, d0ana, v0, step, chk.Verbose, func(x float64) (float64, error) {
				return rule.Base(x, v1), nil
			})

			d1ana := rule.Partial1(v0, v1)
			chk.DerivScaSca(tst, c.tag+" ∂/∂v1", tol, d1ana, v1, step, chk.Verbose, func(x float64) (float64, error) {
				return rule.Base(v0, x), nil
			})
		}
	}
}

// Test_unary01 checks every unary primitive the same way.
func Test_unary01(tst *testing.T) {

	chk.PrintTitle("unary op derivatives vs finite differences")

	rnd.Init(0)
	const tol = 1e-6
	const step = 1e-3

	cases := []struct {
		tag      string
		lo, hi   float64
	}{
		{"inv", -10, 10},
		{"log", 0.1, 10},
		{"log10", 0.1, 10},
		{"log2", 0.1, 10},
		{"sqrt", 0.1, 10},
		{"log1p", -0.5, 10},
		{"lgamma", 0.5, 10},
	}

	for _, c := range cases {
		rule, err := Unary(c.tag)
		if err != nil {
			tst.Fatalf("%q: %v", c.tag, err)
		}
		for i := 0; i < 20; i++ {
			v0 := rnd.Float64(c.lo, c.hi)
			dana := rule.Partial(v0)
			chk.DerivScaSca(tst, c.tag+" ∂/∂v0", tol, dana, v0, step, chk.Verbose, func(x float64) (float64, error) {
				return rule.Base(x), nil
			})
		}
	}
}

func Test_scatterAdd01(tst *testing.T) {
	chk.PrintTitle("scatter-add")
	dst := make([]float64, 3)
	ScatterAdd(dst, []int{0, 2}, []float64{1, 2}, 10)
	chk.Vector(tst, "dst", 1e-15, dst, []float64{10, 0, 20})
	ScatterAdd(dst, []int{2}, []float64{5}, 1)
	chk.Vector(tst, "dst", 1e-15, dst, []float64{10, 0, 25})
}
