// Copyright 2016 The Propstore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grad

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/propstore/node"
	"github.com/cpmech/propstore/param"
)

// Test_scalar01 checks the base (no-gradient) path.
func Test_scalar01(tst *testing.T) {
	chk.PrintTitle("grad: scalar path")
	a := node.Parameter("a", param.NewScalar(3))
	b := node.Parameter("b", param.NewScalar(4))
	r, err := Plus(a, b)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if r.Value().HasGrad() {
		tst.Fatalf("base path must not produce a gradient")
	}
	chk.Scalar(tst, "3+4", 1e-15, r.Value().Value, 7)
}

// Test_f10_01 checks the one-sided f_10/f_01 paths.
func Test_f10_01(tst *testing.T) {
	chk.PrintTitle("grad: f_10 / f_01")

	ga, err := param.NewLeaf("a", 3, []string{"g"}, []float64{1})
	if err != nil {
		tst.Fatal(err)
	}
	a := node.Parameter("a", ga)
	b := node.Parameter("b", param.NewScalar(4))

	r, err := Mul(a, b) // a*b, grad only through a
	if err != nil {
		tst.Fatal(err)
	}
	chk.Scalar(tst, "3*4", 1e-15, r.Value().Value, 12)
	chk.Vector(tst, "d(a*b)/dg", 1e-15, r.Value().GradValues, []float64{4})

	r2, err := Mul(b, a) // b*a, grad only through a (second operand)
	if err != nil {
		tst.Fatal(err)
	}
	chk.Vector(tst, "d(b*a)/dg", 1e-15, r2.Value().GradValues, []float64{4})
}

// Test_fgrad01 checks f(a,b,c,d) = (a+b)*(c+d) at g=1, h=2 with both
// leaves gradient-tracked. f = (2g)(2h) = 4gh, so df/dg=4h=8 and
// df/dh=4g=4, expecting grad_names=[g,h] and grad_values=[8,4].
func Test_fgrad01(tst *testing.T) {
	chk.PrintTitle("grad: f_grad merge across two distinct leaves")

	g, _ := param.NewLeaf("g", 1, []string{"g"}, []float64{1})
	h, _ := param.NewLeaf("h", 2, []string{"h"}, []float64{1})

	a := node.Parameter("a", g) // a(g) = 1*g, represented directly as g
	b := node.Parameter("b", g)
	c := node.Parameter("c", h)
	d := node.Parameter("d", h)

	ab, err := Plus(a, b)
	if err != nil {
		tst.Fatal(err)
	}
	cd, err := Plus(c, d)
	if err != nil {
		tst.Fatal(err)
	}
	f, err := Mul(ab, cd)
	if err != nil {
		tst.Fatal(err)
	}

	w := f.Value()
	chk.Scalar(tst, "f", 1e-15, w.Value, 8)
	if len(w.GradNames) != 2 || w.GradNames[0] != "g" || w.GradNames[1] != "h" {
		tst.Fatalf("unexpected grad_names: %v", w.GradNames)
	}
	chk.Vector(tst, "[df/dg, df/dh]", 1e-15, w.GradValues, []float64{8, 4})
}

// Test_fgrad02 checks f = (a+b)^2 * (c+d) with all four leaves
// sharing grad-name "g". d(a+b)/dg = 2 since both operands track g,
// so d((a+b)^2)/dg = 2*(a+b)*2 = 8 and df/dg = 8*(c+d) + (a+b)^2*2 =
// 8*2 + 4*2 = 24 at (1,1,1,1).
func Test_fgrad02(tst *testing.T) {
	chk.PrintTitle("grad: f_grad merge with a shared grad-name")

	leaf := func() *param.Wrapper {
		w, _ := param.NewLeaf("x", 1, []string{"g"}, []float64{1})
		return w
	}
	a := node.Parameter("a", leaf())
	b := node.Parameter("b", leaf())
	c := node.Parameter("c", leaf())
	d := node.Parameter("d", leaf())

	ab, err := Plus(a, b)
	if err != nil {
		tst.Fatal(err)
	}
	two, err := Pow(ab, node.Constant(2))
	if err != nil {
		tst.Fatal(err)
	}
	cd, err := Plus(c, d)
	if err != nil {
		tst.Fatal(err)
	}
	f, err := Mul(two, cd)
	if err != nil {
		tst.Fatal(err)
	}

	w := f.Value()
	chk.Scalar(tst, "f", 1e-13, w.Value, 8)
	if len(w.GradNames) != 1 || w.GradNames[0] != "g" {
		tst.Fatalf("expected single merged column 'g', got %v", w.GradNames)
	}
	chk.Scalar(tst, "df/dg", 1e-10, w.GradValues[0], 24)
}

// Test_mixed01 checks a mixed call where only one leaf is
// gradient-tracked.
func Test_mixed01(tst *testing.T) {
	chk.PrintTitle("grad: mixed raw/tracked operands")

	ga, _ := param.NewLeaf("g", 1, []string{"g"}, []float64{1})
	a := node.Parameter("a", ga)
	one := node.Parameter("b", param.NewScalar(1))
	h, _ := param.NewLeaf("h", 2, nil, nil)
	c := node.Parameter("c", h)
	d := node.Parameter("d", h)

	ab, err := Plus(a, one)
	if err != nil {
		tst.Fatal(err)
	}
	cd, err := Plus(c, d)
	if err != nil {
		tst.Fatal(err)
	}
	f, err := Mul(ab, cd)
	if err != nil {
		tst.Fatal(err)
	}

	w := f.Value()
	chk.Scalar(tst, "f", 1e-15, w.Value, 8)
	if len(w.GradNames) != 1 || w.GradNames[0] != "g" {
		tst.Fatalf("expected gradient only w.r.t. g, got %v", w.GradNames)
	}
}

func Test_sum01(tst *testing.T) {
	chk.PrintTitle("grad: n-ary sum")
	a := node.Parameter("a", param.NewScalar(1))
	b := node.Parameter("b", param.NewScalar(2))
	c := node.Parameter("c", param.NewScalar(3))
	r, err := Sum(a, b, c)
	if err != nil {
		tst.Fatal(err)
	}
	chk.Scalar(tst, "sum", 1e-15, r.Value().Value, 6)
}
