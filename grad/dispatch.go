// Copyright 2016 The Propstore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grad implements the forward-mode AD dispatcher:
// given a binary or unary operator call over expression nodes, it
// picks the scalar or gradient-tracking code path based on which
// operands carry a gradient, merges operand gradient axes via
// param.Sift when both sides track gradients, and returns a new
// already-evaluated expression node wrapping the result.
package grad

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/propstore/node"
	"github.com/cpmech/propstore/op"
	"github.com/cpmech/propstore/param"
)

// selector computes the 2-bit routing code: bit 1 is set
// when a carries a gradient, bit 0 when b does.
func selector(a, b *param.Wrapper) int {
	s := 0
	if a.HasGrad() {
		s |= 2
	}
	if b.HasGrad() {
		s |= 1
	}
	return s
}

func scale(s float64, g []float64) []float64 {
	out := make([]float64, len(g))
	for i, v := range g {
		out[i] = s * v
	}
	return out
}

// Binary evaluates the named binary operator over a and b, routing
// through base/f_10/f_01/f_grad as appropriate, and returns a new
// node wrapping the result.
func Binary(tag string, a, b *node.Node) (*node.Node, error) {
	if !a.Evaluated() || !b.Evaluated() {
		return nil, chk.Err("grad: binary %q: operand is not evaluated", tag)
	}
	rule, err := op.Binary(tag)
	if err != nil {
		return nil, err
	}
	wa, wb := a.Value(), b.Value()
	v := rule.Base(wa.Value, wb.Value)

	var result *param.Wrapper
	switch selector(wa, wb) {
	case 0: // base: neither operand tracks a gradient
		result = param.NewScalar(v)
	case 2: // f_10: gradient flows through the first operand only
		result = &param.Wrapper{
			Value:      v,
			GradNames:  wa.GradNames,
			GradValues: scale(rule.Partial0(wa.Value, wb.Value), wa.GradValues),
		}
	case 1: // f_01: gradient flows through the second operand only
		result = &param.Wrapper{
			Value:      v,
			GradNames:  wb.GradNames,
			GradValues: scale(rule.Partial1(wa.Value, wb.Value), wb.GradValues),
		}
	case 3: // f_grad: merge both operands' tracked variables
		names, idx := param.Sift([]*param.Wrapper{wa, wb})
		g := make([]float64, len(names))
		op.ScatterAdd(g, idx[0], wa.GradValues, rule.Partial0(wa.Value, wb.Value))
		op.ScatterAdd(g, idx[1], wb.GradValues, rule.Partial1(wa.Value, wb.Value))
		result = &param.Wrapper{Value: v, GradNames: names, GradValues: g}
	}

	n := node.NewOp(tag, a, b)
	n.SetResult(result)
	return n, nil
}

// Unary evaluates the named unary operator over a and returns a new
// node wrapping the result.
func Unary(tag string, a *node.Node) (*node.Node, error) {
	if !a.Evaluated() {
		return nil, chk.Err("grad: unary %q: operand is not evaluated", tag)
	}
	rule, err := op.Unary(tag)
	if err != nil {
		return nil, err
	}
	wa := a.Value()
	v := rule.Base(wa.Value)

	var result *param.Wrapper
	if wa.HasGrad() {
		result = &param.Wrapper{
			Value:      v,
			GradNames:  wa.GradNames,
			GradValues: scale(rule.Partial(wa.Value), wa.GradValues),
		}
	} else {
		result = param.NewScalar(v)
	}

	n := node.NewOp(tag, a)
	n.SetResult(result)
	return n, nil
}

// Sum folds a sequence of nodes with the "plus" operator, left to
// right. A reduce-along-an-axis "sum" over array values specializes,
// once values are scalars rather than tensors (see package param), to
// an n-ary scalar sum — so it is implemented here as a repeated plus
// rather than a distinct operator-table entry.
func Sum(args ...*node.Node) (*node.Node, error) {
	if len(args) == 0 {
		return nil, chk.Err("grad: sum: no arguments")
	}
	acc := args[0]
	var err error
	for _, n := range args[1:] {
		acc, err = Binary("plus", acc, n)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
