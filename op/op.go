// Copyright 2016 The Propstore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package op implements the primitive operator table consumed by the
// forward-mode AD dispatcher (package grad). Each operator is
// identified by a string tag and provides a base value rule plus,
// for operators that participate in gradient tracking, the partial
// derivative(s) needed to scatter contributions into a merged
// gradient axis.
package op

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// BinaryRule holds the value and derivative rules for a binary
// primitive. Base computes the value; Partial0 and Partial1 compute
// ∂f/∂v0 and ∂f/∂v1 at the given operand values. The f_10, f_01 and
// f_grad dispatch variants are all expressible as scaling an
// operand's existing gradient row by these partials, so the
// dispatcher (package grad) builds them generically from this single
// rule rather than needing four separate functions per op.
type BinaryRule struct {
	Base     func(v0, v1 float64) float64
	Partial0 func(v0, v1 float64) float64
	Partial1 func(v0, v1 float64) float64
}

// UnaryRule holds the value and derivative rule for a unary primitive.
type UnaryRule struct {
	Base    func(v0 float64) float64
	Partial func(v0 float64) float64
}

var binaries = map[string]*BinaryRule{}
var unaries = map[string]*UnaryRule{}

func init() {
	binaries["plus"] = &BinaryRule{
		Base:     func(v0, v1 float64) float64 { return v0 + v1 },
		Partial0: func(v0, v1 float64) float64 { return 1 },
		Partial1: func(v0, v1 float64) float64 { return 1 },
	}
	binaries["minus"] = &BinaryRule{
		Base:     func(v0, v1 float64) float64 { return v0 - v1 },
		Partial0: func(v0, v1 float64) float64 { return 1 },
		Partial1: func(v0, v1 float64) float64 { return -1 },
	}
	binaries["mul"] = &BinaryRule{
		Base:     func(v0, v1 float64) float64 { return v0 * v1 },
		Partial0: func(v0, v1 float64) float64 { return v1 },
		Partial1: func(v0, v1 float64) float64 { return v0 },
	}
	binaries["div"] = &BinaryRule{
		Base:     func(v0, v1 float64) float64 { return v0 / v1 },
		Partial0: func(v0, v1 float64) float64 { return 1 / v1 },
		Partial1: func(v0, v1 float64) float64 { return -v0 / (v1 * v1) },
	}
	binaries["pow"] = &BinaryRule{
		Base:     func(v0, v1 float64) float64 { return math.Pow(v0, v1) },
		Partial0: func(v0, v1 float64) float64 { return v1 * math.Pow(v0, v1-1) },
		Partial1: func(v0, v1 float64) float64 { return math.Pow(v0, v1) * math.Log(v0) },
	}

	unaries["inv"] = &UnaryRule{ // "inv" is specified as negation, not reciprocal
		Base:    func(v0 float64) float64 { return -v0 },
		Partial: func(v0 float64) float64 { return -1 },
	}
	unaries["log"] = &UnaryRule{
		Base:    math.Log,
		Partial: func(v0 float64) float64 { return 1 / v0 },
	}
	unaries["log10"] = &UnaryRule{
		Base:    math.Log10,
		Partial: func(v0 float64) float64 { return 1 / (v0 * math.Ln10) },
	}
	unaries["log2"] = &UnaryRule{
		Base:    math.Log2,
		Partial: func(v0 float64) float64 { return 1 / (v0 * math.Ln2) },
	}
	unaries["sqrt"] = &UnaryRule{
		Base:    math.Sqrt,
		Partial: func(v0 float64) float64 { return 1 / (2 * math.Sqrt(v0)) },
	}
	unaries["log1p"] = &UnaryRule{
		Base:    math.Log1p,
		Partial: func(v0 float64) float64 { return 1 / (v0 + 1) },
	}
	unaries["lgamma"] = &UnaryRule{
		Base: func(v0 float64) float64 {
			lg, _ := math.Lgamma(v0)
			return lg
		},
		Partial: digamma,
	}
}

// Binary looks up a binary operator rule by tag.
func Binary(tag string) (*BinaryRule, error) {
	r, ok := binaries[tag]
	if !ok {
		return nil, chk.Err("op: binary operator %q is not registered", tag)
	}
	return r, nil
}

// Unary looks up a unary operator rule by tag.
func Unary(tag string) (*UnaryRule, error) {
	r, ok := unaries[tag]
	if !ok {
		return nil, chk.Err("op: unary operator %q is not registered", tag)
	}
	return r, nil
}

// RegisterBinary installs a new binary operator, per the "new
// operators are added by registering a record into the operator
// table". Re-registering an existing tag overwrites it.
func RegisterBinary(tag string, rule *BinaryRule) {
	binaries[tag] = rule
}

// RegisterUnary installs a new unary operator.
func RegisterUnary(tag string, rule *UnaryRule) {
	unaries[tag] = rule
}

// digamma approximates ψ(x) = d/dx ln Γ(x) using the asymptotic series
// after shifting x into the region where the expansion is accurate
// (recurrence ψ(x) = ψ(x+1) - 1/x lets us always shift upward).
func digamma(x float64) float64 {
	var result float64
	for x < 6 {
		result -= 1 / x
		x++
	}
	inv := 1 / x
	inv2 := inv * inv
	result += math.Log(x) - 0.5*inv
	result -= inv2 * (1.0/12 - inv2*(1.0/120-inv2*(1.0/252)))
	return result
}

// ScatterAdd adds scale*src[i] into dst[idx[i]] for each i, used by
// the AD dispatcher to build f_grad's merged gradient row. len(idx)
// must equal len(src).
func ScatterAdd(dst []float64, idx []int, src []float64, scale float64) {
	for i, col := range idx {
		dst[col] += scale * src[i]
	}
}
