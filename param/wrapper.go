// Copyright 2016 The Propstore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package param implements the parameter-wrapper: the unit of data
// that flows through a property's user function when forward-mode
// gradient tracking is engaged, and the sift merge operation that
// joins two or more wrappers' active gradient-variable sets into one
// column axis.
//
// A Wrapper's Value is a scalar. The axis-extension convention ("a
// gradient array has one extra trailing axis of size
// len(grad_names)") applies here at the scalar level: GradValues has
// exactly len(GradNames) entries, one partial derivative per tracked
// variable. An array-valued property is represented as a slice of
// independently tracked Wrappers rather than a single tensor type.
package param

import "github.com/cpmech/gosl/chk"

// Wrapper carries a value together with its forward-mode gradient
// columns. Name is present for leaves (physical parameters supplied
// by the caller) and empty for intermediates produced by arithmetic.
type Wrapper struct {
	Name       string
	Value      float64
	GradNames  []string  // nil iff no gradient is tracked
	GradValues []float64 // len(GradValues) == len(GradNames); nil iff GradNames nil
}

// HasGrad reports whether w carries any tracked gradient columns.
func (w *Wrapper) HasGrad() bool {
	return w != nil && w.GradNames != nil
}

// NewScalar returns a plain value with no gradient tracking.
func NewScalar(v float64) *Wrapper {
	return &Wrapper{Value: v}
}

// NewLeaf returns a named leaf parameter carrying exactly the supplied
// gradient names and values (e.g. [name] and [1] to seed its own
// gradient, or a grad-name shared with another leaf). No default seed
// is applied: nil names and values give a leaf with no gradient.
func NewLeaf(name string, v float64, gradNames []string, gradValues []float64) (*Wrapper, error) {
	if len(gradNames) != len(gradValues) {
		return nil, chk.Err("param: leaf %q: len(grad_names)=%d != len(grad_values)=%d", name, len(gradNames), len(gradValues))
	}
	return &Wrapper{Name: name, Value: v, GradNames: gradNames, GradValues: gradValues}, nil
}

// Validate checks the grad_names/grad_values cardinality invariant.
func (w *Wrapper) Validate() error {
	if w == nil {
		return chk.Err("param: nil wrapper")
	}
	if (w.GradNames == nil) != (w.GradValues == nil) {
		return chk.Err("param: wrapper %q: grad_names presence must match grad_values presence", w.Name)
	}
	if len(w.GradNames) != len(w.GradValues) {
		return chk.Err("param: wrapper %q: len(grad_names)=%d != len(grad_values)=%d", w.Name, len(w.GradNames), len(w.GradValues))
	}
	return nil
}
