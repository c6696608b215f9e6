// Copyright 2016 The Propstore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grad

import "github.com/cpmech/propstore/node"

// Plus, Minus, Mul, Div and Pow are the functional-API operator sugar
// a user function composes instead of overloaded arithmetic (see
// package node's doc): mul(plus(a, b), c) in place of (a+b)*c.

func Plus(a, b *node.Node) (*node.Node, error)  { return Binary("plus", a, b) }
func Minus(a, b *node.Node) (*node.Node, error) { return Binary("minus", a, b) }
func Mul(a, b *node.Node) (*node.Node, error)   { return Binary("mul", a, b) }
func Div(a, b *node.Node) (*node.Node, error)   { return Binary("div", a, b) }
func Pow(a, b *node.Node) (*node.Node, error)   { return Binary("pow", a, b) }

func Neg(a *node.Node) (*node.Node, error)    { return Unary("inv", a) }
func Log(a *node.Node) (*node.Node, error)    { return Unary("log", a) }
func Log10(a *node.Node) (*node.Node, error)  { return Unary("log10", a) }
func Log2(a *node.Node) (*node.Node, error)   { return Unary("log2", a) }
func Sqrt(a *node.Node) (*node.Node, error)   { return Unary("sqrt", a) }
func Lgamma(a *node.Node) (*node.Node, error) { return Unary("lgamma", a) }
func Log1p(a *node.Node) (*node.Node, error)  { return Unary("log1p", a) }
