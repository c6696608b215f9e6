// Copyright 2016 The Propstore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package node implements the expression node: a tagged variant over
// {Parameter, Constant, Op} used both as the eager evaluation handle
// arithmetic sugar methods operate on (package grad wraps every
// intermediate result in a Node) and, via Walk, as a deferred
// computation graph for graph-discovery pre-processing.
//
// Go has no operator overloading, so the source's "overloaded
// arithmetic on parameters" becomes an explicit functional API:
// user functions call package grad's functions (grad.Plus, grad.Mul,
// grad.Log, ...) on nodes. A Node is the handle; grad owns the
// dispatch logic and the resulting param.Wrapper.
package node

import (
	"fmt"

	"github.com/cpmech/propstore/param"
)

// Kind tags the variant a Node holds.
type Kind int

const (
	KindParameter Kind = iota
	KindConstant
	KindOp
)

// Node is one node of an expression graph. Nodes form a DAG when a
// sub-expression is reused (e.g. the same physical parameter used
// twice); because a Node only ever holds child pointers (never a
// parent pointer), reuse is always acyclic and the graph can be
// freed by simply dropping the root.
type Node struct {
	kind      Kind
	name      string // set for Parameter leaves, or synthesized by Walk
	op        string // set for Kind == KindOp
	children  []*Node
	value     *param.Wrapper // nil until evaluated
	evaluated bool
}

// Parameter wraps a physical parameter (possibly gradient-tracked) as
// an already-evaluated leaf node, carrying its own "already evaluated" flag.
func Parameter(name string, w *param.Wrapper) *Node {
	return &Node{kind: KindParameter, name: name, value: w, evaluated: true}
}

// Constant wraps a plain numeric literal as an already-evaluated leaf.
func Constant(v float64) *Node {
	return &Node{kind: KindConstant, value: param.NewScalar(v), evaluated: true}
}

// NewOp builds an unevaluated operator node over the given children.
// Package grad uses it for every operator result and then completes
// the node via SetResult; a node left unevaluated can still be
// traversed by Walk.
func NewOp(tag string, children ...*Node) *Node {
	return &Node{kind: KindOp, op: tag, children: children}
}

// SetResult installs the computed value on an Op node, completing its
// evaluation. Called by package grad once the operator rule has run.
func (n *Node) SetResult(w *param.Wrapper) {
	n.value = w
	n.evaluated = true
}

// Kind reports this node's variant tag.
func (n *Node) Kind() Kind { return n.kind }

// Name returns the node's name: the parameter name for a Parameter
// leaf, or a synthesized name after Walk has visited it.
func (n *Node) Name() string { return n.name }

// Op returns the operator tag for an Op node.
func (n *Node) Op() string { return n.op }

// Children returns an Op node's operands, in declared order.
func (n *Node) Children() []*Node { return n.children }

// Value returns the node's current result. It is nil until Evaluated
// is true.
func (n *Node) Value() *param.Wrapper { return n.value }

// Evaluated reports whether Value has been computed yet.
func (n *Node) Evaluated() bool { return n.evaluated }

// Walk performs a depth-first, left-to-right topological traversal of
// the graph rooted at n, assigning synthetic names (#root:const{i},
// #root:value{i}) to constant and unnamed op nodes it has not named
// yet. This supports graph-expansion pre-processing ("Ownership"
// note); it plays no role in the eager evaluation path used by
// queries and is provided for optional future use (e.g. graph
// caching or serialization).
func Walk(root *Node) []*Node {
	var order []*Node
	seen := make(map[*Node]bool)
	constCount, valueCount := 0, 0
	var visit func(*Node)
	visit = func(n *Node) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		for _, c := range n.children {
			visit(c)
		}
		if n.name == "" {
			switch n.kind {
			case KindConstant:
				n.name = fmt.Sprintf("#root:const%d", constCount)
				constCount++
			case KindOp:
				n.name = fmt.Sprintf("#root:value%d", valueCount)
				valueCount++
			}
		}
		order = append(order, n)
	}
	visit(root)
	return order
}
