// Copyright 2016 The Propstore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package propfunc

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/propstore/node"
	"github.com/cpmech/propstore/param"
	"github.com/cpmech/propstore/propcache"
)

// Func is a registered property's user function. It receives
// one expression node per declared argument, in arg_names order, and
// returns a node whose Value() is the result. A physical argument
// supplied as a raw number is wrapped as a gradient-free node, so the
// same function body serves both the scalar and gradient-tracking
// query paths: arithmetic routed through package grad degrades to
// plain value computation whenever no operand carries a gradient.
type Func func(args []*node.Node) (*node.Node, error)

// Input is what a caller supplies per physical-parameter name in a
// query: either a raw numeric value or a *param.Wrapper carrying
// gradient columns. Mixing within one query is permitted.
type Input interface{}

// Lookup is the subset of the store's query surface a wrapper needs
// to recursively resolve derived arguments, factored out as an
// interface to avoid an import cycle between packages propfunc and
// store.
type Lookup interface {
	Get(name string, params map[string]Input) (*param.Wrapper, error)
}

// Wrapper binds a user function to its declared arguments and owns
// its cache, its resolved context, and its gradient-call driver.
// It is the unit the store registers and queries.
type Wrapper struct {
	Name      string
	ArgNames  []string
	CacheSize int
	Example   fun.Prms // optional example physical-parameter set

	fn    Func
	ctx   *Context
	cache *propcache.Cache[*param.Wrapper]
}

// New builds an uninitialized wrapper. Call SetContext and SetCache
// (done by the store during Initialize) before Call.
func New(name string, argNames []string, fn Func, cacheSize int, example fun.Prms) *Wrapper {
	return &Wrapper{Name: name, ArgNames: argNames, CacheSize: cacheSize, Example: example, fn: fn}
}

// ExampleInputs converts the wrapper's example parameter set, if any,
// into a ready-to-query Input map keyed by parameter name — mirroring
// the way every gofem model's GetPrms(true) feeds straight into an
// Init call.
func (w *Wrapper) ExampleInputs() map[string]Input {
	if len(w.Example) == 0 {
		return nil
	}
	out := make(map[string]Input, len(w.Example))
	for _, p := range w.Example {
		out[p.N] = p.V
	}
	return out
}

// SetContext installs this wrapper's resolved dependency context.
func (w *Wrapper) SetContext(ctx *Context) { w.ctx = ctx }

// Context returns the wrapper's resolved context, or nil before
// initialization.
func (w *Wrapper) Context() *Context { return w.ctx }

// SetCache installs a cache, used both for first-time allocation and
// for keep_cache=true re-initialization, where the store hands
// back the wrapper's own previous cache instead of a fresh one.
func (w *Wrapper) SetCache(c *propcache.Cache[*param.Wrapper]) { w.cache = c }

// Cache returns the wrapper's cache.
func (w *Wrapper) Cache() *propcache.Cache[*param.Wrapper] { return w.cache }

// Call evaluates this property for the given physical parameters,
// reusing a cached result when the effective physical-input tuple
// (direct + implicit, via the dependency-closure) has been
// seen before. On a miss it binds arguments — physical ones directly
// from params, derived ones by recursively calling lookup — and
// dispatches the user function.
func (w *Wrapper) Call(lookup Lookup, params map[string]Input) (*param.Wrapper, error) {
	if w.ctx == nil || !w.ctx.Ready() {
		return nil, chk.Err("propfunc: %q: context is not initialized", w.Name)
	}
	key, err := buildKey(w.ctx.CacheKeyNames(), params)
	if err != nil {
		return nil, chk.Err("propfunc: %q: %v", w.Name, err)
	}
	return w.cache.Compute(key, func() (*param.Wrapper, error) {
		return w.evaluate(lookup, params)
	})
}

func (w *Wrapper) evaluate(lookup Lookup, params map[string]Input) (*param.Wrapper, error) {
	args := make([]*node.Node, len(w.ArgNames))
	for i, name := range w.ArgNames {
		if w.ctx.IsDirectPhysical(name) {
			in, ok := params[name]
			if !ok {
				return nil, chk.Err("propfunc: %q: missing physical parameter %q", w.Name, name)
			}
			wr, err := inputToWrapper(name, in)
			if err != nil {
				return nil, chk.Err("propfunc: %q: argument %q: %v", w.Name, name, err)
			}
			args[i] = node.Parameter(name, wr)
			continue
		}
		result, err := lookup.Get(name, params)
		if err != nil {
			return nil, err
		}
		args[i] = node.Parameter(name, result)
	}
	result, err := w.fn(args)
	if err != nil {
		return nil, chk.Err("propfunc: %q: %v", w.Name, err)
	}
	if !result.Evaluated() {
		return nil, chk.Err("propfunc: %q: user function returned an unevaluated node", w.Name)
	}
	return result.Value(), nil
}

// inputToWrapper normalizes a physical Input into a named
// param.Wrapper, per the "missing keys are an error ... argument of
// wrong kind" query-error taxonomy.
func inputToWrapper(name string, in Input) (*param.Wrapper, error) {
	switch v := in.(type) {
	case float64:
		return &param.Wrapper{Name: name, Value: v}, nil
	case *param.Wrapper:
		if err := v.Validate(); err != nil {
			return nil, err
		}
		cp := *v
		cp.Name = name
		return &cp, nil
	default:
		return nil, chk.Err("unsupported input kind %T for %q; want float64 or *param.Wrapper", in, name)
	}
}

// buildKey renders the ordered cache-key names' effective values
// (and, for gradient-tracked inputs, their tracked variable names) as
// a stable string. Two queries sharing physical values but differing
// in whether — or with respect to which variables — they track
// gradients must land in different cache slots: a scalar result
// cannot satisfy a later gradient request for the same values.
// Including the gradient signature in the key avoids that collision.
func buildKey(names []string, params map[string]Input) (string, error) {
	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('|')
		}
		in, ok := params[name]
		if !ok {
			return "", chk.Err("missing physical parameter %q", name)
		}
		switch v := in.(type) {
		case float64:
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		case *param.Wrapper:
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(strconv.FormatFloat(v.Value, 'g', -1, 64))
			if v.HasGrad() {
				sorted := append([]string(nil), v.GradNames...)
				sort.Strings(sorted)
				b.WriteString("#d/d(")
				b.WriteString(strings.Join(sorted, ","))
				b.WriteByte(')')
			}
		default:
			return "", chk.Err("unsupported input kind %T for %q", in, name)
		}
	}
	return b.String(), nil
}
