// Copyright 2016 The Propstore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package propconfig implements an optional JSON-backed loader for a
// registered property's example physical-parameter set, mirroring
// gofem's inp.FuncData/FuncsData: a property is addressed by name and
// holds a dbf.Params list that feeds straight into a query the same
// way FuncData.Prms feeds fun.New. It is a convenience for tests and
// demos layered on top of Store.AddProp, never a replacement for it:
// the function body itself is still registered in Go.
package propconfig

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/propstore/propfunc"
)

// PropData holds one property's example parameter set.
type PropData struct {
	Name  string     `json:"name"`  // property name, matching a Store.AddProp registration
	Prms  dbf.Params `json:"prms"`  // example physical-parameter values
	Notes string     `json:"notes"` // free-form documentation, not consumed
}

// PropsData holds every property's example parameter set, as loaded
// from one JSON document.
type PropsData []*PropData

// Parse decodes a JSON document of the form `[{"name":..., "prms":
// [{"n":..., "v":...}, ...]}, ...]` into a PropsData.
func Parse(data []byte) (PropsData, error) {
	var out PropsData
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, chk.Err("propconfig: cannot parse property data: %v", err)
	}
	return out, nil
}

// Get returns the named property's example parameters, or an error if
// name is not present.
func (o PropsData) Get(name string) (dbf.Params, error) {
	for _, p := range o {
		if p.Name == name {
			return p.Prms, nil
		}
	}
	return nil, chk.Err("propconfig: no example parameters for property %q", name)
}

// Inputs converts name's example parameters into a ready-to-query
// propfunc.Input map keyed by parameter name, the JSON-loaded
// counterpart of propfunc.Wrapper.ExampleInputs.
func (o PropsData) Inputs(name string) (map[string]propfunc.Input, error) {
	prms, err := o.Get(name)
	if err != nil {
		return nil, err
	}
	out := make(map[string]propfunc.Input, len(prms))
	for _, p := range prms {
		out[p.N] = p.V
	}
	return out, nil
}
