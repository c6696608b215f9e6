// Copyright 2016 The Propstore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package param

// Sift merges the gradient-variable sets carried by a sequence of
// wrappers into one column axis, preserving first-seen order. It
// returns the merged name list and, for each input, the column
// indices (into 0..len(names)) identifying that input's gradient
// names in the merged axis. Inputs without a gradient contribute an
// empty index slice. This is the join operation that defines the
// shape of every downstream gradient array produced from these
// inputs.
func Sift(inputs []*Wrapper) (names []string, idxPerInput [][]int) {
	pos := make(map[string]int)
	idxPerInput = make([][]int, len(inputs))
	for i, w := range inputs {
		if w == nil || !w.HasGrad() {
			idxPerInput[i] = []int{}
			continue
		}
		idx := make([]int, len(w.GradNames))
		for j, name := range w.GradNames {
			col, ok := pos[name]
			if !ok {
				col = len(names)
				pos[name] = col
				names = append(names, name)
			}
			idx[j] = col
		}
		idxPerInput[i] = idx
	}
	return names, idxPerInput
}
