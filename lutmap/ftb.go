//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package lutmap

import (
	"fmt"

	"github.com/markkurossi/lutmap/gig"
)

// ftb6Proj holds the standard six-variable truth-table projections:
// ftb6Proj[i] is the function table of "variable i", assuming leaf i
// of a cut occupies input position i of the resulting LUT6.
var ftb6Proj = [maxCutSize]uint64{
	0xAAAAAAAAAAAAAAAA,
	0xCCCCCCCCCCCCCCCC,
	0xF0F0F0F0F0F0F0F0,
	0xFF00FF00FF00FF00,
	0xFFFF0000FFFF0000,
	0xFFFFFFFF00000000,
}

// ftbFrame is one stack entry of computeFTB's iterative post-order
// walk over the AND cone below a cut's root, down to the cut's
// leaves.
type ftbFrame struct {
	id         gig.GateID
	childrenUp bool
}

// computeFTB returns the function table root's cone realizes, over
// the variables assigned by cut's leaf order. root's support must be
// exactly cut (or a subset of it); if root is signed, the returned
// table is complemented accordingly.
//
// The walk is iterative and memoized rather than directly recursive:
// a cut's cone can revisit the same sub-node from both AND inputs,
// and an explicit stack keeps that sharing cheap and bounds stack
// depth to the cone's size rather than the host language's call
// stack.
func computeFTB(n *gig.Netlist, root gig.Wire, cut Cut) uint64 {
	memo := make(map[gig.GateID]uint64, cut.Size()+8)
	for i, leaf := range cut.Leaves() {
		memo[leaf] = ftb6Proj[i]
	}

	stack := []ftbFrame{{root.ID(), false}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if _, ok := memo[top.id]; ok {
			stack = stack[:len(stack)-1]
			continue
		}
		w := n.Wire(gig.MakeLit(top.id, false))
		if w.Type() == gig.TypeAnd && !top.childrenUp {
			top.childrenUp = true
			for _, fi := range w.Fanins() {
				if _, ok := memo[fi.ID()]; !ok {
					stack = append(stack, ftbFrame{fi.ID(), false})
				}
			}
			continue
		}
		switch w.Type() {
		case gig.TypeConst:
			memo[top.id] = 0
		case gig.TypeAnd:
			fanins := w.Fanins()
			var vals [2]uint64
			for i, fi := range fanins {
				v := memo[fi.ID()]
				if fi.Sign() {
					v = ^v
				}
				vals[i] = v
			}
			memo[top.id] = vals[0] & vals[1]
		default:
			panic(fmt.Sprintf("lutmap: computeFTB: unhandled gate type %v below cut", w.Type()))
		}
		stack = stack[:len(stack)-1]
	}

	ftb := memo[root.ID()]
	if root.Sign() {
		ftb = ^ftb
	}
	return ftb
}
