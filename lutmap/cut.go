//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package lutmap

import (
	"math/bits"

	"github.com/markkurossi/lutmap/gig"
)

// maxCutSize is the number of inputs a LUT6 can realize, and so the
// largest leaf set a feasible cut may carry.
const maxCutSize = 6

// Cut is a K-feasible cut: the set of gate ids a single LUT6 could
// read to reproduce some node's function, plus a 32-bit abstraction
// of that set used to reject non-subsets and non-overlaps in O(1)
// before ever touching the leaf array itself. Leaves are always kept
// sorted by id, which both the subsumption check and CombineAnd rely
// on.
type Cut struct {
	inputs [maxCutSize]gig.GateID
	size   uint8
	abstr  uint32
}

func leafAbstr(id gig.GateID) uint32 {
	return uint32(1) << (uint32(id) & 31)
}

// EmptyCut is the zero-leaf cut: a node whose function does not
// depend on any boundary variable, i.e. a constant.
func EmptyCut() Cut {
	return Cut{}
}

// TrivialCut is the one-leaf cut consisting of the node itself. Every
// node, not only primary inputs, offers this cut to its fanouts: it
// lets a consumer stop expanding right there instead of only being
// able to see through to the node's own inputs.
func TrivialCut(id gig.GateID) Cut {
	return Cut{inputs: [maxCutSize]gig.GateID{id}, size: 1, abstr: leafAbstr(id)}
}

// NullCut is the infeasible cut: a placeholder result for a
// combination that exceeded six leaves.
func NullCut() Cut {
	return Cut{size: maxCutSize + 1}
}

// IsNull tells whether c is infeasible.
func (c Cut) IsNull() bool {
	return c.size > maxCutSize
}

// Size returns the number of leaves in the cut.
func (c Cut) Size() int {
	return int(c.size)
}

// Leaves returns the cut's leaf ids, in ascending order.
func (c Cut) Leaves() []gig.GateID {
	return c.inputs[:c.size]
}

// HasLeaf tells whether id is one of the cut's leaves.
func (c Cut) HasLeaf(id gig.GateID) bool {
	for i := uint8(0); i < c.size; i++ {
		if c.inputs[i] == id {
			return true
		}
	}
	return false
}

// Subsumes tells whether c's leaf set is a subset of other's,
// meaning c is never worse than other: anything other's support can
// realize, c's support can realize too, with no more inputs.
func (c Cut) Subsumes(other Cut) bool {
	if c.size > other.size {
		return false
	}
	if c.abstr&^other.abstr != 0 {
		return false
	}
	i, j := 0, 0
	for i < int(c.size) {
		if j >= int(other.size) {
			return false
		}
		switch {
		case c.inputs[i] == other.inputs[j]:
			i++
			j++
		case c.inputs[i] > other.inputs[j]:
			j++
		default:
			return false
		}
	}
	return true
}

// CombineAnd merges the leaf sets of a and b, the two cuts feeding an
// AND gate's inputs, into the cut of the AND gate itself. It returns
// NullCut if the union would exceed six leaves.
func CombineAnd(a, b Cut) Cut {
	if a.IsNull() || b.IsNull() {
		return NullCut()
	}
	abstr := a.abstr | b.abstr
	// abstr's popcount never overstates the true leaf count (two
	// distinct ids can only ever collide onto the same bit, never
	// split one id across two), so if it already exceeds six the
	// real merge is guaranteed to, and can be skipped.
	if bits.OnesCount32(abstr) > maxCutSize {
		return NullCut()
	}
	var merged [maxCutSize]gig.GateID
	ii, jj, k := 0, 0, 0
	for ii < int(a.size) || jj < int(b.size) {
		var id gig.GateID
		switch {
		case jj >= int(b.size) || (ii < int(a.size) && a.inputs[ii] < b.inputs[jj]):
			id = a.inputs[ii]
			ii++
		case ii >= int(a.size) || (jj < int(b.size) && b.inputs[jj] < a.inputs[ii]):
			id = b.inputs[jj]
			jj++
		default:
			id = a.inputs[ii]
			ii++
			jj++
		}
		if k >= maxCutSize {
			return NullCut()
		}
		merged[k] = id
		k++
	}
	return Cut{inputs: merged, size: uint8(k), abstr: abstr}
}

// applySubsumptionAndAddCut inserts cand into cuts, dropping any
// existing cut that cand subsumes and refusing the insert entirely if
// some existing cut already subsumes cand.
func applySubsumptionAndAddCut(cuts []Cut, cand Cut) []Cut {
	for _, c := range cuts {
		if c.Subsumes(cand) {
			return cuts
		}
	}
	kept := cuts[:0]
	for _, c := range cuts {
		if !cand.Subsumes(c) {
			kept = append(kept, c)
		}
	}
	return append(kept, cand)
}
