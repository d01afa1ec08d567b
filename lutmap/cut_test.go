//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package lutmap

import (
	"testing"

	"github.com/markkurossi/lutmap/gig"
)

func TestCutSubsumes(t *testing.T) {
	small := TrivialCut(5)
	big := CombineAnd(TrivialCut(5), TrivialCut(6))
	if !small.Subsumes(big) {
		t.Error("a one-leaf cut should subsume a superset two-leaf cut")
	}
	if big.Subsumes(small) {
		t.Error("a two-leaf cut should not subsume a one-leaf subset")
	}
}

func TestCombineAndMergesSortedLeaves(t *testing.T) {
	a := CombineAnd(TrivialCut(1), TrivialCut(3))
	b := CombineAnd(TrivialCut(2), TrivialCut(4))
	c := CombineAnd(a, b)
	if c.IsNull() {
		t.Fatal("four-leaf combine should not be null")
	}
	got := c.Leaves()
	want := []gig.GateID{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("Leaves() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Leaves() = %v, want %v", got, want)
		}
	}
}

func TestCombineAndRejectsOverflow(t *testing.T) {
	c := EmptyCut()
	for i := gig.GateID(0); i < 7; i++ {
		c = CombineAnd(c, TrivialCut(i))
	}
	if !c.IsNull() {
		t.Error("combining seven distinct leaves should produce a null cut")
	}
}

func TestApplySubsumptionAndAddCutDropsDominated(t *testing.T) {
	var cuts []Cut
	cuts = applySubsumptionAndAddCut(cuts, CombineAnd(TrivialCut(1), TrivialCut(2)))
	cuts = applySubsumptionAndAddCut(cuts, TrivialCut(1))
	if len(cuts) != 1 || cuts[0].Size() != 1 {
		t.Fatalf("expected the smaller cut to evict the dominated bigger one, got %v", cuts)
	}
	cuts = applySubsumptionAndAddCut(cuts, CombineAnd(TrivialCut(1), TrivialCut(3)))
	if len(cuts) != 1 {
		t.Fatalf("a cut already subsumed by an existing cut should not be added, got %v", cuts)
	}
}
