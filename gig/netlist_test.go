//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package gig

import "testing"

func TestReservedGates(t *testing.T) {
	n := NewNetlist(ModeFreeForm)
	if n.Unbound().ID() != IDUnbound {
		t.Errorf("Unbound id = %d, want %d", n.Unbound().ID(), IDUnbound)
	}
	if n.Conflict().ID() != IDConflict {
		t.Errorf("Conflict id = %d, want %d", n.Conflict().ID(), IDConflict)
	}
	if n.False().Sign() {
		t.Error("False should have sign 0")
	}
	if !n.True().Sign() {
		t.Error("True should have sign 1")
	}
	if n.False().ID() != n.True().ID() {
		t.Error("False and True should share a gate id")
	}
	if n.Size() != uint32(FirstUserID) {
		t.Errorf("Size() = %d, want %d", n.Size(), FirstUserID)
	}
}

func TestAddAssignsStableIDs(t *testing.T) {
	n := NewNetlist(ModeAig)
	pi0 := n.Add(TypePI)
	pi1 := n.Add(TypePI)
	if pi0.ID() == pi1.ID() {
		t.Fatal("distinct Add calls returned the same id")
	}
	and := n.Add(TypeAnd, pi0.Lit(), pi1.Lit())
	if and.Fanin(0).ID() != pi0.ID() || and.Fanin(1).ID() != pi1.ID() {
		t.Error("And gate fan-ins do not match what was passed to Add")
	}
	if n.Count() != 7 {
		t.Errorf("Count() = %d, want 7", n.Count())
	}
}

func TestNumberingReuseRequiresRecycling(t *testing.T) {
	n := NewNetlist(ModeAig)
	pi0 := n.Add(TypePI)
	num0 := pi0.Num()
	n.Remove(pi0)
	pi1 := n.Add(TypePI)
	if pi1.Num() == num0 {
		t.Error("PI numbering attribute was reused without recycling enabled")
	}

	n.SetRecycling(true)
	n2 := NewNetlist(ModeAig)
	n2.SetRecycling(true)
	a := n2.Add(TypePI)
	aNum := a.Num()
	n2.Remove(a)
	b := n2.Add(TypePI)
	if b.Num() != aNum {
		t.Errorf("expected recycled PI numbering %d, got %d", aNum, b.Num())
	}
}

func TestFreezeBlocksMutation(t *testing.T) {
	n := NewNetlist(ModeAig)
	pi0 := n.Add(TypePI)
	pi1 := n.Add(TypePI)
	and := n.Add(TypeAnd, pi0.Lit(), pi1.Lit())
	n.Freeze()

	defer func() {
		if recover() == nil {
			t.Error("Add on a frozen netlist should panic")
		}
	}()
	_ = and
	n.Add(TypePI)
}

func TestStrashedFaninCannotBeSetDirectly(t *testing.T) {
	n := NewNetlist(ModeAig)
	pi0 := n.Add(TypePI)
	pi1 := n.Add(TypePI)
	and := n.Add(TypeAnd, pi0.Lit(), pi1.Lit())

	defer func() {
		if recover() == nil {
			t.Error("SetFanin on an And gate should panic; fan-ins are strash-owned")
		}
	}()
	and.SetFanin(0, pi1.Lit())
}

func TestChangePreservesID(t *testing.T) {
	n := NewNetlist(ModeFreeForm)
	pi0 := n.Add(TypePI)
	pi1 := n.Add(TypePI)
	and := n.Add(TypeAnd, pi0.Lit(), pi1.Lit())
	id := and.ID()

	lit := n.Change(and, TypeLUT6, pi0.Lit(), pi1.Lit())
	if lit.ID() != id {
		t.Errorf("Change reassigned id: got %d, want %d", lit.ID(), id)
	}
	if lit.Type() != TypeLUT6 {
		t.Errorf("Change left type %v, want Lut6", lit.Type())
	}
	if lit.Size() != 2 {
		t.Errorf("Size() = %d, want 2", lit.Size())
	}
}

func TestListenerSeesAllMessages(t *testing.T) {
	n := NewNetlist(ModeAig)
	var added, removed, updated, substituted int
	lis := &countingListener{
		add: func(Wire) { added++ },
		rem: func(Wire, bool) { removed++ },
		upd: func(Wire, int, Wire, Wire) { updated++ },
		sub: func(Wire, Wire) { substituted++ },
	}
	n.Listen(lis, MsgAll)

	pi0 := n.Add(TypePI)
	pi1 := n.Add(TypePI)
	pi2 := n.Add(TypePI)
	po := n.Add(TypePO, pi0.Lit())
	po.SetFanin(0, pi1.Lit())
	n.Remove(po)
	n.TellSubst(pi2.Lit(), pi1.Lit())

	if added != 4 {
		t.Errorf("added = %d, want 4", added)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if updated != 1 {
		t.Errorf("updated = %d, want 1", updated)
	}
	if substituted != 1 {
		t.Errorf("substituted = %d, want 1", substituted)
	}
}

type countingListener struct {
	NopListener
	add func(Wire)
	rem func(Wire, bool)
	upd func(Wire, int, Wire, Wire)
	sub func(Wire, Wire)
}

func (l *countingListener) Adding(w Wire)                          { l.add(w) }
func (l *countingListener) Removing(w Wire, recreated bool)        { l.rem(w, recreated) }
func (l *countingListener) Updating(w Wire, pin int, old, new Wire) { l.upd(w, pin, old, new) }
func (l *countingListener) Substituting(old, new Wire)              { l.sub(old, new) }

func TestCompactDropsUnreachableAndKeepsInterface(t *testing.T) {
	n := NewNetlist(ModeAig)
	pi0 := n.Add(TypePI)
	pi1 := n.Add(TypePI)
	unusedPI := n.Add(TypePI)
	live := n.Add(TypeAnd, pi0.Lit(), pi1.Lit())
	garbage := n.Add(TypeAnd, pi0.Lit(), pi1.Lit().Not())
	po := n.Add(TypePO, live.Lit())
	_ = garbage

	before := n.Count()
	remap := Compact(n)
	if !n.IsCanonical() {
		t.Error("Compact should leave the netlist canonical")
	}
	if n.Count() >= before {
		t.Error("Compact should have dropped the unreachable And gate")
	}
	if n.TypeCount(TypePI) != 3 {
		t.Errorf("TypeCount(PI) = %d, want 3 (PIs are interface, never garbage)", n.TypeCount(TypePI))
	}
	_ = unusedPI
	newPO := n.Wire(remap.Map(po.Lit()))
	if newPO.Fanin(0).Type() != TypeAnd {
		t.Error("PO's driver should still be the live And gate after compaction")
	}
}

func TestFanoutCounterTracksStructuralFanout(t *testing.T) {
	n := NewNetlist(ModeAig)
	fc := NewFanoutCounter()
	n.Attach(fc)

	pi0 := n.Add(TypePI)
	pi1 := n.Add(TypePI)
	and0 := n.Add(TypeAnd, pi0.Lit(), pi1.Lit())
	and1 := n.Add(TypeAnd, pi0.Lit(), and0.Lit())
	n.Add(TypePO, and1.Lit())

	if got := fc.NumFanouts(pi0); got != 2 {
		t.Errorf("NumFanouts(pi0) = %d, want 2", got)
	}
	if got := fc.NumFanouts(and0); got != 1 {
		t.Errorf("NumFanouts(and0) = %d, want 1", got)
	}
}

func TestFingerprintStableAcrossEquivalentBuilds(t *testing.T) {
	build := func() *Netlist {
		n := NewNetlist(ModeAig)
		pi0 := n.Add(TypePI)
		pi1 := n.Add(TypePI)
		and := n.Add(TypeAnd, pi0.Lit(), pi1.Lit())
		n.Add(TypePO, and.Lit())
		return n
	}
	a, b := build(), build()
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("two structurally identical netlists produced different fingerprints")
	}

	c := build()
	c.Add(TypePI)
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("adding a gate did not change the fingerprint")
	}
}
