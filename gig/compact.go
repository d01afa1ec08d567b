//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package gig

// Remap describes the literal-to-literal translation produced by a
// Compact pass: every old literal maps to the new literal that now
// denotes the same logical signal, or to GLitNull if the gate was
// garbage and dropped. Two old gates may map to the same new gate
// (possibly with different signs), which is how a compaction that
// coincides with a structural merge is expressed.
type Remap struct {
	old2new []GLit
}

// Map translates an old literal into its new one, preserving the
// caller's sign relative to the literal's old unsigned form.
func (r *Remap) Map(lit GLit) GLit {
	if lit.ID() == IDNull {
		return GLitNull
	}
	base := r.old2new[lit.ID()]
	if base == GLitNull {
		return GLitNull
	}
	return base.WithSign(base.Sign() != lit.Sign())
}

// compactFrame is one stack entry of the iterative post-order
// traversal Compact uses to build a topological gate order without
// recursion.
type compactFrame struct {
	id  GateID
	idx int
}

// Compact removes every gate unreachable from a primary output or
// sequential data input, renumbers the survivors densely in
// topological order (every gate's fan-ins get smaller ids than the
// gate itself), and leaves the netlist frozen and canonical. Primary
// inputs and flip-flop outputs are always kept even if unused, since
// they are part of the netlist's declared interface rather than
// disposable logic.
func Compact(n *Netlist) *Remap {
	size := n.ids.size
	reachable := make([]bool, size)
	var work []GateID
	mark := func(id GateID) {
		if !reachable[id] {
			reachable[id] = true
			work = append(work, id)
		}
	}
	mark(IDNull)
	mark(IDUnbound)
	mark(IDConflict)
	mark(IDConst)
	mark(IDReset)
	n.EnumGate(func(w Wire) bool {
		switch w.Type() {
		case TypePO, TypeSeq, TypePI, TypeFF:
			mark(w.ID())
		}
		return true
	})
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		for _, lit := range n.getGate(id).fanins() {
			if lit.ID() != IDNull {
				mark(lit.ID())
			}
		}
	}

	order := make([]GateID, 0, size)
	visited := make([]bool, size)
	emit := func(id GateID) {
		if !visited[id] {
			visited[id] = true
			order = append(order, id)
		}
	}
	emit(IDNull)
	emit(IDUnbound)
	emit(IDConflict)
	emit(IDConst)
	emit(IDReset)
	n.EnumGate(func(w Wire) bool {
		if w.Type() == TypePI || w.Type() == TypeFF {
			emit(w.ID())
		}
		return true
	})
	var roots []GateID
	n.EnumGate(func(w Wire) bool {
		if reachable[w.ID()] && (w.Type() == TypePO || w.Type() == TypeSeq) {
			roots = append(roots, w.ID())
		}
		return true
	})
	for _, root := range roots {
		if visited[root] {
			continue
		}
		stack := []compactFrame{{root, 0}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			fanins := n.getGate(top.id).fanins()
			if top.idx < len(fanins) {
				child := fanins[top.idx].ID()
				top.idx++
				if child != IDNull && !visited[child] {
					stack = append(stack, compactFrame{child, 0})
				}
				continue
			}
			emit(top.id)
			stack = stack[:len(stack)-1]
		}
	}
	// Append, in old-id order, any marked gate the traversal above did
	// not emit. Gates that were never marked (such as FreeForm scratch
	// gates not wired to an output) are dropped.
	n.EnumGate(func(w Wire) bool {
		if reachable[w.ID()] && !visited[w.ID()] {
			emit(w.ID())
		}
		return true
	})

	remap := &Remap{old2new: make([]GLit, size)}
	for newID, oldID := range order {
		remap.old2new[oldID] = MakeLit(GateID(newID), false)
	}

	snapshot := make([]gate, size)
	for id := GateID(0); id < GateID(size); id++ {
		snapshot[id] = *n.getGate(id)
	}
	oldFTB := n.ftb

	n.pages = nil
	n.ids = idRepos{}
	n.liveCount = 0
	n.nRemoved = 0
	for t := range n.typeCount {
		n.typeCount[t] = 0
	}
	for t := range n.numbering {
		n.numbering[t].Clear()
	}
	n.ftb = nil

	nullID := n.allocID()
	n.getGate(nullID).typ = TypeNull
	for _, typ := range []GateType{TypeUnbound, TypeConflict, TypeConst, TypeReset} {
		id := n.allocID()
		g := n.getGate(id)
		g.typ = typ
		n.typeCount[typ]++
		n.liveCount++
	}

	for i := 5; i < len(order); i++ {
		oldID := order[i]
		old := snapshot[oldID]
		newID := n.allocID()
		g := n.getGate(newID)
		oldFanins := old.fanins()
		remapped := make([]GLit, len(oldFanins))
		for j, lit := range oldFanins {
			remapped[j] = remap.Map(lit)
		}
		n.initGate(g, old.typ, remapped)
		n.typeCount[old.typ]++
		n.liveCount++
		if old.typ.AttrKind() == AttrNum {
			newNum := n.numbering[old.typ].Get()
			g.attr = newNum
			if old.typ == TypeLUT6 {
				var ftbVal uint64
				if int(old.attr) < len(oldFTB) {
					ftbVal = oldFTB[old.attr]
				}
				n.setFTBSize(newNum)
				n.ftb[newNum] = ftbVal
			}
		} else {
			g.attr = old.attr
		}
	}

	n.compactObjects(remap)
	n.tellCompacting(remap)
	n.frozen = 2
	return remap
}
