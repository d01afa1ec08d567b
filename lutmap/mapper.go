//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package lutmap

import (
	"fmt"
	"sort"

	"github.com/markkurossi/lutmap/gig"
)

// Params configures a mapping run.
type Params struct {
	// NRounds is the number of cut-enumeration / re-estimation passes
	// to run. Each round after the first refines arrival and area
	// estimates using the previous round's choices.
	NRounds int

	// CutsPerNode bounds how many candidate cuts are kept per node
	// after ranking; 0 means unbounded.
	CutsPerNode int

	// DelayFactor is the delay contributed by one LUT level.
	DelayFactor float64

	// MapForArea ranks and selects cuts by area first, delay second;
	// the default ranks by delay first, area second.
	MapForArea bool

	// Quiet suppresses the per-round report.
	Quiet bool

	// RefreshCutsAfterRound0 controls whether cuts are regenerated
	// from scratch in every round (true, the default) or enumerated
	// once in round 0 and merely re-costed in later rounds (false),
	// trading mapping quality for less enumeration work.
	RefreshCutsAfterRound0 bool
}

// DefaultParams returns the mapper's default configuration.
func DefaultParams() Params {
	return Params{
		NRounds:                5,
		CutsPerNode:            8,
		DelayFactor:            1,
		MapForArea:             false,
		Quiet:                  true,
		RefreshCutsAfterRound0: true,
	}
}

// roundStat is one row of the mapper's per-round report.
type roundStat struct {
	round          int
	cutsEnumerated int
	mappedArea     float64
	mappedDelay    float64
}

// Mapper runs priority-cut LUT6 technology mapping over a netlist.
type Mapper struct {
	n  *gig.Netlist
	p  Params
	fc *gig.FanoutCounter

	cuts      gig.WMap[[]Cut]
	arrival   gig.WMap[float64]
	depart    gig.WMap[float64]
	areaEst   gig.WMap[float64]
	fanoutEst gig.WMap[float64]

	arena *cutArena

	round          int
	cutsEnumerated int
	targetArrival  float64
	mappedArea     float64
	mappedDelay    float64

	stats []roundStat
}

// Map runs LUT6 technology mapping over n in place: every AND gate
// reachable from a primary output or sequential data input is
// replaced by a TypeLUT6 gate (or absorbed into one), leaving PI, PO,
// FF and Seq gates untouched. n is compacted first if it is not
// already canonical.
func Map(n *gig.Netlist, p Params) error {
	if p.NRounds <= 0 {
		return fmt.Errorf("lutmap: NRounds must be positive, got %d", p.NRounds)
	}
	if !n.IsCanonical() {
		gig.Compact(n)
	}
	n.Thaw()
	n.SetMode(gig.ModeLut6)

	m := &Mapper{
		n:     n,
		p:     p,
		fc:    gig.NewFanoutCounter(),
		arena: newCutArena(),
	}
	n.Attach(m.fc)
	defer n.Detach(m.fc)

	m.run()
	return nil
}

func (m *Mapper) run() {
	for r := 0; r < m.p.NRounds; r++ {
		m.round = r
		m.cutsEnumerated = 0

		refresh := r == 0 || m.p.RefreshCutsAfterRound0
		m.n.EnumGate(func(w gig.Wire) bool {
			if w.Type() != gig.TypeAnd {
				// Leaf and sink costs never change round to round; they
				// only need to be seeded once, in round 0.
				if r == 0 {
					m.generateCuts(w)
				}
				return true
			}
			if refresh {
				m.generateCuts(w)
			} else {
				m.cuts.SetWire(w, m.rescoreOnly(w, m.cuts.GetWire(w)))
			}
			return true
		})

		m.updateFanoutEst()
		m.recordRoundStats()

		if r == 0 && m.p.RefreshCutsAfterRound0 {
			m.arena.reset()
		}
	}

	m.instantiate()

	if !m.p.Quiet {
		NewReporter(m.stats).Print(nil)
	}
}

// rescoreOnly re-evaluates cost over an already-enumerated cut set,
// without regenerating it; used on rounds after the first when
// RefreshCutsAfterRound0 is false.
func (m *Mapper) rescoreOnly(w gig.Wire, cuts []Cut) []Cut {
	scored := m.scoreCuts(w, cuts)
	scored = m.rankCuts(w, scored)
	m.commitBest(w, scored)
	out := make([]Cut, len(scored))
	for i, s := range scored {
		out[i] = s.cut
	}
	return out
}

// generateCuts computes the candidate cut set for w from scratch,
// based on its gate type.
func (m *Mapper) generateCuts(w gig.Wire) {
	switch w.Type() {
	case gig.TypeConst, gig.TypeReset:
		m.cuts.SetWire(w, []Cut{EmptyCut()})
		m.arrival.SetWire(w, 0)
		m.areaEst.SetWire(w, 0)
	case gig.TypePI, gig.TypeFF:
		m.cuts.SetWire(w, []Cut{TrivialCut(w.ID())})
		m.arrival.SetWire(w, 0)
		m.areaEst.SetWire(w, 0)
	case gig.TypePO, gig.TypeSeq:
		// Sinks have no cut of their own; their mapped cost mirrors
		// whatever drives them.
	case gig.TypeUnbound, gig.TypeConflict:
		// The reserved sentinel gates present in every netlist are not
		// mapped and carry no cut.
	case gig.TypeAnd:
		m.generateCutsAnd(w)
	default:
		panic(fmt.Sprintf("lutmap: cannot generate cuts for gate type %v", w.Type()))
	}
	m.cutsEnumerated += len(m.cuts.GetWire(w))
}

// effectiveCuts returns fanin's cut set augmented with its own
// trivial cut, if that is not already present. Every node offers
// itself as a one-leaf cut to its fanouts regardless of whether that
// cut survived its own ranking.
func (m *Mapper) effectiveCuts(fanin gig.Wire) []Cut {
	base := m.cuts.GetWire(fanin)
	trivial := TrivialCut(fanin.ID())
	for _, c := range base {
		if c.size == 1 && c.inputs[0] == fanin.ID() {
			return base
		}
	}
	out := make([]Cut, len(base), len(base)+1)
	copy(out, base)
	return append(out, trivial)
}

func (m *Mapper) generateCutsAnd(w gig.Wire) {
	fanins := w.Fanins()
	c0 := m.effectiveCuts(fanins[0])
	c1 := m.effectiveCuts(fanins[1])

	combined := m.arena.alloc(len(c0) * len(c1))
enumerate:
	for _, a := range c0 {
		for _, b := range c1 {
			merged := CombineAnd(a, b)
			if merged.IsNull() {
				continue
			}
			if merged.Size() <= 1 {
				// w is a constant, buffer or inverter of one leaf: that
				// cut alone replaces the list and enumeration stops.
				combined = append(combined[:0], merged)
				break enumerate
			}
			combined = applySubsumptionAndAddCut(combined, merged)
		}
	}

	scored := m.scoreCuts(w, combined)
	scored = m.rankCuts(w, scored)
	m.commitBest(w, scored)

	out := make([]Cut, len(scored))
	for i, s := range scored {
		out[i] = s.cut
	}
	m.cuts.SetWire(w, out)
}

// scoreCuts evaluates the delay and area-flow cost of every
// candidate cut at w.
func (m *Mapper) scoreCuts(w gig.Wire, cuts []Cut) []scoredCut {
	out := make([]scoredCut, len(cuts))
	for i, c := range cuts {
		out[i] = scoredCut{cut: c, cost: m.evalCost(c)}
	}
	return out
}

func (m *Mapper) evalCost(c Cut) Cost {
	if c.Size() == 0 {
		return Cost{Delay: 0, Area: 0}
	}
	var delay float64
	var area float64 = 1 // the one LUT this cut would instantiate
	for _, leaf := range c.Leaves() {
		leafWire := m.n.Wire(gig.MakeLit(leaf, false))
		if d := m.arrival.GetWire(leafWire) + m.p.DelayFactor; d > delay {
			delay = d
		}
		fanout := m.fanoutEst.GetWire(leafWire)
		if fanout <= 0 {
			fanout = 1
		}
		area += m.areaEst.GetWire(leafWire) / fanout
	}
	return Cost{Delay: delay, Area: area}
}

// rankCuts ranks and trims w's scored candidate cuts using round 0's
// fixed Delay_lt order, or, from round 1 on, the required-arrival
// area/delay partition.
func (m *Mapper) rankCuts(w gig.Wire, scored []scoredCut) []scoredCut {
	if m.round == 0 {
		return rankRound0(scored, m.p.CutsPerNode)
	}
	return rankAndPartition(scored, m.requiredArrival(w), m.p.CutsPerNode)
}

// requiredArrival computes w's required arrival time for round-≥1
// ranking: cuts whose delay does not exceed it are area-eligible.
// w's departure is read from the previous round's updateFanoutEst
// pass; a departure of posInf means w currently has no fan-out in the
// mapping (it is not, or not yet, used by any chosen cut).
func (m *Mapper) requiredArrival(w gig.Wire) float64 {
	depart := m.depart.GetWire(w)
	if depart >= posInf {
		if m.p.MapForArea {
			return posInf
		}
		return m.arrival.GetWire(w) + m.p.DelayFactor
	}
	return m.targetArrival - (depart + m.p.DelayFactor)
}

func (m *Mapper) commitBest(w gig.Wire, scored []scoredCut) {
	if len(scored) == 0 {
		m.arrival.SetWire(w, 0)
		m.areaEst.SetWire(w, 0)
		return
	}
	m.arrival.SetWire(w, scored[0].cost.Delay)
	m.areaEst.SetWire(w, scored[0].cost.Area)
}

// updateFanoutEst recomputes each node's departure time (the slack
// between its arrival and the global target, consumed by the next
// round's requiredArrival) and blends its estimated fanout count
// towards its true structural fanout, visiting nodes in reverse
// topological order so a node's departure is known before its
// fanins need it.
func (m *Mapper) updateFanoutEst() {
	var maxArrival float64
	m.n.EnumGate(func(w gig.Wire) bool {
		if w.Type() == gig.TypePO || w.Type() == gig.TypeSeq {
			if fi := w.Fanin(0); fi.IsLegal() {
				if a := m.arrival.GetWire(fi); a > maxArrival {
					maxArrival = a
				}
			}
		}
		return true
	})
	m.targetArrival = maxArrival

	size := m.n.Size()

	// Departure is propagated from sinks to sources: every fan-in of
	// a node must arrive no later than the node's own required time
	// minus one LUT level, and a node's required time is the minimum
	// of what all of its fanouts demand (infinite, i.e. unconstrained,
	// if it has none).
	required := gig.NewWMap[float64]()
	m.n.EnumGate(func(w gig.Wire) bool {
		switch w.Type() {
		case gig.TypePO, gig.TypeSeq:
			required.SetWire(w, m.targetArrival)
		default:
			// Left unconstrained (infinite) here regardless of
			// MapForArea: an area-mapping pass intentionally never
			// tightens required times towards the delay target, and a
			// delay-mapping pass only tightens them by propagation
			// below, never by a different starting value.
			required.SetWire(w, posInf)
		}
		return true
	})
	for id := int(size) - 1; id >= 0; id-- {
		w := m.n.Wire(gig.MakeLit(gig.GateID(id), false))
		if w.IsRemoved() {
			continue
		}
		req := required.GetWire(w)
		m.depart.SetWire(w, req)
		if w.Type() != gig.TypeAnd || m.p.MapForArea {
			// An area-mapping pass leaves every node's required time
			// at its unconstrained default; only a delay-mapping pass
			// tightens it by propagating from sinks to sources.
			continue
		}
		cut := m.bestCut(w)
		for _, leaf := range cut.Leaves() {
			leafWire := m.n.Wire(gig.MakeLit(leaf, false))
			want := req - m.p.DelayFactor
			if want < required.GetWire(leafWire) {
				required.SetWire(leafWire, want)
			}
		}
	}

	round := float64(m.round + 1)
	alpha := 1 - 1/(round*round*round*round+1)
	m.n.EnumGate(func(w gig.Wire) bool {
		switch w.Type() {
		case gig.TypePO, gig.TypeSeq:
			return true
		}
		structural := float64(m.fc.NumFanouts(w))
		if structural == 0 {
			structural = 1
		}
		prev := m.fanoutEst.GetWire(w)
		if prev == 0 {
			m.fanoutEst.SetWire(w, structural)
		} else {
			m.fanoutEst.SetWire(w, alpha*structural+(1-alpha)*prev)
		}
		return true
	})
}

// posInf stands in for the unconstrained required-time used for
// nodes with no fanout and, intentionally, for every node when
// MapForArea is set: an area-only pass does not try to tighten
// anything towards the delay target.
const posInf = 1e18

// bestCut returns w's currently best-ranked cut (its cutmap entry's
// first element), or the trivial cut if none was stored.
func (m *Mapper) bestCut(w gig.Wire) Cut {
	cuts := m.cuts.GetWire(w)
	if len(cuts) == 0 {
		return TrivialCut(w.ID())
	}
	return cuts[0]
}

// requiredRoots finds the AND gates that must become LUT6 roots in
// the final mapping: those reachable from a primary output or
// sequential data input without crossing another cut's boundary. An
// AND gate that only ever appears as an interior node of some larger
// chosen cut is not required; it is absorbed into that cut's LUT and
// becomes dead once the root's fan-ins are redirected to the cut's
// leaves, to be reclaimed by the compaction Map runs afterwards.
func (m *Mapper) requiredRoots() []gig.GateID {
	marked := make(map[gig.GateID]bool)
	var queue []gig.GateID
	mark := func(id gig.GateID) {
		if !marked[id] {
			marked[id] = true
			queue = append(queue, id)
		}
	}

	m.n.EnumGate(func(w gig.Wire) bool {
		switch w.Type() {
		case gig.TypePO, gig.TypeSeq:
			if fi := w.Fanin(0); fi.IsLegal() && fi.Type() == gig.TypeAnd {
				mark(fi.ID())
			}
		}
		return true
	})

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		w := m.n.Wire(gig.MakeLit(id, false))
		cut := m.bestCut(w)
		for _, leaf := range cut.Leaves() {
			leafWire := m.n.Wire(gig.MakeLit(leaf, false))
			if leafWire.Type() == gig.TypeAnd {
				mark(leaf)
			}
		}
	}

	roots := make([]gig.GateID, 0, len(marked))
	for id := range marked {
		roots = append(roots, id)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	return roots
}

// instantiate computes the function table of every required AND
// gate over its best cut while the AND cones are still intact, then
// replaces each such gate with a realized LUT6, in ascending (so
// fanin-before-fanout) order.
func (m *Mapper) instantiate() {
	m.mappedArea = 0
	m.mappedDelay = 0

	roots := m.requiredRoots()
	ftbs := make([]uint64, len(roots))
	for i, id := range roots {
		w := m.n.Wire(gig.MakeLit(id, false))
		ftbs[i] = computeFTB(m.n, w, m.bestCut(w))
	}
	for i, id := range roots {
		w := m.n.Wire(gig.MakeLit(id, false))
		cut := m.bestCut(w)
		ftb := ftbs[i]

		fanins := make([]gig.GLit, cut.Size())
		for i, leaf := range cut.Leaves() {
			fanins[i] = gig.MakeLit(leaf, false)
		}
		lw := m.n.Change(w, gig.TypeLUT6, fanins...)
		lw.SetFTB(ftb)

		m.mappedArea++
		if d := m.arrival.Get(id); d > m.mappedDelay {
			m.mappedDelay = d
		}
	}

	gig.Compact(m.n)
}
