//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package gig

import "fmt"

// pageSize is the number of gate records per allocated page. Pages
// are allocated lazily as ids are issued, the same bump-allocation
// shape as the teacher's compiler/circuits.Allocator block scheme,
// generalized from a flat slice to a page table so that a netlist's
// backing storage never needs to be copied on growth.
const pageSize = 1024

type page [pageSize]gate

// Mode restricts the alphabet of gate types a netlist will accept.
// FreeForm accepts any type, including the FreeForm-only scratch
// types TypeLabel and TypeMark; the other modes are progressively
// narrower domain alphabets.
type Mode uint8

// Netlist modes.
const (
	ModeFreeForm Mode = iota
	ModeAig
	ModeXig
	ModeNpn4
	ModeLut4
	ModeLut6
)

func (m Mode) String() string {
	switch m {
	case ModeFreeForm:
		return "FreeForm"
	case ModeAig:
		return "Aig"
	case ModeXig:
		return "Xig"
	case ModeNpn4:
		return "Npn4"
	case ModeLut4:
		return "Lut4"
	case ModeLut6:
		return "Lut6"
	default:
		return fmt.Sprintf("{Mode %d}", m)
	}
}

// allowedInMode tells whether a gate type may be created in a
// netlist of the given mode. The structural types (the five reserved
// gates, PI/PO/FF/Seq) are legal in every domain mode; only the
// domain gate itself varies. Xig, Npn4 and Lut4 are declared for API
// completeness with the original mode enumeration but have no
// implemented domain gate of their own in this package, so they admit
// only the structural set.
func allowedInMode(mode Mode, t GateType) bool {
	if mode == ModeFreeForm {
		return true
	}
	switch t {
	case TypeNull, TypeUnbound, TypeConflict, TypeConst, TypeReset,
		TypePI, TypePO, TypeFF, TypeSeq:
		return true
	case TypeAnd:
		// Lut6 mode is the output of mapping an Aig, and mapping works
		// in place: a netlist mid-mapping legitimately holds both And
		// gates not yet visited and Lut6 gates already instantiated,
		// so Lut6 mode admits And too rather than rejecting it.
		return mode == ModeAig || mode == ModeLut6
	case TypeLUT6:
		return mode == ModeLut6
	default:
		return false
	}
}

// Netlist is a paged, typed collection of gates, connected only by
// signed literals (GLit), never by pointers. Gate ids are stable
// until a gate is removed (or the whole netlist is compacted).
type Netlist struct {
	mode      Mode
	frozen    int // 0 mutable, 1 frozen, 2 canonical
	pages     []*page
	ids       idRepos
	recycling bool
	liveCount uint32
	nRemoved  uint32
	typeCount [numGateTypes]uint32
	numbering [numGateTypes]idRepos
	listeners [numMsgKinds][]Listener
	ftb       []uint64 // LUT6 function tables, indexed by the gate's num attribute
	objects   []Object
}

// NewNetlist creates an empty netlist restricted to mode, with its
// five reserved gates already present.
func NewNetlist(mode Mode) *Netlist {
	n := &Netlist{mode: mode}
	nullID := GateID(n.ids.Get())
	n.ensureGate(nullID)
	n.getGate(nullID).typ = TypeNull
	n.allocReserved(TypeUnbound)
	n.allocReserved(TypeConflict)
	n.allocReserved(TypeConst)
	n.allocReserved(TypeReset)
	return n
}

func (n *Netlist) allocReserved(typ GateType) {
	id := GateID(n.ids.Get())
	n.ensureGate(id)
	g := n.getGate(id)
	g.typ = typ
	n.typeCount[typ]++
	n.liveCount++
}

// Mode returns the netlist's current mode.
func (n *Netlist) Mode() Mode {
	return n.mode
}

// SetMode changes the netlist's mode. It panics if any gate already
// present would be illegal under the new mode.
func (n *Netlist) SetMode(mode Mode) {
	for id := GateID(0); id < GateID(n.ids.size); id++ {
		g := n.getGate(id)
		if g.typ != TypeNull && !allowedInMode(mode, g.typ) {
			panic(fmt.Sprintf("gig: gate %d (%v) is not legal in mode %v", id, g.typ, mode))
		}
	}
	n.mode = mode
}

// AssertMode panics unless t is legal under the netlist's current
// mode.
func (n *Netlist) AssertMode(t GateType) {
	if !allowedInMode(n.mode, t) {
		panic(fmt.Sprintf("gig: gate type %v is not legal in mode %v", t, n.mode))
	}
}

// IsFrozen tells whether the netlist currently rejects mutation.
func (n *Netlist) IsFrozen() bool {
	return n.frozen != 0
}

// IsCanonical tells whether the netlist is frozen, compacted and
// topologically ordered.
func (n *Netlist) IsCanonical() bool {
	return n.frozen == 2
}

// Freeze forbids further mutation without compacting.
func (n *Netlist) Freeze() {
	if n.frozen == 0 {
		n.frozen = 1
	}
}

// Thaw re-admits mutation. A canonical netlist that is thawed is no
// longer canonical.
func (n *Netlist) Thaw() {
	n.frozen = 0
}

func (n *Netlist) setCanonical() {
	n.frozen = 2
}

func (n *Netlist) assertMutable() {
	if n.frozen != 0 {
		panic("gig: netlist is frozen")
	}
}

// SetRecycling controls whether Remove returns its gate id to the
// free pool for reuse by a later Add. Netlists default to not
// recycling, matching a log that should never reinterpret an id once
// it has denoted something.
func (n *Netlist) SetRecycling(on bool) {
	n.recycling = on
}

// IsRecycling reports the current recycling policy.
func (n *Netlist) IsRecycling() bool {
	return n.recycling
}

// Size returns the extent of the gate table, i.e. one past the
// largest id ever issued. It does not shrink when gates are removed.
func (n *Netlist) Size() uint32 {
	return n.ids.size
}

// Count returns the number of live (non-removed) gates.
func (n *Netlist) Count() uint32 {
	return n.liveCount
}

// NRemoved returns the number of currently-removed gate slots (holes
// in the table that a recycling netlist may still reuse).
func (n *Netlist) NRemoved() uint32 {
	return n.nRemoved
}

// TypeCount returns the number of live gates of the given type.
func (n *Netlist) TypeCount(t GateType) uint32 {
	return n.typeCount[t]
}

// ClearNumbering discards and restarts the numbering allocator for
// t, without touching the gates themselves. Callers renumbering a
// type from scratch (e.g. before a fresh topological pass) must
// reassign every live gate's num attribute afterwards.
func (n *Netlist) ClearNumbering(t GateType) {
	n.numbering[t].Clear()
}

func (n *Netlist) ensureGate(id GateID) {
	pageIdx := int(id) / pageSize
	for pageIdx >= len(n.pages) {
		n.pages = append(n.pages, &page{})
	}
}

func (n *Netlist) getGate(id GateID) *gate {
	pageIdx := int(id) / pageSize
	off := int(id) % pageSize
	if pageIdx >= len(n.pages) {
		panic(fmt.Sprintf("gig: gate id %d out of range", id))
	}
	return &n.pages[pageIdx][off]
}

// Wire returns the transient view of a literal in this netlist.
func (n *Netlist) Wire(lit GLit) Wire {
	return Wire{n: n, lit: lit}
}

// Unbound returns the reserved dangling-reference gate.
func (n *Netlist) Unbound() Wire { return n.Wire(MakeLit(IDUnbound, false)) }

// Conflict returns the reserved contradiction gate.
func (n *Netlist) Conflict() Wire { return n.Wire(MakeLit(IDConflict, false)) }

// False returns the constant-false literal.
func (n *Netlist) False() Wire { return n.Wire(GLitFalse) }

// True returns the constant-true literal.
func (n *Netlist) True() Wire { return n.Wire(GLitTrue) }

// Reset returns the reserved global reset signal.
func (n *Netlist) Reset() Wire { return n.Wire(MakeLit(IDReset, false)) }

func (n *Netlist) initGate(g *gate, typ GateType, fanins []GLit) {
	size := uint32(len(fanins))
	if fixed, ok := typ.FixedSize(); ok {
		size = fixed
		if uint32(len(fanins)) != fixed {
			panic(fmt.Sprintf("gig: %v gate requires %d fan-ins, got %d", typ, fixed, len(fanins)))
		}
	}
	g.typ = typ
	g.size = size
	if size > MaxInlineFanins {
		g.isExt = true
		g.ext = make([]GLit, size)
		copy(g.ext, fanins)
	} else {
		g.isExt = false
		g.ext = nil
		for i := uint32(0); i < size; i++ {
			g.inl[i] = fanins[i]
		}
	}
	g.attr = 0
}

// Add creates a gate of a fixed-size type with the given fan-ins.
func (n *Netlist) Add(typ GateType, fanins ...GLit) Wire {
	return n.addAttr(typ, fanins, 0, false)
}

// AddAttr creates a gate and sets its opaque attribute (arg or lb)
// immediately, for types whose attribute the netlist does not manage
// itself.
func (n *Netlist) AddAttr(typ GateType, attr uint32, fanins ...GLit) Wire {
	return n.addAttr(typ, fanins, attr, true)
}

// AddDyn creates a gate of a dynamically-sized type (TypeLUT6) with
// the given fan-ins.
func (n *Netlist) AddDyn(typ GateType, fanins []GLit) Wire {
	return n.addAttr(typ, fanins, 0, false)
}

// AddPick creates a gate whose numbering attribute is the specific
// value num, rather than the smallest free one. It panics if num is
// already in use for the type.
func (n *Netlist) AddPick(typ GateType, num uint32, fanins ...GLit) Wire {
	n.assertMutable()
	n.AssertMode(typ)
	if typ.AttrKind() != AttrNum {
		panic(fmt.Sprintf("gig: %v gate has no num attribute to pick", typ))
	}
	id := n.allocID()
	g := n.getGate(id)
	n.initGate(g, typ, fanins)
	n.numbering[typ].Pick(num)
	g.attr = num
	n.typeCount[typ]++
	n.liveCount++
	w := Wire{n: n, lit: MakeLit(id, false)}
	n.tellAdding(w)
	return w
}

func (n *Netlist) addAttr(typ GateType, fanins []GLit, attr uint32, explicitAttr bool) Wire {
	n.assertMutable()
	n.AssertMode(typ)
	id := n.allocID()
	g := n.getGate(id)
	n.initGate(g, typ, fanins)
	switch typ.AttrKind() {
	case AttrNum:
		g.attr = n.numbering[typ].Get()
	case AttrArg, AttrLB:
		g.attr = attr
	}
	_ = explicitAttr
	n.typeCount[typ]++
	n.liveCount++
	w := Wire{n: n, lit: MakeLit(id, false)}
	n.tellAdding(w)
	return w
}

func (n *Netlist) allocID() GateID {
	reused := len(n.ids.free) > 0
	id := GateID(n.ids.Get())
	n.ensureGate(id)
	if reused {
		n.nRemoved--
	}
	return id
}

// Remove deletes a gate. Its fan-ins are not touched (callers are
// responsible for disconnecting or redirecting fan-outs first); the
// id becomes a hole that is reused only if the netlist has recycling
// enabled.
func (n *Netlist) Remove(w Wire) {
	n.assertMutable()
	n.remove(w, false)
}

func (n *Netlist) remove(w Wire, recreated bool) {
	id := w.ID()
	g := n.getGate(id)
	if g.typ == TypeNull {
		panic(fmt.Sprintf("gig: gate %d already removed", id))
	}
	n.tellRemoving(w, recreated)
	if g.typ.AttrKind() == AttrNum {
		n.numbering[g.typ].Release(g.attr)
	}
	n.typeCount[g.typ]--
	n.liveCount--
	n.nRemoved++
	g.typ = TypeNull
	g.size = 0
	g.isExt = false
	g.ext = nil
	g.attr = 0
	if n.recycling {
		n.ids.Release(uint32(id))
	}
}

// Change replaces the gate at w's id with a fresh gate of type typ
// and the given fan-ins, preserving the id. It is the only way to
// alter a gate's type or fan-in count in place; listeners see it as a
// Remove (with recreated set) immediately followed by an Add.
func (n *Netlist) Change(w Wire, typ GateType, fanins ...GLit) Wire {
	n.assertMutable()
	n.AssertMode(typ)
	id := w.ID()
	n.remove(w, true)
	n.nRemoved--
	if n.recycling {
		n.ids.Pick(uint32(id))
	}
	g := n.getGate(id)
	n.ensureGate(id)
	n.initGate(g, typ, fanins)
	if typ.AttrKind() == AttrNum {
		g.attr = n.numbering[typ].Get()
	}
	n.typeCount[typ]++
	n.liveCount++
	nw := Wire{n: n, lit: MakeLit(id, false)}
	n.tellAdding(nw)
	return nw
}

func (n *Netlist) setFanin(w Wire, pin int, v GLit) {
	n.assertMutable()
	g := n.getGate(w.ID())
	if g.typ.info().strashable {
		panic(fmt.Sprintf("gig: fan-ins of %v gates are owned by the strashing subsystem and cannot be set directly; use Change", g.typ))
	}
	if pin < 0 || pin >= int(g.size) {
		panic(fmt.Sprintf("gig: fanin pin %d out of range for gate %d (size %d)", pin, w.ID(), g.size))
	}
	if v.IsLegal() && n.getGate(v.ID()).typ == TypeNull {
		panic(fmt.Sprintf("gig: fan-in %v names a removed gate", v))
	}
	old := Wire{n: n, lit: g.fanin(pin)}
	nw := Wire{n: n, lit: v}
	n.tellUpdating(w, pin, old, nw)
	g.setFaninRaw(pin, v)
}

// EnumGate calls fn once for every live gate in ascending id order,
// stopping early if fn returns false.
func (n *Netlist) EnumGate(fn func(Wire) bool) {
	for id := GateID(0); id < GateID(n.ids.size); id++ {
		g := n.getGate(id)
		if g.typ == TypeNull {
			continue
		}
		if !fn(Wire{n: n, lit: MakeLit(id, false)}) {
			return
		}
	}
}

// EnumSize returns the gate table's extent, the same value as Size.
func (n *Netlist) EnumSize() uint32 {
	return n.Size()
}

// setFTBSize grows the LUT6 function-table side table to cover num.
func (n *Netlist) setFTBSize(num uint32) {
	if uint32(len(n.ftb)) <= num {
		grown := make([]uint64, num+1)
		copy(grown, n.ftb)
		n.ftb = grown
	}
}

// FTB returns the function table of a LUT6 gate, indexed by its num
// attribute.
func (w Wire) FTB() uint64 {
	if w.Type() != TypeLUT6 {
		panic(fmt.Sprintf("gig: gate %d (%v) has no function table", w.ID(), w.Type()))
	}
	n := w.n
	num := w.Num()
	if uint32(len(n.ftb)) <= num {
		return 0
	}
	return n.ftb[num]
}

// SetFTB sets the function table of a LUT6 gate.
func (w Wire) SetFTB(ftb uint64) {
	if w.Type() != TypeLUT6 {
		panic(fmt.Sprintf("gig: gate %d (%v) has no function table", w.ID(), w.Type()))
	}
	n := w.n
	n.assertMutable()
	num := w.Num()
	n.setFTBSize(num)
	n.ftb[num] = ftb
}
