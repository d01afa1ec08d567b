//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package gig

import "fmt"

// GateType is the closed set of gate kinds a netlist can hold. Every
// gate record keeps it in a field of its own, the tag of the tagged
// variant that replaces the bit-packed C struct of the original.
type GateType uint8

// Gate kinds.
const (
	// TypeNull marks a removed (or not-yet-allocated) gate slot.
	TypeNull GateType = iota

	// TypeUnbound is the reserved "dangling reference" sentinel gate.
	TypeUnbound

	// TypeConflict is the reserved "contradiction" sentinel gate.
	TypeConflict

	// TypeConst is the single constant source gate. The literal with
	// sign 0 is logical false; the literal with sign 1 is logical
	// true.
	TypeConst

	// TypeReset is the global reset signal, present in every netlist.
	TypeReset

	// TypePI is a primary input.
	TypePI

	// TypePO is a primary output; its one fan-in is the driven value.
	TypePO

	// TypeFF is the registered (Q-side) output of a flip-flop; it has
	// no fan-ins and behaves as a source, like TypePI.
	TypeFF

	// TypeSeq is the data (D-side) input of a flip-flop; it has one
	// fan-in and behaves as a sink, like TypePO.
	TypeSeq

	// TypeAnd is a two-input AND gate with signed fan-ins.
	TypeAnd

	// TypeLUT6 is a realized 6-input lookup table. Its fan-in count is
	// dynamic (0..6, the number of distinct cut leaves); its function
	// is stored in the netlist's FTB side table, indexed by attribute
	// number.
	TypeLUT6

	// TypeLabel is a FreeForm-only scratch gate carrying an opaque
	// uint32 "arg" attribute. It is not used by AIG/LUT6 mapping; it
	// exists so the generic attribute-kind machinery (none/arg/num/lb)
	// has a real type to dispatch "arg" through.
	TypeLabel

	// TypeMark is a FreeForm-only scratch gate carrying a ternary
	// logic-value ("lb") attribute. Same rationale as TypeLabel, for
	// the "lb" attribute kind.
	TypeMark

	numGateTypes
)

// DynamicSize marks a gate type whose fan-in count is fixed at
// creation time rather than by its type.
const DynamicSize = ^uint32(0)

// MaxInlineFanins is the number of fan-in literals stored directly in
// a gate record before a type is forced to spill into a heap slice.
const MaxInlineFanins = 3

// AttrKind classifies how a gate's one-word attribute is interpreted.
type AttrKind uint8

// Attribute kinds.
const (
	// AttrNone means the attribute word is unused.
	AttrNone AttrKind = iota

	// AttrArg means the attribute is an opaque uint32, set directly by
	// the caller (no netlist bookkeeping).
	AttrArg

	// AttrNum means the attribute is an index into the type's
	// numbering allocator; the netlist assigns and reclaims it.
	AttrNum

	// AttrLB means the attribute is a ternary logic value.
	AttrLB
)

func (k AttrKind) String() string {
	switch k {
	case AttrNone:
		return "none"
	case AttrArg:
		return "arg"
	case AttrNum:
		return "num"
	case AttrLB:
		return "lb"
	default:
		return fmt.Sprintf("{AttrKind %d}", k)
	}
}

// typeInfo holds the per-type metadata the netlist consults on every
// add/remove/mutate: its name, fixed fan-in size (or DynamicSize),
// attribute kind, and whether the type is in the strash mask, in
// which case its fan-ins may not be set directly.
type typeInfo struct {
	name       string
	size       uint32
	attr       AttrKind
	strashable bool
}

var gateTypeInfo = [numGateTypes]typeInfo{
	TypeNull:     {"Null", 0, AttrNone, false},
	TypeUnbound:  {"Unbound", 0, AttrNone, false},
	TypeConflict: {"Conflict", 0, AttrNone, false},
	TypeConst:    {"Const", 0, AttrNone, false},
	TypeReset:    {"Reset", 0, AttrNone, false},
	TypePI:       {"PI", 0, AttrNum, false},
	TypePO:       {"PO", 1, AttrNum, false},
	TypeFF:       {"FF", 0, AttrNum, false},
	TypeSeq:      {"Seq", 1, AttrNum, false},
	TypeAnd:      {"And", 2, AttrNone, true},
	TypeLUT6:     {"Lut6", DynamicSize, AttrNum, true},
	TypeLabel:    {"Label", 0, AttrArg, true},
	TypeMark:     {"Mark", 0, AttrLB, true},
}

func (t GateType) String() string {
	if int(t) < len(gateTypeInfo) {
		return gateTypeInfo[t].name
	}
	return fmt.Sprintf("{GateType %d}", t)
}

func (t GateType) info() typeInfo {
	return gateTypeInfo[t]
}

// IsNumbered tells whether gates of this type carry a dense "num"
// attribute assigned by the netlist's numbering allocator.
func (t GateType) IsNumbered() bool {
	return t.info().attr == AttrNum
}

// AttrKind returns the type's attribute interpretation.
func (t GateType) AttrKind() AttrKind {
	return t.info().attr
}

// FixedSize returns the type's fixed fan-in count, or ok=false if the
// type is dynamically sized (e.g. TypeLUT6).
func (t GateType) FixedSize() (uint32, bool) {
	sz := t.info().size
	return sz, sz != DynamicSize
}

// gate is the fixed-width record stored in a netlist page. Only three
// fan-ins are stored inline; a gate declared with more spills into a
// heap slice owned exclusively by the gate.
type gate struct {
	typ    GateType
	isExt  bool
	size   uint32
	inl    [MaxInlineFanins]GLit
	ext    []GLit
	attr   uint32
}

func (g *gate) fanins() []GLit {
	if g.isExt {
		return g.ext
	}
	return g.inl[:g.size]
}

func (g *gate) fanin(pin int) GLit {
	return g.fanins()[pin]
}

func (g *gate) setFaninRaw(pin int, lit GLit) {
	if g.isExt {
		g.ext[pin] = lit
	} else {
		g.inl[pin] = lit
	}
}
