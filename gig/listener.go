//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package gig

// Msg identifies one of the five kinds of netlist change
// notification.
type Msg uint

// Message kinds, also usable as bits of a registration mask.
const (
	MsgUpdate  Msg = 1 << iota // a fan-in changed
	MsgAdd                     // a gate was added
	MsgRemove                  // a gate is about to be removed
	MsgCompact                 // the netlist was compacted; ids changed
	MsgSubst                   // fan-outs of a gate were transferred to another (user-generated)

	MsgAll = MsgUpdate | MsgAdd | MsgRemove | MsgCompact | MsgSubst
)

var msgIndex = map[Msg]int{
	MsgUpdate:  0,
	MsgAdd:     1,
	MsgRemove:  2,
	MsgCompact: 3,
	MsgSubst:   4,
}

const numMsgKinds = 5

// Listener receives netlist change notifications. Implementations
// that only care about a subset of messages can embed NopListener and
// override the methods they need.
type Listener interface {
	// Updating is called just before the pin'th fan-in of w changes
	// from old to new.
	Updating(w Wire, pin int, old, new Wire)

	// Adding is called right after w has been allocated, once its
	// fan-ins are connected and its attribute is set.
	Adding(w Wire)

	// Removing is called just before w is removed. If recreated is
	// set, a gate with the same id will be added immediately
	// afterwards (the Change primitive); fan-outs are not
	// disconnected by this call, so Removing is the only signal a
	// listener gets of the fan-out change.
	Removing(w Wire, recreated bool)

	// Compacting is called after the netlist has renumbered its
	// gates.
	Compacting(remap *Remap)

	// Substituting is called only by explicit caller request (never
	// by the netlist itself), to tell listeners that fan-outs of old
	// were logically transferred to new. old is always unsigned.
	Substituting(old, new Wire)
}

// NopListener implements Listener with no-op methods, for embedding.
type NopListener struct{}

// Updating implements Listener.
func (NopListener) Updating(w Wire, pin int, old, new Wire) {}

// Adding implements Listener.
func (NopListener) Adding(w Wire) {}

// Removing implements Listener.
func (NopListener) Removing(w Wire, recreated bool) {}

// Compacting implements Listener.
func (NopListener) Compacting(remap *Remap) {}

// Substituting implements Listener.
func (NopListener) Substituting(old, new Wire) {}

// Listen registers lis for the messages named in mask.
func (n *Netlist) Listen(lis Listener, mask Msg) {
	for m, idx := range msgIndex {
		if mask&m != 0 {
			n.listeners[idx] = append(n.listeners[idx], lis)
		}
	}
}

// Unlisten removes a previously registered listener for the messages
// named in mask.
func (n *Netlist) Unlisten(lis Listener, mask Msg) {
	for m, idx := range msgIndex {
		if mask&m == 0 {
			continue
		}
		lst := n.listeners[idx]
		for i, l := range lst {
			if l == lis {
				n.listeners[idx] = append(lst[:i], lst[i+1:]...)
				break
			}
		}
	}
}

// TellSubst broadcasts a Subst message: fan-outs of oldLit were
// logically transferred to newLit. This is never generated by the
// netlist itself.
func (n *Netlist) TellSubst(oldLit, newLit GLit) {
	if oldLit.Sign() {
		oldLit = oldLit.Not()
		newLit = newLit.Not()
	}
	for _, l := range n.listeners[msgIndex[MsgSubst]] {
		l.Substituting(n.Wire(oldLit), n.Wire(newLit))
	}
}

func (n *Netlist) tellAdding(w Wire) {
	for _, l := range n.listeners[msgIndex[MsgAdd]] {
		l.Adding(w)
	}
}

func (n *Netlist) tellRemoving(w Wire, recreated bool) {
	for _, l := range n.listeners[msgIndex[MsgRemove]] {
		l.Removing(w, recreated)
	}
}

func (n *Netlist) tellUpdating(w Wire, pin int, old, new Wire) {
	for _, l := range n.listeners[msgIndex[MsgUpdate]] {
		l.Updating(w, pin, old, new)
	}
}

func (n *Netlist) tellCompacting(remap *Remap) {
	for _, l := range n.listeners[msgIndex[MsgCompact]] {
		l.Compacting(remap)
	}
}
