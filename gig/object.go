//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package gig

// Object is a subsystem attached to a netlist that tracks derived,
// per-gate state (fan-out counts, strash tables, and the like)
// without the netlist knowing anything about its contents. A netlist
// keeps a list of its attached objects purely to give them a chance
// to follow structural changes; it never inspects them.
type Object interface {
	// Init is called once, when the object is attached to n.
	Init(n *Netlist)

	// Load is called to let the object rebuild its state from
	// scratch, e.g. after a bulk mutation the object was not listening
	// for.
	Load(n *Netlist)

	// Save flushes any state the object would otherwise lose, e.g.
	// before the netlist is serialized.
	Save(n *Netlist)

	// CopyTo is called when n is cloned into dst; the object should
	// attach an equivalent copy of itself to dst.
	CopyTo(n, dst *Netlist)

	// Compact is called after a compaction pass, with the remap that
	// was just applied.
	Compact(n *Netlist, remap *Remap)
}

// Attach registers obj as an owned subsystem of n and calls its
// Init hook.
func (n *Netlist) Attach(obj Object) {
	n.objects = append(n.objects, obj)
	obj.Init(n)
}

// Detach removes a previously attached subsystem.
func (n *Netlist) Detach(obj Object) {
	for i, o := range n.objects {
		if o == obj {
			n.objects = append(n.objects[:i], n.objects[i+1:]...)
			return
		}
	}
}

func (n *Netlist) saveObjects() {
	for _, o := range n.objects {
		o.Save(n)
	}
}

func (n *Netlist) compactObjects(remap *Remap) {
	for _, o := range n.objects {
		o.Compact(n, remap)
	}
}
