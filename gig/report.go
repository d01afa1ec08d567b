//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package gig

import (
	"encoding/binary"
	"io"

	"github.com/markkurossi/tabulate"
	"github.com/markkurossi/text"
	"golang.org/x/crypto/blake2b"
)

// Report prints a per-type gate census to w, in the same tabulate
// style the teacher uses for its profiling reports.
func (n *Netlist) Report(w io.Writer) error {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Type").SetAlign(tabulate.ML)
	tab.Header("Count").SetAlign(tabulate.MR)

	var total uint32
	for t := GateType(0); t < numGateTypes; t++ {
		count := n.TypeCount(t)
		if count == 0 {
			continue
		}
		total += count
		row := tab.Row()
		row.Column(text.New().Plain(t.String()).HTML())
		row.Column(text.New().Plainf("%d", count).HTML())
	}
	row := tab.Row()
	row.Column(text.New().Plain("total").HTML()).SetFormat(tabulate.FmtBold)
	row.Column(text.New().Plainf("%d", total).HTML()).SetFormat(tabulate.FmtBold)

	tab.Print(w)
	return nil
}

// Fingerprint returns a content hash of the netlist's gate table, in
// ascending id order. It is meant for round-stability tests and for
// cut-cache invalidation logging: two netlists with the same
// fingerprint have the same gates, fan-ins and attributes, regardless
// of how they were built.
func (n *Netlist) Fingerprint() [32]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	var buf [4]byte
	write := func(v uint32) {
		binary.LittleEndian.PutUint32(buf[:], v)
		h.Write(buf[:])
	}
	n.EnumGate(func(w Wire) bool {
		write(uint32(w.ID()))
		write(uint32(w.Type()))
		for _, fi := range w.Fanins() {
			write(uint32(fi.Lit()))
		}
		if w.Type().AttrKind() != AttrNone {
			write(w.g().attr)
		}
		return true
	})
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
