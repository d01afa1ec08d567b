//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package lutmap

import (
	"fmt"
	"io"
	"os"

	"github.com/markkurossi/lutmap/gig"
	"github.com/markkurossi/tabulate"
)

// Reporter renders a mapping run's per-round statistics as a table,
// in the same style the teacher uses for its own profiling reports.
type Reporter struct {
	rounds []roundStat
}

// NewReporter creates a Reporter over the rounds a Mapper ran.
func NewReporter(rounds []roundStat) *Reporter {
	return &Reporter{rounds: rounds}
}

// Print writes the report to w, or to os.Stdout if w is nil.
func (r *Reporter) Print(w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}
	if len(r.rounds) == 0 {
		return nil
	}

	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Round").SetAlign(tabulate.MR)
	tab.Header("Cuts").SetAlign(tabulate.MR)
	tab.Header("Area").SetAlign(tabulate.MR)
	tab.Header("Delay").SetAlign(tabulate.MR)

	for _, s := range r.rounds {
		row := tab.Row()
		row.Column(fmt.Sprintf("%d", s.round))
		row.Column(fmt.Sprintf("%d", s.cutsEnumerated))
		row.Column(fmt.Sprintf("%.1f", s.mappedArea))
		row.Column(fmt.Sprintf("%.2f", s.mappedDelay))
	}
	tab.Print(w)
	return nil
}

func (m *Mapper) recordRoundStats() {
	m.stats = append(m.stats, roundStat{
		round:          m.round,
		cutsEnumerated: m.cutsEnumerated,
		mappedArea:     m.estimatedArea(),
		mappedDelay:    m.estimatedDelay(),
	})
}

// estimatedArea sums the current best-cut area estimate over every
// primary output's driver, the same quantity rankCuts bases its
// ranking on, without waiting for instantiate to run.
func (m *Mapper) estimatedArea() float64 {
	var total float64
	seen := make(map[gig.GateID]bool)
	m.n.EnumGate(func(w gig.Wire) bool {
		if w.Type() != gig.TypePO && w.Type() != gig.TypeSeq {
			return true
		}
		fi := w.Fanin(0)
		if !fi.IsLegal() || seen[fi.ID()] {
			return true
		}
		seen[fi.ID()] = true
		total += m.areaEst.Get(fi.ID())
		return true
	})
	return total
}

// estimatedDelay returns the worst-case arrival time over every
// primary output's driver.
func (m *Mapper) estimatedDelay() float64 {
	return m.targetArrival
}
