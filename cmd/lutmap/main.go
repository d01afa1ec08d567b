//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

// Command lutmap builds a handful of canned AND-inverter graphs and
// runs LUT6 technology mapping over each of them, printing the
// number of LUT6 gates, a per-type gate census and, with -v, the
// per-round report.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/markkurossi/lutmap/gig"
	"github.com/markkurossi/lutmap/lutmap"
)

var (
	scenario    = flag.String("scenario", "all", "scenario to run: a, b, c, d, or all")
	nRounds     = flag.Int("rounds", 2, "number of cut-enumeration rounds")
	cutsPerNode = flag.Int("cuts", 4, "candidate cuts kept per node")
	delayFactor = flag.Float64("delay-factor", 1.0, "delay contributed by one LUT level")
	mapForArea  = flag.Bool("area", false, "rank and select cuts for area instead of delay")
	verbose     = flag.Bool("v", false, "print the per-round mapping report")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	scenarios := map[string]func() *gig.Netlist{
		"a": scenarioSingleAnd,
		"b": scenarioChainOfThree,
		"c": scenarioBalancedTree,
		"d": scenarioInverterOnAnd,
	}

	names := []string{"a", "b", "c", "d"}
	if *scenario != "all" {
		if _, ok := scenarios[*scenario]; !ok {
			log.Fatalf("lutmap: unknown scenario %q", *scenario)
		}
		names = []string{*scenario}
	}

	for _, name := range names {
		if err := run(name, scenarios[name]); err != nil {
			log.Fatalf("lutmap: scenario %s: %v", name, err)
		}
	}
}

func run(name string, build func() *gig.Netlist) error {
	n := build()

	p := lutmap.DefaultParams()
	p.NRounds = *nRounds
	p.CutsPerNode = *cutsPerNode
	p.DelayFactor = *delayFactor
	p.MapForArea = *mapForArea
	p.Quiet = !*verbose

	if err := lutmap.Map(n, p); err != nil {
		return err
	}

	fmt.Printf("scenario %s: %d LUT6(s)\n", name, n.TypeCount(gig.TypeLUT6))
	return n.Report(os.Stdout)
}

// scenarioSingleAnd is spec scenario a: a single two-input AND driving
// one primary output. Expect one LUT6 with FTB 0x8888888888888888.
func scenarioSingleAnd() *gig.Netlist {
	n := gig.NewNetlist(gig.ModeAig)
	p0 := n.Add(gig.TypePI)
	p1 := n.Add(gig.TypePI)
	a := n.Add(gig.TypeAnd, p0.Lit(), p1.Lit())
	n.Add(gig.TypePO, a.Lit())
	return n
}

// scenarioChainOfThree is spec scenario b: a chain of three ANDs over
// four PIs. Expect all four inputs absorbed into a single LUT6 with
// FTB 0x8000800080008000.
func scenarioChainOfThree() *gig.Netlist {
	n := gig.NewNetlist(gig.ModeAig)
	p0 := n.Add(gig.TypePI)
	p1 := n.Add(gig.TypePI)
	p2 := n.Add(gig.TypePI)
	p3 := n.Add(gig.TypePI)
	a := n.Add(gig.TypeAnd, p0.Lit(), p1.Lit())
	b := n.Add(gig.TypeAnd, a.Lit(), p2.Lit())
	c := n.Add(gig.TypeAnd, b.Lit(), p3.Lit())
	n.Add(gig.TypePO, c.Lit())
	return n
}

// scenarioBalancedTree is spec scenario c: a balanced AND8 tree over
// eight PIs. Expect two AND4 LUT6s feeding a third LUT6, for
// mapped_area=3 and mapped_delay=2.
func scenarioBalancedTree() *gig.Netlist {
	n := gig.NewNetlist(gig.ModeAig)
	pis := make([]gig.Wire, 8)
	for i := range pis {
		pis[i] = n.Add(gig.TypePI)
	}
	left1 := n.Add(gig.TypeAnd, pis[0].Lit(), pis[1].Lit())
	left2 := n.Add(gig.TypeAnd, pis[2].Lit(), pis[3].Lit())
	left := n.Add(gig.TypeAnd, left1.Lit(), left2.Lit())

	right1 := n.Add(gig.TypeAnd, pis[4].Lit(), pis[5].Lit())
	right2 := n.Add(gig.TypeAnd, pis[6].Lit(), pis[7].Lit())
	right := n.Add(gig.TypeAnd, right1.Lit(), right2.Lit())

	root := n.Add(gig.TypeAnd, left.Lit(), right.Lit())
	n.Add(gig.TypePO, root.Lit())
	return n
}

// scenarioInverterOnAnd is spec scenario d: an AND whose output feeds
// a primary output through an inverting literal. Expect one LUT6 with
// FTB 0x7777777777777777 once the PO's sign is accounted for.
func scenarioInverterOnAnd() *gig.Netlist {
	n := gig.NewNetlist(gig.ModeAig)
	p0 := n.Add(gig.TypePI)
	p1 := n.Add(gig.TypePI)
	a := n.Add(gig.TypeAnd, p0.Lit(), p1.Lit())
	n.Add(gig.TypePO, a.Lit().Not())
	return n
}
