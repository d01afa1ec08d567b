//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package lutmap

import "sort"

// Cost is the two-criteria figure of merit attached to a candidate
// cut: the arrival time a LUT realizing it would produce, and the
// area-flow contribution of instantiating it.
type Cost struct {
	Delay float64
	Area  float64
}

// scoredCut pairs a candidate cut with its evaluated cost, the unit
// rankCuts ranks and truncates.
type scoredCut struct {
	cut  Cut
	cost Cost
}

// delayLess ranks by delay first, area second, and finally cut size,
// so that among equally good delay/area choices the smallest cut
// wins. This three-way order, rather than stopping at the first
// differing criterion's tie, is the one this mapper commits to
// permanently.
func delayLess(a, b scoredCut) bool {
	if a.cost.Delay != b.cost.Delay {
		return a.cost.Delay < b.cost.Delay
	}
	if a.cost.Area != b.cost.Area {
		return a.cost.Area < b.cost.Area
	}
	return a.cut.size < b.cut.size
}

// areaLess is delayLess with area and delay swapped in priority.
func areaLess(a, b scoredCut) bool {
	if a.cost.Area != b.cost.Area {
		return a.cost.Area < b.cost.Area
	}
	if a.cost.Delay != b.cost.Delay {
		return a.cost.Delay < b.cost.Delay
	}
	return a.cut.size < b.cut.size
}

// rankRound0 sorts items by Delay_lt unconditionally and keeps at
// most the first keep of them. Round 0 has no departure information
// yet, so it always ranks by delay regardless of MapForArea; the
// area/delay partition only applies from round 1 on.
func rankRound0(items []scoredCut, keep int) []scoredCut {
	sort.Slice(items, func(i, j int) bool { return delayLess(items[i], items[j]) })
	if keep > 0 && len(items) > keep {
		items = items[:keep]
	}
	return items
}

// rankAndPartition implements the round-≥1 ranking: cuts whose delay
// meets req are area-eligible; the rest are delay-ranked. The
// area-eligible set is sorted by Area_lt and occupies the front of
// the result, up to cuts_per_node/2 of them; the delay-ranked set
// follows; any area-eligible overflow beyond that boundary is placed
// last, where it only survives the final trim if there is room left.
func rankAndPartition(items []scoredCut, req float64, keep int) []scoredCut {
	var area, delay []scoredCut
	for _, it := range items {
		if it.cost.Delay <= req {
			area = append(area, it)
		} else {
			delay = append(delay, it)
		}
	}
	sort.Slice(area, func(i, j int) bool { return areaLess(area[i], area[j]) })
	sort.Slice(delay, func(i, j int) bool { return delayLess(delay[i], delay[j]) })

	half := len(area)
	if keep > 0 && keep/2 < half {
		half = keep / 2
	}
	out := make([]scoredCut, 0, len(items))
	out = append(out, area[:half]...)
	out = append(out, delay...)
	out = append(out, area[half:]...)

	if keep > 0 && len(out) > keep {
		out = out[:keep]
	}
	return out
}
