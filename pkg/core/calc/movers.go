package calc

import (
	"math"
	"sort"
)

// Round2 rounds to 2 decimal places, the precision of every rendered
// metric value.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (r GroupVariationRow) metric(m Metric) *float64 {
	switch m {
	case MetricL14:
		return r.L14
	case MetricVol:
		return r.Vol
	case MetricCostPerUnit:
		return r.CostPerUnit
	}
	return nil
}

// TopMovers ranks groups by their most recent computed variation of the
// chosen metric. For each group the LAST row of its variation sequence is
// selected (the most recent period that group appears in, not necessarily
// the global latest period). Groups whose selected variation is nil are
// not rankable and are excluded, so a table where every entity has a
// single observed period yields an empty ranking rather than an error.
// The sort is stable: ties keep original row order.
func TopMovers(vars []GroupVariationRow, metric Metric, n int, dir Direction) []Mover {
	if n <= 0 {
		return []Mover{}
	}

	lastIdx := make(map[string]int, len(vars))
	for i, row := range vars {
		lastIdx[row.Group] = i
	}
	selected := make([]int, 0, len(lastIdx))
	for _, i := range lastIdx {
		selected = append(selected, i)
	}
	// Tie-breaks follow the selected rows' original order.
	sort.Ints(selected)

	type candidate struct {
		mover Mover
		value float64
	}
	cands := make([]candidate, 0, len(selected))
	for _, i := range selected {
		row := vars[i]
		v := row.metric(metric)
		if v == nil {
			continue
		}
		cands = append(cands, candidate{
			mover: Mover{Group: row.Group, Period: row.Period, Value: Round2(*v)},
			value: *v,
		})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if dir == Decliners {
			return cands[i].value < cands[j].value
		}
		return cands[i].value > cands[j].value
	})

	if len(cands) > n {
		cands = cands[:n]
	}
	out := make([]Mover, len(cands))
	for i, c := range cands {
		out[i] = c.mover
	}
	return out
}
