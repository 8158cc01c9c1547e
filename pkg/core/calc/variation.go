package calc

import "math"

// pctChange computes (curr-prev)/prev*100, absorbing every arithmetic
// edge as nil: missing operands, a zero predecessor (which would produce
// an infinity), and any NaN result.
func pctChange(curr, prev *float64) *float64 {
	if curr == nil || prev == nil || *prev == 0 {
		return nil
	}
	v := (*curr - *prev) / *prev * 100
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func ptr(v float64) *float64 { return &v }

// Variations computes period-over-period percentage change for every
// column of a period-sorted totals series. The result has the same length
// and order as the input; row 0 is all-nil.
func Variations(series []PeriodTotals) []VariationRow {
	out := make([]VariationRow, len(series))
	for i, row := range series {
		out[i].Period = row.Period
		if i == 0 {
			continue
		}
		prev := series[i-1]
		out[i].L14 = pctChange(ptr(row.L14), ptr(prev.L14))
		out[i].Vol = pctChange(ptr(row.Vol), ptr(prev.Vol))
		out[i].CostPerUnit = pctChange(row.CostPerUnit, prev.CostPerUnit)
	}
	return out
}

// GroupVariations computes percentage change within each group's own
// period-sorted row sequence. The result is parallel to the input rows.
// When a group is absent in some periods its change is taken against the
// group's last present row, which may skip calendar gaps; this mirrors
// how the historical data has always been read and is kept on purpose.
func GroupVariations(rows []GroupTotals) []GroupVariationRow {
	out := make([]GroupVariationRow, len(rows))
	lastSeen := make(map[string]GroupTotals)
	for i, row := range rows {
		out[i].Period = row.Period
		out[i].Group = row.Group
		if prev, ok := lastSeen[row.Group]; ok {
			out[i].L14 = pctChange(ptr(row.L14), ptr(prev.L14))
			out[i].Vol = pctChange(ptr(row.Vol), ptr(prev.Vol))
			out[i].CostPerUnit = pctChange(row.CostPerUnit, prev.CostPerUnit)
		}
		lastSeen[row.Group] = row
	}
	return out
}
