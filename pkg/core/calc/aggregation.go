package calc

import (
	"sort"

	"costbot/pkg/models"
)

// sums accumulates the two metric columns of a group, skipping nil inputs.
// An all-nil group keeps both sums at zero by convention.
type sums struct {
	l14 float64
	vol float64
}

func (s *sums) add(r models.FinancialRecord) {
	if r.L14 != nil {
		s.l14 += *r.L14
	}
	if r.Vol != nil {
		s.vol += *r.Vol
	}
}

// costPerUnit applies the null-safe ratio rule: nil when volume is zero.
func costPerUnit(l14, vol float64) *float64 {
	if vol == 0 {
		return nil
	}
	v := l14 / vol
	return &v
}

// TotalsByPeriod groups the table by period and sums L14 and Vol, deriving
// the null-safe cost-per-unit ratio. The result has exactly one row per
// distinct period, ascending by the period token's lexical order (period
// tokens are assumed zero-padded and chronologically string-sortable).
func TotalsByPeriod(t models.Table) []PeriodTotals {
	byPeriod := make(map[string]*sums)
	for _, r := range t {
		s, ok := byPeriod[r.Period]
		if !ok {
			s = &sums{}
			byPeriod[r.Period] = s
		}
		s.add(r)
	}

	out := make([]PeriodTotals, 0, len(byPeriod))
	for period, s := range byPeriod {
		out = append(out, PeriodTotals{
			Period:      period,
			L14:         s.l14,
			Vol:         s.vol,
			CostPerUnit: costPerUnit(s.l14, s.vol),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// TotalsBy groups the table by (period, key) with the same sums and ratio
// rule as TotalsByPeriod, ordered by period then group value. Rows whose
// group value is empty are skipped. Returns a SchemaError when no record
// in the table carries the grouping column at all.
func TotalsBy(t models.Table, key GroupKey) ([]GroupTotals, error) {
	groupOf := func(r models.FinancialRecord) string { return r.EntityID }
	if key == GroupByBrand {
		if !t.HasBrands() {
			return nil, &SchemaError{Column: key.String()}
		}
		groupOf = func(r models.FinancialRecord) string { return r.Brand }
	}

	type groupedKey struct {
		period string
		group  string
	}
	byKey := make(map[groupedKey]*sums)
	for _, r := range t {
		g := groupOf(r)
		if g == "" {
			continue
		}
		k := groupedKey{period: r.Period, group: g}
		s, ok := byKey[k]
		if !ok {
			s = &sums{}
			byKey[k] = s
		}
		s.add(r)
	}

	out := make([]GroupTotals, 0, len(byKey))
	for k, s := range byKey {
		out = append(out, GroupTotals{
			Period:      k.period,
			Group:       k.group,
			L14:         s.l14,
			Vol:         s.vol,
			CostPerUnit: costPerUnit(s.l14, s.vol),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Period != out[j].Period {
			return out[i].Period < out[j].Period
		}
		return out[i].Group < out[j].Group
	})
	return out, nil
}
