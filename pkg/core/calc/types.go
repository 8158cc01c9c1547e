// Package calc is the aggregation, variation and ranking engine. All
// functions are pure: they take caller-supplied tables and return new
// slices, holding no state between calls.
package calc

import "fmt"

// PeriodTotals is one aggregated row per distinct period. L14 and Vol are
// plain sums (nil inputs excluded; an all-nil group sums to zero).
// CostPerUnit is nil when the volume sum is zero.
type PeriodTotals struct {
	Period      string   `json:"periodo"`
	L14         float64  `json:"l14"`
	Vol         float64  `json:"vol"`
	CostPerUnit *float64 `json:"costo_unitario"`
}

// GroupKey selects the secondary grouping column for TotalsBy.
type GroupKey int

const (
	GroupByEntity GroupKey = iota // IDH (product/material code)
	GroupByBrand                  // MARCA
)

func (k GroupKey) String() string {
	switch k {
	case GroupByEntity:
		return "IDH"
	case GroupByBrand:
		return "MARCA"
	}
	return fmt.Sprintf("GroupKey(%d)", int(k))
}

// GroupTotals is one aggregated row per (period, group value), same
// null-safe ratio rule as PeriodTotals.
type GroupTotals struct {
	Period      string   `json:"periodo"`
	Group       string   `json:"grupo"`
	L14         float64  `json:"l14"`
	Vol         float64  `json:"vol"`
	CostPerUnit *float64 `json:"costo_unitario"`
}

// VariationRow holds the period-over-period percentage change of each
// aggregate column. Index 0 of a series is always all-nil (no
// predecessor); a zero or missing predecessor also yields nil, never an
// infinity.
type VariationRow struct {
	Period      string   `json:"periodo"`
	L14         *float64 `json:"l14"`
	Vol         *float64 `json:"vol"`
	CostPerUnit *float64 `json:"costo_unitario"`
}

// GroupVariationRow is a VariationRow computed within one group's own
// period-sorted sequence.
type GroupVariationRow struct {
	Period      string   `json:"periodo"`
	Group       string   `json:"grupo"`
	L14         *float64 `json:"l14"`
	Vol         *float64 `json:"vol"`
	CostPerUnit *float64 `json:"costo_unitario"`
}

// Metric names one of the three ranked aggregate columns.
type Metric int

const (
	MetricL14 Metric = iota
	MetricVol
	MetricCostPerUnit
)

// Column returns the canonical column name of the metric.
func (m Metric) Column() string {
	switch m {
	case MetricL14:
		return "L14"
	case MetricVol:
		return "VOL"
	case MetricCostPerUnit:
		return "COSTO_UNITARIO"
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

// Direction orders a mover ranking.
type Direction int

const (
	Gainers   Direction = iota // descending by metric
	Decliners                  // ascending by metric
)

// Mover is one ranked row: a group (IDH or brand), the period its
// variation was taken from, and the metric value rounded to 2 decimals.
type Mover struct {
	Group  string  `json:"grupo"`
	Period string  `json:"periodo"`
	Value  float64 `json:"valor"`
}

// SchemaError reports a table that lacks a column a specific aggregate
// needs. It is raised at the aggregator boundary for that call only.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("canonical table has no %s column values", e.Column)
}
