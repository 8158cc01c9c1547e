package models

import "sort"

// FinancialRecord is one row of the canonical record stream: a single
// product/material (IDH) observed in a single reporting period.
// L14 and Vol are pointers because the source files carry non-numeric
// cells; a nil value means "not available", never zero.
type FinancialRecord struct {
	Period   string   `json:"periodo"`
	EntityID string   `json:"idh"`
	Brand    string   `json:"marca,omitempty"`
	L14      *float64 `json:"l14"`
	Vol      *float64 `json:"vol"`
}

// CostPerUnit derives L14 / Vol for a single record.
// Returns nil when either input is missing or Vol is zero.
func (r FinancialRecord) CostPerUnit() *float64 {
	if r.L14 == nil || r.Vol == nil || *r.Vol == 0 {
		return nil
	}
	v := *r.L14 / *r.Vol
	return &v
}

// Table is an in-memory canonical record table. It only lives for the
// duration of one computation pass; callers rebuild it per invocation.
type Table []FinancialRecord

// Periods returns the distinct period tokens in ascending lexical order.
// Period tokens are required to be zero-padded and chronologically
// sortable as plain strings (e.g. "2024-01").
func (t Table) Periods() []string {
	seen := make(map[string]bool, len(t))
	var out []string
	for _, r := range t {
		if !seen[r.Period] {
			seen[r.Period] = true
			out = append(out, r.Period)
		}
	}
	sort.Strings(out)
	return out
}

// LatestPeriod returns the lexically greatest period token, or "" for an
// empty table.
func (t Table) LatestPeriod() string {
	periods := t.Periods()
	if len(periods) == 0 {
		return ""
	}
	return periods[len(periods)-1]
}

// HasBrands reports whether any record carries a brand value.
func (t Table) HasBrands() bool {
	for _, r := range t {
		if r.Brand != "" {
			return true
		}
	}
	return false
}
