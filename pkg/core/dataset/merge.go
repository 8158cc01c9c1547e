// Package dataset owns the canonical record table boundary: key validation
// and the union of a historical table with an incoming batch.
package dataset

import (
	"fmt"

	"costbot/pkg/models"
)

// MissingKeyError reports records that arrived without the (period, IDH)
// key fields the whole engine groups and dedups on. It is raised at the
// merge boundary, before any computation.
type MissingKeyError struct {
	Input string // "historical" or "incoming"
	Row   int    // index within the offending input
	Field string // "periodo" or "idh"
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s input: row %d is missing required key field %q", e.Input, e.Row, e.Field)
}

// ValidateKeys checks that every record in t carries a non-empty period
// and entity id. input names the batch for the error message.
func ValidateKeys(t models.Table, input string) error {
	for i, r := range t {
		if r.Period == "" {
			return &MissingKeyError{Input: input, Row: i, Field: "periodo"}
		}
		if r.EntityID == "" {
			return &MissingKeyError{Input: input, Row: i, Field: "idh"}
		}
	}
	return nil
}

type recordKey struct {
	period string
	entity string
}

// Merge unions the historical table with an incoming batch and resolves
// duplicate (period, IDH) keys by keeping the last occurrence in
// concatenation order (historical first, incoming second). A key present
// in both inputs therefore keeps the incoming row; a key duplicated
// inside incoming keeps only its last row. Key order in the result
// follows first appearance.
func Merge(historical, incoming models.Table) (models.Table, error) {
	if err := ValidateKeys(historical, "historical"); err != nil {
		return nil, err
	}
	if err := ValidateKeys(incoming, "incoming"); err != nil {
		return nil, err
	}

	order := make([]recordKey, 0, len(historical)+len(incoming))
	latest := make(map[recordKey]models.FinancialRecord, len(historical)+len(incoming))

	for _, batch := range []models.Table{historical, incoming} {
		for _, r := range batch {
			k := recordKey{period: r.Period, entity: r.EntityID}
			if _, dup := latest[k]; !dup {
				order = append(order, k)
			}
			latest[k] = r
		}
	}

	merged := make(models.Table, 0, len(order))
	for _, k := range order {
		merged = append(merged, latest[k])
	}
	return merged, nil
}
