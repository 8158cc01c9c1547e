package dataset

import (
	"errors"
	"testing"

	"costbot/pkg/models"
)

func fp(v float64) *float64 { return &v }

func rec(period, entity string, l14, vol float64) models.FinancialRecord {
	return models.FinancialRecord{Period: period, EntityID: entity, L14: fp(l14), Vol: fp(vol)}
}

func TestMergeKeepsIncomingRowOnDuplicateKey(t *testing.T) {
	historical := models.Table{rec("2024-01", "A", 100, 10)}
	incoming := models.Table{rec("2024-01", "A", 200, 20)}

	merged, err := Merge(historical, incoming)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if len(merged) != 1 {
		t.Fatalf("Expected 1 row after dedup, got %d", len(merged))
	}
	if *merged[0].L14 != 200 || *merged[0].Vol != 20 {
		t.Errorf("Expected incoming values (200, 20), got (%v, %v)", *merged[0].L14, *merged[0].Vol)
	}
}

func TestMergeKeepsLastDuplicateWithinIncoming(t *testing.T) {
	incoming := models.Table{
		rec("2024-01", "A", 1, 1),
		rec("2024-01", "A", 2, 2),
		rec("2024-01", "A", 3, 3),
	}

	merged, err := Merge(nil, incoming)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if len(merged) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(merged))
	}
	if *merged[0].L14 != 3 {
		t.Errorf("Expected last duplicate (L14=3) to win, got %v", *merged[0].L14)
	}
}

func TestMergePreservesHistoricalOnlyKeys(t *testing.T) {
	historical := models.Table{
		rec("2024-01", "A", 100, 10),
		rec("2024-01", "B", 50, 5),
	}
	incoming := models.Table{rec("2024-02", "A", 110, 11)}

	merged, err := Merge(historical, incoming)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if len(merged) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(merged))
	}
	// First-appearance key order is preserved.
	if merged[0].EntityID != "A" || merged[0].Period != "2024-01" {
		t.Errorf("Unexpected first row: %+v", merged[0])
	}
	if merged[1].EntityID != "B" {
		t.Errorf("Historical-only key B should be preserved, got %+v", merged[1])
	}
}

func TestMergeHasNoDuplicateKeys(t *testing.T) {
	historical := models.Table{
		rec("2024-01", "A", 1, 1),
		rec("2024-02", "A", 2, 2),
		rec("2024-01", "B", 3, 3),
	}
	incoming := models.Table{
		rec("2024-01", "A", 9, 9),
		rec("2024-02", "B", 4, 4),
	}

	merged, err := Merge(historical, incoming)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	seen := make(map[[2]string]bool)
	for _, r := range merged {
		k := [2]string{r.Period, r.EntityID}
		if seen[k] {
			t.Errorf("Duplicate key after merge: %v", k)
		}
		seen[k] = true
	}
}

func TestMergeRejectsMissingKeyFields(t *testing.T) {
	cases := []struct {
		name       string
		historical models.Table
		incoming   models.Table
		wantInput  string
		wantField  string
	}{
		{
			name:       "historical missing period",
			historical: models.Table{{EntityID: "A", L14: fp(1)}},
			wantInput:  "historical",
			wantField:  "periodo",
		},
		{
			name:      "incoming missing entity",
			incoming:  models.Table{{Period: "2024-01", L14: fp(1)}},
			wantInput: "incoming",
			wantField: "idh",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Merge(tc.historical, tc.incoming)
			var missing *MissingKeyError
			if !errors.As(err, &missing) {
				t.Fatalf("Expected MissingKeyError, got %v", err)
			}
			if missing.Input != tc.wantInput || missing.Field != tc.wantField {
				t.Errorf("Expected (%s, %s), got (%s, %s)", tc.wantInput, tc.wantField, missing.Input, missing.Field)
			}
		})
	}
}
