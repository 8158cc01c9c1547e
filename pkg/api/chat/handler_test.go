package chat

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	corechat "costbot/pkg/core/chat"
	"costbot/pkg/models"
)

func fp(v float64) *float64 { return &v }

func rec(period, entity string, l14, vol float64) models.FinancialRecord {
	return models.FinancialRecord{Period: period, EntityID: entity, L14: fp(l14), Vol: fp(vol)}
}

func ask(t *testing.T, h *Handler, req Request) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	h.HandleQuestion(w, r)
	return w
}

func TestHandleQuestionCostPerUnit(t *testing.T) {
	h := NewHandler()
	w := ask(t, h, Request{
		Historical: []models.FinancialRecord{
			rec("2024-01", "A", 100, 10),
			rec("2024-02", "A", 123.45, 10),
		},
		Question: "costo unitario ultimo",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Intent != "costo_unitario" {
		t.Errorf("Expected costo_unitario intent, got %q", resp.Intent)
	}
	if !strings.Contains(resp.Answer, "12.35") {
		t.Errorf("Expected 12.35 in answer, got %q", resp.Answer)
	}
}

func TestHandleQuestionMergesIncomingBatch(t *testing.T) {
	h := NewHandler()
	w := ask(t, h, Request{
		Historical: []models.FinancialRecord{rec("2024-01", "A", 100, 10)},
		Incoming:   []models.FinancialRecord{rec("2024-02", "A", 150, 10)},
		Question:   "variacion l14",
	})

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.Answer, "50.00") {
		t.Errorf("Expected variation vs incoming period, got %q", resp.Answer)
	}
}

func TestHandleQuestionUnknownTextIsHelpNotError(t *testing.T) {
	h := NewHandler()
	w := ask(t, h, Request{
		Historical: []models.FinancialRecord{rec("2024-01", "A", 100, 10)},
		Question:   "clima de hoy",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Unrecognized questions must not fail, got %d", w.Code)
	}
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Answer != corechat.HelpText {
		t.Errorf("Expected verbatim help text, got %q", resp.Answer)
	}
	if resp.Intent != "unknown" {
		t.Errorf("Expected unknown intent, got %q", resp.Intent)
	}
}

func TestHandleQuestionRequiresQuestion(t *testing.T) {
	h := NewHandler()
	w := ask(t, h, Request{
		Historical: []models.FinancialRecord{rec("2024-01", "A", 100, 10)},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing question, got %d", w.Code)
	}
}

func TestHandleQuestionMissingKeyIsBadRequest(t *testing.T) {
	h := NewHandler()
	w := ask(t, h, Request{
		Historical: []models.FinancialRecord{{Period: "2024-01"}},
		Question:   "volumen",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing entity id, got %d", w.Code)
	}
}
