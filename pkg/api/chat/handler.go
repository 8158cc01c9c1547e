// Package chat exposes the rule-based question endpoint. Like the
// analysis endpoint it is stateless: the caller supplies the record
// batches with every question.
package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/phuslu/log"

	"costbot/pkg/core/calc"
	corechat "costbot/pkg/core/chat"
	"costbot/pkg/core/dataset"
	"costbot/pkg/models"
)

type Handler struct {
	validate *validator.Validate
}

func NewHandler() *Handler {
	return &Handler{validate: validator.New()}
}

type Request struct {
	Historical []models.FinancialRecord `json:"historical" validate:"required,min=1"`
	Incoming   []models.FinancialRecord `json:"incoming"`
	Question   string                   `json:"pregunta" validate:"required"`
	Period     string                   `json:"periodo"`
}

type Response struct {
	Intent string `json:"intent"`
	Answer string `json:"respuesta"`
}

func (h *Handler) HandleQuestion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reqID := uuid.NewString()
	logger := log.DefaultLogger

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	merged, err := dataset.Merge(req.Historical, req.Incoming)
	if err != nil {
		var missing *dataset.MissingKeyError
		if errors.As(err, &missing) {
			http.Error(w, missing.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	totals := calc.TotalsByPeriod(merged)
	intent := corechat.Classify(req.Question)
	answer, err := corechat.Answer(corechat.Context{
		Records: merged,
		Totals:  totals,
		Vars:    calc.Variations(totals),
		Period:  req.Period,
	}, req.Question)
	if err != nil {
		// Only programmatic misuse reaches here; weird question text
		// always resolves to an answer.
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	logger.Info().Str("request_id", reqID).
		Str("intent", intent.String()).
		Msg("question answered")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Response{Intent: intent.String(), Answer: answer})
}
