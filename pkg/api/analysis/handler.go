// Package analysis exposes the one-shot analysis endpoint: merge the
// caller-supplied batches, aggregate, compute variations and movers,
// render the report text and the optional forecast. The endpoint is
// stateless; every request carries its own data.
package analysis

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/phuslu/log"

	"costbot/pkg/core/calc"
	"costbot/pkg/core/dataset"
	"costbot/pkg/core/predict"
	"costbot/pkg/core/report"
	"costbot/pkg/models"
)

type Handler struct {
	predictor predict.Predictor
	topN      int
	validate  *validator.Validate
}

func NewHandler(p predict.Predictor, topN int) *Handler {
	if topN <= 0 {
		topN = 5
	}
	return &Handler{
		predictor: p,
		topN:      topN,
		validate:  validator.New(),
	}
}

type Request struct {
	Historical []models.FinancialRecord `json:"historical" validate:"required,min=1"`
	Incoming   []models.FinancialRecord `json:"incoming"`
	// Period optionally selects the reported period; empty means latest.
	Period string `json:"periodo"`
}

// MoverSet pairs the two ranking directions for one metric.
type MoverSet struct {
	Gainers   []calc.Mover `json:"subidas"`
	Decliners []calc.Mover `json:"bajadas"`
}

type Response struct {
	Totals     []calc.PeriodTotals `json:"totales"`
	Variations []calc.VariationRow `json:"variaciones"`
	Movers     map[string]MoverSet `json:"movers"`
	Report     string              `json:"reporte"`
	Prediction *float64            `json:"prediccion,omitempty"`
	Predictor  string              `json:"predictor,omitempty"`
}

func (h *Handler) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
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
	logger.Info().Str("request_id", reqID).Str("endpoint", "analysis").Msg("request received")

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
	vars := calc.Variations(totals)

	resp := Response{
		Totals:     totals,
		Variations: roundVariations(vars),
		Movers:     h.movers(merged),
	}

	// Insufficient periods is a descriptive message here, not an error.
	text, err := report.Build(totals, vars, req.Period)
	var short *report.InsufficientPeriodsError
	switch {
	case err == nil, errors.As(err, &short):
		resp.Report = text
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if pred, ok := h.forecast(totals, logger, reqID); ok {
		resp.Prediction = &pred
		resp.Predictor = h.predictor.Name()
	}

	logger.Info().Str("request_id", reqID).
		Int("records", len(merged)).
		Int("periods", len(totals)).
		Msg("analysis computed")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) movers(merged models.Table) map[string]MoverSet {
	out := make(map[string]MoverSet, 3)
	totals, err := calc.TotalsBy(merged, calc.GroupByEntity)
	if err != nil {
		return out
	}
	vars := calc.GroupVariations(totals)
	for _, m := range []calc.Metric{calc.MetricL14, calc.MetricVol, calc.MetricCostPerUnit} {
		out[m.Column()] = MoverSet{
			Gainers:   calc.TopMovers(vars, m, h.topN, calc.Gainers),
			Decliners: calc.TopMovers(vars, m, h.topN, calc.Decliners),
		}
	}
	return out
}

// forecast predicts the next cost-per-unit. Forecasts are best effort:
// any predictor error just drops the field from the response.
func (h *Handler) forecast(totals []calc.PeriodTotals, logger log.Logger, reqID string) (float64, bool) {
	series := make([]*float64, len(totals))
	for i, t := range totals {
		series[i] = t.CostPerUnit
	}
	pred, err := h.predictor.Predict(series)
	if err != nil {
		if !errors.Is(err, predict.ErrDisabled) {
			logger.Warn().Str("request_id", reqID).Err(err).Msg("forecast unavailable")
		}
		return 0, false
	}
	return calc.Round2(pred), true
}

func roundVariations(vars []calc.VariationRow) []calc.VariationRow {
	out := make([]calc.VariationRow, len(vars))
	for i, v := range vars {
		out[i] = calc.VariationRow{
			Period:      v.Period,
			L14:         roundPtr(v.L14),
			Vol:         roundPtr(v.Vol),
			CostPerUnit: roundPtr(v.CostPerUnit),
		}
	}
	return out
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := calc.Round2(*v)
	return &r
}
