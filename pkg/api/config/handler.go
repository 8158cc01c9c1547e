// Package config exposes the active runtime configuration.
package config

import (
	"encoding/json"
	"net/http"

	"costbot/pkg/core/predict"
)

type Response struct {
	ActivePredictor string   `json:"active_predictor"`
	Available       []string `json:"available"`
	TopN            int      `json:"top_n"`
}

// Handler holds dependencies for config endpoints
type Handler struct {
	Predictor predict.Predictor
	TopN      int
}

func NewHandler(p predict.Predictor, topN int) *Handler {
	return &Handler{Predictor: p, TopN: topN}
}

func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	resp := Response{
		ActivePredictor: h.Predictor.Name(),
		Available:       []string{predict.KindLeastSquares, predict.KindMovingAverage, predict.KindNone},
		TopN:            h.TopN,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
