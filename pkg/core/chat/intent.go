// Package chat classifies free-text questions into a closed set of
// intents and renders answers from precomputed aggregates. There is no
// natural-language parsing: matching is case-insensitive substring
// containment over a fixed, ordered rule table.
package chat

import "strings"

// Intent is the closed enumeration of supported question kinds.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentTopMovers
	IntentCostPerUnit
	IntentL14Variation
	IntentVolume
	IntentWorstBrands
)

func (i Intent) String() string {
	switch i {
	case IntentTopMovers:
		return "top_movers"
	case IntentCostPerUnit:
		return "costo_unitario"
	case IntentL14Variation:
		return "variacion_l14"
	case IntentVolume:
		return "volumen"
	case IntentWorstBrands:
		return "marcas"
	}
	return "unknown"
}

type rule struct {
	intent Intent
	match  func(q string) bool
}

func has(q string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(q, s) {
			return true
		}
	}
	return false
}

func hasAll(q string, subs ...string) bool {
	for _, s := range subs {
		if !strings.Contains(q, s) {
			return false
		}
	}
	return true
}

// rules is evaluated top to bottom; the first match wins. The order is
// part of the contract: "top idh costo unitario" is a top-movers
// question, not a cost-per-unit one.
var rules = []rule{
	{IntentTopMovers, func(q string) bool {
		return strings.Contains(q, "top") && has(q, "idh", "material")
	}},
	{IntentCostPerUnit, func(q string) bool {
		return hasAll(q, "costo", "unitario")
	}},
	{IntentL14Variation, func(q string) bool {
		return has(q, "variacion", "variación") && strings.Contains(q, "l14")
	}},
	{IntentVolume, func(q string) bool {
		return strings.Contains(q, "vol") // covers "vol" and "volumen"
	}},
	{IntentWorstBrands, func(q string) bool {
		return hasAll(q, "marca", "peor")
	}},
}

// Classify resolves a question to exactly one intent. Unrecognized text
// is not an error; it resolves to IntentUnknown, which the responder
// answers with the fixed help message.
func Classify(question string) Intent {
	q := strings.ToLower(question)
	for _, r := range rules {
		if r.match(q) {
			return r.intent
		}
	}
	return IntentUnknown
}
