package report

import (
	"fmt"
	"strings"

	"costbot/pkg/core/calc"
)

// InsufficientPeriodsError signals that a comparison needed a predecessor
// period that does not exist. Report generation surfaces the Message text
// to the caller instead of failing; direct callers can still detect the
// condition with errors.As.
type InsufficientPeriodsError struct {
	Period  string // requested period, "" when the whole series is short
	Message string
}

func (e *InsufficientPeriodsError) Error() string { return e.Message }

// Build renders the outbound summary text for one period compared against
// its predecessor. period selects the row to report; an empty period means
// the latest one. When there is nothing to compare against, the returned
// string is a descriptive message and the error is an
// *InsufficientPeriodsError carrying the same text.
func Build(totals []calc.PeriodTotals, vars []calc.VariationRow, period string) (string, error) {
	if len(vars) != len(totals) {
		return "", fmt.Errorf("variation series length %d does not match totals length %d", len(vars), len(totals))
	}
	if len(totals) < 2 {
		e := &InsufficientPeriodsError{Message: "No hay suficientes periodos para comparar."}
		return e.Message, e
	}

	idx := len(totals) - 1
	if period != "" {
		idx = -1
		for i, row := range totals {
			if row.Period == period {
				idx = i
				break
			}
		}
		if idx < 0 {
			return "", fmt.Errorf("periodo %q no existe en los totales", period)
		}
	}
	if idx == 0 {
		e := &InsufficientPeriodsError{
			Period:  totals[0].Period,
			Message: fmt.Sprintf("No existe periodo anterior para comparar %s", totals[0].Period),
		}
		return e.Message, e
	}

	current := totals[idx]
	previous := totals[idx-1]
	variation := vars[idx]

	trend := "bajó"
	if variation.CostPerUnit != nil && *variation.CostPerUnit > 0 {
		trend = "subió"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Equipo,\n\n")
	fmt.Fprintf(&b, "Adjunto resumen automático del análisis de KPIs (Colombia).\n\n")
	fmt.Fprintf(&b, "PERIODO ANALIZADO: %s\n\n", current.Period)
	fmt.Fprintf(&b, "Resultados (vs periodo anterior):\n")
	fmt.Fprintf(&b, "- L14 total: %s (anterior %s)\n", Number(current.L14), Number(previous.L14))
	fmt.Fprintf(&b, "- Volumen total: %s (anterior %s)\n", Number(current.Vol), Number(previous.Vol))
	fmt.Fprintf(&b, "- Costo unitario: %s\n\n", NullableNumber(current.CostPerUnit))
	fmt.Fprintf(&b, "Variaciones %%:\n")
	fmt.Fprintf(&b, "- L14: %s\n", Percent(variation.L14))
	fmt.Fprintf(&b, "- Volumen: %s\n", Percent(variation.Vol))
	fmt.Fprintf(&b, "- Costo unitario: %s\n\n", Percent(variation.CostPerUnit))
	fmt.Fprintf(&b, "Insights:\n")
	fmt.Fprintf(&b, "- El costo unitario %s respecto al periodo anterior.\n", trend)
	fmt.Fprintf(&b, "- Revisar IDH y marcas con mayor impacto.\n\n")
	fmt.Fprintf(&b, "Saludos,\nAnálisis Automático\n")
	return b.String(), nil
}
