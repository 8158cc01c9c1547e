package chat

import (
	"fmt"
	"sort"
	"strings"

	"costbot/pkg/core/calc"
	"costbot/pkg/core/report"
	"costbot/pkg/models"
)

// HelpText is the fixed fallback answer enumerating the supported
// phrasings. Returned verbatim for every unrecognized question.
const HelpText = "No entendí la pregunta. Prueba: 'top idh', 'costo unitario ultimo', 'variacion l14', 'volumen total'."

const topN = 5

// Context carries the inputs one Answer call computes over. Nothing is
// retained between calls; the caller rebuilds or re-passes the tables on
// every invocation.
type Context struct {
	Records models.Table
	Totals  []calc.PeriodTotals
	Vars    []calc.VariationRow
	// Period optionally selects the reporting period; empty means the
	// latest row of Totals.
	Period string
}

// Answer classifies the question and renders a reply from the context
// aggregates. Malformed question text never produces an error; every
// guard failure comes back as descriptive text. The error return is
// reserved for programmatically invalid arguments, such as variation and
// totals series of different lengths.
func Answer(ctx Context, question string) (string, error) {
	if len(ctx.Vars) != len(ctx.Totals) {
		return "", fmt.Errorf("variation series length %d does not match totals length %d", len(ctx.Vars), len(ctx.Totals))
	}

	switch Classify(question) {
	case IntentTopMovers:
		return topMoversAnswer(ctx.Records), nil
	case IntentCostPerUnit:
		return costPerUnitAnswer(ctx), nil
	case IntentL14Variation:
		return l14VariationAnswer(ctx), nil
	case IntentVolume:
		return volumeAnswer(ctx), nil
	case IntentWorstBrands:
		return brandAnswer(ctx.Records), nil
	default:
		return HelpText, nil
	}
}

// selectedIndex resolves ctx.Period to an index into ctx.Totals; the
// latest row when no period was selected. ok is false when Totals is
// empty or the period does not exist.
func selectedIndex(ctx Context) (int, bool) {
	if len(ctx.Totals) == 0 {
		return 0, false
	}
	if ctx.Period == "" {
		return len(ctx.Totals) - 1, true
	}
	for i, row := range ctx.Totals {
		if row.Period == ctx.Period {
			return i, true
		}
	}
	return 0, false
}

func topMoversAnswer(records models.Table) string {
	if len(records) == 0 {
		return "No hay registros cargados para calcular el top de IDH."
	}
	totals, err := calc.TotalsBy(records, calc.GroupByEntity)
	if err != nil {
		return fmt.Sprintf("No se pudo agrupar por IDH: %v", err)
	}
	vars := calc.GroupVariations(totals)

	up := calc.TopMovers(vars, calc.MetricCostPerUnit, topN, calc.Gainers)
	down := calc.TopMovers(vars, calc.MetricCostPerUnit, topN, calc.Decliners)
	if len(up) == 0 && len(down) == 0 {
		return "Ningún IDH tiene variación calculada de costo unitario (se necesita más de un periodo por IDH)."
	}

	var b strings.Builder
	b.WriteString("Top IDH (Costo Unitario) - Subidas:\n")
	writeMovers(&b, up)
	b.WriteString("\nTop IDH (Costo Unitario) - Bajadas:\n")
	writeMovers(&b, down)
	return b.String()
}

func writeMovers(b *strings.Builder, movers []calc.Mover) {
	if len(movers) == 0 {
		b.WriteString("  (sin datos)\n")
		return
	}
	for i, m := range movers {
		fmt.Fprintf(b, "  %d. %s (%s): %s %%\n", i+1, m.Group, m.Period, report.Number(m.Value))
	}
}

func costPerUnitAnswer(ctx Context) string {
	idx, ok := selectedIndex(ctx)
	if !ok {
		return "No hay totales por periodo para consultar el costo unitario."
	}
	row := ctx.Totals[idx]
	if row.CostPerUnit == nil {
		return fmt.Sprintf("El costo unitario del periodo %s no está disponible (volumen cero).", row.Period)
	}
	return fmt.Sprintf("Costo unitario último periodo (%s): %s", row.Period, report.Number(*row.CostPerUnit))
}

func l14VariationAnswer(ctx Context) string {
	idx, ok := selectedIndex(ctx)
	if !ok {
		return "No hay totales por periodo para consultar la variación de L14."
	}
	row := ctx.Vars[idx]
	if row.L14 == nil {
		return fmt.Sprintf("La variación de L14 del periodo %s no está disponible (sin periodo anterior comparable).", row.Period)
	}
	return fmt.Sprintf("Variación %% última de L14 (%s): %s%%", row.Period, report.Number(*row.L14))
}

func volumeAnswer(ctx Context) string {
	idx, ok := selectedIndex(ctx)
	if !ok {
		return "No hay totales por periodo para consultar el volumen."
	}
	row := ctx.Totals[idx]
	return fmt.Sprintf("Volumen total del periodo %s: %s", row.Period, report.Number(row.Vol))
}

func brandAnswer(records models.Table) string {
	if len(records) == 0 {
		return "No hay registros cargados para calcular el top por marca."
	}
	totals, err := calc.TotalsBy(records, calc.GroupByBrand)
	if err != nil {
		return "No se pudo calcular top por marca: los datos no traen columna MARCA."
	}
	last := records.LatestPeriod()

	type brandRow struct {
		brand string
		l14   float64
	}
	var rows []brandRow
	for _, t := range totals {
		if t.Period == last {
			rows = append(rows, brandRow{brand: t.Group, l14: t.L14})
		}
	}
	if len(rows) == 0 {
		return "No se pudo calcular top por marca para el último periodo."
	}
	// rows arrive period-then-brand sorted; reorder by L14 descending,
	// stable on brand order.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].l14 > rows[j].l14 })
	if len(rows) > topN {
		rows = rows[:topN]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Top marcas por L14 (último periodo %s):\n", last)
	for i, r := range rows {
		fmt.Fprintf(&b, "  %d. %s: %s\n", i+1, r.brand, report.Number(r.l14))
	}
	return b.String()
}
