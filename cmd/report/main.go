// Command report runs one full analysis pass over a records file and
// prints the totals, variations, top movers, the summary text and the
// optional forecast. It is the command-line equivalent of one API call.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"costbot/pkg/core/calc"
	"costbot/pkg/core/chat"
	"costbot/pkg/core/config"
	"costbot/pkg/core/dataset"
	"costbot/pkg/core/predict"
	"costbot/pkg/core/report"
	"costbot/pkg/models"
)

func main() {
	historicalPath := flag.String("historical", "", "JSON file with the historical record batch (required)")
	incomingPath := flag.String("incoming", "", "JSON file with the new-period batch (optional)")
	period := flag.String("period", "", "period to report (default: latest)")
	question := flag.String("question", "", "optionally ask the responder one question")
	configPath := flag.String("config", "config/costbot.yaml", "configuration file path")
	flag.Parse()

	if *historicalPath == "" {
		fmt.Fprintln(os.Stderr, "usage: report -historical records.json [-incoming new.json] [-period 2024-02] [-question \"top idh\"]")
		os.Exit(2)
	}

	godotenv.Load()
	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}

	historical, err := loadRecords(*historicalPath)
	if err != nil {
		fatal(err)
	}
	var incoming models.Table
	if *incomingPath != "" {
		if incoming, err = loadRecords(*incomingPath); err != nil {
			fatal(err)
		}
	}

	merged, err := dataset.Merge(historical, incoming)
	if err != nil {
		fatal(err)
	}
	totals := calc.TotalsByPeriod(merged)
	vars := calc.Variations(totals)

	fmt.Println("=== TOTALES POR PERIODO ===")
	fmt.Printf("%-10s %18s %18s %18s\n", "PERIODO", "L14", "VOL", "COSTO_UNITARIO")
	for _, t := range totals {
		fmt.Printf("%-10s %18s %18s %18s\n", t.Period, report.Number(t.L14), report.Number(t.Vol), report.NullableNumber(t.CostPerUnit))
	}

	fmt.Println("\n=== VARIACIONES POR PERIODO (%) ===")
	fmt.Printf("%-10s %18s %18s %18s\n", "PERIODO", "L14", "VOL", "COSTO_UNITARIO")
	for _, v := range vars {
		fmt.Printf("%-10s %18s %18s %18s\n", v.Period, report.Percent(v.L14), report.Percent(v.Vol), report.Percent(v.CostPerUnit))
	}

	printMovers(merged, cfg.TopN)

	fmt.Println("\n=== CORREO GENERADO ===")
	text, err := report.Build(totals, vars, *period)
	var short *report.InsufficientPeriodsError
	if err != nil && !errors.As(err, &short) {
		fatal(err)
	}
	fmt.Println(text)

	printForecast(cfg, totals)

	if *question != "" {
		fmt.Println("\n=== CHAT ===")
		answer, err := chat.Answer(chat.Context{
			Records: merged,
			Totals:  totals,
			Vars:    vars,
			Period:  *period,
		}, *question)
		if err != nil {
			fatal(err)
		}
		fmt.Println(answer)
	}
}

func printMovers(merged models.Table, topN int) {
	totals, err := calc.TotalsBy(merged, calc.GroupByEntity)
	if err != nil {
		fmt.Printf("\n(top movers no disponibles: %v)\n", err)
		return
	}
	vars := calc.GroupVariations(totals)
	for _, m := range []calc.Metric{calc.MetricL14, calc.MetricVol, calc.MetricCostPerUnit} {
		fmt.Printf("\n=== TOP %s ===\n", m.Column())
		fmt.Println("Subidas:")
		listMovers(calc.TopMovers(vars, m, topN, calc.Gainers))
		fmt.Println("Bajadas:")
		listMovers(calc.TopMovers(vars, m, topN, calc.Decliners))
	}
}

func listMovers(movers []calc.Mover) {
	if len(movers) == 0 {
		fmt.Println("  (sin datos)")
		return
	}
	for i, m := range movers {
		fmt.Printf("  %d. %s (%s): %s %%\n", i+1, m.Group, m.Period, report.Number(m.Value))
	}
}

func printForecast(cfg config.Config, totals []calc.PeriodTotals) {
	predictor, err := predict.New(cfg.Predictor.Kind, cfg.Predictor.Window)
	if err != nil {
		fatal(err)
	}
	series := make([]*float64, len(totals))
	for i, t := range totals {
		series[i] = t.CostPerUnit
	}
	pred, err := predictor.Predict(series)
	switch {
	case errors.Is(err, predict.ErrDisabled):
	case err != nil:
		fmt.Printf("\nPredicción no disponible: %v\n", err)
	default:
		fmt.Printf("\nPredicción próximo COSTO_UNITARIO (%s): %s\n", predictor.Name(), report.Number(pred))
	}
}

func loadRecords(path string) (models.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var records models.Table
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
