// Package output provides utilities for formatting and displaying solve results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/diet"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/planner"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/pkg/constants"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/pkg/format"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/pkg/mathutil"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// quantityPlaces is the number of decimals shown for solved amounts.
const quantityPlaces = 4

// Report is the serializable view of one scenario result. It is shared by the
// JSON output format and the HTTP API.
type Report struct {
	Scenario    string             `json:"scenario"`
	Status      string             `json:"status"`
	Engine      string             `json:"engine,omitempty"`
	EngineCode  string             `json:"engineCode,omitempty"`
	Error       string             `json:"error,omitempty"`
	Cost        *float64           `json:"cost,omitempty"`
	Quantities  []QuantityReport   `json:"quantities,omitempty"`
	Totals      []TotalReport      `json:"totals,omitempty"`
	Constraints []ConstraintReport `json:"constraints,omitempty"`
	DurationMs  float64            `json:"durationMs"`
}

// QuantityReport is the solved amount of one good.
type QuantityReport struct {
	Good   string  `json:"good"`
	Amount float64 `json:"amount"`
	Cost   float64 `json:"cost"`
}

// TotalReport is the realized total of one attribute and its bounds.
type TotalReport struct {
	Attribute string   `json:"attribute"`
	Amount    float64  `json:"amount"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
}

// ConstraintReport is one emitted bound constraint with its realized total.
type ConstraintReport struct {
	Label    string  `json:"label"`
	Bound    string  `json:"bound"`
	Limit    float64 `json:"limit"`
	Realized float64 `json:"realized"`
	Binding  bool    `json:"binding"`
}

// BuildReports converts planner results into their serializable form.
func BuildReports(results []planner.Result) []Report {
	reports := make([]Report, len(results))
	for i, result := range results {
		reports[i] = buildReport(result)
	}
	return reports
}

func buildReport(result planner.Result) Report {
	sol := result.Solution
	report := Report{
		Scenario:   result.Scenario,
		Status:     sol.Status.String(),
		Engine:     sol.Engine,
		EngineCode: sol.EngineCode,
		DurationMs: float64(result.Duration.Microseconds()) / 1000,
	}
	if sol.Cause != nil {
		report.Error = sol.Cause.Error()
	}
	if !sol.HasValues() {
		return report
	}

	cost := sol.Cost
	report.Cost = &cost

	costs := make(map[string]float64, len(result.Input.Goods))
	for _, good := range result.Input.Goods {
		costs[good.Name] = good.Cost
	}
	report.Quantities = make([]QuantityReport, len(sol.Quantities))
	for i, q := range sol.Quantities {
		report.Quantities[i] = QuantityReport{Good: q.Good, Amount: q.Amount, Cost: q.Amount * costs[q.Good]}
	}

	report.Totals = make([]TotalReport, len(sol.Totals))
	for i, t := range sol.Totals {
		report.Totals[i] = TotalReport{
			Attribute: t.Attribute,
			Amount:    t.Amount,
			Min:       boundOf(result.Input.MinBounds, t.Attribute),
			Max:       boundOf(result.Input.MaxBounds, t.Attribute),
		}
	}

	report.Constraints = make([]ConstraintReport, len(sol.Constraints))
	for i, c := range sol.Constraints {
		report.Constraints[i] = ConstraintReport{
			Label:    c.Label,
			Bound:    c.Bound.String(),
			Limit:    c.Limit,
			Realized: c.Realized,
			Binding:  c.Binding,
		}
	}
	return report
}

func boundOf(bounds map[string]float64, attribute string) *float64 {
	value, ok := bounds[attribute]
	if !ok {
		return nil
	}
	return &value
}

// PrettyFormat outputs a human-readable rather than machine-readable summary.
// Goods with a zero solved amount are omitted.
func PrettyFormat(w io.Writer, results []planner.Result) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		sol := result.Solution
		_, _ = fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Scenario)
		_, _ = fmt.Fprintf(w, "Status: %s\n", sol.Status)
		if !sol.HasValues() {
			if sol.Cause != nil {
				_, _ = fmt.Fprintf(w, "Reason: %v\n", sol.Cause)
			}
			if i < len(results)-1 {
				_, _ = fmt.Fprintln(w)
			}
			continue
		}
		_, _ = p.Fprintf(w, "Total cost: $%.2f\n", sol.Cost)

		costs := make(map[string]float64, len(result.Input.Goods))
		for _, good := range result.Input.Goods {
			costs[good.Name] = good.Cost
		}

		goods := table.NewWriter()
		goods.SetOutputMirror(w)
		goods.SetStyle(table.StyleLight)
		goods.AppendHeader(table.Row{"Good", "Amount", "Cost"})
		for _, q := range sol.Quantities {
			if mathutil.IsNegligible(q.Amount) {
				continue
			}
			goods.AppendRow(table.Row{q.Good, format.Quantity(q.Amount, quantityPlaces), format.Currency(q.Amount * costs[q.Good])})
		}
		goods.Render()

		totals := table.NewWriter()
		totals.SetOutputMirror(w)
		totals.SetStyle(table.StyleLight)
		totals.AppendHeader(table.Row{"Attribute", "Total", "Min", "Max", "Binding"})
		for _, t := range sol.Totals {
			totals.AppendRow(table.Row{
				t.Attribute,
				format.Quantity(t.Amount, quantityPlaces),
				boundText(result.Input.MinBounds, t.Attribute),
				boundText(result.Input.MaxBounds, t.Attribute),
				bindingText(sol, t.Attribute),
			})
		}
		totals.Render()

		if i < len(results)-1 {
			_, _ = fmt.Fprintln(w)
		}
	}
}

func boundText(bounds map[string]float64, attribute string) string {
	value, ok := bounds[attribute]
	if !ok {
		return "-"
	}
	return format.Quantity(value, quantityPlaces)
}

func bindingText(sol diet.Solution, attribute string) string {
	text := ""
	for _, c := range sol.Constraints {
		if c.Attribute != attribute || !c.Binding {
			continue
		}
		if text != "" {
			text += ","
		}
		text += c.Bound.String()
	}
	return text
}

// CsvFormat outputs in comma-separated value format, one row per reported
// value: scenario,kind,name,value.
func CsvFormat(w io.Writer, results []planner.Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"scenario", "kind", "name", "value"}); err != nil {
		return err
	}
	for _, result := range results {
		sol := result.Solution
		rows := [][]string{{result.Scenario, "status", "", sol.Status.String()}}
		if sol.HasValues() {
			rows = append(rows, []string{result.Scenario, "cost", "", formatFloat(sol.Cost)})
			for _, q := range sol.Quantities {
				rows = append(rows, []string{result.Scenario, "quantity", q.Good, formatFloat(q.Amount)})
			}
			for _, t := range sol.Totals {
				rows = append(rows, []string{result.Scenario, "total", t.Attribute, formatFloat(t.Amount)})
			}
		}
		if err := writer.WriteAll(rows); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// JSONFormat outputs the reports of every result as indented JSON.
func JSONFormat(w io.Writer, results []planner.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildReports(results))
}

// Write renders results in the named output format.
func Write(w io.Writer, outputFormat string, results []planner.Result) error {
	switch outputFormat {
	case constants.OutputFormatPretty, "":
		PrettyFormat(w, results)
		return nil
	case constants.OutputFormatCSV:
		return CsvFormat(w, results)
	case constants.OutputFormatJSON:
		return JSONFormat(w, results)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}
