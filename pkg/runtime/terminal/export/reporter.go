package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/decision-simulator/pkg/adapters"
	"github.com/de-tools/decision-simulator/pkg/models/api"
	"github.com/de-tools/decision-simulator/pkg/models/domain"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case FormatTable, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table or json)", value)
	}
}

type TableConfig struct {
	LabelWidth int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		LabelWidth: 16,
		ValueWidth: 14,
	}
}

// Projection is one titled projection run ready for output.
type Projection struct {
	Title  string
	Input  domain.SimulationInput
	Result domain.SimulationResult
}

type month struct {
	Label   string
	Revenue float64
	Profit  float64
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(p Projection, format Format) error {
	if format == FormatJSON {
		enc := json.NewEncoder(c.writer)
		enc.SetIndent("", "  ")
		return enc.Encode(api.SimulationResponse{
			Inputs: adapters.MapSimulationInputDomainToApi(p.Input),
			Result: adapters.MapSimulationResultDomainToApi(p.Result),
		})
	}

	funcMap := c.tableFuncs(3)
	tmpl := `
{{.Title}} ({{len .Months}} months)

{{separator}}
{{formatRow "Metric" "Value" ""}}
{{separator}}
{{formatRow "Monthly profit" (money .Result.MonthlyProfit) ""}}
{{formatRow "Annual profit" (money .Result.AnnualProfit) ""}}
{{formatRow "Cash flow" (money .Result.CashFlow) ""}}
{{formatRow "Safety margin" (percent .Result.SafetyMargin) ""}}
{{formatRow "Growth rate" (percent .Result.GrowthRate) ""}}
{{formatRow "Risk index" (printf "%.3f" .Result.RiskIndex) ""}}
{{separator}}

{{separator}}
{{formatRow "Month" "Revenue" "Profit"}}
{{separator}}
{{range .Months}}{{formatRow .Label (money .Revenue) (money .Profit)}}
{{end}}{{separator}}
`

	t, err := template.New("projection").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, struct {
		Projection
		Months []month
	}{Projection: p, Months: months(p.Result)})
}

// HandleScenarios prints the scenario catalog as a table or a JSON list.
func (c *Reporter) HandleScenarios(scenarios []domain.Scenario, format Format) error {
	if format == FormatJSON {
		resp := api.ScenarioListResponse{Scenarios: make([]api.Scenario, 0, len(scenarios))}
		for _, sc := range scenarios {
			resp.Scenarios = append(resp.Scenarios, adapters.MapScenarioDomainToApi(sc))
		}
		enc := json.NewEncoder(c.writer)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	if len(scenarios) == 0 {
		_, err := fmt.Fprintln(c.writer, "No scenarios found")
		return err
	}

	tmpl := `{{separator}}
{{formatRow "ID" "Name" "Price" "Demand" "Marketing"}}
{{separator}}
{{range .}}{{formatRow (printf "%d" .ID) .Name (money .Input.Price) (printf "%.0f" .Input.Demand) (money .Input.MarketingSpend)}}
{{end}}{{separator}}
`
	t, err := template.New("scenarios").Funcs(c.tableFuncs(5)).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, scenarios)
}

// tableFuncs renders rows of the given column count; the first column uses LabelWidth.
func (c *Reporter) tableFuncs(columns int) template.FuncMap {
	widths := make([]int, columns)
	for i := range widths {
		widths[i] = c.config.ValueWidth
	}
	widths[0] = c.config.LabelWidth

	return template.FuncMap{
		"formatRow": func(cells ...string) string {
			var b strings.Builder
			b.WriteString("|")
			for i, w := range widths {
				cell := ""
				if i < len(cells) {
					cell = cells[i]
				}
				if i == 0 {
					fmt.Fprintf(&b, " %-*s |", w, cell)
				} else {
					fmt.Fprintf(&b, " %*s |", w, cell)
				}
			}
			return b.String()
		},
		"separator": func() string {
			var b strings.Builder
			b.WriteString("+")
			for _, w := range widths {
				b.WriteString(strings.Repeat("-", w+2))
				b.WriteString("+")
			}
			return b.String()
		},
		"money":   func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"percent": func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	}
}

func months(r domain.SimulationResult) []month {
	out := make([]month, len(r.RevenueSeries))
	for i := range out {
		out[i] = month{Revenue: r.RevenueSeries[i]}
		if i < len(r.ProfitSeries) {
			out[i].Profit = r.ProfitSeries[i]
		}
		if i < len(r.MonthLabels) {
			out[i].Label = r.MonthLabels[i]
		}
	}
	return out
}
