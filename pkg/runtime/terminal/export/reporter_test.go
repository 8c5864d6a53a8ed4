package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/decision-simulator/pkg/models/domain"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"table", FormatTable, false},
		{" JSON ", FormatJSON, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestReporter_Handle_Table(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	err := reporter.Handle(Projection{
		Title: "Base case",
		Input: domain.DefaultSimulationInput(),
		Result: domain.SimulationResult{
			MonthlyProfit: 1168,
			AnnualProfit:  14016,
			CashFlow:      978,
			SafetyMargin:  0.018,
			GrowthRate:    -0.589,
			RiskIndex:     0.982,
			RevenueSeries: []float64{11568, 11440.48},
			ProfitSeries:  []float64{-172.67, -252.36},
			MonthLabels:   []string{"Jan", "Feb"},
		},
	}, FormatTable)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Base case (2 months)")
	assert.Contains(t, out, "1.8%")
	assert.Contains(t, out, "-58.9%")
	assert.Contains(t, out, "0.982")

	var rows []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "| Jan") || strings.HasPrefix(line, "| Feb") {
			rows = append(rows, line)
		}
	}
	require.Len(t, rows, 2)
	assert.Contains(t, rows[0], "11568.00")
	assert.Contains(t, rows[0], "-172.67")
	assert.Contains(t, rows[1], "11440.48")
}

func TestReporter_Handle_JSONEmptySeries(t *testing.T) {
	var buf bytes.Buffer

	err := NewReporter(&buf).Handle(Projection{Input: domain.DefaultSimulationInput()}, FormatJSON)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"revenue_series": []`)
}

func TestReporter_HandleScenarios_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewReporter(&buf).HandleScenarios(nil, FormatTable))

	assert.Equal(t, "No scenarios found\n", buf.String())
}
