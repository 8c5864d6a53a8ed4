package domain

// SimulationInput is the set of business levers a projection is computed from.
type SimulationInput struct {
	Price            float64 // sale price per unit
	VariableCost     float64 // variable cost per unit
	FixedCost        float64 // monthly fixed costs
	Employees        int     // headcount on payroll
	InterestRate     float64 // annual, decimal
	TaxRate          float64 // effective, decimal
	Demand           float64 // expected units per month
	MarketingSpend   float64 // monthly marketing investment
	ChurnRate        float64 // decimal
	PriceSensitivity float64 // demand elasticity to price
	PeriodMonths     int     // projection horizon
}

// DefaultSimulationInput returns the reference business used when a caller omits a lever.
func DefaultSimulationInput() SimulationInput {
	return SimulationInput{
		Price:            120.0,
		VariableCost:     45.0,
		FixedCost:        25000.0,
		Employees:        12,
		InterestRate:     0.08,
		TaxRate:          0.27,
		Demand:           1200.0,
		MarketingSpend:   12000.0,
		ChurnRate:        0.04,
		PriceSensitivity: 0.18,
		PeriodMonths:     12,
	}
}

// SimulationResult holds the headline metrics and the month-by-month projection.
type SimulationResult struct {
	MonthlyProfit float64
	AnnualProfit  float64
	CashFlow      float64
	SafetyMargin  float64
	GrowthRate    float64 // annualized
	RiskIndex     float64 // 0 (safe) .. 1 (at or below breakeven)
	RevenueSeries []float64
	ProfitSeries  []float64
	MonthLabels   []string
}

// Clone returns a deep copy so callers can't mutate shared series.
func (r SimulationResult) Clone() SimulationResult {
	out := r
	out.RevenueSeries = append([]float64(nil), r.RevenueSeries...)
	out.ProfitSeries = append([]float64(nil), r.ProfitSeries...)
	out.MonthLabels = append([]string(nil), r.MonthLabels...)
	return out
}
