package api

// SimulationInput is the wire form of the business levers.
// Validation tags mirror the engine's input domain.
type SimulationInput struct {
	Price            float64 `json:"price" validate:"gt=0"`
	VariableCost     float64 `json:"variable_cost" validate:"gt=0"`
	FixedCost        float64 `json:"fixed_cost" validate:"gte=0"`
	Employees        int     `json:"employees" validate:"gte=1"`
	InterestRate     float64 `json:"interest_rate" validate:"gte=0"`
	TaxRate          float64 `json:"tax_rate" validate:"gte=0,lte=1"`
	Demand           float64 `json:"demand" validate:"gte=0"`
	MarketingSpend   float64 `json:"marketing_spend" validate:"gte=0"`
	ChurnRate        float64 `json:"churn_rate" validate:"gte=0,lte=1"`
	PriceSensitivity float64 `json:"price_sensitivity" validate:"gte=0,lte=2"`
	PeriodMonths     int     `json:"period_months" validate:"gte=1,lte=24"`
}

type SimulationResult struct {
	MonthlyProfit float64   `json:"monthly_profit"`
	AnnualProfit  float64   `json:"annual_profit"`
	CashFlow      float64   `json:"cash_flow"`
	SafetyMargin  float64   `json:"safety_margin"`
	GrowthRate    float64   `json:"growth_rate"`
	RiskIndex     float64   `json:"risk_index"`
	RevenueSeries []float64 `json:"revenue_series"`
	ProfitSeries  []float64 `json:"profit_series"`
	MonthLabels   []string  `json:"month_labels"`
}

type SimulationResponse struct {
	Inputs SimulationInput  `json:"inputs"`
	Result SimulationResult `json:"result"`
}
