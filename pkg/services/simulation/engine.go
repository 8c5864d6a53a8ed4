package simulation

import (
	"math"
	"time"

	"github.com/de-tools/decision-simulator/pkg/models/domain"
)

const (
	depreciationRate   = 0.05
	referencePrice     = 100.0
	baseMonthlyGrowth  = 0.01
	marketingScale     = 10_000.0
	churnWeight        = 0.6
	minMonthlyGrowth   = -0.10
	maxMonthlyGrowth   = 0.25
	seasonalAmplitude  = 0.08
	seasonalCycle      = 12.0
	minCompetitiveness = 0.6
	maxCompetitiveness = 1.3
	monthsPerYear      = 12.0
)

// Projector computes a projection for one input vector.
type Projector interface {
	Project(input domain.SimulationInput) domain.SimulationResult
}

// Config holds the fixed constants an Engine is built with.
type Config struct {
	BaseSalary          float64    `mapstructure:"base_salary"`
	WorkingCapitalRatio float64    `mapstructure:"working_capital_ratio"`
	Debt                float64    `mapstructure:"debt"`
	StartMonth          time.Month `mapstructure:"start_month"`
}

func DefaultConfig() Config {
	return Config{
		BaseSalary:          4200.0,
		WorkingCapitalRatio: 0.12,
		Debt:                150_000.0,
		StartMonth:          time.January,
	}
}

// Engine is the projection core. It holds only its constants and is safe for concurrent use.
type Engine struct {
	config Config
}

func NewEngine(config Config) *Engine {
	return &Engine{config: config}
}

func (e *Engine) Config() Config {
	return e.config
}

// metrics are the unrounded period aggregates the series projection is built on.
type metrics struct {
	operatingCosts  float64
	interestExpense float64
	taxes           float64
	netProfit       float64
	cashFlow        float64
	safetyMargin    float64
	riskIndex       float64
	monthlyGrowth   float64
}

func (e *Engine) Project(input domain.SimulationInput) domain.SimulationResult {
	m := e.aggregate(input)
	revenue, profit := e.series(input, m)

	return domain.SimulationResult{
		MonthlyProfit: Round(m.netProfit, 2),
		AnnualProfit:  Round(m.netProfit*monthsPerYear, 2),
		CashFlow:      Round(m.cashFlow, 2),
		SafetyMargin:  Round(m.safetyMargin, 3),
		GrowthRate:    Round(m.monthlyGrowth*monthsPerYear, 3),
		RiskIndex:     Round(m.riskIndex, 3),
		RevenueSeries: revenue,
		ProfitSeries:  profit,
		MonthLabels:   MonthLabels(e.config.StartMonth, len(revenue)),
	}
}

func (e *Engine) aggregate(in domain.SimulationInput) metrics {
	periods := float64(max(in.PeriodMonths, 1))

	payroll := float64(in.Employees) * e.config.BaseSalary
	contributionMargin := in.Price - in.VariableCost

	revenue := in.Price * in.Demand
	grossProfit := revenue - in.VariableCost*in.Demand

	operatingCosts := payroll + in.FixedCost + in.MarketingSpend
	ebit := grossProfit - operatingCosts

	interestExpense := e.config.Debt * in.InterestRate / monthsPerYear
	profitBeforeTax := ebit - interestExpense
	// losses carry no tax benefit
	taxes := math.Max(profitBeforeTax, 0) * in.TaxRate
	netProfit := profitBeforeTax - taxes

	depreciation := in.FixedCost * depreciationRate
	workingCapitalChange := revenue * e.config.WorkingCapitalRatio
	cashFlow := netProfit + depreciation - workingCapitalChange/periods

	breakevenUnits := SafeDivide(operatingCosts+interestExpense, contributionMargin, MarginFloor)
	safetyMargin := SafeDivide(in.Demand-breakevenUnits, in.Demand, DemandFloor)

	return metrics{
		operatingCosts:  operatingCosts,
		interestExpense: interestExpense,
		taxes:           taxes,
		netProfit:       netProfit,
		cashFlow:        cashFlow,
		safetyMargin:    safetyMargin,
		riskIndex:       Clamp(1-safetyMargin, 0, 1),
		monthlyGrowth:   MonthlyGrowth(in),
	}
}

// MonthlyGrowth derives the clamped monthly growth rate from marketing, pricing and churn.
func MonthlyGrowth(in domain.SimulationInput) float64 {
	marketingFactor := math.Log1p(in.MarketingSpend) / marketingScale
	// penalty only above the reference price, no bonus below it
	pricePenalty := in.PriceSensitivity * math.Max((in.Price-referencePrice)/referencePrice, 0)
	churnPenalty := in.ChurnRate * churnWeight
	return Clamp(baseMonthlyGrowth+marketingFactor-pricePenalty-churnPenalty, minMonthlyGrowth, maxMonthlyGrowth)
}

// series projects monthly demand with a linear trend and a fixed 12-month season.
// Cost lines are spread evenly over the horizon.
func (e *Engine) series(in domain.SimulationInput, m metrics) (revenue, profit []float64) {
	n := max(in.PeriodMonths, 1)
	periods := float64(n)

	competitiveness := Clamp(1-in.PriceSensitivity*((in.Price-referencePrice)/referencePrice),
		minCompetitiveness, maxCompetitiveness)
	monthlyDemand := in.Demand / periods

	revenue = make([]float64, n)
	profit = make([]float64, n)
	for i := 0; i < n; i++ {
		idx := float64(i)
		seasonality := 1 + seasonalAmplitude*math.Sin(2*math.Pi*idx/seasonalCycle)
		trend := 1 + m.monthlyGrowth*idx
		units := monthlyDemand * trend * seasonality * competitiveness

		rev := in.Price * units
		variable := in.VariableCost * units
		revenue[i] = Round(rev, 2)
		profit[i] = Round(rev-variable-m.operatingCosts/periods-m.interestExpense/periods-m.taxes/periods, 2)
	}
	return revenue, profit
}
