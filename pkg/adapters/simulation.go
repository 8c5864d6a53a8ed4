package adapters

import (
	"github.com/de-tools/decision-simulator/pkg/models/api"
	"github.com/de-tools/decision-simulator/pkg/models/domain"
)

func MapSimulationInputApiToDomain(in api.SimulationInput) domain.SimulationInput {
	return domain.SimulationInput{
		Price:            in.Price,
		VariableCost:     in.VariableCost,
		FixedCost:        in.FixedCost,
		Employees:        in.Employees,
		InterestRate:     in.InterestRate,
		TaxRate:          in.TaxRate,
		Demand:           in.Demand,
		MarketingSpend:   in.MarketingSpend,
		ChurnRate:        in.ChurnRate,
		PriceSensitivity: in.PriceSensitivity,
		PeriodMonths:     in.PeriodMonths,
	}
}

func MapSimulationInputDomainToApi(in domain.SimulationInput) api.SimulationInput {
	return api.SimulationInput{
		Price:            in.Price,
		VariableCost:     in.VariableCost,
		FixedCost:        in.FixedCost,
		Employees:        in.Employees,
		InterestRate:     in.InterestRate,
		TaxRate:          in.TaxRate,
		Demand:           in.Demand,
		MarketingSpend:   in.MarketingSpend,
		ChurnRate:        in.ChurnRate,
		PriceSensitivity: in.PriceSensitivity,
		PeriodMonths:     in.PeriodMonths,
	}
}

// DefaultApiSimulationInput is the starting point requests are decoded onto,
// so any field a caller omits keeps its default.
func DefaultApiSimulationInput() api.SimulationInput {
	return MapSimulationInputDomainToApi(domain.DefaultSimulationInput())
}

func MapSimulationResultDomainToApi(r domain.SimulationResult) api.SimulationResult {
	return api.SimulationResult{
		MonthlyProfit: r.MonthlyProfit,
		AnnualProfit:  r.AnnualProfit,
		CashFlow:      r.CashFlow,
		SafetyMargin:  r.SafetyMargin,
		GrowthRate:    r.GrowthRate,
		RiskIndex:     r.RiskIndex,
		RevenueSeries: nonNil(r.RevenueSeries),
		ProfitSeries:  nonNil(r.ProfitSeries),
		MonthLabels:   nonNil(r.MonthLabels),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
