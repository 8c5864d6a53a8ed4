package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/de-tools/decision-simulator/pkg/adapters"
	"github.com/de-tools/decision-simulator/pkg/models/domain"
	"github.com/de-tools/decision-simulator/pkg/services/validation"
)

// Catalog is a read-only set of named example scenarios.
type Catalog interface {
	List(ctx context.Context) []domain.Scenario
	Get(ctx context.Context, id int64) (domain.Scenario, bool)
	FindByName(ctx context.Context, name string) (domain.Scenario, bool)
}

type staticCatalog struct {
	scenarios []domain.Scenario
}

// NewCatalog builds a catalog from inputs keyed by name, numbering them in the given order from 1.
func NewCatalog(names []string, inputs map[string]domain.SimulationInput) Catalog {
	scenarios := make([]domain.Scenario, 0, len(names))
	for i, name := range names {
		scenarios = append(scenarios, domain.Scenario{
			ID:     int64(i + 1),
			Name:   name,
			Input:  inputs[name],
			Source: domain.ScenarioSourceCatalog,
		})
	}
	return &staticCatalog{scenarios: scenarios}
}

// Default returns the built-in examples.
func Default() Catalog {
	highMarketing := domain.DefaultSimulationInput()
	highMarketing.MarketingSpend = 18000
	highMarketing.Price = 115
	highMarketing.Demand = 1400

	return NewCatalog([]string{"Base case", "High marketing"}, map[string]domain.SimulationInput{
		"Base case":      domain.DefaultSimulationInput(),
		"High marketing": highMarketing,
	})
}

func (c *staticCatalog) List(_ context.Context) []domain.Scenario {
	return append([]domain.Scenario(nil), c.scenarios...)
}

func (c *staticCatalog) Get(_ context.Context, id int64) (domain.Scenario, bool) {
	for _, s := range c.scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Scenario{}, false
}

func (c *staticCatalog) FindByName(_ context.Context, name string) (domain.Scenario, bool) {
	for _, s := range c.scenarios {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return domain.Scenario{}, false
}

var knownKeys = map[string]struct{}{
	"price":             {},
	"variable_cost":     {},
	"fixed_cost":        {},
	"employees":         {},
	"interest_rate":     {},
	"tax_rate":          {},
	"demand":            {},
	"marketing_spend":   {},
	"churn_rate":        {},
	"price_sensitivity": {},
	"period_months":     {},
}

// Load reads a catalog from an INI file. Each section is one scenario; keys are
// input fields and any field left out takes its default.
//
//	[High marketing]
//	marketing_spend = 18000
//	price = 115
func Load(path string, v *validation.Validator) (Catalog, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	cfg.NameMapper = ini.TitleUnderscore

	var names []string
	inputs := make(map[string]domain.SimulationInput)
	for _, section := range cfg.Sections() {
		name := section.Name()
		if name == ini.DefaultSection {
			continue
		}

		var unknown []string
		for _, key := range section.Keys() {
			if _, ok := knownKeys[key.Name()]; !ok {
				unknown = append(unknown, key.Name())
			}
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			return nil, fmt.Errorf("scenario %q: unknown keys %s", name, strings.Join(unknown, ", "))
		}

		in := adapters.DefaultApiSimulationInput()
		if err := section.MapTo(&in); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", name, err)
		}
		if err := v.Struct(in); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", name, err)
		}

		names = append(names, name)
		inputs[name] = adapters.MapSimulationInputApiToDomain(in)
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("catalog %s defines no scenarios", path)
	}
	return NewCatalog(names, inputs), nil
}
