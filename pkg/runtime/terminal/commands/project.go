package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/decision-simulator/pkg/adapters"
	"github.com/de-tools/decision-simulator/pkg/models/api"
	"github.com/de-tools/decision-simulator/pkg/runtime/terminal/export"
	"github.com/de-tools/decision-simulator/pkg/services/simulation"
	"github.com/de-tools/decision-simulator/pkg/services/validation"
)

type ProjectCmd struct {
	scenario    string
	catalogPath string
	output      string
	input       struct {
		price            float64
		variableCost     float64
		fixedCost        float64
		employees        int
		interestRate     float64
		taxRate          float64
		demand           float64
		marketingSpend   float64
		churnRate        float64
		priceSensitivity float64
		periodMonths     int
	}
	projector simulation.Projector
	validator *validation.Validator
	reporter  *export.Reporter
}

func NewProjectCmd(
	projector simulation.Projector,
	validator *validation.Validator,
	reporter *export.Reporter,
) *cobra.Command {
	pc := &ProjectCmd{projector: projector, validator: validator, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Run a single projection and print the report",
		Long: "Projects a catalog scenario or the default input vector. " +
			"Field flags override individual values of the selected scenario.",
		Args: cobra.NoArgs,
		RunE: pc.run,
	}

	defaults := adapters.DefaultApiSimulationInput()
	flags := cmd.Flags()
	flags.StringVar(&pc.scenario, "scenario", "", "Catalog scenario name to start from")
	flags.StringVar(&pc.catalogPath, "catalog", "", "Path to an INI scenario catalog (default: built-in catalog)")
	flags.StringVarP(&pc.output, "output", "o", string(export.FormatTable), "Output format: table or json")

	flags.Float64Var(&pc.input.price, "price", defaults.Price, "Sale price per unit")
	flags.Float64Var(&pc.input.variableCost, "variable-cost", defaults.VariableCost, "Variable cost per unit")
	flags.Float64Var(&pc.input.fixedCost, "fixed-cost", defaults.FixedCost, "Fixed cost per month")
	flags.IntVar(&pc.input.employees, "employees", defaults.Employees, "Headcount")
	flags.Float64Var(&pc.input.interestRate, "interest-rate", defaults.InterestRate, "Annual interest rate on debt")
	flags.Float64Var(&pc.input.taxRate, "tax-rate", defaults.TaxRate, "Tax rate on positive profit")
	flags.Float64Var(&pc.input.demand, "demand", defaults.Demand, "Expected monthly demand units")
	flags.Float64Var(&pc.input.marketingSpend, "marketing-spend", defaults.MarketingSpend, "Marketing spend per month")
	flags.Float64Var(&pc.input.churnRate, "churn-rate", defaults.ChurnRate, "Customer churn rate")
	flags.Float64Var(&pc.input.priceSensitivity, "price-sensitivity", defaults.PriceSensitivity,
		"Demand elasticity to price")
	flags.IntVar(&pc.input.periodMonths, "period-months", defaults.PeriodMonths, "Projection horizon in months")

	return cmd
}

func (pc *ProjectCmd) run(cmd *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(pc.output)
	if err != nil {
		return err
	}

	title := "Custom scenario"
	input := adapters.DefaultApiSimulationInput()
	if pc.scenario != "" {
		cat, err := loadCatalog(pc.catalogPath, pc.validator)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		sc, ok := cat.FindByName(cmd.Context(), pc.scenario)
		if !ok {
			return fmt.Errorf("unknown scenario %q", pc.scenario)
		}
		title = sc.Name
		input = adapters.MapSimulationInputDomainToApi(sc.Input)
	}
	pc.applyOverrides(cmd, &input)

	if err := pc.validator.Struct(input); err != nil {
		return err
	}

	domainInput := adapters.MapSimulationInputApiToDomain(input)
	return pc.reporter.Handle(export.Projection{
		Title:  title,
		Input:  domainInput,
		Result: pc.projector.Project(domainInput),
	}, format)
}

// applyOverrides copies only the field flags set on the command line.
func (pc *ProjectCmd) applyOverrides(cmd *cobra.Command, input *api.SimulationInput) {
	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("price", func() { input.Price = pc.input.price })
	set("variable-cost", func() { input.VariableCost = pc.input.variableCost })
	set("fixed-cost", func() { input.FixedCost = pc.input.fixedCost })
	set("employees", func() { input.Employees = pc.input.employees })
	set("interest-rate", func() { input.InterestRate = pc.input.interestRate })
	set("tax-rate", func() { input.TaxRate = pc.input.taxRate })
	set("demand", func() { input.Demand = pc.input.demand })
	set("marketing-spend", func() { input.MarketingSpend = pc.input.marketingSpend })
	set("churn-rate", func() { input.ChurnRate = pc.input.churnRate })
	set("price-sensitivity", func() { input.PriceSensitivity = pc.input.priceSensitivity })
	set("period-months", func() { input.PeriodMonths = pc.input.periodMonths })
}
