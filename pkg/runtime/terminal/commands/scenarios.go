package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/decision-simulator/pkg/runtime/terminal/export"
	"github.com/de-tools/decision-simulator/pkg/services/validation"
)

type ScenariosCmd struct {
	catalogPath string
	output      string
	validator   *validation.Validator
	reporter    *export.Reporter
}

func NewScenariosCmd(validator *validation.Validator, reporter *export.Reporter) *cobra.Command {
	sc := &ScenariosCmd{validator: validator, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List the scenario catalog",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.catalogPath, "catalog", "", "Path to an INI scenario catalog (default: built-in catalog)")
	cmd.Flags().StringVarP(&sc.output, "output", "o", string(export.FormatTable), "Output format: table or json")

	return cmd
}

func (sc *ScenariosCmd) run(cmd *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(sc.output)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(sc.catalogPath, sc.validator)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	return sc.reporter.HandleScenarios(cat.List(cmd.Context()), format)
}
