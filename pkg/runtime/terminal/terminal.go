package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/decision-simulator/pkg/runtime/terminal/commands"
	"github.com/de-tools/decision-simulator/pkg/runtime/terminal/export"
	"github.com/de-tools/decision-simulator/pkg/services/simulation"
	"github.com/de-tools/decision-simulator/pkg/services/validation"
)

// CLI represents the command-line interface
type CLI struct {
	projector simulation.Projector
	validator *validation.Validator
	reporter  *export.Reporter
	rootCmd   *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Engine simulation.Config
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		projector: simulation.NewEngine(opts.Engine),
		validator: validation.New(),
		reporter:  export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args for the next Execute.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "simulator",
		Short:         "Business decision projection tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(commands.NewProjectCmd(cli.projector, cli.validator, cli.reporter))
	cmd.AddCommand(commands.NewScenariosCmd(cli.validator, cli.reporter))

	return cmd
}
