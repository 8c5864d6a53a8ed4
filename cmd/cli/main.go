package main

import (
	"fmt"
	"os"

	"github.com/de-tools/decision-simulator/pkg/runtime/terminal"
	"github.com/de-tools/decision-simulator/pkg/services/simulation"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Engine: simulation.DefaultConfig(),
		Output: os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
