package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prefopt-project/prefopt/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:     "prefopt-agent",
	Short:   "Run Prefopt Agent",
	Long:    "Prefopt Agent validates preference-optimization recipes and drives training runs against an external training runtime.",
	Version: fmt.Sprintf("gitVersion=%s, gitCommit=%s", version.GitVersion, version.GitCommit),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(CreateAgentCommand(NewRecipeAgent()))
	rootCmd.AddCommand(CreateAgentCommand(NewLaunchAgent()))
}
