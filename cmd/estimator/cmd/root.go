// Package cmd implements the estimator command line: a one-shot runner
// plus per-stage subcommands whose file contracts match the server
// pipeline's run directories.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "estimator",
	Short: "Estimator turns floor plans into construction cost estimates",
	Long: `Estimator turns floor plans into construction cost estimates.

The run subcommand executes the whole pipeline the way the HTTP server
does. The per-stage subcommands read and write the same JSON files, so a
run can also be assembled step by step, inspecting or editing the
intermediate files between stages.
`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readJSONFile(path string, v interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return nil
}

func writeJSONFile(path string, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}
