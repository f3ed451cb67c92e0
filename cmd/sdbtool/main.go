package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adeutils/sdbtool/internal/axlpath"
	"github.com/adeutils/sdbtool/internal/config"
	"github.com/adeutils/sdbtool/internal/ui"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sdbtool",
		Short: "Inspect and edit ADE/AXL setup database files",
		Long: `sdbtool works with the XML setup databases the ADE/AXL assembler
environment writes to persist testbench sessions: corner selections,
tool options, design variables, and the history of prior runs.

It decodes and re-encodes the format losslessly, validates the
consistency rules the producing tool relies on, resolves the
$AXL_SETUPDB_DIR / $AXL_PROJECT_DIR path macros, and maintains a local
catalog of runs across many setup databases.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for agent consumption)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/sdbtool/config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newCheckCmd(),
		newShowCmd(),
		newHistoryCmd(),
		newFmtCmd(),
		newExportCmd(),
		newResolveCmd(),
		newVarCmd(),
		newCornerCmd(),
		newDiffCmd(),
		newCatalogCmd(),
		newMCPServerCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "sdbtool version %s\n", version)
			}
		},
	}
}

// loadConfig loads the tool configuration, honoring the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newResolver builds the AXL macro resolver from the configuration.
// Environment variables were already applied as overrides during load.
func newResolver(cfg *config.Config) axlpath.Resolver {
	return axlpath.Resolver{
		SetupDBDir: cfg.AXL.SetupDBDir,
		ProjectDir: cfg.AXL.ProjectDir,
	}
}

// newUI builds the output styler for human-readable command output.
func newUI(cfg *config.Config) ui.UI {
	return ui.NewWithMode(os.Stdout, ui.ParseMode(cfg.Output.Color))
}

// printJSON writes v to the command's output as a single JSON document.
func printJSON(cmd *cobra.Command, v interface{}) error {
	return json.NewEncoder(cmd.OutOrStdout()).Encode(v)
}
