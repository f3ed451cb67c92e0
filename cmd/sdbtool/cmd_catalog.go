package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/adeutils/sdbtool/internal/catalog"
	"github.com/adeutils/sdbtool/internal/config"
	"github.com/adeutils/sdbtool/internal/setupdb"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Maintain a local index of runs across setup databases",
	}

	cmd.AddCommand(
		newCatalogIndexCmd(),
		newCatalogRunsCmd(),
		newCatalogStatsCmd(),
	)

	return cmd
}

// openCatalog opens the configured catalog database.
func openCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	path, err := cfg.CatalogPath()
	if err != nil {
		return nil, err
	}
	return catalog.Open(path)
}

func newCatalogIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index FILE...",
		Short: "Index the history entries of setup databases",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			cat, err := openCatalog(cfg)
			if err != nil {
				return err
			}
			defer cat.Close()

			total := 0
			indexed := make(map[string]int, len(args))
			for _, path := range args {
				db, err := setupdb.DecodeFile(path)
				if err != nil {
					return err
				}
				n, err := cat.Index(cmd.Context(), path, db)
				if err != nil {
					return err
				}
				indexed[path] = n
				total += n
			}

			if jsonOut {
				return printJSON(cmd, map[string]interface{}{
					"indexed": indexed,
					"runs":    total,
				})
			}
			for _, path := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "indexed %s: %d runs\n", path, indexed[path])
			}
			return nil
		},
	}
}

func newCatalogRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List indexed runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			file, _ := cmd.Flags().GetString("file")
			name, _ := cmd.Flags().GetString("name")
			test, _ := cmd.Flags().GetString("test")
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			cat, err := openCatalog(cfg)
			if err != nil {
				return err
			}
			defer cat.Close()

			runs, err := cat.Runs(cmd.Context(), catalog.Filter{File: file, Name: name, Test: test})
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(cmd, map[string]interface{}{
					"runs":  runs,
					"count": len(runs),
				})
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTIMESTAMP\tTESTS\tFILE")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, r.Timestamp, strings.Join(r.Tests, ","), r.File)
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("file", "", "Only runs indexed from this file")
	cmd.Flags().String("name", "", "Only runs whose name contains this substring")
	cmd.Flags().String("test", "", "Only runs covering this test")
	return cmd
}

func newCatalogStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			cat, err := openCatalog(cfg)
			if err != nil {
				return err
			}
			defer cat.Close()

			stats, err := cat.Stats(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(cmd, stats)
			}

			out := newUI(cfg)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s\n", out.Title("Run catalog"))
			fmt.Fprintf(w, "  %s %d\n", out.Label("files:"), stats.Files)
			fmt.Fprintf(w, "  %s %d\n", out.Label("runs:"), stats.Runs)
			fmt.Fprintf(w, "  %s %d tests, %d vars\n", out.Label("indexed:"), stats.Tests, stats.Vars)
			if stats.Latest.Name != "" {
				fmt.Fprintf(w, "  %s %s (%s)\n", out.Label("latest:"), stats.Latest.Name, stats.Latest.File)
			}
			return nil
		},
	}
}
