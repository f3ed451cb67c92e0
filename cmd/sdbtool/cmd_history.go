package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/adeutils/sdbtool/internal/setupdb"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the saved runs of a setup database",
	}

	cmd.AddCommand(
		newHistoryListCmd(),
		newHistoryShowCmd(),
	)

	return cmd
}

func newHistoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list FILE",
		Short: "List history entries with their run metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if _, err := loadConfig(cmd); err != nil {
				return err
			}
			db, err := setupdb.DecodeFile(args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(cmd, db.History)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTIMESTAMP\tRAW DATA\tTESTS")
			for i := range db.History.Entries {
				e := &db.History.Entries[i]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					e.Name, e.Timestamp, e.RawDataDelStrategy, strings.Join(e.Tests, ","))
			}
			return w.Flush()
		},
	}
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE NAME",
		Short: "Show one history entry, including its checkpoint",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			db, err := setupdb.DecodeFile(args[0])
			if err != nil {
				return err
			}

			entry := db.Entry(args[1])
			if entry == nil {
				return fmt.Errorf("no history entry named %q", args[1])
			}

			if jsonOut {
				return printJSON(cmd, entry)
			}

			out := newUI(cfg)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %s\n", out.Title("History entry"), entry.Name)
			fmt.Fprintf(w, "  %s %s\n", out.Label("timestamp:"), entry.Timestamp)
			fmt.Fprintf(w, "  %s %s\n", out.Label("results:"), entry.ResultsName)
			if entry.SimResults != "" {
				fmt.Fprintf(w, "  %s %s\n", out.Label("simresults:"), entry.SimResults)
			}
			fmt.Fprintf(w, "  %s raw=%s netlist=%s\n", out.Label("deletion:"),
				entry.RawDataDelStrategy, entry.NetlistDelStrategy)
			if entry.SimDir != "" {
				fmt.Fprintf(w, "  %s %s\n", out.Label("simdir:"), entry.SimDir)
			}
			fmt.Fprintf(w, "  %s %s\n", out.Label("datasheet:"), string(entry.GenDatasheet))
			for _, lf := range entry.LogFiles {
				fmt.Fprintf(w, "  %s %s\n", out.Label("logfile:"), lf)
			}
			fmt.Fprintf(w, "  %s %s\n", out.Label("tests:"), strings.Join(entry.Tests, ","))

			fmt.Fprintf(w, "\n%s\n", out.Title("Checkpoint"))
			fmt.Fprintf(w, "  %s %s\n", out.Label("mode:"), entry.Checkpoint.CurrentMode)
			for _, v := range entry.Checkpoint.Vars.Entries {
				fmt.Fprintf(w, "  %s = %s\n", v.Name, v.Value)
			}
			for _, c := range entry.Checkpoint.Corners.Entries {
				state := "disabled"
				if c.Enabled.IsTrue() {
					state = "enabled"
				}
				fmt.Fprintf(w, "  corner %s: %s\n", c.Name, state)
			}
			return nil
		},
	}
}
