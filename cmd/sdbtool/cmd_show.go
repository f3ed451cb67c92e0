package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/adeutils/sdbtool/internal/setupdb"
	"github.com/adeutils/sdbtool/internal/si"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the contents of a setup database",
	}

	cmd.AddCommand(
		newShowSummaryCmd(),
		newShowTestsCmd(),
		newShowVarsCmd(),
		newShowCornersCmd(),
	)

	return cmd
}

// showSession resolves the --session flag against a database.
func showSession(cmd *cobra.Command, db *setupdb.SetupDatabase) (*setupdb.Session, error) {
	name, _ := cmd.Flags().GetString("session")
	if name == "" || name == "active" {
		return db.Active, nil
	}
	entry := db.Entry(name)
	if entry == nil {
		return nil, fmt.Errorf("no session named %q (use 'active' or a history entry name)", name)
	}
	return &entry.Checkpoint, nil
}

func newShowSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary FILE",
		Short: "Show a one-screen summary of a setup database",
		Args:  cobra.ExactArgs(1),
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

			if jsonOut {
				return printJSON(cmd, map[string]interface{}{
					"file":          args[0],
					"version":       db.Version,
					"currentmode":   db.Active.CurrentMode,
					"test_count":    len(db.Active.Tests.Entries),
					"var_count":     len(db.Active.Vars.Entries),
					"corner_count":  len(db.Active.Corners.Entries),
					"history_count": len(db.History.Entries),
				})
			}

			out := newUI(cfg)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %s\n", out.Title("Setup database"), args[0])
			fmt.Fprintf(w, "  %s %s\n", out.Label("version:"), db.Version)
			fmt.Fprintf(w, "  %s %s\n", out.Label("mode:"), db.Active.CurrentMode)
			fmt.Fprintf(w, "  %s %d tests, %d vars, %d corners\n", out.Label("active:"),
				len(db.Active.Tests.Entries), len(db.Active.Vars.Entries), len(db.Active.Corners.Entries))
			fmt.Fprintf(w, "  %s %d entries\n", out.Label("history:"), len(db.History.Entries))
			return nil
		},
	}
}

func newShowTestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tests FILE",
		Short: "Show the tests of a session with their tool bindings",
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
			session, err := showSession(cmd, db)
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(cmd, session.Tests)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTOOL\tLIB\tCELL\tSIM\tVIEW")
			for _, t := range session.Tests.Entries {
				lib, _ := t.ToolOptions.Get("lib")
				cell, _ := t.ToolOptions.Get("cell")
				simulator, _ := t.ToolOptions.Get("sim")
				view, _ := t.ToolOptions.Get("view")
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", t.Name, t.Tool, lib, cell, simulator, view)
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("session", "active", "Session to show: 'active' or a history entry name")
	return cmd
}

func newShowVarsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vars FILE",
		Short: "Show the design variables of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			numeric, _ := cmd.Flags().GetBool("numeric")
			if _, err := loadConfig(cmd); err != nil {
				return err
			}
			db, err := setupdb.DecodeFile(args[0])
			if err != nil {
				return err
			}
			session, err := showSession(cmd, db)
			if err != nil {
				return err
			}

			if jsonOut {
				type jsonVar struct {
					Name      string   `json:"name"`
					Value     string   `json:"value"`
					Numeric   *float64 `json:"numeric,omitempty"`
					Dependent []string `json:"dependent_tests"`
				}
				vars := make([]jsonVar, 0, len(session.Vars.Entries))
				for _, v := range session.Vars.Entries {
					jv := jsonVar{Name: v.Name, Value: v.Value, Dependent: enabledTests(v)}
					if num, err := si.Parse(v.Value); err == nil {
						jv.Numeric = &num
					}
					vars = append(vars, jv)
				}
				return printJSON(cmd, vars)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			if numeric {
				fmt.Fprintln(w, "NAME\tVALUE\tNUMERIC\tTESTS")
			} else {
				fmt.Fprintln(w, "NAME\tVALUE\tTESTS")
			}
			for _, v := range session.Vars.Entries {
				tests := strings.Join(enabledTests(v), ",")
				if numeric {
					mag := "-"
					if num, err := si.Parse(v.Value); err == nil {
						mag = fmt.Sprintf("%g", num)
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.Name, v.Value, mag, tests)
				} else {
					fmt.Fprintf(w, "%s\t%s\t%s\n", v.Name, v.Value, tests)
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("session", "active", "Session to show: 'active' or a history entry name")
	cmd.Flags().Bool("numeric", false, "Annotate SI-suffixed values with their parsed magnitude")
	return cmd
}

// enabledTests returns the names of a variable's enabled dependent tests.
func enabledTests(v setupdb.Variable) []string {
	names := make([]string, 0, len(v.DependentTests.Entries))
	for _, dt := range v.DependentTests.Entries {
		if dt.Enabled.IsTrue() {
			names = append(names, dt.Name)
		}
	}
	return names
}

func newShowCornersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corners FILE",
		Short: "Show the corners of a session with their enabled flags",
		Args:  cobra.ExactArgs(1),
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
			session, err := showSession(cmd, db)
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(cmd, session.Corners)
			}

			out := newUI(cfg)
			for _, c := range session.Corners.Entries {
				state := out.Dim("disabled")
				if c.Enabled.IsTrue() {
					state = out.OK("enabled")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.Name, state)
			}
			return nil
		},
	}
	cmd.Flags().String("session", "active", "Session to show: 'active' or a history entry name")
	return cmd
}
