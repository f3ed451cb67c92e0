package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adeutils/sdbtool/internal/setupdb"
	"github.com/adeutils/sdbtool/internal/si"
)

func newVarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "var",
		Short: "Edit design variables in the active session",
	}

	cmd.AddCommand(newVarSetCmd())

	return cmd
}

func newVarSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set FILE NAME VALUE",
		Short: "Set a variable's value and rewrite the file",
		Long: `Update one design variable in the active session and rewrite the
file atomically. The value must parse as an SI-suffixed number ("5n",
"20f", "1000", "1.0") unless --raw is given; the file's literal
conventions elsewhere are untouched.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			raw, _ := cmd.Flags().GetBool("raw")
			if _, err := loadConfig(cmd); err != nil {
				return err
			}

			path, name, value := args[0], args[1], args[2]

			if !raw && !si.IsNumeric(value) {
				return fmt.Errorf("value %q is not an SI-suffixed number (use --raw for expressions)", value)
			}

			db, err := setupdb.DecodeFile(path)
			if err != nil {
				return err
			}

			old := db.Active.Var(name)
			if old == nil {
				return fmt.Errorf("no variable named %q in the active session", name)
			}
			oldValue := old.Value

			db.Active.SetVar(name, value)
			if err := setupdb.WriteFile(path, db); err != nil {
				return err
			}

			if jsonOut {
				return printJSON(cmd, map[string]string{
					"file": path,
					"name": name,
					"old":  oldValue,
					"new":  value,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s = %s (was %s)\n", path, name, value, oldValue)
			return nil
		},
	}
	cmd.Flags().Bool("raw", false, "Accept any value string, not just SI-suffixed numbers")
	return cmd
}
