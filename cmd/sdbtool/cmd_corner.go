package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adeutils/sdbtool/internal/setupdb"
)

func newCornerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corner",
		Short: "Toggle corners in the active session",
	}

	cmd.AddCommand(
		newCornerToggleCmd("enable", "Enable a corner and rewrite the file", true),
		newCornerToggleCmd("disable", "Disable a corner and rewrite the file", false),
	)

	return cmd
}

func newCornerToggleCmd(verb, short string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " FILE NAME",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if _, err := loadConfig(cmd); err != nil {
				return err
			}

			path, name := args[0], args[1]

			db, err := setupdb.DecodeFile(path)
			if err != nil {
				return err
			}

			// The enabled attribute keeps whatever boolean convention
			// it already used; see Flag.WithBool.
			if !db.Active.SetCornerEnabled(name, enabled) {
				return fmt.Errorf("no corner named %q in the active session", name)
			}
			if err := setupdb.WriteFile(path, db); err != nil {
				return err
			}

			if jsonOut {
				return printJSON(cmd, map[string]interface{}{
					"file":    path,
					"corner":  name,
					"enabled": enabled,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: corner %s %sd\n", path, name, verb)
			return nil
		},
	}
}
