package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adeutils/sdbtool/internal/diff"
	"github.com/adeutils/sdbtool/internal/setupdb"
)

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff FILE_A [FILE_B]",
		Short: "Compare setup databases field by field",
		Long: `Compare two setup databases, or compare a database's active session
against one of its own history checkpoints:

  sdbtool diff a.sdb b.sdb
  sdbtool diff gm_tb_tran.sdb --against Interactive.0

Changes print as element paths, e.g.
  active/vars/tsim/value: "5n" -> "10n"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			against, _ := cmd.Flags().GetString("against")
			if _, err := loadConfig(cmd); err != nil {
				return err
			}

			var changes []diff.Change
			switch {
			case against != "":
				if len(args) != 1 {
					return fmt.Errorf("--against compares a file with its own history; give one file")
				}
				db, err := setupdb.DecodeFile(args[0])
				if err != nil {
					return err
				}
				changes, err = diff.Against(db, against)
				if err != nil {
					return err
				}
			case len(args) == 2:
				a, err := setupdb.DecodeFile(args[0])
				if err != nil {
					return err
				}
				b, err := setupdb.DecodeFile(args[1])
				if err != nil {
					return err
				}
				changes = diff.Databases(a, b)
			default:
				return fmt.Errorf("give two files, or one file with --against NAME")
			}

			if jsonOut {
				return printJSON(cmd, map[string]interface{}{
					"changes": changes,
					"count":   len(changes),
				})
			}

			for _, c := range changes {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			if len(changes) > 0 {
				return fmt.Errorf("%d differences", len(changes))
			}
			return nil
		},
	}
	cmd.Flags().String("against", "", "Compare the active session against this history entry's checkpoint")
	return cmd
}
