package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adeutils/sdbtool/internal/setupdb"
)

func newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt FILE...",
		Short: "Re-encode setup databases in canonical form",
		Long: `Decode and re-encode each setup database. Element nesting,
attributes, and text content are preserved exactly; indentation is
normalized. The encoding is stable, so formatting already-formatted
output changes nothing.

By default the result is written to stdout. With -w the file is
rewritten in place (atomically).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")
			if _, err := loadConfig(cmd); err != nil {
				return err
			}

			if !write && len(args) > 1 {
				return fmt.Errorf("formatting multiple files to stdout is ambiguous; use -w")
			}

			for _, path := range args {
				db, err := setupdb.DecodeFile(path)
				if err != nil {
					return err
				}

				if write {
					if err := setupdb.WriteFile(path, db); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "formatted %s\n", path)
					continue
				}

				data, err := setupdb.Encode(db)
				if err != nil {
					return err
				}
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolP("write", "w", false, "Rewrite files in place instead of printing to stdout")
	return cmd
}
