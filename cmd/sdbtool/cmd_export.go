package main

import (
	"github.com/spf13/cobra"

	"github.com/adeutils/sdbtool/internal/export"
	"github.com/adeutils/sdbtool/internal/setupdb"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export a setup database as YAML or JSON",
		Long: `Export a whole setup database, or a single session, in a format
suited to scripting and diff review. Flag literals stay strings, so an
export and re-import discussion never loses the "0"/"1" versus
"true"/"false" distinction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatFlag, _ := cmd.Flags().GetString("format")
			session, _ := cmd.Flags().GetString("session")
			if _, err := loadConfig(cmd); err != nil {
				return err
			}

			format, err := export.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			db, err := setupdb.DecodeFile(args[0])
			if err != nil {
				return err
			}

			if session != "" {
				return export.Session(cmd.OutOrStdout(), db, session, format)
			}
			return export.Database(cmd.OutOrStdout(), db, format)
		},
	}
	cmd.Flags().String("format", "yaml", "Export format: yaml or json")
	cmd.Flags().String("session", "", "Export one session: 'active' or a history entry name")
	return cmd
}
