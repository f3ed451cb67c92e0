package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/adeutils/sdbtool/internal/axlpath"
	"github.com/adeutils/sdbtool/internal/setupdb"
)

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve FILE",
		Short: "Expand the AXL path macros in a setup database",
		Long: `List every path-valued field with its $AXL_SETUPDB_DIR /
$AXL_PROJECT_DIR macros expanded against the environment and
configuration. Macros without a binding stay literal and are reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			entryName, _ := cmd.Flags().GetString("entry")
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			db, err := setupdb.DecodeFile(args[0])
			if err != nil {
				return err
			}

			resolver := newResolver(cfg)

			var fields []axlpath.PathField
			if entryName != "" {
				entry := db.Entry(entryName)
				if entry == nil {
					return fmt.Errorf("no history entry named %q", entryName)
				}
				fields = resolver.EntryPaths(entry)
			} else {
				fields = resolver.SessionPaths(db.Active)
				for i := range db.History.Entries {
					fields = append(fields, resolver.EntryPaths(&db.History.Entries[i])...)
				}
			}

			if jsonOut {
				return printJSON(cmd, fields)
			}

			out := newUI(cfg)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FIELD\tRESOLVED")
			unbound := make(map[string]bool)
			for _, f := range fields {
				fmt.Fprintf(w, "%s\t%s\n", f.Field, f.Resolved)
				for _, m := range f.Missing {
					unbound[m] = true
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if len(unbound) > 0 {
				names := make([]string, 0, len(unbound))
				for _, name := range []string{axlpath.MacroSetupDBDir, axlpath.MacroProjectDir} {
					if unbound[name] {
						names = append(names, "$"+name)
					}
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: unbound macros: %s\n",
					out.Warn(strings.Join(names, ", ")))
			}
			return nil
		},
	}
	cmd.Flags().String("entry", "", "Resolve one history entry's paths instead of the whole file")
	return cmd
}
