package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adeutils/sdbtool/internal/setupdb"
	"github.com/adeutils/sdbtool/internal/validate"
)

// checkResult is the per-file outcome of the check command.
type checkResult struct {
	File   string           `json:"file"`
	Valid  bool             `json:"valid"`
	Error  string           `json:"error,omitempty"`
	Issues []validate.Issue `json:"issues,omitempty"`
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Decode setup databases and validate their consistency rules",
		Long: `Decode each setup database and check the consistency rules the
producing tool relies on:
  - dependent-test references that name no declared test
  - tests missing a tool, cell, or lib binding
  - boolean-like fields outside the "0"/"1"/"true"/"false" vocabulary
  - duplicate history entry names

Exits non-zero when any file fails to decode or has issues.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out := newUI(cfg)

			results := make([]checkResult, 0, len(args))
			failures := 0
			for _, path := range args {
				result := checkResult{File: path}
				db, err := setupdb.DecodeFile(path)
				if err != nil {
					var pe *setupdb.ParseError
					if !errors.As(err, &pe) {
						return err
					}
					result.Error = pe.Error()
					failures++
				} else {
					result.Issues = validate.Check(db)
					result.Valid = len(result.Issues) == 0
					if !result.Valid {
						failures++
					}
				}
				results = append(results, result)
			}

			if jsonOut {
				if err := printJSON(cmd, map[string]interface{}{
					"results":  results,
					"failures": failures,
				}); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					switch {
					case r.Error != "":
						fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", out.Error("✗"), r.File, r.Error)
					case !r.Valid:
						fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d issues\n", out.Error("✗"), r.File, len(r.Issues))
						for _, issue := range r.Issues {
							fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", issue)
						}
					default:
						fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", out.OK("✓"), r.File)
					}
				}
			}

			if failures > 0 {
				return fmt.Errorf("%d of %d files failed validation", failures, len(args))
			}
			return nil
		},
	}
}
