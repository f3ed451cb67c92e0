// Package validate checks a decoded setup database against the
// consistency rules the producing tool relies on.
package validate

import (
	"fmt"

	"github.com/adeutils/sdbtool/internal/setupdb"
)

// Issue describes a consistency problem in one session of the database.
type Issue struct {
	Session string `json:"session"` // "active" or "history/<name>"
	Field   string `json:"field"`   // dotted path to the offending field
	Ref     string `json:"ref"`     // the problematic value or reference
	Problem string `json:"problem"` // "dangling-test", "empty-option", "bad-flag", "duplicate-entry"
}

// String returns a human-readable description of the issue.
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s in %s (%s)", i.Problem, i.Ref, i.Field, i.Session)
}

// Check validates every session in the database: the active session and
// each history checkpoint. It returns one issue per violation:
//   - dependent-test references that name no declared test
//   - tests missing a tool, cell, or lib binding
//   - boolean-like fields outside the "0"/"1"/"true"/"false" vocabulary
//   - duplicate history entry names
func Check(db *setupdb.SetupDatabase) []Issue {
	var issues []Issue

	issues = append(issues, checkSession("active", db.Active)...)

	seen := make(map[string]bool)
	for i := range db.History.Entries {
		e := &db.History.Entries[i]
		label := "history/" + e.Name

		if seen[e.Name] {
			issues = append(issues, Issue{
				Session: label,
				Field:   "name",
				Ref:     e.Name,
				Problem: "duplicate-entry",
			})
		}
		seen[e.Name] = true

		issues = append(issues, checkSession(label, &e.Checkpoint)...)
		issues = append(issues, checkFlag(label, "gendatasheet", e.GenDatasheet)...)
	}

	return issues
}

// checkSession validates one session's tests, variables, and flags.
func checkSession(label string, s *setupdb.Session) []Issue {
	var issues []Issue

	// Build the declared test name set for dangling reference detection.
	declared := make(map[string]bool)
	for _, t := range s.Tests.Entries {
		declared[t.Name] = true
	}

	for _, t := range s.Tests.Entries {
		field := "tests/" + t.Name
		if t.Tool == "" {
			issues = append(issues, Issue{
				Session: label,
				Field:   field + "/tool",
				Ref:     t.Name,
				Problem: "empty-option",
			})
		}
		for _, key := range []string{"cell", "lib"} {
			if v, ok := t.ToolOptions.Get(key); !ok || v == "" {
				issues = append(issues, Issue{
					Session: label,
					Field:   field + "/tooloptions/" + key,
					Ref:     t.Name,
					Problem: "empty-option",
				})
			}
		}
	}

	for _, v := range s.Vars.Entries {
		field := "vars/" + v.Name
		for _, dt := range v.DependentTests.Entries {
			if !declared[dt.Name] {
				issues = append(issues, Issue{
					Session: label,
					Field:   field + "/dependentTests",
					Ref:     dt.Name,
					Problem: "dangling-test",
				})
			}
			issues = append(issues, checkFlag(label, field+"/dependentTests/"+dt.Name+"/enabled", dt.Enabled)...)
		}
	}

	for _, c := range s.Corners.Entries {
		issues = append(issues, checkFlag(label, "corners/"+c.Name+"/enabled", c.Enabled)...)
	}
	issues = append(issues, checkFlag(label, "overwritehistory", s.OverwriteHistory)...)
	issues = append(issues, checkFlag(label, "allvarsdisabled", s.AllVarsDisabled)...)

	return issues
}

// checkFlag verifies a boolean-like field holds one of the four
// literals the format uses.
func checkFlag(label, field string, f setupdb.Flag) []Issue {
	if _, err := f.Bool(); err != nil {
		return []Issue{{
			Session: label,
			Field:   field,
			Ref:     string(f),
			Problem: "bad-flag",
		}}
	}
	return nil
}
