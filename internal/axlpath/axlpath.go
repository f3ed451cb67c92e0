// Package axlpath expands the $AXL_SETUPDB_DIR and $AXL_PROJECT_DIR
// macros that make setup database path fields relocatable.
package axlpath

import (
	"os"
	"sort"
	"strings"

	"github.com/adeutils/sdbtool/internal/setupdb"
)

// Macro names the format uses for relocatable paths.
const (
	MacroSetupDBDir = "AXL_SETUPDB_DIR"
	MacroProjectDir = "AXL_PROJECT_DIR"
)

// Resolver binds the AXL macros to concrete directories. Empty bindings
// leave the macro unexpanded so the caller can report it.
type Resolver struct {
	SetupDBDir string
	ProjectDir string
}

// FromEnv builds a resolver from the process environment.
func FromEnv() Resolver {
	return Resolver{
		SetupDBDir: os.Getenv(MacroSetupDBDir),
		ProjectDir: os.Getenv(MacroProjectDir),
	}
}

// lookup returns the binding for a macro name. Unknown names resolve to
// their literal "$NAME" form so foreign variables pass through intact.
func (r Resolver) lookup(name string) string {
	switch name {
	case MacroSetupDBDir:
		if r.SetupDBDir != "" {
			return r.SetupDBDir
		}
	case MacroProjectDir:
		if r.ProjectDir != "" {
			return r.ProjectDir
		}
	}
	return "$" + name
}

// Expand substitutes bound macros in s. Unbound and unknown macros stay
// literal.
func (r Resolver) Expand(s string) string {
	if !strings.Contains(s, "$") {
		return s
	}
	return os.Expand(s, r.lookup)
}

// Missing returns the AXL macros referenced by s that have no binding,
// sorted and de-duplicated.
func (r Resolver) Missing(s string) []string {
	seen := make(map[string]bool)
	os.Expand(s, func(name string) string {
		switch name {
		case MacroSetupDBDir:
			if r.SetupDBDir == "" {
				seen[name] = true
			}
		case MacroProjectDir:
			if r.ProjectDir == "" {
				seen[name] = true
			}
		}
		return ""
	})

	missing := make([]string, 0, len(seen))
	for name := range seen {
		missing = append(missing, name)
	}
	sort.Strings(missing)
	return missing
}

// PathField is one resolved path-valued field.
type PathField struct {
	Field    string   `json:"field"`
	Raw      string   `json:"raw"`
	Resolved string   `json:"resolved"`
	Missing  []string `json:"missing,omitempty"`
}

// EntryPaths resolves every path-valued field of a history entry.
func (r Resolver) EntryPaths(e *setupdb.HistoryEntry) []PathField {
	fields := []struct {
		name  string
		value string
	}{
		{"simresults", e.SimResults},
		{"localpsfdir", e.LocalPSFDir},
		{"remotepsfdir", e.RemotePSFDir},
		{"simdir", e.SimDir},
	}

	var out []PathField
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		out = append(out, r.pathField(f.name, f.value))
	}
	for _, lf := range e.LogFiles {
		out = append(out, r.pathField("logfile", lf))
	}
	return out
}

// SessionPaths resolves the path-valued tool options of every test in a
// session.
func (r Resolver) SessionPaths(s *setupdb.Session) []PathField {
	var out []PathField
	for _, t := range s.Tests.Entries {
		if path, ok := t.ToolOptions.Get("path"); ok && path != "" {
			out = append(out, r.pathField(t.Name+"/tooloptions/path", path))
		}
	}
	return out
}

func (r Resolver) pathField(name, value string) PathField {
	return PathField{
		Field:    name,
		Raw:      value,
		Resolved: r.Expand(value),
		Missing:  r.Missing(value),
	}
}
