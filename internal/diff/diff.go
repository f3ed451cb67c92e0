// Package diff computes field-level differences between setup
// databases and sessions. Paths are slash-separated and mirror the
// document's element nesting, so a change reads like
// "active/vars/tsim/value: 5n -> 10n".
package diff

import (
	"fmt"

	"github.com/adeutils/sdbtool/internal/setupdb"
)

// Change is one differing field. Old or New is empty when the field
// exists on only one side.
type Change struct {
	Path string `json:"path"`
	Old  string `json:"old"`
	New  string `json:"new"`
}

// String renders the change for human output.
func (c Change) String() string {
	switch {
	case c.Old == "":
		return fmt.Sprintf("%s: added %q", c.Path, c.New)
	case c.New == "":
		return fmt.Sprintf("%s: removed %q", c.Path, c.Old)
	}
	return fmt.Sprintf("%s: %q -> %q", c.Path, c.Old, c.New)
}

// Databases compares two databases field by field: version, the active
// session, and the history entries by name.
func Databases(a, b *setupdb.SetupDatabase) []Change {
	var changes []Change

	changes = appendScalar(changes, "version", a.Version, b.Version)
	changes = append(changes, Sessions("active", a.Active, b.Active)...)

	// History entries pair up by name; order changes alone do not
	// count as differences.
	seen := make(map[string]bool)
	for i := range a.History.Entries {
		ea := &a.History.Entries[i]
		seen[ea.Name] = true
		prefix := "history/" + ea.Name
		eb := b.Entry(ea.Name)
		if eb == nil {
			changes = append(changes, Change{Path: prefix, Old: "present"})
			continue
		}
		changes = append(changes, entries(prefix, ea, eb)...)
	}
	for i := range b.History.Entries {
		eb := &b.History.Entries[i]
		if !seen[eb.Name] {
			changes = append(changes, Change{Path: "history/" + eb.Name, New: "present"})
		}
	}

	return changes
}

// Sessions compares two sessions under the given path prefix.
func Sessions(prefix string, a, b *setupdb.Session) []Change {
	var changes []Change

	changes = appendScalar(changes, prefix+"/currentmode", a.CurrentMode, b.CurrentMode)
	changes = appendScalar(changes, prefix+"/overwritehistory", string(a.OverwriteHistory), string(b.OverwriteHistory))
	changes = appendScalar(changes, prefix+"/overwritehistoryname", a.OverwriteHistoryName, b.OverwriteHistoryName)
	changes = appendScalar(changes, prefix+"/allvarsdisabled", string(a.AllVarsDisabled), string(b.AllVarsDisabled))

	changes = append(changes, corners(prefix+"/corners", a.Corners, b.Corners)...)
	changes = append(changes, extensions(prefix+"/extensions", a.Extensions, b.Extensions)...)
	changes = append(changes, tests(prefix+"/tests", a.Tests, b.Tests)...)
	changes = append(changes, vars(prefix+"/vars", a.Vars, b.Vars)...)
	changes = append(changes, options(prefix+"/plottingoptions", a.PlottingOptions, b.PlottingOptions)...)

	return changes
}

// Against compares the active session of db with the checkpoint of the
// named history entry, so "what changed since that run" is one call.
func Against(db *setupdb.SetupDatabase, name string) ([]Change, error) {
	entry := db.Entry(name)
	if entry == nil {
		return nil, fmt.Errorf("no history entry named %q", name)
	}
	return Sessions("active", &entry.Checkpoint, db.Active), nil
}

func appendScalar(changes []Change, path, old, new string) []Change {
	if old != new {
		changes = append(changes, Change{Path: path, Old: old, New: new})
	}
	return changes
}

func corners(prefix string, a, b setupdb.Corners) []Change {
	var changes []Change
	seen := make(map[string]bool)
	for _, ca := range a.Entries {
		seen[ca.Name] = true
		found := false
		for _, cb := range b.Entries {
			if cb.Name == ca.Name {
				found = true
				changes = appendScalar(changes, prefix+"/"+ca.Name+"/enabled", string(ca.Enabled), string(cb.Enabled))
				break
			}
		}
		if !found {
			changes = append(changes, Change{Path: prefix + "/" + ca.Name, Old: "present"})
		}
	}
	for _, cb := range b.Entries {
		if !seen[cb.Name] {
			changes = append(changes, Change{Path: prefix + "/" + cb.Name, New: "present"})
		}
	}
	return changes
}

func extensions(prefix string, a, b setupdb.Extensions) []Change {
	var changes []Change
	seen := make(map[string]bool)
	for _, ea := range a.Entries {
		seen[ea.Name] = true
		found := false
		for _, eb := range b.Entries {
			if eb.Name == ea.Name {
				found = true
				changes = appendScalar(changes, prefix+"/"+ea.Name+"/callback", ea.Callback, eb.Callback)
				changes = appendScalar(changes, prefix+"/"+ea.Name+"/iconvalue", ea.IconValue, eb.IconValue)
				break
			}
		}
		if !found {
			changes = append(changes, Change{Path: prefix + "/" + ea.Name, Old: "present"})
		}
	}
	for _, eb := range b.Entries {
		if !seen[eb.Name] {
			changes = append(changes, Change{Path: prefix + "/" + eb.Name, New: "present"})
		}
	}
	return changes
}

func tests(prefix string, a, b setupdb.Tests) []Change {
	var changes []Change
	seen := make(map[string]bool)
	for i := range a.Entries {
		ta := &a.Entries[i]
		seen[ta.Name] = true
		var tb *setupdb.Test
		for j := range b.Entries {
			if b.Entries[j].Name == ta.Name {
				tb = &b.Entries[j]
				break
			}
		}
		if tb == nil {
			changes = append(changes, Change{Path: prefix + "/" + ta.Name, Old: "present"})
			continue
		}
		p := prefix + "/" + ta.Name
		changes = appendScalar(changes, p+"/tool", ta.Tool, tb.Tool)
		changes = append(changes, options(p+"/tooloptions", ta.ToolOptions, tb.ToolOptions)...)
		changes = append(changes, options(p+"/origoptions", ta.OrigOptions, tb.OrigOptions)...)
	}
	for i := range b.Entries {
		if !seen[b.Entries[i].Name] {
			changes = append(changes, Change{Path: prefix + "/" + b.Entries[i].Name, New: "present"})
		}
	}
	return changes
}

func vars(prefix string, a, b setupdb.Vars) []Change {
	var changes []Change
	seen := make(map[string]bool)
	for i := range a.Entries {
		va := &a.Entries[i]
		seen[va.Name] = true
		var vb *setupdb.Variable
		for j := range b.Entries {
			if b.Entries[j].Name == va.Name {
				vb = &b.Entries[j]
				break
			}
		}
		if vb == nil {
			changes = append(changes, Change{Path: prefix + "/" + va.Name, Old: "present"})
			continue
		}
		p := prefix + "/" + va.Name
		changes = appendScalar(changes, p+"/value", va.Value, vb.Value)
		changes = append(changes, dependentTests(p+"/dependentTests", va.DependentTests, vb.DependentTests)...)
	}
	for i := range b.Entries {
		if !seen[b.Entries[i].Name] {
			changes = append(changes, Change{Path: prefix + "/" + b.Entries[i].Name, New: "present"})
		}
	}
	return changes
}

func dependentTests(prefix string, a, b setupdb.DependentTests) []Change {
	var changes []Change
	seen := make(map[string]bool)
	for _, da := range a.Entries {
		seen[da.Name] = true
		found := false
		for _, db := range b.Entries {
			if db.Name == da.Name {
				found = true
				changes = appendScalar(changes, prefix+"/"+da.Name+"/enabled", string(da.Enabled), string(db.Enabled))
				break
			}
		}
		if !found {
			changes = append(changes, Change{Path: prefix + "/" + da.Name, Old: "present"})
		}
	}
	for _, db := range b.Entries {
		if !seen[db.Name] {
			changes = append(changes, Change{Path: prefix + "/" + db.Name, New: "present"})
		}
	}
	return changes
}

func options(prefix string, a, b setupdb.Options) []Change {
	var changes []Change
	seen := make(map[string]bool)
	for _, oa := range a.Entries {
		seen[oa.Name] = true
		if vb, ok := b.Get(oa.Name); ok {
			changes = appendScalar(changes, prefix+"/"+oa.Name, oa.Value, vb)
		} else {
			changes = append(changes, Change{Path: prefix + "/" + oa.Name, Old: oa.Value})
		}
	}
	for _, ob := range b.Entries {
		if !seen[ob.Name] {
			changes = append(changes, Change{Path: prefix + "/" + ob.Name, New: ob.Value})
		}
	}
	return changes
}

// entries compares two history entries' metadata and checkpoints.
func entries(prefix string, a, b *setupdb.HistoryEntry) []Change {
	var changes []Change

	changes = appendScalar(changes, prefix+"/timestamp", a.Timestamp, b.Timestamp)
	changes = appendScalar(changes, prefix+"/resultsname", a.ResultsName, b.ResultsName)
	changes = appendScalar(changes, prefix+"/simresults", a.SimResults, b.SimResults)
	changes = appendScalar(changes, prefix+"/rawdatadelstrategy", a.RawDataDelStrategy, b.RawDataDelStrategy)
	changes = appendScalar(changes, prefix+"/netlistdelstrategy", a.NetlistDelStrategy, b.NetlistDelStrategy)
	changes = appendScalar(changes, prefix+"/localpsfdir", a.LocalPSFDir, b.LocalPSFDir)
	changes = appendScalar(changes, prefix+"/remotepsfdir", a.RemotePSFDir, b.RemotePSFDir)
	changes = appendScalar(changes, prefix+"/simdir", a.SimDir, b.SimDir)
	changes = appendScalar(changes, prefix+"/gendatasheet", string(a.GenDatasheet), string(b.GenDatasheet))
	changes = appendScalar(changes, prefix+"/schematicpoint", a.SchematicPoint, b.SchematicPoint)

	changes = append(changes, stringList(prefix+"/logfile", a.LogFiles, b.LogFiles)...)
	changes = append(changes, stringList(prefix+"/test", a.Tests, b.Tests)...)

	changes = append(changes, Sessions(prefix+"/checkpoint", &a.Checkpoint, &b.Checkpoint)...)

	return changes
}

func stringList(prefix string, a, b []string) []Change {
	var changes []Change
	seen := make(map[string]bool)
	for _, va := range a {
		seen[va] = true
		found := false
		for _, vb := range b {
			if vb == va {
				found = true
				break
			}
		}
		if !found {
			changes = append(changes, Change{Path: prefix, Old: va})
		}
	}
	for _, vb := range b {
		if !seen[vb] {
			changes = append(changes, Change{Path: prefix, New: vb})
		}
	}
	return changes
}
