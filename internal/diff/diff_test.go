package diff

import (
	"testing"

	"github.com/adeutils/sdbtool/internal/setupdb"
)

func baseSession() setupdb.Session {
	return setupdb.Session{
		Corners: setupdb.Corners{Entries: []setupdb.Corner{
			{Enabled: "1", Name: "tt_25"},
			{Enabled: "0", Name: "ff_m40"},
		}},
		CurrentMode:      "Single Run, Sweeps and Corners",
		OverwriteHistory: "0",
		Tests: setupdb.Tests{Entries: []setupdb.Test{
			{
				Name: "tb_tran",
				Tool: "ADE",
				ToolOptions: setupdb.Options{Entries: []setupdb.Option{
					{Name: "cell", Value: "gm_tb"},
					{Name: "lib", Value: "GM_LIB"},
				}},
			},
		}},
		Vars: setupdb.Vars{Entries: []setupdb.Variable{
			{
				Name:  "tsim",
				Value: "5n",
				DependentTests: setupdb.DependentTests{Entries: []setupdb.DependentTest{
					{Enabled: "1", Name: "tb_tran"},
				}},
			},
			{Name: "vdd", Value: "1.0"},
		}},
		AllVarsDisabled: "0",
	}
}

func baseDB() *setupdb.SetupDatabase {
	active := baseSession()
	return &setupdb.SetupDatabase{
		Version: "1.1",
		Active:  &active,
		History: &setupdb.History{Entries: []setupdb.HistoryEntry{
			{
				Name:               "Interactive.0",
				Checkpoint:         baseSession(),
				Timestamp:          "Fri Jun 3 10:45:27 2016",
				RawDataDelStrategy: "SaveAll",
				LogFiles:           []string{"$AXL_SETUPDB_DIR/psf/logFile"},
			},
		}},
	}
}

func findChange(changes []Change, path string) (Change, bool) {
	for _, c := range changes {
		if c.Path == path {
			return c, true
		}
	}
	return Change{}, false
}

func TestDatabasesIdentical(t *testing.T) {
	if changes := Databases(baseDB(), baseDB()); len(changes) != 0 {
		t.Errorf("identical databases differ: %v", changes)
	}
}

func TestDatabasesVarChange(t *testing.T) {
	a, b := baseDB(), baseDB()
	b.Active.Vars.Entries[0].Value = "10n"

	changes := Databases(a, b)
	c, ok := findChange(changes, "active/vars/tsim/value")
	if !ok {
		t.Fatalf("missing change for tsim value, got %v", changes)
	}
	if c.Old != "5n" || c.New != "10n" {
		t.Errorf("change = %+v, want 5n -> 10n", c)
	}
}

func TestDatabasesCornerToggle(t *testing.T) {
	a, b := baseDB(), baseDB()
	b.Active.Corners.Entries[1].Enabled = "1"

	changes := Databases(a, b)
	c, ok := findChange(changes, "active/corners/ff_m40/enabled")
	if !ok {
		t.Fatalf("missing corner change, got %v", changes)
	}
	if c.Old != "0" || c.New != "1" {
		t.Errorf("change = %+v, want 0 -> 1", c)
	}
}

func TestDatabasesAddedVar(t *testing.T) {
	a, b := baseDB(), baseDB()
	b.Active.Vars.Entries = append(b.Active.Vars.Entries, setupdb.Variable{Name: "cload", Value: "20f"})

	changes := Databases(a, b)
	c, ok := findChange(changes, "active/vars/cload")
	if !ok {
		t.Fatalf("missing added-var change, got %v", changes)
	}
	if c.Old != "" || c.New != "present" {
		t.Errorf("change = %+v, want added", c)
	}
}

func TestDatabasesHistoryEntryRemoved(t *testing.T) {
	a, b := baseDB(), baseDB()
	b.History.Entries = nil

	changes := Databases(a, b)
	c, ok := findChange(changes, "history/Interactive.0")
	if !ok {
		t.Fatalf("missing removed-entry change, got %v", changes)
	}
	if c.Old != "present" {
		t.Errorf("change = %+v, want removed", c)
	}
}

func TestDatabasesHistoryMetadata(t *testing.T) {
	a, b := baseDB(), baseDB()
	b.History.Entries[0].RawDataDelStrategy = "DeleteAll"
	b.History.Entries[0].LogFiles = []string{"$AXL_SETUPDB_DIR/psf/otherLog"}

	changes := Databases(a, b)
	if _, ok := findChange(changes, "history/Interactive.0/rawdatadelstrategy"); !ok {
		t.Errorf("missing rawdatadelstrategy change, got %v", changes)
	}

	// logfile list changes appear as one removal and one addition.
	removed, added := false, false
	for _, c := range changes {
		if c.Path == "history/Interactive.0/logfile" {
			if c.Old != "" {
				removed = true
			}
			if c.New != "" {
				added = true
			}
		}
	}
	if !removed || !added {
		t.Errorf("logfile change missing (removed=%t added=%t): %v", removed, added, changes)
	}
}

func TestAgainst(t *testing.T) {
	db := baseDB()
	db.Active.Vars.Entries[0].Value = "10n"

	changes, err := Against(db, "Interactive.0")
	if err != nil {
		t.Fatalf("Against failed: %v", err)
	}
	c, ok := findChange(changes, "active/vars/tsim/value")
	if !ok {
		t.Fatalf("missing tsim change, got %v", changes)
	}
	// The checkpoint is the old side, the active session the new.
	if c.Old != "5n" || c.New != "10n" {
		t.Errorf("change = %+v, want 5n -> 10n", c)
	}
}

func TestAgainstUnknownEntry(t *testing.T) {
	if _, err := Against(baseDB(), "Interactive.9"); err == nil {
		t.Error("expected error for unknown history entry")
	}
}

func TestChangeString(t *testing.T) {
	tests := []struct {
		change Change
		want   string
	}{
		{Change{Path: "active/vars/tsim/value", Old: "5n", New: "10n"}, `active/vars/tsim/value: "5n" -> "10n"`},
		{Change{Path: "active/vars/cload", New: "present"}, `active/vars/cload: added "present"`},
		{Change{Path: "history/Interactive.0", Old: "present"}, `history/Interactive.0: removed "present"`},
	}
	for _, tt := range tests {
		if got := tt.change.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
