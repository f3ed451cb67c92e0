package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestHistoryList(t *testing.T) {
	path := writeSampleFile(t)

	out, err := runCommand(t, "history", "list", path)
	if err != nil {
		t.Fatalf("history list failed: %v", err)
	}
	for _, want := range []string{"Interactive.0", "Fri Jun 3 10:45:27 2016", "SaveAll", "tb_tran"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHistoryShow(t *testing.T) {
	path := writeSampleFile(t)

	out, err := runCommand(t, "history", "show", path, "Interactive.0")
	if err != nil {
		t.Fatalf("history show failed: %v", err)
	}
	for _, want := range []string{
		"History entry Interactive.0",
		"raw=SaveAll netlist=SaveLatest",
		"datasheet: true",
		"tsim = 10n",
		"corner tt_25: enabled",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHistoryShowJSON(t *testing.T) {
	path := writeSampleFile(t)

	out, err := runCommand(t, "history", "show", "--json", path, "Interactive.0")
	if err != nil {
		t.Fatalf("history show --json failed: %v", err)
	}

	var entry struct {
		Name      string `json:"name"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal([]byte(out), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry.Name != "Interactive.0" || entry.Timestamp != "Fri Jun 3 10:45:27 2016" {
		t.Errorf("entry = %+v", entry)
	}
}

func TestHistoryShowUnknown(t *testing.T) {
	path := writeSampleFile(t)

	if _, err := runCommand(t, "history", "show", path, "Interactive.9"); err == nil {
		t.Error("expected error for unknown entry")
	}
}
