package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestCatalogIndexRunsStats(t *testing.T) {
	path := writeSampleFile(t)
	t.Setenv("SDBTOOL_CATALOG", filepath.Join(t.TempDir(), "catalog.db"))

	out, err := runCommand(t, "catalog", "index", path)
	if err != nil {
		t.Fatalf("catalog index failed: %v", err)
	}
	if !strings.Contains(out, "1 runs") {
		t.Errorf("output = %q", out)
	}

	out, err = runCommand(t, "catalog", "runs")
	if err != nil {
		t.Fatalf("catalog runs failed: %v", err)
	}
	if !strings.Contains(out, "Interactive.0") || !strings.Contains(out, "Fri Jun 3 10:45:27 2016") {
		t.Errorf("runs output missing entry:\n%s", out)
	}

	out, err = runCommand(t, "catalog", "stats")
	if err != nil {
		t.Fatalf("catalog stats failed: %v", err)
	}
	for _, want := range []string{"files:", "1", "runs:", "Interactive.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestCatalogRunsFilters(t *testing.T) {
	path := writeSampleFile(t)
	t.Setenv("SDBTOOL_CATALOG", filepath.Join(t.TempDir(), "catalog.db"))

	if _, err := runCommand(t, "catalog", "index", path); err != nil {
		t.Fatalf("catalog index failed: %v", err)
	}

	out, err := runCommand(t, "catalog", "runs", "--json", "--test", "tb_tran")
	if err != nil {
		t.Fatalf("catalog runs --test failed: %v", err)
	}
	var result struct {
		Runs []struct {
			Name string `json:"name"`
		} `json:"runs"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if result.Count != 1 || result.Runs[0].Name != "Interactive.0" {
		t.Errorf("result = %+v", result)
	}

	out, err = runCommand(t, "catalog", "runs", "--json", "--name", "Sweep")
	if err != nil {
		t.Fatalf("catalog runs --name failed: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if result.Count != 0 {
		t.Errorf("expected no Sweep runs, got %+v", result)
	}
}
