package mcp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/adeutils/sdbtool/internal/axlpath"
	"github.com/adeutils/sdbtool/internal/setupdb"
)

// writeSample encodes a representative database to a temp file and
// returns its path.
func writeSample(t *testing.T) string {
	t.Helper()

	active := setupdb.Session{
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
					{Name: "sim", Value: "spectre"},
					{Name: "path", Value: "$AXL_PROJECT_DIR/simulation"},
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

	db := &setupdb.SetupDatabase{
		Version: "1.1",
		Active:  &active,
		History: &setupdb.History{Entries: []setupdb.HistoryEntry{
			{
				Name:               "Interactive.0",
				Checkpoint:         active,
				Timestamp:          "Fri Jun 3 10:45:27 2016",
				ResultsName:        "Interactive.0",
				SimResults:         "$AXL_SETUPDB_DIR/results/data/Interactive.0",
				RawDataDelStrategy: "SaveAll",
				LocalPSFDir:        "$AXL_SETUPDB_DIR/test_states/tb_tran/psf",
				GenDatasheet:       "true",
				Tests:              []string{"tb_tran"},
			},
		}},
	}

	path := filepath.Join(t.TempDir(), "gm_tb_tran.sdb")
	if err := setupdb.WriteFile(path, db); err != nil {
		t.Fatalf("writing sample: %v", err)
	}
	return path
}

func testServer(t *testing.T, resolver axlpath.Resolver) *Server {
	t.Helper()
	server, err := NewServer(&Config{
		Name:     "test-server",
		Version:  "v1.0.0",
		Resolver: resolver,
	})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server
}

func TestHandleDescribe(t *testing.T) {
	server := testServer(t, axlpath.Resolver{})
	path := writeSample(t)

	_, out, err := server.handleDescribe(context.Background(), nil, FileInput{File: path})
	if err != nil {
		t.Fatalf("handleDescribe failed: %v", err)
	}

	if out.Version != "1.1" {
		t.Errorf("Version = %q, want 1.1", out.Version)
	}
	if out.TestCount != 1 || out.VarCount != 2 || out.CornerCount != 2 {
		t.Errorf("counts = %d/%d/%d, want 1/2/2", out.TestCount, out.VarCount, out.CornerCount)
	}
	if out.HistoryCount != 1 {
		t.Errorf("HistoryCount = %d, want 1", out.HistoryCount)
	}
}

func TestHandleDescribeMissingFile(t *testing.T) {
	server := testServer(t, axlpath.Resolver{})

	_, _, err := server.handleDescribe(context.Background(), nil, FileInput{File: "/nonexistent.sdb"})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestHandleTests(t *testing.T) {
	server := testServer(t, axlpath.Resolver{})
	path := writeSample(t)

	_, out, err := server.handleTests(context.Background(), nil, SessionInput{File: path})
	if err != nil {
		t.Fatalf("handleTests failed: %v", err)
	}

	if out.Session != "active" {
		t.Errorf("Session = %q, want active", out.Session)
	}
	if out.Count != 1 {
		t.Fatalf("Count = %d, want 1", out.Count)
	}
	test := out.Tests[0]
	if test.Name != "tb_tran" || test.Tool != "ADE" {
		t.Errorf("test = %+v", test)
	}
	if test.Options["cell"] != "gm_tb" || test.Options["lib"] != "GM_LIB" {
		t.Errorf("options = %v", test.Options)
	}
}

func TestHandleTestsCheckpointSession(t *testing.T) {
	server := testServer(t, axlpath.Resolver{})
	path := writeSample(t)

	_, out, err := server.handleTests(context.Background(), nil, SessionInput{File: path, Session: "Interactive.0"})
	if err != nil {
		t.Fatalf("handleTests failed: %v", err)
	}
	if out.Session != "history/Interactive.0" {
		t.Errorf("Session = %q, want history/Interactive.0", out.Session)
	}
	if out.Count != 1 {
		t.Errorf("Count = %d, want 1", out.Count)
	}

	_, _, err = server.handleTests(context.Background(), nil, SessionInput{File: path, Session: "Interactive.9"})
	if err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestHandleVariables(t *testing.T) {
	server := testServer(t, axlpath.Resolver{})
	path := writeSample(t)

	_, out, err := server.handleVariables(context.Background(), nil, SessionInput{File: path})
	if err != nil {
		t.Fatalf("handleVariables failed: %v", err)
	}

	if out.Count != 2 {
		t.Fatalf("Count = %d, want 2", out.Count)
	}

	tsim := out.Variables[0]
	if tsim.Name != "tsim" || tsim.Value != "5n" {
		t.Errorf("tsim = %+v", tsim)
	}
	if tsim.Numeric == nil || *tsim.Numeric != 5e-9 {
		t.Errorf("tsim.Numeric = %v, want 5e-9", tsim.Numeric)
	}
	if tsim.DependentTests["tb_tran"] != "1" {
		t.Errorf("tsim dependent tests = %v", tsim.DependentTests)
	}
}

func TestHandleHistory(t *testing.T) {
	server := testServer(t, axlpath.Resolver{})
	path := writeSample(t)

	_, out, err := server.handleHistory(context.Background(), nil, FileInput{File: path})
	if err != nil {
		t.Fatalf("handleHistory failed: %v", err)
	}

	if out.Count != 1 {
		t.Fatalf("Count = %d, want 1", out.Count)
	}
	entry := out.Entries[0]
	if entry.Name != "Interactive.0" {
		t.Errorf("Name = %q", entry.Name)
	}
	if entry.Timestamp != "Fri Jun 3 10:45:27 2016" {
		t.Errorf("Timestamp = %q", entry.Timestamp)
	}
	if entry.RawDataDelStrategy != "SaveAll" {
		t.Errorf("RawDataDelStrategy = %q", entry.RawDataDelStrategy)
	}
	if entry.GenDatasheet != "true" {
		t.Errorf("GenDatasheet = %q, want the literal string true", entry.GenDatasheet)
	}
}

func TestHandleValidate(t *testing.T) {
	server := testServer(t, axlpath.Resolver{})
	path := writeSample(t)

	_, out, err := server.handleValidate(context.Background(), nil, FileInput{File: path})
	if err != nil {
		t.Fatalf("handleValidate failed: %v", err)
	}
	if !out.Valid || out.Count != 0 {
		t.Errorf("expected a valid database, got %+v", out)
	}
}

func TestHandleResolvePaths(t *testing.T) {
	server := testServer(t, axlpath.Resolver{ProjectDir: "/proj/gm"})
	path := writeSample(t)

	// Active session: the test's path tool option.
	_, out, err := server.handleResolvePaths(context.Background(), nil, ResolvePathsInput{File: path})
	if err != nil {
		t.Fatalf("handleResolvePaths failed: %v", err)
	}
	if out.Count != 1 {
		t.Fatalf("Count = %d, want 1", out.Count)
	}
	if out.Paths[0].Resolved != "/proj/gm/simulation" {
		t.Errorf("Resolved = %q", out.Paths[0].Resolved)
	}

	// History entry: SETUPDB_DIR is unbound and must be reported.
	_, out, err = server.handleResolvePaths(context.Background(), nil, ResolvePathsInput{File: path, Entry: "Interactive.0"})
	if err != nil {
		t.Fatalf("handleResolvePaths failed: %v", err)
	}
	if len(out.Missing) != 1 || out.Missing[0] != "AXL_SETUPDB_DIR" {
		t.Errorf("Missing = %v, want [AXL_SETUPDB_DIR]", out.Missing)
	}
}

func TestHandleDocumentResource(t *testing.T) {
	server := testServer(t, axlpath.Resolver{})
	path := writeSample(t)

	req := &sdk.ReadResourceRequest{Params: &sdk.ReadResourceParams{URI: "setupdb://" + path}}
	result, err := server.handleDocumentResource(context.Background(), req)
	if err != nil {
		t.Fatalf("handleDocumentResource failed: %v", err)
	}

	if len(result.Contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(result.Contents))
	}
	text := result.Contents[0].Text
	for _, want := range []string{"tb_tran", "tsim = 5n", "Interactive.0", "SaveAll"} {
		if !strings.Contains(text, want) {
			t.Errorf("resource text missing %q:\n%s", want, text)
		}
	}
}

func TestHandleDocumentResourceBadURI(t *testing.T) {
	server := testServer(t, axlpath.Resolver{})

	req := &sdk.ReadResourceRequest{Params: &sdk.ReadResourceParams{URI: "file:///etc/passwd"}}
	if _, err := server.handleDocumentResource(context.Background(), req); err == nil {
		t.Error("expected error for non-setupdb URI")
	}
}
