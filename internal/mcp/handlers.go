package mcp

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/adeutils/sdbtool/internal/setupdb"
	"github.com/adeutils/sdbtool/internal/si"
	"github.com/adeutils/sdbtool/internal/validate"
)

// registerTools registers all sdbtool MCP tools with the server.
func (s *Server) registerTools() error {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "sdb_describe",
		Description: "Summarize a setup database file: format version, mode, and element counts",
	}, s.handleDescribe)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "sdb_tests",
		Description: "List the tests of a session with their tool and option bindings",
	}, s.handleTests)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "sdb_variables",
		Description: "List the design variables of a session with parsed SI magnitudes",
	}, s.handleVariables)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "sdb_history",
		Description: "List the saved runs of a setup database with their run metadata",
	}, s.handleHistory)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "sdb_validate",
		Description: "Check a setup database for consistency issues (dangling test references, empty bindings, bad flag literals)",
	}, s.handleValidate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "sdb_resolve_paths",
		Description: "Expand the $AXL_SETUPDB_DIR / $AXL_PROJECT_DIR macros in a database's path fields",
	}, s.handleResolvePaths)

	return nil
}

// registerResources registers MCP resources for direct document access.
func (s *Server) registerResources() error {
	s.server.AddResourceTemplate(&sdk.ResourceTemplate{
		URITemplate: "setupdb://{path}",
		Name:        "setupdb-document",
		Description: "A setup database file rendered as a markdown summary. Use the sdb_* tools for structured access.",
		MIMEType:    "text/markdown",
	}, s.handleDocumentResource)

	return nil
}

// load decodes the database at path, shaping decode failures for tool
// results.
func (s *Server) load(path string) (*setupdb.SetupDatabase, error) {
	if path == "" {
		return nil, fmt.Errorf("file path is required")
	}
	db, err := setupdb.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load setup database: %w", err)
	}
	return db, nil
}

// session selects the active session or a history checkpoint by name.
func session(db *setupdb.SetupDatabase, name string) (*setupdb.Session, string, error) {
	if name == "" || name == "active" {
		return db.Active, "active", nil
	}
	entry := db.Entry(name)
	if entry == nil {
		return nil, "", fmt.Errorf("no session named %q (use 'active' or a history entry name)", name)
	}
	return &entry.Checkpoint, "history/" + name, nil
}

func (s *Server) handleDescribe(ctx context.Context, req *sdk.CallToolRequest, args FileInput) (*sdk.CallToolResult, DescribeOutput, error) {
	db, err := s.load(args.File)
	if err != nil {
		return nil, DescribeOutput{}, err
	}

	return nil, DescribeOutput{
		File:         args.File,
		Version:      db.Version,
		CurrentMode:  db.Active.CurrentMode,
		TestCount:    len(db.Active.Tests.Entries),
		VarCount:     len(db.Active.Vars.Entries),
		CornerCount:  len(db.Active.Corners.Entries),
		HistoryCount: len(db.History.Entries),
	}, nil
}

func (s *Server) handleTests(ctx context.Context, req *sdk.CallToolRequest, args SessionInput) (*sdk.CallToolResult, TestsOutput, error) {
	db, err := s.load(args.File)
	if err != nil {
		return nil, TestsOutput{}, err
	}
	sess, label, err := session(db, args.Session)
	if err != nil {
		return nil, TestsOutput{}, err
	}

	tests := make([]TestSummary, 0, len(sess.Tests.Entries))
	for _, t := range sess.Tests.Entries {
		options := make(map[string]string, len(t.ToolOptions.Entries))
		for _, opt := range t.ToolOptions.Entries {
			options[opt.Name] = opt.Value
		}
		tests = append(tests, TestSummary{
			Name:    t.Name,
			Tool:    t.Tool,
			Options: options,
		})
	}

	return nil, TestsOutput{
		Session: label,
		Tests:   tests,
		Count:   len(tests),
	}, nil
}

func (s *Server) handleVariables(ctx context.Context, req *sdk.CallToolRequest, args SessionInput) (*sdk.CallToolResult, VariablesOutput, error) {
	db, err := s.load(args.File)
	if err != nil {
		return nil, VariablesOutput{}, err
	}
	sess, label, err := session(db, args.Session)
	if err != nil {
		return nil, VariablesOutput{}, err
	}

	vars := make([]VariableSummary, 0, len(sess.Vars.Entries))
	for _, v := range sess.Vars.Entries {
		deps := make(map[string]string, len(v.DependentTests.Entries))
		for _, dt := range v.DependentTests.Entries {
			deps[dt.Name] = string(dt.Enabled)
		}
		summary := VariableSummary{
			Name:           v.Name,
			Value:          v.Value,
			DependentTests: deps,
		}
		if num, err := si.Parse(v.Value); err == nil {
			summary.Numeric = &num
		}
		vars = append(vars, summary)
	}

	return nil, VariablesOutput{
		Session:   label,
		Variables: vars,
		Count:     len(vars),
	}, nil
}

func (s *Server) handleHistory(ctx context.Context, req *sdk.CallToolRequest, args FileInput) (*sdk.CallToolResult, HistoryOutput, error) {
	db, err := s.load(args.File)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	entries := make([]HistoryItem, 0, len(db.History.Entries))
	for i := range db.History.Entries {
		e := &db.History.Entries[i]
		entries = append(entries, HistoryItem{
			Name:               e.Name,
			Timestamp:          e.Timestamp,
			ResultsName:        e.ResultsName,
			RawDataDelStrategy: e.RawDataDelStrategy,
			NetlistDelStrategy: e.NetlistDelStrategy,
			SimDir:             e.SimDir,
			GenDatasheet:       string(e.GenDatasheet),
			Tests:              e.Tests,
		})
	}

	return nil, HistoryOutput{
		Entries: entries,
		Count:   len(entries),
	}, nil
}

func (s *Server) handleValidate(ctx context.Context, req *sdk.CallToolRequest, args FileInput) (*sdk.CallToolResult, ValidateOutput, error) {
	db, err := s.load(args.File)
	if err != nil {
		return nil, ValidateOutput{}, err
	}

	issues := validate.Check(db)
	return nil, ValidateOutput{
		Valid:  len(issues) == 0,
		Issues: issues,
		Count:  len(issues),
	}, nil
}

func (s *Server) handleResolvePaths(ctx context.Context, req *sdk.CallToolRequest, args ResolvePathsInput) (*sdk.CallToolResult, ResolvePathsOutput, error) {
	db, err := s.load(args.File)
	if err != nil {
		return nil, ResolvePathsOutput{}, err
	}

	fields := s.resolver.SessionPaths(db.Active)
	if args.Entry != "" {
		entry := db.Entry(args.Entry)
		if entry == nil {
			return nil, ResolvePathsOutput{}, fmt.Errorf("no history entry named %q", args.Entry)
		}
		fields = s.resolver.EntryPaths(entry)
	}

	missingSet := make(map[string]bool)
	for _, f := range fields {
		for _, m := range f.Missing {
			missingSet[m] = true
		}
	}
	missing := make([]string, 0, len(missingSet))
	for _, name := range []string{"AXL_PROJECT_DIR", "AXL_SETUPDB_DIR"} {
		if missingSet[name] {
			missing = append(missing, name)
		}
	}

	return nil, ResolvePathsOutput{
		Paths:   fields,
		Missing: missing,
		Count:   len(fields),
	}, nil
}

// handleDocumentResource renders a setup database as markdown for
// direct loading into agent context.
func (s *Server) handleDocumentResource(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
	uri := req.Params.URI
	const prefix = "setupdb://"
	if !strings.HasPrefix(uri, prefix) {
		return nil, fmt.Errorf("invalid URI format: %s", uri)
	}
	path := strings.TrimPrefix(uri, prefix)
	if path == "" {
		return nil, fmt.Errorf("file path is required")
	}

	db, err := s.load(path)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Setup Database: %s\n\n", path)
	fmt.Fprintf(&sb, "**Format version:** %s\n", db.Version)
	fmt.Fprintf(&sb, "**Mode:** %s\n\n", db.Active.CurrentMode)

	sb.WriteString("## Tests\n\n")
	for _, t := range db.Active.Tests.Entries {
		cell, _ := t.ToolOptions.Get("cell")
		lib, _ := t.ToolOptions.Get("lib")
		simulator, _ := t.ToolOptions.Get("sim")
		fmt.Fprintf(&sb, "- **%s** (%s): %s/%s, simulator %s\n", t.Name, t.Tool, lib, cell, simulator)
	}

	sb.WriteString("\n## Variables\n\n")
	for _, v := range db.Active.Vars.Entries {
		fmt.Fprintf(&sb, "- %s = %s\n", v.Name, v.Value)
	}

	sb.WriteString("\n## History\n\n")
	for i := range db.History.Entries {
		e := &db.History.Entries[i]
		fmt.Fprintf(&sb, "- **%s** at %s (raw data: %s)\n", e.Name, e.Timestamp, e.RawDataDelStrategy)
	}

	return &sdk.ReadResourceResult{
		Contents: []*sdk.ResourceContents{
			{
				URI:      uri,
				MIMEType: "text/markdown",
				Text:     sb.String(),
			},
		},
	}, nil
}
