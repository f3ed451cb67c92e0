// Package mcp provides an MCP (Model Context Protocol) server exposing
// setup database files to agent tooling.
package mcp

import (
	"github.com/adeutils/sdbtool/internal/axlpath"
	"github.com/adeutils/sdbtool/internal/validate"
)

// FileInput is the common input for tools operating on one file.
type FileInput struct {
	File string `json:"file" jsonschema:"Path to the setup database XML file"`
}

// SessionInput selects a session within a file.
type SessionInput struct {
	File    string `json:"file" jsonschema:"Path to the setup database XML file"`
	Session string `json:"session,omitempty" jsonschema:"Session to inspect: 'active' (default) or a history entry name"`
}

// DescribeOutput defines the output for sdb_describe.
type DescribeOutput struct {
	File         string `json:"file"`
	Version      string `json:"version" jsonschema:"setupdb format version attribute"`
	CurrentMode  string `json:"currentmode"`
	TestCount    int    `json:"test_count"`
	VarCount     int    `json:"var_count"`
	CornerCount  int    `json:"corner_count"`
	HistoryCount int    `json:"history_count"`
}

// TestSummary is one test of a session.
type TestSummary struct {
	Name    string            `json:"name"`
	Tool    string            `json:"tool"`
	Options map[string]string `json:"options" jsonschema:"Current tool option bindings (cell, lib, sim, view, path, state)"`
}

// TestsOutput defines the output for sdb_tests.
type TestsOutput struct {
	Session string        `json:"session"`
	Tests   []TestSummary `json:"tests"`
	Count   int           `json:"count"`
}

// VariableSummary is one design variable of a session.
type VariableSummary struct {
	Name           string            `json:"name"`
	Value          string            `json:"value" jsonschema:"Literal value string, possibly SI-suffixed"`
	Numeric        *float64          `json:"numeric,omitempty" jsonschema:"Parsed magnitude when the value is SI-numeric"`
	DependentTests map[string]string `json:"dependent_tests" jsonschema:"Test name to enabled flag literal"`
}

// VariablesOutput defines the output for sdb_variables.
type VariablesOutput struct {
	Session   string            `json:"session"`
	Variables []VariableSummary `json:"variables"`
	Count     int               `json:"count"`
}

// HistoryItem is one history entry's run metadata.
type HistoryItem struct {
	Name               string   `json:"name"`
	Timestamp          string   `json:"timestamp"`
	ResultsName        string   `json:"resultsname"`
	RawDataDelStrategy string   `json:"rawdatadelstrategy"`
	NetlistDelStrategy string   `json:"netlistdelstrategy"`
	SimDir             string   `json:"simdir"`
	GenDatasheet       string   `json:"gendatasheet" jsonschema:"Literal flag string as stored"`
	Tests              []string `json:"tests"`
}

// HistoryOutput defines the output for sdb_history.
type HistoryOutput struct {
	Entries []HistoryItem `json:"entries"`
	Count   int           `json:"count"`
}

// ValidateOutput defines the output for sdb_validate.
type ValidateOutput struct {
	Valid  bool             `json:"valid"`
	Issues []validate.Issue `json:"issues,omitempty"`
	Count  int              `json:"count" jsonschema:"Number of issues found"`
}

// ResolvePathsInput defines the input for sdb_resolve_paths.
type ResolvePathsInput struct {
	File  string `json:"file" jsonschema:"Path to the setup database XML file"`
	Entry string `json:"entry,omitempty" jsonschema:"History entry name; omit to resolve the active session's tool paths"`
}

// ResolvePathsOutput defines the output for sdb_resolve_paths.
type ResolvePathsOutput struct {
	Paths   []axlpath.PathField `json:"paths"`
	Missing []string            `json:"missing,omitempty" jsonschema:"AXL macros referenced but not bound"`
	Count   int                 `json:"count"`
}
