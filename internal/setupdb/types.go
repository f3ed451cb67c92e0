// Package setupdb decodes and encodes ADE/AXL setup database documents.
// A setup database is the XML dump the assembler environment writes to
// persist a testbench session: corner selections, tool options, design
// variables, and a history of prior interactive runs.
package setupdb

import (
	"encoding/xml"
	"fmt"
)

// Flag is a boolean-like field kept as its literal source string.
// The format mixes the "0"/"1" and "true"/"false" conventions within a
// single document and the producing tool's expectations are unknown, so
// values round-trip verbatim instead of being normalized to bool.
type Flag string

// Bool interprets the flag literal. It accepts the four literals the
// format uses: "0", "1", "true", "false".
func (f Flag) Bool() (bool, error) {
	switch f {
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean literal: %q", string(f))
}

// IsTrue reports whether the flag holds a true literal.
// Unrecognized literals read as false.
func (f Flag) IsTrue() bool {
	b, err := f.Bool()
	return err == nil && b
}

// WithBool returns the literal for v written in the convention f already
// uses, so edits don't flip a field between the "0"/"1" and
// "true"/"false" styles. Fields without a recognizable convention get
// the numeric one.
func (f Flag) WithBool(v bool) Flag {
	if f == "true" || f == "false" {
		if v {
			return "true"
		}
		return "false"
	}
	if v {
		return "1"
	}
	return "0"
}

// SetupDatabase is the root of a setup database document: the active
// session plus the log of prior runs.
type SetupDatabase struct {
	XMLName xml.Name `xml:"setupdb" json:"-" yaml:"-"`
	Version string   `xml:"version,attr" json:"version" yaml:"version"`
	Active  *Session `xml:"active" json:"active" yaml:"active"`
	History *History `xml:"history" json:"history" yaml:"history"`
}

// Session is the full testbench state. The same shape serves both the
// active session and each history entry's checkpoint.
type Session struct {
	Corners              Corners    `xml:"corners" json:"corners" yaml:"corners"`
	Extensions           Extensions `xml:"extensions" json:"extensions" yaml:"extensions"`
	CurrentMode          string     `xml:"currentmode" json:"currentmode" yaml:"currentmode"`
	OverwriteHistory     Flag       `xml:"overwritehistory" json:"overwritehistory" yaml:"overwritehistory"`
	Tests                Tests      `xml:"tests" json:"tests" yaml:"tests"`
	Vars                 Vars       `xml:"vars" json:"vars" yaml:"vars"`
	OverwriteHistoryName string     `xml:"overwritehistoryname" json:"overwritehistoryname" yaml:"overwritehistoryname"`
	PlottingOptions      Options    `xml:"plottingoptions" json:"plottingoptions" yaml:"plottingoptions"`
	AllVarsDisabled      Flag       `xml:"allvarsdisabled" json:"allvarsdisabled" yaml:"allvarsdisabled"`
}

// Corners is the ordered set of process/voltage/temperature corners.
type Corners struct {
	Entries []Corner `xml:"corner" json:"entries" yaml:"entries"`
}

// Corner is a named simulation condition with an enabled flag.
type Corner struct {
	Enabled Flag   `xml:"enabled,attr" json:"enabled" yaml:"enabled"`
	Name    string `xml:"name" json:"name" yaml:"name"`
}

// Extensions holds the session's registered extension hooks.
type Extensions struct {
	Entries []Extension `xml:"extension" json:"entries" yaml:"entries"`
}

// Extension is a named callback hook. IconValue is empty in practice.
type Extension struct {
	Name      string `xml:"name" json:"name" yaml:"name"`
	Callback  string `xml:"callback" json:"callback" yaml:"callback"`
	IconValue string `xml:"iconvalue" json:"iconvalue" yaml:"iconvalue"`
}

// Tests is the ordered sequence of testbench tests.
type Tests struct {
	Entries []Test `xml:"test" json:"entries" yaml:"entries"`
}

// Test is one simulation setup: the owning tool plus its option blocks.
// ToolOptions carries the current bindings, OrigOptions the bindings the
// test was created with.
type Test struct {
	Name        string  `xml:"name" json:"name" yaml:"name"`
	Tool        string  `xml:"tool" json:"tool" yaml:"tool"`
	ToolOptions Options `xml:"tooloptions" json:"tooloptions" yaml:"tooloptions"`
	OrigOptions Options `xml:"origoptions" json:"origoptions" yaml:"origoptions"`
}

// Options is an ordered name→value mapping (tooloptions, origoptions,
// plottingoptions all share this shape).
type Options struct {
	Entries []Option `xml:"option" json:"entries" yaml:"entries"`
}

// Option is a single name/value pair inside an option block.
type Option struct {
	Name  string `xml:"name" json:"name" yaml:"name"`
	Value string `xml:"value" json:"value" yaml:"value"`
}

// Get returns the value for name and whether it is present.
func (o Options) Get(name string) (string, bool) {
	for _, opt := range o.Entries {
		if opt.Name == name {
			return opt.Value, true
		}
	}
	return "", false
}

// Set updates the value for name, appending a new option when absent.
func (o *Options) Set(name, value string) {
	for i := range o.Entries {
		if o.Entries[i].Name == name {
			o.Entries[i].Value = value
			return
		}
	}
	o.Entries = append(o.Entries, Option{Name: name, Value: value})
}

// Vars is the ordered sequence of design variables.
type Vars struct {
	Entries []Variable `xml:"var" json:"entries" yaml:"entries"`
}

// Variable is a named design variable. Value is kept as the source
// string; numeric values carry SI suffixes ("5n", "20f", "1.0").
type Variable struct {
	Name           string         `xml:"name" json:"name" yaml:"name"`
	Value          string         `xml:"value" json:"value" yaml:"value"`
	DependentTests DependentTests `xml:"dependentTests" json:"dependentTests" yaml:"dependenttests"`
}

// DependentTests is the ordered set of tests a variable applies to.
type DependentTests struct {
	Entries []DependentTest `xml:"dependentTest" json:"entries" yaml:"entries"`
}

// DependentTest references a test declared in the same session's tests.
type DependentTest struct {
	Enabled Flag   `xml:"enabled,attr" json:"enabled" yaml:"enabled"`
	Name    string `xml:"name" json:"name" yaml:"name"`
}

// History is the log of saved runs.
type History struct {
	Entries []HistoryEntry `xml:"historyentry" json:"entries" yaml:"entries"`
}

// HistoryEntry is one saved run: a full session checkpoint plus the run
// metadata (result locations, deletion strategies, log files).
// SchematicPoint is empty in practice.
type HistoryEntry struct {
	Name               string   `xml:"name" json:"name" yaml:"name"`
	Checkpoint         Session  `xml:"checkpoint" json:"checkpoint" yaml:"checkpoint"`
	Timestamp          string   `xml:"timestamp" json:"timestamp" yaml:"timestamp"`
	ResultsName        string   `xml:"resultsname" json:"resultsname" yaml:"resultsname"`
	SimResults         string   `xml:"simresults" json:"simresults" yaml:"simresults"`
	RawDataDelStrategy string   `xml:"rawdatadelstrategy" json:"rawdatadelstrategy" yaml:"rawdatadelstrategy"`
	NetlistDelStrategy string   `xml:"netlistdelstrategy" json:"netlistdelstrategy" yaml:"netlistdelstrategy"`
	LocalPSFDir        string   `xml:"localpsfdir" json:"localpsfdir" yaml:"localpsfdir"`
	RemotePSFDir       string   `xml:"remotepsfdir" json:"remotepsfdir" yaml:"remotepsfdir"`
	SimDir             string   `xml:"simdir" json:"simdir" yaml:"simdir"`
	GenDatasheet       Flag     `xml:"gendatasheet" json:"gendatasheet" yaml:"gendatasheet"`
	LogFiles           []string `xml:"logfile" json:"logfiles" yaml:"logfiles"`
	SchematicPoint     string   `xml:"schematicpoint" json:"schematicpoint" yaml:"schematicpoint"`
	Tests              []string `xml:"test" json:"tests" yaml:"tests"`
}
