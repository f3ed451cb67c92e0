// Package export renders a setup database, or one of its sessions, as
// YAML or JSON for scripting and diff review.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/adeutils/sdbtool/internal/setupdb"
)

// Format selects the export encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format string from a CLI flag.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, FormatJSON:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown export format: %s (valid: yaml, json)", s)
}

// Database writes the whole database to w in the given format.
func Database(w io.Writer, db *setupdb.SetupDatabase, format Format) error {
	return write(w, db, format)
}

// Session writes a single session to w. Name selects the session:
// "active" for the active session, otherwise a history entry name whose
// checkpoint is exported.
func Session(w io.Writer, db *setupdb.SetupDatabase, name string, format Format) error {
	var session *setupdb.Session
	if name == "active" {
		session = db.Active
	} else if entry := db.Entry(name); entry != nil {
		session = &entry.Checkpoint
	}
	if session == nil {
		return fmt.Errorf("no session named %q (use \"active\" or a history entry name)", name)
	}
	return write(w, session, format)
}

// write encodes v in the requested format. JSON output is indented so
// both formats are reviewable directly.
func write(w io.Writer, v interface{}, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		_, err := w.Write(buf.Bytes())
		return err
	}
	return fmt.Errorf("unknown export format: %s", format)
}
