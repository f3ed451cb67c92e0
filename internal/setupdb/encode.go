package setupdb

import (
	"encoding/xml"
	"fmt"
	"os"
)

// Encode serializes db back to an XML document. Element nesting,
// attributes, and text content reproduce the decoded structure exactly;
// indentation is normalized to two spaces, which the consuming tool
// treats as insignificant. Encoding is deterministic, so encoding the
// same database twice yields identical bytes.
func Encode(db *SetupDatabase) ([]byte, error) {
	body, err := xml.MarshalIndent(db, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling setup database: %w", err)
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}

// WriteFile encodes db and writes it to path atomically via a temp file
// and rename, so a crash mid-write never leaves a truncated database.
func WriteFile(path string, db *SetupDatabase) error {
	data, err := Encode(db)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing setup database temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		// Clean up temp file on rename failure.
		os.Remove(tmp)
		return fmt.Errorf("renaming setup database file: %w", err)
	}

	return nil
}
