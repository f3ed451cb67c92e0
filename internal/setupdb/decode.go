package setupdb

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
)

// ParseError describes a document that could not be decoded: malformed
// XML, a wrong root element, or a missing required element.
type ParseError struct {
	Path   string // source file, empty for in-memory decodes
	Line   int    // line of the underlying XML error, 0 when unknown
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return e.Reason
}

// Unwrap returns the underlying XML error, if any.
func (e *ParseError) Unwrap() error { return e.Err }

// Decode parses a setup database document, preserving the order of
// repeated elements. It fails with a *ParseError when the root element
// is not setupdb, when the required active or history element is
// absent, or when the document is not well-formed XML.
func Decode(data []byte) (*SetupDatabase, error) {
	var db SetupDatabase
	if err := xml.Unmarshal(data, &db); err != nil {
		return nil, wrapXMLError("", err)
	}
	if db.Active == nil {
		return nil, &ParseError{Reason: "missing required element: active"}
	}
	if db.History == nil {
		return nil, &ParseError{Reason: "missing required element: history"}
	}
	return &db, nil
}

// DecodeFile reads and decodes the setup database at path.
func DecodeFile(path string) (*SetupDatabase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading setup database: %w", err)
	}
	db, err := Decode(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return db, nil
}

// wrapXMLError converts an encoding/xml error into a *ParseError,
// carrying the line number when the syntax error reports one.
func wrapXMLError(path string, err error) *ParseError {
	pe := &ParseError{Path: path, Reason: err.Error(), Err: err}
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		pe.Line = syn.Line
		pe.Reason = syn.Msg
	}
	return pe
}
