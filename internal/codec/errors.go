// Package codec serializes document trees to XML and JSON and validates the
// JSON form against the bundled schema.
package codec

import (
	"fmt"
	"strings"
)

// FormatError reports malformed markup. Path names the offending element,
// e.g. /documents/document[1]/section[2]/paragraph[1].
type FormatError struct {
	Path string
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format error at %s: %s", e.Path, e.Msg)
}

// Problem is a single schema violation.
type Problem struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError lists every schema violation found in a document.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Path+": "+p.Message)
	}
	return fmt.Sprintf("schema validation failed with %d problem(s): %s", len(e.Problems), strings.Join(msgs, "; "))
}
