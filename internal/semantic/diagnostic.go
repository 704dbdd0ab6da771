package semantic

import (
	"fmt"

	"github.com/querytools/wiqlint/internal/wiql"
)

// Diagnostic is a positioned validation message. Diagnostics are read-only
// once created and are collected in AST traversal order; no severity sorting
// or de-duplication is applied.
type Diagnostic struct {
	Span    wiql.Span `json:"span"`
	Message string    `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d-%d: %s", d.Span.Start, d.Span.End, d.Message)
}
