package config

import (
	"fmt"
	"strings"

	"github.com/go-i2p/logger"
)

// DiagnosticKind classifies a problem found while loading a file.
type DiagnosticKind int

const (
	// DiagnosticIO covers directory creation, read and bootstrap write failures.
	DiagnosticIO DiagnosticKind = iota + 1
	// DiagnosticParse carries a codec warning or the fatal parse error.
	DiagnosticParse
	// DiagnosticTypeCoercion means an entry was present but unusable.
	DiagnosticTypeCoercion
	// DiagnosticMissingEntry means a schema entry was absent.
	DiagnosticMissingEntry
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticIO:
		return "io"
	case DiagnosticParse:
		return "parse"
	case DiagnosticTypeCoercion:
		return "type coercion"
	case DiagnosticMissingEntry:
		return "missing entry"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

// Diagnostic is a non-fatal finding recorded by Load and Reload.
type Diagnostic struct {
	Kind  DiagnosticKind
	Entry string
	// Line is the 1-based line of the file, or 0 when not tied to one.
	Line int
	Err  error
}

func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Kind.String())
	if d.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", d.Line)
	}
	if d.Entry != "" {
		b.WriteString(" ")
		b.WriteString(d.Entry)
	}
	if d.Err != nil {
		b.WriteString(": ")
		b.WriteString(d.Err.Error())
	}
	if d.Kind == DiagnosticMissingEntry || d.Kind == DiagnosticTypeCoercion {
		b.WriteString(" (using default)")
	}
	return b.String()
}

func (c *SyncConfig) diagnose(d Diagnostic) {
	c.diags = append(c.diags, d)
	fields := logger.Fields{
		"at":    "(SyncConfig) diagnose",
		"path":  c.path,
		"kind":  d.Kind.String(),
		"entry": d.Entry,
		"line":  d.Line,
	}
	if d.Err != nil {
		log.WithError(d.Err).WithFields(fields).Warn("config diagnostic")
		return
	}
	log.WithFields(fields).Warn("config diagnostic")
}
