package converter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrWorkspace marks failures creating, writing or removing a workspace.
	ErrWorkspace = errors.New("workspace error")
	// ErrUnavailable marks a converter process that could not be started.
	ErrUnavailable = errors.New("converter unavailable")
)

// ConversionError describes a converter run that finished unsuccessfully.
type ConversionError struct {
	Tool       string
	ExitCode   int
	Diagnostic string
	TimedOut   bool
}

func (e *ConversionError) Error() string {
	var b strings.Builder
	if e.TimedOut {
		fmt.Fprintf(&b, "%s timed out", e.Tool)
	} else {
		fmt.Fprintf(&b, "%s exited with a non-0 status code (%d)", e.Tool, e.ExitCode)
	}
	if d := strings.TrimSpace(e.Diagnostic); d != "" {
		b.WriteString(": ")
		b.WriteString(d)
	}
	return b.String()
}
