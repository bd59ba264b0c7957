package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/ah-its-andy/reformed/internal/options"
	"go.uber.org/zap"
)

const truncatedMarker = "\n[diagnostic output truncated]"

// Outcome is the classified result of one converter run.
type Outcome struct {
	Succeeded  bool
	ExitCode   int
	Diagnostic string
	TimedOut   bool
	Duration   time.Duration
}

// Err returns nil for a successful run and a *ConversionError otherwise.
func (o Outcome) Err(tool string) error {
	if o.Succeeded {
		return nil
	}
	return &ConversionError{Tool: tool, ExitCode: o.ExitCode, Diagnostic: o.Diagnostic, TimedOut: o.TimedOut}
}

// Executor runs the external converter inside a workspace.
type Executor struct {
	binary        string
	maxDiagnostic int
	timeout       atomic.Int64
	logger        *zap.Logger
}

// NewExecutor returns an executor for the given binary. A zero timeout
// disables the bounded wait; maxDiagnostic <= 0 keeps all stderr output.
func NewExecutor(binary string, timeout time.Duration, maxDiagnostic int, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Executor{binary: binary, maxDiagnostic: maxDiagnostic, logger: logger}
	e.timeout.Store(int64(timeout))
	return e
}

// Tool is the display name of the converter binary.
func (e *Executor) Tool() string { return filepath.Base(e.binary) }

func (e *Executor) Timeout() time.Duration { return time.Duration(e.timeout.Load()) }

// SetTimeout changes the bounded wait for runs started afterwards.
func (e *Executor) SetTimeout(d time.Duration) { e.timeout.Store(int64(d)) }

// Args builds the converter argument list: system flags, user flags, then
// input path, source format, target format and output path.
func (e *Executor) Args(ws *Workspace, from, to string, flags []string) []string {
	sys := options.SystemFlags()
	args := make([]string, 0, len(sys)+len(flags)+7)
	args = append(args, sys...)
	args = append(args, flags...)
	return append(args, ws.InputPath(), "-f", from, "-t", to, "-o", ws.OutputPath())
}

// Execute runs the converter with the workspace as its working directory.
// A non-zero exit is reported through the Outcome; the error return is
// reserved for runs that could not start or were cancelled by the caller.
func (e *Executor) Execute(ctx context.Context, ws *Workspace, from, to string, flags []string) (Outcome, error) {
	runCtx := ctx
	if d := e.Timeout(); d > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	args := e.Args(ws, from, to, flags)
	stderr := &limitedBuffer{limit: e.maxDiagnostic}

	cmd := exec.CommandContext(runCtx, e.binary, args...)
	cmd.Dir = ws.Dir
	cmd.Stderr = stderr
	cmd.WaitDelay = 5 * time.Second

	e.logger.Debug("running converter",
		zap.String("workspace", ws.ID),
		zap.String("binary", e.binary),
		zap.Strings("args", args),
	)

	start := time.Now()
	err := cmd.Run()
	out := Outcome{Duration: time.Since(start), Diagnostic: stderr.String()}

	switch {
	case err == nil:
		out.Succeeded = true
		return out, nil
	case ctx.Err() != nil:
		out.ExitCode = -1
		return out, fmt.Errorf("conversion cancelled: %w", ctx.Err())
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		out.ExitCode = -1
		out.TimedOut = true
		if out.Diagnostic == "" {
			out.Diagnostic = fmt.Sprintf("no result after %s", e.Timeout())
		}
		return out, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return out, fmt.Errorf("%w: %s: %v", ErrUnavailable, e.binary, err)
}

// limitedBuffer keeps the first limit bytes written to it. Writes past the
// limit are dropped but still reported as complete.
type limitedBuffer struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if b.limit <= 0 {
		return b.buf.Write(p)
	}
	room := b.limit - b.buf.Len()
	if room <= 0 {
		b.truncated = b.truncated || len(p) > 0
		return len(p), nil
	}
	if len(p) > room {
		b.buf.Write(p[:room])
		b.truncated = true
		return len(p), nil
	}
	return b.buf.Write(p)
}

func (b *limitedBuffer) String() string {
	if b.truncated {
		return b.buf.String() + truncatedMarker
	}
	return b.buf.String()
}
