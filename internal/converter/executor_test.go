package converter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript creates an executable shell script standing in for pandoc.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-pandoc")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func TestWorkspaceLifecycle(t *testing.T) {
	root := t.TempDir()
	ws, err := NewWorkspace(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "reformed-"+ws.ID), ws.Dir)

	n, err := ws.WriteInput(strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.Equal(t, filepath.Join(ws.Dir, InputName), ws.InputPath())
	assert.FileExists(t, ws.InputPath())

	other, err := NewWorkspace(root)
	require.NoError(t, err)
	assert.NotEqual(t, ws.Dir, other.Dir)

	require.NoError(t, ws.Close())
	assert.NoDirExists(t, ws.Dir)
	assert.DirExists(t, other.Dir)
	require.NoError(t, other.Close())
}

func TestArgsOrder(t *testing.T) {
	ws := &Workspace{ID: "x", Dir: "/w"}
	e := NewExecutor("pandoc", 0, 0, nil)
	got := e.Args(ws, "docx", "html", []string{"--toc", "--wrap=none"})
	want := []string{
		"--pdf-engine=xelatex", "--extract-media=media",
		"--toc", "--wrap=none",
		filepath.Join("/w", InputName), "-f", "docx", "-t", "html", "-o", filepath.Join("/w", OutputName),
	}
	assert.Equal(t, want, got)
}

func TestExecuteRunsInWorkspace(t *testing.T) {
	script := writeScript(t, `pwd > cwd.txt
printf '%s\n' "$@" > args.txt
echo converted > "$(eval echo \${$#})"`)
	ws := newTestWorkspace(t)

	e := NewExecutor(script, time.Minute, 0, nil)
	out, err := e.Execute(context.Background(), ws, "markdown", "html", []string{"--toc"})
	require.NoError(t, err)
	assert.True(t, out.Succeeded)
	assert.Equal(t, 0, out.ExitCode)

	cwd, err := os.ReadFile(filepath.Join(ws.Dir, "cwd.txt"))
	require.NoError(t, err)
	wantDir, err := filepath.EvalSymlinks(ws.Dir)
	require.NoError(t, err)
	gotDir, err := filepath.EvalSymlinks(strings.TrimSpace(string(cwd)))
	require.NoError(t, err)
	assert.Equal(t, wantDir, gotDir)

	args, err := os.ReadFile(filepath.Join(ws.Dir, "args.txt"))
	require.NoError(t, err)
	assert.Equal(t, strings.Join(e.Args(ws, "markdown", "html", []string{"--toc"}), "\n")+"\n", string(args))
	assert.FileExists(t, ws.OutputPath())
}

func TestExecuteNonZeroExit(t *testing.T) {
	script := writeScript(t, `echo "X marks the spot" >&2
exit 3`)
	ws := newTestWorkspace(t)

	e := NewExecutor(script, time.Minute, 0, nil)
	out, err := e.Execute(context.Background(), ws, "docx", "pdf", nil)
	require.NoError(t, err)
	assert.False(t, out.Succeeded)
	assert.Equal(t, 3, out.ExitCode)
	assert.Contains(t, out.Diagnostic, "X marks the spot")

	var convErr *ConversionError
	require.True(t, errors.As(out.Err(e.Tool()), &convErr))
	assert.Equal(t, "fake-pandoc exited with a non-0 status code (3): X marks the spot", convErr.Error())
}

func TestExecuteNonZeroExitWithoutDiagnostic(t *testing.T) {
	script := writeScript(t, `exit 1`)
	ws := newTestWorkspace(t)

	out, err := NewExecutor(script, time.Minute, 0, nil).Execute(context.Background(), ws, "docx", "pdf", nil)
	require.NoError(t, err)
	assert.False(t, out.Succeeded)
	assert.Empty(t, out.Diagnostic)
	assert.Equal(t, "fake-pandoc exited with a non-0 status code (1)", out.Err("fake-pandoc").Error())
}

func TestExecuteTimeout(t *testing.T) {
	script := writeScript(t, `exec sleep 5`)
	ws := newTestWorkspace(t)

	e := NewExecutor(script, 100*time.Millisecond, 0, nil)
	start := time.Now()
	out, err := e.Execute(context.Background(), ws, "docx", "pdf", nil)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)
	assert.False(t, out.Succeeded)
	assert.True(t, out.TimedOut)
	assert.Contains(t, out.Err(e.Tool()).Error(), "timed out")
}

func TestExecuteCancelled(t *testing.T) {
	script := writeScript(t, `exec sleep 5`)
	ws := newTestWorkspace(t)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)
	_, err := NewExecutor(script, 0, 0, nil).Execute(ctx, ws, "docx", "pdf", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecuteMissingBinary(t *testing.T) {
	ws := newTestWorkspace(t)
	_, err := NewExecutor(filepath.Join(t.TempDir(), "nope"), 0, 0, nil).Execute(context.Background(), ws, "docx", "pdf", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDiagnosticIsCapped(t *testing.T) {
	script := writeScript(t, `i=0
while [ $i -lt 200 ]; do echo "0123456789" >&2; i=$((i+1)); done
exit 2`)
	ws := newTestWorkspace(t)

	out, err := NewExecutor(script, time.Minute, 64, nil).Execute(context.Background(), ws, "docx", "pdf", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, out.ExitCode)
	assert.True(t, strings.HasSuffix(out.Diagnostic, truncatedMarker))
	assert.Equal(t, 64+len(truncatedMarker), len(out.Diagnostic))
}

func TestSetTimeout(t *testing.T) {
	e := NewExecutor("pandoc", time.Second, 0, nil)
	e.SetTimeout(time.Minute)
	assert.Equal(t, time.Minute, e.Timeout())
}
