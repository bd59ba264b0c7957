package converter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ah-its-andy/reformed/internal/options"
	"github.com/google/uuid"
)

// Fixed file names inside a workspace. The client's file name is never used
// on disk.
const (
	InputName  = "pandoc-input"
	OutputName = "pandoc-output"
)

// Workspace is a request-scoped directory holding the converter input, its
// output and any extracted media. It is owned by exactly one request and
// removed by Close.
type Workspace struct {
	ID  string
	Dir string
}

// NewWorkspace creates a fresh directory under root. An empty root means the
// OS temp directory.
func NewWorkspace(root string) (*Workspace, error) {
	if root == "" {
		root = os.TempDir()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create root %s: %v", ErrWorkspace, root, err)
	}
	id := uuid.NewString()
	dir := filepath.Join(root, "reformed-"+id)
	if err := os.Mkdir(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrWorkspace, dir, err)
	}
	return &Workspace{ID: id, Dir: dir}, nil
}

func (w *Workspace) InputPath() string  { return filepath.Join(w.Dir, InputName) }
func (w *Workspace) OutputPath() string { return filepath.Join(w.Dir, OutputName) }
func (w *Workspace) MediaPath() string  { return filepath.Join(w.Dir, options.MediaDir) }

// WriteInput stores the uploaded document under the fixed input name and
// returns the number of bytes written.
func (w *Workspace) WriteInput(r io.Reader) (int64, error) {
	f, err := os.OpenFile(w.InputPath(), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return 0, fmt.Errorf("%w: open input: %v", ErrWorkspace, err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("%w: write input: %v", ErrWorkspace, err)
	}
	return n, nil
}

// Close removes the workspace and everything in it.
func (w *Workspace) Close() error {
	if err := os.RemoveAll(w.Dir); err != nil {
		return fmt.Errorf("%w: remove %s: %v", ErrWorkspace, w.Dir, err)
	}
	return nil
}
