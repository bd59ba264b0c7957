package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/ah-its-andy/reformed/internal/bundle"
	"github.com/ah-its-andy/reformed/internal/converter"
)

// ChunkSize is the write granularity for streamed responses.
const ChunkSize = 16 * 1024

// Stream sends out as an attachment with an exact Content-Length. Nothing is
// written to w if the artifact cannot be opened.
func Stream(w http.ResponseWriter, out *bundle.Output) (int64, error) {
	f, err := os.Open(out.Path)
	if err != nil {
		return 0, fmt.Errorf("%w: open output: %v", converter.ErrWorkspace, err)
	}
	defer f.Close()

	h := w.Header()
	h.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, out.FileName))
	h.Set("Content-Type", out.ContentType)
	h.Set("Content-Length", strconv.FormatInt(out.Size, 10))
	w.WriteHeader(http.StatusOK)

	buf := make([]byte, ChunkSize)
	var written int64
	for {
		n, rerr := f.Read(buf)
		if n > 0 {
			m, werr := w.Write(buf[:n])
			written += int64(m)
			if werr != nil {
				return written, werr
			}
		}
		if errors.Is(rerr, io.EOF) {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}
