// Package bundle decides what a finished conversion sends back: the bare
// converted file, or a zip archive holding it together with extracted media.
package bundle

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/ah-its-andy/reformed/internal/converter"
	"github.com/ah-its-andy/reformed/internal/formats"
	"github.com/ah-its-andy/reformed/internal/options"
	"github.com/ah-its-andy/reformed/internal/utils"
)

const (
	ZipContentType = "application/zip"
	ZipName        = "bundle.zip"
)

// Output is a packaged conversion result ready to stream.
type Output struct {
	ContentType string
	FileName    string
	Path        string
	Size        int64
	Bundled     bool
	MediaCount  int
}

// Package prepares the response artifact for a successful conversion in ws.
// A zip is produced when bundle is set or the converter extracted media.
func Package(ws *converter.Workspace, target formats.Descriptor, uploadedName string, bundle bool) (*Output, error) {
	name := utils.TargetName(uploadedName, target.Extension)

	media, err := ListMedia(ws.MediaPath())
	if err != nil {
		return nil, fmt.Errorf("%w: list media: %v", converter.ErrWorkspace, err)
	}

	if !bundle && len(media) == 0 {
		size, err := fileSize(ws.OutputPath())
		if err != nil {
			return nil, err
		}
		return &Output{
			ContentType: target.MIMEType,
			FileName:    name,
			Path:        ws.OutputPath(),
			Size:        size,
		}, nil
	}

	zipPath := filepath.Join(ws.Dir, ZipName)
	if err := writeZip(zipPath, ws.OutputPath(), name, ws.MediaPath(), media); err != nil {
		return nil, fmt.Errorf("%w: write bundle: %v", converter.ErrWorkspace, err)
	}
	size, err := fileSize(zipPath)
	if err != nil {
		return nil, err
	}
	return &Output{
		ContentType: ZipContentType,
		FileName:    ZipName,
		Path:        zipPath,
		Size:        size,
		Bundled:     true,
		MediaCount:  len(media),
	}, nil
}

// ListMedia returns the slash-separated paths of regular files under dir in
// lexical order. A missing directory yields no entries.
func ListMedia(dir string) ([]string, error) {
	var entries []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipDir
			}
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		entries = append(entries, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func writeZip(dst, mainPath, mainName, mediaDir string, media []string) (err error) {
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(f)
	if err := addFile(zw, mainPath, mainName); err != nil {
		return err
	}
	for _, rel := range media {
		if err := addFile(zw, filepath.Join(mediaDir, filepath.FromSlash(rel)), path.Join(options.MediaDir, rel)); err != nil {
			return err
		}
	}
	return zw.Close()
}

func addFile(zw *zip.Writer, src, name string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, in)
	return err
}

func fileSize(p string) (int64, error) {
	info, err := os.Stat(p)
	if err != nil {
		return 0, fmt.Errorf("%w: stat output: %v", converter.ErrWorkspace, err)
	}
	return info.Size(), nil
}
