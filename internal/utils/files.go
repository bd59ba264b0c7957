package utils

import (
	"path/filepath"
	"strings"
)

// DefaultBaseName is used when the client supplies no usable file name.
const DefaultBaseName = "document"

// StripExtension drops the final extension of a file name, keeping leading
// dots so ".profile" stays intact.
func StripExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}

// SafeBaseName reduces a client-supplied file name to a bare name that can be
// placed inside a Content-Disposition header.
func SafeBaseName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		if r == '"' || r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == "/" || name == ".." {
		return DefaultBaseName
	}
	return name
}

// TargetName derives the download name for a converted document.
func TargetName(uploaded, ext string) string {
	base := StripExtension(SafeBaseName(uploaded))
	if base == "" {
		base = DefaultBaseName
	}
	return base + "." + ext
}
