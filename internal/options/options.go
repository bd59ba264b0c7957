package options

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind selects how a raw form value is turned into a flag.
type Kind int

const (
	Bool Kind = iota
	Choice
	IntRange
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Choice:
		return "choice"
	case IntRange:
		return "int"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Spec describes one user-tunable converter option.
type Spec struct {
	Name    string
	Kind    Kind
	Choices []string
	Min     int
	Max     int
}

// BundleField is the form field that requests a zip bundle. It is read by
// the packager and never passed to the converter.
const BundleField = "bundle"

// MediaDir is the directory, relative to the workspace, that the converter
// extracts images and other media into.
const MediaDir = "media"

// Recognized is the option vocabulary in canonical flag order.
var Recognized = []Spec{
	{Name: "ascii", Kind: Bool},
	{Name: "no-highlight", Kind: Bool},
	{Name: "html-q-tags", Kind: Bool},
	{Name: "incremental", Kind: Bool},
	{Name: "listings", Kind: Bool},
	{Name: "preserve-tabs", Kind: Bool},
	{Name: "reference-links", Kind: Bool},
	{Name: "section-divs", Kind: Bool},
	{Name: "standalone", Kind: Bool},
	{Name: "strip-comments", Kind: Bool},
	{Name: "toc", Kind: Bool},
	{Name: "columns", Kind: IntRange, Min: 1, Max: 300},
	{Name: "dpi", Kind: IntRange, Min: 36, Max: 600},
	{Name: "toc-depth", Kind: IntRange, Min: 1, Max: 6},
	{Name: "eol", Kind: Choice, Choices: []string{"crlf", "lf", "native"}},
	{Name: "markdown-headings", Kind: Choice, Choices: []string{"atx", "setext"}},
	{Name: "reference-location", Kind: Choice, Choices: []string{"block", "section", "document"}},
	{Name: "top-level-division", Kind: Choice, Choices: []string{"default", "section", "chapter", "part"}},
	{Name: "track-changes", Kind: Choice, Choices: []string{"accept", "reject", "all"}},
	{Name: "wrap", Kind: Choice, Choices: []string{"auto", "none", "preserve"}},
}

// SystemFlags are always passed to the converter ahead of user flags:
// xelatex so PDF output handles non-ASCII text, and media extraction into
// the workspace.
func SystemFlags() []string {
	return []string{
		"--pdf-engine=xelatex",
		"--extract-media=" + MediaDir,
	}
}

// Translate turns raw form values into converter flags using the
// Recognized vocabulary.
func Translate(values map[string][]string) []string {
	return TranslateWith(Recognized, values)
}

// TranslateWith turns raw form values into flags for the given specs.
// Unknown fields are ignored, and values that do not fit a spec are dropped
// so the converter falls back to its default.
func TranslateWith(specs []Spec, values map[string][]string) []string {
	flags := make([]string, 0, len(specs))
	for _, spec := range specs {
		raw, ok := scalar(values, spec.Name)
		if !ok {
			continue
		}
		if flag, ok := spec.flag(raw); ok {
			flags = append(flags, flag)
		}
	}
	return flags
}

// BundleRequested reports whether the bundle field is set to a truthy value.
func BundleRequested(values map[string][]string) bool {
	raw, ok := scalar(values, BundleField)
	return ok && truthy(raw)
}

func (s Spec) flag(raw string) (string, bool) {
	switch s.Kind {
	case Bool:
		if truthy(raw) {
			return "--" + s.Name, true
		}
	case Choice:
		for _, c := range s.Choices {
			if raw == c {
				return fmt.Sprintf("--%s=%s", s.Name, c), true
			}
		}
	case IntRange:
		n, err := strconv.Atoi(raw)
		if err != nil {
			if !errors.Is(err, strconv.ErrRange) {
				return "", false
			}
			// Out of int range: the sign decides which bound applies.
			n = s.Max
			if strings.HasPrefix(raw, "-") {
				n = s.Min
			}
		}
		return fmt.Sprintf("--%s=%d", s.Name, clamp(n, s.Min, s.Max)), true
	}
	return "", false
}

// scalar returns the trimmed value of a single-valued field. Missing and
// multi-valued fields are reported as absent.
func scalar(values map[string][]string, name string) (string, bool) {
	vs, ok := values[name]
	if !ok || len(vs) != 1 {
		return "", false
	}
	return strings.TrimSpace(vs[0]), true
}

func truthy(raw string) bool {
	switch strings.ToLower(raw) {
	case "", "false", "0", "no", "off":
		return false
	}
	return true
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
