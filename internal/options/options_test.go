package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func vals(kv ...string) map[string][]string {
	m := map[string][]string{}
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = append(m[kv[i]], kv[i+1])
	}
	return m
}

func TestBoolOptions(t *testing.T) {
	tests := []struct {
		name  string
		value map[string][]string
		want  []string
	}{
		{"true", vals("toc", "true"), []string{"--toc"}},
		{"any non-blank", vals("toc", "on"), []string{"--toc"}},
		{"padded", vals("toc", "  1 "), []string{"--toc"}},
		{"absent", vals(), []string{}},
		{"blank", vals("toc", "   "), []string{}},
		{"false", vals("toc", "false"), []string{}},
		{"zero", vals("toc", "0"), []string{}},
		{"multi", vals("toc", "true", "toc", "true"), []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(tt.value))
		})
	}
}

func TestChoiceOptions(t *testing.T) {
	assert.Equal(t, []string{"--eol=lf"}, Translate(vals("eol", "lf")))
	assert.Equal(t, []string{"--eol=crlf"}, Translate(vals("eol", " crlf ")))
	assert.Empty(t, Translate(vals("eol", "bogus")))
	assert.Empty(t, Translate(vals("eol", "LF")))
	assert.Empty(t, Translate(vals("wrap", "auto", "wrap", "none")))
}

func TestIntRangeOptions(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"0", []string{"--columns=1"}},
		{"9000", []string{"--columns=300"}},
		{"72", []string{"--columns=72"}},
		{"-5", []string{"--columns=1"}},
		{" 80 ", []string{"--columns=80"}},
		{"+5", []string{"--columns=5"}},
		{"99999999999999999999", []string{"--columns=300"}},
		{"-99999999999999999999", []string{"--columns=1"}},
		{"abc", []string{}},
		{"1.5", []string{}},
		{"", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(vals("columns", tt.raw)))
		})
	}

	assert.Equal(t, []string{"--dpi=36"}, Translate(vals("dpi", "1")))
	assert.Equal(t, []string{"--toc-depth=6"}, Translate(vals("toc-depth", "12")))
}

func TestUnknownFieldsIgnored(t *testing.T) {
	assert.Empty(t, Translate(vals("pdf-engine", "pdflatex", "lua-filter", "x.lua", "bundle", "true")))
}

func TestCanonicalOrderAndIdempotence(t *testing.T) {
	in := vals(
		"wrap", "none",
		"toc", "true",
		"columns", "100",
		"ascii", "yes",
		"eol", "lf",
		"toc-depth", "3",
	)
	want := []string{"--ascii", "--toc", "--columns=100", "--toc-depth=3", "--eol=lf", "--wrap=none"}

	first := Translate(in)
	second := Translate(in)
	assert.Equal(t, want, first)
	assert.Equal(t, first, second)
}

func TestBundleRequested(t *testing.T) {
	assert.True(t, BundleRequested(vals("bundle", "true")))
	assert.False(t, BundleRequested(vals("bundle", "false")))
	assert.False(t, BundleRequested(vals()))
	assert.False(t, BundleRequested(vals("bundle", "1", "bundle", "1")))
}

func TestSystemFlags(t *testing.T) {
	assert.Equal(t, []string{"--pdf-engine=xelatex", "--extract-media=media"}, SystemFlags())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "bool", Bool.String())
	assert.Equal(t, "choice", Choice.String())
	assert.Equal(t, "int", IntRange.String())
}
