package formats

import "sort"

// Descriptor is the metadata for one format key in one direction.
type Descriptor struct {
	Key       string `json:"-"`
	MIMEType  string `json:"mime"`
	Extension string `json:"ext"`
	Detail    string `json:"detail"`
}

// Listing is the JSON shape served by the formats endpoint.
type Listing struct {
	Input  map[string]Descriptor `json:"input"`
	Output map[string]Descriptor `json:"output"`
}

// Registry holds the input and output descriptor tables. It is read-only
// after construction and safe for concurrent use.
type Registry struct {
	input  map[string]Descriptor
	output map[string]Descriptor
}

// Default is the registry of pandoc formats served by the API.
var Default = New(
	append(append([]Descriptor{}, common...), inputOnly...),
	append(append([]Descriptor{}, common...), outputOnly...),
)

// New builds a registry from explicit descriptor lists. Later entries with a
// duplicate key replace earlier ones.
func New(input, output []Descriptor) *Registry {
	r := &Registry{
		input:  make(map[string]Descriptor, len(input)),
		output: make(map[string]Descriptor, len(output)),
	}
	for _, d := range input {
		r.input[d.Key] = normalize(d)
	}
	for _, d := range output {
		r.output[d.Key] = normalize(d)
	}
	return r
}

func normalize(d Descriptor) Descriptor {
	if d.MIMEType == "" {
		d.MIMEType = defaultMIMEType
	}
	if d.Extension == "" {
		d.Extension = d.Key
	}
	return d
}

func (r *Registry) IsValidInput(key string) bool {
	_, ok := r.input[key]
	return ok
}

func (r *Registry) IsValidOutput(key string) bool {
	_, ok := r.output[key]
	return ok
}

// Input returns the descriptor for an input key.
func (r *Registry) Input(key string) (Descriptor, bool) {
	d, ok := r.input[key]
	return d, ok
}

// Output returns the descriptor for an output key.
func (r *Registry) Output(key string) (Descriptor, bool) {
	d, ok := r.output[key]
	return d, ok
}

// InputKeys returns the input keys in sorted order.
func (r *Registry) InputKeys() []string { return sortedKeys(r.input) }

// OutputKeys returns the output keys in sorted order.
func (r *Registry) OutputKeys() []string { return sortedKeys(r.output) }

// Listing returns a copy of both tables.
func (r *Registry) Listing() Listing {
	l := Listing{
		Input:  make(map[string]Descriptor, len(r.input)),
		Output: make(map[string]Descriptor, len(r.output)),
	}
	for k, d := range r.input {
		l.Input[k] = d
	}
	for k, d := range r.output {
		l.Output[k] = d
	}
	return l
}

func sortedKeys(m map[string]Descriptor) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
