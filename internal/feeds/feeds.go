// Package feeds loads placeholder values from YAML documents of the form
//
//	feeds:
//	  - name: x
//	    shape: [2, 2]
//	    values: [1, 2, 3, 4]
//	  - name: c
//	    shape: [2, 2, 2]
//	    fill: 1
//
// Documents are checked against an embedded JSON schema before decoding.
package feeds

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/xeipuuv/gojsonschema"

	"github.com/born-ml/lazygraph/internal/graph"
	"github.com/born-ml/lazygraph/internal/session"
	"github.com/born-ml/lazygraph/internal/tensor"
)

// Common errors.
var (
	ErrInvalidFile = errors.New("invalid feeds file")
	ErrUnknownFeed = errors.New("no placeholder with that name")
)

//go:embed schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// Entry is one named value.
type Entry struct {
	Name   string    `yaml:"name" json:"name"`
	Shape  []int     `yaml:"shape,flow" json:"shape"`
	Values []float32 `yaml:"values,omitempty,flow" json:"values,omitempty"`
	Fill   *float32  `yaml:"fill,omitempty" json:"fill,omitempty"`
}

// File is a decoded feeds document.
type File struct {
	Feeds []Entry `yaml:"feeds" json:"feeds"`
}

// Load reads and parses the feeds file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feeds: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse validates data against the feeds schema and decodes it.
func Parse(data []byte) (*File, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	seen := make(map[string]bool, len(f.Feeds))
	for _, e := range f.Feeds {
		if seen[e.Name] {
			return nil, fmt.Errorf("%w: duplicate feed %q", ErrInvalidFile, e.Name)
		}
		seen[e.Name] = true
	}
	return &f, nil
}

func validate(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	// The schema is checked on the JSON form of the document.
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(docJSON))
	if err != nil {
		return fmt.Errorf("%w: validation error: %v", ErrInvalidFile, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidFile, strings.Join(msgs, "; "))
	}
	return nil
}

// Tensor builds the entry's value.
func (e Entry) Tensor() (*tensor.Tensor, error) {
	shape := tensor.Shape(e.Shape)
	if e.Fill != nil {
		if err := shape.Validate(); err != nil {
			return nil, fmt.Errorf("%w: feed %q: %w", ErrInvalidFile, e.Name, err)
		}
		return tensor.Full(shape, *e.Fill), nil
	}

	t, err := tensor.FromSlice(e.Values, shape)
	if err != nil {
		return nil, fmt.Errorf("%w: feed %q: %w", ErrInvalidFile, e.Name, err)
	}
	return t, nil
}

// Bind maps every entry of f to the placeholder of g with the same name.
func Bind(g *graph.Graph, f *File) (session.Feeds, error) {
	out := make(session.Feeds, len(f.Feeds))
	for _, e := range f.Feeds {
		n, ok := g.Lookup(e.Name)
		if !ok || !n.IsPlaceholder() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFeed, e.Name)
		}
		t, err := e.Tensor()
		if err != nil {
			return nil, err
		}
		out[n] = t
	}
	return out, nil
}

// FromTensor returns an entry holding a copy of t's values.
func FromTensor(name string, t *tensor.Tensor) Entry {
	values := make([]float32, t.NumElements())
	copy(values, t.Data())
	return Entry{Name: name, Shape: t.Shape().Clone(), Values: values}
}

// Encode renders entries as a feeds document.
func Encode(entries []Entry) ([]byte, error) {
	return yaml.Marshal(File{Feeds: entries})
}
