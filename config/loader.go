// Package config loads variable bindings for expressions from YAML or JSON
// files.
//
// A bindings file is a flat mapping from variable names to numbers:
//
//	x: 3.14159
//	rate: 0.05
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/arival"
)

// Bindings maps variable names to values.
type Bindings map[string]float64

// FromFile loads bindings from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
func FromFile(path string) (Bindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bindings file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return nil, fmt.Errorf("unsupported bindings file extension: %q", ext)
	}
}

// FromYAML parses and validates YAML bindings.
func FromYAML(data []byte) (Bindings, error) {
	var b Bindings
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return b.checked()
}

// FromJSON parses and validates JSON bindings.
func FromJSON(data []byte) (Bindings, error) {
	var b Bindings
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return b.checked()
}

func (b Bindings) checked() (Bindings, error) {
	if b == nil {
		b = Bindings{}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks that every name in b can be referenced from an expression:
// it must be exactly one identifier token, and it must not be the name of a
// built-in function. Names are checked in sorted order, and the first invalid
// name is reported.
func (b Bindings) Validate() error {
	names := make([]string, 0, len(b))
	for k := range b {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := checkName(name); err != nil {
			return err
		}
	}
	return nil
}

func checkName(name string) error {
	s := arival.NewScanner(name)
	tok, err := s.Next()
	if err != nil || tok.Pos != 0 {
		return fmt.Errorf("invalid variable name %q", name)
	}
	switch tok.Kind {
	case arival.TokenIdentifier: // do nothing
	case arival.TokenFunction:
		return fmt.Errorf("variable name %q is a built-in function", name)
	default:
		return fmt.Errorf("invalid variable name %q", name)
	}
	if _, err := s.Next(); err != io.EOF || tok.Text != name {
		return fmt.Errorf("invalid variable name %q", name)
	}
	return nil
}

// Option converts the bindings to an evaluator option.
func (b Bindings) Option() arival.Option {
	return arival.SetVars(b)
}
