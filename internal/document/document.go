// Package document loads serialized block trees from JSON or YAML files.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/drew/logfold/internal/model"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a serialized document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for files whose encoding cannot be inferred
var ErrUnknownFormat = errors.New("unknown document format")

// FormatFor infers the format from a file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Load reads and decodes a document file
func Load(path string) (model.Document, error) {
	format, err := FormatFor(path)
	if err != nil {
		return model.Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	doc, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// Decode parses a document. Unknown fields are rejected so typos in block
// records do not silently drop content.
func Decode(r io.Reader, format Format) (model.Document, error) {
	var doc model.Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return model.Document{}, err
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return model.Document{}, errors.New("empty document")
			}
			return model.Document{}, err
		}
	default:
		return model.Document{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return doc, nil
}
