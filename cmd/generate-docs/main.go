// Copyright 2025 Andrew Khoury
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// generate-docs generates documentation from config structs using reflection
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/drew/logfold/internal/config"
)

// FieldDoc represents documentation for a single field
type FieldDoc struct {
	Name        string
	Type        string
	Default     string
	Description string
	ValidValues []string
}

// SectionDoc represents documentation for a config section
type SectionDoc struct {
	Name        string
	Description string
	Fields      []FieldDoc
}

func main() {
	outDir := flag.String("out", ".", "Directory to write generated files into")
	flag.Usage = func() {
		fmt.Println("Usage: generate-docs [-out dir]")
		fmt.Println("Generates documentation from config structs:")
		fmt.Println("  - config.example.toml")
		fmt.Println("  - config.schema.json")
		fmt.Println("  - docs/configuration.md")
	}
	flag.Parse()

	docs := buildDocumentation()

	generators := []struct {
		file string
		fn   func(string, []SectionDoc) error
	}{
		{"config.example.toml", generateExampleTOML},
		{"config.schema.json", generateJSONSchema},
		{"docs/configuration.md", generateMarkdownDocs},
	}
	for _, g := range generators {
		if err := g.fn(*outDir, docs); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", g.file, err)
			os.Exit(1)
		}
		fmt.Printf("✓ Generated %s\n", g.file)
	}
}

func buildDocumentation() []SectionDoc {
	defaults := config.GetDefaults()

	return []SectionDoc{
		extractSection("defaults", "Global options for a logfold run", defaults.Defaults),
		extractSection("render", "How block trees are drawn in pages, text and the terminal browser", defaults.Render),
		extractSection("inputs", "Documents rendered when none are given on the command line", defaults.Inputs),
	}
}

// extractSection uses reflection to extract field documentation from struct tags.
// value holds the defaults shown for each field.
func extractSection(name, description string, value interface{}) SectionDoc {
	section := SectionDoc{
		Name:        name,
		Description: description,
		Fields:      []FieldDoc{},
	}

	t := reflect.TypeOf(value)
	v := reflect.ValueOf(value)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		docTag := field.Tag.Get("doc")
		tomlTag := field.Tag.Get("toml")
		if docTag == "" || tomlTag == "" {
			continue
		}

		fieldDoc := FieldDoc{
			Name:        tomlTag,
			Type:        getFieldType(field.Type),
			Default:     getDefaultValue(v.Field(i), field.Type),
			Description: docTag,
		}
		if enumTag := field.Tag.Get("enum"); enumTag != "" {
			fieldDoc.ValidValues = strings.Split(enumTag, ",")
		}

		section.Fields = append(section.Fields, fieldDoc)
	}

	return section
}

// getFieldType returns a string representation of the field type
func getFieldType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int"
	case reflect.Bool:
		return "bool"
	case reflect.Ptr:
		return getFieldType(t.Elem())
	case reflect.Slice:
		return "[]" + getFieldType(t.Elem())
	default:
		return t.String()
	}
}

// getDefaultValue returns the default rendered as a TOML literal, or "" when unset
func getDefaultValue(v reflect.Value, t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		if v.String() == "" {
			return ""
		}
		return fmt.Sprintf("%q", v.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", v.Int())
	case reflect.Bool:
		return fmt.Sprintf("%t", v.Bool())
	case reflect.Slice:
		if v.Len() == 0 {
			return ""
		}
		items := make([]string, v.Len())
		for i := range items {
			items[i] = getDefaultValue(v.Index(i), t.Elem())
		}
		return "[" + strings.Join(items, ", ") + "]"
	default:
		return ""
	}
}

func writeOutput(outDir, name string, data []byte) error {
	path := filepath.Join(outDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func generateExampleTOML(outDir string, docs []SectionDoc) error {
	var sb strings.Builder

	sb.WriteString(`# =============================================================================
# logfold Configuration Reference
# =============================================================================
# Every option with its default. Copy what you need into config.toml,
# or run "logfold init" for a starter file.
# =============================================================================

`)

	for _, section := range docs {
		sb.WriteString("# -----------------------------------------------------------------------------\n")
		sb.WriteString(fmt.Sprintf("# [%s] - %s\n", section.Name, section.Description))
		sb.WriteString("# -----------------------------------------------------------------------------\n\n")
		sb.WriteString(fmt.Sprintf("[%s]\n", section.Name))

		for _, field := range section.Fields {
			sb.WriteString(fmt.Sprintf("# %s\n", field.Description))
			if len(field.ValidValues) > 0 {
				sb.WriteString(fmt.Sprintf("# Valid values: %s\n", strings.Join(field.ValidValues, ", ")))
			}
			if field.Default == "" {
				sb.WriteString(fmt.Sprintf("# %s = \n", field.Name))
			} else {
				sb.WriteString(fmt.Sprintf("%s = %s\n", field.Name, field.Default))
			}
			sb.WriteString("\n")
		}
	}

	return writeOutput(outDir, "config.example.toml", []byte(sb.String()))
}

func schemaType(fieldType string) map[string]interface{} {
	switch fieldType {
	case "string":
		return map[string]interface{}{"type": "string"}
	case "int":
		return map[string]interface{}{"type": "integer"}
	case "bool":
		return map[string]interface{}{"type": "boolean"}
	}
	if strings.HasPrefix(fieldType, "[]") {
		return map[string]interface{}{"type": "array", "items": schemaType(strings.TrimPrefix(fieldType, "[]"))}
	}
	return map[string]interface{}{}
}

func generateJSONSchema(outDir string, docs []SectionDoc) error {
	properties := make(map[string]interface{})

	for _, section := range docs {
		fields := make(map[string]interface{})
		for _, field := range section.Fields {
			fieldSchema := schemaType(field.Type)
			fieldSchema["description"] = field.Description
			if field.Default != "" {
				var def interface{}
				// Defaults are TOML literals; the scalar and array forms used here are valid JSON too.
				if err := json.Unmarshal([]byte(field.Default), &def); err == nil {
					fieldSchema["default"] = def
				}
			}
			if len(field.ValidValues) > 0 {
				fieldSchema["enum"] = field.ValidValues
			}
			fields[field.Name] = fieldSchema
		}
		properties[section.Name] = map[string]interface{}{
			"type":                 "object",
			"description":          section.Description,
			"properties":           fields,
			"additionalProperties": false,
		}
	}

	schema := map[string]interface{}{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"title":                "logfold Configuration",
		"description":          "Configuration schema for logfold",
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(outDir, "config.schema.json", data)
}

func generateMarkdownDocs(outDir string, docs []SectionDoc) error {
	var sb strings.Builder

	sb.WriteString("# Configuration\n\n")
	sb.WriteString("logfold reads `config.toml` from the working directory, or the file given with `-config`. ")
	sb.WriteString("Every field is optional and unknown fields are rejected. ")
	sb.WriteString("Command line flags override the file. Check a file with `logfold validate -config <path>`.\n\n")

	for _, section := range docs {
		sb.WriteString("### `[" + section.Name + "]`\n\n")
		sb.WriteString(section.Description + "\n\n")

		sb.WriteString("| Field | Type | Default | Description |\n")
		sb.WriteString("|-------|------|---------|-------------|\n")

		for _, field := range section.Fields {
			defaultVal := field.Default
			if defaultVal == "" {
				defaultVal = "-"
			}
			desc := field.Description
			if len(field.ValidValues) > 0 {
				desc += fmt.Sprintf(" (valid: `%s`)", strings.Join(field.ValidValues, "`, `"))
			}
			sb.WriteString(fmt.Sprintf("| `%s` | %s | `%s` | %s |\n",
				field.Name, field.Type, defaultVal, desc))
		}

		sb.WriteString("\n")
	}

	return writeOutput(outDir, filepath.Join("docs", "configuration.md"), []byte(sb.String()))
}
