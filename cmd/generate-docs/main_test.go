package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/drew/logfold/internal/config"
)

func TestBuildDocumentation(t *testing.T) {
	docs := buildDocumentation()
	if len(docs) != 3 {
		t.Fatalf("sections = %d, want 3", len(docs))
	}

	fields := make(map[string]FieldDoc)
	for _, section := range docs {
		for _, f := range section.Fields {
			fields[section.Name+"."+f.Name] = f
		}
	}

	tests := []struct {
		key, typ, def string
	}{
		{"defaults.outputRoot", "string", `".logfold"`},
		{"defaults.parallel", "int", "4"},
		{"render.stripANSI", "bool", "true"},
		{"render.expandGlyph", "string", `"[+]"`},
		{"inputs.paths", "[]string", ""},
	}
	for _, tt := range tests {
		f, ok := fields[tt.key]
		if !ok {
			t.Errorf("%s not documented", tt.key)
			continue
		}
		if f.Type != tt.typ || f.Default != tt.def {
			t.Errorf("%s = %s %q, want %s %q", tt.key, f.Type, f.Default, tt.typ, tt.def)
		}
	}
	if got := fields["defaults.format"].ValidValues; strings.Join(got, ",") != "html,text,state,tui" {
		t.Errorf("format enum = %v", got)
	}
}

func TestGeneratedFiles(t *testing.T) {
	dir := t.TempDir()
	docs := buildDocumentation()

	if err := generateExampleTOML(dir, docs); err != nil {
		t.Fatalf("generateExampleTOML() error = %v", err)
	}
	if err := generateJSONSchema(dir, docs); err != nil {
		t.Fatalf("generateJSONSchema() error = %v", err)
	}
	if err := generateMarkdownDocs(dir, docs); err != nil {
		t.Fatalf("generateMarkdownDocs() error = %v", err)
	}

	// The example must load as a real config
	var cfg config.Config
	meta, err := toml.DecodeFile(filepath.Join(dir, "config.example.toml"), &cfg)
	if err != nil {
		t.Fatalf("example config does not parse: %v", err)
	}
	if len(meta.Undecoded()) != 0 {
		t.Errorf("example config has unknown keys: %v", meta.Undecoded())
	}
	if cfg.Defaults.OutputRoot != ".logfold" || cfg.Render.Indent != 2 {
		t.Errorf("example config = %+v", cfg)
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.schema.json"))
	if err != nil {
		t.Fatal(err)
	}
	var schema map[string]interface{}
	if err := json.Unmarshal(data, &schema); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if _, ok := schema["properties"].(map[string]interface{})["render"]; !ok {
		t.Error("schema missing render section")
	}

	md, err := os.ReadFile(filepath.Join(dir, "docs", "configuration.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(md), "### `[inputs]`") {
		t.Error("markdown missing inputs section")
	}
}
