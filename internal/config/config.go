// Package config handles loading, validation, and merging of logfold configuration files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/drew/logfold/internal/blocktree"
)

// Config represents the complete logfold configuration
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Render   RenderConfig   `toml:"render"`
	Inputs   InputsConfig   `toml:"inputs"`
}

// DefaultsConfig holds global defaults
type DefaultsConfig struct {
	// Directory for rendered documents and the report index
	OutputRoot string `toml:"outputRoot" doc:"Directory for rendered documents and the report index"`
	// Output format for each document
	Format string `toml:"format" doc:"Output format for each document: html, text, state or tui" enum:"html,text,state,tui"`
	// UI mode for the command summary: basic or full
	UIMode string `toml:"uiMode" doc:"UI mode for the command summary: basic or full" enum:"basic,full"`
	// Maximum number of documents rendered at the same time
	Parallel int `toml:"parallel" doc:"Maximum number of documents rendered at the same time"`
}

// RenderConfig controls how block trees are drawn
type RenderConfig struct {
	// Page title used instead of the document title
	Title string `toml:"title" doc:"Page title used instead of the document title"`
	// Header glyph shown while a block is collapsed
	ExpandGlyph string `toml:"expandGlyph" doc:"Header glyph shown while a block is collapsed"`
	// Header glyph shown while a block is expanded
	ContractGlyph string `toml:"contractGlyph" doc:"Header glyph shown while a block is expanded"`
	// Remove ANSI escape sequences from message text
	StripANSI *bool `toml:"stripANSI" doc:"Remove ANSI escape sequences from message text"`
	// Spaces per nesting level in text output
	Indent int `toml:"indent" doc:"Spaces per nesting level in text output"`
}

// InputsConfig lists the documents to render when none are given on the command line
type InputsConfig struct {
	// Document files or doublestar patterns
	Paths []string `toml:"paths" doc:"Document files or doublestar patterns (e.g. logs/**/*.json)"`
}

// LoadConfig loads configuration from a TOML file.
// A missing default config.toml is not an error and yields a nil config.
func LoadConfig(path string) (*Config, error) {
	explicitPath := path != ""
	if path == "" {
		path = "config.toml"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicitPath {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, nil
	}

	var cfg Config
	metadata, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	undecoded := metadata.Undecoded()
	if len(undecoded) > 0 {
		var unknownFields []string
		for _, key := range undecoded {
			unknownFields = append(unknownFields, key.String())
		}
		return nil, fmt.Errorf("unknown fields in config: %s", strings.Join(unknownFields, ", "))
	}

	return &cfg, nil
}

// GetDefaults returns the default configuration
func GetDefaults() Config {
	return Config{
		Defaults: DefaultsConfig{
			OutputRoot: ".logfold",
			Format:     "html",
			UIMode:     "basic",
			Parallel:   4,
		},
		Render: RenderConfig{
			ExpandGlyph:   blocktree.DefaultGlyphs.Expand,
			ContractGlyph: blocktree.DefaultGlyphs.Contract,
			StripANSI:     boolPtr(true),
			Indent:        2,
		},
	}
}

// MergeWithDefaults merges loaded config with defaults
func MergeWithDefaults(cfg *Config) Config {
	defaults := GetDefaults()

	if cfg == nil {
		return defaults
	}

	if cfg.Defaults.OutputRoot == "" {
		cfg.Defaults.OutputRoot = defaults.Defaults.OutputRoot
	}
	if cfg.Defaults.Format == "" {
		cfg.Defaults.Format = defaults.Defaults.Format
	}
	if cfg.Defaults.UIMode == "" {
		cfg.Defaults.UIMode = defaults.Defaults.UIMode
	}
	if cfg.Defaults.Parallel == 0 {
		cfg.Defaults.Parallel = defaults.Defaults.Parallel
	}

	if cfg.Render.ExpandGlyph == "" {
		cfg.Render.ExpandGlyph = defaults.Render.ExpandGlyph
	}
	if cfg.Render.ContractGlyph == "" {
		cfg.Render.ContractGlyph = defaults.Render.ContractGlyph
	}
	if cfg.Render.StripANSI == nil {
		cfg.Render.StripANSI = defaults.Render.StripANSI
	}
	if cfg.Render.Indent == 0 {
		cfg.Render.Indent = defaults.Render.Indent
	}

	return *cfg
}

// Glyphs returns the configured header glyphs
func (r RenderConfig) Glyphs() blocktree.GlyphSet {
	return blocktree.GlyphSet{Expand: r.ExpandGlyph, Contract: r.ContractGlyph}
}

// ShouldStripANSI reports whether escape sequences are removed from messages
func (r RenderConfig) ShouldStripANSI() bool {
	return r.StripANSI == nil || *r.StripANSI
}

func boolPtr(b bool) *bool {
	return &b
}

// GenerateDefaultConfig creates a minimal config.toml file
func GenerateDefaultConfig(path string) (err error) {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", cerr)
		}
	}()

	content := `# logfold configuration file

[defaults]
outputRoot = ".logfold"
format = "html"

[render]
expandGlyph = "[+]"
contractGlyph = "[-]"

[inputs]
paths = ["logs/**/*.json", "logs/**/*.yaml"]
`

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
