package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationResult holds the results of config validation
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationError
}

func newResult() *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}
}

func (r *ValidationResult) fail(field, msg string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: msg})
}

func (r *ValidationResult) warn(field, msg string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Message: msg})
}

// ValidateConfig validates an already-loaded config
func ValidateConfig(cfg *Config) (*ValidationResult, error) {
	result := newResult()

	if cfg == nil {
		return result, nil
	}

	validateDefaults(&cfg.Defaults, result)
	validateRender(&cfg.Render, result)
	validateInputs(&cfg.Inputs, result)

	return result, nil
}

// ValidateConfigFile validates a TOML config file
func ValidateConfigFile(path string) (*ValidationResult, error) {
	result := newResult()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	metadata, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		result.fail("", fmt.Sprintf("Invalid TOML syntax: %v", err))
		return result, nil
	}

	for _, key := range metadata.Undecoded() {
		result.fail(key.String(), "Unknown configuration field")
	}

	validateDefaults(&cfg.Defaults, result)
	validateRender(&cfg.Render, result)
	validateInputs(&cfg.Inputs, result)

	return result, nil
}

// validateDefaults validates the defaults section
func validateDefaults(defaults *DefaultsConfig, result *ValidationResult) {
	if defaults.Format != "" {
		validFormats := []string{"html", "text", "state", "tui"}
		if !contains(validFormats, defaults.Format) {
			result.fail("defaults.format", fmt.Sprintf("Invalid format '%s'. Valid options: %s", defaults.Format, strings.Join(validFormats, ", ")))
		}
	}

	if defaults.UIMode != "" {
		validModes := []string{"basic", "full"}
		if !contains(validModes, defaults.UIMode) {
			result.fail("defaults.uiMode", fmt.Sprintf("Invalid UI mode '%s'. Valid options: %s", defaults.UIMode, strings.Join(validModes, ", ")))
		}
	}

	if defaults.Parallel < 0 {
		result.fail("defaults.parallel", "Parallel must be non-negative")
	}

	if filepath.IsAbs(defaults.OutputRoot) {
		result.warn("defaults.outputRoot", "Absolute output root makes the config machine-specific")
	}
}

// validateRender validates the render section
func validateRender(render *RenderConfig, result *ValidationResult) {
	if render.Indent < 0 {
		result.fail("render.indent", "Indent must be non-negative")
	}
	if render.Indent > 8 {
		result.warn("render.indent", fmt.Sprintf("Indent of %d spaces wastes most of the line on deep trees", render.Indent))
	}

	// Both glyphs are drawn in the same slot, so they must be told apart.
	if render.ExpandGlyph != "" && render.ExpandGlyph == render.ContractGlyph {
		result.fail("render.contractGlyph", "Expand and contract glyphs must differ")
	}
	if (render.ExpandGlyph == "") != (render.ContractGlyph == "") {
		result.warn("render", "Only one glyph is set; the other falls back to its default")
	}
}

// validateInputs validates the inputs section
func validateInputs(inputs *InputsConfig, result *ValidationResult) {
	for i, pattern := range inputs.Paths {
		field := fmt.Sprintf("inputs.paths[%d]", i)
		if strings.TrimSpace(pattern) == "" {
			result.fail(field, "Input path is empty")
			continue
		}
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			result.fail(field, fmt.Sprintf("Invalid pattern '%s'", pattern))
		}
	}
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// PrintValidationResult prints the validation result in a human-readable format
func PrintValidationResult(path string, result *ValidationResult) {
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("📋 Validating: %s\n", path)

	if result.Valid && len(result.Warnings) == 0 {
		fmt.Println("✅ Configuration is valid!")
		fmt.Println()
		return
	}

	if len(result.Errors) > 0 {
		fmt.Printf("\n❌ Found %d error(s):\n", len(result.Errors))
		for _, err := range result.Errors {
			fmt.Printf("  • %s\n", formatIssue(err))
		}
		fmt.Println()
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("⚠️  Found %d warning(s):\n", len(result.Warnings))
		for _, warn := range result.Warnings {
			fmt.Printf("  • %s\n", formatIssue(warn))
		}
		fmt.Println()
	}

	if !result.Valid {
		fmt.Println("❌ Configuration is INVALID")
	} else {
		fmt.Println("✅ Configuration is valid (with warnings)")
	}
	fmt.Println()
}

func formatIssue(e ValidationError) string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s", e.Field, e.Message)
	}
	return e.Message
}
