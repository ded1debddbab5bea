package ui

import (
	"fmt"
	"strings"

	"github.com/drew/logfold/internal/model"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[94m" // Bright blue - more readable on dark backgrounds
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
	ColorBold   = "\033[1m"
)

// Colors wraps text in ANSI codes when enabled
type Colors struct {
	enabled bool
}

// NewColors creates a new Colors instance
func NewColors(enabled bool) *Colors {
	return &Colors{enabled: enabled}
}

func (c *Colors) wrap(code, s string) string {
	if !c.enabled {
		return s
	}
	return code + s + ColorReset
}

// Red returns red colored text
func (c *Colors) Red(s string) string { return c.wrap(ColorRed, s) }

// Green returns green colored text
func (c *Colors) Green(s string) string { return c.wrap(ColorGreen, s) }

// Yellow returns yellow colored text
func (c *Colors) Yellow(s string) string { return c.wrap(ColorYellow, s) }

// Blue returns blue colored text
func (c *Colors) Blue(s string) string { return c.wrap(ColorBlue, s) }

// Cyan returns cyan colored text
func (c *Colors) Cyan(s string) string { return c.wrap(ColorCyan, s) }

// Gray returns gray colored text
func (c *Colors) Gray(s string) string { return c.wrap(ColorGray, s) }

// Bold returns bold text
func (c *Colors) Bold(s string) string { return c.wrap(ColorBold, s) }

// SeverityColor colors text by message severity
func (c *Colors) SeverityColor(sev model.Severity, text string) string {
	switch sev {
	case model.SeverityError:
		return c.Red(text)
	case model.SeverityWarning:
		return c.Yellow(text)
	case model.SeverityAll:
		return c.Blue(text)
	default:
		return text
	}
}

// StatusColor returns colored text based on document status
func (c *Colors) StatusColor(status string, text string) string {
	switch status {
	case "PASS":
		return c.Green(text)
	case "FAIL", "ERROR":
		return c.Red(text)
	case "WARN":
		return c.Yellow(text)
	case "NOTE":
		return c.Blue(text)
	default:
		return text
	}
}

// StatusSymbol returns a colored symbol for the status
func (c *Colors) StatusSymbol(status string) string {
	switch status {
	case "PASS":
		return c.Green("✓")
	case "FAIL", "ERROR":
		return c.Red("✗")
	case "WARN":
		return c.Yellow("⚠")
	case "NOTE":
		return c.Blue("ℹ")
	default:
		return " "
	}
}

// ProgressBar creates a simple progress bar
func (c *Colors) ProgressBar(current, total, width int) string {
	if total == 0 {
		return ""
	}

	percent := float64(current) / float64(total)
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	percentText := fmt.Sprintf(" %3.0f%%", percent*100)

	if c.enabled {
		if percent >= 1.0 {
			return c.Green(bar) + c.Green(percentText)
		} else if percent >= 0.5 {
			return c.Blue(bar) + percentText
		}
		return c.Gray(bar) + percentText
	}

	return bar + percentText
}
