package model

import (
	"fmt"
	"strings"
)

// Severity is the importance of a log message
type Severity int

// Severity levels in ascending order. SeverityAll sorts above every other level
// so that it survives the maximum taken over a subtree.
const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityAll
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	case SeverityAll:
		return "ALL"
	}
	return "UNKNOWN"
}

// ParseSeverity converts a level name into a Severity
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INFO", "":
		return SeverityInfo, nil
	case "WARNING", "WARN":
		return SeverityWarning, nil
	case "ERROR":
		return SeverityError, nil
	case "ALL":
		return SeverityAll, nil
	}
	return SeverityInfo, fmt.Errorf("unknown severity level %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Max returns the higher of two severities
func Max(a, b Severity) Severity {
	if a > b {
		return a
	}
	return b
}

// Kind distinguishes blocks that carry messages from pure grouping blocks
type Kind string

const (
	KindHeader    Kind = "header-block"
	KindDirectory Kind = "directory-block"
)

// Valid reports whether k is a known block kind
func (k Kind) Valid() bool {
	return k == KindHeader || k == KindDirectory
}

// Message is a single line of log output owned by a block
type Message struct {
	Level Severity `json:"level" yaml:"level"`
	Text  string   `json:"text" yaml:"text"`
}

// BlockRecord is one block as delivered in a serialized document.
// Children are referenced by id and listed in display order.
type BlockRecord struct {
	ID       string    `json:"id" yaml:"id"`
	Kind     Kind      `json:"kind" yaml:"kind"`
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	Messages []Message `json:"messages,omitempty" yaml:"messages,omitempty"`
	Children []string  `json:"children,omitempty" yaml:"children,omitempty"`
}

// Document is the serialized block tree handed over by the static renderer
type Document struct {
	Title  string        `json:"title,omitempty" yaml:"title,omitempty"`
	Roots  []string      `json:"roots,omitempty" yaml:"roots,omitempty"`
	Blocks []BlockRecord `json:"blocks" yaml:"blocks"`
}

// FoldState is the per-block state exported for a hosting document
type FoldState struct {
	ID       string   `json:"id"`
	Expanded bool     `json:"expanded"`
	Foldable bool     `json:"foldable"`
	Severity Severity `json:"severity"`
	Depth    int      `json:"depth"`
}
