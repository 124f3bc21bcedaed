package classify

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/tsawler/docxrst/model"
)

// Signal identifies which check produced a classification.
type Signal int

const (
	// SignalNone means no check fired; the paragraph is prose.
	SignalNone Signal = iota
	// SignalStyle means the paragraph style name looked like a code style.
	SignalStyle
	// SignalFont means the first run used a monospace font.
	SignalFont
	// SignalIndent means the paragraph was indented and its content looked like code.
	SignalIndent
	// SignalContent means the content alone looked like code.
	SignalContent
)

// String returns the string representation of the signal.
func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "none"
	case SignalStyle:
		return "style"
	case SignalFont:
		return "font"
	case SignalIndent:
		return "indent"
	case SignalContent:
		return "content"
	default:
		return "unknown"
	}
}

// Decision is the outcome of classifying one paragraph.
type Decision struct {
	IsCode   bool
	Language string // inferred language, "" when absent
	Signal   Signal
}

// Config holds the tables used by the Classifier.
type Config struct {
	// StyleKeywords are matched as substrings of the case-folded style name.
	StyleKeywords []string

	// MonospaceFonts are matched as substrings of the case-folded font name.
	MonospaceFonts []string

	// IndentThreshold is the left indent in points above which indented
	// content is checked for code.
	IndentThreshold float64
}

// DefaultConfig returns the default classifier configuration.
func DefaultConfig() Config {
	return Config{
		StyleKeywords: []string{
			"code", "source", "literal", "monospace", "courier",
			"verbatim", "preformatted", "console", "terminal",
		},
		MonospaceFonts: []string{
			"courier", "consolas", "monaco", "menlo", "lucida console",
			"lucida sans typewriter", "source code", "dejavu sans mono",
			"liberation mono", "ubuntu mono", "droid sans mono", "noto mono",
			"fira code", "fira mono", "inconsolata", "roboto mono",
			"jetbrains mono", "cascadia", "sf mono", "andale mono",
		},
		IndentThreshold: 36,
	}
}

// Classifier decides whether paragraphs are code.
type Classifier struct {
	config Config
}

// New creates a Classifier with the default configuration.
func New() *Classifier {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a Classifier with a custom configuration.
func NewWithConfig(config Config) *Classifier {
	return &Classifier{config: config}
}

// Config returns the classifier configuration.
func (c *Classifier) Config() Config {
	return c.config
}

// Classify decides whether a paragraph is code. The checks run in order
// (style, font, indentation with content, content) and the first positive
// one decides.
func (c *Classifier) Classify(p model.Paragraph) Decision {
	switch {
	case containsAny(fold(p.StyleName), c.config.StyleKeywords):
		return codeDecision(p.Text, SignalStyle)
	case containsAny(fold(p.FontName), c.config.MonospaceFonts):
		return codeDecision(p.Text, SignalFont)
	}

	if !LooksLikeCode(p.Text) {
		return Decision{Signal: SignalNone}
	}
	if p.LeftIndent > c.config.IndentThreshold {
		return codeDecision(p.Text, SignalIndent)
	}
	return codeDecision(p.Text, SignalContent)
}

// IsCode reports whether a paragraph is code.
func (c *Classifier) IsCode(p model.Paragraph) bool {
	return c.Classify(p).IsCode
}

func codeDecision(text string, sig Signal) Decision {
	lang := InferLanguage(text)
	if lang == DefaultLanguage {
		lang = ""
	}
	return Decision{IsCode: true, Language: lang, Signal: sig}
}

// fold returns the Unicode case-folded form of s.
func fold(s string) string {
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}

func containsAny(s string, subs []string) bool {
	if s == "" {
		return false
	}
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
