package classify

import (
	"testing"

	"github.com/tsawler/docxrst/model"
)

func TestClassifier_Classify(t *testing.T) {
	c := New()

	tests := []struct {
		name       string
		para       model.Paragraph
		wantCode   bool
		wantSignal Signal
		wantLang   string
	}{
		{
			name:       "code style",
			para:       model.Paragraph{Text: "def f():\n    return 1", StyleName: "Source Code"},
			wantCode:   true,
			wantSignal: SignalStyle,
			wantLang:   "python",
		},
		{
			name:       "style keyword is case folded",
			para:       model.Paragraph{Text: "plain words", StyleName: "HTML PREFORMATTED"},
			wantCode:   true,
			wantSignal: SignalStyle,
		},
		{
			name:       "monospace font",
			para:       model.Paragraph{Text: "SELECT * FROM t WHERE x=1", StyleName: "Normal", FontName: "Courier New"},
			wantCode:   true,
			wantSignal: SignalFont,
			wantLang:   "sql",
		},
		{
			name:       "indented code",
			para:       model.Paragraph{Text: "const x = require(\"fs\");", LeftIndent: 48},
			wantCode:   true,
			wantSignal: SignalIndent,
			wantLang:   "javascript",
		},
		{
			name:       "indent at threshold is content only",
			para:       model.Paragraph{Text: "const x = require(\"fs\");", LeftIndent: 36},
			wantCode:   true,
			wantSignal: SignalContent,
			wantLang:   "javascript",
		},
		{
			name:       "indented prose",
			para:       model.Paragraph{Text: "An indented quotation from the manual.", LeftIndent: 72},
			wantSignal: SignalNone,
		},
		{
			name:       "prose",
			para:       model.Paragraph{Text: "hello world", StyleName: "Normal", FontName: "Calibri"},
			wantSignal: SignalNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := c.Classify(tt.para)
			if d.IsCode != tt.wantCode {
				t.Errorf("IsCode = %v, want %v", d.IsCode, tt.wantCode)
			}
			if d.Signal != tt.wantSignal {
				t.Errorf("Signal = %v, want %v", d.Signal, tt.wantSignal)
			}
			if d.Language != tt.wantLang {
				t.Errorf("Language = %q, want %q", d.Language, tt.wantLang)
			}
		})
	}
}

func TestClassifier_StyleWinsOverContent(t *testing.T) {
	c := New()
	// Style already decided; the content would not qualify on its own.
	d := c.Classify(model.Paragraph{Text: "", StyleName: "Code"})
	if !d.IsCode || d.Signal != SignalStyle {
		t.Errorf("blank code-styled paragraph: got %+v, want code via style", d)
	}
	if d.Language != "" {
		t.Errorf("Language = %q, want no hint", d.Language)
	}
}

func TestClassifier_Pure(t *testing.T) {
	c := New()
	paras := []model.Paragraph{
		{Text: "Intro text."},
		{Text: "def f():\n    return 1", FontName: "Consolas"},
		{Text: "x = compute(a, b)"},
		{Text: "The end."},
	}
	for _, p := range paras {
		a, b := c.Classify(p), c.Classify(p)
		if a != b {
			t.Errorf("Classify(%q) not stable: %+v vs %+v", p.Text, a, b)
		}
	}
}

func TestClassifier_CustomConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StyleKeywords = []string{"listing"}
	c := NewWithConfig(cfg)

	if !c.IsCode(model.Paragraph{Text: "words", StyleName: "Program Listing"}) {
		t.Error("custom keyword should classify as code")
	}
	if c.IsCode(model.Paragraph{Text: "words", StyleName: "Code"}) {
		t.Error("default keyword should no longer apply")
	}
}

func TestSignal_String(t *testing.T) {
	tests := map[Signal]string{
		SignalNone:    "none",
		SignalStyle:   "style",
		SignalFont:    "font",
		SignalIndent:  "indent",
		SignalContent: "content",
		Signal(99):    "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("Signal(%d).String() = %q, want %q", s, got, want)
		}
	}
}
