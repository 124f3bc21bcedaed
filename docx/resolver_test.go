package docx

import (
	"testing"
)

func TestNewStyleResolver_Nil(t *testing.T) {
	sr := NewStyleResolver(nil)
	if sr == nil {
		t.Fatal("NewStyleResolver(nil) returned nil")
	}

	style := sr.Resolve("Anything")
	if style.FontName != "Calibri" {
		t.Errorf("FontName = %v, want Calibri", style.FontName)
	}
	if style.FontSize != 11 {
		t.Errorf("FontSize = %v, want 11", style.FontSize)
	}
	if style.Name != "Anything" {
		t.Errorf("Name = %q, want the style ID", style.Name)
	}
}

func TestStyleResolver_DefaultParagraphStyle(t *testing.T) {
	styles := &stylesXML{
		Styles: []styleDefXML{
			{StyleID: "Heading1", Type: "paragraph", Name: styleNameXML{Val: "heading 1"}},
			{StyleID: "Normal", Type: "paragraph", Default: "1", Name: styleNameXML{Val: "Normal"}},
		},
	}
	sr := NewStyleResolver(styles)

	if got := sr.DefaultParagraphStyle(); got != "Normal" {
		t.Errorf("DefaultParagraphStyle() = %q, want Normal", got)
	}
	if got := sr.Resolve("").Name; got != "Normal" {
		t.Errorf("Resolve(\"\").Name = %q, want Normal", got)
	}
}

func TestStyleResolver_Inheritance(t *testing.T) {
	styles := &stylesXML{
		DocDefaults: docDefaultsXML{
			RPrDefault: rPrDefaultXML{RPr: runPropsXML{Font: fontXML{ASCII: "Cambria"}, FontSize: sizeXML{Val: "24"}}},
		},
		Styles: []styleDefXML{
			{
				StyleID: "Base",
				Type:    "paragraph",
				Name:    styleNameXML{Val: "Base"},
				PPr:     paragraphPropsXML{Indent: indentXML{Left: "720"}},
			},
			{
				StyleID: "Code",
				Type:    "paragraph",
				Name:    styleNameXML{Val: "Code"},
				BasedOn: basedOnXML{Val: "Base"},
				RPr:     runPropsXML{Font: fontXML{HAnsi: "Menlo"}},
			},
			{
				StyleID: "Loop",
				Type:    "paragraph",
				BasedOn: basedOnXML{Val: "Loop"},
			},
			{
				StyleID: "Orphan",
				Type:    "paragraph",
				Name:    styleNameXML{Val: "Orphan"},
				BasedOn: basedOnXML{Val: "DoesNotExist"},
			},
		},
	}
	sr := NewStyleResolver(styles)

	tests := []struct {
		id     string
		name   string
		font   string
		size   float64
		indent float64
	}{
		{"Base", "Base", "Cambria", 12, 36},
		{"Code", "Code", "Menlo", 12, 36},
		{"Loop", "Loop", "Cambria", 12, 0},
		{"Orphan", "Orphan", "Cambria", 12, 0},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s := sr.Resolve(tt.id)
			if s.Name != tt.name || s.FontName != tt.font || s.FontSize != tt.size || s.IndentLeft != tt.indent {
				t.Errorf("Resolve(%q) = %+v", tt.id, s)
			}
		})
	}

	// Cached results are returned as-is.
	if sr.Resolve("Code") != sr.Resolve("Code") {
		t.Error("Resolve() should cache resolved styles")
	}
}

func TestStyleResolver_ResolveRun(t *testing.T) {
	styles := &stylesXML{
		Styles: []styleDefXML{
			{StyleID: "Normal", Type: "paragraph", Default: "1", Name: styleNameXML{Val: "Normal"}},
			{StyleID: "Mono", Type: "character", Name: styleNameXML{Val: "Mono"}, RPr: runPropsXML{Font: fontXML{ASCII: "Courier New"}}},
		},
	}
	sr := NewStyleResolver(styles)

	tests := []struct {
		name  string
		props runPropsXML
		font  string
		size  float64
	}{
		{"inherits paragraph", runPropsXML{}, "Calibri", 11},
		{"character style", runPropsXML{Style: styleRefXML{Val: "Mono"}}, "Courier New", 11},
		{"direct wins", runPropsXML{Style: styleRefXML{Val: "Mono"}, Font: fontXML{ASCII: "Arial"}, FontSize: sizeXML{Val: "20"}}, "Arial", 10},
		{"unknown character style", runPropsXML{Style: styleRefXML{Val: "Nope"}}, "Calibri", 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := sr.ResolveRun("Normal", tt.props)
			if run.FontName != tt.font || run.FontSize != tt.size {
				t.Errorf("ResolveRun() = %+v, want %s %vpt", run, tt.font, tt.size)
			}
		})
	}
}

func TestParseHalfPoints(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"24", 12},
		{"22", 11},
		{"", 0},
		{"invalid", 0},
	}

	for _, tt := range tests {
		if got := parseHalfPoints(tt.input); got != tt.want {
			t.Errorf("parseHalfPoints(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseTwips(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"720", 36},
		{"1440", 72},
		{"864", 43.2},
		{"", 0},
		{"invalid", 0},
	}

	for _, tt := range tests {
		if got := parseTwips(tt.input); got != tt.want {
			t.Errorf("parseTwips(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
