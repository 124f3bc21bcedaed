package model

import "strings"

// Paragraph is a single paragraph record with the style metadata used for
// code detection.
type Paragraph struct {
	Index      int     // position in the document, 0-based
	Text       string  // paragraph text with runs joined
	StyleName  string  // display name of the paragraph style, "" if none
	FontName   string  // font of the first run, "" if unknown
	LeftIndent float64 // left indentation in points, 0 if not set
}

// IsBlank reports whether the paragraph has no visible text.
func (p Paragraph) IsBlank() bool {
	return strings.TrimSpace(p.Text) == ""
}

// Block is a run of consecutive code paragraphs merged into one unit.
type Block struct {
	Start    int    // index of the first paragraph in the block
	End      int    // index one past the last paragraph in the block
	Text     string // paragraph texts joined by newlines
	Language string // inferred language tag, "text" when unknown
}

// Len returns the number of paragraphs in the block.
func (b Block) Len() int {
	if b.End < b.Start {
		return 0
	}
	return b.End - b.Start
}

// IsEmpty reports whether the block contains no paragraphs.
func (b Block) IsEmpty() bool {
	return b.Len() == 0
}
