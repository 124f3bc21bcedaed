package model

// SpanKind identifies what a classified span of text is.
type SpanKind int

const (
	// SpanProse is ordinary body text.
	SpanProse SpanKind = iota
	// SpanCode is program text; Language is set.
	SpanCode
	// SpanAdmonition is a callout; Directive and Lead are set.
	SpanAdmonition
)

// String returns the string representation of the span kind.
func (k SpanKind) String() string {
	switch k {
	case SpanProse:
		return "prose"
	case SpanCode:
		return "code"
	case SpanAdmonition:
		return "admonition"
	default:
		return "unknown"
	}
}

// Span is a classified range of a document. Start and End are paragraph
// indices for spans built from paragraph records (End exclusive); spans
// detected on markup text leave them at zero.
type Span struct {
	Kind  SpanKind
	Start int
	End   int
	Text  string

	Language string // SpanCode only

	Directive string // SpanAdmonition only, e.g. "seealso"
	Lead      string // SpanAdmonition only, text after the colon on the first line
}

// ProseSpan returns a prose span for the paragraph at position i.
func ProseSpan(i int, p Paragraph) Span {
	return Span{Kind: SpanProse, Start: i, End: i + 1, Text: p.Text}
}

// CodeSpan returns a code span covering the given block.
func CodeSpan(b Block) Span {
	return Span{Kind: SpanCode, Start: b.Start, End: b.End, Text: b.Text, Language: b.Language}
}

// AdmonitionSpan returns an admonition span for raw markup text.
func AdmonitionSpan(text, directive, lead string) Span {
	return Span{Kind: SpanAdmonition, Text: text, Directive: directive, Lead: lead}
}
