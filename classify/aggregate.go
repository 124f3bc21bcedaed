package classify

import (
	"strings"

	"github.com/tsawler/docxrst/model"
)

// Aggregate merges the run of code paragraphs starting at start into one
// block. The scan moves forward only: the first paragraph that is not code
// ends the block, even when later paragraphs would be code again.
//
// The returned block's End is the index of that first non-code paragraph
// (or len(paras)). Its language is the first hint seen, or DefaultLanguage.
// A start at or past the end of paras yields an empty block.
func (c *Classifier) Aggregate(paras []model.Paragraph, start int) model.Block {
	if start < 0 {
		start = 0
	}
	block := model.Block{Start: start, End: start, Language: DefaultLanguage}
	if start >= len(paras) {
		return block
	}

	var lines []string
	hint := ""
	i := start
	for ; i < len(paras); i++ {
		d := c.Classify(paras[i])
		if !d.IsCode {
			break
		}
		lines = append(lines, paras[i].Text)
		if hint == "" {
			hint = d.Language
		}
	}

	block.End = i
	block.Text = strings.Join(lines, "\n")
	if hint != "" {
		block.Language = hint
	}
	return block
}

// Segment classifies a whole document. Consecutive code paragraphs become
// one code span; every prose paragraph becomes its own prose span. Spans
// are returned in document order and cover every paragraph exactly once.
func (c *Classifier) Segment(paras []model.Paragraph) []model.Span {
	spans := make([]model.Span, 0, len(paras))
	for i := 0; i < len(paras); {
		if !c.IsCode(paras[i]) {
			spans = append(spans, model.ProseSpan(i, paras[i]))
			i++
			continue
		}
		block := c.Aggregate(paras, i)
		spans = append(spans, model.CodeSpan(block))
		i = block.End
	}
	return spans
}

// CodeBlocks returns only the code blocks of a document, in order.
func (c *Classifier) CodeBlocks(paras []model.Paragraph) []model.Block {
	var blocks []model.Block
	for _, s := range c.Segment(paras) {
		if s.Kind == model.SpanCode {
			blocks = append(blocks, model.Block{Start: s.Start, End: s.End, Text: s.Text, Language: s.Language})
		}
	}
	return blocks
}
