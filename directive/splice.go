package directive

import (
	"strings"

	"github.com/tsawler/docxrst/model"
)

// Range is a half-open byte range [Start, End) of a markup string. Ranges
// returned by the Find functions always begin at the start of a line and
// end at the end of a line, before its newline.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// FindExact locates the trimmed text of block in markup at or after byte
// offset from. Only occurrences that cover whole lines count.
func FindExact(markup string, block model.Block, from int) (Range, bool) {
	needle := strings.TrimSpace(block.Text)
	if needle == "" || from < 0 || from > len(markup) {
		return Range{}, false
	}

	for pos := from; pos <= len(markup)-len(needle); {
		i := strings.Index(markup[pos:], needle)
		if i < 0 {
			break
		}
		start := pos + i
		end := start + len(needle)
		if atLineStart(markup, start) && atLineEnd(markup, end) {
			return Range{Start: start, End: end}, true
		}
		pos = start + 1
	}
	return Range{}, false
}

// FindByFirstLine locates the first line of markup, at or after byte offset
// from, that contains the trimmed first line of block. The range covers that
// line and every following line that is indented and not blank.
//
// This is a heuristic: unrelated indented text directly after the first
// line is swallowed into the range.
func FindByFirstLine(markup string, block model.Block, from int) (Range, bool) {
	first := strings.TrimSpace(firstLine(strings.TrimSpace(block.Text)))
	if first == "" || from < 0 || from > len(markup) {
		return Range{}, false
	}

	for start := lineStartAtOrAfter(markup, from); start < len(markup); {
		end := lineEnd(markup, start)
		if strings.Contains(markup[start:end], first) {
			return Range{Start: start, End: extendIndented(markup, end)}, true
		}
		start = end + 1
	}
	return Range{}, false
}

// extendIndented grows a range ending at end through the following run of
// indented non-blank lines.
func extendIndented(markup string, end int) int {
	for end < len(markup) {
		next := end + 1
		nextEnd := lineEnd(markup, next)
		line := markup[next:nextEnd]
		if isBlank(line) || indentOf(line) == 0 {
			break
		}
		end = nextEnd
	}
	return end
}

// SpliceResult reports what Splice did with each block, by block position.
type SpliceResult struct {
	Exact    []int
	Fallback []int
	Missed   []int
}

// Replaced returns the number of blocks that were spliced in.
func (r SpliceResult) Replaced() int {
	return len(r.Exact) + len(r.Fallback)
}

// Splice replaces each block's text in markup with its code-block directive.
// Blocks are handled in order with a cursor that only moves forward, so a
// block never matches inside the output of an earlier one. A block that
// neither Find function locates is left untouched and listed in Missed.
//
// A spliced directive is kept apart from neighbouring text by blank lines.
func Splice(markup string, blocks []model.Block) (string, SpliceResult) {
	var res SpliceResult
	var sb strings.Builder
	sb.Grow(len(markup))

	cursor := 0
	for i, block := range blocks {
		if block.IsEmpty() || strings.TrimSpace(block.Text) == "" {
			continue
		}

		r, ok := FindExact(markup, block, cursor)
		if ok {
			res.Exact = append(res.Exact, i)
		} else if r, ok = FindByFirstLine(markup, block, cursor); ok {
			res.Fallback = append(res.Fallback, i)
		} else {
			res.Missed = append(res.Missed, i)
			continue
		}

		sb.WriteString(markup[cursor:r.Start])
		if r.Start > 0 && !precededByBlank(markup, r.Start) {
			sb.WriteString("\n")
		}
		sb.WriteString(CodeBlock(block.Text, block.Language))
		if r.End < len(markup) && !followedByBlank(markup, r.End) {
			sb.WriteString("\n")
		}
		cursor = r.End
	}
	sb.WriteString(markup[cursor:])
	return sb.String(), res
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func atLineStart(s string, i int) bool {
	return i == 0 || s[i-1] == '\n'
}

func atLineEnd(s string, i int) bool {
	return i == len(s) || s[i] == '\n'
}

// lineStartAtOrAfter returns i when it starts a line, otherwise the start
// of the next line.
func lineStartAtOrAfter(s string, i int) int {
	if atLineStart(s, i) {
		return i
	}
	j := strings.IndexByte(s[i:], '\n')
	if j < 0 {
		return len(s)
	}
	return i + j + 1
}

// lineEnd returns the offset of the newline ending the line that starts at i.
func lineEnd(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	j := strings.IndexByte(s[i:], '\n')
	if j < 0 {
		return len(s)
	}
	return i + j
}

// precededByBlank reports whether the line before the one starting at i is
// blank.
func precededByBlank(s string, i int) bool {
	prevEnd := i - 1
	prevStart := strings.LastIndexByte(s[:prevEnd], '\n') + 1
	return isBlank(s[prevStart:prevEnd])
}

// followedByBlank reports whether the line after the one ending at i is
// blank. i is the offset of a newline.
func followedByBlank(s string, i int) bool {
	next := i + 1
	if next >= len(s) {
		return true
	}
	return isBlank(s[next:lineEnd(s, next)])
}
