package directive

import (
	"regexp"
	"strings"

	"github.com/tsawler/docxrst/model"
)

// admonition maps a callout keyword to its directive name.
type admonition struct {
	keyword   string
	directive string
}

// admonitionTable is matched case-insensitively, in declaration order.
var admonitionTable = []admonition{
	{"note", "note"},
	{"see also", "seealso"},
	{"attention", "attention"},
	{"caution", "caution"},
	{"error", "error"},
	{"danger", "danger"},
	{"hint", "hint"},
	{"tip", "tip"},
	{"important", "important"},
	{"warning", "warning"},
}

// leadPattern matches "keyword: rest" with optional emphasis markers around
// the keyword, e.g. "**Note**: text" or "*Tip*:".
var leadPattern = buildLeadPattern()

// directiveOpener matches the header line of any directive, including
// substitution definitions such as ".. |x| image:: a.png".
var directiveOpener = regexp.MustCompile(`^\s*\.\.\s+(\|[^|]+\|\s+)?[\w:.+-]+::(\s|$)`)

func buildLeadPattern() *regexp.Regexp {
	keywords := make([]string, len(admonitionTable))
	for i, a := range admonitionTable {
		keywords[i] = regexp.QuoteMeta(a.keyword)
	}
	return regexp.MustCompile(`(?i)^\s*[\*_]*\s*(` + strings.Join(keywords, "|") + `)\s*[\*_]*\s*:\s*(.*)$`)
}

// Keywords returns the admonition keywords in match order.
func Keywords() []string {
	out := make([]string, len(admonitionTable))
	for i, a := range admonitionTable {
		out[i] = a.keyword
	}
	return out
}

// directiveFor returns the directive name for a matched keyword.
func directiveFor(keyword string) string {
	keyword = strings.Join(strings.Fields(strings.ToLower(keyword)), " ")
	for _, a := range admonitionTable {
		if a.keyword == keyword {
			return a.directive
		}
	}
	return "note"
}

// DetectAdmonition reports whether the first line of group is a callout
// lead. The returned span carries the directive name and the text after the
// colon.
func DetectAdmonition(group string) (model.Span, bool) {
	m := leadPattern.FindStringSubmatch(strings.TrimRight(firstLine(group), " \t\r"))
	if m == nil {
		return model.Span{}, false
	}
	return model.AdmonitionSpan(group, directiveFor(m[1]), strings.TrimSpace(m[2])), true
}

// Admonitions rewrites callout groups of markup as admonition directives.
//
// A group is a maximal run of non-blank lines. When the first line of a
// group is a callout lead, the line becomes ".. <directive>:: <rest>" with
// the original leading indentation, and every other line of the group is
// indented by Indent. The blank lines between groups keep their number;
// whitespace-only ones are emptied.
//
// Groups inside a literal context pass through unchanged: the body of a
// directive or of a paragraph ending in "::", that is, lines indented deeper
// than the line that opened it.
//
// Admonitions is idempotent.
func Admonitions(markup string) string {
	lines := strings.Split(markup, "\n")
	out := make([]string, 0, len(lines))

	ctx := -1 // indentation of the line opening the literal context
	for i := 0; i < len(lines); {
		if isBlank(lines[i]) {
			out = append(out, "")
			i++
			continue
		}

		j := i
		for j < len(lines) && !isBlank(lines[j]) {
			j++
		}
		group := lines[i:j]
		i = j

		if ctx >= 0 && indentOf(group[0]) <= ctx {
			ctx = -1
		}

		rewritten := group
		if ctx < 0 {
			rewritten = rewriteGroup(group)
		}
		out = append(out, rewritten...)
		ctx = updateContext(ctx, rewritten)
	}
	return strings.Join(out, "\n")
}

// rewriteGroup turns a callout group into directive form, or returns it
// unchanged.
func rewriteGroup(group []string) []string {
	span, ok := DetectAdmonition(group[0])
	if !ok {
		return group
	}

	lead := group[0]
	header := lead[:indentOf(lead)] + ".. " + span.Directive + "::"
	if span.Lead != "" {
		header += " " + span.Lead
	}

	lines := make([]string, 0, len(group))
	lines = append(lines, header)
	for _, line := range group[1:] {
		lines = append(lines, Indent+strings.TrimRight(line, " \t\r"))
	}
	return lines
}

// updateContext follows the literal context through lines.
func updateContext(ctx int, lines []string) int {
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		indent := indentOf(line)
		if ctx >= 0 && indent <= ctx {
			ctx = -1
		}
		if ctx >= 0 {
			continue
		}
		trimmed := strings.TrimRight(line, " \t\r")
		if directiveOpener.MatchString(trimmed) || strings.HasSuffix(trimmed, "::") {
			ctx = indent
		}
	}
	return ctx
}
