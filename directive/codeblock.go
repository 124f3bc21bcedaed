package directive

import (
	"strings"
)

// Indent is the body indentation of every directive written by this package.
const Indent = "   "

// DefaultLanguage is used when a code block has no language hint.
const DefaultLanguage = "text"

// CodeBlock renders text as a code-block directive. Non-blank lines are
// indented by Indent; blank lines stay empty. Leading and trailing blank
// lines of text are dropped. The result has no trailing newline.
func CodeBlock(text, language string) string {
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}

	var sb strings.Builder
	sb.WriteString(".. code-block:: ")
	sb.WriteString(language)
	sb.WriteString("\n")

	lines := trimBlankLines(strings.Split(text, "\n"))
	if len(lines) == 0 {
		return strings.TrimRight(sb.String(), "\n")
	}

	sb.WriteString("\n")
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}
		sb.WriteString(Indent)
		sb.WriteString(line)
	}
	return sb.String()
}

// trimBlankLines drops blank lines from both ends of lines.
func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && isBlank(lines[start]) {
		start++
	}
	for end > start && isBlank(lines[end-1]) {
		end--
	}
	return lines[start:end]
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// indentOf returns the number of leading space or tab bytes of line.
func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
