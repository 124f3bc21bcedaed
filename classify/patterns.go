package classify

import (
	"regexp"
	"strings"
)

// signature is a named content pattern.
type signature struct {
	name string
	re   *regexp.Regexp
}

// codeSignatures is evaluated in declaration order.
var codeSignatures = []signature{
	{"keyword", regexp.MustCompile(`(?m)^\s*(def|class|import|package|func|function|var|let|const|public|private|protected|static|struct|enum|interface|return|using|namespace|#include|#define)\b`)},
	{"call", regexp.MustCompile(`\b[A-Za-z_][\w.]*\([^()\n]*\)`)},
	{"block-punct", regexp.MustCompile(`(?m)[{};]\s*$`)},
	{"assignment", regexp.MustCompile(`\b[A-Za-z_]\w*(\[[^\]\n]*\])?\s*(:=|\+=|-=|\*=|/=|==|!=|=>|->|=)\s*\S`)},
	{"comment", regexp.MustCompile(`(?m)^\s*(//|/\*|\*/|#!|#\s|--\s|<!--|;;)`)},
	{"shell", regexp.MustCompile(`(?m)^\s*(\$\s|>>>\s|PS>|C:\\>|sudo\s|apt(-get)?\s|pip3?\s|npm\s|git\s|cd\s|ls(\s|$)|echo\s|export\s|curl\s|chmod\s|mkdir\s)`)},
	{"markup", regexp.MustCompile(`</?[A-Za-z][\w:-]*(\s[^<>\n]*)?/?>`)},
	{"sql", regexp.MustCompile(`(?is)\b(select|insert\s+into|update|delete\s+from)\b.*\b(from|values|set|where)\b`)},
	{"indentation", regexp.MustCompile(`(?m)^( {2,}|\t)\S`)},
	{"operators", regexp.MustCompile(`&&|\|\||::|<<|>>|\+\+|!=|<=|>=`)},
}

// minSignatures is the number of distinct signatures that marks text as code.
const minSignatures = 2

// punctuationThreshold is the code-punctuation ratio above which text is code.
const punctuationThreshold = 0.1

// codePunctuation lists the characters counted by PunctuationRatio.
const codePunctuation = "{}[]()<>;=|&$#@%^~\\`"

// LooksLikeCode reports whether text resembles program code. Text is code
// when at least two distinct signatures match, or when the share of code
// punctuation characters exceeds 0.1. Empty or whitespace-only text is
// never code.
func LooksLikeCode(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	if countSignatures(text, minSignatures) >= minSignatures {
		return true
	}
	return PunctuationRatio(text) > punctuationThreshold
}

// Signatures returns the names of the code signatures matching text, in
// declaration order.
func Signatures(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var names []string
	for _, sig := range codeSignatures {
		if sig.re.MatchString(text) {
			names = append(names, sig.name)
		}
	}
	return names
}

// countSignatures counts matching signatures, stopping once limit is reached.
func countSignatures(text string, limit int) int {
	n := 0
	for _, sig := range codeSignatures {
		if sig.re.MatchString(text) {
			n++
			if n >= limit {
				break
			}
		}
	}
	return n
}

// PunctuationRatio returns the share of code punctuation characters among
// all characters of the trimmed text.
func PunctuationRatio(text string) float64 {
	text = strings.TrimSpace(text)
	total := 0
	punct := 0
	for _, r := range text {
		total++
		if strings.ContainsRune(codePunctuation, r) {
			punct++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(punct) / float64(total)
}
