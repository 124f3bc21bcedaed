package classify

import "regexp"

// DefaultLanguage is returned when no language scores above zero.
const DefaultLanguage = "text"

// languageSignature is an entry of the language table.
type languageSignature struct {
	language string
	patterns []*regexp.Regexp
}

// patterns compiles case-insensitive, multiline patterns.
func patterns(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		res[i] = regexp.MustCompile(`(?im)` + e)
	}
	return res
}

// languageTable is ordered: ties go to the language declared first.
var languageTable = []languageSignature{
	{"python", patterns(
		`^\s*def\s+\w+\s*\(.*\)\s*(->\s*[^:]+)?:`,
		`^\s*(from\s+[\w.]+\s+)?import\s+[\w.]+(\s+as\s+\w+)?\s*$`,
		`^\s*class\s+\w+(\(.*\))?:\s*$`,
		`^\s*(if|elif|else|for|while|try|except|finally|with)\b.*:\s*$`,
		`\bself\.\w+`,
		`\bprint\(`,
		`^\s*@\w+(\.\w+)*(\(.*\))?\s*$`,
		`\blambda\s+\w*\s*:`,
		`^\s*"""`,
	)},
	{"sql", patterns(
		`\bselect\b.+\bfrom\b`,
		`\binsert\s+into\b`,
		`\bupdate\s+\w+\s+set\b`,
		`\bdelete\s+from\b`,
		`\bcreate\s+(table|view|index|database|schema)\b`,
		`\bwhere\b.*(=|<|>|\blike\b|\bin\b|\bis\b)`,
		`\b(inner|left|right|full|cross)\s+join\b`,
		`\b(group|order)\s+by\b`,
		`\b(varchar|primary\s+key|not\s+null|foreign\s+key)\b`,
	)},
	{"bash", patterns(
		`^#!\s*/(usr/)?bin/(env\s+)?(ba|z|k)?sh\b`,
		`^\s*(sudo|apt|apt-get|yum|dnf|brew|pip3?|npm|yarn|git|cd|ls|mkdir|rm|cp|mv|chmod|chown|export|echo|curl|wget|tar|make|docker|kubectl)\s`,
		`^\s*\$\s+\S`,
		`\$\{\w+\}|"\$\w+"`,
		`^\s*(if|while|for)\s.*;\s*(then|do)\s*$`,
		`^\s*(fi|done|esac)\s*$`,
		`\|\s*(grep|awk|sed|sort|uniq|xargs|head|tail|wc)\b`,
		`\s--?[a-z][\w-]*(=\S+)?(\s|$)`,
	)},
	{"powershell", patterns(
		`\b(get|set|new|remove|add|invoke|write|import|export|start|stop)-[a-z]\w+`,
		`\s-(eq|ne|lt|gt|le|ge|like|match)\s`,
		`^\s*PS\s*[a-z]:\\.*>`,
		`\|\s*(where|select|foreach)-object\b`,
		`^\s*\$\w+\s*=\s*(get|new)-`,
	)},
	{"javascript", patterns(
		`\b(const|let|var)\s+\w+\s*=`,
		`\bfunction\s*\w*\s*\([^)]*\)\s*\{`,
		`=>\s*[{(\w]`,
		`\bconsole\.(log|error|warn|info)\(`,
		`\brequire\(['"]|\bmodule\.exports\b`,
		`\bdocument\.(getelementbyid|queryselector)`,
		`===|!==`,
		`\bawait\s+\w+`,
	)},
	{"typescript", patterns(
		`\b\w+\s*:\s*(string|number|boolean|any|void|unknown|never)\b`,
		`\binterface\s+\w+\s*\{`,
		`^\s*(export\s+)?type\s+\w+\s*=`,
		`\b(public|private|readonly)\s+\w+\s*:`,
		`^\s*import\s+.*\bfrom\s+['"]`,
		`\b(const|let)\s+\w+\s*:\s*\w+`,
	)},
	{"java", patterns(
		`\bpublic\s+(static\s+)?(final\s+)?(class|void|interface|enum)\b`,
		`\bsystem\.(out|err)\.print(ln)?\(`,
		`^\s*import\s+javax?\.`,
		`^\s*package\s+[\w.]+;`,
		`@override\b`,
		`\b(extends|implements)\s+[a-z]\w*`,
		`\b(private|protected|public)\s+[\w<>\[\]]+\s+\w+\s*[;=(]`,
	)},
	{"csharp", patterns(
		`^\s*using\s+system(\.\w+)*;`,
		`^\s*namespace\s+[\w.]+`,
		`\bconsole\.write(line)?\(`,
		`\{\s*get;\s*(set;)?\s*\}`,
		`\bvar\s+\w+\s*=\s*new\b`,
		`^\s*\[\w+(\(.*\))?\]\s*$`,
	)},
	{"go", patterns(
		`^\s*package\s+\w+\s*$`,
		`^\s*func\s+(\(\w+\s+\*?\w+\)\s*)?\w+\s*\(`,
		`\w\s*:=\s*`,
		`\bfmt\.\w+\(`,
		`^\s*import\s+(\(|")`,
		`\bif\s+err\s*!=\s*nil\b`,
		`\bdefer\s+\w+|\bchan\s+\w+|\bmake\(`,
	)},
	{"c", patterns(
		`^\s*#\s*include\s*[<"][\w/]+(\.h)?[>"]`,
		`\bprintf\s*\(`,
		`\b(int|void|char|float|double|long|unsigned)\s+\*?\w+\s*\(`,
		`\b(malloc|calloc|free|sizeof)\s*\(`,
		`^\s*#\s*(define|ifdef|ifndef|endif)\b`,
		`\breturn\s+0\s*;`,
	)},
	{"cpp", patterns(
		`^\s*#\s*include\s*<\w+>`,
		`\bstd::\w+`,
		`\b(cout|cerr|cin)\s*(<<|>>)`,
		`\btemplate\s*<`,
		`\w+::\w+`,
		`^\s*(public|private|protected):\s*$`,
		`\b(class|struct)\s+\w+\s*:\s*(public|private|protected)\s+\w+`,
	)},
	{"ruby", patterns(
		`^\s*def\s+\w+[?!]?(\(.*\))?\s*$`,
		`^\s*end\s*$`,
		`\bputs\s+`,
		`\.each\s+do\b|\bdo\s*\|\w+(,\s*\w+)*\|`,
		`^\s*require\s+['"]`,
		`\battr_(accessor|reader|writer)\b`,
		`:\w+\s*=>`,
	)},
	{"php", patterns(
		`<\?php`,
		`\$\w+\s*(=|->)`,
		`\becho\s+['"$]`,
		`\bfunction\s+\w+\s*\(\s*\$`,
		`\b(public|private|protected)\s+function\b`,
		`\barray\s*\(`,
	)},
	{"html", patterns(
		`<!doctype\s+html`,
		`<(html|head|body|div|span|p|a|ul|ol|li|table|tr|td|script|style|link|meta)(\s[^>]*)?>`,
		`</(html|head|body|div|span|p|a|ul|ol|li|table|tr|td|script|style)>`,
		`\b(href|src|class|id)\s*=\s*["']`,
		`<br\s*/?>`,
	)},
	{"xml", patterns(
		`<\?xml\s+version`,
		`<\w+:\w+[\s>/]`,
		`\bxmlns(:\w+)?\s*=`,
		`<!\[cdata\[`,
		`</\w+>`,
	)},
	{"json", patterns(
		`^\s*[{\[]\s*$`,
		`"[^"\n]+"\s*:\s*("|-?\d|\{|\[|true\b|false\b|null\b)`,
		`^\s*[}\]],?\s*$`,
		`:\s*(true|false|null)\s*,?\s*$`,
	)},
	{"yaml", patterns(
		`^---\s*$`,
		`^\s*[\w.-]+:\s*$`,
		`^\s*[\w.-]+:\s+[^\s{"].*$`,
		`^\s*-\s+[\w.-]+:\s`,
	)},
	{"ini", patterns(
		`^\s*\[[\w .-]+\]\s*$`,
		`^\s*[\w.-]+\s*=\s*[^=\s].*$`,
		`^\s*;.*$`,
	)},
}

// Score is the number of patterns of a language that matched.
type Score struct {
	Language string
	Matches  int
}

// Scores returns the score of every language, in table order.
func Scores(text string) []Score {
	res := make([]Score, len(languageTable))
	for i, ls := range languageTable {
		res[i] = Score{Language: ls.language, Matches: countMatches(ls.patterns, text)}
	}
	return res
}

// countMatches counts how many of the patterns match anywhere in text.
func countMatches(pats []*regexp.Regexp, text string) int {
	n := 0
	for _, re := range pats {
		if re.MatchString(text) {
			n++
		}
	}
	return n
}

// InferLanguage returns the language whose signatures match text most
// often. Ties are resolved by table order, and text matching no signature
// yields DefaultLanguage. The result is a best guess, not a verification.
func InferLanguage(text string) string {
	best := DefaultLanguage
	bestScore := 0
	for _, ls := range languageTable {
		// Strictly greater: earlier entries win ties.
		if n := countMatches(ls.patterns, text); n > bestScore {
			best, bestScore = ls.language, n
		}
	}
	return best
}

// Languages returns the language tags known to InferLanguage, in tie-break
// order.
func Languages() []string {
	res := make([]string, len(languageTable))
	for i, ls := range languageTable {
		res[i] = ls.language
	}
	return res
}
