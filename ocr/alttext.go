package ocr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// MaxAltLength is the maximum number of runes kept in generated alt text.
const MaxAltLength = 120

// Recognizer turns image bytes into text. *Client implements it.
type Recognizer interface {
	RecognizeImage(data []byte) (string, error)
}

// Lookup returns the content of the image a directive refers to.
type Lookup func(ref string) ([]byte, bool)

var (
	imageDirective = regexp.MustCompile(`^(\s*)\.\.\s+(?:\|[^|]+\|\s+)?(?:image|figure)::\s*(\S+)\s*$`)
	optionField    = regexp.MustCompile(`^(\s+):([\w-]+):`)
)

// AddAltText adds an :alt: option to every image and figure directive in
// markup that has none, using the text r recognizes in the referenced
// image. Directives whose image cannot be looked up, or that yield no
// text, are left alone. It returns the new markup, the number of
// directives annotated, and the joined recognition errors.
func AddAltText(markup string, lookup Lookup, r Recognizer) (string, int, error) {
	if lookup == nil || r == nil {
		return markup, 0, nil
	}

	lines := strings.Split(markup, "\n")
	out := make([]string, 0, len(lines))
	added := 0
	var errs []error

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		out = append(out, line)

		m := imageDirective.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		indent, ref := m[1], m[2]

		optIndent := indent + "   "
		hasAlt := false
		for j := i + 1; j < len(lines); j++ {
			om := optionField.FindStringSubmatch(lines[j])
			if om == nil || len(om[1]) <= len(indent) {
				break
			}
			if j == i+1 {
				optIndent = om[1]
			}
			if om[2] == "alt" {
				hasAlt = true
				break
			}
		}
		if hasAlt {
			continue
		}

		data, ok := lookup(ref)
		if !ok {
			continue
		}
		text, err := r.RecognizeImage(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ref, err))
			continue
		}
		alt := Clean(text)
		if alt == "" {
			continue
		}
		out = append(out, optIndent+":alt: "+alt)
		added++
	}

	return strings.Join(out, "\n"), added, errors.Join(errs...)
}

// Clean collapses whitespace in recognized text to single spaces and cuts
// it to MaxAltLength runes.
func Clean(text string) string {
	s := strings.Join(strings.Fields(text), " ")
	runes := []rune(s)
	if len(runes) > MaxAltLength {
		s = strings.TrimSpace(string(runes[:MaxAltLength]))
	}
	return s
}
