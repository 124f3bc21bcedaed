package docxrst

import (
	"fmt"
	"strings"
)

// WarningCode classifies a non-fatal issue met while converting a document.
type WarningCode int

const (
	// WarnReaderUnavailable means the DOCX reader could not load the
	// document, so code blocks were not enhanced.
	WarnReaderUnavailable WarningCode = iota + 1
	// WarnNoParagraphs means the document held no paragraphs to classify.
	WarnNoParagraphs
	// WarnBlockNotFound means a code block could not be located in the
	// first-pass markup and was left as is.
	WarnBlockNotFound
	// WarnAltText means OCR alt text could not be generated.
	WarnAltText
	// WarnScaffold means the index or link registry could not be updated.
	WarnScaffold
	// WarnDuplicateMedia means two extracted media files have the same
	// content.
	WarnDuplicateMedia
)

// String returns the string representation of the warning code.
func (c WarningCode) String() string {
	switch c {
	case WarnReaderUnavailable:
		return "reader-unavailable"
	case WarnNoParagraphs:
		return "no-paragraphs"
	case WarnBlockNotFound:
		return "block-not-found"
	case WarnAltText:
		return "alt-text"
	case WarnScaffold:
		return "scaffold"
	case WarnDuplicateMedia:
		return "duplicate-media"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal issue. The document was still written.
type Warning struct {
	Code    WarningCode
	Message string
}

// String returns the warning as "code: message".
func (w Warning) String() string {
	return w.Code.String() + ": " + w.Message
}

func newWarning(code WarningCode, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}

// FormatWarnings joins warnings into a single line.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
