// Package docxrst converts DOCX documents into reStructuredText for Sphinx.
//
// Pandoc produces a first-pass conversion, which is then post-processed:
// code paragraphs become code-block directives with an inferred language,
// "Note:" style paragraphs become admonitions, media are extracted and
// renamed image_1, image_2, ... across a batch, and cross-reference
// targets get link names.
//
// Basic usage:
//
//	res, warnings, err := docxrst.Open("guide.docx").Convert(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", docxrst.FormatWarnings(warnings))
//	}
//
// With options:
//
//	results, err := docxrst.OpenAll("a.docx", "b.docx").
//	    OutputDir("docs").
//	    Workers(4).
//	    Scaffold().
//	    ConvertAll(ctx)
//
// For long-running batches, create a Session directly.
package docxrst

// Open returns a Converter for the DOCX file at path.
//
// Example:
//
//	res, _, err := docxrst.Open("guide.docx").Convert(ctx)
func Open(path string) *Converter {
	return &Converter{
		paths: []string{path},
		opts:  defaultOptions(),
	}
}

// OpenAll returns a Converter for several DOCX files, converted together
// by ConvertAll.
func OpenAll(paths ...string) *Converter {
	return &Converter{
		paths: append([]string(nil), paths...),
		opts:  defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	results := docxrst.Must(docxrst.OpenAll(paths...).ConvertAll(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustConvert is a helper that wraps a call to Convert and panics if the
// error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	res := docxrst.MustConvert(docxrst.Open("guide.docx").Convert(ctx))
func MustConvert[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
