// Package classify decides, paragraph by paragraph, whether text is prose or
// program code, and guesses the language of code it finds.
//
// The decision is a chain of fallible signals evaluated in a fixed order:
// paragraph style name, font of the first run, left indentation combined
// with content, and finally content alone. The first positive signal wins.
// Content is judged by [LooksLikeCode], a table of regular-expression
// signatures, and languages are scored by [InferLanguage].
//
//	c := classify.New()
//	for _, span := range c.Segment(paragraphs) {
//	    if span.Kind == model.SpanCode {
//	        fmt.Println(span.Language, span.Start, span.End)
//	    }
//	}
//
// All functions are deterministic and free of side effects.
package classify
