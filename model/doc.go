// Package model provides the data types shared by the classification and
// directive-synthesis stages of docxrst.
//
// # Paragraphs and spans
//
// A [Paragraph] is one record read from the source document: its text and
// the style metadata the classifier looks at. Paragraphs are immutable once
// read and belong to a single document.
//
// Classification produces [Span] values. A span is a tagged variant whose
// [SpanKind] is one of prose, code or admonition:
//
//	switch s.Kind {
//	case model.SpanCode:
//	    // s.Language holds the inferred language tag
//	case model.SpanAdmonition:
//	    // s.Directive and s.Lead describe the callout
//	case model.SpanProse:
//	}
//
// # Media
//
// [MediaAsset] describes an image extracted from the source archive and the
// session-wide sequence number it was given. [RenameMap] records the
// original→new name mapping for one document in extraction order.
//
// # Targets
//
// [Target] is a cross-reference anchor found in the markup, with the
// human-readable link name that replaces references to it.
package model
