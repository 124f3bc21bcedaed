// Package directive rewrites first-pass reStructuredText into Sphinx
// directive form.
//
// Two rewrites live here. Code blocks found by the classifier are rendered
// with [CodeBlock] and spliced back into the markup by [Splice], which
// first looks for the block text verbatim ([FindExact]) and then falls back
// to the block's first line ([FindByFirstLine]). Callouts such as
// "**Note**: text" are turned into admonition directives by [Admonitions].
//
// Every directive uses the same layout: a header line, a blank line where a
// body follows, and a body indented by three spaces.
package directive
