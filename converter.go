package docxrst

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tsawler/docxrst/target"
)

// Converter provides a fluent interface for converting DOCX documents.
// Each configuration method returns a new Converter instance, making it
// safe for concurrent use and allowing method chaining.
type Converter struct {
	paths []string
	opts  options
}

// clone creates a copy of the Converter with a deep copy of options.
func (c *Converter) clone() *Converter {
	return &Converter{
		paths: append([]string(nil), c.paths...),
		opts:  c.opts.clone(),
	}
}

// OutputDir writes the converted documents, their media and scaffolding
// into dir.
//
// Example:
//
//	res, _, err := docxrst.Open("guide.docx").OutputDir("docs").Convert(ctx)
func (c *Converter) OutputDir(dir string) *Converter {
	newConv := c.clone()
	newConv.opts.outputDir = dir
	return newConv
}

// Workers sets how many documents ConvertAll converts at once.
func (c *Converter) Workers(n int) *Converter {
	newConv := c.clone()
	WithWorkers(n)(&newConv.opts)
	return newConv
}

// Logger sets the logger used during conversion.
func (c *Converter) Logger(l *slog.Logger) *Converter {
	newConv := c.clone()
	newConv.opts.logger = l
	return newConv
}

// WithConverter replaces pandoc as the first-pass converter.
func (c *Converter) WithConverter(mc MarkupConverter) *Converter {
	newConv := c.clone()
	newConv.opts.converter = mc
	return newConv
}

// Labels sets the labels used in the link names of numbered targets.
//
// Example:
//
//	labels := target.Labels{model.TargetFigure: "Abbildung"}
//	res, _, err := docxrst.Open("bericht.docx").Labels(labels).Convert(ctx)
func (c *Converter) Labels(l target.Labels) *Converter {
	newConv := c.clone()
	WithLabels(l)(&newConv.opts)
	return newConv
}

// AltText enables OCR alt text for extracted images. It needs a build
// with the "ocr" tag; otherwise a warning is reported and images are left
// without alt text.
func (c *Converter) AltText(lang string) *Converter {
	newConv := c.clone()
	WithAltText(lang)(&newConv.opts)
	return newConv
}

// Scaffold registers converted documents in index.rst and their targets in
// the link registry.
func (c *Converter) Scaffold() *Converter {
	newConv := c.clone()
	newConv.opts.scaffold = true
	return newConv
}

// Convert converts the single document the Converter was opened with.
//
// Example:
//
//	res, warnings, err := docxrst.Open("guide.docx").Convert(ctx)
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", docxrst.FormatWarnings(warnings))
//	}
func (c *Converter) Convert(ctx context.Context) (*Result, []Warning, error) {
	if len(c.paths) != 1 {
		return nil, nil, fmt.Errorf("convert needs exactly one document, have %d; use ConvertAll", len(c.paths))
	}
	s := newSession(c.opts.clone())
	defer s.Close()

	res, err := s.Convert(ctx, c.paths[0])
	return res, res.Warnings, err
}

// ConvertAll converts every document of the Converter in one session, so
// their media share one numbering. Per-document failures are reported in
// the results; the error is the first of them.
func (c *Converter) ConvertAll(ctx context.Context) ([]*Result, error) {
	s := newSession(c.opts.clone())
	defer s.Close()

	results := s.Run(ctx, c.paths)
	for _, r := range results {
		if r.Err != nil {
			return results, fmt.Errorf("%s: %w", r.Path, r.Err)
		}
	}
	return results, nil
}
