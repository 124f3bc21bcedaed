package docxrst

import (
	"context"
	"log/slog"
	"maps"

	"github.com/tsawler/docxrst/classify"
	"github.com/tsawler/docxrst/target"
)

// MarkupConverter produces the first-pass reStructuredText of a document.
// *pandoc.Converter implements it.
type MarkupConverter interface {
	ToRST(ctx context.Context, path string) (string, error)
}

// options holds the configuration shared by a Session and a Converter.
type options struct {
	outputDir   string // empty means a directory named after each document
	workers     int
	logger      *slog.Logger
	converter   MarkupConverter // nil means pandoc from PATH
	labels      target.Labels
	classifier  classify.Config
	altText     bool
	ocrLanguage string
	scaffold    bool
}

// defaultOptions returns the default conversion options.
func defaultOptions() options {
	return options{
		workers:     1,
		classifier:  classify.DefaultConfig(),
		labels:      target.DefaultLabels(),
		ocrLanguage: "eng",
	}
}

// clone creates a deep copy of options.
func (o options) clone() options {
	newOpts := o
	newOpts.labels = maps.Clone(o.labels)
	newOpts.classifier.StyleKeywords = append([]string(nil), o.classifier.StyleKeywords...)
	newOpts.classifier.MonospaceFonts = append([]string(nil), o.classifier.MonospaceFonts...)
	return newOpts
}

func (o options) log() *slog.Logger {
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}

// Option configures a Session.
type Option func(*options)

// WithOutputDir writes every document into dir. By default each document
// gets a directory named after its file stem, next to the input.
func WithOutputDir(dir string) Option {
	return func(o *options) { o.outputDir = dir }
}

// WithWorkers sets the number of documents converted concurrently by Run.
// Values below 1 mean 1.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMarkupConverter replaces pandoc as the first-pass converter.
func WithMarkupConverter(c MarkupConverter) Option {
	return func(o *options) { o.converter = c }
}

// WithLabels sets the link-name labels of numbered targets.
func WithLabels(l target.Labels) Option {
	return func(o *options) { o.labels = maps.Clone(l) }
}

// WithClassifier sets the paragraph classifier tables.
func WithClassifier(c classify.Config) Option {
	return func(o *options) { o.classifier = c }
}

// WithAltText enables OCR alt text for images, recognizing text in lang
// (e.g. "eng" or "eng+deu"). An empty lang keeps the current language.
func WithAltText(lang string) Option {
	return func(o *options) {
		o.altText = true
		if lang != "" {
			o.ocrLanguage = lang
		}
	}
}

// WithScaffold registers each written document in index.rst and its
// targets in the link registry of the output directory.
func WithScaffold() Option {
	return func(o *options) { o.scaffold = true }
}
