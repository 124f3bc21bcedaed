package docxrst

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tsawler/docxrst/classify"
	"github.com/tsawler/docxrst/directive"
	"github.com/tsawler/docxrst/docx"
	"github.com/tsawler/docxrst/format"
	"github.com/tsawler/docxrst/media"
	"github.com/tsawler/docxrst/model"
	"github.com/tsawler/docxrst/ocr"
	"github.com/tsawler/docxrst/pandoc"
	"github.com/tsawler/docxrst/scaffold"
	"github.com/tsawler/docxrst/target"
)

// ErrUnsupportedFormat is returned for inputs that are not DOCX documents.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// MediaDir is the directory, relative to the output directory, that
// receives extracted media.
const MediaDir = "media"

// Result describes the conversion of one document.
type Result struct {
	Path       string // input document
	OutputPath string // written .rst file, empty if nothing was written
	Markup     string // markup written to OutputPath, without the header

	Paragraphs int
	Blocks     []model.Block
	Splice     directive.SpliceResult
	Media      []model.MediaAsset
	Renames    *model.RenameMap
	Targets    []model.Target
	AltTexts   int // image directives that received OCR alt text

	Warnings []Warning
	Err      error // set when the document could not be processed
	Duration time.Duration
}

func (r *Result) warn(code WarningCode, msg string, args ...any) {
	r.Warnings = append(r.Warnings, newWarning(code, msg, args...))
}

// Session is the scope of one batch run. All documents converted through a
// Session share its media sequence, so extracted media never reuse a
// number. A Session is safe for concurrent use.
type Session struct {
	ID uuid.UUID

	opts options
	seq  *media.Sequence

	ocrOnce       sync.Once
	newRecognizer func(lang string) (ocr.Recognizer, func() error, error)
	recognizer    ocr.Recognizer
	closeOCR      func() error
	ocrErr        error

	mu        sync.Mutex
	scaffolds map[string]*scaffold.Writer
}

// NewSession creates a session with a fresh media sequence.
func NewSession(opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newSession(o)
}

func newSession(o options) *Session {
	return &Session{
		ID:            uuid.New(),
		opts:          o,
		seq:           media.NewSequence(),
		newRecognizer: newOCRClient,
		scaffolds:     make(map[string]*scaffold.Writer),
	}
}

func newOCRClient(lang string) (ocr.Recognizer, func() error, error) {
	c, err := ocr.New()
	if err != nil {
		return nil, nil, err
	}
	if lang != "" {
		if err := c.SetLanguage(lang); err != nil {
			c.Close()
			return nil, nil, fmt.Errorf("set OCR language %q: %w", lang, err)
		}
	}
	return c, c.Close, nil
}

// Sequence returns the session's media sequence.
func (s *Session) Sequence() *media.Sequence {
	return s.seq
}

// Close releases the OCR engine, if one was started.
func (s *Session) Close() error {
	if s.closeOCR != nil {
		return s.closeOCR()
	}
	return nil
}

func (s *Session) logger() *slog.Logger {
	return s.opts.log().With("session", s.ID.String())
}

func (s *Session) converter() MarkupConverter {
	if s.opts.converter != nil {
		return s.opts.converter
	}
	c := pandoc.New()
	c.Logger = s.opts.log()
	return c
}

// outputDir returns the directory receiving the converted document.
func (s *Session) outputDir(path, stem string) string {
	if s.opts.outputDir != "" {
		return s.opts.outputDir
	}
	return filepath.Join(filepath.Dir(path), stem)
}

// Convert converts the DOCX file at path into <out>/<stem>.rst, extracting
// its media into <out>/media. A failure after the first-pass conversion
// leaves that markup unmodified in the written file; the error is returned
// and recorded in the Result.
func (s *Session) Convert(ctx context.Context, path string) (*Result, error) {
	start := time.Now()
	res := &Result{Path: path}
	log := s.logger().With("path", path)

	err := s.convert(ctx, res, log)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		log.Error("conversion failed", "error", err)
		return res, err
	}

	for _, w := range res.Warnings {
		log.Warn(w.Message, "code", w.Code.String())
	}
	log.Info("document converted",
		"output", res.OutputPath,
		"code_blocks", res.Splice.Replaced(),
		"media", len(res.Media),
		"targets", len(res.Targets),
		"duration", res.Duration)
	return res, nil
}

func (s *Session) convert(ctx context.Context, res *Result, log *slog.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := format.DetectFile(res.Path)
	if err != nil {
		return err
	}
	if f != format.DOCX {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}

	first, err := s.converter().ToRST(ctx, res.Path)
	if err != nil {
		return fmt.Errorf("first-pass conversion: %w", err)
	}

	base := filepath.Base(res.Path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	outDir := s.outputDir(res.Path, stem)
	res.OutputPath = filepath.Join(outDir, stem+".rst")

	markup, perr := s.process(ctx, res, outDir, first, log)
	if perr != nil {
		markup = first
	}
	res.Markup = markup

	if err := writeDocument(res.OutputPath, markup); err != nil {
		res.OutputPath = ""
		return errors.Join(perr, err)
	}
	if perr != nil {
		return perr
	}

	if s.opts.scaffold {
		if err := s.scaffoldWriter(outDir).Register(stem, res.Targets); err != nil {
			res.warn(WarnScaffold, "%v", err)
		}
	}
	return nil
}

// process runs the post-processing stages on the first-pass markup. Panics
// are turned into errors.
func (s *Session) process(ctx context.Context, res *Result, outDir, markup string, log *slog.Logger) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing document: %v", r)
		}
	}()

	var entries []media.Entry
	rd, rerr := docx.Open(res.Path)
	if rerr != nil {
		var merr error
		entries, merr = docx.MediaEntries(res.Path)
		if merr != nil {
			res.warn(WarnReaderUnavailable, "code blocks and media skipped: %v", rerr)
		} else {
			res.warn(WarnReaderUnavailable, "code blocks not enhanced: %v", rerr)
		}
	} else {
		defer rd.Close()
		markup = s.enhanceCode(res, rd, markup, log)
		if entries, err = rd.Media(); err != nil {
			return "", fmt.Errorf("read media: %w", err)
		}
	}

	markup = directive.Admonitions(markup)

	if len(entries) > 0 {
		renamer := media.NewRenamer(s.seq, filepath.Join(outDir, MediaDir))
		assets, err := media.Extract(entries, renamer)
		if err != nil {
			return "", fmt.Errorf("extract media: %w", err)
		}
		res.Media = assets
		res.Renames = renamer.Map()
		markup = media.RewriteReferences(markup, renamer.Map())
		s.checkMedia(res, log)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if s.opts.altText && len(res.Media) > 0 {
		markup = s.addAltText(res, filepath.Join(outDir, MediaDir), markup)
	}

	res.Targets = target.NewNamer(s.opts.labels).Scan(markup)
	return markup, nil
}

// checkMedia logs the extracted assets and warns about assets whose
// content repeats an earlier one.
func (s *Session) checkMedia(res *Result, log *slog.Logger) {
	seen := make(map[string]string, len(res.Media))
	for _, a := range res.Media {
		log.Debug("media extracted",
			"original", a.OriginalName,
			"name", a.NewName,
			"digest", a.Digest,
			"width", a.Width,
			"height", a.Height)
		if first, ok := seen[a.Digest]; ok {
			res.warn(WarnDuplicateMedia, "%s has the same content as %s", a.NewName, first)
			continue
		}
		seen[a.Digest] = a.NewName
	}
}

// enhanceCode replaces the code paragraphs of the document with
// code-block directives.
func (s *Session) enhanceCode(res *Result, rd *docx.Reader, markup string, log *slog.Logger) string {
	paras, err := rd.Paragraphs()
	if err != nil {
		res.warn(WarnNoParagraphs, "%v", err)
		return markup
	}
	res.Paragraphs = len(paras)

	c := classify.NewWithConfig(s.opts.classifier)
	res.Blocks = c.CodeBlocks(paras)

	var sr directive.SpliceResult
	markup, sr = directive.Splice(markup, res.Blocks)
	res.Splice = sr
	for _, i := range sr.Missed {
		b := res.Blocks[i]
		res.warn(WarnBlockNotFound, "code block at paragraphs %d-%d not found in markup", b.Start, b.End-1)
	}
	log.Debug("code blocks spliced",
		"blocks", len(res.Blocks),
		"exact", len(sr.Exact),
		"fallback", len(sr.Fallback),
		"missed", len(sr.Missed))
	return markup
}

// addAltText annotates image directives with OCR text read from the
// extracted files in mediaDir.
func (s *Session) addAltText(res *Result, mediaDir, markup string) string {
	r, err := s.ocrRecognizer()
	if err != nil {
		res.warn(WarnAltText, "%v", err)
		return markup
	}

	lookup := func(ref string) ([]byte, bool) {
		name, ok := strings.CutPrefix(ref, media.RefPrefix)
		if !ok || name == "" || name != filepath.Base(name) {
			return nil, false
		}
		data, err := os.ReadFile(filepath.Join(mediaDir, name))
		if err != nil {
			return nil, false
		}
		return data, true
	}

	out, n, err := ocr.AddAltText(markup, lookup, r)
	if err != nil {
		res.warn(WarnAltText, "%v", err)
	}
	res.AltTexts = n
	return out
}

// ocrRecognizer starts the OCR engine on first use. The engine is shared
// by all workers and used by one at a time.
func (s *Session) ocrRecognizer() (ocr.Recognizer, error) {
	s.ocrOnce.Do(func() {
		r, closeFn, err := s.newRecognizer(s.opts.ocrLanguage)
		if err != nil {
			s.ocrErr = err
			return
		}
		s.recognizer = &lockedRecognizer{r: r}
		s.closeOCR = closeFn
	})
	return s.recognizer, s.ocrErr
}

type lockedRecognizer struct {
	mu sync.Mutex
	r  ocr.Recognizer
}

func (l *lockedRecognizer) RecognizeImage(data []byte) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.RecognizeImage(data)
}

// scaffoldWriter returns the scaffold writer of dir, shared by all
// documents written there.
func (s *Session) scaffoldWriter(dir string) *scaffold.Writer {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.scaffolds[dir]
	if !ok {
		w = scaffold.NewWriter(dir)
		s.scaffolds[dir] = w
	}
	return w
}

// Run converts paths with the configured number of workers and returns one
// Result per path, in input order. A failing document never stops the
// batch. Once ctx is done no further documents are started; their results
// carry the context error.
func (s *Session) Run(ctx context.Context, paths []string) []*Result {
	results := make([]*Result, len(paths))
	if len(paths) == 0 {
		return results
	}

	workers := s.opts.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], _ = s.Convert(ctx, paths[i])
			}
		}()
	}

dispatch:
	for i := range paths {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	for i, r := range results {
		if r == nil {
			results[i] = &Result{Path: paths[i], Err: ctx.Err()}
		}
	}
	return results
}

// writeDocument writes markup to path behind the vim modeline header.
func writeDocument(path, markup string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	data := scaffold.Header + "\n\n" + markup
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
