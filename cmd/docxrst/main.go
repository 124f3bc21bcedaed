// Command docxrst converts DOCX documents into reStructuredText for Sphinx.
//
// Usage:
//
//	docxrst convert [flags] FILE...
//	docxrst version
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/tsawler/docxrst"
	"github.com/tsawler/docxrst/internal/config"
	"github.com/tsawler/docxrst/internal/logging"
	"github.com/tsawler/docxrst/pandoc"
)

const version = "0.1.0"

// Globals are the flags shared by all commands.
type Globals struct {
	Config    string `name:"config" short:"c" help:"YAML configuration file" type:"existingfile"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Log format (text, json)"`
}

// CLI defines the command-line interface for docxrst.
type CLI struct {
	Globals

	Convert ConvertCmd `cmd:"" help:"Convert DOCX files to reStructuredText"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// ConvertCmd converts a batch of documents.
type ConvertCmd struct {
	Files      []string `arg:"" name:"file" help:"DOCX files to convert" type:"existingfile"`
	Out        string   `name:"out" short:"o" help:"Output directory (default: a directory named after each file)" type:"path"`
	Workers    int      `name:"workers" short:"j" help:"Documents converted in parallel"`
	Scaffold   bool     `name:"scaffold" help:"Register documents in index.rst and write the link registry"`
	AltText    bool     `name:"alt-text" help:"Add OCR alt text to images (needs a build with -tags ocr)"`
	OCRLang    string   `name:"ocr-lang" help:"Tesseract language(s), e.g. eng+deu"`
	Pandoc     string   `name:"pandoc" help:"pandoc executable"`
	PandocArgs []string `name:"pandoc-arg" help:"Extra argument passed to pandoc (repeatable)"`
}

// Run converts the files.
func (c *ConvertCmd) Run(g *Globals) error {
	cfg, err := c.config(g)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	pc := &pandoc.Converter{Path: cfg.Pandoc.Path, ExtraArgs: cfg.Pandoc.Args, Logger: logger}
	if !pc.Available() {
		return fmt.Errorf("%w: install pandoc or set pandoc.path", pandoc.ErrNotInstalled)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return convert(ctx, cfg, c.Files, pc, logger, os.Stdout)
}

// config merges the configuration file with the command-line flags.
func (c *ConvertCmd) config(g *Globals) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if g.Config != "" {
		loaded, err := config.LoadConfig(g.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.Out != "" {
		cfg.OutputDir = c.Out
	}
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	if c.Scaffold {
		cfg.Scaffold = true
	}
	if c.AltText {
		cfg.OCR.Enabled = true
	}
	if c.OCRLang != "" {
		cfg.OCR.Language = c.OCRLang
	}
	if c.Pandoc != "" {
		cfg.Pandoc.Path = c.Pandoc
	}
	if len(c.PandocArgs) > 0 {
		cfg.Pandoc.Args = c.PandocArgs
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	return logging.Setup(os.Stderr, level, format), nil
}

// convert runs one session over files and prints a line per document.
func convert(ctx context.Context, cfg *config.Config, files []string, mc docxrst.MarkupConverter, logger *slog.Logger, stdout io.Writer) error {
	opts := []docxrst.Option{
		docxrst.WithOutputDir(cfg.OutputDir),
		docxrst.WithWorkers(cfg.Workers),
		docxrst.WithLogger(logger),
		docxrst.WithMarkupConverter(mc),
		docxrst.WithLabels(cfg.TargetLabels()),
		docxrst.WithClassifier(cfg.ClassifierConfig()),
	}
	if cfg.OCR.Enabled {
		opts = append(opts, docxrst.WithAltText(cfg.OCR.Language))
	}
	if cfg.Scaffold {
		opts = append(opts, docxrst.WithScaffold())
	}

	s := docxrst.NewSession(opts...)
	defer s.Close()
	logger.Debug("batch started", "session", s.ID.String(), "documents", len(files))

	failed := 0
	for _, r := range s.Run(ctx, files) {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(stdout, "FAIL  %s: %v\n", r.Path, r.Err)
		case len(r.Warnings) > 0:
			fmt.Fprintf(stdout, "WARN  %s -> %s (%s)\n", r.Path, r.OutputPath, docxrst.FormatWarnings(r.Warnings))
		default:
			fmt.Fprintf(stdout, "OK    %s -> %s\n", r.Path, r.OutputPath)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(files))
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

// Run prints the docxrst version and, when installed, the pandoc version.
func (c *VersionCmd) Run() error {
	fmt.Printf("docxrst version %s\n", version)
	if v, err := pandoc.New().Version(context.Background()); err == nil {
		fmt.Println(v)
	}
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("docxrst"),
		kong.Description("Convert DOCX documents into reStructuredText for Sphinx"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
