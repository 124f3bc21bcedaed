package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/tsawler/docxrst/internal/config"
)

type fakeConverter struct {
	markup string
	err    error
}

func (f fakeConverter) ToRST(ctx context.Context, path string) (string, error) {
	return f.markup, f.err
}

func TestParseConvert(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "a.docx")
	if err := os.WriteFile(doc, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	var cli CLI
	parser, err := kong.New(&cli, kong.Name("docxrst"))
	if err != nil {
		t.Fatal(err)
	}
	ctx, err := parser.Parse([]string{
		"--log-level", "debug",
		"convert", "-o", "out", "-j", "3", "--scaffold", "--pandoc-arg=--wrap=none", doc,
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !strings.HasPrefix(ctx.Command(), "convert") {
		t.Errorf("command = %q", ctx.Command())
	}
	if cli.LogLevel != "debug" || cli.Convert.Workers != 3 || !cli.Convert.Scaffold {
		t.Errorf("cli = %+v", cli)
	}
	if len(cli.Convert.Files) != 1 || cli.Convert.Files[0] != doc {
		t.Errorf("files = %v", cli.Convert.Files)
	}
	if len(cli.Convert.PandocArgs) != 1 || cli.Convert.PandocArgs[0] != "--wrap=none" {
		t.Errorf("pandoc args = %v", cli.Convert.PandocArgs)
	}
}

func TestParseRejectsMissingFile(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("docxrst"), kong.Exit(func(int) {}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := parser.Parse([]string{"convert", filepath.Join(t.TempDir(), "missing.docx")}); err == nil {
		t.Error("expected error for a missing input file")
	}
}

func TestConvertConfigMerge(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "docxrst.yaml")
	content := "output_dir: from-file\nworkers: 2\nocr:\n  language: deu\nlog:\n  format: json\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := &ConvertCmd{Workers: 5, AltText: true, Pandoc: "/opt/pandoc"}
	cfg, err := cmd.config(&Globals{Config: cfgPath, LogLevel: "warn"})
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if cfg.OutputDir != "from-file" {
		t.Errorf("output dir = %q", cfg.OutputDir)
	}
	if cfg.Workers != 5 {
		t.Errorf("flag should override file: workers = %d", cfg.Workers)
	}
	if !cfg.OCR.Enabled || cfg.OCR.Language != "deu" {
		t.Errorf("ocr = %+v", cfg.OCR)
	}
	if cfg.Pandoc.Path != "/opt/pandoc" || cfg.Log.Level != "warn" || cfg.Log.Format != "json" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestConvertConfigInvalid(t *testing.T) {
	cmd := &ConvertCmd{}
	if _, err := cmd.config(&Globals{LogFormat: "xml"}); err == nil {
		t.Error("expected validation error")
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestConvertBatch(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "notes.docx")
	if err := os.WriteFile(doc, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.OutputDir = filepath.Join(dir, "out")

	var stdout bytes.Buffer
	err := convert(context.Background(), cfg, []string{doc}, fakeConverter{markup: "Hello\n"}, quietLogger(), &stdout)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "WARN  "+doc) || !strings.Contains(stdout.String(), "reader-unavailable") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "notes.rst")); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestConvertBatchFailure(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "notes.docx")
	if err := os.WriteFile(doc, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	err := convert(context.Background(), config.DefaultConfig(), []string{doc}, fakeConverter{err: errors.New("boom")}, quietLogger(), &stdout)
	if err == nil || err.Error() != "1 of 1 documents failed" {
		t.Errorf("err = %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "FAIL  "+doc) {
		t.Errorf("stdout = %q", stdout.String())
	}
}
