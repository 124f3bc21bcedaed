package pandoc

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakePandoc writes an executable shell script standing in for pandoc.
func fakePandoc(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "pandoc")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("write fake pandoc: %v", err)
	}
	return path
}

func TestToRSTArguments(t *testing.T) {
	bin := fakePandoc(t, "printf 'args: %s\\r\\n' \"$*\"\n")
	c := &Converter{Path: bin, ExtraArgs: []string{"--wrap=none"}}

	got, err := c.ToRST(context.Background(), "in.docx")
	if err != nil {
		t.Fatalf("ToRST failed: %v", err)
	}
	want := "args: -f docx -t rst --wrap=none in.docx\n"
	if got != want {
		t.Errorf("ToRST = %q, want %q", got, want)
	}
}

func TestToRSTFailure(t *testing.T) {
	bin := fakePandoc(t, "echo 'unknown reader' >&2\nexit 3\n")
	c := &Converter{Path: bin}

	_, err := c.ToRST(context.Background(), "in.docx")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "pandoc failed") || !strings.Contains(err.Error(), "unknown reader") {
		t.Errorf("error = %v, want pandoc failure with stderr", err)
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Errorf("error should wrap *exec.ExitError, got %T", errors.Unwrap(err))
	}
}

func TestToRSTCanceled(t *testing.T) {
	bin := fakePandoc(t, "sleep 5\n")
	c := &Converter{Path: bin}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ToRST(ctx, "in.docx")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestNotInstalled(t *testing.T) {
	c := &Converter{Path: filepath.Join(t.TempDir(), "no-such-pandoc")}

	if c.Available() {
		t.Error("Available() = true for a missing executable")
	}
	if _, err := c.ToRST(context.Background(), "in.docx"); !errors.Is(err, ErrNotInstalled) {
		t.Errorf("ToRST error = %v, want ErrNotInstalled", err)
	}
	if _, err := c.Version(context.Background()); !errors.Is(err, ErrNotInstalled) {
		t.Errorf("Version error = %v, want ErrNotInstalled", err)
	}
}

func TestVersion(t *testing.T) {
	bin := fakePandoc(t, "echo 'pandoc 3.1.11'\necho 'Features: +server +lua'\n")
	c := &Converter{Path: bin}

	got, err := c.Version(context.Background())
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if got != "pandoc 3.1.11" {
		t.Errorf("Version = %q", got)
	}
}

func TestNewDefaults(t *testing.T) {
	c := New()
	if c.binary() != DefaultPath {
		t.Errorf("binary = %q, want %q", c.binary(), DefaultPath)
	}
	if (&Converter{}).binary() != DefaultPath {
		t.Error("empty Path should fall back to DefaultPath")
	}
	if c.logger() == nil {
		t.Error("logger should default to slog.Default()")
	}
}

// TestPandocIntegration runs the real pandoc when it is installed.
func TestPandocIntegration(t *testing.T) {
	c := New()
	if !c.Available() {
		t.Skip("skipping: pandoc not installed")
	}

	path := filepath.Join(t.TempDir(), "hello.docx")
	writeMinimalDOCX(t, path, "Hello pandoc")

	got, err := c.ToRST(context.Background(), path)
	if err != nil {
		t.Fatalf("ToRST failed: %v", err)
	}
	if !strings.Contains(got, "Hello pandoc") {
		t.Errorf("output %q does not contain the paragraph text", got)
	}
}

func writeMinimalDOCX(t *testing.T, path, text string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:body>
</w:document>`,
	}

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}
