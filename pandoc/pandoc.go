// Package pandoc runs the pandoc executable to produce the first-pass
// reStructuredText of a DOCX document.
//
// Pandoc must be installed and on PATH, or Converter.Path must name it.
//
//	c := pandoc.New()
//	rst, err := c.ToRST(ctx, "report.docx")
package pandoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// ErrNotInstalled is returned when the pandoc executable cannot be found.
var ErrNotInstalled = errors.New("pandoc not installed")

// DefaultPath is the executable looked up on PATH when Converter.Path is empty.
const DefaultPath = "pandoc"

// Converter converts documents by running pandoc.
type Converter struct {
	// Path is the pandoc executable. Empty means DefaultPath.
	Path string
	// ExtraArgs are passed to pandoc before the input file.
	ExtraArgs []string
	// Logger receives debug output. Nil means slog.Default().
	Logger *slog.Logger
}

// New returns a Converter using pandoc from PATH.
func New() *Converter {
	return &Converter{Path: DefaultPath}
}

func (c *Converter) binary() string {
	if c.Path == "" {
		return DefaultPath
	}
	return c.Path
}

func (c *Converter) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// lookPath resolves the executable.
func (c *Converter) lookPath() (string, error) {
	bin, err := exec.LookPath(c.binary())
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotInstalled, c.binary())
	}
	return bin, nil
}

// Available reports whether the pandoc executable can be found.
func (c *Converter) Available() bool {
	_, err := c.lookPath()
	return err == nil
}

// ToRST converts the DOCX file at path to reStructuredText. Line endings
// of the output are normalized to "\n".
func (c *Converter) ToRST(ctx context.Context, path string) (string, error) {
	bin, err := c.lookPath()
	if err != nil {
		return "", err
	}

	args := []string{"-f", "docx", "-t", "rst"}
	args = append(args, c.ExtraArgs...)
	args = append(args, path)

	out, err := c.run(ctx, bin, args...)
	if err != nil {
		return "", err
	}
	c.logger().Debug("pandoc converted document", "path", path, "bytes", len(out))
	return strings.ReplaceAll(out, "\r\n", "\n"), nil
}

// Version returns the first line of "pandoc --version".
func (c *Converter) Version(ctx context.Context) (string, error) {
	bin, err := c.lookPath()
	if err != nil {
		return "", err
	}
	out, err := c.run(ctx, bin, "--version")
	if err != nil {
		return "", err
	}
	first, _, _ := strings.Cut(out, "\n")
	return strings.TrimSpace(first), nil
}

func (c *Converter) run(ctx context.Context, bin string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger().Debug("running pandoc", "bin", bin, "args", args)
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("pandoc canceled: %w", ctxErr)
		}
		return "", fmt.Errorf("pandoc failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
