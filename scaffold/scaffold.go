// Package scaffold registers converted documents in the surrounding Sphinx
// tree: a toctree entry in index.rst and substitutions for the document's
// cross-reference targets in a shared link registry.
package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/tsawler/docxrst/model"
)

const (
	// IndexFile is the Sphinx master document.
	IndexFile = "index.rst"
	// LinksFile holds one substitution per cross-reference target.
	LinksFile = "_links_sphinx.rst"
	// Header is the first line of every generated file.
	Header = ".. vim: syntax=rst"

	entryIndent = "    "
)

var (
	projectWord = regexp.MustCompile(`^[^\pL_]*([\pL\pN_]*)`)
	toctreeLine = regexp.MustCompile(`^\s*\.\.\s+toctree::`)
	optionLine  = regexp.MustCompile(`^\s+:[\w-]+:`)
	linkLine    = regexp.MustCompile(`^\.\.\s+\|([^|]+)\|\s+replace::`)
)

// ProjectName derives an index title from a document stem: the first word
// after any leading digits or punctuation, without surrounding
// underscores. A stem without such a word is returned unchanged.
func ProjectName(stem string) string {
	m := projectWord.FindStringSubmatch(stem)
	name := ""
	if m != nil {
		name = strings.Trim(m[1], "_")
	}
	if name == "" {
		return stem
	}
	return name
}

// NewIndex returns the lines of a fresh index.rst titled after project.
func NewIndex(project string) []string {
	bar := strings.Repeat("=", len([]rune(project)))
	return []string{Header, "", bar, project, bar, "", ".. toctree::"}
}

// Writer serializes scaffold updates to one output directory.
type Writer struct {
	mu  sync.Mutex
	dir string
}

// NewWriter returns a Writer for dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Register adds stem to the index toctree and records targets in the link
// registry.
func (w *Writer) Register(stem string, targets []model.Target) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := WriteIndex(w.dir, stem); err != nil {
		return err
	}
	return WriteLinks(w.dir, targets)
}

// WriteIndex adds "<stem>.rst" to the first toctree of dir/index.rst,
// creating the index when it does not exist. The entry goes first in the
// toctree content, after any option lines. An index that has the entry already is left
// untouched; one without a toctree gets one appended.
func WriteIndex(dir, stem string) error {
	path := filepath.Join(dir, IndexFile)
	entry := stem + ".rst"

	lines, err := readLines(path)
	if errors.Is(err, fs.ErrNotExist) {
		lines = NewIndex(ProjectName(stem))
	} else if err != nil {
		return fmt.Errorf("failed to read index: %w", err)
	}

	at := -1
	for i, line := range lines {
		if toctreeLine.MatchString(line) {
			at = i
			break
		}
	}
	if at < 0 {
		lines = append(lines, "", ".. toctree::")
		at = len(lines) - 1
	}

	insert := at + 1
	for insert < len(lines) && optionLine.MatchString(lines[insert]) {
		insert++
	}
	// Content must be separated from options by a blank line.
	var sep []string
	if insert > at+1 {
		if insert < len(lines) && strings.TrimSpace(lines[insert]) == "" {
			insert++
		} else {
			sep = []string{""}
		}
	}
	for i := at + 1; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		if indentOf(line) == 0 {
			break
		}
		if strings.TrimSpace(line) == entry {
			return nil
		}
	}

	out := make([]string, 0, len(lines)+2)
	out = append(out, lines[:insert]...)
	out = append(out, sep...)
	out = append(out, entryIndent+entry)
	out = append(out, lines[insert:]...)
	return writeLines(path, out)
}

// LinkLine returns the registry substitution for t.
func LinkLine(t model.Target) string {
	return fmt.Sprintf(".. |%s| replace:: :ref:`%s <%s>`", t.ID, t.LinkName, t.ID)
}

// WriteLinks merges targets into dir/_links_sphinx.rst. A target replaces
// an existing substitution with the same id; other lines are kept in
// place. Targets without an id or link name are ignored. Nothing is
// written when no target qualifies.
func WriteLinks(dir string, targets []model.Target) error {
	fresh := make(map[string]bool)
	var added []string
	for _, t := range targets {
		if t.ID == "" || t.LinkName == "" || fresh[t.ID] {
			continue
		}
		fresh[t.ID] = true
		added = append(added, LinkLine(t))
	}
	if len(added) == 0 {
		return nil
	}

	path := filepath.Join(dir, LinksFile)
	lines, err := readLines(path)
	if errors.Is(err, fs.ErrNotExist) {
		lines = []string{Header, ""}
	} else if err != nil {
		return fmt.Errorf("failed to read link registry: %w", err)
	}

	out := make([]string, 0, len(lines)+len(added))
	for _, line := range lines {
		if m := linkLine.FindStringSubmatch(line); m != nil && fresh[m[1]] {
			continue
		}
		out = append(out, line)
	}
	out = append(out, added...)
	return writeLines(path, out)
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

func writeLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	data := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
