package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/tsawler/docxrst/model"
)

func TestProjectName(t *testing.T) {
	tests := []struct {
		stem string
		want string
	}{
		{"report", "report"},
		{"My Doc", "My"},
		{"01_intro-doc", "intro"},
		{"2024 annual report", "annual"},
		{"__init__", "init"},
		{"Über-Sicht", "Über"},
		{"---", "---"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.stem, func(t *testing.T) {
			if got := ProjectName(tt.stem); got != tt.want {
				t.Errorf("ProjectName(%q) = %q, want %q", tt.stem, got, tt.want)
			}
		})
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestWriteIndexCreates(t *testing.T) {
	dir := t.TempDir()
	if err := WriteIndex(dir, "01_guide"); err != nil {
		t.Fatalf("WriteIndex failed: %v", err)
	}

	want := ".. vim: syntax=rst\n\n=====\nguide\n=====\n\n.. toctree::\n    01_guide.rst\n"
	if got := readFile(t, filepath.Join(dir, IndexFile)); got != want {
		t.Errorf("index = %q, want %q", got, want)
	}
}

func TestWriteIndexInsertsFirst(t *testing.T) {
	dir := t.TempDir()
	if err := WriteIndex(dir, "a"); err != nil {
		t.Fatal(err)
	}
	if err := WriteIndex(dir, "b"); err != nil {
		t.Fatal(err)
	}

	got := readFile(t, filepath.Join(dir, IndexFile))
	if !strings.HasSuffix(got, ".. toctree::\n    b.rst\n    a.rst\n") {
		t.Errorf("newest entry should follow the toctree line: %q", got)
	}
}

func TestWriteIndexSkipsDuplicates(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 3; i++ {
		if err := WriteIndex(dir, "a"); err != nil {
			t.Fatal(err)
		}
	}

	got := readFile(t, filepath.Join(dir, IndexFile))
	if n := strings.Count(got, "a.rst"); n != 1 {
		t.Errorf("entry appears %d times: %q", n, got)
	}
}

func TestWriteIndexExisting(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "after options",
			in:   "Title\n=====\n\n.. toctree::\n   :maxdepth: 2\n\n   intro\n",
			want: "Title\n=====\n\n.. toctree::\n   :maxdepth: 2\n\n    new.rst\n   intro\n",
		},
		{
			name: "options without blank line",
			in:   ".. toctree::\n   :hidden:\n",
			want: ".. toctree::\n   :hidden:\n\n    new.rst\n",
		},
		{
			name: "no toctree",
			in:   "Title\n=====\n",
			want: "Title\n=====\n\n.. toctree::\n    new.rst\n",
		},
		{
			name: "first toctree only",
			in:   ".. toctree::\n\n   a\n\n.. toctree::\n\n   b\n",
			want: ".. toctree::\n    new.rst\n\n   a\n\n.. toctree::\n\n   b\n",
		},
		{
			name: "entry in later toctree is not a duplicate",
			in:   ".. toctree::\n\n   a\n\ntext\n\n.. toctree::\n\n   new.rst\n",
			want: ".. toctree::\n    new.rst\n\n   a\n\ntext\n\n.. toctree::\n\n   new.rst\n",
		},
		{
			name: "crlf input",
			in:   ".. toctree::\r\n",
			want: ".. toctree::\n    new.rst\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, IndexFile)
			if err := os.WriteFile(path, []byte(tt.in), 0o644); err != nil {
				t.Fatal(err)
			}
			if err := WriteIndex(dir, "new"); err != nil {
				t.Fatalf("WriteIndex failed: %v", err)
			}
			if got := readFile(t, path); got != tt.want {
				t.Errorf("index = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteLinks(t *testing.T) {
	dir := t.TempDir()
	first := []model.Target{
		{ID: "fig1", Kind: model.TargetFigure, SequenceNumber: 1, LinkName: "Figure 1"},
		{ID: "intro", Kind: model.TargetHeading, LinkName: "Introduction"},
		{ID: "", LinkName: "ignored"},
		{ID: "nolink"},
	}
	if err := WriteLinks(dir, first); err != nil {
		t.Fatalf("WriteLinks failed: %v", err)
	}

	want := ".. vim: syntax=rst\n\n" +
		".. |fig1| replace:: :ref:`Figure 1 <fig1>`\n" +
		".. |intro| replace:: :ref:`Introduction <intro>`\n"
	path := filepath.Join(dir, LinksFile)
	if got := readFile(t, path); got != want {
		t.Fatalf("registry = %q, want %q", got, want)
	}

	second := []model.Target{{ID: "fig1", Kind: model.TargetFigure, LinkName: "Architecture"}}
	if err := WriteLinks(dir, second); err != nil {
		t.Fatal(err)
	}
	want = ".. vim: syntax=rst\n\n" +
		".. |intro| replace:: :ref:`Introduction <intro>`\n" +
		".. |fig1| replace:: :ref:`Architecture <fig1>`\n"
	if got := readFile(t, path); got != want {
		t.Errorf("merged registry = %q, want %q", got, want)
	}
}

func TestWriteLinksNothingToWrite(t *testing.T) {
	dir := t.TempDir()
	if err := WriteLinks(dir, []model.Target{{ID: "x"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, LinksFile)); !os.IsNotExist(err) {
		t.Errorf("registry should not exist, stat err = %v", err)
	}
}

func TestWriterConcurrentRegister(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	stems := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var wg sync.WaitGroup
	for _, stem := range stems {
		wg.Add(1)
		go func(stem string) {
			defer wg.Done()
			targets := []model.Target{{ID: stem + "-t", LinkName: "T " + stem}}
			if err := w.Register(stem, targets); err != nil {
				t.Errorf("Register(%s): %v", stem, err)
			}
		}(stem)
	}
	wg.Wait()

	index := readFile(t, filepath.Join(dir, IndexFile))
	links := readFile(t, filepath.Join(dir, LinksFile))
	for _, stem := range stems {
		if strings.Count(index, "    "+stem+".rst\n") != 1 {
			t.Errorf("index missing %s: %q", stem, index)
		}
		if !strings.Contains(links, "|"+stem+"-t|") {
			t.Errorf("registry missing %s", stem)
		}
	}
	if w.Dir() != dir {
		t.Errorf("Dir() = %q", w.Dir())
	}
}
