package media

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/docxrst/model"
)

// maxAttempts bounds the numbers one Rename call may skip over.
const maxAttempts = 1 << 20

// ErrNoFreeName is returned when Rename cannot find an unused file name.
var ErrNoFreeName = errors.New("media: no free file name")

// Renamer assigns new names to the media of one document. It is not safe
// for concurrent use; the shared Sequence is.
type Renamer struct {
	seq    *Sequence
	dir    string
	exists func(path string) bool
	names  *model.RenameMap
	ids    map[string]int
}

// NewRenamer returns a Renamer that draws numbers from seq and checks for
// existing files in dir. A nil seq gets a private sequence.
func NewRenamer(seq *Sequence, dir string) *Renamer {
	if seq == nil {
		seq = NewSequence()
	}
	return &Renamer{
		seq:    seq,
		dir:    dir,
		exists: fileExists,
		names:  model.NewRenameMap(),
		ids:    make(map[string]int),
	}
}

// Dir returns the destination directory.
func (r *Renamer) Dir() string {
	return r.dir
}

// Map returns the rename map built so far.
func (r *Renamer) Map() *model.RenameMap {
	return r.names
}

// Rename returns the new name for original, "image_{n}{ext}". Numbers whose
// file already exists in the destination directory are skipped. Renaming
// the same original twice returns the first name.
func (r *Renamer) Rename(original, ext string) (string, error) {
	name, _, err := r.rename(original, ext)
	return name, err
}

func (r *Renamer) rename(original, ext string) (string, int, error) {
	if name, ok := r.names.Lookup(original); ok {
		return name, r.ids[original], nil
	}

	ext = normalizeExt(ext)
	for i := 0; i < maxAttempts; i++ {
		n := r.seq.Next()
		name := fmt.Sprintf("image_%d%s", n, ext)
		if r.dir != "" && r.exists(filepath.Join(r.dir, name)) {
			continue
		}
		if err := r.names.Add(original, name); err != nil {
			return "", 0, err
		}
		r.ids[original] = n
		return name, n, nil
	}
	return "", 0, fmt.Errorf("%w for %s", ErrNoFreeName, original)
}

func normalizeExt(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
