package media

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tsawler/docxrst/model"
)

// Entry is an archive member holding media.
type Entry struct {
	Path string // path inside the archive, e.g. "word/media/image1.png"
	Data []byte
}

// OriginalName returns the part of the entry path after its last "media/"
// segment, which is how the markup refers to it.
func (e Entry) OriginalName() string {
	p := e.Path
	if i := strings.LastIndex(p, RefPrefix); i >= 0 {
		return p[i+len(RefPrefix):]
	}
	return path.Base(p)
}

// IsMedia reports whether an archive path contains a media segment.
func IsMedia(archivePath string) bool {
	return strings.Contains(archivePath, RefPrefix) && !strings.HasSuffix(archivePath, "/")
}

// Extract renames each entry with r and writes it into r's directory. The
// returned assets are in entry order. Images whose dimensions cannot be
// read keep zero width and height.
func Extract(entries []Entry, r *Renamer) ([]model.MediaAsset, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	if r.dir != "" {
		if err := os.MkdirAll(r.dir, 0755); err != nil {
			return nil, fmt.Errorf("create media directory: %w", err)
		}
	}

	assets := make([]model.MediaAsset, 0, len(entries))
	for _, e := range entries {
		original := e.OriginalName()
		ext := path.Ext(original)

		name, id, err := r.rename(original, ext)
		if err != nil {
			return assets, err
		}

		asset := model.MediaAsset{
			OriginalName: original,
			Extension:    ext,
			NewName:      name,
			SequenceID:   id,
			Digest:       Digest(e.Data),
		}
		if info, err := Probe(e.Data); err == nil {
			asset.Width = info.Width
			asset.Height = info.Height
		}

		if r.dir != "" {
			dst := filepath.Join(r.dir, name)
			if err := os.WriteFile(dst, e.Data, 0644); err != nil {
				return assets, fmt.Errorf("write %s: %w", dst, err)
			}
		}
		assets = append(assets, asset)
	}
	return assets, nil
}
