package media

import (
	"sort"
	"strings"

	"github.com/tsawler/docxrst/model"
)

// RefPrefix is the path prefix of media references in the markup.
const RefPrefix = "media/"

// RewriteReferences replaces every "media/{original}" in markup with
// "media/{new}" for each entry of m.
//
// All entries are applied in one pass over the markup. Where two originals
// match at the same position the longer one wins, and replaced text is
// never matched again.
func RewriteReferences(markup string, m *model.RenameMap) string {
	entries := m.Entries()
	if len(entries) == 0 || markup == "" {
		return markup
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].Original) > len(entries[j].Original)
	})

	pairs := make([]string, 0, 2*len(entries))
	for _, e := range entries {
		if e.Original == "" {
			continue
		}
		pairs = append(pairs, RefPrefix+e.Original, RefPrefix+e.New)
	}
	if len(pairs) == 0 {
		return markup
	}
	return strings.NewReplacer(pairs...).Replace(markup)
}
