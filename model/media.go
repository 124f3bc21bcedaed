package model

import "fmt"

// MediaAsset is a binary asset extracted from a source archive.
type MediaAsset struct {
	OriginalName string // base name inside the archive, e.g. "image1.png"
	Extension    string // extension including the dot, e.g. ".png"
	NewName      string // assigned name, e.g. "image_7.png"
	SequenceID   int    // batch-wide sequence number used for NewName
	Digest       string // BLAKE3-256 hex digest of the content
	Width        int    // pixel width, 0 if the format could not be probed
	Height       int    // pixel height, 0 if the format could not be probed
}

// RenameEntry is one original→new mapping.
type RenameEntry struct {
	Original string
	New      string
}

// RenameMap maps original asset names to their new names for one document.
// Entries keep insertion order. No two originals share a new name.
type RenameMap struct {
	entries []RenameEntry
	byOrig  map[string]string
	byNew   map[string]string
}

// NewRenameMap returns an empty RenameMap.
func NewRenameMap() *RenameMap {
	return &RenameMap{
		byOrig: make(map[string]string),
		byNew:  make(map[string]string),
	}
}

// Add records a mapping. Adding the same pair twice is a no-op; mapping an
// original to a second name, or a name already used by another original,
// is an error.
func (m *RenameMap) Add(original, newName string) error {
	if cur, ok := m.byOrig[original]; ok {
		if cur == newName {
			return nil
		}
		return fmt.Errorf("%q already renamed to %q", original, cur)
	}
	if other, ok := m.byNew[newName]; ok {
		return fmt.Errorf("name %q already assigned to %q", newName, other)
	}
	m.byOrig[original] = newName
	m.byNew[newName] = original
	m.entries = append(m.entries, RenameEntry{Original: original, New: newName})
	return nil
}

// Lookup returns the new name for original.
func (m *RenameMap) Lookup(original string) (string, bool) {
	if m == nil {
		return "", false
	}
	n, ok := m.byOrig[original]
	return n, ok
}

// Entries returns the mappings in insertion order.
func (m *RenameMap) Entries() []RenameEntry {
	if m == nil {
		return nil
	}
	return append([]RenameEntry(nil), m.entries...)
}

// Len returns the number of mappings.
func (m *RenameMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}
