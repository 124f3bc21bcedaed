// Package format detects the format of input documents. Only DOCX is
// converted; the other formats are recognized so they can be reported
// precisely.
package format

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// DOC indicates a legacy binary Word (.doc) document.
	DOC
	// ODT indicates an OpenDocument Text (.odt) document.
	ODT
	// RTF indicates a Rich Text Format document.
	RTF
	// PDF indicates a PDF document.
	PDF
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case DOC:
		return "DOC"
	case ODT:
		return "ODT"
	case RTF:
		return "RTF"
	case PDF:
		return "PDF"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOCX:
		return ".docx"
	case DOC:
		return ".doc"
	case ODT:
		return ".odt"
	case RTF:
		return ".rtf"
	case PDF:
		return ".pdf"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx", ".docm":
		return DOCX
	case ".doc":
		return DOC
	case ".odt":
		return ODT
	case ".rtf":
		return RTF
	case ".pdf":
		return PDF
	default:
		return Unknown
	}
}

var (
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	rtfMagic = []byte(`{\rtf`)
	pdfMagic = []byte("%PDF")
)

// DetectFromMagic checks file magic bytes to determine format.
// ZIP archives return Unknown; use DetectFromReader to look inside them.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return PDF
	case bytes.HasPrefix(data, oleMagic):
		return DOC
	case bytes.HasPrefix(data, rtfMagic):
		return RTF
	default:
		return Unknown
	}
}

// DetectFromReader inspects the content to determine format. ZIP archives
// are opened and classified by their members.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 16)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if bytes.HasPrefix(magic, zipMagic) {
		return detectZIPFormat(r, size)
	}
	return DetectFromMagic(magic), nil
}

// DetectFile sniffs the content of the named file, falling back to its
// extension when the content is not conclusive.
func DetectFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Unknown, err
	}
	if info.IsDir() {
		return Unknown, fmt.Errorf("%s is a directory", path)
	}

	got, err := DetectFromReader(f, info.Size())
	if err != nil {
		return Unknown, fmt.Errorf("detecting format of %s: %w", path, err)
	}
	if got == Unknown {
		return Detect(path), nil
	}
	return got, nil
}

// detectZIPFormat inspects a ZIP archive to determine if it's DOCX or ODT.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	// Check for OpenDocument Format first (has mimetype file at the start)
	for _, f := range zr.File {
		if f.Name == "mimetype" {
			rc, err := f.Open()
			if err == nil {
				data := make([]byte, 256)
				n, _ := rc.Read(data)
				rc.Close()
				if strings.Contains(string(data[:n]), "application/vnd.oasis.opendocument.text") {
					return ODT, nil
				}
			}
		}
	}

	// Office Open XML word processing documents keep their parts under word/
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			return DOCX, nil
		}
	}

	return Unknown, nil
}
