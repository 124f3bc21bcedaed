// Package docx reads the paragraph records and embedded media of DOCX
// (Office Open XML) documents.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/docxrst/media"
	"github.com/tsawler/docxrst/model"
)

// ErrNoParagraphs is returned by Paragraphs when the document body holds no
// paragraphs.
var ErrNoParagraphs = errors.New("docx: document has no paragraphs")

// Reader provides access to DOCX document content.
type Reader struct {
	zipReader  *zip.ReadCloser
	document   *documentXML
	styles     *stylesXML
	resolver   *StyleResolver
	paragraphs []model.Paragraph
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{
		zipReader: zr,
	}

	// Validate required files exist
	if err := r.validate(); err != nil {
		zr.Close()
		return nil, err
	}

	// Parse styles.xml (optional but usually present)
	if err := r.parseStyles(); err != nil {
		r.styles = nil
	}
	r.resolver = NewStyleResolver(r.styles)

	// Parse document.xml
	if err := r.parseDocument(); err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.zipReader != nil {
		err := r.zipReader.Close()
		r.zipReader = nil
		return err
	}
	return nil
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"word/document.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zipReader.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			return readZipFile(f)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Paragraphs returns the body paragraphs in document order.
func (r *Reader) Paragraphs() ([]model.Paragraph, error) {
	if r.document == nil {
		return nil, fmt.Errorf("document not parsed")
	}
	if len(r.paragraphs) == 0 {
		return nil, ErrNoParagraphs
	}
	return append([]model.Paragraph(nil), r.paragraphs...), nil
}

// Media returns the archive entries whose path contains a media segment,
// in archive order.
func (r *Reader) Media() ([]media.Entry, error) {
	if r.zipReader == nil {
		return nil, fmt.Errorf("reader closed")
	}
	return mediaEntries(r.zipReader.File)
}

// MediaEntries returns the media entries of the archive at path without
// parsing the document. It serves archives that Open rejects, such as
// packages missing "[Content_Types].xml".
func MediaEntries(path string) ([]media.Entry, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	defer zr.Close()
	return mediaEntries(zr.File)
}

func mediaEntries(files []*zip.File) ([]media.Entry, error) {
	var entries []media.Entry
	for _, f := range files {
		if !media.IsMedia(f.Name) {
			continue
		}
		data, err := readZipFile(f)
		if err != nil {
			return entries, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		entries = append(entries, media.Entry{Path: f.Name, Data: data})
	}
	return entries, nil
}

// parseDocument parses the main document content.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent("word/document.xml")
	if err != nil {
		return err
	}

	r.document = &documentXML{}
	if err := xml.Unmarshal(data, r.document); err != nil {
		return fmt.Errorf("unmarshaling document.xml: %w", err)
	}

	r.processParagraphs()
	return nil
}

// parseStyles parses the styles definition file.
func (r *Reader) parseStyles() error {
	data, err := r.getFileContent("word/styles.xml")
	if err != nil {
		return err
	}

	r.styles = &stylesXML{}
	return xml.Unmarshal(data, r.styles)
}

// processParagraphs processes all paragraphs in the document.
func (r *Reader) processParagraphs() {
	if r.document == nil || r.document.Body == nil {
		return
	}

	r.paragraphs = make([]model.Paragraph, 0, len(r.document.Body.Paragraphs))
	for i, p := range r.document.Body.Paragraphs {
		r.paragraphs = append(r.paragraphs, r.processParagraph(i, p))
	}
}

// processParagraph builds the record for one paragraph: its text, the
// resolved style name, the font of the first run with text and the left
// indent in points.
func (r *Reader) processParagraph(index int, p paragraphXML) model.Paragraph {
	styleID := p.Properties.Style.Val
	style := r.resolver.Resolve(styleID)

	para := model.Paragraph{
		Index:     index,
		StyleName: style.Name,
	}

	var text strings.Builder
	for _, run := range p.Runs {
		runText := run.text()
		if runText == "" {
			continue
		}
		if para.FontName == "" && strings.TrimSpace(runText) != "" {
			para.FontName = r.resolver.ResolveRun(styleID, run.Properties).FontName
		}
		text.WriteString(runText)
	}
	para.Text = norm.NFC.String(text.String())

	if left := p.Properties.Indent.left(); left != "" {
		para.LeftIndent = parseTwips(left)
	} else {
		para.LeftIndent = style.IndentLeft
	}

	return para
}
