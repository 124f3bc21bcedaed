package docx

import "encoding/xml"

// documentXML represents the structure of word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

// bodyXML represents the document body. Paragraphs are collected in
// document order, including those wrapped in block-level content controls.
type bodyXML struct {
	Paragraphs []paragraphXML
}

// UnmarshalXML collects body paragraphs in order. Tables are skipped.
func (b *bodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var p paragraphXML
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				b.Paragraphs = append(b.Paragraphs, p)
			case "sdt", "sdtContent", "customXml":
				depth++
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	Properties paragraphPropsXML
	Runs       []runXML // in document order, including runs inside hyperlinks
}

// UnmarshalXML collects the runs of a paragraph in order. Runs nested in
// hyperlinks, insertions, smart tags, simple fields and inline content
// controls are included; deleted text is not.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				if err := d.DecodeElement(&p.Properties, &t); err != nil {
					return err
				}
			case "r":
				var r runXML
				if err := d.DecodeElement(&r, &t); err != nil {
					return err
				}
				p.Runs = append(p.Runs, r)
			case "hyperlink", "ins", "smartTag", "fldSimple", "customXml", "sdt", "sdtContent":
				depth++
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
type paragraphPropsXML struct {
	Style      styleRefXML   `xml:"pStyle"`
	Indent     indentXML     `xml:"ind"`
	OutlineLvl outlineLvlXML `xml:"outlineLvl"`
}

// styleRefXML represents a style reference.
type styleRefXML struct {
	Val string `xml:"val,attr"`
}

// indentXML represents paragraph indentation in twips. Newer producers
// write start/end instead of left/right.
type indentXML struct {
	Left      string `xml:"left,attr"`
	Start     string `xml:"start,attr"`
	FirstLine string `xml:"firstLine,attr"`
	Hanging   string `xml:"hanging,attr"`
}

// left returns the left indent attribute, preferring "left" over "start".
func (ind indentXML) left() string {
	if ind.Left != "" {
		return ind.Left
	}
	return ind.Start
}

// outlineLvlXML represents an outline level.
type outlineLvlXML struct {
	Val string `xml:"val,attr"`
}

// runXML represents a text run (<w:r>).
type runXML struct {
	Properties runPropsXML `xml:"rPr"`
	Content    []runContent
}

// runContent is one text-bearing child of a run, in order.
type runContent struct {
	Kind  string // "t", "tab", "br", "cr"
	Text  string
	Break string // type attribute of <w:br>
}

// UnmarshalXML reads run properties and text-bearing children in order.
func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				if err := d.DecodeElement(&r.Properties, &t); err != nil {
					return err
				}
			case "t":
				var tx textXML
				if err := d.DecodeElement(&tx, &t); err != nil {
					return err
				}
				r.Content = append(r.Content, runContent{Kind: "t", Text: tx.Value})
			case "br":
				c := runContent{Kind: "br"}
				for _, a := range t.Attr {
					if a.Name.Local == "type" {
						c.Break = a.Value
					}
				}
				r.Content = append(r.Content, c)
				if err := d.Skip(); err != nil {
					return err
				}
			case "tab", "cr":
				r.Content = append(r.Content, runContent{Kind: t.Name.Local})
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// text returns the plain text of the run.
func (r runXML) text() string {
	var buf []byte
	for _, c := range r.Content {
		switch c.Kind {
		case "t":
			buf = append(buf, c.Text...)
		case "tab":
			buf = append(buf, '\t')
		case "br", "cr":
			if c.Break == "page" || c.Break == "column" {
				continue
			}
			buf = append(buf, '\n')
		}
	}
	return string(buf)
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Style    styleRefXML `xml:"rStyle"`
	FontSize sizeXML     `xml:"sz"`
	Font     fontXML     `xml:"rFonts"`
}

// sizeXML represents a size in half-points.
type sizeXML struct {
	Val string `xml:"val,attr"`
}

// fontXML represents the fonts of a run.
type fontXML struct {
	ASCII    string `xml:"ascii,attr"`
	HAnsi    string `xml:"hAnsi,attr"`
	CS       string `xml:"cs,attr"`
	EastAsia string `xml:"eastAsia,attr"`
}

// name returns the font used for Latin text.
func (f fontXML) name() string {
	if f.ASCII != "" {
		return f.ASCII
	}
	return f.HAnsi
}

// textXML represents a text element (<w:t>).
type textXML struct {
	Space string `xml:"space,attr"` // preserve
	Value string `xml:",chardata"`
}
