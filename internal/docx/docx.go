// Package docx reads and writes the minimal subset of the OOXML wordprocessing
// format the journal needs: a flat sequence of plain-text paragraphs. A .docx
// file is a zip archive; paragraph text lives in word/document.xml as
// <w:p><w:r><w:t> runs. Styling from other editors is ignored on read and not
// preserved on write.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Document is a flat list of paragraph texts.
type Document struct {
	Paragraphs []string
}

// AddParagraph appends a paragraph to the document.
func (d *Document) AddParagraph(text string) {
	d.Paragraphs = append(d.Paragraphs, text)
}

// Read parses a .docx file into its paragraph texts.
func Read(path string) (*Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %s: %w", path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open document body: %w", err)
		}
		defer rc.Close()
		return parseBody(rc)
	}

	return nil, fmt.Errorf("document %s has no word/document.xml", path)
}

func parseBody(r io.Reader) (*Document, error) {
	doc := &Document{}
	dec := xml.NewDecoder(r)

	var (
		depth   int // nesting inside <w:p>, to ignore nested paragraphs in tables
		inText  bool
		current strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document body: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				depth++
				if depth == 1 {
					current.Reset()
				}
			case "t":
				inText = depth > 0
			case "br", "cr":
				if depth > 0 {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				if depth == 1 {
					doc.Paragraphs = append(doc.Paragraphs, current.String())
				}
				if depth > 0 {
					depth--
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return doc, nil
}

// Write saves the document to path, replacing any existing file atomically.
func Write(path string, doc *Document) error {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", documentXML(doc)},
	}

	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", part.name, err)
		}
		if _, err := io.WriteString(w, part.body); err != nil {
			return fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize document archive: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func documentXML(doc *Document) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="` + wordNS + `"><w:body>`)
	for _, p := range doc.Paragraphs {
		b.WriteString("<w:p>")
		// A paragraph may carry embedded newlines; render them as line breaks.
		for i, line := range strings.Split(p, "\n") {
			if i > 0 {
				b.WriteString("<w:r><w:br/></w:r>")
			}
			if line == "" {
				continue
			}
			b.WriteString(`<w:r><w:t xml:space="preserve">`)
			xml.EscapeText(&b, []byte(line))
			b.WriteString("</w:t></w:r>")
		}
		b.WriteString("</w:p>")
	}
	b.WriteString("</w:body></w:document>")
	return b.String()
}

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

const relsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`
