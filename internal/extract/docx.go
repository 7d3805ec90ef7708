package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

// docxText flattens a DOCX file to plain text: body paragraphs first, then
// table rows with their cell texts joined by " | ". A .doc routed here fails
// the zip open and comes back as the sentinel text.
func docxText(data []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Sprintf("[DOCX_PARSE_ERROR]: %v", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Sprintf("[DOCX_PARSE_ERROR]: %v", err)
		}
		docXML, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return fmt.Sprintf("[DOCX_PARSE_ERROR]: %v", err)
		}
		break
	}
	if docXML == nil {
		return "[DOCX_PARSE_ERROR]: word/document.xml not found in archive"
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(docXML); err != nil {
		return fmt.Sprintf("[DOCX_PARSE_ERROR]: %v", err)
	}
	root := doc.Root()
	if root == nil {
		return "[DOCX_PARSE_ERROR]: empty document"
	}
	body := root.SelectElement("body")
	if body == nil {
		return ""
	}

	var parts []string
	// Top level paragraphs first, then tables, mirroring how the document
	// object model exposes them.
	for _, el := range body.ChildElements() {
		if el.Tag != "p" {
			continue
		}
		if text := runText(el); strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	}
	for _, el := range body.ChildElements() {
		if el.Tag != "tbl" {
			continue
		}
		for _, row := range el.ChildElements() {
			if row.Tag != "tr" {
				continue
			}
			var cells []string
			for _, cell := range row.ChildElements() {
				if cell.Tag != "tc" {
					continue
				}
				if text := strings.TrimSpace(runText(cell)); text != "" {
					cells = append(cells, text)
				}
			}
			if len(cells) > 0 {
				parts = append(parts, strings.Join(cells, " | "))
			}
		}
	}
	return strings.Join(parts, "\n")
}

// runText concatenates the character data of every w:t run below the element.
func runText(el *etree.Element) string {
	var sb strings.Builder
	for _, child := range el.ChildElements() {
		if child.Tag == "t" {
			sb.WriteString(child.Text())
			continue
		}
		sb.WriteString(runText(child))
	}
	return sb.String()
}
