// Package extract turns uploaded quotation files into analyzable content:
// plain text for document formats, raw bytes plus MIME type for images.
//
// Parse failures inside a supported format do not abort the pipeline. The
// extractor returns a sentinel string (e.g. "[PDF_PARSE_ERROR]: ...") as the
// document text instead, so a corrupt upload still flows through analysis and
// surfaces as an integrity-flagged result rather than a hard error.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrUnsupported is returned for file extensions the extractor cannot handle.
var ErrUnsupported = errors.New("unsupported file format")

// Kind discriminates what a Document carries.
type Kind string

const (
	// KindText marks a document whose content was flattened to plain text.
	KindText Kind = "text"
	// KindImage marks a document passed through as raw image bytes for
	// multimodal extraction.
	KindImage Kind = "image"
)

// Document is the normalized result of extracting an uploaded file.
type Document struct {
	Kind Kind
	// Text holds the flattened content for KindText documents.
	Text string
	// MIMEType and Data are set for KindImage documents.
	MIMEType string
	Data     []byte
}

// Extractor routes uploaded files to the parser matching their extension.
type Extractor struct {
	log *zap.Logger
}

// New creates an Extractor. A nil logger is replaced with a no-op one.
func New(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{log: logger.Named("extract")}
}

// Extract parses the uploaded file into a Document based on its extension.
// Supported text formats: pdf, docx, doc, txt, csv, xlsx, xls, html, htm.
// Supported image formats: png, jpg, jpeg. Anything else returns
// ErrUnsupported.
func (e *Extractor) Extract(filename string, data []byte) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	e.log.Debug("Extracting uploaded file",
		zap.String("filename", filename),
		zap.String("ext", ext),
		zap.Int("bytes", len(data)),
	)

	switch ext {
	case ".pdf":
		return &Document{Kind: KindText, Text: e.pdfText(data)}, nil
	case ".docx", ".doc":
		return &Document{Kind: KindText, Text: docxText(data)}, nil
	case ".txt":
		return &Document{Kind: KindText, Text: strings.ToValidUTF8(string(data), "�")}, nil
	case ".csv":
		return &Document{Kind: KindText, Text: csvText(data)}, nil
	case ".xlsx", ".xls":
		return &Document{Kind: KindText, Text: excelText(data)}, nil
	case ".html", ".htm":
		return &Document{Kind: KindText, Text: htmlText(data)}, nil
	case ".png":
		return &Document{Kind: KindImage, MIMEType: "image/png", Data: data}, nil
	case ".jpg", ".jpeg":
		return &Document{Kind: KindImage, MIMEType: "image/jpeg", Data: data}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}
