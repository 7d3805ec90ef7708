package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// pdfText flattens a PDF to plain text, one extracted page per line.
// The pdf library panics on some malformed inputs, so the whole extraction
// runs behind a recover that converts failures into the sentinel text.
func (e *Extractor) pdfText(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("PDF extraction panicked", zap.Any("cause", r))
			text = fmt.Sprintf("[PDF_PARSE_ERROR]: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Sprintf("[PDF_PARSE_ERROR]: %v", err)
	}

	var parts []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil || pageText == "" {
			continue
		}
		parts = append(parts, pageText)
	}
	return strings.Join(parts, "\n")
}
