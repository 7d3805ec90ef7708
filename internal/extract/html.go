package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// htmlText flattens an HTML page to its visible text. Script and style
// blocks are dropped, and non-UTF-8 pages are decoded via their declared
// charset before parsing.
func htmlText(data []byte) string {
	reader, err := charset.NewReader(bytes.NewReader(data), "text/html")
	if err != nil {
		return fmt.Sprintf("[HTML_PARSE_ERROR]: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return fmt.Sprintf("[HTML_PARSE_ERROR]: %v", err)
	}
	doc.Find("script, style, noscript").Remove()

	// The parser always synthesizes a body element, even for fragments.
	var parts []string
	for _, line := range strings.Split(doc.Find("body").Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}
