package extract

import (
	"errors"
	"testing"

	fuzz "github.com/AdaLogics/go-fuzz-headers"
	"go.uber.org/zap"
)

// FuzzExtract feeds arbitrary filenames and payloads through the router. The
// contract is that the only possible error is ErrUnsupported; everything else
// must come back as a document, with parse failures folded into sentinel text.
func FuzzExtract(f *testing.F) {
	f.Add([]byte("quote.txt\x00plain text payload"))
	f.Add([]byte{0x00, 0xff, 0x13, 0x37})

	ex := New(zap.NewNop())
	f.Fuzz(func(t *testing.T, raw []byte) {
		consumer := fuzz.NewConsumer(raw)
		name, err := consumer.GetString()
		if err != nil {
			return
		}
		data, err := consumer.GetBytes()
		if err != nil {
			return
		}

		doc, err := ex.Extract(name, data)
		if err != nil {
			if !errors.Is(err, ErrUnsupported) {
				t.Fatalf("unexpected error class for %q: %v", name, err)
			}
			return
		}
		if doc == nil {
			t.Fatalf("nil document without error for %q", name)
		}
		switch doc.Kind {
		case KindText, KindImage:
		default:
			t.Fatalf("unexpected document kind %q for %q", doc.Kind, name)
		}
	})
}

// FuzzParsers runs the same hostile payload through every supported text
// format, which is where the third-party parsers meet untrusted bytes.
func FuzzParsers(f *testing.F) {
	f.Add([]byte("%PDF-1.4 truncated"))
	f.Add([]byte("PK\x03\x04 not a real archive"))
	f.Add([]byte("<html><body>Total: 500 USD</body>"))
	f.Add([]byte("a,b\n\"unterminated"))

	names := []string{"q.pdf", "q.docx", "q.txt", "q.csv", "q.xlsx", "q.html"}
	ex := New(zap.NewNop())
	f.Fuzz(func(t *testing.T, data []byte) {
		for _, name := range names {
			doc, err := ex.Extract(name, data)
			if err != nil {
				t.Fatalf("supported format %q must not error, got %v", name, err)
			}
			if doc.Kind != KindText {
				t.Fatalf("expected text document for %q, got kind %q", name, doc.Kind)
			}
		}
	})
}
