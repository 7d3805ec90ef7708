// Package reporting renders analysis results to the terminal or to files.
// JSON reports wrap any payload in a timestamped envelope; XLSX reports
// render the cross-vendor comparison matrix.
package reporting

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var reportJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// Reporter writes one report payload and releases its sink. The JSON
// reporter accepts any payload; the XLSX reporter only accepts comparison
// results.
type Reporter interface {
	Write(payload any) error
	Close() error
}

// Envelope wraps every JSON report with generation metadata.
type Envelope struct {
	GeneratedAt string `json:"generated_at"`
	Version     string `json:"version"`
	Report      any    `json:"report"`
}

// New builds a Reporter for the requested format. An empty or "-" path sends
// JSON to stdout; XLSX always needs a real file path.
func New(format, path, version string) (Reporter, error) {
	switch strings.ToLower(format) {
	case "", "json":
		sink, err := openSink(path)
		if err != nil {
			return nil, err
		}
		return &jsonReporter{sink: sink, version: version, now: time.Now}, nil
	case "xlsx":
		if path == "" || path == "-" {
			return nil, errors.New("xlsx reports require an output file path")
		}
		return &xlsxReporter{path: path}, nil
	default:
		return nil, fmt.Errorf("unsupported report format %q (supported: json, xlsx)", format)
	}
}

// openSink resolves the output destination, defaulting to stdout.
func openSink(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}
	return f, nil
}

// nopWriteCloser keeps stdout open across reporter lifecycles.
type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

type jsonReporter struct {
	sink    io.WriteCloser
	version string
	now     func() time.Time
}

func (r *jsonReporter) Write(payload any) error {
	env := Envelope{
		GeneratedAt: r.now().Format(time.RFC3339),
		Version:     r.version,
		Report:      payload,
	}
	data, err := reportJSON.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')
	if _, err := r.sink.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (r *jsonReporter) Close() error { return r.sink.Close() }
