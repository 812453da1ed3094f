// Package extract turns uploaded résumé documents into plain text.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither PDF nor DOCX.
	ErrUnsupportedFormat = errors.New("unsupported file type, please upload a PDF or DOCX")
	// ErrExtractionFailed is returned when every strategy for a format failed.
	ErrExtractionFailed = errors.New("text extraction failed")
)

// Strategy is one way of turning document bytes into text.
type Strategy struct {
	Name string
	Func func(data []byte) (string, error)
}

// Extractor dispatches on file extension and runs that format's strategies
// in order until one succeeds.
type Extractor struct {
	pdf  []Strategy
	docx []Strategy
}

// Option customises an Extractor.
type Option func(*Extractor)

// WithPDFStrategies replaces the PDF strategy chain.
func WithPDFStrategies(strategies ...Strategy) Option {
	return func(e *Extractor) { e.pdf = strategies }
}

// WithDOCXStrategies replaces the DOCX strategy chain.
func WithDOCXStrategies(strategies ...Strategy) Option {
	return func(e *Extractor) { e.docx = strategies }
}

// New returns an Extractor with the default chains: page rows then whole
// document plain text for PDF, paragraph walk for DOCX.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		pdf: []Strategy{
			{Name: "pdf-rows", Func: pdfRowsText},
			{Name: "pdf-plain", Func: pdfPlainText},
		},
		docx: []Strategy{
			{Name: "docx-paragraphs", Func: docxText},
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract reads data once and returns its text. The filename only selects
// the format.
func (e *Extractor) Extract(filename string, data []byte) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".pdf":
		return run(e.pdf, data)
	case ".docx":
		return run(e.docx, data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
	}
}

func run(strategies []Strategy, data []byte) (string, error) {
	var errs []error
	for _, s := range strategies {
		text, err := s.Func(data)
		if err == nil {
			return text, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
	}
	if len(errs) == 0 {
		return "", fmt.Errorf("%w: no strategy configured", ErrExtractionFailed)
	}
	return "", fmt.Errorf("%w: %w", ErrExtractionFailed, errors.Join(errs...))
}

// FromMIME maps an upload content type to a file extension understood by
// Extract, or "" when the type is not supported.
func FromMIME(mime string) string {
	switch strings.ToLower(strings.TrimSpace(mime)) {
	case "application/pdf":
		return ".pdf"
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return ".docx"
	default:
		return ""
	}
}
