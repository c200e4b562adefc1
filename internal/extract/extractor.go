package extract

import (
	"context"
	"errors"
	"fmt"
)

//nolint:staticcheck // messages are returned to API clients verbatim
var (
	// ErrUnsupportedFormat is returned for files whose extension is not pdf, doc or docx.
	ErrUnsupportedFormat = errors.New("Unsupported file format")
	// ErrInvalidType is returned when the declared MIME type is not an accepted document type.
	ErrInvalidType = errors.New("Invalid file type. Only PDF, DOC and DOCX files are allowed.")
)

// FileExtractor extracts text from one document format stored on disk.
type FileExtractor interface {
	ExtractFile(ctx context.Context, path string) (string, error)
}

// Extractor dispatches to a FileExtractor per document kind and cleans
// the resulting text.
type Extractor struct {
	byKind map[Kind]FileExtractor
}

// New returns an Extractor for PDF, DOC and DOCX documents.
func New() *Extractor {
	return NewWith(map[Kind]FileExtractor{
		KindPDF:  NewPDFExtractor(),
		KindDOC:  NewWordExtractor(KindDOC),
		KindDOCX: NewWordExtractor(KindDOCX),
	})
}

// NewWith returns an Extractor using the given per-kind extractors.
func NewWith(byKind map[Kind]FileExtractor) *Extractor {
	m := make(map[Kind]FileExtractor, len(byKind))
	for k, v := range byKind {
		m[k] = v
	}
	return &Extractor{byKind: m}
}

// Extract reads the document at path as the given kind.
func (e *Extractor) Extract(ctx context.Context, path string, kind Kind) (string, error) {
	fe, ok := e.byKind[kind]
	if !ok {
		return "", fmt.Errorf("no extractor for %s documents: %w", kind, ErrUnsupportedFormat)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := fe.ExtractFile(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to extract %s text: %w", kind, err)
	}
	return CleanText(text), nil
}
