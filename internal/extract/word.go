package extract

import (
	"context"
	"fmt"
	"io"
	"os"

	"code.sajari.com/docconv"
)

// WordExtractor extracts plain text from Word documents. DOCX is parsed
// natively; legacy DOC requires the wvText tool on PATH.
type WordExtractor struct {
	kind    Kind
	convert func(io.Reader) (string, map[string]string, error)
}

// NewWordExtractor creates a WordExtractor for KindDOC or KindDOCX.
func NewWordExtractor(kind Kind) *WordExtractor {
	convert := docconv.ConvertDocx
	if kind == KindDOC {
		convert = docconv.ConvertDoc
	}
	return &WordExtractor{kind: kind, convert: convert}
}

// ExtractFile extracts the body text of the Word document at path.
func (e *WordExtractor) ExtractFile(_ context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s document: %w", e.kind, err)
	}
	defer f.Close()

	body, _, err := e.convert(f)
	if err != nil {
		return "", fmt.Errorf("converting %s document: %w", e.kind, err)
	}
	return body, nil
}
