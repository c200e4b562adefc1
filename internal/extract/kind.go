// Package extract converts uploaded resume documents into plain text.
package extract

import (
	"mime"
	"path/filepath"
	"strings"
)

// Kind is an accepted document format.
type Kind int

const (
	KindUnknown Kind = iota
	KindPDF
	KindDOC
	KindDOCX
)

// MIME types accepted for upload.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOC  = "application/msword"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// genericMIME types carry no format information; the extension decides.
var genericMIME = map[string]bool{
	"":                         true,
	"application/octet-stream": true,
}

func (k Kind) String() string {
	switch k {
	case KindPDF:
		return "pdf"
	case KindDOC:
		return "doc"
	case KindDOCX:
		return "docx"
	default:
		return "unknown"
	}
}

// Extension returns the file extension for the kind, including the dot.
func (k Kind) Extension() string {
	if k == KindUnknown {
		return ""
	}
	return "." + k.String()
}

// MIMEType returns the canonical MIME type for the kind.
func (k Kind) MIMEType() string {
	switch k {
	case KindPDF:
		return MIMEPDF
	case KindDOC:
		return MIMEDOC
	case KindDOCX:
		return MIMEDOCX
	default:
		return ""
	}
}

// KindFromFilename resolves a kind from the file extension, case-insensitively.
func KindFromFilename(name string) Kind {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")) {
	case "pdf":
		return KindPDF
	case "doc":
		return KindDOC
	case "docx":
		return KindDOCX
	default:
		return KindUnknown
	}
}

// KindFromMIME resolves a kind from a Content-Type value. Parameters such
// as charset are ignored.
func KindFromMIME(contentType string) Kind {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(contentType))
	}
	switch mt {
	case MIMEPDF:
		return KindPDF
	case MIMEDOC:
		return KindDOC
	case MIMEDOCX:
		return KindDOCX
	default:
		return KindUnknown
	}
}

// Resolve determines the document kind of an upload. The extension
// selects the kind; a declared MIME type must be either generic or one
// of the accepted types.
func Resolve(filename, contentType string) (Kind, error) {
	kind := KindFromFilename(filename)
	if kind == KindUnknown {
		return KindUnknown, ErrUnsupportedFormat
	}

	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(contentType))
	}
	if !genericMIME[mt] && KindFromMIME(mt) == KindUnknown {
		return KindUnknown, ErrInvalidType
	}

	return kind, nil
}
