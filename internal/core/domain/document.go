package domain

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for documents outside the known formats.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Format tags the container a document's bytes are stored in.
type Format int

const (
	FormatText Format = iota
	FormatPDF
	FormatDOCX
)

// Formats lists every supported format.
var Formats = [...]Format{FormatText, FormatPDF, FormatDOCX}

// String returns the canonical extension of the format, without the dot.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "txt"
	case FormatPDF:
		return "pdf"
	case FormatDOCX:
		return "docx"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat maps an extension ("pdf", ".PDF") to its format.
func ParseFormat(ext string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "txt", "text":
		return FormatText, nil
	case "pdf":
		return FormatPDF, nil
	case "docx":
		return FormatDOCX, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// FormatFromName infers the format from a file name's extension.
func FormatFromName(name string) (Format, error) {
	ext := filepath.Ext(name)
	if ext == "" {
		return 0, fmt.Errorf("%w: %q has no extension", ErrUnsupportedFormat, name)
	}
	return ParseFormat(ext)
}

// Document is an undecoded input file.
type Document struct {
	Name   string
	Data   []byte
	Format Format
}

// NewDocument builds a Document, inferring the format from name.
func NewDocument(name string, data []byte) (Document, error) {
	f, err := FormatFromName(name)
	if err != nil {
		return Document{}, err
	}
	return Document{Name: name, Data: data, Format: f}, nil
}
