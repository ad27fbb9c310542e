// Package resume extracts plain text from uploaded resume documents.
package resume

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrUnsupportedFormat is returned for file types the extractor cannot read.
	ErrUnsupportedFormat = errors.New("unsupported resume format")
	// ErrEmptyText is returned when a readable document yields no text.
	ErrEmptyText = errors.New("no text could be extracted from the resume")
)

// SupportedExtensions lists the file extensions the extractor accepts.
var SupportedExtensions = []string{".pdf", ".txt", ".md"}

// ExtractText returns the plain text of the uploaded document. The filename
// extension decides the format. Both error conditions must surface before
// any model call is made.
func ExtractText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		text string
		err  error
	)

	switch ext {
	case ".pdf":
		text, err = extractPDF(data)
	case ".txt", ".md":
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}

	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, content); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return builder.String(), nil
}
