// Package parser extracts plain text from local document files so they
// can be chunked and indexed.
package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"askdoc/internal/api"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrNoExtractableText = errors.New("document contains no extractable text")
)

// Parse reads the file at path and returns its textual content. The
// format is chosen by file extension; pdf, txt and md are supported.
func Parse(path string) (*api.DocumentContent, error) {
	ext := strings.ToLower(filepath.Ext(path))
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var pages []api.DocumentPage
	var err error

	switch ext {
	case ".pdf":
		pages, err = parsePDF(path)
	case ".txt", ".md":
		pages, err = parseText(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	content := &api.DocumentContent{
		Title: title,
		Pages: pages,
	}
	if strings.TrimSpace(content.Text()) == "" {
		return nil, ErrNoExtractableText
	}

	return content, nil
}

func parsePDF(path string) ([]api.DocumentPage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	numPages := reader.NumPage()
	pages := make([]api.DocumentPage, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract pdf page %d: %w", i, err)
		}

		pages = append(pages, api.DocumentPage{
			Index: i,
			Text:  text,
		})
	}

	return pages, nil
}

func parseText(path string) ([]api.DocumentPage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return []api.DocumentPage{
		{Index: 1, Text: string(data)},
	}, nil
}
