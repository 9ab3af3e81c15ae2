package parser_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"askdoc/internal/parser"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestParseText(t *testing.T) {
	path := writeTempFile(t, "notes.txt", "hello from a text file")

	content, err := parser.Parse(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content.Title != "notes" {
		t.Errorf("expected title 'notes', got %q", content.Title)
	}
	if content.Text() != "hello from a text file" {
		t.Errorf("unexpected text: %q", content.Text())
	}
}

func TestParseMarkdown(t *testing.T) {
	path := writeTempFile(t, "readme.md", "# Title\n\nbody")

	content, err := parser.Parse(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(content.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(content.Pages))
	}
}

func TestParseUnsupportedFormat(t *testing.T) {
	path := writeTempFile(t, "image.png", "not really an image")

	_, err := parser.Parse(path)
	if !errors.Is(err, parser.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestParseEmptyText(t *testing.T) {
	path := writeTempFile(t, "empty.txt", "   \n\t ")

	_, err := parser.Parse(path)
	if !errors.Is(err, parser.ErrNoExtractableText) {
		t.Errorf("expected ErrNoExtractableText, got %v", err)
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, err := parser.Parse(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
