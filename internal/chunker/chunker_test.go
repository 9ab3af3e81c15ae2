// Copyright 2025 Alan Matykiewicz
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

package chunker_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"askdoc/internal/chunker"
)

func TestWindowSplit(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		size    int
		overlap int
		want    []string
	}{
		{
			name: "overlapping windows with clipped tail",
			text: "ABCDEFGHIJ", size: 4, overlap: 1,
			want: []string{"ABCD", "DEFG", "GHIJ"},
		},
		{
			name: "text shorter than size",
			text: "hello", size: 100, overlap: 10,
			want: []string{"hello"},
		},
		{
			name: "text equal to size",
			text: "abcd", size: 4, overlap: 1,
			want: []string{"abcd"},
		},
		{
			name: "no overlap",
			text: "abcdef", size: 2, overlap: 0,
			want: []string{"ab", "cd", "ef"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := chunker.NewWindow(tt.size, tt.overlap)
			if err != nil {
				t.Fatalf("unexpected error creating window: %v", err)
			}

			got, err := w.Split(tt.text)
			if err != nil {
				t.Fatalf("unexpected error splitting: %v", err)
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected chunks %q, got %q", tt.want, got)
			}
		})
	}
}

func TestWindowSplitEmptyText(t *testing.T) {
	w, err := chunker.NewWindow(4, 1)
	if err != nil {
		t.Fatalf("unexpected error creating window: %v", err)
	}

	chunks, err := w.Split("")
	if err != nil {
		t.Fatalf("unexpected error splitting: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected no chunks for empty text, got %q", chunks)
	}
}

func TestWindowInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
	}{
		{"overlap equal to size", 100, 100},
		{"overlap greater than size", 100, 150},
		{"zero size", 0, 0},
		{"negative size", -1, 0},
		{"negative overlap", 100, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := chunker.NewWindow(tt.size, tt.overlap)
			if !errors.Is(err, chunker.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestWindowSplitCoversEveryOffset(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog, twice at least."

	configs := []struct{ size, overlap int }{
		{4, 1}, {10, 3}, {7, 0}, {1000, 200}, {len(text), 0},
	}

	for _, cfg := range configs {
		w, err := chunker.NewWindow(cfg.size, cfg.overlap)
		if err != nil {
			t.Fatalf("unexpected error creating window: %v", err)
		}

		chunks, err := w.Split(text)
		if err != nil {
			t.Fatalf("unexpected error splitting: %v", err)
		}
		if len(chunks) < 1 {
			t.Fatalf("expected at least one chunk for size=%d overlap=%d", cfg.size, cfg.overlap)
		}

		covered := make([]bool, len(text))
		offset := 0
		for i, c := range chunks {
			if i > 0 {
				offset += cfg.size - cfg.overlap
			}
			for j := range len(c) {
				covered[offset+j] = true
			}
		}
		for i, ok := range covered {
			if !ok {
				t.Errorf("offset %d not covered for size=%d overlap=%d", i, cfg.size, cfg.overlap)
			}
		}
	}
}

func TestWindowSplitMultibyte(t *testing.T) {
	text := strings.Repeat("héllø wörld ", 20)

	w, err := chunker.NewWindow(10, 2)
	if err != nil {
		t.Fatalf("unexpected error creating window: %v", err)
	}

	chunks, err := w.Split(text)
	if err != nil {
		t.Fatalf("unexpected error splitting: %v", err)
	}

	for i, c := range chunks {
		if !utf8.ValidString(c) {
			t.Errorf("chunk %d is not valid UTF-8: %q", i, c)
		}
	}
}
