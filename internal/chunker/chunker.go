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

// Package chunker splits extracted document text into the pieces that get
// embedded and retrieved. The default Window splitter makes no attempt to
// respect sentence or word boundaries; Sentence is the boundary-aware
// alternative.
package chunker

import (
	"errors"
	"fmt"
)

const (
	DefaultSize    = 1000
	DefaultOverlap = 200
)

var ErrInvalidConfig = errors.New("invalid chunker configuration")

// Splitter turns raw document text into an ordered sequence of chunks.
type Splitter interface {
	Split(text string) ([]string, error)
}

// Window emits fixed-size chunks of 'size' runes, each overlapping the
// previous one by 'overlap' runes.
type Window struct {
	size    int
	overlap int
}

func NewWindow(size, overlap int) (*Window, error) {
	if err := validateWindow(size, overlap); err != nil {
		return nil, err
	}
	return &Window{size: size, overlap: overlap}, nil
}

func DefaultWindow() *Window {
	return &Window{size: DefaultSize, overlap: DefaultOverlap}
}

func (w *Window) Split(text string) ([]string, error) {
	if err := validateWindow(w.size, w.overlap); err != nil {
		return nil, err
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}

	step := w.size - w.overlap
	chunks := make([]string, 0, (len(runes)+step-1)/step)

	// The window stops once it reaches the end of the text; a further step
	// would only re-emit trailing overlap.
	for start := 0; ; start += step {
		end := start + w.size
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks, nil
}

func validateWindow(size, overlap int) error {
	if size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConfig, size)
	}
	if overlap < 0 {
		return fmt.Errorf("%w: overlap must not be negative, got %d", ErrInvalidConfig, overlap)
	}
	if overlap >= size {
		// the window would never advance
		return fmt.Errorf("%w: overlap %d must be smaller than size %d", ErrInvalidConfig, overlap, size)
	}
	return nil
}
