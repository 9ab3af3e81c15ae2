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

// Package index holds the per-user retrieval state: chunk/vector pairs for
// the most recently loaded document, ranked by brute-force cosine
// similarity. It is a cache, not a store of record; nothing survives the
// process.
package index

import (
	"errors"

	"askdoc/internal/api"
)

var ErrLengthMismatch = errors.New("chunks and vectors length mismatch")

// Index pairs the chunks of one document with their embedding vectors.
// An Index is immutable once built; replacing a user's retrieval state
// means publishing a new Index, never mutating an existing one.
type Index struct {
	chunks  []api.Chunk
	vectors [][]float32
}

func New(chunks []api.Chunk, vectors [][]float32) (*Index, error) {
	if len(chunks) != len(vectors) {
		return nil, ErrLengthMismatch
	}
	return &Index{chunks: chunks, vectors: vectors}, nil
}

func (idx *Index) Len() int {
	return len(idx.chunks)
}

// TopK returns the k chunks most similar to the query vector, best first.
func (idx *Index) TopK(query []float32, k int) []api.ScoredChunk {
	ranked := TopK(query, idx.vectors, k)

	results := make([]api.ScoredChunk, 0, len(ranked))
	for _, i := range ranked {
		results = append(results, api.ScoredChunk{
			Chunk: idx.chunks[i],
			Score: Cosine(query, idx.vectors[i]),
		})
	}
	return results
}
