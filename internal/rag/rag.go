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

// Package rag implements the retrieval core: load a user's document into a
// per-user in-memory index, answer queries with the most similar chunks.
// It performs no logging and no retries; every failure is reported to the
// caller as a value.
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"askdoc/internal/api"
	"askdoc/internal/chunker"
	"askdoc/internal/index"
	"askdoc/internal/provider"
)

const DefaultTopK = 3

// Pipeline owns one Retrieval Session Store and the collaborators needed
// to fill and query it. All dependencies are injected; the zero-value
// defaults (window splitter, fresh store) apply when nil is passed.
type Pipeline struct {
	splitter chunker.Splitter
	embedder provider.Embedder
	store    *index.Store
}

func New(splitter chunker.Splitter, embedder provider.Embedder, store *index.Store) *Pipeline {
	if splitter == nil {
		splitter = chunker.DefaultWindow()
	}
	if store == nil {
		store = index.NewStore()
	}
	return &Pipeline{
		splitter: splitter,
		embedder: embedder,
		store:    store,
	}
}

// LoadDocument chunks and embeds text and publishes the result as the
// user's retrieval index, replacing any previous one. It returns the
// number of chunks indexed. On any failure the user's previous index, if
// one exists, stays untouched.
func (p *Pipeline) LoadDocument(ctx context.Context, userID, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrEmptyDocument
	}

	chunkTexts, err := p.splitter.Split(text)
	if err != nil {
		return 0, err
	}
	if len(chunkTexts) == 0 {
		return 0, ErrEmptyDocument
	}

	vectors, err := p.embedder.EmbedBatch(ctx, chunkTexts)
	if err != nil {
		return 0, &ProviderError{Op: "document embedding", Err: err}
	}
	if err := validateVectors(vectors, len(chunkTexts)); err != nil {
		return 0, &ProviderError{Op: "document embedding", Err: err}
	}

	chunks := make([]api.Chunk, len(chunkTexts))
	for i, t := range chunkTexts {
		chunks[i] = api.Chunk{
			ID:    uuid.NewString(),
			Text:  t,
			Index: i,
		}
	}

	idx, err := index.New(chunks, vectors)
	if err != nil {
		return 0, err
	}

	p.store.Put(userID, idx)
	return idx.Len(), nil
}

// Query embeds the query text and returns the k chunks of the user's
// loaded document most similar to it, best first. k<=0 falls back to
// DefaultTopK.
func (p *Pipeline) Query(ctx context.Context, userID, query string, k int) ([]api.ScoredChunk, error) {
	idx, ok := p.store.Get(userID)
	if !ok {
		return nil, ErrNoDocumentLoaded
	}

	if k <= 0 {
		k = DefaultTopK
	}

	vec, err := p.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, &ProviderError{Op: "query embedding", Err: err}
	}
	if len(vec) == 0 {
		return nil, &ProviderError{Op: "query embedding", Err: fmt.Errorf("received empty vector")}
	}

	return idx.TopK(vec, k), nil
}

// Forget discards the user's retrieval index, as on logout or session end.
func (p *Pipeline) Forget(userID string) {
	p.store.Drop(userID)
}

// validateVectors checks the provider response at the boundary before any
// state is replaced: one vector per chunk, uniform non-zero dimension.
func validateVectors(vectors [][]float32, want int) error {
	if len(vectors) != want {
		return fmt.Errorf("expected %d vectors, received %d", want, len(vectors))
	}
	for i, v := range vectors {
		if len(v) == 0 {
			return fmt.Errorf("received empty vector at position %d", i)
		}
		if len(v) != len(vectors[0]) {
			return fmt.Errorf("inconsistent vector dimensions: %d at position 0, %d at position %d",
				len(vectors[0]), len(v), i)
		}
	}
	return nil
}
