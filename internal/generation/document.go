// Package generation turns retrieval results into grounded chat
// completions. It builds the prompts and drives the language model;
// retrieval and search are injected collaborators.
package generation

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"askdoc/internal/api"
	"askdoc/internal/provider"
	"askdoc/internal/rag"
)

const (
	promptDocumentSystem = `You are a helpful assistant that answers questions based on the provided context from an uploaded document.
Answer the question using only the information from the context. If the answer is not in the context, say "I don't have enough information to answer this question based on the uploaded document."

Format your response using markdown:
- Use **bold** for important terms or key points
- Use headings (## Heading) to organize different sections
- Use bullet points (-) for lists
- Keep paragraphs concise and well-structured

Be concise and accurate.`

	promptDocumentUser = `Context from document:
{{.Context}}

Question: {{.Query}}

Answer:`
)

// Retriever returns the chunks of a user's loaded document most similar
// to the query, best first.
type Retriever interface {
	Query(ctx context.Context, userID, query string, k int) ([]api.ScoredChunk, error)
}

type DocumentAnswererOption func(*DocumentAnswerer)

// DocumentAnswerer answers questions about a user's uploaded document by
// retrieving the most relevant chunks and prompting a language model
// with them.
type DocumentAnswerer struct {
	retriever Retriever
	lm        provider.LMProvider
	reranker  provider.Reranker
	topK      int

	templateUser *template.Template
}

func NewDocumentAnswerer(retriever Retriever, lm provider.LMProvider, opts ...DocumentAnswererOption) *DocumentAnswerer {
	a := &DocumentAnswerer{
		retriever:    retriever,
		lm:           lm,
		topK:         rag.DefaultTopK,
		templateUser: template.Must(template.New("promptDocumentUser").Parse(promptDocumentUser)),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// WithReranker inserts a rerank pass between retrieval and generation.
func WithReranker(r provider.Reranker) DocumentAnswererOption {
	return func(a *DocumentAnswerer) {
		a.reranker = r
	}
}

func WithTopK(k int) DocumentAnswererOption {
	return func(a *DocumentAnswerer) {
		a.topK = k
	}
}

// Answer retrieves context for the query and streams the model's
// grounded response. History carries the prior conversation turns.
func (a *DocumentAnswerer) Answer(ctx context.Context, userID, query string, history []*api.ChatMessage) (api.CompletionStream, error) {
	scored, err := a.retriever.Query(ctx, userID, query, a.topK)
	if err != nil {
		return nil, err
	}

	chunkTexts := make([]string, 0, len(scored))
	for _, sc := range scored {
		chunkTexts = append(chunkTexts, sc.Chunk.Text)
	}

	if a.reranker != nil && len(chunkTexts) > 1 {
		chunkTexts = a.rerank(ctx, query, chunkTexts)
	}

	type templatePayload struct {
		Context string
		Query   string
	}
	tp := templatePayload{
		Context: strings.Join(chunkTexts, "\n\n"),
		Query:   query,
	}

	var buf bytes.Buffer
	if err := a.templateUser.Execute(&buf, tp); err != nil {
		return nil, fmt.Errorf("failed to parse prompt template for query '%s': %w", query, err)
	}

	return a.lm.Chat(ctx, api.ChatRequest{
		Query:        buf.String(),
		SystemPrompt: promptDocumentSystem,
		History:      history,
	})
}

// rerank is best-effort: on failure the original retrieval order is
// kept. The reranker may drop low-relevance chunks, but never all of
// them.
func (a *DocumentAnswerer) rerank(ctx context.Context, query string, chunkTexts []string) []string {
	resp, err := a.reranker.Rerank(ctx, api.RerankRequest{
		Query:     query,
		Documents: chunkTexts,
	})
	if err != nil {
		slog.Warn("rerank failed, keeping retrieval order", "err", err)
		return chunkTexts
	}
	if len(resp.Documents) == 0 {
		return chunkTexts
	}

	reranked := make([]string, 0, len(resp.Documents))
	for _, doc := range resp.Documents {
		reranked = append(reranked, doc.Content)
	}
	return reranked
}
