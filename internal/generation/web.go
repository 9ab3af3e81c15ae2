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
)

const (
	promptWebSystem = `You are a helpful assistant that answers questions based on web search results.
Use the search results provided to answer the user's question. Cite sources when relevant.

Format your response using markdown:
- Use **bold** for important terms or key points
- Use headings (## Heading) to organize different sections
- Use bullet points (-) for lists
- Keep paragraphs concise and well-structured

Be concise and accurate.`

	promptWebFallbackSystem = `You are a helpful assistant. The web search did not return results, but try to provide a helpful answer based on your knowledge. If you cannot provide accurate information, let the user know.`

	promptWebUser = `Web Search Results:
{{.Context}}

Question: {{.Query}}

Answer:`

	promptWebFallbackUser = `Question: {{.Query}}

Please provide a helpful answer. Note that web search results were not available.`
)

// WebAnswerer answers questions with live web search results as
// grounding context. When the search yields nothing it falls back to
// the model's own knowledge and says so in the prompt.
type WebAnswerer struct {
	searcher provider.WebSearcher
	lm       provider.LMProvider
	limit    int

	templateUser     *template.Template
	templateFallback *template.Template
}

func NewWebAnswerer(searcher provider.WebSearcher, lm provider.LMProvider) *WebAnswerer {
	return &WebAnswerer{
		searcher:         searcher,
		lm:               lm,
		templateUser:     template.Must(template.New("promptWebUser").Parse(promptWebUser)),
		templateFallback: template.Must(template.New("promptWebFallbackUser").Parse(promptWebFallbackUser)),
	}
}

func (a *WebAnswerer) Answer(ctx context.Context, query string, history []*api.ChatMessage) (api.CompletionStream, error) {
	resp, err := a.searcher.Search(ctx, api.WebSearchRequest{
		Query: query,
		Limit: a.limit,
	})
	if err != nil {
		return nil, fmt.Errorf("web search failed: %w", err)
	}

	type templatePayload struct {
		Context string
		Query   string
	}
	tp := templatePayload{Query: query}

	templ := a.templateUser
	systemPrompt := promptWebSystem

	if len(resp.Results) == 0 {
		slog.Info("web search returned no results, answering from model knowledge", "query", query)
		templ = a.templateFallback
		systemPrompt = promptWebFallbackSystem
	} else {
		tp.Context = formatSearchResults(resp.Results)
	}

	var buf bytes.Buffer
	if err := templ.Execute(&buf, tp); err != nil {
		return nil, fmt.Errorf("failed to parse prompt template for query '%s': %w", query, err)
	}

	return a.lm.Chat(ctx, api.ChatRequest{
		Query:        buf.String(),
		SystemPrompt: systemPrompt,
		History:      history,
	})
}

func formatSearchResults(results []*api.ScoredDocument) string {
	parts := make([]string, 0, len(results))
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("Result %d:\nTitle: %s\nContent: %s\nURL: %s",
			i+1, result.Title, result.Content, result.Url))
	}
	return strings.Join(parts, "\n\n")
}
