package provider

import (
	"context"
	"errors"

	"askdoc/internal/api"
	"askdoc/internal/provider/cohere"
	"askdoc/internal/provider/gemini"
	"askdoc/internal/provider/openai"
	"askdoc/internal/provider/tavily"
)

var (
	ErrInvalidEmbedderType    = errors.New("no embedder found for given type")
	ErrInvalidLMProviderType  = errors.New("no lmprovider found for given type")
	ErrInvalidWebSearcherType = errors.New("no web searcher found for given type")
	ErrInvalidRerankerType    = errors.New("no reranker found for given type")
	ErrUnknownProviderName    = errors.New("unknown provider name")
)

type EmbedderType int
type LMProviderType int
type WebSearcherType int
type RerankerType int

const (
	EmbedderTypeOpenAI EmbedderType = iota
	EmbedderTypeGemini
	EmbedderTypeCohere
)

const (
	LMProviderTypeOpenAI LMProviderType = iota
	LMProviderTypeGemini
	LMProviderTypeCohere
)

const (
	WebSearcherTypeTavily WebSearcherType = iota
)

const (
	RerankerTypeCohere RerankerType = iota
)

var embedderTypeMap = map[string]EmbedderType{
	"openai": EmbedderTypeOpenAI,
	"gemini": EmbedderTypeGemini,
	"cohere": EmbedderTypeCohere,
}

var lmProviderTypeMap = map[string]LMProviderType{
	"openai": LMProviderTypeOpenAI,
	"gemini": LMProviderTypeGemini,
	"cohere": LMProviderTypeCohere,
}

// Embedder maps text to fixed-dimension vectors. Implementations wrap
// remote APIs; every call can fail and callers must treat it as blocking
// I/O.
type Embedder interface {
	EmbedQuery(ctx context.Context, q string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	GetDimensions() uint
}

type LMProvider interface {
	Chat(ctx context.Context, req api.ChatRequest) (api.CompletionStream, error)
}

type WebSearcher interface {
	Search(ctx context.Context, req api.WebSearchRequest) (*api.WebSearchResponse, error)
}

type Reranker interface {
	Rerank(ctx context.Context, req api.RerankRequest) (*api.RerankResponse, error)
}

func ParseEmbedderType(name string) (EmbedderType, error) {
	t, ok := embedderTypeMap[name]
	if !ok {
		return 0, ErrUnknownProviderName
	}
	return t, nil
}

func ParseLMProviderType(name string) (LMProviderType, error) {
	t, ok := lmProviderTypeMap[name]
	if !ok {
		return 0, ErrUnknownProviderName
	}
	return t, nil
}

func NewEmbedder(t EmbedderType) (Embedder, error) {
	switch t {
	case EmbedderTypeOpenAI:
		return openai.New(), nil
	case EmbedderTypeGemini:
		return gemini.New(), nil
	case EmbedderTypeCohere:
		return cohere.New(), nil
	default:
		return nil, ErrInvalidEmbedderType
	}
}

func NewLMProvider(t LMProviderType) (LMProvider, error) {
	switch t {
	case LMProviderTypeOpenAI:
		return openai.New(), nil
	case LMProviderTypeGemini:
		return gemini.New(), nil
	case LMProviderTypeCohere:
		return cohere.New(), nil
	default:
		return nil, ErrInvalidLMProviderType
	}
}

func NewWebSearcher(t WebSearcherType) (WebSearcher, error) {
	switch t {
	case WebSearcherTypeTavily:
		return tavily.New(), nil
	default:
		return nil, ErrInvalidWebSearcherType
	}
}

func NewReranker(t RerankerType) (Reranker, error) {
	switch t {
	case RerankerTypeCohere:
		return cohere.New(), nil
	default:
		return nil, ErrInvalidRerankerType
	}
}
