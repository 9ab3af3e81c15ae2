package provider_test

import (
	"errors"
	"testing"

	"askdoc/internal/provider"
)

func TestParseEmbedderType(t *testing.T) {
	for name, want := range map[string]provider.EmbedderType{
		"openai": provider.EmbedderTypeOpenAI,
		"gemini": provider.EmbedderTypeGemini,
		"cohere": provider.EmbedderTypeCohere,
	} {
		got, err := provider.ParseEmbedderType(name)
		if err != nil {
			t.Errorf("unexpected error for %q: %v", name, err)
		}
		if got != want {
			t.Errorf("expected %v for %q, got %v", want, name, got)
		}
	}
}

func TestParseEmbedderTypeUnknown(t *testing.T) {
	if _, err := provider.ParseEmbedderType("jina"); !errors.Is(err, provider.ErrUnknownProviderName) {
		t.Errorf("expected ErrUnknownProviderName, got %v", err)
	}
}

func TestParseLMProviderTypeUnknown(t *testing.T) {
	if _, err := provider.ParseLMProviderType("mistral"); !errors.Is(err, provider.ErrUnknownProviderName) {
		t.Errorf("expected ErrUnknownProviderName, got %v", err)
	}
}

func TestNewEmbedderInvalidType(t *testing.T) {
	if _, err := provider.NewEmbedder(provider.EmbedderType(99)); !errors.Is(err, provider.ErrInvalidEmbedderType) {
		t.Errorf("expected ErrInvalidEmbedderType, got %v", err)
	}
}

func TestNewLMProviderInvalidType(t *testing.T) {
	if _, err := provider.NewLMProvider(provider.LMProviderType(99)); !errors.Is(err, provider.ErrInvalidLMProviderType) {
		t.Errorf("expected ErrInvalidLMProviderType, got %v", err)
	}
}

func TestNewWebSearcherInvalidType(t *testing.T) {
	if _, err := provider.NewWebSearcher(provider.WebSearcherType(99)); !errors.Is(err, provider.ErrInvalidWebSearcherType) {
		t.Errorf("expected ErrInvalidWebSearcherType, got %v", err)
	}
}

func TestNewRerankerInvalidType(t *testing.T) {
	if _, err := provider.NewReranker(provider.RerankerType(99)); !errors.Is(err, provider.ErrInvalidRerankerType) {
		t.Errorf("expected ErrInvalidRerankerType, got %v", err)
	}
}
