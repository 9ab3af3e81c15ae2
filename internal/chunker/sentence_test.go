package chunker_test

import (
	"errors"
	"reflect"
	"testing"

	"askdoc/internal/chunker"
)

func TestSentenceSplit(t *testing.T) {
	s, err := chunker.NewSentence(2, 1)
	if err != nil {
		t.Fatalf("unexpected error creating sentence chunker: %v", err)
	}

	text := "One here. Two here! Three here? Four here."
	got, err := s.Split(text)
	if err != nil {
		t.Fatalf("unexpected error splitting: %v", err)
	}

	want := []string{
		"One here. Two here!",
		"Two here! Three here?",
		"Three here? Four here.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected chunks %q, got %q", want, got)
	}
}

func TestSentenceSplitNoTerminators(t *testing.T) {
	s, err := chunker.NewSentence(3, 0)
	if err != nil {
		t.Fatalf("unexpected error creating sentence chunker: %v", err)
	}

	got, err := s.Split("  just a fragment without punctuation  ")
	if err != nil {
		t.Fatalf("unexpected error splitting: %v", err)
	}

	want := []string{"just a fragment without punctuation"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected chunks %q, got %q", want, got)
	}
}

func TestSentenceSplitEmptyText(t *testing.T) {
	s, err := chunker.NewSentence(3, 1)
	if err != nil {
		t.Fatalf("unexpected error creating sentence chunker: %v", err)
	}

	got, err := s.Split("   ")
	if err != nil {
		t.Fatalf("unexpected error splitting: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no chunks for blank text, got %q", got)
	}
}

func TestSentenceInvalidConfig(t *testing.T) {
	for _, cfg := range []struct{ perChunk, overlap int }{
		{0, 0}, {-1, 0}, {2, 2}, {2, 3}, {2, -1},
	} {
		_, err := chunker.NewSentence(cfg.perChunk, cfg.overlap)
		if !errors.Is(err, chunker.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig for perChunk=%d overlap=%d, got %v", cfg.perChunk, cfg.overlap, err)
		}
	}
}
