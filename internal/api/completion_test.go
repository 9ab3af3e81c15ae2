package api_test

import (
	"context"
	"errors"
	"io"
	"runtime"
	"testing"
	"time"

	"askdoc/internal/api"
)

type fakeStream struct {
	parts  []string
	err    error
	pos    int
	closed bool
}

func (s *fakeStream) Recv() (string, error) {
	if s.pos >= len(s.parts) {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	p := s.parts[s.pos]
	s.pos++
	return p, nil
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

// endlessStream never reaches EOF.
type endlessStream struct{}

func (s *endlessStream) Recv() (string, error) { return "chunk", nil }
func (s *endlessStream) Close() error          { return nil }

func TestStreamForEach(t *testing.T) {
	stream := &fakeStream{parts: []string{"a", "b", "c"}}

	var chunks []string
	got, err := api.StreamForEach(context.Background(), stream, func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "abc" {
		t.Errorf("expected 'abc', got %q", got)
	}
	if len(chunks) != 3 || chunks[0] != "a" || chunks[2] != "c" {
		t.Errorf("expected chunks in stream order, got %v", chunks)
	}
	if !stream.closed {
		t.Error("expected the stream to be closed")
	}
}

func TestStreamForEachNilFn(t *testing.T) {
	stream := &fakeStream{parts: []string{"hello", " ", "world"}}

	got, err := api.StreamForEach(context.Background(), stream, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello world" {
		t.Errorf("expected 'hello world', got %q", got)
	}
}

func TestStreamForEachPropagatesError(t *testing.T) {
	wantErr := errors.New("connection reset")
	stream := &fakeStream{parts: []string{"partial"}, err: wantErr}

	got, err := api.StreamForEach(context.Background(), stream, nil)
	if !errors.Is(err, wantErr) {
		t.Errorf("expected stream error to surface, got %v", err)
	}
	if got != "partial" {
		t.Errorf("expected accumulated content before the error, got %q", got)
	}
}

func TestStreamForEachFnError(t *testing.T) {
	stream := &fakeStream{parts: []string{"a", "b"}}
	wantErr := errors.New("sink full")

	got, err := api.StreamForEach(context.Background(), stream, func(string) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected fn error to surface, got %v", err)
	}
	if got != "a" {
		t.Errorf("expected content up to the failing chunk, got %q", got)
	}
}

func TestStreamForEachCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := api.StreamForEach(ctx, &endlessStream{}, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestStreamForEachCancelledReleasesGoroutines(t *testing.T) {
	before := runtime.NumGoroutine()

	for range 20 {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		api.StreamForEach(ctx, &endlessStream{}, nil)
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= before+2 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("goroutines leaked: before=%d after=%d", before, runtime.NumGoroutine())
}
