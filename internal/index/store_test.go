package index_test

import (
	"fmt"
	"sync"
	"testing"

	"askdoc/internal/api"
	"askdoc/internal/index"
)

func buildIndex(t *testing.T, texts []string, vectors [][]float32) *index.Index {
	t.Helper()

	chunks := make([]api.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = api.Chunk{ID: fmt.Sprintf("c-%d", i), Text: text, Index: i}
	}

	idx, err := index.New(chunks, vectors)
	if err != nil {
		t.Fatalf("unexpected error building index: %v", err)
	}
	return idx
}

func TestNewLengthMismatch(t *testing.T) {
	chunks := []api.Chunk{{Text: "a"}, {Text: "b"}}
	vectors := [][]float32{{1, 0}}

	if _, err := index.New(chunks, vectors); err != index.ErrLengthMismatch {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestIndexTopK(t *testing.T) {
	idx := buildIndex(t,
		[]string{"first", "second", "third"},
		[][]float32{{1, 0}, {0, 1}, {0.9, 0.1}},
	)

	results := idx.TopK([]float32{1, 0}, 2)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.Text != "first" || results[1].Chunk.Text != "third" {
		t.Errorf("unexpected ranking: %q, %q", results[0].Chunk.Text, results[1].Chunk.Text)
	}
	if results[0].Score < results[1].Score {
		t.Errorf("expected descending scores, got %v then %v", results[0].Score, results[1].Score)
	}
}

func TestStorePutReplaces(t *testing.T) {
	store := index.NewStore()

	first := buildIndex(t, []string{"old"}, [][]float32{{1, 0}})
	second := buildIndex(t, []string{"new", "newer"}, [][]float32{{1, 0}, {0, 1}})

	store.Put("alice", first)
	store.Put("alice", second)

	got, ok := store.Get("alice")
	if !ok {
		t.Fatal("expected index for user")
	}
	if got.Len() != 2 {
		t.Errorf("expected replacement index with 2 chunks, got %d", got.Len())
	}
}

func TestStoreUsersAreIndependent(t *testing.T) {
	store := index.NewStore()

	store.Put("alice", buildIndex(t, []string{"a"}, [][]float32{{1}}))
	store.Put("bob", buildIndex(t, []string{"b"}, [][]float32{{1}}))

	store.Drop("alice")

	if _, ok := store.Get("alice"); ok {
		t.Error("expected alice's index to be dropped")
	}
	if _, ok := store.Get("bob"); !ok {
		t.Error("expected bob's index to survive")
	}
	if store.Len() != 1 {
		t.Errorf("expected a single remaining index, got %d", store.Len())
	}
}

func TestStoreDropMissingUser(t *testing.T) {
	store := index.NewStore()
	// must not panic
	store.Drop("nobody")
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := index.NewStore()
	idx := buildIndex(t, []string{"only"}, [][]float32{{1, 0}})

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			user := fmt.Sprintf("user-%d", n%2)
			for range 100 {
				store.Put(user, idx)
				if got, ok := store.Get(user); ok {
					got.TopK([]float32{1, 0}, 1)
				}
				store.Drop(user)
			}
		}(i)
	}
	wg.Wait()
}
