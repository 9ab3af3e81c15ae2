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

package index

import "sync"

// Store maps a user identity to its published Index. Because indexes are
// immutable, the lock only guards the map itself: a reader always observes
// either the previous index or the new one, never a half-replaced state.
// Operations on distinct users are independent.
type Store struct {
	mu      sync.RWMutex
	indexes map[string]*Index
}

func NewStore() *Store {
	return &Store{
		indexes: make(map[string]*Index),
	}
}

// Put publishes idx as the user's retrieval index, fully replacing any
// previous one.
func (s *Store) Put(userID string, idx *Index) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexes[userID] = idx
}

// Get returns the user's current index snapshot. The caller may rank
// against it without further locking.
func (s *Store) Get(userID string) (*Index, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.indexes[userID]
	return idx, ok
}

// Drop irrecoverably discards the user's retrieval index, as on logout.
func (s *Store) Drop(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.indexes, userID)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.indexes)
}
