package wordstore

import (
	"context"
	"sync"
)

// MockResolver is a deterministic Resolver for testing. It serves words
// from a fixed table and can be scripted to fail.
type MockResolver struct {
	mu    sync.Mutex
	words map[int]Word

	// FailuresLeft makes the next N Resolve calls return a *LookupError.
	FailuresLeft int

	// Calls records the id sets passed to Resolve.
	Calls [][]int
}

// NewMockResolver creates a MockResolver serving the given words.
func NewMockResolver(words ...Word) *MockResolver {
	m := &MockResolver{words: make(map[int]Word, len(words))}
	for _, w := range words {
		m.words[w.ID] = w
	}
	return m
}

// Resolve returns the subset of requested ids present in the fixed table.
func (m *MockResolver) Resolve(_ context.Context, ids []int) (map[int]Word, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recorded := make([]int, len(ids))
	copy(recorded, ids)
	m.Calls = append(m.Calls, recorded)

	if m.FailuresLeft > 0 {
		m.FailuresLeft--
		return nil, &LookupError{Status: 503}
	}

	result := make(map[int]Word, len(ids))
	for _, id := range ids {
		if w, ok := m.words[id]; ok {
			result[id] = w
		}
	}
	return result, nil
}

// Add inserts or replaces a word in the fixed table.
func (m *MockResolver) Add(w Word) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.words[w.ID] = w
}

// CallCount returns the number of Resolve calls made.
func (m *MockResolver) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
