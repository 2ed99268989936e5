package testutil

import (
	"sync"

	"github.com/foodfireroad/foodfire/internal/core"
)

// MockStore is an in-memory document store that records every save.
type MockStore struct {
	mu sync.Mutex

	LoadFunc  func() core.Document
	CloseFunc func() error

	saves  []core.Document
	closed bool
}

// NewMockStore returns a store whose Load yields doc.
func NewMockStore(doc core.Document) *MockStore {
	return &MockStore{
		LoadFunc: func() core.Document { return doc },
	}
}

// Load implements the store interface.
func (m *MockStore) Load() core.Document {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return core.DefaultDocument()
}

// Save records doc.
func (m *MockStore) Save(doc core.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves = append(m.saves, doc)
}

// Close marks the store closed.
func (m *MockStore) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Saves returns a copy of every saved document, oldest first.
func (m *MockStore) Saves() []core.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.Document(nil), m.saves...)
}

// LastSave returns the most recent saved document and whether there was one.
func (m *MockStore) LastSave() (core.Document, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saves) == 0 {
		return core.Document{}, false
	}
	return m.saves[len(m.saves)-1], true
}

// Closed reports whether Close was called.
func (m *MockStore) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
