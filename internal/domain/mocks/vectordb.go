package mocks

import (
	"context"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
)

// VectorDB is an in-memory mock implementation of ports.VectorDB. Search
// returns memos in insertion order, most recent batch last.
type VectorDB struct {
	Memos  map[string]entities.Memo
	Order  []string
	Resets int
	Err    error
}

// NewVectorDB creates a new mock VectorDB.
func NewVectorDB() *VectorDB {
	return &VectorDB{Memos: make(map[string]entities.Memo)}
}

// EnsureCollection creates the collection if it doesn't exist.
func (m *VectorDB) EnsureCollection(_ context.Context, _ uint64) error { return m.Err }

// ResetCollection drops and recreates the collection.
func (m *VectorDB) ResetCollection(_ context.Context, _ uint64) error {
	if m.Err != nil {
		return m.Err
	}
	m.Memos = make(map[string]entities.Memo)
	m.Order = nil
	m.Resets++
	return nil
}

// SaveBatch upserts memos with their embeddings.
func (m *VectorDB) SaveBatch(_ context.Context, memos []entities.Memo) error {
	if m.Err != nil {
		return m.Err
	}
	for _, memo := range memos {
		if _, ok := m.Memos[memo.InteractionID]; !ok {
			m.Order = append(m.Order, memo.InteractionID)
		}
		m.Memos[memo.InteractionID] = memo
	}
	return nil
}

// Search returns up to limit memos, optionally filtered by person.
func (m *VectorDB) Search(_ context.Context, _ []float32, personID string, limit int) ([]entities.Memo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Memo, 0, limit)
	for _, id := range m.Order {
		memo := m.Memos[id]
		if personID != "" && memo.PersonID != personID {
			continue
		}
		result = append(result, memo)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

// Count returns the number of indexed memos.
func (m *VectorDB) Count(_ context.Context) (uint64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return uint64(len(m.Memos)), nil
}

// Close closes the connection.
func (m *VectorDB) Close() error { return nil }
