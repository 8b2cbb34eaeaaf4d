package repository

import (
	"context"
	"sort"
	"sync"
)

// MemoryQuoteRepository keeps quotes in process memory. It backs
// storage.driver=memory and has the same ordering and bounds semantics as Postgres.
type MemoryQuoteRepository struct {
	mu     sync.RWMutex
	nextID int64
	quotes []Quote
}

// NewMemoryQuoteRepository creates an empty in-memory store.
func NewMemoryQuoteRepository() *MemoryQuoteRepository {
	return &MemoryQuoteRepository{}
}

var _ QuoteRepository = (*MemoryQuoteRepository)(nil)

// EnsureSchema is a no-op for the in-memory store.
func (m *MemoryQuoteRepository) EnsureSchema(context.Context) error { return nil }

// Append stores a copy of q with a fresh id.
func (m *MemoryQuoteRepository) Append(ctx context.Context, q Quote) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	q.ID = m.nextID
	q.ObservedAt = q.ObservedAt.UTC()
	m.quotes = append(m.quotes, q)
	return q.ID, nil
}

// History returns the pair's quotes inside tr ordered by observed_at then id.
func (m *MemoryQuoteRepository) History(ctx context.Context, pair string, limit int, tr TimeRange) ([]Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	m.mu.RLock()
	out := make([]Quote, 0)
	for _, q := range m.quotes {
		if q.Pair == pair && tr.Contains(q.ObservedAt) {
			out = append(out, q)
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ObservedAt.Equal(out[j].ObservedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].ObservedAt.Before(out[j].ObservedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DeleteRange removes the pair's quotes inside tr.
func (m *MemoryQuoteRepository) DeleteRange(ctx context.Context, pair string, tr TimeRange) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.quotes[:0]
	var deleted int64
	for _, q := range m.quotes {
		if q.Pair == pair && tr.Contains(q.ObservedAt) {
			deleted++
			continue
		}
		kept = append(kept, q)
	}
	m.quotes = kept
	return deleted, nil
}

// Ping always succeeds.
func (m *MemoryQuoteRepository) Ping(context.Context) error { return nil }
