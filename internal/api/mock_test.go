package api

import (
	"context"
	"errors"

	"fxdesk/internal/provider"
	"fxdesk/internal/service"
)

// mockRateService implements service.RateServiceInterface for testing.
type mockRateService struct {
	fetchRateFunc     func(ctx context.Context, pair string) (*service.RateResult, error)
	historyFunc       func(ctx context.Context, q service.HistoryQuery) (*service.HistoryResult, error)
	deleteHistoryFunc func(ctx context.Context, pair, start, end string) (*service.DeleteResult, error)
	latestNewsFunc    func(ctx context.Context) (*provider.NewsResult, error)
	stats             service.IngestStats
}

func (m *mockRateService) FetchRate(ctx context.Context, pair string) (*service.RateResult, error) {
	return m.fetchRateFunc(ctx, pair)
}

func (m *mockRateService) History(ctx context.Context, q service.HistoryQuery) (*service.HistoryResult, error) {
	return m.historyFunc(ctx, q)
}

func (m *mockRateService) DeleteHistory(ctx context.Context, pair, start, end string) (*service.DeleteResult, error) {
	return m.deleteHistoryFunc(ctx, pair, start, end)
}

func (m *mockRateService) LatestNews(ctx context.Context) (*provider.NewsResult, error) {
	return m.latestNewsFunc(ctx)
}

func (m *mockRateService) Stats() service.IngestStats {
	return m.stats
}

var errSessionMissing = errors.New("session not found")

// mockSessions implements SessionStore for page handler tests.
type mockSessions struct {
	sessions  map[string]string
	createErr error
}

func newMockSessions() *mockSessions {
	return &mockSessions{sessions: map[string]string{}}
}

func (m *mockSessions) Create(_ context.Context, username string) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	id := "sess-" + username
	m.sessions[id] = username
	return id, nil
}

func (m *mockSessions) Lookup(_ context.Context, id string) (string, error) {
	u, ok := m.sessions[id]
	if !ok {
		return "", errSessionMissing
	}
	return u, nil
}

func (m *mockSessions) Destroy(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}
