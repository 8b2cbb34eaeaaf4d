// Package service implements the exchange-rate use cases: fetch and record,
// history, delete and the news proxy.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"fxdesk/internal/provider"
	"fxdesk/internal/repository"
)

//go:generate mockgen -destination=mock_repository_test.go -package=service fxdesk/internal/repository QuoteRepository
//go:generate mockgen -destination=mock_provider_test.go -package=service fxdesk/internal/provider RatesProvider,NewsSource

// RateServiceInterface defines the operations behind the JSON API.
type RateServiceInterface interface {
	FetchRate(ctx context.Context, pair string) (*RateResult, error)
	History(ctx context.Context, q HistoryQuery) (*HistoryResult, error)
	DeleteHistory(ctx context.Context, pair, start, end string) (*DeleteResult, error)
	LatestNews(ctx context.Context) (*provider.NewsResult, error)
	Stats() IngestStats
}

// RateResult is a freshly fetched quote and the outcome of recording it.
type RateResult struct {
	Pair       string
	Rate       float64
	ObservedAt time.Time
	Ingestion  Ingestion
}

// Ingestion is the internal record of what happened to the quote after the fetch.
type Ingestion struct {
	Status IngestStatus
	Err    error
}

// HistoryQuery holds the raw history request parameters.
type HistoryQuery struct {
	Pair  string
	Start string
	End   string
	Limit string
}

// HistoryResult is a slice of stored quotes together with the echoed filters.
type HistoryResult struct {
	Pair  string
	Items []repository.Quote
	Start *string
	End   *string
}

// DeleteResult reports how many quotes a delete removed.
type DeleteResult struct {
	Pair    string
	Deleted int64
}

// IngestStats are process-lifetime counters of ingestion outcomes.
type IngestStats struct {
	Recorded int64 `json:"recorded"`
	Queued   int64 `json:"queued"`
	Failed   int64 `json:"failed"`
}

// RateService wires the rate provider, news source and quote store together.
// A nil provider or news source means the feature is unconfigured.
type RateService struct {
	repo     repository.QuoteRepository
	provider provider.RatesProvider
	news     provider.NewsSource
	recorder Recorder
	log      *zap.SugaredLogger
	now      func() time.Time

	recorded atomic.Int64
	queued   atomic.Int64
	failed   atomic.Int64
}

// NewRateService creates a new RateService.
func NewRateService(repo repository.QuoteRepository, prov provider.RatesProvider, news provider.NewsSource, recorder Recorder, logger *zap.SugaredLogger) *RateService {
	return &RateService{
		repo:     repo,
		provider: prov,
		news:     news,
		recorder: recorder,
		log:      logger,
		now:      time.Now,
	}
}

var _ RateServiceInterface = (*RateService)(nil)

// FetchRate asks the provider for the current rate of pair and records it.
// A recording failure is logged and counted but does not fail the call.
func (s *RateService) FetchRate(ctx context.Context, pair string) (*RateResult, error) {
	if strings.TrimSpace(pair) == "" {
		pair = DefaultPair
	}
	base, quote, err := ParsePair(pair)
	if err != nil {
		return nil, err
	}
	if s.provider == nil {
		return nil, ErrUnconfigured
	}

	rate, err := s.provider.GetRate(ctx, base, quote)
	if err != nil {
		s.log.Warnw("Provider error", "base", base, "quote", quote, "error", err)
		return nil, err
	}

	res := &RateResult{
		Pair:       base + "/" + quote,
		Rate:       rate,
		ObservedAt: s.now().UTC().Truncate(time.Microsecond),
	}
	res.Ingestion = s.record(ctx, repository.Quote{Pair: res.Pair, Rate: res.Rate, ObservedAt: res.ObservedAt})
	return res, nil
}

func (s *RateService) record(ctx context.Context, q repository.Quote) Ingestion {
	status, err := s.recorder.Record(ctx, q)
	if err != nil {
		s.failed.Add(1)
		s.log.Errorw("Failed to record quote", "pair", q.Pair, "error", err)
		return Ingestion{Status: IngestFailed, Err: err}
	}
	switch status {
	case IngestQueued:
		s.queued.Add(1)
	default:
		s.recorded.Add(1)
	}
	return Ingestion{Status: status}
}

// History returns stored quotes for the requested pair and window.
func (s *RateService) History(ctx context.Context, q HistoryQuery) (*HistoryResult, error) {
	pair := CanonicalPair(q.Pair)
	tr, err := parseRange(q.Start, q.End)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.History(ctx, pair, ParseLimit(q.Limit), tr)
	if err != nil {
		s.log.Errorw("DB error loading history", "pair", pair, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}

	return &HistoryResult{
		Pair:  pair,
		Items: items,
		Start: optional(q.Start),
		End:   optional(q.End),
	}, nil
}

// DeleteHistory removes stored quotes for pair inside the optional window.
func (s *RateService) DeleteHistory(ctx context.Context, pair, start, end string) (*DeleteResult, error) {
	pair = CanonicalPair(pair)
	tr, err := parseRange(start, end)
	if err != nil {
		return nil, err
	}

	deleted, err := s.repo.DeleteRange(ctx, pair, tr)
	if err != nil {
		s.log.Errorw("DB error deleting history", "pair", pair, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	s.log.Infow("History deleted", "pair", pair, "deleted", deleted)
	return &DeleteResult{Pair: pair, Deleted: deleted}, nil
}

// LatestNews proxies the configured news source.
func (s *RateService) LatestNews(ctx context.Context) (*provider.NewsResult, error) {
	if s.news == nil {
		return nil, ErrUnconfigured
	}
	res, err := s.news.Latest(ctx)
	if err != nil {
		s.log.Warnw("News source error", "error", err)
		return nil, err
	}
	return res, nil
}

// Stats returns a snapshot of the ingestion counters.
func (s *RateService) Stats() IngestStats {
	return IngestStats{
		Recorded: s.recorded.Load(),
		Queued:   s.queued.Load(),
		Failed:   s.failed.Load(),
	}
}
