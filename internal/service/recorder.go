package service

import (
	"context"
	"time"

	"fxdesk/internal/repository"
)

// IngestStatus reports what happened to a fetched quote after it was served.
type IngestStatus string

const (
	IngestRecorded IngestStatus = "recorded"
	IngestQueued   IngestStatus = "queued"
	IngestFailed   IngestStatus = "failed"
)

// TaskTypeAppendQuote is the Asynq task type for queued quote writes.
const TaskTypeAppendQuote = "quote:append"

// AppendQuotePayload is the payload of a quote:append task.
type AppendQuotePayload struct {
	Pair       string    `json:"pair"`
	Rate       float64   `json:"rate"`
	ObservedAt time.Time `json:"observed_at"`
}

//go:generate mockgen -source=recorder.go -destination=mock_recorder_test.go -package=service

// Recorder persists a fetched quote. Implementations either write it right
// away or hand it to a queue.
type Recorder interface {
	Record(ctx context.Context, q repository.Quote) (IngestStatus, error)
}

// InlineRecorder appends quotes to the store during the request.
type InlineRecorder struct {
	repo    repository.QuoteRepository
	timeout time.Duration
}

// NewInlineRecorder creates an InlineRecorder. A zero timeout means no extra deadline.
func NewInlineRecorder(repo repository.QuoteRepository, timeout time.Duration) *InlineRecorder {
	return &InlineRecorder{repo: repo, timeout: timeout}
}

var _ Recorder = (*InlineRecorder)(nil)

// Record writes q. The write is detached from the caller's cancellation so a
// client disconnect after the rate was computed does not lose the quote.
func (r *InlineRecorder) Record(ctx context.Context, q repository.Quote) (IngestStatus, error) {
	ctx = context.WithoutCancel(ctx)
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	if _, err := r.repo.Append(ctx, q); err != nil {
		return IngestFailed, err
	}
	return IngestRecorded, nil
}
