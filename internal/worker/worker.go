// Package worker implements queued quote ingestion on top of Asynq.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"fxdesk/internal/repository"
	"fxdesk/internal/service"
)

// NewAppendQuoteHandler returns a function to handle quote:append tasks.
// Undecodable payloads are dropped without retry; store errors are retried by Asynq.
func NewAppendQuoteHandler(repo repository.QuoteRepository, logger *zap.SugaredLogger) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload service.AppendQuotePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			logger.Errorw("Invalid task payload", "type", t.Type(), "error", err)
			return fmt.Errorf("decode payload: %w", asynq.SkipRetry)
		}
		if payload.Pair == "" || payload.ObservedAt.IsZero() {
			logger.Errorw("Incomplete task payload", "type", t.Type(), "pair", payload.Pair)
			return fmt.Errorf("incomplete payload: %w", asynq.SkipRetry)
		}

		id, err := repo.Append(ctx, repository.Quote{
			Pair:       payload.Pair,
			Rate:       payload.Rate,
			ObservedAt: payload.ObservedAt,
		})
		if err != nil {
			logger.Errorw("Task processing failed", "pair", payload.Pair, "error", err)
			return err
		}

		logger.Infow("Quote recorded", "id", id, "pair", payload.Pair)
		return nil
	}
}

// AsynqEnqueuer records quotes by enqueuing quote:append tasks with a retry
// limit and per-task timeout.
type AsynqEnqueuer struct {
	client   *asynq.Client
	maxRetry int
	timeout  time.Duration
}

// NewAsynqEnqueuer creates a new AsynqEnqueuer with the given client, retry limit, and task timeout duration.
func NewAsynqEnqueuer(client *asynq.Client, maxRetry int, timeout time.Duration) *AsynqEnqueuer {
	return &AsynqEnqueuer{
		client:   client,
		maxRetry: maxRetry,
		timeout:  timeout,
	}
}

var _ service.Recorder = (*AsynqEnqueuer)(nil)

// Record enqueues q for the worker. The quote is considered queued once Redis accepted the task.
func (e *AsynqEnqueuer) Record(ctx context.Context, q repository.Quote) (service.IngestStatus, error) {
	task, err := NewAppendQuoteTask(q, e.maxRetry, e.timeout)
	if err != nil {
		return service.IngestFailed, err
	}

	if _, err := e.client.EnqueueContext(context.WithoutCancel(ctx), task); err != nil {
		return service.IngestFailed, fmt.Errorf("enqueue %s: %w", service.TaskTypeAppendQuote, err)
	}
	return service.IngestQueued, nil
}

// NewAppendQuoteTask builds the Asynq task for q.
func NewAppendQuoteTask(q repository.Quote, maxRetry int, timeout time.Duration) (*asynq.Task, error) {
	data, err := json.Marshal(service.AppendQuotePayload{
		Pair:       q.Pair,
		Rate:       q.Rate,
		ObservedAt: q.ObservedAt.UTC(),
	})
	if err != nil {
		return nil, err
	}

	opts := []asynq.Option{asynq.MaxRetry(maxRetry)}
	if timeout > 0 {
		opts = append(opts, asynq.Timeout(timeout))
	}
	return asynq.NewTask(service.TaskTypeAppendQuote, data, opts...), nil
}
