package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultHistoryLimit caps history reads when the caller gives no usable limit.
const DefaultHistoryLimit = 1000

// Quote is one observed exchange rate.
type Quote struct {
	ID         int64
	Pair       string
	Rate       float64
	ObservedAt time.Time
}

// TimeRange is an inclusive observed_at window. Nil bounds are open.
type TimeRange struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether t falls inside the range.
func (r TimeRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// QuoteRepository defines the operations on the append-only quote table.
type QuoteRepository interface {
	EnsureSchema(ctx context.Context) error
	Append(ctx context.Context, q Quote) (int64, error)
	History(ctx context.Context, pair string, limit int, r TimeRange) ([]Quote, error)
	DeleteRange(ctx context.Context, pair string, r TimeRange) (int64, error)
	Ping(ctx context.Context) error
}

// PostgresQuoteRepository is an implementation of QuoteRepository using PostgreSQL.
type PostgresQuoteRepository struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// NewPostgresQuoteRepository creates a new PostgresQuoteRepository.
func NewPostgresQuoteRepository(db *sql.DB, logger *zap.SugaredLogger) *PostgresQuoteRepository {
	return &PostgresQuoteRepository{db: db, log: logger}
}

var _ QuoteRepository = (*PostgresQuoteRepository)(nil)

// EnsureSchema creates the quotes table and its (pair, observed_at) index if absent.
func (r *PostgresQuoteRepository) EnsureSchema(ctx context.Context) error {
	return RunMigrations(ctx, r.db, r.log)
}

// Append inserts one immutable quote and returns its surrogate id.
func (r *PostgresQuoteRepository) Append(ctx context.Context, q Quote) (int64, error) {
	const query = `INSERT INTO exchange_rates (pair, rate, observed_at)
              VALUES ($1, $2, $3)
              RETURNING id`

	var id int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, query, q.Pair, q.Rate, q.ObservedAt.UTC()).Scan(&id)
	})
	if err != nil {
		r.log.Errorw("sql.exec_failed", "op", "append", "pair", q.Pair, "error", err)
		return 0, fmt.Errorf("append quote: %w", err)
	}
	r.log.Debugw("sql.exec_success", "op", "append", "pair", q.Pair, "id", id)
	return id, nil
}

// History returns the pair's quotes inside r, oldest first, at most limit rows.
func (r *PostgresQuoteRepository) History(ctx context.Context, pair string, limit int, tr TimeRange) ([]Quote, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var sb strings.Builder
	sb.WriteString(`SELECT id, pair, rate, observed_at FROM exchange_rates WHERE pair = $1`)
	args := []any{pair}
	args = appendRangeFilter(&sb, args, tr)
	args = append(args, limit)
	sb.WriteString(` ORDER BY observed_at ASC, id ASC LIMIT $` + strconv.Itoa(len(args)))

	out := make([]Quote, 0)
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, sb.String(), args...)
		if err != nil {
			return err
		}
		defer rows.Close() //nolint:errcheck // rows.Err is checked below

		for rows.Next() {
			var q Quote
			if err := rows.Scan(&q.ID, &q.Pair, &q.Rate, &q.ObservedAt); err != nil {
				return err
			}
			q.ObservedAt = q.ObservedAt.UTC()
			out = append(out, q)
		}
		return rows.Err()
	})
	if err != nil {
		r.log.Errorw("sql.query_failed", "op", "history", "pair", pair, "error", err)
		return nil, fmt.Errorf("load history: %w", err)
	}
	r.log.Debugw("sql.query_success", "op", "history", "pair", pair, "rows", len(out))
	return out, nil
}

// DeleteRange removes the pair's quotes inside r and returns how many were removed.
func (r *PostgresQuoteRepository) DeleteRange(ctx context.Context, pair string, tr TimeRange) (int64, error) {
	var sb strings.Builder
	sb.WriteString(`DELETE FROM exchange_rates WHERE pair = $1`)
	args := appendRangeFilter(&sb, []any{pair}, tr)

	var deleted int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, sb.String(), args...)
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		r.log.Errorw("sql.exec_failed", "op", "delete_range", "pair", pair, "error", err)
		return 0, fmt.Errorf("delete history: %w", err)
	}
	r.log.Debugw("sql.exec_success", "op", "delete_range", "pair", pair, "rows_affected", deleted)
	return deleted, nil
}

// Ping checks database connectivity.
func (r *PostgresQuoteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func appendRangeFilter(sb *strings.Builder, args []any, tr TimeRange) []any {
	if tr.Start != nil {
		args = append(args, tr.Start.UTC())
		sb.WriteString(` AND observed_at >= $` + strconv.Itoa(len(args)))
	}
	if tr.End != nil {
		args = append(args, tr.End.UTC())
		sb.WriteString(` AND observed_at <= $` + strconv.Itoa(len(args)))
	}
	return args
}
