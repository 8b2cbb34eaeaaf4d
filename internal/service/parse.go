package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fxdesk/internal/repository"
)

// DefaultPair is used when a request names no pair.
const DefaultPair = "EUR/USD"

// ErrInvalidPair indicates the pair is not of the form BASE/QUOTE.
var ErrInvalidPair = errors.New("invalid currency pair, expected BASE/QUOTE")

// ErrInvalidTime indicates a start/end bound could not be parsed.
var ErrInvalidTime = errors.New("invalid timestamp")

// ErrUnconfigured indicates the upstream credential for a feature is missing.
var ErrUnconfigured = errors.New("unconfigured")

// ErrStoreRead indicates the quote store could not be read.
var ErrStoreRead = errors.New("quote store read failed")

// ErrStoreWrite indicates the quote store rejected a user-requested change.
var ErrStoreWrite = errors.New("quote store write failed")

// ParsePair splits a "BASE/QUOTE" string into upper-cased components.
// Codes are not checked against any currency list.
func ParsePair(pair string) (base, quote string, err error) {
	parts := strings.Split(strings.TrimSpace(pair), "/")
	if len(parts) != 2 {
		return "", "", ErrInvalidPair
	}
	base = strings.ToUpper(strings.TrimSpace(parts[0]))
	quote = strings.ToUpper(strings.TrimSpace(parts[1]))
	if base == "" || quote == "" {
		return "", "", ErrInvalidPair
	}
	return base, quote, nil
}

// CanonicalPair returns the stored form of pair: DefaultPair when blank,
// BASE/QUOTE upper-cased when well formed, otherwise the trimmed input.
func CanonicalPair(pair string) string {
	pair = strings.TrimSpace(pair)
	if pair == "" {
		return DefaultPair
	}
	base, quote, err := ParsePair(pair)
	if err != nil {
		return pair
	}
	return base + "/" + quote
}

// ParseLimit parses a history limit, falling back to the default for
// missing, non-integer or non-positive input.
func ParseLimit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return repository.DefaultHistoryLimit
	}
	return n
}

var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp accepts RFC 3339 and the zone-less ISO forms browsers send
// (datetime-local, plain dates). Zone-less values are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	// An unescaped "+00:00" offset arrives as " 00:00" after query decoding.
	if i := strings.LastIndex(s, " "); i > len("2006-01-02") {
		if t, err := time.Parse(time.RFC3339Nano, s[:i]+"+"+s[i+1:]); err == nil {
			return t.UTC(), nil
		}
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
}

// parseRange turns optional start/end strings into a TimeRange. Blank bounds stay open.
func parseRange(start, end string) (repository.TimeRange, error) {
	var tr repository.TimeRange
	if strings.TrimSpace(start) != "" {
		t, err := ParseTimestamp(start)
		if err != nil {
			return tr, fmt.Errorf("start: %w", err)
		}
		tr.Start = &t
	}
	if strings.TrimSpace(end) != "" {
		t, err := ParseTimestamp(end)
		if err != nil {
			return tr, fmt.Errorf("end: %w", err)
		}
		tr.End = &t
	}
	return tr, nil
}

// optional returns nil for blank strings so JSON renders null.
func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
