package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAlphaVantageServer(t *testing.T, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()
	var captured http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = *r
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestAlphaVantageProvider_GetRate(t *testing.T) {
	t.Run("well-formed quote", func(t *testing.T) {
		srv, req := newAlphaVantageServer(t, http.StatusOK, `{
			"Realtime Currency Exchange Rate": {
				"1. From_Currency Code": "EUR",
				"3. To_Currency Code": "USD",
				"5. Exchange Rate": "1.08340000"
			}
		}`)
		p := NewAlphaVantageProvider(srv.URL, "secret", 5)

		rate, err := p.GetRate(context.Background(), "EUR", "USD")
		require.NoError(t, err)
		assert.InDelta(t, 1.0834, rate, 1e-12)

		assert.Equal(t, "/query", req.URL.Path)
		q := req.URL.Query()
		assert.Equal(t, "CURRENCY_EXCHANGE_RATE", q.Get("function"))
		assert.Equal(t, "EUR", q.Get("from_currency"))
		assert.Equal(t, "USD", q.Get("to_currency"))
		assert.Equal(t, "secret", q.Get("apikey"))
	})

	t.Run("note means rate limited", func(t *testing.T) {
		srv, _ := newAlphaVantageServer(t, http.StatusOK, `{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute."}`)
		p := NewAlphaVantageProvider(srv.URL, "secret", 5)

		_, err := p.GetRate(context.Background(), "EUR", "USD")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrRateLimited))
		assert.Contains(t, Message(err, ""), "5 calls per minute")
	})

	t.Run("information means rate limited", func(t *testing.T) {
		srv, _ := newAlphaVantageServer(t, http.StatusOK, `{"Information": "standard API rate limit is 25 requests per day"}`)
		p := NewAlphaVantageProvider(srv.URL, "secret", 5)

		_, err := p.GetRate(context.Background(), "EUR", "USD")
		assert.True(t, errors.Is(err, ErrRateLimited))
	})

	t.Run("missing quote object", func(t *testing.T) {
		srv, _ := newAlphaVantageServer(t, http.StatusOK, `{}`)
		p := NewAlphaVantageProvider(srv.URL, "secret", 5)

		_, err := p.GetRate(context.Background(), "EUR", "USD")
		assert.True(t, errors.Is(err, ErrBadResponse))
		assert.Equal(t, "Provider did not return a quote.", Message(err, ""))
	})

	t.Run("error message from provider", func(t *testing.T) {
		srv, _ := newAlphaVantageServer(t, http.StatusOK, `{"Error Message": "Invalid API call."}`)
		p := NewAlphaVantageProvider(srv.URL, "secret", 5)

		_, err := p.GetRate(context.Background(), "XXX", "USD")
		assert.True(t, errors.Is(err, ErrBadResponse))
		assert.Equal(t, "Invalid API call.", Message(err, ""))
	})

	t.Run("unparsable rate", func(t *testing.T) {
		srv, _ := newAlphaVantageServer(t, http.StatusOK, `{"Realtime Currency Exchange Rate": {"5. Exchange Rate": "n/a"}}`)
		p := NewAlphaVantageProvider(srv.URL, "secret", 5)

		_, err := p.GetRate(context.Background(), "EUR", "USD")
		assert.True(t, errors.Is(err, ErrBadResponse))
		assert.Equal(t, "Malformed quote from provider.", Message(err, ""))
	})

	t.Run("missing rate field", func(t *testing.T) {
		srv, _ := newAlphaVantageServer(t, http.StatusOK, `{"Realtime Currency Exchange Rate": {"1. From_Currency Code": "EUR"}}`)
		p := NewAlphaVantageProvider(srv.URL, "secret", 5)

		_, err := p.GetRate(context.Background(), "EUR", "USD")
		assert.True(t, errors.Is(err, ErrBadResponse))
	})

	t.Run("rate outside float64 range is rejected", func(t *testing.T) {
		for _, raw := range []string{"1e400", "1e-400"} {
			srv, _ := newAlphaVantageServer(t, http.StatusOK, `{"Realtime Currency Exchange Rate": {"5. Exchange Rate": "`+raw+`"}}`)
			p := NewAlphaVantageProvider(srv.URL, "secret", 5)

			rate, err := p.GetRate(context.Background(), "EUR", "USD")
			assert.True(t, errors.Is(err, ErrBadResponse), raw)
			assert.Equal(t, "Malformed quote from provider.", Message(err, ""), raw)
			assert.Zero(t, rate, raw)
		}
	})

	t.Run("zero rate is rejected", func(t *testing.T) {
		srv, _ := newAlphaVantageServer(t, http.StatusOK, `{"Realtime Currency Exchange Rate": {"5. Exchange Rate": "0.0000"}}`)
		p := NewAlphaVantageProvider(srv.URL, "secret", 5)

		_, err := p.GetRate(context.Background(), "EUR", "USD")
		assert.True(t, errors.Is(err, ErrBadResponse))
	})

	t.Run("non-json body", func(t *testing.T) {
		srv, _ := newAlphaVantageServer(t, http.StatusOK, `<html>oops</html>`)
		p := NewAlphaVantageProvider(srv.URL, "secret", 5)

		_, err := p.GetRate(context.Background(), "EUR", "USD")
		assert.True(t, errors.Is(err, ErrBadResponse))
	})

	t.Run("non-2xx status is a transport error", func(t *testing.T) {
		srv, _ := newAlphaVantageServer(t, http.StatusServiceUnavailable, `upstream down`)
		p := NewAlphaVantageProvider(srv.URL, "secret", 5)

		_, err := p.GetRate(context.Background(), "EUR", "USD")
		assert.True(t, errors.Is(err, ErrTransport))
		assert.Contains(t, err.Error(), "upstream down")
	})

	t.Run("unreachable host is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()
		p := NewAlphaVantageProvider(url, "secret", 1)

		_, err := p.GetRate(context.Background(), "EUR", "USD")
		assert.True(t, errors.Is(err, ErrTransport))
	})
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := transportFailure("Quote provider request failed.", cause)

	assert.True(t, errors.Is(err, ErrTransport))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrRateLimited))
	assert.Equal(t, "fallback", Message(errors.New("plain"), "fallback"))
}
