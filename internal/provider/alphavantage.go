package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fxdesk/internal/httpx"
)

var _ RatesProvider = (*AlphaVantageProvider)(nil)

const (
	alphaVantageQuoteKey = "Realtime Currency Exchange Rate"
	alphaVantageRateKey  = "5. Exchange Rate"
)

// AlphaVantageProvider fetches real-time rates from the Alpha Vantage
// CURRENCY_EXCHANGE_RATE endpoint.
type AlphaVantageProvider struct {
	baseURL string
	apiKey  string
	client  *httpx.Client
}

// NewAlphaVantageProvider creates a new AlphaVantageProvider with the given configuration.
func NewAlphaVantageProvider(baseURL, apiKey string, timeoutSec int) *AlphaVantageProvider {
	if baseURL == "" {
		baseURL = "https://www.alphavantage.co"
	}
	return &AlphaVantageProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  httpx.New(time.Duration(timeoutSec) * time.Second),
	}
}

func (p *AlphaVantageProvider) quoteURL(base, quote string) string {
	q := url.Values{}
	q.Set("function", "CURRENCY_EXCHANGE_RATE")
	q.Set("from_currency", base)
	q.Set("to_currency", quote)
	q.Set("apikey", p.apiKey)
	return p.baseURL + "/query?" + q.Encode()
}

// GetRate fetches the exchange rate for the given base/quote currency pair.
func (p *AlphaVantageProvider) GetRate(ctx context.Context, base, quote string) (float64, error) {
	resp, err := p.client.Get(ctx, p.quoteURL(base, quote))
	if err != nil {
		return 0, transportFailure("Quote provider request failed.", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, transportFailure(
			fmt.Sprintf("Quote provider returned status %d.", resp.StatusCode),
			fmt.Errorf("body: %s", strings.TrimSpace(string(body))),
		)
	}

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, badResponse("Provider returned an unreadable body.", err)
	}

	// Throttling is reported in-band with a 200 status.
	for _, key := range []string{"Note", "Information"} {
		if msg, ok := stringField(payload, key); ok && msg != "" {
			return 0, rateLimited(msg)
		}
	}
	if msg, ok := stringField(payload, "Error Message"); ok && msg != "" {
		return 0, badResponse(msg, nil)
	}

	raw, ok := payload[alphaVantageQuoteKey]
	if !ok {
		return 0, badResponse("Provider did not return a quote.", nil)
	}
	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return 0, badResponse("Malformed quote from provider.", err)
	}
	return parseRate(fields[alphaVantageRateKey])
}

func parseRate(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, badResponse("Malformed quote from provider.", err)
	}
	if !d.IsPositive() {
		return 0, badResponse("Malformed quote from provider.", fmt.Errorf("non-positive rate %s", d))
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || f <= 0 {
		return 0, badResponse("Malformed quote from provider.", fmt.Errorf("rate %s out of float64 range", d))
	}
	return f, nil
}

func stringField(payload map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := payload[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return string(raw), true
	}
	return s, true
}
