package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fxdesk/internal/httpx"
)

var _ NewsSource = (*NewsAPIClient)(nil)

// NewsAPIClient proxies the newsapi.org "everything" endpoint so browsers
// never talk to the news provider directly.
type NewsAPIClient struct {
	baseURL  string
	query    string
	language string
	pageSize int
	client   *httpx.Client
}

// NewNewsAPIClient creates a NewsAPIClient.
func NewNewsAPIClient(baseURL, apiKey, query, language string, pageSize, timeoutSec int) *NewsAPIClient {
	if baseURL == "" {
		baseURL = "https://newsapi.org"
	}
	c := httpx.New(time.Duration(timeoutSec) * time.Second)
	c.Headers = map[string]string{"X-Api-Key": apiKey}
	return &NewsAPIClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		query:    query,
		language: language,
		pageSize: pageSize,
		client:   c,
	}
}

type newsAPIResponse struct {
	Status   string            `json:"status"`
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Articles []json.RawMessage `json:"articles"`
}

func (c *NewsAPIClient) everythingURL() string {
	q := url.Values{}
	q.Set("q", c.query)
	if c.language != "" {
		q.Set("language", c.language)
	}
	if c.pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(c.pageSize))
	}
	return c.baseURL + "/v2/everything?" + q.Encode()
}

// Latest returns the provider's article list unchanged.
func (c *NewsAPIClient) Latest(ctx context.Context) (*NewsResult, error) {
	resp, err := c.client.Get(ctx, c.everythingURL())
	if err != nil {
		return nil, transportFailure("News provider request failed.", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, transportFailure("News provider request failed.", err)
	}

	var result newsAPIResponse
	decodeErr := json.Unmarshal(body, &result)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := fmt.Sprintf("News provider returned status %d.", resp.StatusCode)
		if decodeErr == nil && result.Message != "" {
			msg = result.Message
		}
		return nil, transportFailure(msg, fmt.Errorf("status %d code %q", resp.StatusCode, result.Code))
	}
	if decodeErr != nil {
		return nil, badResponse("News provider returned an unreadable body.", decodeErr)
	}
	if result.Status != "ok" {
		msg := result.Message
		if msg == "" {
			msg = "News provider did not return articles."
		}
		return nil, badResponse(msg, nil)
	}
	if result.Articles == nil {
		result.Articles = []json.RawMessage{}
	}
	return &NewsResult{Status: result.Status, Articles: result.Articles}, nil
}
