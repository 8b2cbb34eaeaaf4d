package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"fxdesk/internal/provider"
	"fxdesk/internal/service"
)

const maxBodyBytes = 1 << 16

// RateResponse is a freshly fetched quote.
type RateResponse struct {
	Pair  string  `json:"pair" example:"EUR/USD"`
	Rate  float64 `json:"rate" example:"1.0843"`
	TSUTC string  `json:"ts_utc" example:"2025-12-01T10:15:30.123456Z"`
}

// HistoryItem is one stored quote in a history response.
type HistoryItem struct {
	Rate  float64 `json:"rate" example:"1.0843"`
	TSUTC string  `json:"ts_utc" example:"2025-12-01T10:15:30.123456Z"`
}

// HistoryResponse is the stored quote series of a pair.
type HistoryResponse struct {
	Pair  string        `json:"pair" example:"EUR/USD"`
	Items []HistoryItem `json:"items"`
	Start *string       `json:"start" example:"2025-12-01T00:00:00Z"`
	End   *string       `json:"end" example:"2025-12-02T00:00:00Z"`
}

// DeleteHistoryRequest represents the request body for a history delete.
type DeleteHistoryRequest struct {
	Pair  string `json:"pair" example:"EUR/USD"`
	Start string `json:"start" example:"2025-12-01T00:00:00Z"`
	End   string `json:"end" example:"2025-12-02T00:00:00Z"`
}

// DeleteHistoryResponse reports how many quotes were removed.
type DeleteHistoryResponse struct {
	Pair    string `json:"pair" example:"EUR/USD"`
	Deleted int64  `json:"deleted" example:"42"`
}

// NewsResponse is the passthrough body of the news proxy.
type NewsResponse struct {
	Status   string            `json:"status" example:"ok"`
	Articles []json.RawMessage `json:"articles" swaggertype:"array,object"`
}

// HandleGetRate godoc
// @Summary Fetch the current exchange rate
// @Description Asks the quote provider for the current rate of a pair, records it, and returns it. A failure to record the quote does not fail the request.
// @Tags rates
// @Produce json
// @Param pair query string false "Currency pair BASE/QUOTE" default(EUR/USD)
// @Success 200 {object} RateResponse "Current rate"
// @Failure 400 {object} ErrorResponse "Malformed pair"
// @Failure 429 {object} ErrorResponse "Provider rate limit"
// @Failure 501 {object} ErrorResponse "Provider credential not configured"
// @Failure 502 {object} ErrorResponse "Provider returned a bad response or could not be reached"
// @Router /api/rate [get]
func HandleGetRate(svc service.RateServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.FetchRate(r.Context(), r.URL.Query().Get("pair"))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidPair):
				writeError(w, http.StatusBadRequest, errKeyInvalidPair, err.Error())
			case errors.Is(err, service.ErrUnconfigured):
				writeError(w, http.StatusNotImplemented, errKeyUnconfigured, "Quote provider API key is not configured.")
			case errors.Is(err, provider.ErrRateLimited):
				writeError(w, http.StatusTooManyRequests, errKeyRateLimit,
					provider.Message(err, "Provider rate limit reached, try again in a minute."))
			case errors.Is(err, provider.ErrBadResponse):
				writeError(w, http.StatusBadGateway, errKeyBadResponse,
					provider.Message(err, "Provider returned an unexpected response."))
			case errors.Is(err, provider.ErrTransport):
				writeError(w, http.StatusBadGateway, errKeyTransport,
					provider.Message(err, "Could not reach the quote provider."))
			default:
				writeError(w, http.StatusInternalServerError, errKeyInternal, "Internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, RateResponse{
			Pair:  res.Pair,
			Rate:  res.Rate,
			TSUTC: formatTS(res.ObservedAt),
		})
	}
}

// HandleGetHistory godoc
// @Summary Stored rate history
// @Description Returns stored quotes of a pair in ascending time order. Bounds are inclusive; start and end accept RFC 3339 or zone-less ISO forms read as UTC. A non-integer limit falls back to 1000.
// @Tags rates
// @Produce json
// @Param pair query string false "Currency pair BASE/QUOTE" default(EUR/USD)
// @Param start query string false "Inclusive lower bound"
// @Param end query string false "Inclusive upper bound"
// @Param limit query int false "Maximum number of items" default(1000)
// @Success 200 {object} HistoryResponse "Stored quotes"
// @Failure 400 {object} ErrorResponse "Unparsable start or end"
// @Failure 500 {object} ErrorResponse "Store unavailable"
// @Router /api/history [get]
func HandleGetHistory(svc service.RateServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		res, err := svc.History(r.Context(), service.HistoryQuery{
			Pair:  q.Get("pair"),
			Start: q.Get("start"),
			End:   q.Get("end"),
			Limit: q.Get("limit"),
		})
		if err != nil {
			writeStoreError(w, err)
			return
		}

		items := make([]HistoryItem, 0, len(res.Items))
		for _, it := range res.Items {
			items = append(items, HistoryItem{Rate: it.Rate, TSUTC: formatTS(it.ObservedAt)})
		}
		writeJSON(w, http.StatusOK, HistoryResponse{
			Pair:  res.Pair,
			Items: items,
			Start: res.Start,
			End:   res.End,
		})
	}
}

// HandleDeleteHistory godoc
// @Summary Delete stored history
// @Description Removes stored quotes of a pair inside the optional inclusive window and returns how many were removed. Missing bounds are open.
// @Tags rates
// @Accept json
// @Produce json
// @Param request body DeleteHistoryRequest false "Pair and optional bounds"
// @Success 200 {object} DeleteHistoryResponse "Number of deleted quotes"
// @Failure 400 {object} ErrorResponse "Invalid JSON or unparsable bound"
// @Failure 500 {object} ErrorResponse "Store unavailable"
// @Router /api/delete_history [post]
func HandleDeleteHistory(svc service.RateServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DeleteHistoryRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, errKeyInvalidRequest, "invalid JSON body")
			return
		}

		res, err := svc.DeleteHistory(r.Context(), req.Pair, req.Start, req.End)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, DeleteHistoryResponse{Pair: res.Pair, Deleted: res.Deleted})
	}
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidTime):
		writeError(w, http.StatusBadRequest, errKeyInvalidTime, err.Error())
	case errors.Is(err, service.ErrStoreRead), errors.Is(err, service.ErrStoreWrite):
		writeError(w, http.StatusInternalServerError, errKeyStoreUnavailable, "Quote store is unavailable.")
	default:
		writeError(w, http.StatusInternalServerError, errKeyInternal, "Internal error")
	}
}

// HandleGetNews godoc
// @Summary Latest news headlines
// @Description Server-side passthrough to the news API so the dashboard avoids cross-origin requests. Nothing is stored.
// @Tags news
// @Produce json
// @Success 200 {object} NewsResponse "Upstream articles"
// @Failure 501 {object} NewsErrorResponse "News credential not configured"
// @Failure 502 {object} NewsErrorResponse "News API failed"
// @Router /api/news [get]
func HandleGetNews(svc service.RateServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.LatestNews(r.Context())
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUnconfigured):
				writeJSON(w, http.StatusNotImplemented, NewsErrorResponse{Status: "error", Message: "News API key is not configured."})
			default:
				writeJSON(w, http.StatusBadGateway, NewsErrorResponse{Status: "error", Message: provider.Message(err, "News API request failed.")})
			}
			return
		}
		writeJSON(w, http.StatusOK, NewsResponse{Status: res.Status, Articles: res.Articles})
	}
}
