package data

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"rsu-backtest/internal/model"
)

// YahooClient fetches daily close history from the Yahoo Finance chart API.
type YahooClient struct {
	BaseURL string
	Client  *http.Client
	Log     zerolog.Logger
}

// NewYahooClient creates a chart API client. If baseURL is empty, defaults
// to "https://query1.finance.yahoo.com".
func NewYahooClient(baseURL string, log zerolog.Logger) *YahooClient {
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	return &YahooClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		Log: log,
	}
}

// YahooError represents an error response from the chart API.
type YahooError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *YahooError) Error() string {
	return e.Message
}

// chartResponse mirrors the subset of the chart API payload we consume.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History fetches daily closes for ticker in [start, end). An empty window
// yields a *DataUnavailableError.
func (c *YahooClient) History(ticker string, start, end time.Time) ([]model.PriceBar, error) {
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("start and end are required")
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("start must be before end")
	}

	u, err := url.Parse(c.BaseURL + "/v8/finance/chart/" + url.PathEscape(ticker))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("period1", fmt.Sprintf("%d", start.Unix()))
	q.Set("period2", fmt.Sprintf("%d", end.Unix()))
	q.Set("interval", "1d")
	q.Set("events", "history")
	u.RawQuery = q.Encode()

	c.Log.Debug().
		Str("ticker", ticker).
		Str("start", start.Format("2006-01-02")).
		Str("end", end.Format("2006-01-02")).
		Msg("chart API request")

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// The chart API rejects requests without a browser-like user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; rsu-backtest)")
	req.Header.Set("Accept", "application/json")

	began := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		c.Log.Error().Err(err).Str("ticker", ticker).Msg("chart API request failed")
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	c.Log.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(began)).
		Str("ticker", ticker).
		Msg("chart API response")

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue.
	case http.StatusNotFound:
		return nil, &YahooError{
			StatusCode: resp.StatusCode,
			Code:       "UNKNOWN_TICKER",
			Message:    fmt.Sprintf("no such ticker: %s", ticker),
		}
	case http.StatusTooManyRequests:
		return nil, &YahooError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    "chart API rate limit exceeded",
		}
	default:
		return nil, &YahooError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("chart API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var cr chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if cr.Chart.Error != nil {
		return nil, &YahooError{
			StatusCode: resp.StatusCode,
			Code:       cr.Chart.Error.Code,
			Message:    cr.Chart.Error.Description,
		}
	}
	if len(cr.Chart.Result) == 0 || len(cr.Chart.Result[0].Timestamp) == 0 {
		return nil, &DataUnavailableError{Ticker: ticker, Start: start, End: end}
	}

	res := cr.Chart.Result[0]
	if len(res.Indicators.Quote) == 0 {
		return nil, &DataUnavailableError{Ticker: ticker, Start: start, End: end}
	}
	closes := res.Indicators.Quote[0].Close

	bars := make([]model.PriceBar, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(closes) {
			break
		}
		d := time.Unix(ts, 0).UTC()
		bars = append(bars, model.PriceBar{
			Date:  model.Day(d.Year(), d.Month(), d.Day()),
			Close: closes[i],
		})
	}
	if len(bars) == 0 {
		return nil, &DataUnavailableError{Ticker: ticker, Start: start, End: end}
	}

	c.Log.Debug().Int("bars", len(bars)).Str("ticker", ticker).Msg("chart API success")
	return bars, nil
}
