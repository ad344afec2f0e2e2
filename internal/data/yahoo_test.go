package data

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsu-backtest/internal/model"
)

func TestYahooClientHistory(t *testing.T) {
	day1 := model.Day(2024, time.January, 2)
	day2 := model.Day(2024, time.January, 3)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/ACME", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.NotEmpty(t, r.URL.Query().Get("period1"))

		fmt.Fprintf(w, `{"chart":{"result":[{"timestamp":[%d,%d],"indicators":{"quote":[{"close":[101.5,102.25]}]}}],"error":null}}`,
			day1.Unix(), day2.Unix())
	}))
	defer srv.Close()

	c := NewYahooClient(srv.URL, zerolog.Nop())
	bars, err := c.History("ACME", day1, day2.AddDate(0, 0, 1))
	require.NoError(t, err)

	require.Len(t, bars, 2)
	assert.Equal(t, day1, bars[0].Date)
	assert.Equal(t, 101.5, bars[0].Close)
	assert.Equal(t, 102.25, bars[1].Close)
}

func TestYahooClientErrors(t *testing.T) {
	t.Run("unknown ticker", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		c := NewYahooClient(srv.URL, zerolog.Nop())
		_, err := c.History("NOPE", model.Day(2024, time.January, 1), model.Day(2024, time.February, 1))
		var yErr *YahooError
		require.ErrorAs(t, err, &yErr)
		assert.Equal(t, "UNKNOWN_TICKER", yErr.Code)
	})

	t.Run("empty window", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"chart":{"result":[{"timestamp":[],"indicators":{"quote":[{"close":[]}]}}],"error":null}}`)
		}))
		defer srv.Close()

		c := NewYahooClient(srv.URL, zerolog.Nop())
		_, err := c.History("ACME", model.Day(2024, time.January, 1), model.Day(2024, time.February, 1))
		var dErr *DataUnavailableError
		require.ErrorAs(t, err, &dErr)
		assert.Equal(t, "ACME", dErr.Ticker)
	})

	t.Run("api error payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
		}))
		defer srv.Close()

		c := NewYahooClient(srv.URL, zerolog.Nop())
		_, err := c.History("ACME", model.Day(2024, time.January, 1), model.Day(2024, time.February, 1))
		var yErr *YahooError
		require.ErrorAs(t, err, &yErr)
		assert.Equal(t, "No data found", yErr.Message)
	})

	t.Run("invalid window", func(t *testing.T) {
		c := NewYahooClient("http://localhost:1", zerolog.Nop())
		_, err := c.History("ACME", model.Day(2024, time.February, 1), model.Day(2024, time.January, 1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "start must be before end")
	})
}
