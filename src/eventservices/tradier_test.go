package eventservices

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/put-finder/src/eventmodels"
)

const tradierChainResponse = `{
	"options": {
		"option": [
			{"symbol": "SPY240308P00500000", "underlying": "SPY", "root_symbol": "SPY", "bid": 2.1, "ask": 2.2, "strike": 500, "option_type": "put", "expiration_date": "2024-03-08", "greeks": {"delta": -0.25}},
			{"symbol": "SPY240308C00500000", "underlying": "SPY", "root_symbol": "SPY", "bid": 3.1, "ask": 3.2, "strike": 500, "option_type": "call", "expiration_date": "2024-03-08", "greeks": {"delta": 0.75}},
			{"symbol": "SPY240308P00490000", "underlying": "SPY", "root_symbol": "SPY", "bid": 1.1, "ask": 1.2, "strike": 490, "option_type": "put", "expiration_date": "2024-03-08", "greeks": null}
		]
	}
}`

func newTradierServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer the-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		q := r.URL.Query()

		switch r.URL.Path {
		case "/v1/markets/quotes":
			if q.Get("symbols") == "SPY" {
				w.Write([]byte(`{"quotes": {"quote": {"symbol": "SPY", "last": 505.1}}}`))
				return
			}

			w.Write([]byte(`{"quotes": {"unmatched_symbols": {"symbol": "` + q.Get("symbols") + `"}}}`))
		case "/v1/markets/options/expirations":
			w.Write([]byte(`{"expirations": {"date": ["2024-03-08", "2024-03-15"]}}`))
		case "/v1/markets/options/chains":
			assert.Equal(t, "true", q.Get("greeks"))
			assert.Equal(t, "2024-03-08", q.Get("expiration"))
			w.Write([]byte(tradierChainResponse))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestTradierFetcher(t *testing.T) {
	ctx := context.Background()

	server := newTradierServer(t)
	defer server.Close()

	fetcher := NewTradierFetcher(server.URL, "the-token")
	assert.Equal(t, eventmodels.TradierProvider, fetcher.Name())

	t.Run("ticker exists", func(t *testing.T) {
		found, err := fetcher.TickerExists(ctx, "SPY")
		require.NoError(t, err)
		assert.True(t, found)

		found, err = fetcher.TickerExists(ctx, "ZZZZ")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("expirations", func(t *testing.T) {
		expirations, err := fetcher.FetchExpirations(ctx, "SPY")
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-03-08", "2024-03-15"}, []string{
			expirations[0].Format("2006-01-02"),
			expirations[1].Format("2006-01-02"),
		})
	})

	t.Run("puts only, ordered by strike", func(t *testing.T) {
		puts, err := fetcher.FetchPuts(ctx, "SPY", date("2024-03-08"))
		require.NoError(t, err)
		require.Len(t, puts, 2)

		assert.Equal(t, 490.0, puts[0].StrikePrice)
		assert.Nil(t, puts[0].Delta)

		assert.Equal(t, 500.0, puts[1].StrikePrice)
		require.NotNil(t, puts[1].Delta)
		assert.Equal(t, -0.25, *puts[1].Delta)
		assert.Nil(t, puts[1].ChanceOfProfitShort)
	})

	t.Run("unauthorized", func(t *testing.T) {
		_, err := NewTradierFetcher(server.URL, "bad-token").TickerExists(ctx, "SPY")
		assert.ErrorContains(t, err, "401")
	})
}
