package eventservices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/jiaming2012/put-finder/src/eventmodels"
	"github.com/jiaming2012/put-finder/src/utils"
)

const TradierBaseURL = "https://api.tradier.com"

// TradierFetcher reads option chains from the Tradier brokerage API. Greeks come from
// the chains endpoint; Tradier does not report a chance of profit.
type TradierFetcher struct {
	baseURL     string
	bearerToken string
	client      *http.Client
}

func NewTradierFetcher(baseURL, bearerToken string) *TradierFetcher {
	if baseURL == "" {
		baseURL = TradierBaseURL
	}

	return &TradierFetcher{
		baseURL:     strings.TrimRight(baseURL, "/"),
		bearerToken: bearerToken,
		client:      utils.NewHTTPClient(10 * time.Second),
	}
}

func (f *TradierFetcher) Name() eventmodels.DataProvider {
	return eventmodels.TradierProvider
}

func (f *TradierFetcher) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := fmt.Sprintf("%s%s?%s", f.baseURL, path, query.Encode())

	body, _, err := utils.Get(ctx, f.client, u, map[string]string{
		"Accept":        "application/json",
		"Authorization": fmt.Sprintf("Bearer %s", f.bearerToken),
	})

	return body, err
}

func (f *TradierFetcher) TickerExists(ctx context.Context, symbol eventmodels.StockSymbol) (bool, error) {
	ctx, span := otel.Tracer("TradierFetcher").Start(ctx, "TickerExists")
	defer span.End()

	body, err := f.get(ctx, "/v1/markets/quotes", url.Values{"symbols": {symbol.String()}})
	if err != nil {
		return false, fmt.Errorf("TradierFetcher.TickerExists: failed to fetch quote: %w", err)
	}

	var dto eventmodels.TradierQuotesDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return false, fmt.Errorf("TradierFetcher.TickerExists: failed to decode json: %w", err)
	}

	found, err := dto.Contains(symbol)
	if err != nil {
		return false, fmt.Errorf("TradierFetcher.TickerExists: %w", err)
	}

	return found, nil
}

func (f *TradierFetcher) FetchExpirations(ctx context.Context, symbol eventmodels.StockSymbol) ([]time.Time, error) {
	ctx, span := otel.Tracer("TradierFetcher").Start(ctx, "FetchExpirations")
	defer span.End()

	body, err := f.get(ctx, "/v1/markets/options/expirations", url.Values{"symbol": {symbol.String()}})
	if err != nil {
		return nil, fmt.Errorf("TradierFetcher.FetchExpirations: failed to fetch expirations: %w", err)
	}

	dates, err := utils.ParseTradierResponse[string](body)
	if err != nil {
		return nil, fmt.Errorf("TradierFetcher.FetchExpirations: failed to parse response: %w", err)
	}

	expirations := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		expiration, err := time.Parse("2006-01-02", d)
		if err != nil {
			return nil, fmt.Errorf("TradierFetcher.FetchExpirations: failed to parse expiration %s: %w", d, err)
		}

		expirations = append(expirations, expiration)
	}

	return expirations, nil
}

func (f *TradierFetcher) FetchPuts(ctx context.Context, symbol eventmodels.StockSymbol, expiration time.Time) ([]eventmodels.OptionQuote, error) {
	ctx, span := otel.Tracer("TradierFetcher").Start(ctx, "FetchPuts")
	defer span.End()

	body, err := f.get(ctx, "/v1/markets/options/chains", url.Values{
		"symbol":     {symbol.String()},
		"expiration": {expiration.Format("2006-01-02")},
		"greeks":     {"true"},
	})
	if err != nil {
		return nil, fmt.Errorf("TradierFetcher.FetchPuts: failed to fetch option chain: %w", err)
	}

	dtos, err := utils.ParseTradierResponse[eventmodels.TradierOptionDTO](body)
	if err != nil {
		return nil, fmt.Errorf("TradierFetcher.FetchPuts: failed to parse response: %w", err)
	}

	var quotes []eventmodels.OptionQuote
	for _, dto := range dtos {
		quote, err := dto.ToModel()
		if err != nil {
			log.WithContext(ctx).Warnf("TradierFetcher.FetchPuts: skipping %s: %v", dto.Symbol, err)
			continue
		}

		if quote.OptionType != eventmodels.Put {
			continue
		}

		if quote.UnderlyingSymbol == "" {
			quote.UnderlyingSymbol = symbol
		}

		quotes = append(quotes, quote)
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].StrikePrice < quotes[j].StrikePrice
	})

	return quotes, nil
}
