package eventservices

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jiaming2012/put-finder/src/eventmodels"
	"github.com/jiaming2012/put-finder/src/utils"
)

const polygonPageLimit = 250

// PolygonFetcher reads the put chain snapshot of an underlying once and serves every
// expiration from it. Polygon does not report a chance of profit.
type PolygonFetcher struct {
	client        *polygon.Client
	maxExpiration time.Time
	chains        map[eventmodels.StockSymbol][]eventmodels.OptionQuote
}

// NewPolygonFetcher only downloads contracts expiring on or before maxExpiration. A zero
// maxExpiration loads every expiration.
func NewPolygonFetcher(apiKey string, maxExpiration time.Time) *PolygonFetcher {
	return newPolygonFetcher(polygon.NewWithClient(apiKey, utils.NewHTTPClient(30*time.Second)), maxExpiration)
}

func newPolygonFetcher(client *polygon.Client, maxExpiration time.Time) *PolygonFetcher {
	return &PolygonFetcher{
		client:        client,
		maxExpiration: maxExpiration,
		chains:        make(map[eventmodels.StockSymbol][]eventmodels.OptionQuote),
	}
}

func (f *PolygonFetcher) Name() eventmodels.DataProvider {
	return eventmodels.PolygonProvider
}

func (f *PolygonFetcher) TickerExists(ctx context.Context, symbol eventmodels.StockSymbol) (bool, error) {
	ctx, span := otel.Tracer("PolygonFetcher").Start(ctx, "TickerExists")
	defer span.End()

	res, err := f.client.GetTickerDetails(ctx, &models.GetTickerDetailsParams{
		Ticker: symbol.String(),
	})
	if err != nil {
		var errResponse *models.ErrorResponse
		if errors.As(err, &errResponse) && errResponse.StatusCode == http.StatusNotFound {
			return false, nil
		}

		return false, fmt.Errorf("PolygonFetcher.TickerExists: failed to fetch ticker details: %w", err)
	}

	return strings.EqualFold(res.Results.Ticker, symbol.String()), nil
}

func (f *PolygonFetcher) loadChain(ctx context.Context, symbol eventmodels.StockSymbol) ([]eventmodels.OptionQuote, error) {
	if quotes, found := f.chains[symbol]; found {
		return quotes, nil
	}

	ctx, span := otel.Tracer("PolygonFetcher").Start(ctx, "loadChain")
	defer span.End()

	contractType := models.ContractType(eventmodels.Put)
	limit := polygonPageLimit

	params := &models.ListOptionsChainParams{
		UnderlyingAsset: symbol.String(),
		ContractType:    &contractType,
		Limit:           &limit,
	}

	if !f.maxExpiration.IsZero() {
		maxExpiration := models.Date(f.maxExpiration)
		params.ExpirationDateLTE = &maxExpiration
	}

	var quotes []eventmodels.OptionQuote

	iter := f.client.ListOptionsChainSnapshot(ctx, params)
	for iter.Next() {
		quote, ok := polygonSnapshotToQuote(symbol, iter.Item())
		if !ok {
			continue
		}

		quotes = append(quotes, quote)
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("PolygonFetcher.loadChain: failed to list options chain snapshot: %w", err)
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		if !quotes[i].ExpirationDate.Equal(quotes[j].ExpirationDate) {
			return quotes[i].ExpirationDate.Before(quotes[j].ExpirationDate)
		}

		return quotes[i].StrikePrice < quotes[j].StrikePrice
	})

	span.SetAttributes(attribute.Int("contracts", len(quotes)))
	log.WithContext(ctx).Debugf("PolygonFetcher: loaded %d %s puts", len(quotes), symbol)

	f.chains[symbol] = quotes

	return quotes, nil
}

func (f *PolygonFetcher) FetchExpirations(ctx context.Context, symbol eventmodels.StockSymbol) ([]time.Time, error) {
	quotes, err := f.loadChain(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("PolygonFetcher.FetchExpirations: %w", err)
	}

	return uniqueExpirations(quotes), nil
}

func (f *PolygonFetcher) FetchPuts(ctx context.Context, symbol eventmodels.StockSymbol, expiration time.Time) ([]eventmodels.OptionQuote, error) {
	quotes, err := f.loadChain(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("PolygonFetcher.FetchPuts: %w", err)
	}

	return quotesExpiringOn(quotes, expiration), nil
}

// polygonSnapshotToQuote converts a chain snapshot entry. Polygon leaves the greeks
// zeroed when it cannot compute them, so a zero delta is treated as missing.
func polygonSnapshotToQuote(underlying eventmodels.StockSymbol, snapshot models.OptionContractSnapshot) (eventmodels.OptionQuote, bool) {
	optionType, err := eventmodels.ParseOptionType(string(snapshot.Details.ContractType))
	if err != nil || optionType != eventmodels.Put {
		return eventmodels.OptionQuote{}, false
	}

	expiration := time.Time(snapshot.Details.ExpirationDate)
	if expiration.IsZero() {
		return eventmodels.OptionQuote{}, false
	}

	var delta *float64
	if snapshot.Greeks.Delta != 0 {
		delta = eventmodels.Float64Ptr(snapshot.Greeks.Delta)
	}

	return eventmodels.OptionQuote{
		UnderlyingSymbol: underlying,
		Symbol:           eventmodels.OptionSymbol(eventmodels.OptionSymbol(snapshot.Details.Ticker).NoPrefix()),
		OptionType:       eventmodels.Put,
		StrikePrice:      snapshot.Details.StrikePrice,
		ExpirationDate:   time.Date(expiration.Year(), expiration.Month(), expiration.Day(), 0, 0, 0, 0, time.UTC),
		BidPrice:         snapshot.LastQuote.Bid,
		AskPrice:         snapshot.LastQuote.Ask,
		Delta:            delta,
	}, true
}

func uniqueExpirations(quotes []eventmodels.OptionQuote) []time.Time {
	seen := make(map[string]bool)

	var expirations []time.Time
	for _, q := range quotes {
		key := q.ExpirationDateString()
		if seen[key] {
			continue
		}

		seen[key] = true
		expirations = append(expirations, q.ExpirationDate)
	}

	sort.Slice(expirations, func(i, j int) bool {
		return expirations[i].Before(expirations[j])
	})

	return expirations
}

func quotesExpiringOn(quotes []eventmodels.OptionQuote, expiration time.Time) []eventmodels.OptionQuote {
	var out []eventmodels.OptionQuote
	for _, q := range quotes {
		if sameDate(q.ExpirationDate, expiration) {
			out = append(out, q)
		}
	}

	return out
}
