package eventservices

import (
	"context"
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jiaming2012/put-finder/src/eventmodels"
	"github.com/jiaming2012/put-finder/src/screener"
)

// OptionChainFetcher is implemented by every market data provider.
type OptionChainFetcher interface {
	Name() eventmodels.DataProvider
	TickerExists(ctx context.Context, symbol eventmodels.StockSymbol) (bool, error)
	FetchExpirations(ctx context.Context, symbol eventmodels.StockSymbol) ([]time.Time, error)
	FetchPuts(ctx context.Context, symbol eventmodels.StockSymbol, expiration time.Time) ([]eventmodels.OptionQuote, error)
}

// FetchPutQuotes returns the puts of every expiration that is at most maxDTE days away,
// ordered by expiration. It fails with eventmodels.ErrTickerNotFound for unknown symbols.
func FetchPutQuotes(ctx context.Context, fetcher OptionChainFetcher, symbol eventmodels.StockSymbol, maxDTE int, now time.Time) ([]eventmodels.OptionQuote, error) {
	tracer := otel.Tracer("FetchPutQuotes")
	ctx, span := tracer.Start(ctx, "FetchPutQuotes", trace.WithAttributes(
		attribute.String("symbol", symbol.String()),
		attribute.String("provider", string(fetcher.Name())),
		attribute.Int("max_dte", maxDTE),
	))
	defer span.End()

	exists, err := fetcher.TickerExists(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("FetchPutQuotes: failed to look up %s: %w", symbol, err)
	}

	if !exists {
		return nil, fmt.Errorf("FetchPutQuotes: %w: %s", eventmodels.ErrTickerNotFound, symbol)
	}

	expirations, err := fetcher.FetchExpirations(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("FetchPutQuotes: failed to fetch expirations for %s: %w", symbol, err)
	}

	sort.Slice(expirations, func(i, j int) bool {
		return expirations[i].Before(expirations[j])
	})

	var quotes []eventmodels.OptionQuote

	for _, expiration := range expirations {
		if screener.DaysToExpiration(now, expiration) > maxDTE {
			continue
		}

		log.WithContext(ctx).Infof("Getting %s options for %s", symbol, expiration.Format("2006-01-02"))

		puts, err := fetcher.FetchPuts(ctx, symbol, expiration)
		if err != nil {
			return nil, fmt.Errorf("FetchPutQuotes: failed to fetch %s puts for %s: %w", symbol, expiration.Format("2006-01-02"), err)
		}

		quotes = append(quotes, puts...)
	}

	span.SetAttributes(attribute.Int("quotes", len(quotes)))

	return quotes, nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
