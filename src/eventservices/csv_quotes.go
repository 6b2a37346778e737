package eventservices

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/put-finder/src/eventmodels"
)

// CsvQuotesFetcher serves option quotes from a local CSV file, for offline runs and
// replays. Rows are returned in file order.
type CsvQuotesFetcher struct {
	path   string
	quotes []eventmodels.OptionQuote
}

func NewCsvQuotesFetcher(ctx context.Context, path string) (*CsvQuotesFetcher, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("NewCsvQuotesFetcher: failed to open %s: %w", path, err)
	}

	defer file.Close()

	var rows []*eventmodels.OptionQuoteCSV
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("NewCsvQuotesFetcher: failed to read %s: %w", path, err)
	}

	quotes := make([]eventmodels.OptionQuote, 0, len(rows))
	for i, row := range rows {
		quote, err := row.ToModel()
		if err != nil {
			log.WithContext(ctx).Warnf("NewCsvQuotesFetcher: skipping row %d of %s: %v", i+2, path, err)
			continue
		}

		quotes = append(quotes, quote)
	}

	return &CsvQuotesFetcher{
		path:   path,
		quotes: quotes,
	}, nil
}

func (f *CsvQuotesFetcher) Name() eventmodels.DataProvider {
	return eventmodels.CsvProvider
}

func (f *CsvQuotesFetcher) quotesFor(symbol eventmodels.StockSymbol) []eventmodels.OptionQuote {
	var out []eventmodels.OptionQuote
	for _, q := range f.quotes {
		if q.UnderlyingSymbol == symbol {
			out = append(out, q)
		}
	}

	return out
}

func (f *CsvQuotesFetcher) TickerExists(ctx context.Context, symbol eventmodels.StockSymbol) (bool, error) {
	return len(f.quotesFor(symbol)) > 0, nil
}

func (f *CsvQuotesFetcher) FetchExpirations(ctx context.Context, symbol eventmodels.StockSymbol) ([]time.Time, error) {
	return uniqueExpirations(f.quotesFor(symbol)), nil
}

func (f *CsvQuotesFetcher) FetchPuts(ctx context.Context, symbol eventmodels.StockSymbol, expiration time.Time) ([]eventmodels.OptionQuote, error) {
	return quotesExpiringOn(f.quotesFor(symbol), expiration), nil
}
