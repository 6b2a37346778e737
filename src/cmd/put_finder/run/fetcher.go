package run

import (
	"context"
	"fmt"
	"time"

	"github.com/jiaming2012/put-finder/src/eventmodels"
	"github.com/jiaming2012/put-finder/src/eventservices"
	"github.com/jiaming2012/put-finder/src/utils"
)

type FetcherArgs struct {
	Provider      eventmodels.DataProvider
	CredsPath     string
	InputPath     string
	MaxExpiration time.Time
}

// NewFetcher builds the option chain fetcher for a provider, reading its secrets from the
// credentials file or the environment.
func NewFetcher(ctx context.Context, args FetcherArgs) (eventservices.OptionChainFetcher, error) {
	switch args.Provider {
	case eventmodels.TDAmeritradeProvider:
		creds, err := utils.LoadCredentials(args.CredsPath)
		if err != nil {
			return nil, fmt.Errorf("NewFetcher: %w", err)
		}

		baseURL := utils.GetEnvOrDefault("TDA_BASE_URL", eventservices.TDAmeritradeBaseURL)

		fetcher, err := eventservices.NewTDAmeritradeFetcher(ctx, baseURL, creds)
		if err != nil {
			return nil, fmt.Errorf("NewFetcher: %w", err)
		}

		return fetcher, nil

	case eventmodels.TradierProvider:
		bearerToken, err := utils.GetEnv("TRADIER_BEARER_TOKEN")
		if err != nil {
			return nil, fmt.Errorf("NewFetcher: %w", err)
		}

		baseURL := utils.GetEnvOrDefault("TRADIER_BASE_URL", eventservices.TradierBaseURL)

		return eventservices.NewTradierFetcher(baseURL, bearerToken), nil

	case eventmodels.PolygonProvider:
		apiKey, err := utils.GetEnv("POLYGON_API_KEY")
		if err != nil {
			return nil, fmt.Errorf("NewFetcher: %w", err)
		}

		return eventservices.NewPolygonFetcher(apiKey, args.MaxExpiration), nil

	case eventmodels.CsvProvider:
		if args.InputPath == "" {
			return nil, fmt.Errorf("NewFetcher: the csv provider requires --input")
		}

		fetcher, err := eventservices.NewCsvQuotesFetcher(ctx, args.InputPath)
		if err != nil {
			return nil, fmt.Errorf("NewFetcher: %w", err)
		}

		return fetcher, nil
	}

	return nil, fmt.Errorf("NewFetcher: %w: %s", eventmodels.ErrUnknownDataProvider, args.Provider)
}
