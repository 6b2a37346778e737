package eventservices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"golang.org/x/oauth2"

	"github.com/jiaming2012/put-finder/src/eventmodels"
	"github.com/jiaming2012/put-finder/src/utils"
)

// TDAmeritradeFetcher reads option chains from the TD Ameritrade market data API. Access
// tokens are minted on demand from the stored refresh token.
type TDAmeritradeFetcher struct {
	baseURL string
	client  *http.Client
}

func NewTDAmeritradeFetcher(ctx context.Context, baseURL string, creds eventmodels.Credentials) (*TDAmeritradeFetcher, error) {
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("NewTDAmeritradeFetcher: %w", err)
	}

	if baseURL == "" {
		baseURL = TDAmeritradeBaseURL
	}

	cfg := NewTDAmeritradeOAuthConfig(creds.ClientID, "", baseURL)

	// the token refresh and the data requests share the instrumented transport
	ctx = context.WithValue(ctx, oauth2.HTTPClient, utils.NewHTTPClient(10*time.Second))

	tokenSource := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken})
	client := oauth2.NewClient(ctx, tokenSource)
	client.Timeout = 30 * time.Second

	return &TDAmeritradeFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}, nil
}

func (f *TDAmeritradeFetcher) Name() eventmodels.DataProvider {
	return eventmodels.TDAmeritradeProvider
}

func (f *TDAmeritradeFetcher) get(ctx context.Context, path string, query url.Values, v any) error {
	u := fmt.Sprintf("%s%s?%s", f.baseURL, path, query.Encode())

	body, _, err := utils.Get(ctx, f.client, u, map[string]string{"Accept": "application/json"})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode json: %w", err)
	}

	return nil
}

func (f *TDAmeritradeFetcher) TickerExists(ctx context.Context, symbol eventmodels.StockSymbol) (bool, error) {
	ctx, span := otel.Tracer("TDAmeritradeFetcher").Start(ctx, "TickerExists")
	defer span.End()

	var dto eventmodels.TDInstrumentsDTO
	if err := f.get(ctx, "/v1/instruments", url.Values{
		"symbol":     {symbol.String()},
		"projection": {"fundamental"},
	}, &dto); err != nil {
		return false, fmt.Errorf("TDAmeritradeFetcher.TickerExists: %w", err)
	}

	return dto.Contains(symbol), nil
}

func (f *TDAmeritradeFetcher) fetchChain(ctx context.Context, query url.Values) (*eventmodels.TDOptionChainDTO, error) {
	var dto eventmodels.TDOptionChainDTO
	if err := f.get(ctx, "/v1/marketdata/chains", query, &dto); err != nil {
		return nil, err
	}

	return &dto, nil
}

// FetchExpirations asks for a single strike per expiration, which is enough to learn the
// expiration dates without downloading the whole chain.
func (f *TDAmeritradeFetcher) FetchExpirations(ctx context.Context, symbol eventmodels.StockSymbol) ([]time.Time, error) {
	ctx, span := otel.Tracer("TDAmeritradeFetcher").Start(ctx, "FetchExpirations")
	defer span.End()

	dto, err := f.fetchChain(ctx, url.Values{
		"symbol":       {symbol.String()},
		"contractType": {"PUT"},
		"strikeCount":  {"1"},
	})
	if err != nil {
		return nil, fmt.Errorf("TDAmeritradeFetcher.FetchExpirations: %w", err)
	}

	expirations, err := dto.Expirations()
	if err != nil {
		return nil, fmt.Errorf("TDAmeritradeFetcher.FetchExpirations: %w", err)
	}

	return expirations, nil
}

func (f *TDAmeritradeFetcher) FetchPuts(ctx context.Context, symbol eventmodels.StockSymbol, expiration time.Time) ([]eventmodels.OptionQuote, error) {
	ctx, span := otel.Tracer("TDAmeritradeFetcher").Start(ctx, "FetchPuts")
	defer span.End()

	date := expiration.Format("2006-01-02")

	dto, err := f.fetchChain(ctx, url.Values{
		"symbol":       {symbol.String()},
		"contractType": {"PUT"},
		"fromDate":     {date},
		"toDate":       {date},
	})
	if err != nil {
		return nil, fmt.Errorf("TDAmeritradeFetcher.FetchPuts: %w", err)
	}

	quotes, err := dto.ToModel(symbol)
	if err != nil {
		return nil, fmt.Errorf("TDAmeritradeFetcher.FetchPuts: %w", err)
	}

	var puts []eventmodels.OptionQuote
	for _, q := range quotes {
		if sameDate(q.ExpirationDate, expiration) {
			puts = append(puts, q)
		}
	}

	return puts, nil
}
