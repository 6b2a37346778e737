package eventservices

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/jiaming2012/put-finder/src/eventmodels"
)

const (
	TDAmeritradeAuthURL         = "https://auth.tdameritrade.com/auth"
	TDAmeritradeBaseURL         = "https://api.tdameritrade.com"
	TDAmeritradeDefaultRedirect = "https://localhost:8080"
	tdClientIDSuffix            = "@AMER.OAUTHAP"
)

// TDAmeritradeClientID appends the suffix TD Ameritrade requires on OAuth client ids.
func TDAmeritradeClientID(clientID string) string {
	if strings.HasSuffix(clientID, tdClientIDSuffix) {
		return clientID
	}

	return clientID + tdClientIDSuffix
}

func NewTDAmeritradeOAuthConfig(clientID, redirectURI, baseURL string) *oauth2.Config {
	if baseURL == "" {
		baseURL = TDAmeritradeBaseURL
	}

	return &oauth2.Config{
		ClientID:    TDAmeritradeClientID(clientID),
		RedirectURL: redirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:   TDAmeritradeAuthURL,
			TokenURL:  strings.TrimRight(baseURL, "/") + "/v1/oauth2/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// AuthorizationURL is the page the user opens to grant access. TD Ameritrade does not use
// the state parameter.
func AuthorizationURL(cfg *oauth2.Config) string {
	return cfg.AuthCodeURL("")
}

// ParseAuthorizationCode pulls the authorization code out of the redirect URL the user
// pasted back. Without a code parameter, the first query value is used.
func ParseAuthorizationCode(redirect string) (string, error) {
	redirect = strings.TrimSpace(redirect)
	if redirect == "" {
		return "", eventmodels.ErrAuthorizationCodeNotFound
	}

	rawQuery := redirect
	if u, err := url.Parse(redirect); err == nil && (u.Scheme != "" || u.RawQuery != "") {
		rawQuery = u.RawQuery
	}

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", fmt.Errorf("ParseAuthorizationCode: failed to parse query: %w", err)
	}

	if code := values.Get("code"); code != "" {
		return code, nil
	}

	first, _, _ := strings.Cut(rawQuery, "&")
	if _, value, found := strings.Cut(first, "="); found && value != "" {
		code, err := url.QueryUnescape(value)
		if err != nil {
			return "", fmt.Errorf("ParseAuthorizationCode: failed to unescape code: %w", err)
		}

		return code, nil
	}

	return "", eventmodels.ErrAuthorizationCodeNotFound
}

// ExchangeRefreshToken trades an authorization code for an offline (refresh) token.
func ExchangeRefreshToken(ctx context.Context, cfg *oauth2.Config, code string) (string, error) {
	token, err := cfg.Exchange(ctx, code, oauth2.AccessTypeOffline)
	if err != nil {
		return "", fmt.Errorf("ExchangeRefreshToken: failed to exchange authorization code: %w", err)
	}

	if token.RefreshToken == "" {
		return "", eventmodels.ErrMissingRefreshToken
	}

	return token.RefreshToken, nil
}
