package eventservices

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/put-finder/src/eventmodels"
)

func TestTDAmeritradeClientID(t *testing.T) {
	assert.Equal(t, "ABC@AMER.OAUTHAP", TDAmeritradeClientID("ABC"))
	assert.Equal(t, "ABC@AMER.OAUTHAP", TDAmeritradeClientID("ABC@AMER.OAUTHAP"))
}

func TestAuthorizationURL(t *testing.T) {
	cfg := NewTDAmeritradeOAuthConfig("ABC", "https://localhost:8080", "")

	u, err := url.Parse(AuthorizationURL(cfg))
	require.NoError(t, err)

	assert.Equal(t, "auth.tdameritrade.com", u.Host)
	assert.Equal(t, "/auth", u.Path)
	assert.Equal(t, "code", u.Query().Get("response_type"))
	assert.Equal(t, "ABC@AMER.OAUTHAP", u.Query().Get("client_id"))
	assert.Equal(t, "https://localhost:8080", u.Query().Get("redirect_uri"))
	assert.Equal(t, "https://api.tdameritrade.com/v1/oauth2/token", cfg.Endpoint.TokenURL)
}

func TestParseAuthorizationCode(t *testing.T) {
	t.Run("code parameter", func(t *testing.T) {
		code, err := ParseAuthorizationCode("https://localhost:8080/?code=abc%2B123%3D")
		require.NoError(t, err)
		assert.Equal(t, "abc+123=", code)
	})

	t.Run("first query value", func(t *testing.T) {
		code, err := ParseAuthorizationCode("https://localhost:8080/?token=xyz&other=1")
		require.NoError(t, err)
		assert.Equal(t, "xyz", code)
	})

	t.Run("bare query string", func(t *testing.T) {
		code, err := ParseAuthorizationCode("  code=xyz\n")
		require.NoError(t, err)
		assert.Equal(t, "xyz", code)
	})

	t.Run("no code", func(t *testing.T) {
		_, err := ParseAuthorizationCode("https://localhost:8080/")
		assert.ErrorIs(t, err, eventmodels.ErrAuthorizationCodeNotFound)

		_, err = ParseAuthorizationCode("")
		assert.ErrorIs(t, err, eventmodels.ErrAuthorizationCodeNotFound)
	})
}

func newTokenServer(t *testing.T, response string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/oauth2/token", r.URL.Path)
		require.NoError(t, r.ParseForm())

		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "offline", r.PostForm.Get("access_type"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		assert.Equal(t, "ABC@AMER.OAUTHAP", r.PostForm.Get("client_id"))
		assert.Equal(t, "https://localhost:8080", r.PostForm.Get("redirect_uri"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(response))
	}))
}

func TestExchangeRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("returns refresh token", func(t *testing.T) {
		server := newTokenServer(t, `{"access_token":"access","refresh_token":"refresh","token_type":"Bearer","expires_in":1800}`)
		defer server.Close()

		cfg := NewTDAmeritradeOAuthConfig("ABC", "https://localhost:8080", server.URL)

		token, err := ExchangeRefreshToken(ctx, cfg, "the-code")
		require.NoError(t, err)
		assert.Equal(t, "refresh", token)
	})

	t.Run("missing refresh token", func(t *testing.T) {
		server := newTokenServer(t, `{"access_token":"access","token_type":"Bearer","expires_in":1800}`)
		defer server.Close()

		cfg := NewTDAmeritradeOAuthConfig("ABC", "https://localhost:8080", server.URL)

		_, err := ExchangeRefreshToken(ctx, cfg, "the-code")
		assert.ErrorIs(t, err, eventmodels.ErrMissingRefreshToken)
	})
}
