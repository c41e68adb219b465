package auth0

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/annerraquino/auth0-cleanup-sb/internal/config"
)

func newTestProvider(t *testing.T, tokenURL string) *TokenProvider {
	t.Helper()
	p, err := NewTokenProvider("dev-test.us.auth0.com", "client-id", "client-secret", "", zap.NewNop())
	require.NoError(t, err)
	p.cc.TokenURL = tokenURL
	return p
}

func TestNewTokenProviderValidation(t *testing.T) {
	cases := []struct {
		name   string
		domain string
		id     string
		secret string
		want   string
	}{
		{"missing domain", "", "id", "secret", "APP_AUTH0_DOMAIN"},
		{"missing client id", "dev-test.us.auth0.com", "", "secret", "APP_AUTH0_CLIENTID"},
		{"missing client secret", "dev-test.us.auth0.com", "id", "", "APP_AUTH0_CLIENTSECRET"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTokenProvider(tc.domain, tc.id, tc.secret, "", zap.NewNop())
			var missing *config.MissingError
			require.ErrorAs(t, err, &missing)
			// the reported name matches the env var Load reads
			assert.Equal(t, tc.want, missing.Name)
		})
	}
}

func TestFetchTokenSendsTrailingSlashAudience(t *testing.T) {
	var gotAudience string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotAudience = r.FormValue("audience")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok-123","token_type":"Bearer","expires_in":86400}`)
	}))
	defer ts.Close()

	p := newTestProvider(t, ts.URL)

	tok, err := p.FetchToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)
	// audience defaulted from the domain must carry the trailing slash
	assert.Equal(t, "https://dev-test.us.auth0.com/api/v2/", gotAudience)
}

func TestFetchTokenConfiguredAudienceGetsSlash(t *testing.T) {
	var gotAudience string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotAudience = r.FormValue("audience")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok-123","token_type":"Bearer"}`)
	}))
	defer ts.Close()

	p, err := NewTokenProvider("dev-test.us.auth0.com", "id", "secret",
		"https://dev-test.us.auth0.com/api/v2", zap.NewNop())
	require.NoError(t, err)
	p.cc.TokenURL = ts.URL

	_, err = p.FetchToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://dev-test.us.auth0.com/api/v2/", gotAudience)
}

func TestFetchTokenUpstreamFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":"access_denied"}`)
	}))
	defer ts.Close()

	p := newTestProvider(t, ts.URL)

	_, err := p.FetchToken(context.Background())
	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusForbidden, upstream.Status)
	assert.Contains(t, upstream.Body, "access_denied")
}

func TestFetchTokenMissingAccessToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"token_type":"Bearer"}`)
	}))
	defer ts.Close()

	p := newTestProvider(t, ts.URL)

	_, err := p.FetchToken(context.Background())
	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Contains(t, upstream.Body, "missing access_token")
}
