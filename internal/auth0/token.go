package auth0

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/annerraquino/auth0-cleanup-sb/internal/config"
)

// TokenProvider performs the client-credentials exchange against the tenant
// token endpoint. Requires the Management API scopes read:users and
// delete:users on the client grant.
type TokenProvider struct {
	cc   clientcredentials.Config
	http *http.Client
	log  *zap.Logger
}

// NewTokenProvider validates the credential configuration and prepares the
// exchange. The audience is sent with a trailing slash regardless of how it
// was configured.
func NewTokenProvider(domain, clientID, clientSecret, audience string, log *zap.Logger) (*TokenProvider, error) {
	d := normalizeDomain(domain)
	aud := managementAudience(audience, domain)

	if d == "" {
		return nil, &config.MissingError{Name: "APP_AUTH0_DOMAIN"}
	}
	if aud == "" {
		return nil, &config.MissingError{Name: "APP_AUTH0_AUDIENCE"}
	}
	if clientID == "" {
		return nil, &config.MissingError{Name: "APP_AUTH0_CLIENTID"}
	}
	if clientSecret == "" {
		return nil, &config.MissingError{Name: "APP_AUTH0_CLIENTSECRET"}
	}

	return &TokenProvider{
		cc: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     "https://" + d + "/oauth/token",
			AuthStyle:    oauth2.AuthStyleInParams,
			EndpointParams: url.Values{
				"audience": {aud},
			},
		},
		http: &http.Client{
			Timeout: 20 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
			},
		},
		log: log,
	}, nil
}

// FetchToken exchanges the client credentials for a fresh management token.
// No caching and no retries; each call hits the token endpoint.
func (p *TokenProvider) FetchToken(ctx context.Context) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.http)

	tok, err := p.cc.Token(ctx)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			return "", &UpstreamError{
				Op:     "token",
				Status: re.Response.StatusCode,
				Body:   string(re.Body),
			}
		}
		// oauth2 reports a 2xx body without a token as a plain error
		if strings.Contains(err.Error(), "missing access_token") {
			return "", &UpstreamError{
				Op:     "token",
				Status: http.StatusOK,
				Body:   "response missing access_token",
			}
		}
		return "", fmt.Errorf("auth0 token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", &UpstreamError{
			Op:     "token",
			Status: http.StatusOK,
			Body:   "response missing access_token",
		}
	}
	return tok.AccessToken, nil
}
