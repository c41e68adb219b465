package auth0

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/annerraquino/auth0-cleanup-sb/internal/config"
)

// User is the subset of a Management API user document the pipeline needs.
type User struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Client talks to the Auth0 Management API. It holds no token state; every
// call receives the bearer token from the caller.
type Client struct {
	base string
	http *http.Client
	log  *zap.Logger
}

// NewClient builds a management client rooted at the tenant's /api/v2 base.
// The base is derived from the audience when set, otherwise from the domain.
func NewClient(domain, audience string, log *zap.Logger) (*Client, error) {
	base := managementBase(audience, domain)
	if base == "" {
		return nil, &config.MissingError{Name: "APP_AUTH0_DOMAIN"}
	}

	return &Client{
		base: base,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
			},
		},
		log: log,
	}, nil
}

// SearchUsers runs one Lucene query against GET /users. The query grammar
// (field:"value") must reach the API verbatim; only URL encoding is applied.
func (c *Client) SearchUsers(ctx context.Context, token, query string) ([]User, error) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	u := c.base + "/users?q=" + url.QueryEscape(query) +
		"&search_engine=v3&fields=user_id,email,app_metadata,user_metadata&include_fields=true"

	return c.getUsers(ctx, token, u, "search")
}

// UsersByEmail looks a user up by exact email via GET /users-by-email.
func (c *Client) UsersByEmail(ctx context.Context, token, email string) ([]User, error) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	u := c.base + "/users-by-email?email=" + url.QueryEscape(email)

	return c.getUsers(ctx, token, u, "users-by-email")
}

// DeleteUser removes a user by canonical id. 200 and 204 are success; 404 is
// surfaced as a typed NotFoundError so the caller can treat pre-existing
// absence as acceptable.
func (c *Client) DeleteUser(ctx context.Context, token, userID string) error {
	if userID == "" {
		return fmt.Errorf("auth0 delete: user id is blank")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.base+"/users/"+url.PathEscape(userID), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("auth0 delete: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{UserID: userID}
	default:
		return &UpstreamError{Op: "delete", Status: resp.StatusCode, Body: string(body)}
	}
}

func (c *Client) getUsers(ctx context.Context, token, rawURL, op string) ([]User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth0 %s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("auth0 %s: read body: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Op: op, Status: resp.StatusCode, Body: string(body)}
	}

	var users []User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("auth0 %s: decode response: %w", op, err)
	}
	return users, nil
}
