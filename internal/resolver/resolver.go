// Package resolver maps a partial identity record onto the canonical Auth0
// user id. It is the ONLY place where the lookup fallback order lives.
package resolver

import (
	"context"

	"github.com/annerraquino/auth0-cleanup-sb/internal/auth0"
	"github.com/annerraquino/auth0-cleanup-sb/internal/cleanup"
)

// Searcher is the slice of the management client the resolver needs.
type Searcher interface {
	SearchUsers(ctx context.Context, token, query string) ([]auth0.User, error)
	UsersByEmail(ctx context.Context, token, email string) ([]auth0.User, error)
}

// Resolver is satisfied by Auth0Resolver and by test fakes.
type Resolver interface {
	Resolve(ctx context.Context, token string, rec cleanup.Record) (userID string, found bool, err error)
}
