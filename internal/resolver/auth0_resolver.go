package resolver

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/annerraquino/auth0-cleanup-sb/internal/cleanup"
)

// Auth0Resolver resolves identities against the Management API with an
// ordered fallback chain: direct user id, then a sequence of ssoid metadata
// queries, then exact email. First match wins; ambiguous results are never
// merged.
type Auth0Resolver struct {
	client Searcher
	log    *zap.Logger
}

func NewAuth0Resolver(client Searcher, log *zap.Logger) *Auth0Resolver {
	return &Auth0Resolver{client: client, log: log}
}

// ssoidQueries lists the metadata fields that might hold the ssoid, in the
// order they are tried. The field:"value" grammar is the Management API's
// search syntax and must match it exactly.
func ssoidQueries(ssoid string) []string {
	v := `"` + ssoid + `"`
	return []string{
		`app_metadata.ssoid:` + v,
		`user_metadata.ssoid:` + v,
		`app_metadata.sso_id:` + v,
		`app_metadata.enterprise.ssoid:` + v,
		`ssoid:` + v,
	}
}

func (r *Auth0Resolver) Resolve(ctx context.Context, token string, rec cleanup.Record) (string, bool, error) {
	// A direct id is trusted as-is; no lookup is performed.
	if id := strings.TrimSpace(rec.UserID); id != "" {
		return id, true, nil
	}

	if ssoid := strings.TrimSpace(rec.Ssoid); ssoid != "" {
		for _, q := range ssoidQueries(ssoid) {
			users, err := r.client.SearchUsers(ctx, token, q)
			if err != nil {
				return "", false, err
			}
			if len(users) > 0 && users[0].UserID != "" {
				r.log.Debug("ssoid query matched",
					zap.String("query", q),
					zap.String("user_id", users[0].UserID),
				)
				return users[0].UserID, true, nil
			}
		}
	}

	if email := strings.TrimSpace(rec.Email); email != "" {
		users, err := r.client.UsersByEmail(ctx, token, email)
		if err != nil {
			return "", false, err
		}
		if len(users) > 0 && users[0].UserID != "" {
			return users[0].UserID, true, nil
		}
	}

	return "", false, nil
}
