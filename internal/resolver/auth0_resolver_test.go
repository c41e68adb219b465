package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/annerraquino/auth0-cleanup-sb/internal/auth0"
	"github.com/annerraquino/auth0-cleanup-sb/internal/cleanup"
)

type fakeSearcher struct {
	queries      []string
	emailLookups []string

	// results by query string; missing key means empty result
	searchResults map[string][]auth0.User
	emailResults  map[string][]auth0.User
	searchErr     error
}

func (f *fakeSearcher) SearchUsers(_ context.Context, _, query string) ([]auth0.User, error) {
	f.queries = append(f.queries, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults[query], nil
}

func (f *fakeSearcher) UsersByEmail(_ context.Context, _, email string) ([]auth0.User, error) {
	f.emailLookups = append(f.emailLookups, email)
	return f.emailResults[email], nil
}

func TestResolveDirectIDSkipsSearch(t *testing.T) {
	fake := &fakeSearcher{}
	r := NewAuth0Resolver(fake, zap.NewNop())

	id, found, err := r.Resolve(context.Background(), "tok", cleanup.Record{
		UserID: "auth0|direct",
		Ssoid:  "abc123",
		Email:  "a@x.com",
	})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "auth0|direct", id)
	assert.Empty(t, fake.queries)
	assert.Empty(t, fake.emailLookups)
}

func TestResolveSsoidStopsAtFirstMatch(t *testing.T) {
	fake := &fakeSearcher{
		searchResults: map[string][]auth0.User{
			`app_metadata.sso_id:"abc123"`: {{UserID: "auth0|u3"}},
		},
	}
	r := NewAuth0Resolver(fake, zap.NewNop())

	id, found, err := r.Resolve(context.Background(), "tok", cleanup.Record{Ssoid: "abc123"})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "auth0|u3", id)

	// only the 3rd-order query matches, so exactly 3 queries are issued
	require.Equal(t, []string{
		`app_metadata.ssoid:"abc123"`,
		`user_metadata.ssoid:"abc123"`,
		`app_metadata.sso_id:"abc123"`,
	}, fake.queries)
}

func TestResolveFallsThroughToEmail(t *testing.T) {
	fake := &fakeSearcher{
		emailResults: map[string][]auth0.User{
			"a@x.com": {{UserID: "auth0|u1", Email: "a@x.com"}},
		},
	}
	r := NewAuth0Resolver(fake, zap.NewNop())

	id, found, err := r.Resolve(context.Background(), "tok", cleanup.Record{
		Ssoid: "abc123",
		Email: "a@x.com",
	})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "auth0|u1", id)
	assert.Len(t, fake.queries, 5) // every ssoid query tried first
	assert.Equal(t, []string{"a@x.com"}, fake.emailLookups)
}

func TestResolveAllFieldsEmpty(t *testing.T) {
	fake := &fakeSearcher{}
	r := NewAuth0Resolver(fake, zap.NewNop())

	id, found, err := r.Resolve(context.Background(), "tok", cleanup.Record{})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, id)
	assert.Empty(t, fake.queries)
	assert.Empty(t, fake.emailLookups)
}

func TestResolvePropagatesSearchError(t *testing.T) {
	fake := &fakeSearcher{
		searchErr: &auth0.UpstreamError{Op: "search", Status: 502, Body: "bad gateway"},
	}
	r := NewAuth0Resolver(fake, zap.NewNop())

	_, _, err := r.Resolve(context.Background(), "tok", cleanup.Record{Ssoid: "abc123"})
	var upstream *auth0.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Len(t, fake.queries, 1)
}
