package config

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeParams struct {
	params   map[string]string
	gotPath  string
	err      error
	reqCount int
}

func (f *fakeParams) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	f.reqCount++
	f.gotPath = aws.ToString(in.Path)
	if f.err != nil {
		return nil, f.err
	}
	out := &ssm.GetParametersByPathOutput{}
	for name, value := range f.params {
		out.Parameters = append(out.Parameters, types.Parameter{
			Name:  aws.String(f.gotPath + name),
			Value: aws.String(value),
		})
	}
	return out, nil
}

func TestApplyParameterStoreFillsBlanksOnly(t *testing.T) {
	api := &fakeParams{params: map[string]string{
		"AUTH0_DOMAIN":    "ssm-domain.auth0.com",
		"AUTH0_CLIENT_ID": "ssm-client",
		"S3_BUCKET":       "ssm-bucket",
	}}

	cfg := Config{
		ParamPrefix: "auth0-cleanup-sb",
		Auth0Domain: "env-domain.auth0.com", // env value must win
	}

	ApplyParameterStore(context.Background(), api, &cfg, zap.NewNop())

	assert.Equal(t, "/auth0-cleanup-sb/", api.gotPath)
	assert.Equal(t, "env-domain.auth0.com", cfg.Auth0Domain)
	assert.Equal(t, "ssm-client", cfg.Auth0ClientID)
	assert.Equal(t, "ssm-bucket", cfg.S3Bucket)
}

func TestApplyParameterStoreSpellingAliases(t *testing.T) {
	api := &fakeParams{params: map[string]string{
		"AUTH0_CLIENTID":     "alias-client",
		"AUTH0_CLIENTSECRET": "alias-secret",
		"S3_KEY":             "alias/output.csv",
	}}

	cfg := Config{ParamPrefix: "/p/"}
	ApplyParameterStore(context.Background(), api, &cfg, zap.NewNop())

	assert.Equal(t, "alias-client", cfg.Auth0ClientID)
	assert.Equal(t, "alias-secret", cfg.Auth0ClientSecret)
	assert.Equal(t, "alias/output.csv", cfg.OutputS3Key)
}

func TestApplyParameterStoreSkipsWithoutPrefix(t *testing.T) {
	api := &fakeParams{}
	cfg := Config{}

	ApplyParameterStore(context.Background(), api, &cfg, zap.NewNop())
	assert.Zero(t, api.reqCount)
}

func TestApplyParameterStoreLoadFailureIsNonFatal(t *testing.T) {
	api := &fakeParams{err: errors.New("access denied")}
	cfg := Config{ParamPrefix: "/p/", Auth0Domain: "env-domain"}

	ApplyParameterStore(context.Background(), api, &cfg, zap.NewNop())
	assert.Equal(t, "env-domain", cfg.Auth0Domain) // untouched
}

func TestValidate(t *testing.T) {
	cfg := Config{
		Auth0Domain:       "d",
		Auth0ClientID:     "i",
		Auth0ClientSecret: "s",
		S3Bucket:          "b",
	}
	require.NoError(t, cfg.Validate())

	cfg.S3Bucket = ""
	var missing *MissingError
	require.ErrorAs(t, cfg.Validate(), &missing)
	assert.Equal(t, "APP_S3_BUCKET", missing.Name)
}

func TestNormalizePrefix(t *testing.T) {
	assert.Equal(t, "/p/", normalizePrefix("p"))
	assert.Equal(t, "/p/", normalizePrefix("/p"))
	assert.Equal(t, "/p/", normalizePrefix("p/"))
	assert.Equal(t, "", normalizePrefix("  "))
}

func TestTailMask(t *testing.T) {
	assert.Equal(t, "****ABCD", TailMask("clientABCD"))
	assert.Equal(t, "****ab", TailMask("ab"))
	assert.Equal(t, "<blank>", TailMask(""))
}
