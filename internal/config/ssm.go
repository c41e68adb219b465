package config

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"go.uber.org/zap"
)

// ParameterAPI is the slice of the SSM client the loader uses.
type ParameterAPI interface {
	GetParametersByPath(ctx context.Context, in *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// ApplyParameterStore fills blank Config fields from SSM parameters under
// cfg.ParamPrefix. Values already set from the environment are never
// overwritten. A load failure is logged and swallowed: the config may still
// be complete from env alone, and Validate has the final say.
func ApplyParameterStore(ctx context.Context, api ParameterAPI, cfg *Config, log *zap.Logger) {
	prefix := normalizePrefix(cfg.ParamPrefix)
	if prefix == "" {
		log.Info("APP_PARAM_PREFIX not set; skipping SSM load")
		return
	}

	kv := map[string]string{}
	var nextToken *string
	for {
		out, err := api.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
			Path:           aws.String(prefix),
			Recursive:      aws.Bool(true),
			WithDecryption: aws.Bool(true),
			NextToken:      nextToken,
		})
		if err != nil {
			log.Error("failed to load parameters from SSM",
				zap.String("prefix", prefix),
				zap.Error(err),
			)
			return
		}
		for _, p := range out.Parameters {
			name := strings.TrimPrefix(aws.ToString(p.Name), prefix)
			kv[name] = aws.ToString(p.Value)
		}
		nextToken = out.NextToken
		if nextToken == nil || *nextToken == "" {
			break
		}
	}

	setIfBlank(&cfg.Auth0Domain, kv["AUTH0_DOMAIN"])
	setIfBlank(&cfg.Auth0Audience, kv["AUTH0_AUDIENCE"])

	// both spellings occur in existing parameter trees
	setIfBlank(&cfg.Auth0ClientID, firstNonBlank(kv["AUTH0_CLIENT_ID"], kv["AUTH0_CLIENTID"]))
	setIfBlank(&cfg.Auth0ClientSecret, firstNonBlank(kv["AUTH0_CLIENT_SECRET"], kv["AUTH0_CLIENTSECRET"]))

	setIfBlank(&cfg.S3Bucket, kv["S3_BUCKET"])
	setIfBlank(&cfg.InputS3Key, kv["INPUT_S3_KEY"])
	setIfBlank(&cfg.OutputS3Key, firstNonBlank(kv["S3_KEY"], kv["OUTPUT_S3_KEY"]))

	log.Info("SSM parameters merged",
		zap.String("prefix", prefix),
		zap.String("domain", orBlank(cfg.Auth0Domain)),
		zap.String("audience", orBlank(cfg.Auth0Audience)),
		zap.String("client_id", TailMask(cfg.Auth0ClientID)),
		zap.String("s3_bucket", orBlank(cfg.S3Bucket)),
		zap.String("input_key", orBlank(cfg.InputS3Key)),
		zap.String("output_key", orBlank(cfg.OutputS3Key)),
	)
}

// normalizePrefix forces the /prefix/ shape SSM path queries expect.
func normalizePrefix(pfx string) string {
	s := strings.TrimSpace(pfx)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	if !strings.HasSuffix(s, "/") {
		s += "/"
	}
	return s
}

func setIfBlank(dst *string, value string) {
	if value == "" {
		return
	}
	if strings.TrimSpace(*dst) == "" {
		*dst = value
	}
}

func firstNonBlank(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	if strings.TrimSpace(b) != "" {
		return b
	}
	return ""
}

func orBlank(s string) string {
	if strings.TrimSpace(s) == "" {
		return "<blank>"
	}
	return s
}
