package config

import "go.uber.org/zap"

// LogEffective prints the configuration actually in effect, once, at startup.
// The client id is tail-masked; the secret is never printed.
func LogEffective(cfg Config, log *zap.Logger) {
	log.Info("effective config",
		zap.String("param_prefix", orBlank(cfg.ParamPrefix)),
		zap.String("aws_region", cfg.AWSRegion),
		zap.String("auth0_domain", orBlank(cfg.Auth0Domain)),
		zap.String("auth0_audience", orBlank(cfg.Auth0Audience)),
		zap.String("auth0_client_id", TailMask(cfg.Auth0ClientID)),
		zap.String("auth0_client_secret", "*****"),
		zap.String("s3_bucket", orBlank(cfg.S3Bucket)),
		zap.String("input_key", orBlank(cfg.InputS3Key)),
		zap.String("output_key", orBlank(cfg.OutputS3Key)),
	)
}

// TailMask keeps only the last few characters of a sensitive value,
// e.g. ****ABCD.
func TailMask(s string) string {
	if s == "" {
		return "<blank>"
	}
	keep := 4
	if len(s) < keep {
		keep = len(s)
	}
	return "****" + s[len(s)-keep:]
}
