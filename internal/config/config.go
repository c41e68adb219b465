package config

import (
	"fmt"
	"os"
)

// Config carries every setting the service needs, as plain strings.
// Environment values win; blanks may later be filled from the parameter
// store (see ApplyParameterStore).
type Config struct {
	AppPort string

	// If set, missing values are read from SSM under this prefix,
	// e.g. /auth0-cleanup-sb/
	ParamPrefix string

	Auth0Domain       string // e.g. dev-xxxx.us.auth0.com (no scheme)
	Auth0Audience     string // e.g. https://dev-xxxx.us.auth0.com/api/v2/
	Auth0ClientID     string
	Auth0ClientSecret string

	S3Bucket    string
	InputS3Key  string
	OutputS3Key string

	AWSRegion string

	RedisAddr     string
	RedisPassword string
}

func Load() Config {

	cfg := Config{
		AppPort: getenvDefault("APP_PORT", "8080"),

		ParamPrefix: os.Getenv("APP_PARAM_PREFIX"),

		Auth0Domain:       os.Getenv("APP_AUTH0_DOMAIN"),
		Auth0Audience:     os.Getenv("APP_AUTH0_AUDIENCE"),
		Auth0ClientID:     os.Getenv("APP_AUTH0_CLIENTID"),
		Auth0ClientSecret: os.Getenv("APP_AUTH0_CLIENTSECRET"),

		S3Bucket:    os.Getenv("APP_S3_BUCKET"),
		InputS3Key:  getenvDefault("APP_INPUT_S3_KEY", "input/users_to_delete.csv"),
		OutputS3Key: getenvDefault("APP_S3_KEY", "output/deleted_users.csv"),

		AWSRegion: getenvDefault("AWS_REGION", "us-east-1"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	return cfg
}

// Validate checks the settings without which no record can be processed.
// Called after the parameter-store merge so fallback values count.
func (c Config) Validate() error {
	if c.Auth0Domain == "" {
		return &MissingError{Name: "APP_AUTH0_DOMAIN"}
	}
	if c.Auth0ClientID == "" {
		return &MissingError{Name: "APP_AUTH0_CLIENTID"}
	}
	if c.Auth0ClientSecret == "" {
		return &MissingError{Name: "APP_AUTH0_CLIENTSECRET"}
	}
	if c.S3Bucket == "" {
		return &MissingError{Name: "APP_S3_BUCKET"}
	}
	return nil
}

// MissingError reports required configuration that resolved to blank after
// env and parameter-store defaulting. Always job-fatal.
type MissingError struct {
	Name string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Name)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
