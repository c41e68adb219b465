package logger

import (
	"os"

	"go.uber.org/zap"
)

// New builds the process logger: production JSON by default,
// APP_ENV=development switches to the console encoder.
func New() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
