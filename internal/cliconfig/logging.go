package cliconfig

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/frdsource/pkg/log"
)

var logger zerolog.Logger

func init() {
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
}

// Logger returns the bootstrap logger used before the configuration is
// known.
func Logger() zerolog.Logger {
	return logger
}

// NewLogger builds the configured logger.
func (c *Config) NewLogger() (*log.ZerologAdapter, error) {
	return log.NewZerolog(log.Config{Level: c.LogLevel, Format: c.LogFormat, Out: os.Stderr})
}
