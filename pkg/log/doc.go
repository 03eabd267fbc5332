// Package log is the logging abstraction used across frdsource.
//
// Components depend on the Logger interface only. A zerolog adapter backs the
// CLI; NoopLogger is the default for library use and tests.
//
// # Usage
//
//	logger, err := log.NewZerolog(log.Config{Level: "debug", Format: "json"})
//	if err != nil {
//	    return err
//	}
//	logger.Info("file opened", log.String("path", p), log.Int("index", i))
//
// # Version
//
// Current version: 1.1.0
// Minimum compatible version: 1.0.0
package log
