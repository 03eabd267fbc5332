// Package frdsource converts FRD event streams into AMC13/CDF FED frames.
//
// Example usage:
//
//	cfg := frdsource.DefaultConvertConfig()
//	cfg.Inputs = []string{"run360000_ls0001.raw", "run360000_ls0002.raw"}
//	cfg.OutputDir = "out"
//	p, err := frdsource.Convert(context.Background(), cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(p.Events)
//
// The full embeddable API, including the record-by-record Source, lives in
// pkg/frdsource.
package frdsource

import (
	"context"

	"github.com/bft-labs/frdsource/pkg/frdsource"
)

// ConvertConfig configures a batch or follow-mode conversion.
type ConvertConfig = frdsource.ConvertConfig

// Progress summarizes a conversion.
type Progress = frdsource.Progress

// Option configures logging and event callbacks.
type Option = frdsource.Option

// DefaultConvertConfig returns a ConvertConfig with the default facilities
// and checksum verification enabled. Inputs must be set before Convert.
func DefaultConvertConfig() ConvertConfig {
	return frdsource.ConvertConfig{Config: frdsource.DefaultConfig(), OutputDir: "."}
}

// Convert re-encodes every record of cfg.Inputs and blocks until the inputs
// are exhausted, cfg.MaxEvents is reached or ctx is cancelled.
func Convert(ctx context.Context, cfg ConvertConfig, opts ...Option) (Progress, error) {
	return frdsource.Convert(ctx, cfg, opts...)
}

// Follow converts files matching pattern as they appear in dir until ctx is
// cancelled.
func Follow(ctx context.Context, cfg ConvertConfig, dir, pattern string, opts ...Option) (Progress, error) {
	return frdsource.Follow(ctx, cfg, dir, pattern, opts...)
}

// WithLogger is frdsource.WithLogger.
var WithLogger = frdsource.WithLogger

// DefaultFEDID and DefaultFEDID2 are the facility ids used when none are
// configured.
const (
	DefaultFEDID  = frdsource.DefaultFEDID
	DefaultFEDID2 = frdsource.DefaultFEDID2
)
