package frdsource

import (
	"context"
	"fmt"

	"github.com/bft-labs/frdsource/internal/adapters/fs"
	"github.com/bft-labs/frdsource/internal/app"
	"github.com/bft-labs/frdsource/internal/domain"
	"github.com/bft-labs/frdsource/pkg/log"
)

// ConvertConfig configures Convert and Follow.
type ConvertConfig struct {
	Config

	// OutputDir receives one fed<ID>.raw file per facility.
	OutputDir string

	// StateDir holds status.json. Defaults to OutputDir.
	StateDir string

	// MaxEvents stops the conversion after this many events; 0 means no limit.
	MaxEvents uint64
}

// FrameFileName returns the name of the output file for a facility.
func FrameFileName(fedID uint16) string { return fs.FrameFileName(fedID) }

type conversion struct {
	conv *app.Converter
	sink *fs.FrameSink
	o    options
}

func newConversion(ctx context.Context, cfg *ConvertConfig, opts []Option) (*conversion, error) {
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("%w: no output dir", domain.ErrInvalidConfig)
	}
	if cfg.StateDir == "" {
		cfg.StateDir = cfg.OutputDir
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	sink, err := fs.NewFrameSink(cfg.OutputDir, o.logger)
	if err != nil {
		return nil, err
	}
	repo := fs.NewProgressFileRepository(cfg.StateDir)
	conv := app.NewConverter(app.ConverterConfig{MaxEvents: cfg.MaxEvents}, sink, repo, o.logger)
	conv.Start(ctx)
	return &conversion{conv: conv, sink: sink, o: o}, nil
}

func (c *conversion) finish(ctx context.Context, err error) (Progress, error) {
	if cerr := c.sink.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	err = c.conv.Finish(ctx, err)
	return c.conv.Progress(), err
}

// Convert reads cfg.Inputs to the end and writes their frames to
// cfg.OutputDir. Progress is saved after every input file and at the end.
func Convert(ctx context.Context, cfg ConvertConfig, opts ...Option) (Progress, error) {
	if err := cfg.Validate(); err != nil {
		return Progress{}, err
	}
	c, err := newConversion(ctx, &cfg, opts)
	if err != nil {
		return Progress{}, err
	}
	src := newSource(cfg.Config, c.o, cfg.Inputs, 1, c.conv.FileDone)
	return c.finish(ctx, c.conv.Convert(ctx, src))
}

// Follow converts files matching pattern as they appear in dir, until ctx is
// cancelled or MaxEvents is reached. Files already in dir are converted
// first. Each file is read as its own stream; event numbering continues
// across files. cfg.Inputs and cfg.SecondaryInputs are ignored.
func Follow(ctx context.Context, cfg ConvertConfig, dir, pattern string, opts ...Option) (Progress, error) {
	c, err := newConversion(ctx, &cfg, opts)
	if err != nil {
		return Progress{}, err
	}
	follower, err := fs.NewDirFollower(dir, pattern, c.o.logger)
	if err != nil {
		return c.finish(ctx, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	paths := make(chan string)
	watchErr := make(chan error, 1)
	go func() {
		err := follower.Run(ctx, paths)
		close(paths)
		watchErr <- err
	}()

	single := cfg.Config
	single.SecondaryInputs = nil
	open := func(path string, firstEvent uint64) app.RecordSource {
		return newSource(single, c.o, []string{path}, firstEvent, c.conv.FileDone)
	}
	err = c.conv.Follow(ctx, paths, open)
	cancel()
	if werr := <-watchErr; err == nil && werr != context.Canceled {
		err = werr
	}
	return c.finish(ctx, err)
}

// NewZerologLogger is a convenience for building the zerolog-backed logger
// the CLI uses.
func NewZerologLogger(level, format string) (log.Logger, error) {
	l, err := log.NewZerolog(log.Config{Level: level, Format: format})
	if err != nil {
		return nil, err
	}
	return l, nil
}
