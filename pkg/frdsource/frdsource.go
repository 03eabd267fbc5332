package frdsource

import (
	"context"
	"fmt"

	"github.com/bft-labs/frdsource/internal/adapters/fs"
	"github.com/bft-labs/frdsource/internal/app"
	"github.com/bft-labs/frdsource/internal/domain"
	"github.com/bft-labs/frdsource/pkg/checksum"
	"github.com/bft-labs/frdsource/pkg/log"
)

// Default facility ids.
const (
	DefaultFEDID  = app.DefaultFEDID
	DefaultFEDID2 = app.DefaultFEDID2
)

// Config holds the configuration of a record source.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config struct {
	// Inputs are the primary stream's files, read in order. Paths may carry
	// a "file:" prefix.
	Inputs []string

	// SecondaryInputs, when set, are read in lockstep with Inputs.
	SecondaryInputs []string

	FEDID  uint16
	FEDID2 uint16

	VerifyChecksum bool // CRC32C, header versions 5 and later
	VerifyAdler32  bool // Adler-32, header versions 3 and 4

	// UseL1EventID takes event ids from the primary records instead of
	// numbering events RunNumber:1:n.
	UseL1EventID bool
	RunNumber    uint32
}

// DefaultConfig returns a Config with both checksums verified and the
// default facility ids.
func DefaultConfig() Config {
	return Config{
		FEDID:          DefaultFEDID,
		FEDID2:         DefaultFEDID2,
		VerifyChecksum: true,
		VerifyAdler32:  true,
		RunNumber:      1,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return fmt.Errorf("%w: no inputs", domain.ErrInvalidConfig)
	}
	if len(c.SecondaryInputs) > 0 && c.FEDID == c.FEDID2 {
		return fmt.Errorf("%w: both streams use fed id %d", domain.ErrInvalidConfig, c.FEDID)
	}
	return nil
}

func (c *Config) policy() checksum.Policy {
	return checksum.Policy{VerifyCRC32C: c.VerifyChecksum, VerifyAdler32: c.VerifyAdler32}
}

// Source is a record source that can be embedded in other applications.
// It is not safe for concurrent use.
type Source struct {
	src *app.Source
}

// New creates a Source for cfg. Input files are opened by the first Next;
// a missing file is reported there as ErrFileOpen.
func New(cfg Config, opts ...Option) (*Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Source{src: newSource(cfg, o, cfg.Inputs, 1, nil)}, nil
}

// newSource wires stream readers for inputs into an app.Source. onFile, if
// set, is called for every completed primary file in addition to the
// event handler.
func newSource(cfg Config, o options, inputs []string, firstEvent uint64, onFile func(FileSummary)) *app.Source {
	handler := o.eventHandler
	observe := func(s FileSummary) {
		if onFile != nil {
			onFile(s)
		}
		if handler != nil {
			handler.OnFileDone(s)
		}
	}

	primary := fs.NewStreamReader(inputs, cfg.policy(), o.logger, fs.WithFileObserver(observe))
	var secondary *fs.StreamReader
	if len(cfg.SecondaryInputs) > 0 {
		secondary = fs.NewStreamReader(cfg.SecondaryInputs, cfg.policy(), o.logger)
	}

	var srcOpts []app.SourceOption
	if handler != nil {
		srcOpts = append(srcOpts, app.WithStateObserver(stateObserver{handler: handler}))
	}
	srcCfg := app.SourceConfig{
		FEDID:        cfg.FEDID,
		FEDID2:       cfg.FEDID2,
		UseL1EventID: cfg.UseL1EventID,
		RunNumber:    cfg.RunNumber,
		FirstEvent:   firstEvent,
	}
	if secondary == nil {
		return app.NewSource(srcCfg, primary, nil, log.OrNoop(o.logger), srcOpts...)
	}
	return app.NewSource(srcCfg, primary, secondary, log.OrNoop(o.logger), srcOpts...)
}

// Initialize opens the input streams. Calling it is optional.
func (s *Source) Initialize(ctx context.Context) error { return s.src.Initialize(ctx) }

// Next reads the next event. It returns ErrEndOfInput once the primary
// stream is exhausted; any other error is fatal and sticky.
func (s *Source) Next(ctx context.Context) error { return s.src.Next(ctx) }

// Emit hands over the collection built by the last successful Next, or nil.
func (s *Source) Emit() *Collection { return s.src.Emit() }

// Status returns the current lifecycle state.
func (s *Source) Status() State { return s.src.State() }

// Err returns the error that failed the source, if any.
func (s *Source) Err() error { return s.src.Err() }

// Position returns where the primary stream is.
func (s *Source) Position() Position { return s.src.Position() }

// Close releases the input files.
func (s *Source) Close() error { return s.src.Close() }
