package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/bft-labs/frdsource/internal/domain"
	"github.com/bft-labs/frdsource/internal/ports"
	"github.com/bft-labs/frdsource/pkg/fed"
	"github.com/bft-labs/frdsource/pkg/frd"
)

// Default facility ids of the primary and secondary streams.
const (
	DefaultFEDID  uint16 = 1477
	DefaultFEDID2 uint16 = 1478
)

// SourceConfig configures a Source.
type SourceConfig struct {
	FEDID  uint16
	FEDID2 uint16 // used only when a secondary stream is given

	// UseL1EventID takes run, lumi and event from the primary record.
	// Otherwise events are numbered RunNumber:1:n with n counting from
	// FirstEvent.
	UseL1EventID bool
	RunNumber    uint32
	FirstEvent   uint64
}

// DefaultSourceConfig returns the configuration of a two-facility source
// with sequential event ids.
func DefaultSourceConfig() SourceConfig {
	return SourceConfig{FEDID: DefaultFEDID, FEDID2: DefaultFEDID2, FirstEvent: 1}
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithStateObserver registers o to be told about every state change.
func WithStateObserver(o StateObserver) SourceOption {
	return func(s *Source) { s.lc.observer = o }
}

// Source combines one or two record streams into one output collection per
// event, re-encoding every record as a FED frame. Once exhausted or failed
// it stays that way.
type Source struct {
	config    SourceConfig
	primary   ports.RecordReader
	secondary ports.RecordReader
	logger    ports.Logger

	lc          lifecycle
	initialized bool
	closed      bool
	err         error
	seq         uint64
	pending     *domain.Collection
}

// NewSource creates a source over primary and an optional secondary stream.
func NewSource(config SourceConfig, primary, secondary ports.RecordReader, logger ports.Logger, opts ...SourceOption) *Source {
	logger = ports.OrNoop(logger)
	if config.FirstEvent == 0 {
		config.FirstEvent = 1
	}
	s := &Source{
		config:    config,
		primary:   primary,
		secondary: secondary,
		logger:    logger,
		lc:        lifecycle{state: StateIdle, logger: logger},
		seq:       config.FirstEvent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize opens the streams. It is called by the first Next if the host
// has not done so.
func (s *Source) Initialize(ctx context.Context) error {
	if s.closed {
		return domain.ErrSourceClosed
	}
	if s.initialized {
		return nil
	}
	s.initialized = true

	if err := s.primary.Open(ctx); err != nil {
		return s.fail(fmt.Errorf("open primary: %w", err))
	}
	if s.secondary != nil {
		if err := s.secondary.Open(ctx); err != nil {
			return s.fail(fmt.Errorf("open secondary: %w", err))
		}
	}
	s.logger.Info("record source initialized",
		ports.Uint16("fed_id", s.config.FEDID),
		ports.Bool("secondary", s.secondary != nil),
		ports.Bool("use_l1_event_id", s.config.UseL1EventID),
	)
	return nil
}

// Next reads the next event. It returns nil when a collection is ready for
// Emit, domain.ErrEndOfInput once the primary stream is exhausted, or the
// error that failed the source.
func (s *Source) Next(ctx context.Context) error {
	switch {
	case s.closed:
		return domain.ErrSourceClosed
	case s.lc.state == StateExhausted:
		return domain.ErrEndOfInput
	case s.lc.state == StateFailed:
		return s.err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.Initialize(ctx); err != nil {
		return err
	}
	s.pending = nil

	if err := s.lc.transitionTo(StateReading, "next"); err != nil {
		return err
	}
	rec, err := s.primary.Next(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrEndOfInput) {
			_ = s.lc.transitionTo(StateExhausted, "primary stream ended")
			return domain.ErrEndOfInput
		}
		return s.fail(fmt.Errorf("primary: %w", err))
	}

	c := domain.NewCollection(s.eventID(rec))
	if err := s.emit(c, s.config.FEDID, rec); err != nil {
		return err
	}

	if s.secondary != nil {
		if err := s.lc.transitionTo(StateReading, "secondary"); err != nil {
			return err
		}
		rec2, err := s.secondary.Next(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrEndOfInput) {
				err = fmt.Errorf("%w at event %s", domain.ErrStreamMisaligned, c.ID)
			}
			return s.fail(fmt.Errorf("secondary: %w", err))
		}
		if err := s.emit(c, s.config.FEDID2, rec2); err != nil {
			return err
		}
	}

	s.pending = c
	return nil
}

// emit moves to Emitting and stores the frame for rec under fedID.
func (s *Source) emit(c *domain.Collection, fedID uint16, rec frd.EventView) error {
	if err := s.lc.transitionTo(StateEmitting, "record decoded"); err != nil {
		return err
	}
	c.Put(fedID, fed.EncodeBytes(rec.Payload(), rec.Event(), fedID))
	return nil
}

func (s *Source) eventID(rec frd.EventView) domain.EventID {
	if s.config.UseL1EventID {
		return domain.EventID{Run: rec.Run(), Lumi: rec.Lumi(), Event: rec.Event()}
	}
	id := domain.EventID{Run: s.config.RunNumber, Lumi: 1, Event: s.seq}
	s.seq++
	return id
}

// Emit hands over the collection built by the last successful Next. It
// returns nil if there is none, including on a second call.
func (s *Source) Emit() *domain.Collection {
	if s.lc.state != StateEmitting {
		return nil
	}
	c := s.pending
	s.pending = nil
	return c
}

// State returns the current state.
func (s *Source) State() State {
	return s.lc.state
}

// Err returns the error that failed the source, if any.
func (s *Source) Err() error {
	return s.err
}

// Position returns the position of the primary stream.
func (s *Source) Position() domain.Position {
	return s.primary.Position()
}

// Close releases both streams.
func (s *Source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.pending = nil
	err := s.primary.Close()
	if s.secondary != nil {
		err = errors.Join(err, s.secondary.Close())
	}
	return err
}

func (s *Source) fail(err error) error {
	s.err = err
	s.pending = nil
	_ = s.lc.transitionTo(StateFailed, err.Error())
	s.logger.Error("record source failed", ports.Err(err))
	return err
}
