package app

import (
	"context"
	"errors"
	"time"

	"github.com/bft-labs/frdsource/internal/domain"
	"github.com/bft-labs/frdsource/internal/ports"
)

// RecordSource is the part of Source the converter drives.
type RecordSource interface {
	Next(ctx context.Context) error
	Emit() *domain.Collection
	Close() error
}

// ConverterConfig contains configuration for the conversion loop.
type ConverterConfig struct {
	// MaxEvents stops the conversion after this many events; 0 means no limit.
	MaxEvents uint64
}

// Converter drives record sources until their input is exhausted, handing
// every collection to a frame sink and keeping a progress record.
type Converter struct {
	config   ConverterConfig
	sink     ports.FrameSink
	repo     ports.ProgressRepository
	logger   ports.Logger
	progress domain.Progress
}

// NewConverter creates a converter with the given dependencies. repo may be
// nil, in which case progress is kept in memory only.
func NewConverter(config ConverterConfig, sink ports.FrameSink, repo ports.ProgressRepository, logger ports.Logger) *Converter {
	return &Converter{
		config: config,
		sink:   sink,
		repo:   repo,
		logger: ports.OrNoop(logger),
	}
}

// Start begins a new progress record. A previous record that never
// finished is reported and replaced.
func (c *Converter) Start(ctx context.Context) {
	if c.repo != nil {
		prev, err := c.repo.Load(ctx)
		if err != nil {
			c.logger.Warn("failed to load progress", ports.Err(err))
		} else if !prev.IsEmpty() && !prev.Finished {
			c.logger.Warn("previous conversion did not finish",
				ports.Uint64("events", prev.Events),
				ports.String("last_event", prev.LastEvent.String()),
			)
		}
	}
	c.progress = domain.Progress{StartedAt: time.Now()}
	c.progress.UpdatedAt = c.progress.StartedAt
}

// Run converts src to completion and finishes the progress record.
func (c *Converter) Run(ctx context.Context, src RecordSource) error {
	c.Start(ctx)
	err := c.Convert(ctx, src)
	return c.Finish(ctx, err)
}

// Convert drains src into the sink. It returns nil when src reaches the end
// of its input or the event limit is reached, and closes src either way.
func (c *Converter) Convert(ctx context.Context, src RecordSource) error {
	defer src.Close()

	start := time.Now()
	var converted uint64
	for {
		if c.Done() {
			c.logger.Info("event limit reached", ports.Uint64("max_events", c.config.MaxEvents))
			return nil
		}

		if err := src.Next(ctx); err != nil {
			if domain.IsEndOfInput(err) {
				c.logger.Info("input exhausted",
					ports.Uint64("events", converted),
					ports.Duration("duration", time.Since(start)),
				)
				return nil
			}
			return err
		}

		col := src.Emit()
		if col == nil {
			continue
		}
		if err := c.sink.Write(ctx, col); err != nil {
			return err
		}
		c.progress.RecordEvent(col)
		converted++
		c.logger.Debug("event converted",
			ports.String("event", col.ID.String()),
			ports.Int("bytes", col.Size()),
		)
	}
}

// Done reports whether the event limit has been reached.
func (c *Converter) Done() bool {
	return c.config.MaxEvents > 0 && c.progress.Events >= c.config.MaxEvents
}

// FileDone records a completed input file and saves progress. It is meant
// to be registered as the stream reader's file observer.
func (c *Converter) FileDone(s domain.FileSummary) {
	c.progress.RecordFile(s)
	c.logger.Info("input file done",
		ports.String("path", s.Path),
		ports.Int("records", s.Records),
		ports.Int64("bytes", s.Bytes),
	)
	c.save(context.Background())
}

// Progress returns a copy of the current progress record.
func (c *Converter) Progress() domain.Progress {
	p := c.progress
	p.Files = append([]domain.FileSummary(nil), c.progress.Files...)
	if c.progress.FEDBytes != nil {
		p.FEDBytes = make(map[uint16]uint64, len(c.progress.FEDBytes))
		for id, n := range c.progress.FEDBytes {
			p.FEDBytes[id] = n
		}
	}
	return p
}

// Finish marks the progress record as finished with err, saves it, and
// returns err. Context cancellation counts as a clean stop.
func (c *Converter) Finish(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	c.progress.Finish(err)
	c.save(context.WithoutCancel(ctx))
	if err != nil {
		c.logger.Error("conversion failed", ports.Err(err), ports.Uint64("events", c.progress.Events))
		return err
	}
	c.logger.Info("conversion finished",
		ports.Uint64("events", c.progress.Events),
		ports.Int("files", len(c.progress.Files)),
	)
	return nil
}

func (c *Converter) save(ctx context.Context) {
	if c.repo == nil {
		return
	}
	if err := c.repo.Save(ctx, c.progress); err != nil {
		c.logger.Error("failed to save progress", ports.Err(err))
	}
}
