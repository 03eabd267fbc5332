package app

import (
	"context"

	"github.com/bft-labs/frdsource/internal/ports"
)

// SourceFactory builds a record source for one followed input file.
// firstEvent continues the sequential event numbering across files.
type SourceFactory func(path string, firstEvent uint64) RecordSource

// Follow converts every path received on paths, one source per file, until
// ctx is cancelled, paths is closed or the event limit is reached. The first
// failing file stops the loop.
func (c *Converter) Follow(ctx context.Context, paths <-chan string, open SourceFactory) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case path, ok := <-paths:
			if !ok {
				return nil
			}
			c.logger.Info("converting followed file", ports.String("path", path))
			if err := c.Convert(ctx, open(path, c.progress.Events+1)); err != nil {
				return err
			}
			if c.Done() {
				return nil
			}
		}
	}
}
