package fs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bft-labs/frdsource/internal/domain"
	"github.com/bft-labs/frdsource/internal/ports"
)

// FrameFileName returns the output file name for a facility.
func FrameFileName(fedID uint16) string {
	return fmt.Sprintf("fed%d.raw", fedID)
}

type frameFile struct {
	f     *os.File
	w     *bufio.Writer
	bytes int64
}

// FrameSink implements ports.FrameSink by appending every facility's frames
// to its own file in dir. Files are created on the first frame.
type FrameSink struct {
	dir    string
	logger ports.Logger

	mu    sync.Mutex
	files map[uint16]*frameFile
}

// NewFrameSink creates a sink writing into dir, creating it if needed.
func NewFrameSink(dir string, logger ports.Logger) (*FrameSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &FrameSink{dir: dir, logger: ports.OrNoop(logger), files: make(map[uint16]*frameFile)}, nil
}

// Write appends the frames of c.
func (s *FrameSink) Write(ctx context.Context, c *domain.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.files == nil {
		return domain.ErrSourceClosed
	}
	for _, id := range c.FEDIDs() {
		frame, _ := c.Frame(id)
		ff, err := s.file(id)
		if err != nil {
			return err
		}
		n, err := ff.w.Write(frame)
		ff.bytes += int64(n)
		if err != nil {
			return fmt.Errorf("write %s: %w", ff.f.Name(), err)
		}
	}
	return nil
}

func (s *FrameSink) file(id uint16) (*frameFile, error) {
	if ff, ok := s.files[id]; ok {
		return ff, nil
	}
	path := filepath.Join(s.dir, FrameFileName(id))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	ff := &frameFile{f: f, w: bufio.NewWriterSize(f, 256*1024)}
	s.files[id] = ff
	s.logger.Info("frame output", ports.Uint16("fed_id", id), ports.String("path", path))
	return ff, nil
}

// Bytes returns the number of bytes written for fedID.
func (s *FrameSink) Bytes(fedID uint16) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ff, ok := s.files[fedID]; ok {
		return ff.bytes
	}
	return 0
}

// Close flushes and closes all output files.
func (s *FrameSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for id, ff := range s.files {
		if err := ff.w.Flush(); err != nil {
			errs = append(errs, err)
		}
		if err := ff.f.Close(); err != nil {
			errs = append(errs, err)
		}
		s.logger.Debug("frame output closed", ports.Uint16("fed_id", id), ports.Int64("bytes", ff.bytes))
	}
	s.files = nil
	return errors.Join(errs...)
}
