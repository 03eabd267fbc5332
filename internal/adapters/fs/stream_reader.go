package fs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bft-labs/frdsource/internal/domain"
	"github.com/bft-labs/frdsource/internal/ports"
	"github.com/bft-labs/frdsource/pkg/checksum"
	"github.com/bft-labs/frdsource/pkg/frd"
)

const readBufferSize = 64 * 1024

// ErrUnsupportedScheme is wrapped in the open error of a path whose scheme is
// not "file".
var ErrUnsupportedScheme = errors.New("unsupported path scheme")

// StreamReader implements ports.RecordReader over an ordered sequence of FRD
// files. It reads records one at a time into a buffer it reuses for the
// lifetime of the stream.
type StreamReader struct {
	files  []string
	policy checksum.Policy
	logger ports.Logger
	onFile func(domain.FileSummary)
	onHdr  func(path string, h frd.FileHeader)

	idx     int
	f       *os.File
	r       *bufio.Reader
	offset  int64
	records int
	probe   bool  // file header not yet probed for the current file
	openErr error // deferred failure from Open

	version uint16 // sticky across files once detected
	buf     *frd.Buffer
	closed  bool
}

// StreamOption configures a StreamReader.
type StreamOption func(*StreamReader)

// WithFileObserver registers fn to be called every time the reader finishes
// a file.
func WithFileObserver(fn func(domain.FileSummary)) StreamOption {
	return func(s *StreamReader) { s.onFile = fn }
}

// WithFileHeaderObserver registers fn to be called with every file header
// the reader skips.
func WithFileHeaderObserver(fn func(path string, h frd.FileHeader)) StreamOption {
	return func(s *StreamReader) { s.onHdr = fn }
}

// NewStreamReader creates a reader for files, verifying payloads under policy.
func NewStreamReader(files []string, policy checksum.Policy, logger ports.Logger, opts ...StreamOption) *StreamReader {
	s := &StreamReader{
		files:  append([]string(nil), files...),
		policy: policy,
		logger: ports.OrNoop(logger),
		buf:    frd.NewBuffer(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open opens the first file. Open failures are kept and returned by the
// first Next so that a source can be constructed before its inputs exist.
func (s *StreamReader) Open(ctx context.Context) error {
	if s.closed {
		return domain.ErrSourceClosed
	}
	if len(s.files) == 0 {
		return nil
	}
	if err := s.openCurrent(); err != nil {
		s.logger.Warn("input left closed", ports.String("path", s.files[s.idx]), ports.Err(err))
		s.openErr = err
	}
	return nil
}

// Next returns the next record of the stream.
func (s *StreamReader) Next(ctx context.Context) (frd.EventView, error) {
	if err := ctx.Err(); err != nil {
		return frd.EventView{}, err
	}
	if s.closed {
		return frd.EventView{}, domain.ErrSourceClosed
	}
	if s.openErr != nil {
		return frd.EventView{}, s.openErr
	}
	if err := s.sync(); err != nil {
		return frd.EventView{}, err
	}

	view, err := s.readEvent()
	if err != nil {
		return frd.EventView{}, s.wrap(err)
	}
	if err := checksum.Verify(view.Payload(), view.Version(), view.CRC32C(), view.Adler32(), s.policy); err != nil {
		return frd.EventView{}, s.wrap(fmt.Errorf("event %d: %w", view.Event(), err))
	}
	s.records++
	return view, nil
}

// sync positions the reader at the start of the next event record, probing
// file headers and advancing across files as needed.
func (s *StreamReader) sync() error {
	for {
		if s.f == nil {
			if s.idx >= len(s.files) {
				return domain.ErrEndOfInput
			}
			if err := s.openCurrent(); err != nil {
				return err
			}
		}
		if s.probe {
			if err := s.readFileHeader(); err != nil {
				return s.wrap(err)
			}
			s.probe = false
		}
		if _, err := s.r.Peek(1); err != nil {
			if !errors.Is(err, io.EOF) {
				return s.wrap(err)
			}
			s.finishFile()
			continue
		}
		return nil
	}
}

// readFileHeader looks for an FRD file header at the start of the current
// file and skips it. Bytes that do not form a file header are left unread.
func (s *StreamReader) readFileHeader() error {
	b, err := s.r.Peek(frd.FileHeaderSize)
	if len(b) == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return frd.ErrEmptyOrUnreadableFile
		}
		return fmt.Errorf("%w: %v", frd.ErrEmptyOrUnreadableFile, err)
	}
	if len(b) < frd.FileHeaderSize {
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}

	hdr, ok, err := frd.DecodeFileHeader(b)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if int(hdr.HeaderSize) >= frd.FileHeaderV2Size && hdr.Version >= 2 {
		if full, perr := s.r.Peek(frd.FileHeaderV2Size); perr == nil {
			hdr, _, _ = frd.DecodeFileHeader(full)
		}
	}

	n, err := s.r.Discard(int(hdr.HeaderSize))
	s.offset += int64(n)
	if err != nil {
		return fmt.Errorf("%w: file header declares %d bytes, file has %d", frd.ErrTruncatedRecord, hdr.HeaderSize, n)
	}
	s.logger.Info("file header",
		ports.Uint16("version", hdr.Version),
		ports.Uint16("header_size", hdr.HeaderSize),
		ports.Uint32("event_count", hdr.EventCount),
		ports.Uint32("lumi", hdr.Lumi),
	)
	if s.onHdr != nil {
		s.onHdr(s.files[s.idx], hdr)
	}
	return nil
}

// readEvent reads one record: the fixed header first, then the rest of the
// record once the header has declared its total size.
func (s *StreamReader) readEvent() (frd.EventView, error) {
	var size int
	if s.version == 0 {
		var tag [frd.VersionTagSize]byte
		if err := s.readFull(tag[:]); err != nil {
			return frd.EventView{}, err
		}
		version := frd.EventVersion(tag[:])
		n, err := frd.EventHeaderSize(version)
		if err != nil {
			return frd.EventView{}, err
		}
		size = n
		s.buf.Grow(size)
		b := s.buf.Bytes(size)
		copy(b, tag[:])
		if err := s.readFull(b[frd.VersionTagSize:]); err != nil {
			return frd.EventView{}, err
		}
		s.version = version
		s.logger.Info("detected event header version", ports.Uint16("version", version), ports.Int("header_size", size))
	} else {
		size, _ = frd.EventHeaderSize(s.version)
		s.buf.Grow(size)
		if err := s.readFull(s.buf.Bytes(size)); err != nil {
			return frd.EventView{}, err
		}
		if v := frd.EventVersion(s.buf.Bytes(size)); v != s.version {
			return frd.EventView{}, fmt.Errorf("%w: record has v%d in a v%d stream", frd.ErrUnsupportedHeaderVersion, v, s.version)
		}
	}

	view, err := frd.NewEventView(s.buf.Bytes(size))
	if err != nil {
		return frd.EventView{}, err
	}

	total := int(view.TotalSize())
	if total > size {
		s.buf.Grow(total)
		if err := s.readFull(s.buf.Bytes(total)[size:]); err != nil {
			return frd.EventView{}, err
		}
		// The buffer may have moved; rebuild the view over the whole record.
		if view, err = frd.NewEventView(s.buf.Bytes(total)); err != nil {
			return frd.EventView{}, err
		}
	}
	return view, nil
}

// readFull fills p from the current file. A short read is a truncated record.
func (s *StreamReader) readFull(p []byte) error {
	n, err := io.ReadFull(s.r, p)
	s.offset += int64(n)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: wanted %d bytes, got %d", frd.ErrTruncatedRecord, len(p), n)
	}
	return err
}

// openCurrent opens files[idx].
func (s *StreamReader) openCurrent() error {
	name := s.files[s.idx]
	path, err := filePath(name)
	if err != nil {
		return fmt.Errorf("%w %s: %v", domain.ErrFileOpen, name, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w %s: %v", domain.ErrFileOpen, name, err)
	}
	s.f = f
	if s.r == nil {
		s.r = bufio.NewReaderSize(f, readBufferSize)
	} else {
		s.r.Reset(f)
	}
	s.offset = 0
	s.records = 0
	s.probe = true
	s.logger.Info("open file", ports.String("path", name), ports.Int("index", s.idx))
	return nil
}

// finishFile closes the current file and moves to the next one.
func (s *StreamReader) finishFile() {
	summary := domain.FileSummary{Path: s.files[s.idx], Index: s.idx, Records: s.records, Bytes: s.offset}
	s.logger.Debug("file done",
		ports.String("path", summary.Path),
		ports.Int("records", summary.Records),
		ports.Int64("bytes", summary.Bytes),
	)
	_ = s.f.Close()
	s.f = nil
	s.idx++
	if s.onFile != nil {
		s.onFile(summary)
	}
}

// Position returns the current read position.
func (s *StreamReader) Position() domain.Position {
	p := domain.Position{FileIndex: s.idx, Offset: s.offset, Records: s.records, Version: s.version}
	if s.idx < len(s.files) {
		p.Path = s.files[s.idx]
	}
	return p
}

// Close releases the current file. Further reads fail with ErrSourceClosed.
func (s *StreamReader) Close() error {
	s.closed = true
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}

func (s *StreamReader) wrap(err error) error {
	name := ""
	if s.idx < len(s.files) {
		name = s.files[s.idx]
	}
	return fmt.Errorf("%s at offset %d: %w", name, s.offset, err)
}

// filePath strips an optional "file:" scheme. Any other scheme is rejected.
// Single-letter prefixes are treated as Windows drive letters.
func filePath(name string) (string, error) {
	i := strings.IndexByte(name, ':')
	if i < 0 || i == 1 {
		return name, nil
	}
	if name[:i] != "file" {
		return "", fmt.Errorf("%w %q", ErrUnsupportedScheme, name[:i])
	}
	return name[i+1:], nil
}
