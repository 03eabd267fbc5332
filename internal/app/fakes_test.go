package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bft-labs/frdsource/internal/domain"
	"github.com/bft-labs/frdsource/pkg/frd"
)

// fakeReader serves pre-encoded records and then ErrEndOfInput, or err.
type fakeReader struct {
	records [][]byte
	err     error // returned after the records instead of ErrEndOfInput
	openErr error

	i      int
	opened bool
	closed bool
}

func (r *fakeReader) Open(ctx context.Context) error {
	r.opened = true
	return r.openErr
}

func (r *fakeReader) Next(ctx context.Context) (frd.EventView, error) {
	if r.i >= len(r.records) {
		if r.err != nil {
			return frd.EventView{}, r.err
		}
		return frd.EventView{}, domain.ErrEndOfInput
	}
	rec := r.records[r.i]
	r.i++
	return frd.NewEventView(rec)
}

func (r *fakeReader) Position() domain.Position {
	return domain.Position{Records: r.i}
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func newFakeReader(t *testing.T, version uint16, first uint64, n, payloadBytes int) *fakeReader {
	t.Helper()
	r := &fakeReader{}
	for i := 0; i < n; i++ {
		p := make([]byte, payloadBytes)
		for j := range p {
			p[j] = byte(i + j)
		}
		rec, err := frd.AppendEvent(nil, frd.Event{Version: version, Run: 42, Lumi: 7, Event: first + uint64(i), Payload: p})
		if err != nil {
			t.Fatalf("AppendEvent: %v", err)
		}
		r.records = append(r.records, rec)
	}
	return r
}

// memorySink collects written collections.
type memorySink struct {
	mu      sync.Mutex
	written []*domain.Collection
	err     error
	closed  bool
}

func (s *memorySink) Write(ctx context.Context, c *domain.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.written = append(s.written, c)
	return nil
}

func (s *memorySink) Close() error {
	s.closed = true
	return nil
}

// memoryRepo keeps the last saved progress.
type memoryRepo struct {
	saved []domain.Progress
	load  domain.Progress
}

func (r *memoryRepo) Load(ctx context.Context) (domain.Progress, error) {
	return r.load, nil
}

func (r *memoryRepo) Save(ctx context.Context, p domain.Progress) error {
	r.saved = append(r.saved, p)
	return nil
}

func (r *memoryRepo) last() domain.Progress {
	if len(r.saved) == 0 {
		return domain.Progress{}
	}
	return r.saved[len(r.saved)-1]
}

// recordingObserver tracks state change events for testing.
type recordingObserver struct {
	events []stateChangeEvent
}

type stateChangeEvent struct {
	previous State
	current  State
}

func (o *recordingObserver) OnStateChange(previous, current State, reason string) {
	o.events = append(o.events, stateChangeEvent{previous, current})
}

var errDisk = errors.New("disk on fire")
