package domain

import (
	"fmt"
	"sort"
)

// EventID identifies one event.
type EventID struct {
	Run   uint32 `json:"run"`
	Lumi  uint32 `json:"lumi"`
	Event uint64 `json:"event"`
}

func (id EventID) String() string {
	return fmt.Sprintf("%d:%d:%d", id.Run, id.Lumi, id.Event)
}

// Collection holds the FED frames built for one event. It is created fresh
// for every event; the receiver of Emit owns it.
type Collection struct {
	ID     EventID
	frames map[uint16][]byte
}

// NewCollection returns an empty collection for id.
func NewCollection(id EventID) *Collection {
	return &Collection{ID: id, frames: make(map[uint16][]byte, 2)}
}

// Put stores the frame for fedID, replacing any previous one.
func (c *Collection) Put(fedID uint16, frame []byte) {
	c.frames[fedID] = frame
}

// Frame returns the frame stored for fedID.
func (c *Collection) Frame(fedID uint16) ([]byte, bool) {
	f, ok := c.frames[fedID]
	return f, ok
}

// FEDIDs returns the ids present, in ascending order.
func (c *Collection) FEDIDs() []uint16 {
	ids := make([]uint16, 0, len(c.frames))
	for id := range c.frames {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of frames.
func (c *Collection) Len() int { return len(c.frames) }

// Size returns the total frame bytes.
func (c *Collection) Size() int {
	var n int
	for _, f := range c.frames {
		n += len(f)
	}
	return n
}
