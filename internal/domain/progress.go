package domain

import "time"

// Progress records how far a conversion has got. It is saved after every
// completed input file and when the conversion ends.
type Progress struct {
	Files     []FileSummary     `json:"files"`
	Events    uint64            `json:"events"`
	LastEvent EventID           `json:"last_event"`
	FEDBytes  map[uint16]uint64 `json:"fed_bytes"`
	StartedAt time.Time         `json:"started_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Finished  bool              `json:"finished"`
	LastError string            `json:"last_error,omitempty"`
}

// IsEmpty returns true if no conversion has been recorded.
func (p Progress) IsEmpty() bool {
	return p.StartedAt.IsZero()
}

// RecordEvent accounts for one emitted collection.
func (p *Progress) RecordEvent(c *Collection) {
	if p.FEDBytes == nil {
		p.FEDBytes = make(map[uint16]uint64)
	}
	p.Events++
	p.LastEvent = c.ID
	for _, id := range c.FEDIDs() {
		f, _ := c.Frame(id)
		p.FEDBytes[id] += uint64(len(f))
	}
	p.UpdatedAt = time.Now()
}

// RecordFile appends a completed file.
func (p *Progress) RecordFile(s FileSummary) {
	p.Files = append(p.Files, s)
	p.UpdatedAt = time.Now()
}

// Finish marks the conversion as ended, with err if it failed.
func (p *Progress) Finish(err error) {
	p.Finished = true
	if err != nil {
		p.LastError = err.Error()
	}
	p.UpdatedAt = time.Now()
}
