// Package inflight keeps a live view of conversions currently being served.
package inflight

import (
	"sort"
	"sync"
	"time"
)

// Stage is the point a conversion request has reached.
type Stage string

const (
	StageReceived   Stage = "received"
	StageQueued     Stage = "queued"
	StagePrepared   Stage = "prepared"
	StageConverting Stage = "converting"
	StagePackaging  Stage = "packaging"
	StageStreaming  Stage = "streaming"
)

// Conversion is a snapshot of one in-flight request.
type Conversion struct {
	ID         string    `json:"id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	FileName   string    `json:"file_name,omitempty"`
	Stage      Stage     `json:"stage"`
	StartTime  time.Time `json:"start_time"`
	LastUpdate time.Time `json:"last_update"`
}

// Tracker records conversions between Start and End. It is safe for
// concurrent use.
type Tracker struct {
	mu     sync.RWMutex
	active map[string]*Conversion
	now    func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{active: make(map[string]*Conversion), now: time.Now}
}

// Start registers a new conversion in the received stage.
func (t *Tracker) Start(id, from, to string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.active[id] = &Conversion{
		ID:         id,
		From:       from,
		To:         to,
		Stage:      StageReceived,
		StartTime:  now,
		LastUpdate: now,
	}
}

// Advance moves a conversion to stage. Unknown ids are ignored.
func (t *Tracker) Advance(id string, stage Stage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if c, ok := t.active[id]; ok {
		c.Stage = stage
		c.LastUpdate = t.now()
	}
}

// SetFileName records the client-supplied name once the upload is parsed.
func (t *Tracker) SetFileName(id, name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if c, ok := t.active[id]; ok {
		c.FileName = name
	}
}

// End removes a conversion.
func (t *Tracker) End(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.active, id)
}

func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.active)
}

// Snapshot returns copies of all active conversions, oldest first.
func (t *Tracker) Snapshot() []Conversion {
	t.mu.RLock()
	out := make([]Conversion, 0, len(t.active))
	for _, c := range t.active {
		out = append(out, *c)
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}
