package format

import (
	"sync"
	"time"
)

// ProgressWithETA tracks completion of a fixed number of tasks and estimates
// the time remaining from the average task rate so far. It is safe for
// concurrent use.
type ProgressWithETA struct {
	mu    sync.Mutex
	total int
	done  int
	start time.Time
	now   func() time.Time
}

// NewProgressWithETA starts tracking total tasks.
func NewProgressWithETA(total int) *ProgressWithETA {
	return &ProgressWithETA{total: total, start: time.Now(), now: time.Now}
}

// Advance marks one more task as done and returns the completed fraction and
// the estimated time remaining.
func (p *ProgressWithETA) Advance() (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done < p.total {
		p.done++
	}
	return p.snapshot()
}

// Snapshot returns the current fraction and ETA without advancing.
func (p *ProgressWithETA) Snapshot() (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot()
}

func (p *ProgressWithETA) snapshot() (float64, time.Duration) {
	if p.total <= 0 {
		return 1, 0
	}
	fraction := float64(p.done) / float64(p.total)
	if p.done == 0 || p.done == p.total {
		return fraction, 0
	}
	elapsed := p.now().Sub(p.start)
	perTask := elapsed / time.Duration(p.done)
	return fraction, perTask * time.Duration(p.total-p.done)
}
