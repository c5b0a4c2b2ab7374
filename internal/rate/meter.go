// Package rate turns cumulative counter snapshots into per-second rates.
package rate

import (
	"sync"
	"time"

	"github.com/kostyay/basementhq/internal/model"
)

// MinElapsed is the smallest interval used as a divisor. Samples taken
// closer together than this are treated as MinElapsed apart.
const MinElapsed = 100 * time.Millisecond

// Meter tracks one monotonic counter pair and converts successive
// snapshots into byte rates. The zero value is ready to use.
type Meter struct {
	mu   sync.Mutex
	prev *model.CounterSnapshot
}

// NewMeter returns a meter with no baseline.
func NewMeter() *Meter {
	return &Meter{}
}

// Sample records current and returns the receive and send rates in bytes
// per second since the previous snapshot. The first sample only stores the
// baseline and returns (0, 0).
//
// A counter that went backwards (interface reset) yields a negative rate.
func (m *Meter) Sample(current model.CounterSnapshot) (down, up float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.prev
	snap := current
	m.prev = &snap

	if prev == nil {
		return 0, 0
	}

	elapsed := current.TakenAt.Sub(prev.TakenAt)
	if elapsed < MinElapsed {
		elapsed = MinElapsed
	}
	secs := elapsed.Seconds()

	// Wrapping subtraction reinterpreted as signed gives the true delta,
	// negative on reset.
	recvDelta := int64(current.BytesRecv - prev.BytesRecv)
	sentDelta := int64(current.BytesSent - prev.BytesSent)

	return float64(recvDelta) / secs, float64(sentDelta) / secs
}

// Baseline returns the last stored snapshot, if any.
func (m *Meter) Baseline() (model.CounterSnapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.prev == nil {
		return model.CounterSnapshot{}, false
	}
	return *m.prev, true
}

// Reset forgets the baseline so the next Sample starts over.
func (m *Meter) Reset() {
	m.mu.Lock()
	m.prev = nil
	m.mu.Unlock()
}
