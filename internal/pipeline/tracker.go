package pipeline

import (
	"sync"

	"github.com/reliefmap/relief/internal/model"
)

// Tracker implements the cancelled-if-stale discipline for callers that
// re-run the pipeline as their input changes. The computation itself is not
// interruptible; the tracker only tells the caller whether an arriving
// result still matches the current target, so a superseded computation can
// be discarded without corrupting state.
type Tracker struct {
	mu     sync.Mutex
	target string
}

// NewTracker creates an empty tracker with no current target.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin records the fingerprint of the input the caller now cares about.
// Results for any earlier fingerprint become stale immediately, even if
// their computation is still running.
func (t *Tracker) Begin(fingerprint string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.target = fingerprint
}

// Accept reports whether a result matches the current target. A false
// return means the result is stale and must be discarded.
func (t *Tracker) Accept(result *model.StructuralAnalysis) bool {
	if result == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target != "" && result.Fingerprint == t.target
}
