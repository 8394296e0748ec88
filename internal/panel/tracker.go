package panel

import (
	"log/slog"

	"github.com/itsmostafa/chartpanel/internal/metrics"
)

// ReleaseFunc releases resources held by one script execution.
type ReleaseFunc func()

// Tracker holds the release callback of the latest execution. Every adopted
// callback is invoked exactly once: when it is replaced or on Release.
type Tracker struct {
	release ReleaseFunc
	logger  *slog.Logger
}

// NewTracker creates an empty tracker.
func NewTracker(logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{logger: logger}
}

// Adopt releases the held callback, then holds fn. fn may be nil.
func (t *Tracker) Adopt(fn ReleaseFunc) {
	t.Release()
	t.release = fn
}

// Release invokes and forgets the held callback, if any.
func (t *Tracker) Release() {
	fn := t.release
	t.release = nil
	if fn == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			t.logger.Warn("release callback panicked", "panic", r)
		}
	}()

	metrics.Releases.Inc()
	fn()
}

// Held reports whether a callback is waiting to be released.
func (t *Tracker) Held() bool {
	return t.release != nil
}
