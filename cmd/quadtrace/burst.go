package main

import "time"

// burstTracker tracks recent detents to find fast spinning in a capture.
//
// Times are capture-relative (derived from the sample index and rate), so
// the result does not depend on how fast the replay runs.
type burstTracker struct {
	window time.Duration
	recent []detentAt
	peak   int
}

// detentAt records a single detent
type detentAt struct {
	at        time.Duration
	direction int // +1 clockwise, -1 counter-clockwise
}

func newBurstTracker(window time.Duration) *burstTracker {
	return &burstTracker{
		window: window,
		recent: make([]detentAt, 0, 16),
	}
}

// add records a detent and returns the count of detents in the same
// direction within the window ending at at (including this one).
func (b *burstTracker) add(at time.Duration, direction int) int {
	cutoff := at - b.window

	// Remove old detents outside the window
	filtered := b.recent[:0]
	for _, d := range b.recent {
		if d.at > cutoff {
			filtered = append(filtered, d)
		}
	}

	filtered = append(filtered, detentAt{at: at, direction: direction})
	b.recent = filtered

	sameDir := 0
	for _, d := range filtered {
		if d.direction == direction {
			sameDir++
		}
	}

	if sameDir > b.peak {
		b.peak = sameDir
	}
	return sameDir
}

// reset forgets recent detents at a segment boundary. The peak is kept.
func (b *burstTracker) reset() {
	b.recent = b.recent[:0]
}
