package clock

import "time"

// targetFrameInterval is the nominal 60fps frame time that all motion is
// scaled against.
const targetFrameInterval = time.Second / 60

// maxFrameDelta is the largest delta treated as a real frame. Anything above
// it is a tab-suspend resume or clock glitch and the frame is voided.
const maxFrameDelta = 500 * time.Millisecond

// fpsWindow is the number of samples in the rolling FPS average.
const fpsWindow = 30

// Frame describes one valid display refresh.
type Frame struct {
	DT time.Duration

	// Factor is DT divided by the nominal 60fps interval, so motion scaled
	// by it stays constant across displays refreshing at different rates.
	Factor float64
}

// Clock measures elapsed real time between display refreshes and maintains a
// rolling FPS window for the diagnostic overlay. The window is read-only
// instrumentation and never feeds back into simulation.
type Clock struct {
	last    time.Time
	started bool

	samples [fpsWindow]float64
	next    int
	filled  int
}

// New returns a Clock that voids its first frame (there is no previous
// refresh to measure against).
func New() *Clock {
	return &Clock{}
}

// Tick records a display refresh at now. It returns ok=false for void frames:
// the first frame, a non-positive delta, or a delta above 500ms. The caller
// skips all simulation for a void frame but keeps the loop running.
func (c *Clock) Tick(now time.Time) (Frame, bool) {
	if !c.started {
		c.started = true
		c.last = now
		return Frame{}, false
	}

	dt := now.Sub(c.last)
	c.last = now

	if dt <= 0 || dt > maxFrameDelta {
		return Frame{}, false
	}

	c.samples[c.next] = float64(time.Second) / float64(dt)
	c.next = (c.next + 1) % fpsWindow
	if c.filled < fpsWindow {
		c.filled++
	}

	return Frame{
		DT:     dt,
		Factor: float64(dt) / float64(targetFrameInterval),
	}, true
}

// FPS returns the rolling average frame rate, or zero before the first valid
// frame.
func (c *Clock) FPS() float64 {
	if c.filled == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < c.filled; i++ {
		sum += c.samples[i]
	}
	return sum / float64(c.filled)
}
