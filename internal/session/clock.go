package session

const (
	DefaultStep     = 1.0 / 60.0
	DefaultMaxFrame = 0.25
)

// FixedStep turns variable frame times into a whole number of fixed
// simulation ticks. Frame times above MaxFrame are clamped so a long stall
// cannot queue an unbounded number of ticks.
type FixedStep struct {
	Step     float64
	MaxFrame float64
	acc      float64
}

// NewFixedStep returns a clock with the given tick length and frame clamp.
// Non-positive values fall back to the defaults.
func NewFixedStep(step, maxFrame float64) *FixedStep {
	if step <= 0 {
		step = DefaultStep
	}
	if maxFrame <= 0 {
		maxFrame = DefaultMaxFrame
	}
	return &FixedStep{Step: step, MaxFrame: maxFrame}
}

// Advance adds one frame's elapsed time and returns how many ticks to run.
func (f *FixedStep) Advance(frameDt float64) int {
	if frameDt < 0 {
		frameDt = 0
	}
	if frameDt > f.MaxFrame {
		frameDt = f.MaxFrame
	}
	f.acc += frameDt

	n := 0
	for f.acc >= f.Step {
		f.acc -= f.Step
		n++
	}
	return n
}

// Alpha is the fraction of a tick left in the accumulator, in [0,1).
func (f *FixedStep) Alpha() float64 {
	return f.acc / f.Step
}

// Reset drops any accumulated time.
func (f *FixedStep) Reset() {
	f.acc = 0
}
