package input

import "fmt"

// Step holds a set of intents for a duration. It is the unit of a scripted
// walk in the config file.
type Step struct {
	Intents []string `json:"intents" yaml:"intents"`
	Seconds float64  `json:"seconds" yaml:"seconds"`
}

// Timeline is a parsed script: intents keyed by simulation time.
type Timeline struct {
	steps []timedIntent
	total float64
}

type timedIntent struct {
	end    float64
	intent Intent
}

// NewTimeline parses every step. Steps with a non-positive duration are
// rejected.
func NewTimeline(steps []Step) (*Timeline, error) {
	tl := &Timeline{}
	for i, s := range steps {
		if s.Seconds <= 0 {
			return nil, fmt.Errorf("input: step %d: duration %.3f must be positive", i, s.Seconds)
		}
		in, err := ParseIntent(s.Intents)
		if err != nil {
			return nil, fmt.Errorf("input: step %d: %w", i, err)
		}
		tl.total += s.Seconds
		tl.steps = append(tl.steps, timedIntent{end: tl.total, intent: in})
	}
	return tl, nil
}

// Duration is the total scripted time in seconds.
func (tl *Timeline) Duration() float64 {
	if tl == nil {
		return 0
	}
	return tl.total
}

// At returns the intent active at time t. Before 0 and after the end the
// timeline is idle.
func (tl *Timeline) At(t float64) Intent {
	if tl == nil || t < 0 {
		return Intent{}
	}
	for _, s := range tl.steps {
		if t < s.end {
			return s.intent
		}
	}
	return Intent{}
}
