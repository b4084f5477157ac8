// Package input supplies per-tick movement intents. The simulation never
// reads device state; it only sees Intent snapshots.
package input

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownIntent is returned for an intent name ParseIntent does not know.
var ErrUnknownIntent = errors.New("input: unknown intent")

// Intent is one tick's snapshot of discrete movement requests.
type Intent struct {
	TurnLeft    bool
	TurnRight   bool
	Forward     bool
	Back        bool
	StrafeLeft  bool
	StrafeRight bool
}

// Idle reports whether no intent is set.
func (in Intent) Idle() bool {
	return in == Intent{}
}

var intentNames = map[string]func(*Intent){
	"turn_left":    func(in *Intent) { in.TurnLeft = true },
	"turn_right":   func(in *Intent) { in.TurnRight = true },
	"forward":      func(in *Intent) { in.Forward = true },
	"back":         func(in *Intent) { in.Back = true },
	"strafe_left":  func(in *Intent) { in.StrafeLeft = true },
	"strafe_right": func(in *Intent) { in.StrafeRight = true },
}

// ParseIntent builds an Intent from names such as "forward" or "turn_left".
// Names are case-insensitive; "-" and "_" are interchangeable.
func ParseIntent(names []string) (Intent, error) {
	var in Intent
	for _, n := range names {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(n)), "-", "_")
		set, ok := intentNames[key]
		if !ok {
			return Intent{}, fmt.Errorf("%w: %q", ErrUnknownIntent, n)
		}
		set(&in)
	}
	return in, nil
}

// Names returns the set intent names in sorted order.
func (in Intent) Names() []string {
	var out []string
	for name, set := range intentNames {
		var probe Intent
		set(&probe)
		if in.covers(probe) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func (in Intent) covers(p Intent) bool {
	return (!p.TurnLeft || in.TurnLeft) && (!p.TurnRight || in.TurnRight) &&
		(!p.Forward || in.Forward) && (!p.Back || in.Back) &&
		(!p.StrafeLeft || in.StrafeLeft) && (!p.StrafeRight || in.StrafeRight)
}

func (in Intent) String() string {
	if in.Idle() {
		return "idle"
	}
	return strings.Join(in.Names(), "+")
}
