// Package player advances the player pose through a level.Map once per
// fixed simulation tick: turning, walking, collide-and-slide against solid
// edges and sector transitions through passable portals.
package player

import (
	"math"

	"sector-renderer/internal/input"
	"sector-renderer/internal/level"
	"sector-renderer/internal/mathutil"
)

const (
	DefaultRadius   = 0.25
	DefaultHeight   = 1.6
	DefaultSpeed    = 3.0 // units per second
	DefaultTurnRate = 1.6 // radians per second
)

// Tuning holds the per-player movement rates.
type Tuning struct {
	Speed    float64
	TurnRate float64
}

// DefaultTuning returns the stock movement rates.
func DefaultTuning() Tuning {
	return Tuning{Speed: DefaultSpeed, TurnRate: DefaultTurnRate}
}

// Player is the simulated pose. Radius and Height are fixed after spawn.
type Player struct {
	Pos    mathutil.Vec2
	Yaw    float64
	Radius float64
	Height float64
	Sector int
	Tuning Tuning
}

// New spawns a player with default size and tuning.
func New(spawn mathutil.Vec2, sector int) *Player {
	return &Player{
		Pos:    spawn,
		Radius: DefaultRadius,
		Height: DefaultHeight,
		Sector: sector,
		Tuning: DefaultTuning(),
	}
}

// Forward is the unit facing direction on the ground plane. Yaw 0 faces -Y.
func (p *Player) Forward() mathutil.Vec2 {
	return mathutil.V2(math.Sin(p.Yaw), -math.Cos(p.Yaw))
}

// Right is Forward rotated a quarter turn clockwise.
func (p *Player) Right() mathutil.Vec2 {
	return mathutil.V2(math.Cos(p.Yaw), math.Sin(p.Yaw))
}

// EyeHeight is the world height of the top of the player: the current
// sector's floor plus Height.
func (p *Player) EyeHeight(m *level.Map) float64 {
	return m.Sector(p.Sector).FloorH + p.Height
}

// Update advances the player by one tick of length dt. The map is only
// read. Sector indices are trusted; a malformed map is the caller's bug.
func (p *Player) Update(m *level.Map, in input.Intent, dt float64) {
	if in.TurnLeft {
		p.Yaw += dt * p.Tuning.TurnRate
	}
	if in.TurnRight {
		p.Yaw -= dt * p.Tuning.TurnRate
	}

	f := p.Forward()
	r := p.Right()

	var wish mathutil.Vec2
	if in.Forward {
		wish = wish.Add(f)
	}
	if in.Back {
		wish = wish.Sub(f)
	}
	if in.StrafeRight {
		wish = wish.Add(r)
	}
	if in.StrafeLeft {
		wish = wish.Sub(r)
	}
	if l := wish.Len(); l > 1e-4 {
		wish = wish.Scale(1 / l)
	}

	oldPos := p.Pos
	candidate := p.Pos.Add(wish.Scale(p.Tuning.Speed * dt))

	p.Pos = p.collideAndSlide(m, oldPos, candidate)
	p.updateSector(m, oldPos, p.Pos)
}

// Solid reports whether line i blocks this player from its current sector.
func (p *Player) Solid(m *level.Map, i int) bool {
	b := m.Boundary(i, p.Sector)
	if b.Kind == level.Solid {
		return true
	}
	return !m.PortalPassable(i, p.Height)
}
