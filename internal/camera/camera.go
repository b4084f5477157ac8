// Package camera builds the per-frame view and projection matrices from the
// player pose. Matrices are column-major (see mathutil.Mat4).
package camera

import (
	"math"

	"sector-renderer/internal/level"
	"sector-renderer/internal/mathutil"
	"sector-renderer/internal/player"
)

// Camera is a yaw-only perspective camera.
type Camera struct {
	Pos  mathutil.Vec3
	Yaw  float64
	FovY float64 // radians
	Near float64
	Far  float64
}

// New returns a camera with a 60° vertical field of view.
func New() *Camera {
	return &Camera{
		Pos:  mathutil.Vec3{0, 1.6, 2},
		FovY: mathutil.Deg2Rad(60),
		Near: 0.05,
		Far:  2000,
	}
}

// Forward is the viewing direction. It matches player.Forward lifted to 3D:
// map Y is world Z.
func (c *Camera) Forward() mathutil.Vec3 {
	return mathutil.Vec3{math.Sin(c.Yaw), 0, -math.Cos(c.Yaw)}
}

func (c *Camera) View() mathutil.Mat4 {
	forward := c.Forward()
	up := mathutil.Vec3{0, 1, 0}
	right := forward.Cross(up).Normalize()
	return mathutil.FromBasis(right, up, forward, c.Pos)
}

func (c *Camera) Proj(aspect float64) mathutil.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mathutil.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProj is Proj × View.
func (c *Camera) ViewProj(aspect float64) mathutil.Mat4 {
	return mathutil.Mat4Mul(c.Proj(aspect), c.View())
}

// Follow places the eye at the player's position, at the top of the player
// above the current sector floor, looking along the player's yaw.
func (c *Camera) Follow(p *player.Player, m *level.Map) {
	c.Pos = mathutil.Vec3{p.Pos[0], p.EyeHeight(m), p.Pos[1]}
	c.Yaw = p.Yaw
}
