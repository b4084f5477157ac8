package mathutil

import "math"

// Vec2 is a point or direction on the ground plane (value type).
// Index 0 is world X, index 1 is world Z (map "Y").
type Vec2 [2]float64

func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

func (a Vec2) X() float64 { return a[0] }
func (a Vec2) Y() float64 { return a[1] }

func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a[0] + b[0], a[1] + b[1]}
}

func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a[0] - b[0], a[1] - b[1]}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v[0] * s, v[1] * s}
}

func (a Vec2) Dot(b Vec2) float64 {
	return a[0]*b[0] + a[1]*b[1]
}

// Cross returns the z component of the 3D cross product of a and b.
func (a Vec2) Cross(b Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

func (v Vec2) Len2() float64 {
	return v.Dot(v)
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v.Len2())
}

// Normalize returns the unit vector, or the zero vector when |v| <= 1e-6.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l <= 1e-6 {
		return Vec2{}
	}
	return Vec2{v[0] / l, v[1] / l}
}

// PerpLeft rotates v by +90°.
func (v Vec2) PerpLeft() Vec2 {
	return Vec2{-v[1], v[0]}
}

// Dist returns the Euclidean distance between a and b.
func (a Vec2) Dist(b Vec2) float64 {
	return math.Hypot(b[0]-a[0], b[1]-a[1])
}
