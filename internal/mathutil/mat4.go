package mathutil

import "math"

// Mat4 is a 4×4 matrix stored column-major: element (row r, col c) is m[c*4+r].
// This is the layout the GPU side expects for uniform upload.
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Mul returns a × b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			m[c*4+r] = a[0*4+r]*b[c*4+0] + a[1*4+r]*b[c*4+1] +
				a[2*4+r]*b[c*4+2] + a[3*4+r]*b[c*4+3]
		}
	}
	return m
}

// At returns the element at row r, column c.
func (m Mat4) At(r, c int) float64 {
	return m[c*4+r]
}

// MulVec4 returns M × (x, y, z, w).
func (m Mat4) MulVec4(x, y, z, w float64) [4]float64 {
	return [4]float64{
		m[0]*x + m[4]*y + m[8]*z + m[12]*w,
		m[1]*x + m[5]*y + m[9]*z + m[13]*w,
		m[2]*x + m[6]*y + m[10]*z + m[14]*w,
		m[3]*x + m[7]*y + m[11]*z + m[15]*w,
	}
}

// MulPoint transforms a 3D point (w=1) and drops w.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	r := m.MulVec4(v[0], v[1], v[2], 1)
	return Vec3{r[0], r[1], r[2]}
}

// Float32 converts to the float32 layout used for uniform upload.
func (m Mat4) Float32() [16]float32 {
	var out [16]float32
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}

func Translate(t Vec3) Mat4 {
	m := Mat4Identity()
	m[12] = t[0]
	m[13] = t[1]
	m[14] = t[2]
	return m
}

// RotY4 returns a rotation of a radians about +Y.
func RotY4(a float64) Mat4 {
	m := Mat4Identity()
	c, s := math.Cos(a), math.Sin(a)
	m[0] = c
	m[2] = -s
	m[8] = s
	m[10] = c
	return m
}

// Perspective builds a right-handed projection mapping view depth
// [-near, -far] to clip z in [-w, w].
func Perspective(fovY, aspect, near, far float64) Mat4 {
	var m Mat4
	f := 1 / math.Tan(fovY*0.5)
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / (near - far)
	m[11] = -1
	m[14] = (2 * far * near) / (near - far)
	return m
}

// FromBasis builds a view matrix from an orthonormal camera basis.
// The camera looks down forward; rows are right, up and -forward.
func FromBasis(right, up, forward, pos Vec3) Mat4 {
	m := Mat4Identity()
	m[0], m[4], m[8] = right[0], right[1], right[2]
	m[1], m[5], m[9] = up[0], up[1], up[2]
	m[2], m[6], m[10] = -forward[0], -forward[1], -forward[2]
	m[12] = -right.Dot(pos)
	m[13] = -up.Dot(pos)
	m[14] = forward.Dot(pos)
	return m
}

// LookAt builds a view matrix for an eye looking at center.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)
	return FromBasis(s, u, f, eye)
}

// IsIdentity checks if the matrix is approximately identity.
func (m Mat4) IsIdentity() bool {
	id := Mat4Identity()
	for i := 0; i < 16; i++ {
		d := m[i] - id[i]
		if d > 1e-8 || d < -1e-8 {
			return false
		}
	}
	return true
}
