package raster

// clipVertex is a vertex in clip space with the attributes that get
// interpolated across a triangle.
type clipVertex struct {
	x, y, z, w float64
	r, g, b    float64
	u, v       float64
}

func lerpClip(a, b clipVertex, t float64) clipVertex {
	l := func(p, q float64) float64 { return p + (q-p)*t }
	return clipVertex{
		x: l(a.x, b.x), y: l(a.y, b.y), z: l(a.z, b.z), w: l(a.w, b.w),
		r: l(a.r, b.r), g: l(a.g, b.g), b: l(a.b, b.b),
		u: l(a.u, b.u), v: l(a.v, b.v),
	}
}

// clipNear clips a convex polygon against the near plane z >= -w
// (Sutherland-Hodgman) and appends the result to out[:0]. A triangle
// yields zero, three or four vertices.
func clipNear(in []clipVertex, out []clipVertex) []clipVertex {
	out = out[:0]
	n := len(in)
	for i := 0; i < n; i++ {
		a := in[i]
		b := in[(i+1)%n]
		da := a.z + a.w
		db := b.z + b.w

		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			out = append(out, lerpClip(a, b, da/(da-db)))
		}
	}
	return out
}
