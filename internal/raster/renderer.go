package raster

import (
	"image"

	"sector-renderer/internal/mathutil"
	"sector-renderer/internal/mesh"
)

// DrawMesh draws a flat triangle list into fb through the combined
// view-projection matrix vp. Trailing vertices that do not form a whole
// triangle are ignored.
func DrawMesh(fb *FrameBuffer, verts []mesh.Vertex, vp mathutil.Mat4, sh *Shading) {
	if sh == nil {
		d := DefaultShading()
		sh = &d
	}

	noise := sh.newGrain()

	var tri [3]clipVertex
	var clipped [8]clipVertex
	for i := 0; i+2 < len(verts); i += 3 {
		for k := 0; k < 3; k++ {
			tri[k] = toClip(verts[i+k], vp)
		}

		poly := clipNear(tri[:], clipped[:0])
		if len(poly) < 3 {
			continue
		}

		surf := mesh.SurfaceOf(verts[i].Color)
		s0 := toScreen(poly[0], fb.Width, fb.Height)
		for k := 1; k+1 < len(poly); k++ {
			s1 := toScreen(poly[k], fb.Width, fb.Height)
			s2 := toScreen(poly[k+1], fb.Width, fb.Height)
			rasterizeTriangle(fb, s0, s1, s2, surf, sh, noise)
		}
	}
}

func toClip(v mesh.Vertex, vp mathutil.Mat4) clipVertex {
	c := vp.MulVec4(float64(v.Pos[0]), float64(v.Pos[1]), float64(v.Pos[2]), 1)
	l := float64(v.Light)
	return clipVertex{
		x: c[0],
		y: c[1],
		z: c[2],
		w: c[3],
		r: float64(v.Color[0]) * l,
		g: float64(v.Color[1]) * l,
		b: float64(v.Color[2]) * l,
		u: float64(v.UV[0]),
		v: float64(v.UV[1]),
	}
}

// RenderScene draws the sector and wall meshes into a fresh w×h image.
func RenderScene(sectors, walls []mesh.Vertex, vp mathutil.Mat4, w, h int, sh *Shading) *image.NRGBA {
	fb := NewFrameBuffer(w, h)
	DrawMesh(fb, sectors, vp, sh)
	DrawMesh(fb, walls, vp, sh)
	return fb.Image()
}
