package raster

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Shading holds the per-pixel color parameters.
type Shading struct {
	Checker  float64 // brightness of the dark pattern cells, 1 disables the pattern
	Exposure float64
	ToneMap  bool    // ACES filmic curve after exposure
	Fog      float64 // exponential fog density per unit of view depth, 0 disables
	Grain    float64 // amplitude of Perlin grain over the pattern, 0 disables
	Seed     int64
}

// DefaultShading returns plain vertex color times light with a mild
// checker pattern.
func DefaultShading() Shading {
	return Shading{
		Checker:  0.8,
		Exposure: 1.0,
	}
}

// Perlin parameters: smoothing, frequency, octaves.
const (
	grainAlpha   = 2.0
	grainBeta    = 2.0
	grainOctaves = 3
	grainScale   = 4.0 // noise cells per world unit
)

// newGrain returns the noise source for s, or nil when grain is off. The
// generator is only read after construction, so one per draw call is
// enough.
func (s *Shading) newGrain() *perlin.Perlin {
	if s.Grain <= 0 {
		return nil
	}
	return perlin.NewPerlin(grainAlpha, grainBeta, grainOctaves, s.Seed)
}

// grain scales pattern by the noise at (u, v).
func (s *Shading) grain(noise *perlin.Perlin, pattern, u, v float64) float64 {
	if noise == nil {
		return pattern
	}
	return pattern * (1 + s.Grain*noise.Noise2D(u*grainScale, v*grainScale))
}

// shade turns a lit base color into a final 8-bit pixel. depth is the view
// space distance along the camera axis.
func (s *Shading) shade(r, g, b, pattern, depth float64, bg [3]uint8) (uint8, uint8, uint8) {
	k := pattern * s.Exposure
	r, g, b = r*k, g*k, b*k
	if s.ToneMap {
		r, g, b = ACESTonemap(r), ACESTonemap(g), ACESTonemap(b)
	}
	r, g, b = r*255, g*255, b*255
	if s.Fog > 0 {
		f := math.Exp(-s.Fog * depth)
		r = r*f + float64(bg[0])*(1-f)
		g = g*f + float64(bg[1])*(1-f)
		b = b*f + float64(bg[2])*(1-f)
	}
	return clamp255(r), clamp255(g), clamp255(b)
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}
