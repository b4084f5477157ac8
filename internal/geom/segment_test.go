package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sector-renderer/internal/mathutil"
)

var v = mathutil.V2

func TestClosestPointOnSegment(t *testing.T) {
	tests := []struct {
		name    string
		p, a, b mathutil.Vec2
		want    mathutil.Vec2
	}{
		{"interior", v(2, 3), v(0, 0), v(4, 0), v(2, 0)},
		{"clamped to a", v(-5, 1), v(0, 0), v(4, 0), v(0, 0)},
		{"clamped to b", v(9, -1), v(0, 0), v(4, 0), v(4, 0)},
		{"diagonal", v(0, 2), v(0, 0), v(2, 2), v(1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClosestPointOnSegment(tt.p, tt.a, tt.b)
			assert.InDelta(t, tt.want[0], got[0], 1e-12)
			assert.InDelta(t, tt.want[1], got[1], 1e-12)
		})
	}
}

func TestClosestPointOnDegenerateSegment(t *testing.T) {
	a := v(3, -2)
	for _, p := range []mathutil.Vec2{v(0, 0), v(100, 7), a, v(3.0001, -2)} {
		assert.Equal(t, a, ClosestPointOnSegment(p, a, a))
	}
	assert.Equal(t, a, ClosestPointOnSegment(v(5, 5), a, a.Add(v(1e-4, 0))))
}

func TestSignedDistanceToSegment(t *testing.T) {
	a, b := v(0, 0), v(4, 0)
	assert.InDelta(t, 2, SignedDistanceToSegment(v(1, 2), a, b), 1e-12)
	assert.InDelta(t, -3, SignedDistanceToSegment(v(1, -3), a, b), 1e-12)
	assert.InDelta(t, 0, SignedDistanceToSegment(v(10, 0), a, b), 1e-12)
	assert.Equal(t, 0.0, SignedDistanceToSegment(v(1, 2), a, a))
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name           string
		p0, p1, q0, q1 mathutil.Vec2
		want           bool
	}{
		{"crossing", v(0, 0), v(2, 2), v(0, 2), v(2, 0), true},
		{"disjoint", v(0, 0), v(1, 1), v(3, 0), v(3, 5), false},
		{"touching endpoint", v(0, 0), v(2, 0), v(2, -1), v(2, 1), true},
		{"t out of range", v(0, 0), v(1, 0), v(2, -1), v(2, 1), false},
		{"parallel", v(0, 0), v(4, 0), v(0, 1), v(4, 1), false},
		{"collinear overlap", v(0, 0), v(4, 0), v(2, 0), v(6, 0), false},
		{"degenerate motion", v(1, 1), v(1, 1), v(0, 0), v(2, 2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SegmentsIntersect(tt.p0, tt.p1, tt.q0, tt.q1))
		})
	}
}

func TestDistanceToSegment(t *testing.T) {
	assert.InDelta(t, 5, DistanceToSegment(v(7, 4), v(0, 0), v(4, 0)), 1e-12)
}
