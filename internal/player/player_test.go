package player

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sector-renderer/internal/geom"
	"sector-renderer/internal/input"
	"sector-renderer/internal/level"
	"sector-renderer/internal/mathutil"
)

const tick = 1.0 / 60.0

func testMap(t *testing.T) *level.Map {
	t.Helper()
	m, err := level.BuildTestMap()
	require.NoError(t, err)
	return m
}

func run(p *Player, m *level.Map, in input.Intent, ticks int) {
	for i := 0; i < ticks; i++ {
		p.Update(m, in, tick)
	}
}

func TestTurning(t *testing.T) {
	m := testMap(t)
	p := New(mathutil.V2(1, 1), 0)

	run(p, m, input.Intent{TurnLeft: true}, 60)
	assert.InDelta(t, DefaultTurnRate, p.Yaw, 1e-9)
	assert.Equal(t, mathutil.V2(1, 1), p.Pos)

	run(p, m, input.Intent{TurnRight: true}, 60)
	assert.InDelta(t, 0, p.Yaw, 1e-9)

	run(p, m, input.Intent{TurnLeft: true, TurnRight: true}, 10)
	assert.InDelta(t, 0, p.Yaw, 1e-9)
}

func TestBasisVectors(t *testing.T) {
	p := New(mathutil.V2(0, 0), 0)
	assert.InDelta(t, 0, p.Forward()[0], 1e-12)
	assert.InDelta(t, -1, p.Forward()[1], 1e-12)
	assert.InDelta(t, 1, p.Right()[0], 1e-12)

	p.Yaw = math.Pi / 2
	assert.InDelta(t, 1, p.Forward()[0], 1e-12)
	assert.InDelta(t, 0, p.Forward()[1], 1e-12)
	assert.InDelta(t, 0, p.Forward().Dot(p.Right()), 1e-12)
}

func TestDiagonalMoveIsNormalized(t *testing.T) {
	m := testMap(t)
	p := New(mathutil.V2(2, 2), 0)
	p.Yaw = math.Pi / 2

	p.Update(m, input.Intent{Forward: true, StrafeRight: true}, tick)
	assert.InDelta(t, DefaultSpeed*tick, p.Pos.Dist(mathutil.V2(2, 2)), 1e-12)

	q := New(mathutil.V2(2, 2), 0)
	q.Update(m, input.Intent{Forward: true, Back: true}, tick)
	assert.Equal(t, mathutil.V2(2, 2), q.Pos)
}

func TestWalksThroughPassablePortal(t *testing.T) {
	m := testMap(t)
	p := New(mathutil.V2(1, 1), 0)
	p.Yaw = math.Pi / 2

	crossed := -1
	for i := 0; i < 120; i++ {
		before := p.Pos
		p.Update(m, input.Intent{Forward: true}, tick)
		if p.Sector == 1 && crossed < 0 {
			crossed = i
			assert.LessOrEqual(t, before[0], 4.0)
			assert.GreaterOrEqual(t, p.Pos[0], 4.0)
		}
	}

	require.GreaterOrEqual(t, crossed, 0, "player never entered sector 1")
	assert.Equal(t, 1, p.Sector)
	assert.InDelta(t, 7.0, p.Pos[0], 1e-6)
	assert.InDelta(t, 1.0, p.Pos[1], 1e-6)
}

func TestTooTallPlayerSlidesAlongPortal(t *testing.T) {
	m := testMap(t)
	p := New(mathutil.V2(1, 1), 0)
	p.Height = 3.0
	p.Yaw = math.Pi / 2

	run(p, m, input.Intent{Forward: true}, 120)
	assert.Equal(t, 0, p.Sector)
	assert.InDelta(t, 4-p.Radius, p.Pos[0], 1e-9)
	assert.InDelta(t, 1.0, p.Pos[1], 1e-6)

	// pressing diagonally into the portal slides along it
	run(p, m, input.Intent{Forward: true, StrafeRight: true}, 30)
	assert.Equal(t, 0, p.Sector)
	assert.InDelta(t, 4-p.Radius, p.Pos[0], 1e-9)
	assert.Greater(t, p.Pos[1], 1.5)
}

func TestReturnsThroughPortalFromBackSide(t *testing.T) {
	m := testMap(t)
	p := New(mathutil.V2(6.01, 2), 1)
	p.Yaw = -math.Pi / 2

	run(p, m, input.Intent{Forward: true}, 120)
	assert.Equal(t, 0, p.Sector)
	assert.InDelta(t, p.Radius, p.Pos[0], 1e-9)
}

func TestStandingOnPortalLineKeepsSector(t *testing.T) {
	m := testMap(t)
	p := New(mathutil.V2(3.75, 2), 0)
	p.Yaw = math.Pi / 2
	p.Tuning.Speed = 1

	p.Update(m, input.Intent{Forward: true}, 0.25)
	require.Equal(t, mathutil.V2(4, 2), p.Pos)
	assert.Equal(t, 0, p.Sector)

	// Stepping back off the line does not cross.
	q := *p
	q.Update(m, input.Intent{Back: true}, 0.25)
	assert.Equal(t, 0, q.Sector)
	assert.InDelta(t, 3.75, q.Pos[0], 1e-12)

	// Stepping on through does.
	p.Update(m, input.Intent{Forward: true}, 0.25)
	assert.Equal(t, 1, p.Sector)
	assert.InDelta(t, 4.25, p.Pos[0], 1e-12)
}

func TestWalkingParallelToPortalKeepsSector(t *testing.T) {
	m := testMap(t)
	for _, x := range []float64{3.5, 4.0} {
		p := New(mathutil.V2(x, 0.5), 0)
		p.Yaw = math.Pi // forward is +Y

		run(p, m, input.Intent{Forward: true}, 90)
		assert.Equal(t, 0, p.Sector, "x=%v", x)
		assert.InDelta(t, 4-p.Radius, p.Pos[1], 1e-9)
	}
}

func TestSolidClassification(t *testing.T) {
	m := testMap(t)
	p := New(mathutil.V2(1, 1), 0)
	assert.True(t, p.Solid(m, 0))
	assert.False(t, p.Solid(m, 1))

	p.Height = 2.5
	assert.False(t, p.Solid(m, 1))
	p.Height = 2.6
	assert.True(t, p.Solid(m, 1))
}

func TestCollisionKeepsRadiusFromSolidLines(t *testing.T) {
	m := testMap(t)
	p := New(mathutil.V2(2, 2), 0)
	p.Height = 3.0
	rng := rand.New(rand.NewSource(7))

	var in input.Intent
	for i := 0; i < 3000; i++ {
		if i%20 == 0 {
			in = input.Intent{
				TurnLeft:    rng.Intn(3) == 0,
				TurnRight:   rng.Intn(3) == 0,
				Forward:     rng.Intn(2) == 0,
				Back:        rng.Intn(4) == 0,
				StrafeLeft:  rng.Intn(3) == 0,
				StrafeRight: rng.Intn(3) == 0,
			}
		}
		p.Update(m, in, tick)

		for _, li := range m.LinesTouching(p.Sector) {
			if !p.Solid(m, li) {
				continue
			}
			a, b := m.LineSegment(li)
			require.GreaterOrEqual(t, geom.DistanceToSegment(p.Pos, a, b), p.Radius-1e-9,
				"tick %d line %d pos %v", i, li, p.Pos)
		}
	}
	assert.Equal(t, 0, p.Sector)
}

func TestPushNormalOnSegment(t *testing.T) {
	a, b := mathutil.V2(0, 0), mathutil.V2(4, 0)

	n := pushNormal(mathutil.V2(1, 1), a, b)
	assert.InDelta(t, 0, n[0], 1e-12)
	assert.InDelta(t, 1, n[1], 1e-12)

	n = pushNormal(mathutil.V2(1, -1), a, b)
	assert.InDelta(t, -1, n[1], 1e-12)

	assert.Equal(t, mathutil.V2(1, 0), pushNormal(mathutil.V2(1, 1), a, a))
}

func TestCandidateOnSegmentIsPushedBack(t *testing.T) {
	m := testMap(t)
	p := New(mathutil.V2(2, 0.05), 0)
	p.Yaw = 0 // forward is -Y, straight into line 0

	p.Update(m, input.Intent{Forward: true}, tick)
	assert.InDelta(t, p.Radius, p.Pos[1], 1e-9)
	assert.InDelta(t, 2, p.Pos[0], 1e-9)
}

func TestEyeHeight(t *testing.T) {
	m := testMap(t)
	p := New(mathutil.V2(6, 2), 1)
	assert.InDelta(t, 0.5+DefaultHeight, p.EyeHeight(m), 1e-12)
}
