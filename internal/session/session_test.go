package session

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sector-renderer/internal/input"
	"sector-renderer/internal/level"
	"sector-renderer/internal/logging"
	"sector-renderer/internal/mathutil"
)

func TestFixedStepAdvance(t *testing.T) {
	c := NewFixedStep(0.25, 1)

	assert.Equal(t, 2, c.Advance(0.6))
	assert.InDelta(t, 0.4, c.Alpha(), 1e-9)

	// 2.0 is clamped to 1.0; with the 0.1 carried over that is 4 ticks.
	assert.Equal(t, 4, c.Advance(2.0))
	assert.InDelta(t, 0.4, c.Alpha(), 1e-9)

	assert.Equal(t, 0, c.Advance(-1))
	c.Reset()
	assert.Zero(t, c.Alpha())
}

func TestFixedStepDefaults(t *testing.T) {
	c := NewFixedStep(0, 0)
	assert.Equal(t, DefaultStep, c.Step)
	assert.Equal(t, DefaultMaxFrame, c.MaxFrame)

	// A long stall never queues more than MaxFrame worth of ticks.
	n := c.Advance(10)
	assert.LessOrEqual(t, float64(n)*c.Step, DefaultMaxFrame+1e-9)
	assert.GreaterOrEqual(t, n, 14)
}

func TestFixedStepConservesTime(t *testing.T) {
	c := NewFixedStep(0.125, 1)
	total := 0.0
	ticks := 0
	for _, dt := range []float64{0.03, 0.2, 0.5, 0.01, 0.07, 0.33} {
		ticks += c.Advance(dt)
		total += dt
	}
	assert.InDelta(t, total, float64(ticks)*c.Step+c.Alpha()*c.Step, 1e-9)
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	m, err := level.BuildTestMap()
	require.NoError(t, err)
	s, err := New(m, Options{
		Spawn:    Spawn{Pos: mathutil.V2(1.1, 2), Sector: 0, Yaw: math.Pi / 2},
		Step:     0.125,
		MaxFrame: 1,
		Logger:   logging.Discard(),
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func forward(float64) input.Intent { return input.Intent{Forward: true} }

func TestSessionWalksIntoSecondRoom(t *testing.T) {
	s := newTestSession(t)
	assert.NotEqual(t, [16]byte{}, [16]byte(s.ID))

	st := s.Frame(0.5, IntentFunc(forward))
	assert.Equal(t, 4, st.Ticks)
	assert.InDelta(t, 0.5, st.SimTime, 1e-12)
	assert.Equal(t, 0, st.Pose.Sector)
	assert.InDelta(t, 2.6, st.Pose.Pos[0], 1e-9)

	st = s.Frame(0.5, IntentFunc(forward))
	assert.Equal(t, 1, st.Pose.Sector)
	assert.InDelta(t, 4.1, st.Pose.Pos[0], 1e-9)
	assert.InDelta(t, 2.0, st.Pose.Pos[1], 1e-9)

	// The camera follows onto the raised floor.
	assert.InDelta(t, 0.5+1.6, st.Pose.Eye[1], 1e-9)
	assert.Equal(t, int64(8), s.Ticks())
}

func TestSessionIdleFrameKeepsPose(t *testing.T) {
	s := newTestSession(t)
	before := s.Pose()
	st := s.Frame(0.5, nil)
	assert.Equal(t, 4, st.Ticks)
	assert.Equal(t, before, st.Pose)
}

func TestSessionTimelineDrivesTicks(t *testing.T) {
	s := newTestSession(t)
	tl, err := input.NewTimeline([]input.Step{
		{Intents: []string{"turn_left"}, Seconds: 0.5},
	})
	require.NoError(t, err)

	s.Frame(1, tl)
	// Only the first half second turns.
	assert.InDelta(t, math.Pi/2+0.5*1.6, s.Pose().Yaw, 1e-9)
}

func TestSessionSnapshot(t *testing.T) {
	s := newTestSession(t)
	v := s.Snapshot(16.0 / 10.0)

	sectors, walls := s.MeshCounts()
	assert.Len(t, v.Sectors, sectors)
	assert.Len(t, v.Walls, walls)
	assert.Equal(t, 24, sectors)
	assert.Equal(t, 42, walls)
	assert.Equal(t, s.ViewProj(16.0/10.0), v.ViewProj)
}

func singleRoom(t *testing.T) *level.Map {
	t.Helper()
	m, err := level.New(
		[]level.Vertex{mathutil.V2(0, 0), mathutil.V2(2, 0), mathutil.V2(2, 2), mathutil.V2(0, 2)},
		[]level.Linedef{
			{V0: 0, V1: 1, Front: 0, Back: level.NoSector},
			{V0: 1, V1: 2, Front: 0, Back: level.NoSector},
			{V0: 2, V1: 3, Front: 0, Back: level.NoSector},
			{V0: 3, V1: 0, Front: 0, Back: level.NoSector},
		},
		[]level.Sector{{FloorH: 1, CeilH: 4, Light: 0.5, Loop: []int{0, 1, 2, 3}}},
	)
	require.NoError(t, err)
	return m
}

func TestReplaceMapRebuildsMeshes(t *testing.T) {
	s := newTestSession(t)
	old := s.Map()

	require.NoError(t, s.ReplaceMap(singleRoom(t), Spawn{Pos: mathutil.V2(1, 1)}))
	assert.True(t, old.Empty(), "previous map is released")

	sectors, walls := s.MeshCounts()
	assert.Equal(t, 12, sectors)
	assert.Equal(t, 24, walls)

	p := s.Pose()
	assert.Equal(t, mathutil.V2(1, 1), p.Pos)
	assert.InDelta(t, 2.6, p.Eye[1], 1e-9)
}

func TestReplaceMapFailureKeepsState(t *testing.T) {
	s := newTestSession(t)
	before, _ := s.MeshCounts()

	err := s.ReplaceMap(singleRoom(t), Spawn{Sector: 3})
	require.Error(t, err)

	after, _ := s.MeshCounts()
	assert.Equal(t, before, after)
	assert.Equal(t, 2, s.Map().NumSectors())
}

func TestNewRejectsEmptyMap(t *testing.T) {
	m, err := level.New(nil, nil, nil)
	require.NoError(t, err)
	_, err = New(m, Options{})
	assert.Error(t, err)
}

func TestSnapshotDuringReplaceAndFrame(t *testing.T) {
	s := newTestSession(t)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				v := s.Snapshot(1)
				// Sector mesh counts are 24 or 12 depending on which map
				// was live; never a mix.
				assert.Contains(t, []int{12, 24}, len(v.Sectors))
			}
		}()
	}
	for i := 0; i < 10; i++ {
		if i%2 == 0 {
			require.NoError(t, s.ReplaceMap(singleRoom(t), Spawn{Pos: mathutil.V2(1, 1)}))
		} else {
			m, err := level.BuildTestMap()
			require.NoError(t, err)
			require.NoError(t, s.ReplaceMap(m, Spawn{Pos: mathutil.V2(1, 1)}))
		}
		s.Frame(0.25, IntentFunc(forward))
	}
	wg.Wait()
}
