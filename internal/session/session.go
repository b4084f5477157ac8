// Package session owns everything one play session needs: the map, the
// player, the camera, the built meshes and the fixed-step clock. Nothing is
// process-global, so any number of sessions can run side by side.
package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"sector-renderer/internal/camera"
	"sector-renderer/internal/input"
	"sector-renderer/internal/level"
	"sector-renderer/internal/logging"
	"sector-renderer/internal/mathutil"
	"sector-renderer/internal/mesh"
	"sector-renderer/internal/player"
)

// IntentSource yields the intent for a given simulation time.
// *input.Timeline implements it.
type IntentSource interface {
	At(t float64) input.Intent
}

// IntentFunc adapts a function to IntentSource.
type IntentFunc func(t float64) input.Intent

func (f IntentFunc) At(t float64) input.Intent { return f(t) }

// Spawn is where and how the player enters a map.
type Spawn struct {
	Pos    mathutil.Vec2
	Sector int
	Yaw    float64
}

// Options configures a session. Zero values take package defaults.
type Options struct {
	Spawn    Spawn
	Height   float64
	Radius   float64
	Tuning   player.Tuning
	Step     float64
	MaxFrame float64
	FovY     float64 // radians
	Near     float64
	Far      float64
	Logger   *logging.Logger
}

// Pose is a copy of the player state at one instant.
type Pose struct {
	Pos    mathutil.Vec2
	Yaw    float64
	Sector int
	Eye    mathutil.Vec3
}

// FrameStats reports what one Frame call did.
type FrameStats struct {
	Ticks   int
	SimTime float64
	Pose    Pose
}

// View is a consistent read of the session for a rendering pass. The mesh
// slices are never modified in place, so they stay valid after the lock is
// released.
type View struct {
	Pose     Pose
	ViewProj mathutil.Mat4
	Sectors  []mesh.Vertex
	Walls    []mesh.Vertex
}

type Session struct {
	ID uuid.UUID

	// mu: Frame and ReplaceMap write, everything else reads.
	mu sync.RWMutex

	level   *level.Map
	player  *player.Player
	cam     *camera.Camera
	sectors mesh.SectorMesh
	walls   mesh.WallMesh

	clock   *FixedStep
	simTime float64
	ticks   int64
	opts    Options
	log     *logging.Logger
}

// New starts a session on m and builds its meshes.
func New(m *level.Map, opts Options) (*Session, error) {
	s := &Session{
		ID:    uuid.New(),
		cam:   camera.New(),
		clock: NewFixedStep(opts.Step, opts.MaxFrame),
		opts:  opts,
	}
	s.log = opts.Logger.With("session " + s.ID.String()[:8])

	if opts.FovY > 0 {
		s.cam.FovY = opts.FovY
	}
	if opts.Near > 0 {
		s.cam.Near = opts.Near
	}
	if opts.Far > 0 {
		s.cam.Far = opts.Far
	}

	if err := s.install(m, opts.Spawn); err != nil {
		return nil, err
	}
	return s, nil
}

// install swaps in m, rebuilds both meshes and respawns the player. On error
// the session keeps its previous state.
func (s *Session) install(m *level.Map, spawn Spawn) error {
	var sm mesh.SectorMesh
	var wm mesh.WallMesh
	if err := sm.Build(m); err != nil {
		return fmt.Errorf("session: sector mesh: %w", err)
	}
	if err := wm.Build(m); err != nil {
		return fmt.Errorf("session: wall mesh: %w", err)
	}
	if spawn.Sector < 0 || spawn.Sector >= m.NumSectors() {
		return fmt.Errorf("session: spawn sector %d out of range [0,%d)", spawn.Sector, m.NumSectors())
	}

	p := player.New(spawn.Pos, spawn.Sector)
	p.Yaw = spawn.Yaw
	if s.opts.Height > 0 {
		p.Height = s.opts.Height
	}
	if s.opts.Radius > 0 {
		p.Radius = s.opts.Radius
	}
	if s.opts.Tuning.Speed > 0 {
		p.Tuning.Speed = s.opts.Tuning.Speed
	}
	if s.opts.Tuning.TurnRate > 0 {
		p.Tuning.TurnRate = s.opts.Tuning.TurnRate
	}

	s.level = m
	s.sectors = sm
	s.walls = wm
	s.player = p
	s.cam.Follow(p, m)
	s.clock.Reset()

	s.log.Debugf("map installed: %d sectors, %d lines, %d sector verts, %d wall verts",
		m.NumSectors(), m.NumLines(), sm.Count(), wm.Count())
	return nil
}

// ReplaceMap swaps the level under an exclusive lock. The old map is
// released only once the new one is installed.
func (s *Session) ReplaceMap(m *level.Map, spawn Spawn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.level
	if err := s.install(m, spawn); err != nil {
		return err
	}
	if old != m {
		old.Release()
	}
	return nil
}

// Frame feeds one frame's elapsed wall time to the clock, runs the due
// ticks with intents from src and moves the camera to the new pose.
func (s *Session) Frame(frameDt float64, src IntentSource) FrameStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.clock.Advance(frameDt)
	step := s.clock.Step
	for i := 0; i < n; i++ {
		var in input.Intent
		if src != nil {
			in = src.At(s.simTime)
		}
		prev := s.player.Sector
		s.player.Update(s.level, in, step)
		if s.player.Sector != prev {
			s.log.Debugf("tick %d: sector %d -> %d at (%.2f, %.2f)",
				s.ticks, prev, s.player.Sector, s.player.Pos[0], s.player.Pos[1])
		}
		s.simTime += step
		s.ticks++
	}
	s.cam.Follow(s.player, s.level)

	return FrameStats{Ticks: n, SimTime: s.simTime, Pose: s.pose()}
}

func (s *Session) pose() Pose {
	return Pose{
		Pos:    s.player.Pos,
		Yaw:    s.player.Yaw,
		Sector: s.player.Sector,
		Eye:    s.cam.Pos,
	}
}

// Pose returns the current player pose.
func (s *Session) Pose() Pose {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pose()
}

// ViewProj is the camera matrix for the current pose.
func (s *Session) ViewProj(aspect float64) mathutil.Mat4 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam.ViewProj(aspect)
}

// Snapshot captures pose, matrix and mesh data for one rendering pass.
func (s *Session) Snapshot(aspect float64) View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{
		Pose:     s.pose(),
		ViewProj: s.cam.ViewProj(aspect),
		Sectors:  s.sectors.Verts,
		Walls:    s.walls.Verts,
	}
}

// Map returns the current level. Callers must not hold it across ReplaceMap.
func (s *Session) Map() *level.Map {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.level
}

// MeshCounts returns the vertex counts of the sector and wall meshes.
func (s *Session) MeshCounts() (sectors, walls int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sectors.Count(), s.walls.Count()
}

// Ticks is the number of simulation ticks run so far.
func (s *Session) Ticks() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ticks
}

// Close releases the map. The session must not be used afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level.Release()
	s.sectors.Reset()
	s.walls.Reset()
}
