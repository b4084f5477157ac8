// Package batch renders recorded frames to image files on a worker pool.
package batch

import (
	"fmt"
	"image"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"sector-renderer/internal/level"
	"sector-renderer/internal/logging"
	"sector-renderer/internal/mathutil"
	"sector-renderer/internal/mesh"
	"sector-renderer/internal/postprocess"
	"sector-renderer/internal/raster"
	"sector-renderer/internal/session"
	"sector-renderer/internal/snapshot"
)

// Config holds all shared settings for a batch run.
type Config struct {
	OutputDir   string
	Format      snapshot.Format
	Width       int
	Height      int
	Supersample int
	Workers     int
	Shading     raster.Shading
	HUD         bool
	Minimap     bool
	Logger      *logging.Logger
	Metrics     *Metrics
}

// Scene is the geometry every frame shares. It is only read.
type Scene struct {
	Map     *level.Map
	Sectors []mesh.Vertex
	Walls   []mesh.Vertex
}

// Frame is one recorded instant of a walk.
type Frame struct {
	Index    int
	Time     float64
	Pose     session.Pose
	ViewProj mathutil.Mat4
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Index   int
	Path    string
	Success bool
	Error   string
}

// FileName is the output name of frame i.
func FileName(i int, f snapshot.Format) string {
	return fmt.Sprintf("frame_%05d%s", i, f.Ext())
}

// Run renders all frames using a worker pool.
func Run(cfg Config, scene Scene, frames []Frame) []Result {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Format == "" {
		cfg.Format = snapshot.WebP
	}

	total := len(frames)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					cfg.Logger.Infof("[%d/%d] %.1f frames/sec", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				t0 := time.Now()
				results[idx] = processFrame(cfg, scene, frames[idx])
				cfg.Metrics.observe(results[idx], time.Since(t0))
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range frames {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results
}

// Render produces the final image of one frame without writing it.
func Render(cfg Config, scene Scene, fr Frame) *image.NRGBA {
	ss := cfg.Supersample
	if ss < 1 {
		ss = 1
	}

	img := raster.RenderScene(scene.Sectors, scene.Walls, fr.ViewProj, cfg.Width*ss, cfg.Height*ss, &cfg.Shading)

	// Post-processing: supersample downsample
	if ss > 1 {
		img = postprocess.Downsample(img, cfg.Width, cfg.Height)
	}

	if cfg.Minimap && scene.Map != nil {
		b := img.Bounds()
		r := image.Rect(b.Max.X-b.Dx()/4, b.Max.Y-b.Dy()/4, b.Max.X, b.Max.Y)
		postprocess.DrawMinimap(img, r, scene.Map, fr.Pose.Pos, fr.Pose.Yaw)
	}
	if cfg.HUD {
		postprocess.DrawHUD(img,
			fmt.Sprintf("t %.2fs sector %d", fr.Time, fr.Pose.Sector),
			fmt.Sprintf("x %.2f y %.2f yaw %.0f", fr.Pose.Pos[0], fr.Pose.Pos[1], mathutil.Rad2Deg(fr.Pose.Yaw)),
		)
	}
	return img
}

func processFrame(cfg Config, scene Scene, fr Frame) Result {
	img := Render(cfg, scene, fr)

	outPath := filepath.Join(cfg.OutputDir, FileName(fr.Index, cfg.Format))
	if err := snapshot.Write(outPath, img); err != nil {
		cfg.Logger.Warnf("frame %d: %v", fr.Index, err)
		return Result{
			Index: fr.Index,
			Path:  outPath,
			Error: err.Error(),
		}
	}

	cfg.Logger.Tracef("frame %d written to %s", fr.Index, outPath)
	return Result{
		Index:   fr.Index,
		Path:    outPath,
		Success: true,
	}
}
