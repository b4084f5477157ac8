package main

import (
	"flag"
	"fmt"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sector-renderer/internal/batch"
	"sector-renderer/internal/config"
	"sector-renderer/internal/level"
	"sector-renderer/internal/session"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json, .yaml or .yml)")
	outputDir := flag.String("output", "", "Output directory (default: frames)")
	format := flag.String("format", "", "Image format: webp or tga (default: webp)")
	width := flag.Int("width", 0, "Frame width in pixels (default: 320)")
	height := flag.Int("height", 0, "Frame height in pixels (default: 200)")
	supersample := flag.Int("supersample", 0, "Supersampling factor (default: 2)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	logLevel := flag.String("log", "", "Log level: trace, debug, info, warn, error")
	duration := flag.Float64("duration", 0, "Seconds to simulate (default: script length)")
	hud := flag.Bool("hud", false, "Draw the pose overlay")
	minimap := flag.Bool("minimap", false, "Draw the top-down map overlay")
	metricsAddr := flag.String("metrics", "", "Serve Prometheus /metrics on this address while rendering")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir:   *outputDir,
		Format:      *format,
		LogLevel:    *logLevel,
		MetricsAddr: *metricsAddr,
		Width:       *width,
		Height:      *height,
		Supersample: *supersample,
		Workers:     *workers,
	})
	if *hud {
		cfg.HUD = true
	}
	if *minimap {
		cfg.Minimap = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := cfg.Logger()

	m, err := level.BuildTestMap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building map: %v\n", err)
		os.Exit(1)
	}
	if err := m.Validate(); err != nil {
		log.Warnf("map: %v", err)
	}

	sess, err := session.New(m, cfg.SessionOptions(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting session: %v\n", err)
		os.Exit(1)
	}
	defer sess.Close()

	timeline, err := cfg.Timeline()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing script: %v\n", err)
		os.Exit(1)
	}

	simSeconds := timeline.Duration()
	if *duration > 0 {
		simSeconds = *duration
	}

	// Simulate and record one pose per output frame
	frameDt := 1 / cfg.FrameRate
	n := int(math.Ceil(simSeconds * cfg.FrameRate))
	aspect := float64(cfg.Width) / float64(cfg.Height)

	frames := make([]batch.Frame, 0, n)
	var view session.View
	for i := 0; i < n; i++ {
		st := sess.Frame(frameDt, timeline)
		view = sess.Snapshot(aspect)
		frames = append(frames, batch.Frame{
			Index:    i,
			Time:     st.SimTime,
			Pose:     view.Pose,
			ViewProj: view.ViewProj,
		})
	}

	if len(frames) == 0 {
		fmt.Println("No frames to render.")
		os.Exit(0)
	}

	last := frames[len(frames)-1].Pose
	fmt.Printf("Session %s\n", sess.ID)
	fmt.Printf("Simulated %.2fs in %d ticks, final sector %d at (%.2f, %.2f)\n",
		frames[len(frames)-1].Time, sess.Ticks(), last.Sector, last.Pos[0], last.Pos[1])
	fmt.Printf("Frames: %d at %dx%d, Workers: %d\n", len(frames), cfg.Width, cfg.Height, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := cfg.BatchConfig(log)
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		batchCfg.Metrics = batch.NewMetrics(reg)
		go func() {
			log.Infof("metrics on %s/metrics", cfg.MetricsAddr)
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Errorf("metrics server: %v", err)
			}
		}()
	}
	scene := batch.Scene{
		Map:     sess.Map(),
		Sectors: view.Sectors,
		Walls:   view.Walls,
	}
	results := batch.Run(batchCfg, scene, frames)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(frames))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d: %s\n", e.Index, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := batch.WriteManifest(manifestPath, sess.ID, batchCfg, frames, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
