package batch

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Manifest describes one rendered walk.
type Manifest struct {
	Session string          `json:"session"`
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Format  string          `json:"format"`
	Frames  []ManifestEntry `json:"frames"`
}

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Index  int     `json:"index"`
	Time   float64 `json:"time"`
	Sector int     `json:"sector"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Yaw    float64 `json:"yaw"`
	Image  string  `json:"image,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// WriteManifest writes the manifest of a run to path. results must be the
// slice Run returned for frames.
func WriteManifest(path string, id uuid.UUID, cfg Config, frames []Frame, results []Result) error {
	m := Manifest{
		Session: id.String(),
		Width:   cfg.Width,
		Height:  cfg.Height,
		Format:  string(cfg.Format),
		Frames:  make([]ManifestEntry, len(frames)),
	}
	for i, fr := range frames {
		e := ManifestEntry{
			Index:  fr.Index,
			Time:   fr.Time,
			Sector: fr.Pose.Sector,
			X:      fr.Pose.Pos[0],
			Y:      fr.Pose.Pos[1],
			Yaw:    fr.Pose.Yaw,
		}
		if i < len(results) {
			if results[i].Success {
				e.Image = filepath.Base(results[i].Path)
			} else {
				e.Error = results[i].Error
			}
		}
		m.Frames[i] = e
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
