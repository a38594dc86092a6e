package batch

import (
	"encoding/json"
	"os"

	"aa-triangle-renderer/internal/config"
)

// ManifestEntry represents one scene in the output manifest.
type ManifestEntry struct {
	Name     string       `json:"name"`
	Image    string       `json:"image"`
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	Policy   string       `json:"policy"`
	Space    string       `json:"space"`
	Vertices [][2]float64 `json:"vertices"`
	Color    []float64    `json:"color"`
	Success  bool         `json:"success"`
	Error    string       `json:"error,omitempty"`
}

// WriteManifest writes a JSON manifest pairing each scene with its result.
func WriteManifest(path string, cfg config.Config, scenes []config.Scene, results []Result) error {
	entries := make([]ManifestEntry, len(scenes))
	for i, s := range scenes {
		entries[i] = ManifestEntry{
			Name:     s.Name,
			Image:    s.Output,
			Width:    cfg.Width,
			Height:   cfg.Height,
			Policy:   cfg.Policy,
			Space:    cfg.Space,
			Vertices: s.Vertices,
			Color:    s.Color,
		}
		if i < len(results) {
			entries[i].Success = results[i].Success
			entries[i].Error = results[i].Error
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
