package works

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Artworks []struct {
		Artwork `yaml:",inline"`
		AgeMS   int64 `yaml:"age_ms"`
	} `yaml:"artworks"`
}

// DefaultSeed returns the first-run artwork set, dated relative to now.
func DefaultSeed(now time.Time) ([]Artwork, error) {
	return parseSeed(seedYAML, now)
}

func parseSeed(raw []byte, now time.Time) ([]Artwork, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	base := Millis(now)
	out := make([]Artwork, 0, len(f.Artworks))
	for _, s := range f.Artworks {
		a := s.Artwork
		a.CreatedAt = base - s.AgeMS
		out = append(out, a)
	}
	return out, nil
}
