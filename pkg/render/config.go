package render

import (
	"math/rand"
	"time"
)

// Config holds user options for themed table rendering.
type Config struct {
	FontPath         string  // optional font file embedded as @font-face
	Scale            float64 // device scale factor for the capture
	Margins          Margins // stage padding for the standard image
	Tolerance        float64 // per-cell size ratio band for theme acceptance
	MaxTries         int     // theme search attempt budget
	ColorProbability float64 // chance of running the theme search at all
	Catalog          Catalog // candidate themes, weights applied at startup
	Rand             *rand.Rand
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Scale:            2.0,
		Tolerance:        0.05,
		MaxTries:         30,
		ColorProbability: 0.7,
		Catalog:          DefaultCatalog(),
	}
}

// rng returns the configured random source, falling back to a time-seeded
// one. Tests pass an explicit seeded source for reproducibility.
func (c Config) rng() *rand.Rand {
	if c.Rand != nil {
		return c.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// SplitConfig holds user options for row-split rendering.
type SplitConfig struct {
	MaxHeight float64 // table height budget before splitting, CSS pixels
	Scale     float64 // device scale factor for the capture
	Padding   float64 // expansion around each clip region, CSS pixels
}

// DefaultSplitConfig returns a split config with sensible defaults.
func DefaultSplitConfig() SplitConfig {
	return SplitConfig{
		MaxHeight: 2000,
		Scale:     2.0,
		Padding:   10,
	}
}
