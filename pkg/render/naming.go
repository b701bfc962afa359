package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Namer derives output image paths from an input file's stem. Multi-variant
// renders append `_v<k>`, colored variants `_colored`, and when overwriting
// is disabled an incrementing numeric suffix is appended until a free name
// is found.
type Namer struct {
	Dir       string
	Stem      string
	Ext       string // including the dot, e.g. ".png"
	Overwrite bool
}

// NewNamer builds a namer for one input file path writing into dir.
func NewNamer(dir, inputPath string, overwrite bool) Namer {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	return Namer{
		Dir:       dir,
		Stem:      strings.TrimSuffix(base, ext),
		Ext:       ".png",
		Overwrite: overwrite,
	}
}

func (n Namer) variantStem(variant, total int) string {
	if total > 1 {
		return fmt.Sprintf("%s_v%d", n.Stem, variant)
	}
	return n.Stem
}

// Single returns the output path for variant k of total variants.
func (n Namer) Single(variant, total int) string {
	stem := n.variantStem(variant, total)
	path := filepath.Join(n.Dir, stem+n.Ext)
	if n.Overwrite {
		return path
	}
	for counter := 1; fileExists(path); counter++ {
		path = filepath.Join(n.Dir, fmt.Sprintf("%s_%d%s", stem, counter, n.Ext))
	}
	return path
}

// Pair returns the standard and colored output paths for variant k of total
// variants. Both names share the same collision counter so the pair stays
// associated.
func (n Namer) Pair(variant, total int) (string, string) {
	stem := n.variantStem(variant, total)
	std := filepath.Join(n.Dir, stem+n.Ext)
	colored := filepath.Join(n.Dir, stem+"_colored"+n.Ext)
	if n.Overwrite {
		return std, colored
	}
	for counter := 1; fileExists(std) || fileExists(colored); counter++ {
		std = filepath.Join(n.Dir, fmt.Sprintf("%s_%d%s", stem, counter, n.Ext))
		colored = filepath.Join(n.Dir, fmt.Sprintf("%s_%d_colored%s", stem, counter, n.Ext))
	}
	return std, colored
}

// SplitPartPath derives the path of split segment n (1-based) from the base
// output path: out.png -> out_1.png, out_2.png, ...
func SplitPartPath(outPath string, part int) string {
	ext := filepath.Ext(outPath)
	if ext == "" {
		ext = ".png"
	}
	stem := strings.TrimSuffix(outPath, filepath.Ext(outPath))
	return fmt.Sprintf("%s_%d%s", stem, part, ext)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
