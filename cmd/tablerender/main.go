// tablerender converts HTML table files into themed PNG training images.
//
// For every *.html file in the input directory the tool launches a dedicated
// headless browser, lays the table out under a deterministic base stylesheet,
// searches the theme catalog for a visual variant that does not disturb the
// cell geometry, and captures the result. By default each file also gets a
// second "colored" variant with a random pastel page background and fresh
// margins.
//
// Usage:
//
//	tablerender -input-dir GeneratedHTMLs -output-dir Output_Images [options]
//
// Options:
//
//	-font string              Font file (ttf/otf/woff/woff2) embedded into every render
//	-scale float              Device scale factor (default 2.0)
//	-count int                Images per input file (default 1), named _v<k>
//	-color-probability float  Chance of running the theme search (default 0.7)
//	-theme-weights string     Comma-separated weights for gray_clean,soft_card,blue_header,mono
//	-theme-config string      YAML file mapping theme names to weights
//	-no-colored               Skip the colored background variant
//	-raw                      Screenshot without themes, font forcing or margins
//	-overwrite                Overwrite existing output files
//	-sheet string             Also assemble all generated images into a review PDF
//	-seed int                 Random seed (0 = time-based)
//
// Per-file failures (no table, theme search exhausted) are logged and the
// batch continues; failed filenames are summarized at the end.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/myunghakLee/synthetic-table-dataset-gen/pkg/htmlclean"
	"github.com/myunghakLee/synthetic-table-dataset-gen/pkg/render"
	"github.com/myunghakLee/synthetic-table-dataset-gen/pkg/sheet"
)

func main() {
	inputDir := flag.String("input-dir", "GeneratedHTMLs", "Input directory containing HTML files")
	outputDir := flag.String("output-dir", "Output_Images", "Output directory for images")
	fontPath := flag.String("font", "", "Path to font file (TTF, OTF, WOFF, WOFF2)")
	scale := flag.Float64("scale", 2.0, "Image scale factor")
	count := flag.Int("count", 1, "Number of images per HTML file")
	colorProbability := flag.Float64("color-probability", 0.7, "Probability of applying colors to tables (0.0-1.0)")
	themeWeights := flag.String("theme-weights", "", "Comma-separated theme weights in catalog order")
	themeConfig := flag.String("theme-config", "", "YAML file mapping theme names to weights")
	noColored := flag.Bool("no-colored", false, "Skip colored background images")
	rawMode := flag.Bool("raw", false, "Convert HTML to image without any transformation")
	overwrite := flag.Bool("overwrite", false, "Overwrite existing files")
	sheetPath := flag.String("sheet", "", "Assemble generated images into a review PDF")
	seed := flag.Int64("seed", 0, "Random seed (0 = time-based)")
	flag.Parse()

	catalog, err := buildCatalog(*themeWeights, *themeConfig)
	if err != nil {
		log.Fatalf("Failed to build theme catalog: %v", err)
	}

	// A missing font file must fail before any browser is launched.
	if *fontPath != "" {
		if _, err := os.Stat(*fontPath); err != nil {
			log.Fatalf("Font file not found: %s", *fontPath)
		}
	}

	files, err := filepath.Glob(filepath.Join(*inputDir, "*.html"))
	if err != nil {
		log.Fatalf("Failed to list input directory: %v", err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		fmt.Printf("No HTML files found in %s\n", *inputDir)
		return
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	fmt.Printf("Found %d HTML files in %s. Starting conversion...\n", len(files), *inputDir)

	ctx := context.Background()
	var failed []string
	var generated []string

	for i, file := range files {
		fmt.Printf("[%d/%d] Processing %s...\n", i+1, len(files), filepath.Base(file))

		content, err := htmlclean.ReadDocument(file)
		if err != nil {
			fmt.Printf("  -> Failed: %v\n", err)
			failed = append(failed, filepath.Base(file))
			continue
		}

		namer := render.NewNamer(*outputDir, file, *overwrite)
		fileFailed := false

		for v := 1; v <= *count; v++ {
			cfg := render.DefaultConfig()
			cfg.FontPath = *fontPath
			cfg.Scale = *scale
			cfg.Tolerance = 0.05
			cfg.ColorProbability = *colorProbability
			cfg.Catalog = catalog
			cfg.Rand = rng
			cfg.Margins = randomMargins(rng)

			paths, res, err := renderOne(ctx, content, namer, cfg, v, *count, *rawMode, !*noColored)
			if err != nil {
				fmt.Printf("  -> v%d Failed: %v\n", v, err)
				fileFailed = true
				continue
			}

			generated = append(generated, paths...)
			if res != nil {
				fmt.Printf("  -> v%d Done. Theme: %s\n", v, res.ThemeName)
			} else {
				fmt.Printf("  -> v%d Done (raw mode).\n", v)
			}
			for _, p := range paths {
				fmt.Printf("  -> Saved: %s\n", filepath.Base(p))
			}
		}
		if fileFailed {
			failed = append(failed, filepath.Base(file))
		}
	}

	fmt.Printf("Done. Generated %d images from %d files.\n", len(generated), len(files))
	if len(failed) > 0 {
		fmt.Printf("Failed files (%d): %s\n", len(failed), strings.Join(failed, ", "))
	}

	if *sheetPath != "" && len(generated) > 0 {
		if err := sheet.Assemble(generated, *sheetPath); err != nil {
			log.Fatalf("Failed to assemble review sheet: %v", err)
		}
		fmt.Println("Review sheet saved to:", *sheetPath)
	}
}

// renderOne runs one render against a dedicated browser session, torn down
// on every exit path.
func renderOne(ctx context.Context, content string, namer render.Namer, cfg render.Config, variant, total int, raw, colored bool) ([]string, *render.Result, error) {
	opts := render.DefaultChromeOptions()
	opts.Scale = cfg.Scale

	eng, err := render.NewChromeEngine(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	defer eng.Close()

	if raw {
		out := namer.Single(variant, total)
		if err := render.RenderRaw(ctx, eng, content, out); err != nil {
			return nil, nil, err
		}
		return []string{out}, nil, nil
	}

	if colored {
		std, clr := namer.Pair(variant, total)
		res, err := render.RenderDual(ctx, eng, content, std, clr, cfg)
		if err != nil {
			return nil, nil, err
		}
		return []string{std, clr}, res, nil
	}

	out := namer.Single(variant, total)
	res, err := render.RenderSingle(ctx, eng, content, out, cfg)
	if err != nil {
		return nil, nil, err
	}
	return []string{out}, res, nil
}

// randomMargins draws the 1-5px stage padding used for the standard image.
func randomMargins(r *rand.Rand) render.Margins {
	return render.Margins{
		Top:    1 + r.Intn(5),
		Right:  1 + r.Intn(5),
		Bottom: 1 + r.Intn(5),
		Left:   1 + r.Intn(5),
	}
}

// buildCatalog applies weight overrides from either the positional
// -theme-weights list or a YAML name-to-weight map.
func buildCatalog(weightList, configPath string) (render.Catalog, error) {
	catalog := render.DefaultCatalog()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		var overrides struct {
			ThemeWeights map[string]float64 `yaml:"theme_weights"`
		}
		if err := yaml.Unmarshal(data, &overrides); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
		if len(overrides.ThemeWeights) > 0 {
			return catalog.WithWeights(overrides.ThemeWeights)
		}
		return catalog, nil
	}

	if weightList == "" {
		return catalog, nil
	}
	parts := strings.Split(weightList, ",")
	if len(parts) != len(catalog) {
		return nil, fmt.Errorf("expected %d theme weights, got %d", len(catalog), len(parts))
	}
	weights := make(map[string]float64, len(parts))
	for i, p := range parts {
		w, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid theme weight %q: %w", p, err)
		}
		weights[catalog[i].Name] = w
	}
	return catalog.WithWeights(weights)
}
