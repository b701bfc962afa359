// tablesplit renders tall HTML tables as one or more PNG images, cutting
// only on row boundaries so no row is ever sliced through the middle.
//
// Tables that fit within the height budget produce a single image with no
// suffix. Taller tables are captured as numbered parts (_1, _2, ...), each
// covering a contiguous run of rows.
//
// Usage:
//
//	tablesplit -input-dir GeneratedHTMLs -output-dir Split_Images [options]
//	tablesplit -input-file table.html -output-file table.png [options]
//
// Options:
//
//	-max-height float  Maximum image height in CSS pixels (default 2000)
//	-scale float       Device scale factor (default 2.0)
//	-overwrite         Overwrite existing output files
//	-sheet string      Assemble all generated images into a review PDF
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/myunghakLee/synthetic-table-dataset-gen/pkg/htmlclean"
	"github.com/myunghakLee/synthetic-table-dataset-gen/pkg/render"
	"github.com/myunghakLee/synthetic-table-dataset-gen/pkg/sheet"
)

func main() {
	inputDir := flag.String("input-dir", "", "Input directory containing HTML files")
	outputDir := flag.String("output-dir", "Split_Images", "Output directory for images")
	inputFile := flag.String("input-file", "", "Single HTML file to convert")
	outputFile := flag.String("output-file", "", "Output image path for single-file mode")
	maxHeight := flag.Float64("max-height", 2000, "Maximum image height in CSS pixels")
	scale := flag.Float64("scale", 2.0, "Image scale factor")
	overwrite := flag.Bool("overwrite", false, "Overwrite existing files")
	sheetPath := flag.String("sheet", "", "Assemble generated images into a review PDF")
	flag.Parse()

	cfg := render.DefaultSplitConfig()
	cfg.MaxHeight = *maxHeight
	cfg.Scale = *scale

	ctx := context.Background()

	if *inputFile != "" {
		out := *outputFile
		if out == "" {
			stem := strings.TrimSuffix(filepath.Base(*inputFile), filepath.Ext(*inputFile))
			out = stem + ".png"
		}
		paths, err := splitOne(ctx, *inputFile, out, cfg)
		if err != nil {
			log.Fatalf("Failed to convert %s: %v", *inputFile, err)
		}
		for _, p := range paths {
			fmt.Println("Saved:", p)
		}
		if *sheetPath != "" {
			if err := sheet.Assemble(paths, *sheetPath); err != nil {
				log.Fatalf("Failed to assemble review sheet: %v", err)
			}
			fmt.Println("Review sheet saved to:", *sheetPath)
		}
		return
	}

	if *inputDir == "" {
		log.Fatal("Either -input-file or -input-dir is required")
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

	fmt.Printf("Found %d HTML files in %s. Starting conversion...\n", len(files), *inputDir)

	var failed []string
	var generated []string
	for i, file := range files {
		fmt.Printf("[%d/%d] Processing %s...\n", i+1, len(files), filepath.Base(file))

		namer := render.NewNamer(*outputDir, file, *overwrite)
		out := namer.Single(1, 1)

		paths, err := splitOne(ctx, file, out, cfg)
		if err != nil {
			fmt.Printf("  -> Failed: %v\n", err)
			failed = append(failed, filepath.Base(file))
			continue
		}
		generated = append(generated, paths...)
		fmt.Printf("  -> Done (%d parts).\n", len(paths))
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

// splitOne reads and renders a single file against its own browser session.
func splitOne(ctx context.Context, inPath, outPath string, cfg render.SplitConfig) ([]string, error) {
	content, err := htmlclean.ReadDocument(inPath)
	if err != nil {
		return nil, err
	}

	opts := render.DefaultSplitChromeOptions()
	opts.Scale = cfg.Scale

	eng, err := render.NewChromeEngine(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer eng.Close()

	return render.RenderSplit(ctx, eng, content, outPath, cfg)
}
