// tablelabel normalizes generated HTML tables into structure-only label
// files for recognition training.
//
// Each input file is reduced to its first <table> element with all
// presentation stripped: style/class/id and layout attributes removed,
// <style>, <br> and <caption> deleted, section wrappers (thead/tbody/tfoot)
// and inline formatting tags unwrapped, and whitespace collapsed. The output
// depends only on the table structure and cell text, so visually different
// renderings of the same table share one label.
//
// Usage:
//
//	tablelabel -input-dir GeneratedHTMLs -output-dir Labels
//	tablelabel -input-file table.html -output-file table_label.html
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/myunghakLee/synthetic-table-dataset-gen/pkg/htmlclean"
)

func main() {
	inputDir := flag.String("input-dir", "", "Input directory containing HTML files")
	outputDir := flag.String("output-dir", "Labels", "Output directory for label files")
	inputFile := flag.String("input-file", "", "Single HTML file to normalize")
	outputFile := flag.String("output-file", "", "Output path for single-file mode")
	flag.Parse()

	if *inputFile != "" {
		out := *outputFile
		if out == "" {
			stem := strings.TrimSuffix(filepath.Base(*inputFile), filepath.Ext(*inputFile))
			out = stem + "_label.html"
		}
		label, err := labelOne(*inputFile)
		if err != nil {
			log.Fatalf("Failed to normalize %s: %v", *inputFile, err)
		}
		if err := os.WriteFile(out, []byte(label), 0644); err != nil {
			log.Fatalf("Failed to write %s: %v", out, err)
		}
		fmt.Println("Saved:", out)
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

	fmt.Printf("Found %d HTML files in %s. Extracting labels...\n", len(files), *inputDir)

	var failed []string
	saved := 0
	for i, file := range files {
		fmt.Printf("[%d/%d] Processing %s...\n", i+1, len(files), filepath.Base(file))

		// Batch mode keeps going on table-less files: the fence-stripped
		// content is saved as-is so nothing is silently dropped.
		label, err := cleanOne(file)
		if err != nil {
			fmt.Printf("  -> Failed: %v\n", err)
			failed = append(failed, filepath.Base(file))
			continue
		}

		out := filepath.Join(*outputDir, filepath.Base(file))
		if err := os.WriteFile(out, []byte(label), 0644); err != nil {
			fmt.Printf("  -> Failed: %v\n", err)
			failed = append(failed, filepath.Base(file))
			continue
		}
		saved++
	}

	fmt.Printf("Done. Saved %d labels from %d files.\n", saved, len(files))
	if len(failed) > 0 {
		fmt.Printf("Failed files (%d): %s\n", len(failed), strings.Join(failed, ", "))
	}
}

// labelOne reads one file and reduces it to its normalized table. A file
// with no table is an error.
func labelOne(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	content, err := htmlclean.DecodeToUTF8(data)
	if err != nil {
		return "", err
	}
	return htmlclean.ExtractTable(htmlclean.StripFences(content))
}

// cleanOne is the lenient batch variant: files with no table yield their
// fence-stripped content unchanged.
func cleanOne(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	content, err := htmlclean.DecodeToUTF8(data)
	if err != nil {
		return "", err
	}
	return htmlclean.CleanResponse(content), nil
}
