// Package sheet assembles rendered table images into a single review PDF,
// one image per page, so a batch of generated samples can be skimmed without
// opening hundreds of files.
package sheet

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"codeberg.org/go-pdf/fpdf"
)

// Assemble builds a PDF from the image files in order, each page sized to
// its image, and writes it to outPath.
func Assemble(imagePaths []string, outPath string) error {
	if len(imagePaths) == 0 {
		return fmt.Errorf("no images to assemble")
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	for i, path := range imagePaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read image %s: %w", path, err)
		}

		cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to decode image %s: %w", path, err)
		}
		w, h := float64(cfg.Width), float64(cfg.Height)

		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})

		name := fmt.Sprintf("img%d", i)
		opts := fpdf.ImageOptions{ReadDpi: false, ImageType: strings.ToUpper(format)}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		pdf.ImageOptions(name, 0, 0, w, h, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fmt.Errorf("failed to generate review sheet: %w", err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write review sheet: %w", err)
	}
	return nil
}
