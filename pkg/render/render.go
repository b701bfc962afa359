// Package render converts HTML table markup into raster images using a real
// browser layout engine.
//
// A render loads the wrapped document into a layout engine, applies a
// deterministic base stylesheet so cell geometry is reproducible, then
// searches a catalog of visual themes for one that is purely decorative:
// a candidate theme is accepted only if every cell's measured width and
// height stay within a tolerance band of the pre-theme baseline. Tables
// whose rendered height exceeds a budget can instead be partitioned into
// row-aligned image segments, so no row or column is ever cut in half.
//
// The layout engine is an injected capability (see Engine); the production
// implementation drives headless Chrome through chromedp, and tests supply
// an in-memory fake.
package render

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"
)

// Settle delays after content load and style injection. The layout engine
// needs a beat to finish font loading and reflow before measurement.
const (
	contentSettle = 100 * time.Millisecond
	styleSettle   = 30 * time.Millisecond
)

// embeddedFontFamily is the family name assigned to an externally supplied
// font file injected as a base64 @font-face rule.
const embeddedFontFamily = "LocalKR"

// Result describes a completed themed render.
type Result struct {
	ThemeName  string
	FontFamily string // computed font-family of the capture wrapper
	Margins    Margins // padding applied to the colored variant (dual renders only)
}

// RenderSingle renders one themed image of the table in tableHTML to outPath.
// The theme is drawn from the catalog under the layout-stability check; if no
// theme passes within cfg.MaxTries the render fails and no file is written.
func RenderSingle(ctx context.Context, eng Engine, tableHTML, outPath string, cfg Config) (*Result, error) {
	base, family, err := stageDocument(ctx, eng, tableHTML, cfg)
	if err != nil {
		return nil, err
	}

	theme, err := searchTheme(ctx, eng, base, cfg)
	if err != nil {
		return nil, err
	}

	applied, err := eng.ComputedFontFamily(ctx)
	if err != nil {
		applied = family
	}

	shot, err := eng.CaptureElement(ctx, "#"+stageID)
	if err != nil {
		return nil, fmt.Errorf("failed to capture stage: %w", err)
	}
	if err := os.WriteFile(outPath, shot, 0644); err != nil {
		return nil, fmt.Errorf("failed to write image: %w", err)
	}

	return &Result{ThemeName: theme.Name, FontFamily: applied}, nil
}

// RenderDual captures the standard themed image, then restyles only the
// wrapper region (pastel background, fresh random margins) and captures a
// second variant. Both images are written only after both captures succeed,
// to outStd and outColored. The restyle skips the stability check since it
// never touches the measured cells.
func RenderDual(ctx context.Context, eng Engine, tableHTML, outStd, outColored string, cfg Config) (*Result, error) {
	base, family, err := stageDocument(ctx, eng, tableHTML, cfg)
	if err != nil {
		return nil, err
	}

	theme, err := searchTheme(ctx, eng, base, cfg)
	if err != nil {
		return nil, err
	}

	applied, err := eng.ComputedFontFamily(ctx)
	if err != nil {
		applied = family
	}

	shot, err := eng.CaptureElement(ctx, "#"+stageID)
	if err != nil {
		return nil, fmt.Errorf("failed to capture stage: %w", err)
	}

	r := cfg.rng()
	margins := Margins{
		Top:    r.Intn(6),
		Right:  r.Intn(6),
		Bottom: r.Intn(6),
		Left:   r.Intn(6),
	}
	if err := eng.RestyleStage(ctx, pastelColor(r), margins); err != nil {
		return nil, fmt.Errorf("failed to restyle stage: %w", err)
	}
	if err := eng.Settle(ctx, styleSettle); err != nil {
		return nil, err
	}

	colored, err := eng.CaptureElement(ctx, "#"+stageID)
	if err != nil {
		return nil, fmt.Errorf("failed to capture colored stage: %w", err)
	}

	// Both captures succeeded; only now touch the filesystem, so a failed
	// pair never leaves a lone standard image behind.
	if err := os.WriteFile(outStd, shot, 0644); err != nil {
		return nil, fmt.Errorf("failed to write image: %w", err)
	}
	if err := os.WriteFile(outColored, colored, 0644); err != nil {
		return nil, fmt.Errorf("failed to write colored image: %w", err)
	}

	return &Result{ThemeName: theme.Name, FontFamily: applied, Margins: margins}, nil
}

// RenderRaw renders the document without theme search, font forcing beyond
// the fallback stack, or margin transforms. The table is captured directly,
// or the whole body when the document has no table.
func RenderRaw(ctx context.Context, eng Engine, markup, outPath string) error {
	doc := WrapDocument(markup, ExtractFontFamily(markup))
	if err := eng.LoadDocument(ctx, doc); err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	if err := eng.Settle(ctx, contentSettle); err != nil {
		return err
	}

	sel := "body"
	if geo, err := eng.TableGeometry(ctx); err == nil && geo != nil {
		sel = "table"
	}
	shot, err := eng.CaptureElement(ctx, sel)
	if err != nil {
		return fmt.Errorf("failed to capture %s: %w", sel, err)
	}
	if err := os.WriteFile(outPath, shot, 0644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

// stageDocument loads the wrapped table document, applies the optional
// embedded font and the deterministic base stylesheet, mounts the capture
// stage, and returns the baseline cell metrics every theme candidate is
// judged against.
func stageDocument(ctx context.Context, eng Engine, tableHTML string, cfg Config) ([]CellMetric, string, error) {
	// Resolve the embedded font before touching the engine so a missing
	// file fails before any browser work happens.
	var fontCSS string
	family := ExtractFontFamily(tableHTML)
	if cfg.FontPath != "" {
		css, err := FontFaceCSS(cfg.FontPath, embeddedFontFamily)
		if err != nil {
			return nil, "", err
		}
		fontCSS = css
		family = embeddedFontFamily
	}

	doc := WrapDocument(tableHTML, family)
	if err := eng.LoadDocument(ctx, doc); err != nil {
		return nil, "", fmt.Errorf("failed to load document: %w", err)
	}
	if err := eng.Settle(ctx, contentSettle); err != nil {
		return nil, "", err
	}

	if fontCSS != "" {
		if err := eng.InjectStyle(ctx, fontCSS); err != nil {
			return nil, "", fmt.Errorf("failed to inject font face: %w", err)
		}
		if err := eng.WaitFonts(ctx); err != nil {
			return nil, "", fmt.Errorf("failed to wait for fonts: %w", err)
		}
	}

	style := DefaultBaseStyle()
	style.FontFamily = family
	if err := eng.InjectStyle(ctx, style.CSS()); err != nil {
		return nil, "", fmt.Errorf("failed to inject base style: %w", err)
	}

	if err := eng.MountStage(ctx, cfg.Margins); err != nil {
		return nil, "", err
	}
	if err := eng.Settle(ctx, styleSettle); err != nil {
		return nil, "", err
	}

	base, err := eng.MeasureCells(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to measure baseline: %w", err)
	}
	return base, family, nil
}

// searchTheme draws weighted candidates from the catalog until one passes the
// stability check against the baseline metrics. A sub-threshold color roll
// applies the plain theme without searching.
func searchTheme(ctx context.Context, eng Engine, base []CellMetric, cfg Config) (Theme, error) {
	r := cfg.rng()

	if r.Float64() >= cfg.ColorProbability {
		if err := eng.InjectStyle(ctx, ThemeCSS(PlainTheme)); err != nil {
			return Theme{}, fmt.Errorf("failed to apply plain theme: %w", err)
		}
		if err := eng.Settle(ctx, styleSettle); err != nil {
			return Theme{}, err
		}
		return PlainTheme, nil
	}

	for try := 0; try < cfg.MaxTries; try++ {
		theme := cfg.Catalog.Pick(r)
		if err := eng.InjectStyle(ctx, ThemeCSS(theme)); err != nil {
			return Theme{}, fmt.Errorf("failed to apply theme %q: %w", theme.Name, err)
		}
		if err := eng.Settle(ctx, styleSettle); err != nil {
			return Theme{}, err
		}
		cur, err := eng.MeasureCells(ctx)
		if err != nil {
			return Theme{}, fmt.Errorf("failed to re-measure cells: %w", err)
		}
		// A cell-count mismatch counts as a failed attempt, not a crash.
		if WithinTolerance(base, cur, cfg.Tolerance) {
			return theme, nil
		}
	}
	return Theme{}, ErrThemeSearchExhausted
}

// pastelColor returns a very light random background color, with each RGB
// channel in [240, 255].
func pastelColor(r *rand.Rand) string {
	return fmt.Sprintf("#%02x%02x%02x", 240+r.Intn(16), 240+r.Intn(16), 240+r.Intn(16))
}
