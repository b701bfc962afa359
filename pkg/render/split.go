package render

import (
	"context"
	"fmt"
	"os"
)

// RowSpan is a closed interval of row indexes forming one image segment.
type RowSpan struct {
	Start, End int
}

// SplitRows greedily partitions rows into height-bounded groups. A group is
// closed when adding the next row would exceed maxHeight and the group
// already holds at least one row, so every boundary falls between two rows.
// A single row taller than the budget forms its own span rather than being
// dropped or truncated. The returned spans are contiguous and cover
// [0, len(rows)-1] exactly once.
func SplitRows(rows []RowBox, maxHeight float64) []RowSpan {
	if len(rows) == 0 {
		return nil
	}

	var spans []RowSpan
	start := 0
	var height float64

	for i, row := range rows {
		if height+row.Height > maxHeight && i > start {
			spans = append(spans, RowSpan{Start: start, End: i - 1})
			start = i
			height = row.Height
		} else {
			height += row.Height
		}
	}
	if start < len(rows) {
		spans = append(spans, RowSpan{Start: start, End: len(rows) - 1})
	}
	return spans
}

// RenderSplit renders the document's table, splitting it into row-aligned
// segments when its height exceeds cfg.MaxHeight. Returns the written image
// paths: a single un-suffixed path when no split was needed, otherwise one
// `_<n>`-suffixed path per segment in order. A document with no table rows
// is captured whole (body screenshot) as a single image.
func RenderSplit(ctx context.Context, eng Engine, markup, outPath string, cfg SplitConfig) ([]string, error) {
	doc := WrapDocumentStyled(markup, ExtractFontFamily(markup))
	if err := eng.LoadDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	if err := eng.Settle(ctx, contentSettle); err != nil {
		return nil, err
	}

	geo, err := eng.TableGeometry(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to measure table: %w", err)
	}

	if geo == nil || len(geo.Rows) == 0 {
		shot, err := eng.CaptureElement(ctx, "body")
		if err != nil {
			return nil, fmt.Errorf("failed to capture body: %w", err)
		}
		if err := os.WriteFile(outPath, shot, 0644); err != nil {
			return nil, fmt.Errorf("failed to write image: %w", err)
		}
		return []string{outPath}, nil
	}

	spans := SplitRows(geo.Rows, cfg.MaxHeight)
	if geo.Height <= cfg.MaxHeight || len(spans) <= 1 {
		shot, err := eng.CaptureElement(ctx, "table")
		if err != nil {
			return nil, fmt.Errorf("failed to capture table: %w", err)
		}
		if err := os.WriteFile(outPath, shot, 0644); err != nil {
			return nil, fmt.Errorf("failed to write image: %w", err)
		}
		return []string{outPath}, nil
	}

	var written []string
	for part, span := range spans {
		top := geo.Rows[span.Start].Top
		bottom := geo.Rows[span.End].Bottom

		clip := Region{
			X: geo.PageLeft - cfg.Padding,
			Y: geo.PageTop + top - cfg.Padding,
			W: geo.Width + cfg.Padding*2,
			H: (bottom - top) + cfg.Padding*2,
		}

		shot, err := eng.CaptureRegion(ctx, clip)
		if err != nil {
			return written, fmt.Errorf("failed to capture rows %d-%d: %w", span.Start+1, span.End+1, err)
		}

		partPath := SplitPartPath(outPath, part+1)
		if err := os.WriteFile(partPath, shot, 0644); err != nil {
			return written, fmt.Errorf("failed to write image: %w", err)
		}
		written = append(written, partPath)
	}
	return written, nil
}
