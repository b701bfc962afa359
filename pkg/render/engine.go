package render

import (
	"context"
	"time"
)

// Margins is a per-side padding box in CSS pixels, applied to the capture
// stage around the table.
type Margins struct {
	Top, Right, Bottom, Left int
}

// Region is an absolute on-page rectangle in CSS pixels to capture.
type Region struct {
	X, Y, W, H float64
}

// RowBox is one table row's vertical extent, with Top and Bottom relative to
// the table's top edge.
type RowBox struct {
	Index  int     `json:"index"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Height float64 `json:"height"`
}

// TableBox is the measured geometry of the first table in the document:
// its rows in table-local coordinates plus the table's size and absolute
// page position.
type TableBox struct {
	Rows     []RowBox `json:"rows"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	PageTop  float64  `json:"pageTop"`
	PageLeft float64  `json:"pageLeft"`
}

// Engine abstracts the layout/rendering engine a render runs against. The
// production implementation drives a headless browser; tests inject a fake.
// All methods are blocking; a render uses exactly one engine instance and
// never shares it.
type Engine interface {
	// LoadDocument replaces the page content with a complete HTML document.
	LoadDocument(ctx context.Context, doc string) error

	// InjectStyle appends a stylesheet to the live document. Later sheets
	// override earlier ones.
	InjectStyle(ctx context.Context, css string) error

	// MountStage relocates the first table into the capture wrapper and
	// applies the padding box. Returns ErrNoTable when the document has no
	// table.
	MountStage(ctx context.Context, pad Margins) error

	// RestyleStage changes the wrapper's background color and padding
	// without touching the table itself.
	RestyleStage(ctx context.Context, background string, pad Margins) error

	// MeasureCells returns the size of every th/td under the stage in
	// document order, rounded to two decimals.
	MeasureCells(ctx context.Context) ([]CellMetric, error)

	// TableGeometry measures the first table's rows and absolute position.
	// Returns (nil, nil) when the document has no table.
	TableGeometry(ctx context.Context) (*TableBox, error)

	// ComputedFontFamily reports the resolved font-family of the stage, or
	// of the body when no stage is mounted.
	ComputedFontFamily(ctx context.Context) (string, error)

	// WaitFonts blocks until the document's fonts finished loading.
	WaitFonts(ctx context.Context) error

	// Settle waits a fixed duration for the engine to finish re-layout
	// after a content or style change.
	Settle(ctx context.Context, d time.Duration) error

	// CaptureElement screenshots the first element matching the CSS
	// selector and returns PNG bytes.
	CaptureElement(ctx context.Context, selector string) ([]byte, error)

	// CaptureRegion screenshots an absolute page region and returns PNG
	// bytes.
	CaptureRegion(ctx context.Context, r Region) ([]byte, error)

	// Close tears the engine down. Safe to call on every exit path.
	Close() error
}
