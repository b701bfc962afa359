package render

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// ChromeOptions configures the headless browser session backing one render.
type ChromeOptions struct {
	ViewportWidth  int64
	ViewportHeight int64
	Scale          float64 // device scale factor
	Language       string
}

// DefaultChromeOptions returns the options used for themed renders.
func DefaultChromeOptions() ChromeOptions {
	return ChromeOptions{
		ViewportWidth:  2200,
		ViewportHeight: 2800,
		Scale:          2.0,
		Language:       "ko-KR",
	}
}

// DefaultSplitChromeOptions returns the options used for row-split renders,
// with a taller viewport so long tables lay out without scrolling.
func DefaultSplitChromeOptions() ChromeOptions {
	opts := DefaultChromeOptions()
	opts.ViewportHeight = 4000
	return opts
}

// ChromeEngine drives a dedicated headless Chrome process through the
// DevTools protocol. Each engine owns exactly one browser and one tab; the
// process is torn down by Close on every exit path, so engines are never
// reused across files.
type ChromeEngine struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
}

var _ Engine = (*ChromeEngine)(nil)

// NewChromeEngine launches a browser process and prepares a blank tab with
// the configured viewport, scale factor and language.
func NewChromeEngine(ctx context.Context, opts ChromeOptions) (*ChromeEngine, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("lang", opts.Language),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	e := &ChromeEngine{ctx: tabCtx, cancel: tabCancel, allocCancel: allocCancel}
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		emulation.SetDeviceMetricsOverride(opts.ViewportWidth, opts.ViewportHeight, opts.Scale, false),
	)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	return e, nil
}

// Close shuts down the tab and the browser process.
func (e *ChromeEngine) Close() error {
	e.cancel()
	e.allocCancel()
	return nil
}

// run executes chromedp actions on the engine's tab. Actions must run on the
// tab context; the caller context only gates entry.
func (e *ChromeEngine) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return chromedp.Run(e.ctx, actions...)
}

// jsCall builds a call expression for a JS arrow function with JSON-encoded
// arguments, mirroring the browser-side evaluate(fn, args...) pattern.
func jsCall(fn string, args ...any) string {
	enc := make([]string, len(args))
	for i, a := range args {
		b, err := json.Marshal(a)
		if err != nil {
			b = []byte("null")
		}
		enc[i] = string(b)
	}
	return fmt.Sprintf("(%s)(%s)", fn, strings.Join(enc, ", "))
}

func (e *ChromeEngine) LoadDocument(ctx context.Context, doc string) error {
	return e.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		tree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		return page.SetDocumentContent(tree.Frame.ID, doc).Do(ctx)
	}))
}

const injectStyleJS = `(css) => {
	const s = document.createElement('style');
	s.textContent = css;
	(document.head || document.documentElement).appendChild(s);
	return true;
}`

func (e *ChromeEngine) InjectStyle(ctx context.Context, css string) error {
	var ok bool
	return e.run(ctx, chromedp.Evaluate(jsCall(injectStyleJS, css), &ok))
}

const mountStageJS = `(id, mt, mr, mb, ml) => {
	const table = document.querySelector('table');
	if (!table) return false;

	let shot = document.getElementById(id);
	if (!shot) {
		shot = document.createElement('div');
		shot.id = id;
		document.body.prepend(shot);
	}
	shot.style.paddingTop = mt + 'px';
	shot.style.paddingRight = mr + 'px';
	shot.style.paddingBottom = mb + 'px';
	shot.style.paddingLeft = ml + 'px';
	shot.appendChild(table);
	return true;
}`

func (e *ChromeEngine) MountStage(ctx context.Context, pad Margins) error {
	var found bool
	expr := jsCall(mountStageJS, stageID, pad.Top, pad.Right, pad.Bottom, pad.Left)
	if err := e.run(ctx, chromedp.Evaluate(expr, &found)); err != nil {
		return fmt.Errorf("failed to mount stage: %w", err)
	}
	if !found {
		return ErrNoTable
	}
	return nil
}

const restyleStageJS = `(id, color, mt, mr, mb, ml) => {
	const shot = document.getElementById(id);
	if (!shot) return false;
	shot.style.backgroundColor = color;
	shot.style.paddingTop = mt + 'px';
	shot.style.paddingRight = mr + 'px';
	shot.style.paddingBottom = mb + 'px';
	shot.style.paddingLeft = ml + 'px';
	return true;
}`

func (e *ChromeEngine) RestyleStage(ctx context.Context, background string, pad Margins) error {
	var ok bool
	expr := jsCall(restyleStageJS, stageID, background, pad.Top, pad.Right, pad.Bottom, pad.Left)
	if err := e.run(ctx, chromedp.Evaluate(expr, &ok)); err != nil {
		return fmt.Errorf("failed to restyle stage: %w", err)
	}
	if !ok {
		return fmt.Errorf("stage %q is not mounted", stageID)
	}
	return nil
}

const measureCellsJS = `(id) => {
	const cells = Array.from(document.querySelectorAll('#' + id + ' td, #' + id + ' th'));
	return cells.map(el => {
		const r = el.getBoundingClientRect();
		return { w: Math.round(r.width * 100) / 100, h: Math.round(r.height * 100) / 100 };
	});
}`

func (e *ChromeEngine) MeasureCells(ctx context.Context) ([]CellMetric, error) {
	var cells []CellMetric
	if err := e.run(ctx, chromedp.Evaluate(jsCall(measureCellsJS, stageID), &cells)); err != nil {
		return nil, fmt.Errorf("failed to measure cells: %w", err)
	}
	return cells, nil
}

const tableGeometryJS = `() => {
	const table = document.querySelector('table');
	if (!table) return { found: false };

	const rect = table.getBoundingClientRect();
	const rows = [];
	table.querySelectorAll('tr').forEach((tr, index) => {
		const r = tr.getBoundingClientRect();
		rows.push({
			index: index,
			top: r.top - rect.top,
			bottom: r.bottom - rect.top,
			height: r.height
		});
	});

	return {
		found: true,
		rows: rows,
		width: rect.width,
		height: rect.height,
		pageTop: rect.top + window.scrollY,
		pageLeft: rect.left + window.scrollX
	};
}`

func (e *ChromeEngine) TableGeometry(ctx context.Context) (*TableBox, error) {
	var res struct {
		Found bool `json:"found"`
		TableBox
	}
	if err := e.run(ctx, chromedp.Evaluate(jsCall(tableGeometryJS), &res)); err != nil {
		return nil, fmt.Errorf("failed to measure table geometry: %w", err)
	}
	if !res.Found {
		return nil, nil
	}
	box := res.TableBox
	return &box, nil
}

const computedFontJS = `(id) => {
	const el = document.getElementById(id) || document.body;
	return getComputedStyle(el).fontFamily;
}`

func (e *ChromeEngine) ComputedFontFamily(ctx context.Context) (string, error) {
	var family string
	if err := e.run(ctx, chromedp.Evaluate(jsCall(computedFontJS, stageID), &family)); err != nil {
		return "", fmt.Errorf("failed to read computed font: %w", err)
	}
	return family, nil
}

func (e *ChromeEngine) WaitFonts(ctx context.Context) error {
	expr := `document.fonts ? document.fonts.ready.then(() => true) : Promise.resolve(true)`
	var ok bool
	return e.run(ctx, chromedp.Evaluate(expr, &ok,
		func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}))
}

func (e *ChromeEngine) Settle(ctx context.Context, d time.Duration) error {
	return e.run(ctx, chromedp.Sleep(d))
}

func (e *ChromeEngine) CaptureElement(ctx context.Context, selector string) ([]byte, error) {
	var buf []byte
	err := e.run(ctx, chromedp.Screenshot(selector, &buf, chromedp.NodeVisible, chromedp.ByQuery))
	if err != nil {
		return nil, fmt.Errorf("failed to screenshot %q: %w", selector, err)
	}
	return buf, nil
}

func (e *ChromeEngine) CaptureRegion(ctx context.Context, r Region) ([]byte, error) {
	var buf []byte
	err := e.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, err = page.CaptureScreenshot().
			WithClip(&page.Viewport{X: r.X, Y: r.Y, Width: r.W, Height: r.H, Scale: 1}).
			WithCaptureBeyondViewport(true).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to screenshot region: %w", err)
	}
	return buf, nil
}
