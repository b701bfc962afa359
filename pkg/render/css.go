package render

import "fmt"

// stageID is the id of the wrapper element the table is relocated into for
// measurement and capture.
const stageID = "shot"

// BaseStyle fixes every layout-affecting property (font metrics, padding,
// border geometry) so the post-base-CSS measurement is the frozen baseline
// that theme candidates are checked against.
type BaseStyle struct {
	FontFamily    string // prepended to the Korean fallback stack when set
	FontSizePx    int
	LineHeight    float64
	CellPaddingPx int
	BorderWidthPx int
	BorderStyle   string
	TextColor     string
	PageBG        string
	TableBG       string
}

// DefaultBaseStyle returns the deterministic layout defaults.
func DefaultBaseStyle() BaseStyle {
	return BaseStyle{
		FontSizePx:    12,
		LineHeight:    1.25,
		CellPaddingPx: 6,
		BorderWidthPx: 1,
		BorderStyle:   "solid",
		TextColor:     "#111",
		PageBG:        "#ffffff",
		TableBG:       "#ffffff",
	}
}

// CSS renders the base stylesheet.
func (s BaseStyle) CSS() string {
	return fmt.Sprintf(`
    html, body {
      margin: 0;
      padding: 0;
      background: %[1]s;
    }

    #%[2]s {
      display: inline-block;
      background: %[3]s;
    }

    html, body, table, th, td, div, span, p, strong {
      font-family: %[4]s !important;
      color: %[5]s;
      font-size: %[6]dpx;
      line-height: %[7]g;
      font-weight: 400;
    }

    #%[2]s table {
      border-collapse: collapse;
      table-layout: fixed;
      width: auto;
      background: %[3]s;
    }

    #%[2]s th, #%[2]s td {
      border: %[8]dpx %[9]s #222;
      padding: %[10]dpx;
      vertical-align: middle;
      word-break: break-word;
      overflow-wrap: anywhere;
    }

    #%[2]s th {
      font-weight: 600;
      text-align: center;
    }
`, s.PageBG, stageID, s.TableBG, fontStack(s.FontFamily), s.TextColor,
		s.FontSizePx, s.LineHeight, s.BorderWidthPx, s.BorderStyle, s.CellPaddingPx)
}
