package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func rowsOfHeight(n int, h float64) []RowBox {
	rows := make([]RowBox, n)
	top := 0.0
	for i := range rows {
		rows[i] = RowBox{Index: i, Top: top, Bottom: top + h, Height: h}
		top += h
	}
	return rows
}

func TestSplitRows(t *testing.T) {
	tests := []struct {
		name      string
		rows      []RowBox
		maxHeight float64
		want      []RowSpan
	}{
		{
			name:      "empty",
			rows:      nil,
			maxHeight: 100,
			want:      nil,
		},
		{
			name:      "all fit",
			rows:      rowsOfHeight(5, 10),
			maxHeight: 100,
			want:      []RowSpan{{0, 4}},
		},
		{
			name:      "even split",
			rows:      rowsOfHeight(4, 50),
			maxHeight: 100,
			want:      []RowSpan{{0, 1}, {2, 3}},
		},
		{
			name:      "boundary exactly at budget",
			rows:      rowsOfHeight(2, 100),
			maxHeight: 200,
			want:      []RowSpan{{0, 1}},
		},
		{
			name: "single over-budget row gets own span",
			rows: []RowBox{
				{Index: 0, Top: 0, Bottom: 50, Height: 50},
				{Index: 1, Top: 50, Bottom: 350, Height: 300},
				{Index: 2, Top: 350, Bottom: 400, Height: 50},
			},
			maxHeight: 100,
			want:      []RowSpan{{0, 0}, {1, 1}, {2, 2}},
		},
		{
			name:      "first row alone over budget",
			rows:      rowsOfHeight(1, 500),
			maxHeight: 100,
			want:      []RowSpan{{0, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitRows(tt.rows, tt.maxHeight)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("span %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitRowsCoverage(t *testing.T) {
	rows := []RowBox{
		{0, 0, 30, 30}, {1, 30, 90, 60}, {2, 90, 110, 20},
		{3, 110, 250, 140}, {4, 250, 280, 30}, {5, 280, 300, 20},
	}
	spans := SplitRows(rows, 100)

	// Spans must tile [0, len(rows)-1] contiguously.
	next := 0
	for _, s := range spans {
		if s.Start != next {
			t.Fatalf("span %v does not start at %d", s, next)
		}
		if s.End < s.Start {
			t.Fatalf("span %v is inverted", s)
		}
		next = s.End + 1
	}
	if next != len(rows) {
		t.Fatalf("spans end at %d, want %d", next, len(rows))
	}
}

func TestRenderSplitSingleImageWhenShort(t *testing.T) {
	eng := &fakeEngine{
		geometry: &TableBox{
			Rows:   rowsOfHeight(3, 30),
			Width:  400,
			Height: 90,
		},
	}
	out := filepath.Join(t.TempDir(), "table.png")

	paths, err := RenderSplit(context.Background(), eng, "<table><tr><td>a</td></tr></table>", out, DefaultSplitConfig())
	if err != nil {
		t.Fatalf("RenderSplit: %v", err)
	}
	if len(paths) != 1 || paths[0] != out {
		t.Fatalf("paths = %v, want [%s]", paths, out)
	}
	if len(eng.captured) != 1 || eng.captured[0] != "table" {
		t.Errorf("captured %v, want [table]", eng.captured)
	}
}

func TestRenderSplitTallTable(t *testing.T) {
	eng := &fakeEngine{
		geometry: &TableBox{
			Rows:     rowsOfHeight(4, 60),
			Width:    400,
			Height:   240,
			PageTop:  10,
			PageLeft: 10,
		},
	}
	out := filepath.Join(t.TempDir(), "table.png")

	cfg := DefaultSplitConfig()
	cfg.MaxHeight = 120
	cfg.Padding = 10

	paths, err := RenderSplit(context.Background(), eng, "<table><tr><td>a</td></tr></table>", out, cfg)
	if err != nil {
		t.Fatalf("RenderSplit: %v", err)
	}

	want := []string{
		SplitPartPath(out, 1),
		SplitPartPath(out, 2),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %s, want %s", i, paths[i], want[i])
		}
		if _, err := os.Stat(paths[i]); err != nil {
			t.Errorf("missing segment %s: %v", paths[i], err)
		}
	}

	if len(eng.regions) != 2 {
		t.Fatalf("captured %d regions, want 2", len(eng.regions))
	}
	// First clip: rows 0-1, top 0..120, padded by 10 around the table at (10,10).
	first := eng.regions[0]
	if first.X != 0 || first.Y != 0 || first.W != 420 || first.H != 140 {
		t.Errorf("first clip = %+v", first)
	}
	// Second clip starts at row 2 (table-local top 120).
	second := eng.regions[1]
	if second.Y != 120 || second.H != 140 {
		t.Errorf("second clip = %+v", second)
	}
}

func TestRenderSplitNoRowsCapturesBody(t *testing.T) {
	eng := &fakeEngine{} // no geometry at all
	out := filepath.Join(t.TempDir(), "page.png")

	paths, err := RenderSplit(context.Background(), eng, "<p>hello</p>", out, DefaultSplitConfig())
	if err != nil {
		t.Fatalf("RenderSplit: %v", err)
	}
	if len(paths) != 1 || paths[0] != out {
		t.Fatalf("paths = %v", paths)
	}
	if len(eng.captured) != 1 || eng.captured[0] != "body" {
		t.Errorf("captured %v, want [body]", eng.captured)
	}
}
