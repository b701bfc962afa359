package render

import (
	"fmt"
	"math/rand"
	"strings"
)

// Theme is a named visual variant applied on top of the base stylesheet.
// Themes are decorative only: colors, header shading, zebra striping and a
// wrapper shadow. Anything that would move cell borders must fail the
// stability check in the theme search.
type Theme struct {
	Name        string
	BorderColor string
	HeaderBG    string
	HeaderText  string
	StripeBG    string
	BodyBG      string
	Shadow      string
	Zebra       bool
	Weight      float64 // relative draw probability, need not sum to 1
}

// PlainTheme is the uncolored pseudo-theme applied when the color-probability
// roll skips the theme search.
var PlainTheme = Theme{
	Name:        "plain",
	BorderColor: "#222222",
	HeaderBG:    "#ffffff",
	HeaderText:  "#111111",
	StripeBG:    "#ffffff",
	BodyBG:      "#ffffff",
	Shadow:      "none",
	Zebra:       false,
	Weight:      1.0,
}

// Catalog is an ordered, immutable set of candidate themes. Weight overrides
// are applied once at startup via WithWeights; the catalog is never mutated
// mid-batch and may be shared read-only across workers.
type Catalog []Theme

// DefaultCatalog returns the built-in theme set.
func DefaultCatalog() Catalog {
	return Catalog{
		{"gray_clean", "#222222", "#f1f1f1", "#111111", "#fafafa", "#ffffff", "none", true, 3.5},
		{"soft_card", "#d7dbe7", "#eef1f8", "#1f2430", "#f8f9fd", "#ffffff", "0 6px 18px rgba(0,0,0,0.08)", true, 1.0},
		{"blue_header", "#c8d3ea", "#2f5aa6", "#ffffff", "#f3f6ff", "#ffffff", "0 4px 14px rgba(47,90,166,0.12)", true, 0.2},
		{"mono", "#333333", "#ffffff", "#111111", "#ffffff", "#ffffff", "none", false, 3.5},
	}
}

// WithWeights returns a copy of the catalog with per-theme weight overrides.
// Unknown theme names are an error so a typo in a weights file is caught at
// startup rather than silently ignored.
func (c Catalog) WithWeights(weights map[string]float64) (Catalog, error) {
	out := make(Catalog, len(c))
	copy(out, c)
	for name, w := range weights {
		found := false
		for i := range out {
			if out[i].Name == name {
				out[i].Weight = w
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown theme %q in weight overrides", name)
		}
	}
	return out, nil
}

// Pick draws one theme using weighted random selection. Themes with
// non-positive weight are excluded unless every weight is non-positive, in
// which case the draw is uniform.
func (c Catalog) Pick(r *rand.Rand) Theme {
	var total float64
	for _, t := range c {
		if t.Weight > 0 {
			total += t.Weight
		}
	}
	if total <= 0 {
		return c[r.Intn(len(c))]
	}

	x := r.Float64() * total
	for _, t := range c {
		if t.Weight <= 0 {
			continue
		}
		x -= t.Weight
		if x < 0 {
			return t
		}
	}
	return c[len(c)-1]
}

// ThemeCSS emits the stylesheet for a theme. Later injections override
// earlier ones, so rejected candidates are simply painted over by the next
// attempt.
func ThemeCSS(t Theme) string {
	var b strings.Builder

	fmt.Fprintf(&b, `
    #%[1]s th, #%[1]s td {
      border-color: %[2]s !important;
      background: %[3]s;
    }

    #%[1]s th {
      background: %[4]s !important;
      color: %[5]s !important;
    }

    #%[1]s table tr:first-child td {
      background: %[4]s;
      color: %[5]s;
      font-weight: 600;
      text-align: center;
    }

    #%[1]s {
      box-shadow: %[6]s;
    }
`, stageID, t.BorderColor, t.BodyBG, t.HeaderBG, t.HeaderText, t.Shadow)

	if t.Zebra {
		fmt.Fprintf(&b, `
    #%s table tr:nth-child(even) td {
      background: %s;
    }
`, stageID, t.StripeBG)
	}

	return b.String()
}
