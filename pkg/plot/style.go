package plot

import "github.com/robustify/gmplot/pkg/colors"

// Opts carries caller-supplied style overrides keyed by option name.
// Several names alias the same style field ("color", "c", "edge_color",
// "ec", ...); ResolveStyle applies the documented precedence. Unknown keys
// are ignored.
type Opts map[string]any

// Style is a fully-resolved style record. Color fields hold canonical
// 6-hex-digit strings. A Style is derived once per plot call and never
// mutated afterwards.
type Style struct {
	EdgeColor string
	EdgeAlpha float64
	EdgeWidth float64
	FaceColor string
	FaceAlpha float64

	// Color is the summary color used by marker and scatter call sites.
	Color string

	// Closed is nil unless the caller set the "closed" option.
	Closed *bool
}

// ResolveStyle computes a Style from overrides using per-field fallback
// chains:
//
//	edge color  color | edge_color | ec   default #000000
//	edge alpha  alpha | edge_alpha | ea   default 1.0
//	edge width  edge_width | ew           default 1.0
//	face alpha  alpha | face_alpha | fa   default 0.3
//	face color  color | face_color | fc   default #000000
//	color       color | c | edge color | face color
//
// "alpha" feeds both alphas and "color" feeds both colors when present.
// Every color field is then canonicalized through the alias tables, so
// defaults and literals come out in the same 6-hex form as named colors.
func ResolveStyle(o Opts) Style {
	s := Style{
		EdgeColor: o.firstString("#000000", "color", "edge_color", "ec"),
		EdgeAlpha: o.firstFloat(1.0, "alpha", "edge_alpha", "ea"),
		EdgeWidth: o.firstFloat(1.0, "edge_width", "ew"),
		FaceAlpha: o.firstFloat(0.3, "alpha", "face_alpha", "fa"),
		FaceColor: o.firstString("#000000", "color", "face_color", "fc"),
	}

	s.Color = o.firstString("", "color", "c")
	if s.Color == "" {
		s.Color = s.EdgeColor
	}

	s.EdgeColor = colors.Resolve(s.EdgeColor)
	s.FaceColor = colors.Resolve(s.FaceColor)
	s.Color = colors.Resolve(s.Color)

	if v, ok := o["closed"].(bool); ok {
		s.Closed = &v
	}
	return s
}

// firstString returns the value of the first key holding a non-empty
// string, or def when none does.
func (o Opts) firstString(def string, keys ...string) string {
	for _, k := range keys {
		if v, ok := o[k].(string); ok && v != "" {
			return v
		}
	}
	return def
}

// firstFloat returns the value of the first key holding a non-zero number,
// or def when none does. Zero counts as unset.
func (o Opts) firstFloat(def float64, keys ...string) float64 {
	for _, k := range keys {
		switch v := o[k].(type) {
		case float64:
			if v != 0 {
				return v
			}
		case int:
			if v != 0 {
				return float64(v)
			}
		}
	}
	return def
}

// clone returns a shallow copy so call sites can inject defaults without
// mutating the caller's map.
func (o Opts) clone() Opts {
	c := make(Opts, len(o)+2)
	for k, v := range o {
		c[k] = v
	}
	return c
}
