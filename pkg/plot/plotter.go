// Package plot implements the map annotation engine: style resolution,
// run grouping, and the per-session annotation store.
//
// A Plotter is one render session: construct it with the map state, add
// annotations through the plot operations, then hand it to pkg/render for
// serialization. Annotations are stored in insertion order with no
// deduplication; that order is the only order the renderer uses. A Plotter
// is not safe for concurrent use and must not be shared across sessions.
package plot

import (
	"strings"

	"github.com/robustify/gmplot/pkg/colors"
	"github.com/robustify/gmplot/pkg/geo"
)

// MapType selects the base layer of the generated map.
type MapType string

// Supported map types.
const (
	MapTypeRoadmap   MapType = "google.maps.MapTypeId.ROADMAP"
	MapTypeSatellite MapType = "google.maps.MapTypeId.SATELLITE"
)

// textLatOffset shifts a text label slightly south of its anchor so the
// label renders below the point.
const textLatOffset = 5e-5

// defaultScatterSize is the circle radius in meters when a scatter call
// supplies no size.
const defaultScatterSize = 40.0

// Point is a stored marker annotation. Color is canonical 6-hex.
type Point struct {
	Lat   float64
	Lng   float64
	Color string
	Title string
}

// TextPoint is a stored label annotation; Lat already carries the southward
// offset.
type TextPoint struct {
	Lat   float64
	Lng   float64
	Color string
	Text  string
}

// Path is a stored polyline with its resolved style.
type Path struct {
	Polyline []geo.Point
	Style    Style
}

// Shape is a stored filled region with its resolved style. A shape holds
// one or more rings so a whole scatter group renders as a single batched
// overlay instead of one overlay per point.
type Shape struct {
	Rings [][]geo.Point
	Style Style
}

// Plotter accumulates annotations for a single map document.
type Plotter struct {
	Center  geo.Point
	Zoom    int
	MapType MapType

	points     []Point
	textPoints []TextPoint
	paths      []Path
	shapes     []Shape
}

// New creates a Plotter centered at the given coordinates. Any casing of
// "satellite" selects the satellite base layer; everything else is roadmap.
func New(centerLat, centerLng float64, zoom int, mapType string) *Plotter {
	mt := MapTypeRoadmap
	if strings.EqualFold(mapType, "satellite") {
		mt = MapTypeSatellite
	}
	return &Plotter{
		Center:  geo.Point{Lat: centerLat, Lng: centerLng},
		Zoom:    zoom,
		MapType: mt,
	}
}

// Marker stores a marker point. An empty color defaults to red; the token
// is canonicalized through the alias tables.
func (p *Plotter) Marker(lat, lng float64, color string) {
	p.MarkerTitled(lat, lng, color, "no implementation")
}

// MarkerTitled stores a marker point with a hover title.
func (p *Plotter) MarkerTitled(lat, lng float64, color, title string) {
	if color == "" {
		color = "#FF0000"
	}
	p.points = append(p.points, Point{
		Lat:   lat,
		Lng:   lng,
		Color: colors.Resolve(color),
		Title: title,
	})
}

// Text stores a label slightly south of the anchor. An empty color defaults
// to black. When withMarker is set, a marker of the same color is stored at
// the unshifted anchor as well.
func (p *Plotter) Text(lat, lng float64, color, text string, withMarker bool) {
	if color == "" {
		color = "#000000"
	}
	p.textPoints = append(p.textPoints, TextPoint{
		Lat:   lat - textLatOffset,
		Lng:   lng,
		Color: colors.Resolve(color),
		Text:  text,
	})
	if withMarker {
		p.Marker(lat, lng, color)
	}
}

// Scatter adds the coordinate pairs as one batch. In marker mode each
// point becomes an individual marker in the cascade's summary color. In
// circle mode the whole call becomes a single shape with one geodesic
// circle ring per point, radius taken from the "size"/"s" option (default
// 40 m). Mismatched slice lengths are truncated to the shorter.
func (p *Plotter) Scatter(lats, lngs []float64, o Opts, marker bool) {
	o = o.clone()
	size := o.firstFloat(defaultScatterSize, "size", "s")
	o["size"] = size
	st := ResolveStyle(o)

	n := min(len(lats), len(lngs))
	if marker {
		for i := 0; i < n; i++ {
			p.Marker(lats[i], lngs[i], st.Color)
		}
		return
	}

	rings := make([][]geo.Point, 0, n)
	for i := 0; i < n; i++ {
		rings = append(rings, geo.Circle(lats[i], lngs[i], size))
	}
	if len(rings) > 0 {
		p.shapes = append(p.shapes, Shape{Rings: rings, Style: st})
	}
}

// Circle stores a geodesic circle of radius meters around a center point.
// Unlike scatter circles, a directly plotted circle defaults its face alpha
// to 0.5.
func (p *Plotter) Circle(lat, lng, radius float64, o Opts) {
	o = o.clone()
	if _, ok := o["face_alpha"]; !ok {
		o["face_alpha"] = 0.5
	}
	st := ResolveStyle(o)
	p.shapes = append(p.shapes, Shape{
		Rings: [][]geo.Point{geo.Circle(lat, lng, radius)},
		Style: st,
	})
}

// Plot stores a polyline through the coordinate pairs, passed through
// untransformed. Mismatched slice lengths are truncated to the shorter.
func (p *Plotter) Plot(lats, lngs []float64, o Opts) {
	st := ResolveStyle(o)
	n := min(len(lats), len(lngs))
	polyline := make([]geo.Point, 0, n)
	for i := 0; i < n; i++ {
		polyline = append(polyline, geo.Point{Lat: lats[i], Lng: lngs[i]})
	}
	p.paths = append(p.paths, Path{Polyline: polyline, Style: st})
}

// Points returns stored markers in insertion order.
func (p *Plotter) Points() []Point { return p.points }

// TextPoints returns stored labels in insertion order.
func (p *Plotter) TextPoints() []TextPoint { return p.textPoints }

// Paths returns stored polylines in insertion order.
func (p *Plotter) Paths() []Path { return p.paths }

// Shapes returns stored filled regions in insertion order.
func (p *Plotter) Shapes() []Shape { return p.shapes }
