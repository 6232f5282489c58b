package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/robustify/gmplot/pkg/plot"
)

func TestPageMapBlock(t *testing.T) {
	p := plot.New(42.5, -83.0, 13, "satellite")
	page := string(Page(p))

	for _, want := range []string{
		"var centerlatlng = new google.maps.LatLng(42.500000, -83.000000);",
		"zoom: 13,",
		"mapTypeId: google.maps.MapTypeId.SATELLITE",
		`<div id="map_canvas"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestPageMarkerIcons(t *testing.T) {
	p := plot.New(0, 0, 10, "")
	p.Marker(1, 2, "red")
	page := string(Page(p))

	if !strings.Contains(page, "markers/FF0000.png") {
		t.Error("page missing color-keyed icon reference")
	}
}

func TestPageTextUsesClearIcon(t *testing.T) {
	p := plot.New(0, 0, 10, "")
	p.Text(1, 2, "black", "depot", false)
	page := string(Page(p))

	if !strings.Contains(page, "markers/clear.png") {
		t.Error("text label should reference the clear icon")
	}
	if !strings.Contains(page, `text: "depot"`) {
		t.Error("page missing label text")
	}
}

func TestPageOverlays(t *testing.T) {
	p := plot.New(0, 0, 10, "")
	p.Plot([]float64{1, 2}, []float64{10, 20}, plot.Opts{"color": "blue", "edge_width": 3.0})
	p.Circle(1, 2, 100, plot.Opts{"color": "red"})
	page := string(Page(p))

	for _, want := range []string{
		"new google.maps.Polyline({",
		`strokeColor: "#0000FF"`,
		"strokeWeight: 3.000000",
		"new google.maps.Polygon({",
		`fillColor: "#FF0000"`,
		"fillOpacity: 0.500000",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

// A scatter group in circle mode renders as one polygon with one ring per
// point, not one polygon per point.
func TestPageBatchesScatterGroup(t *testing.T) {
	p := plot.New(0, 0, 10, "")
	p.Scatter([]float64{1, 2, 3}, []float64{10, 20, 30}, plot.Opts{"color": "red"}, false)
	page := string(Page(p))

	if got := strings.Count(page, "new google.maps.Polygon({"); got != 1 {
		t.Errorf("polygon count = %d, want 1", got)
	}
	if !strings.Contains(page, "var shapecoords0") {
		t.Error("page missing shape coordinate array")
	}
	if strings.Contains(page, "var shapecoords1") {
		t.Error("scatter group should not emit a second shape")
	}
}

func TestPageAPIKey(t *testing.T) {
	p := plot.New(0, 0, 10, "")

	withoutKey := Page(p)
	if bytes.Contains(withoutKey, []byte("key=")) {
		t.Error("page without API key should not embed a key script")
	}

	withKey := Page(p, WithAPIKey("abc123"))
	if !bytes.Contains(withKey, []byte("key=abc123")) {
		t.Error("page with API key should embed the key script")
	}
}

func TestPageIconBaseOption(t *testing.T) {
	p := plot.New(0, 0, 10, "")
	p.Marker(1, 2, "blue")
	page := string(Page(p, WithIconBase("https://icons.example.com/m")))

	if !strings.Contains(page, "https://icons.example.com/m/0000FF.png") {
		t.Error("page missing custom icon base")
	}
}

// Statements appear in insertion order: map block, points, text points,
// paths, shapes.
func TestPageStatementOrder(t *testing.T) {
	p := plot.New(0, 0, 10, "")
	p.Marker(1, 1, "red")
	p.Text(2, 2, "black", "label", false)
	p.Plot([]float64{1, 2}, []float64{1, 2}, nil)
	p.Circle(3, 3, 50, nil)
	page := string(Page(p))

	markerAt := strings.Index(page, "title: \"no implementation\"")
	textAt := strings.Index(page, "fontWeight")
	pathAt := strings.Index(page, "Polyline")
	shapeAt := strings.Index(page, "Polygon")

	if markerAt < 0 || textAt < 0 || pathAt < 0 || shapeAt < 0 {
		t.Fatalf("page missing sections: marker=%d text=%d path=%d shape=%d", markerAt, textAt, pathAt, shapeAt)
	}
	if !(markerAt < textAt && textAt < pathAt && pathAt < shapeAt) {
		t.Errorf("sections out of order: marker=%d text=%d path=%d shape=%d", markerAt, textAt, pathAt, shapeAt)
	}
}

func TestPageDeterministic(t *testing.T) {
	build := func() []byte {
		p := plot.New(10, 20, 8, "")
		p.Scatter([]float64{1, 2, 3}, []float64{4, 5, 6}, plot.Opts{"color": "green"}, true)
		p.Circle(1, 2, 100, nil)
		return Page(p)
	}
	if !bytes.Equal(build(), build()) {
		t.Error("identical sessions should render identical pages")
	}
}
