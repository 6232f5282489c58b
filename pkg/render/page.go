// Package render serializes a plot session into a self-contained map page.
//
// The page embeds a script that declares the map, then one statement per
// stored marker, label, polyline, and shape, in insertion order. Rendering
// is a single deterministic pass over the accumulated annotations; all
// batching decisions were made upstream when the annotations were added.
package render

import (
	"bytes"
	"fmt"

	"github.com/robustify/gmplot/pkg/plot"
)

// clearIcon is the reserved icon name for text-only labels.
const clearIcon = "clear"

// mapsAPI is the script source for the maps library.
const mapsAPI = "https://maps.googleapis.com/maps/api/js?libraries=visualization&sensor=true_or_false"

// PageOption configures page rendering.
type PageOption func(*pageRenderer)

type pageRenderer struct {
	apiKey   string
	iconBase string
}

// WithAPIKey embeds an API key as an additional script-tag reference.
func WithAPIKey(key string) PageOption {
	return func(r *pageRenderer) { r.apiKey = key }
}

// WithIconBase sets the directory or URL prefix for marker icons. Icons are
// referenced as <base>/<color>.png with the canonical color as filename.
func WithIconBase(base string) PageOption {
	return func(r *pageRenderer) { r.iconBase = base }
}

// Page serializes the plotter's map state and annotations into HTML.
func Page(p *plot.Plotter, opts ...PageOption) []byte {
	r := pageRenderer{iconBase: "markers"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	buf.WriteString("<html>\n<head>\n")
	buf.WriteString("<meta name=\"viewport\" content=\"initial-scale=1.0, user-scalable=no\" />\n")
	buf.WriteString("<meta http-equiv=\"content-type\" content=\"text/html; charset=UTF-8\"/>\n")
	buf.WriteString("<title>Google Maps - gmplot</title>\n")
	fmt.Fprintf(&buf, "<script type=\"text/javascript\" src=\"%s\"></script>\n", mapsAPI)
	buf.WriteString("<script type=\"text/javascript\">\n")
	buf.WriteString("\tfunction initialize() {\n")

	r.writeMap(&buf, p)
	for _, pt := range p.Points() {
		r.writePoint(&buf, pt)
	}
	for _, tp := range p.TextPoints() {
		r.writeTextPoint(&buf, tp)
	}
	for i, path := range p.Paths() {
		r.writePath(&buf, i, path)
	}
	for i, shape := range p.Shapes() {
		r.writeShape(&buf, i, shape)
	}

	buf.WriteString("\t}\n")
	buf.WriteString("</script>\n</head>\n")
	buf.WriteString("<body style=\"margin:0px; padding:0px;\" onload=\"initialize()\">\n")
	buf.WriteString("\t<div id=\"map_canvas\" style=\"width: 100%; height: 100%;\"></div>\n")
	if r.apiKey != "" {
		fmt.Fprintf(&buf, "<script async defer src=\"https://maps.googleapis.com/maps/api/js?key=%s&callback=initMap\"></script>\n", r.apiKey)
	}
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}

func (r *pageRenderer) icon(color string) string {
	return fmt.Sprintf("%s/%s.png", r.iconBase, color)
}

func (r *pageRenderer) writeMap(buf *bytes.Buffer, p *plot.Plotter) {
	fmt.Fprintf(buf, "\t\tvar centerlatlng = new google.maps.LatLng(%f, %f);\n", p.Center.Lat, p.Center.Lng)
	buf.WriteString("\t\tvar myOptions = {\n")
	fmt.Fprintf(buf, "\t\t\tzoom: %d,\n", p.Zoom)
	buf.WriteString("\t\t\tcenter: centerlatlng,\n")
	fmt.Fprintf(buf, "\t\t\tmapTypeId: %s\n", p.MapType)
	buf.WriteString("\t\t};\n")
	buf.WriteString("\t\tvar map = new google.maps.Map(document.getElementById(\"map_canvas\"), myOptions);\n\n")
}

func (r *pageRenderer) writePoint(buf *bytes.Buffer, pt plot.Point) {
	fmt.Fprintf(buf, "\t\tvar latlng = new google.maps.LatLng(%f, %f);\n", pt.Lat, pt.Lng)
	fmt.Fprintf(buf, "\t\tvar img = new google.maps.MarkerImage('%s');\n", r.icon(pt.Color))
	buf.WriteString("\t\tvar marker = new google.maps.Marker({\n")
	fmt.Fprintf(buf, "\t\ttitle: \"%s\",\n", pt.Title)
	buf.WriteString("\t\ticon: img,\n")
	buf.WriteString("\t\tposition: latlng\n")
	buf.WriteString("\t\t});\n")
	buf.WriteString("\t\tmarker.setMap(map);\n\n")
}

func (r *pageRenderer) writeTextPoint(buf *bytes.Buffer, tp plot.TextPoint) {
	fmt.Fprintf(buf, "\t\tvar latlng = new google.maps.LatLng(%f, %f);\n", tp.Lat, tp.Lng)
	fmt.Fprintf(buf, "\t\tvar img = new google.maps.MarkerImage('%s');\n", r.icon(clearIcon))
	buf.WriteString("\t\tvar marker = new google.maps.Marker({\n")
	fmt.Fprintf(buf, "\t\tlabel: { color: \"%s\", fontWeight: \"bold\", text: \"%s\" },\n", tp.Color, tp.Text)
	buf.WriteString("\t\ticon: img,\n")
	buf.WriteString("\t\tposition: latlng\n")
	buf.WriteString("\t\t});\n")
	buf.WriteString("\t\tmarker.setMap(map);\n\n")
}

func (r *pageRenderer) writePath(buf *bytes.Buffer, i int, path plot.Path) {
	fmt.Fprintf(buf, "\t\tvar pathcoords%d = [\n", i)
	for _, v := range path.Polyline {
		fmt.Fprintf(buf, "\t\t\tnew google.maps.LatLng(%f, %f),\n", v.Lat, v.Lng)
	}
	buf.WriteString("\t\t];\n")
	fmt.Fprintf(buf, "\t\tvar path%d = new google.maps.Polyline({\n", i)
	fmt.Fprintf(buf, "\t\tpath: pathcoords%d,\n", i)
	fmt.Fprintf(buf, "\t\tstrokeColor: \"#%s\",\n", path.Style.EdgeColor)
	fmt.Fprintf(buf, "\t\tstrokeOpacity: %f,\n", path.Style.EdgeAlpha)
	fmt.Fprintf(buf, "\t\tstrokeWeight: %f\n", path.Style.EdgeWidth)
	buf.WriteString("\t\t});\n")
	fmt.Fprintf(buf, "\t\tpath%d.setMap(map);\n\n", i)
}

func (r *pageRenderer) writeShape(buf *bytes.Buffer, i int, shape plot.Shape) {
	fmt.Fprintf(buf, "\t\tvar shapecoords%d = [\n", i)
	for _, ring := range shape.Rings {
		buf.WriteString("\t\t\t[\n")
		for _, v := range ring {
			fmt.Fprintf(buf, "\t\t\tnew google.maps.LatLng(%f, %f),\n", v.Lat, v.Lng)
		}
		buf.WriteString("\t\t\t],\n")
	}
	buf.WriteString("\t\t];\n")
	fmt.Fprintf(buf, "\t\tvar shape%d = new google.maps.Polygon({\n", i)
	fmt.Fprintf(buf, "\t\tpaths: shapecoords%d,\n", i)
	fmt.Fprintf(buf, "\t\tstrokeColor: \"#%s\",\n", shape.Style.EdgeColor)
	fmt.Fprintf(buf, "\t\tstrokeOpacity: %f,\n", shape.Style.EdgeAlpha)
	fmt.Fprintf(buf, "\t\tstrokeWeight: %f,\n", shape.Style.EdgeWidth)
	fmt.Fprintf(buf, "\t\tfillColor: \"#%s\",\n", shape.Style.FaceColor)
	fmt.Fprintf(buf, "\t\tfillOpacity: %f\n", shape.Style.FaceAlpha)
	buf.WriteString("\t\t});\n")
	fmt.Fprintf(buf, "\t\tshape%d.setMap(map);\n\n", i)
}
