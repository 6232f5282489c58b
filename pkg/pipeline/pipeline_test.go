package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/robustify/gmplot/pkg/cache"
	"github.com/robustify/gmplot/pkg/errors"
	"github.com/robustify/gmplot/pkg/store"
)

func testRunner(t *testing.T) *Runner {
	t.Helper()
	r := NewRunner(nil, nil, nil)
	r.MinInterval = 0
	return r
}

func scatterPoints(n int) []Point {
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{
			Lat:   37.77 + float64(i)*0.001,
			Lng:   -122.41,
			Color: "red",
			Size:  40,
			Type:  "scatter",
		}
	}
	return pts
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{
		Points:    scatterPoints(1),
		CenterLat: 37.77,
		CenterLng: -122.41,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Zoom != DefaultZoom {
		t.Errorf("Zoom = %d, want %d", opts.Zoom, DefaultZoom)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}
}

func TestValidateEmptyPoints(t *testing.T) {
	opts := Options{CenterLat: 37.77, CenterLng: -122.41}
	err := opts.ValidateAndSetDefaults()
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
	if !strings.Contains(err.Error(), "no points") {
		t.Errorf("error = %q, want mention of empty points", err)
	}
}

func TestValidateUnsupportedType(t *testing.T) {
	pts := scatterPoints(2)
	pts[1].Type = "heatmap"
	opts := Options{Points: pts, CenterLat: 37.77, CenterLng: -122.41}
	err := opts.ValidateAndSetDefaults()
	if !errors.Is(err, errors.ErrCodeUnsupportedType) {
		t.Fatalf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnsupportedType)
	}
	if !strings.Contains(err.Error(), "heatmap") {
		t.Errorf("error = %q, want offending type", err)
	}
}

func TestValidateSaveWithoutOutput(t *testing.T) {
	opts := Options{Points: scatterPoints(1), Save: true}
	err := opts.ValidateAndSetDefaults()
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestMapType(t *testing.T) {
	opts := Options{Satellite: true}
	if got := opts.MapType(); got != "satellite" {
		t.Errorf("MapType() = %q, want %q", got, "satellite")
	}
	opts.Satellite = false
	if got := opts.MapType(); got != "" {
		t.Errorf("MapType() = %q, want empty", got)
	}
}

func TestExecuteScatter(t *testing.T) {
	r := testRunner(t)
	res, err := r.Execute(context.Background(), Options{
		Points:    scatterPoints(3),
		CenterLat: 37.77,
		CenterLng: -122.41,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Stats.Points != 3 {
		t.Errorf("Stats.Points = %d, want 3", res.Stats.Points)
	}
	if res.Stats.Groups != 1 {
		t.Errorf("Stats.Groups = %d, want 1", res.Stats.Groups)
	}
	html := string(res.HTML)
	// One batched polygon for the whole group, not one per point.
	if got := strings.Count(html, "new google.maps.Polygon({"); got != 1 {
		t.Errorf("polygon count = %d, want 1", got)
	}
	if !strings.Contains(html, `fillColor: "#FF0000"`) {
		t.Error("page missing resolved scatter color")
	}
}

func TestExecuteLine(t *testing.T) {
	r := testRunner(t)
	pts := scatterPoints(3)
	for i := range pts {
		pts[i].Type = "line"
		pts[i].Size = 2
	}
	res, err := r.Execute(context.Background(), Options{
		Points:    pts,
		CenterLat: 37.77,
		CenterLng: -122.41,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	html := string(res.HTML)
	if !strings.Contains(html, "google.maps.Polyline") {
		t.Error("page missing polyline")
	}
	if !strings.Contains(html, "strokeWeight: 2") {
		t.Error("line size not used as stroke weight")
	}
}

func TestExecuteMarkerAndText(t *testing.T) {
	r := testRunner(t)
	pts := []Point{
		{Lat: 37.77, Lng: -122.41, Color: "blue", Type: "marker"},
		{Lat: 37.78, Lng: -122.42, Color: "black", Type: "text", Text: "depot"},
		{Lat: 37.79, Lng: -122.43, Color: "green", Type: "marker_text", Text: "dock"},
	}
	res, err := r.Execute(context.Background(), Options{
		Points:    pts,
		CenterLat: 37.77,
		CenterLng: -122.41,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	html := string(res.HTML)
	for _, want := range []string{"0000FF.png", "clear.png", `text: "depot"`, `text: "dock"`} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if res.Stats.Groups != 3 {
		t.Errorf("Stats.Groups = %d, want 3", res.Stats.Groups)
	}
}

func TestExecuteUnsupportedType(t *testing.T) {
	r := testRunner(t)
	pts := scatterPoints(1)
	pts[0].Type = "heatmap"
	_, err := r.Execute(context.Background(), Options{
		Points:    pts,
		CenterLat: 37.77,
		CenterLng: -122.41,
	})
	if !errors.Is(err, errors.ErrCodeUnsupportedType) {
		t.Fatalf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnsupportedType)
	}
}

func TestExecuteThrottled(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	r.MinInterval = time.Hour

	opts := Options{
		Points:    scatterPoints(1),
		CenterLat: 37.77,
		CenterLng: -122.41,
	}
	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}

	_, err := r.Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeThrottled) {
		t.Fatalf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeThrottled)
	}
	if !strings.Contains(err.Error(), "minimum time between plot requests") {
		t.Errorf("error = %q, want throttle message", err)
	}

	// A rejected request must not reset the window.
	before := r.lastRun
	if _, err := r.Execute(context.Background(), opts); err == nil {
		t.Fatal("third Execute() succeeded, want throttled")
	}
	if !r.lastRun.Equal(before) {
		t.Error("rejected request advanced the throttle window")
	}
}

func TestExecuteFailureDoesNotAdvanceThrottle(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	r.MinInterval = time.Hour

	pts := scatterPoints(1)
	pts[0].Type = "heatmap"
	if _, err := r.Execute(context.Background(), Options{
		Points:    pts,
		CenterLat: 37.77,
		CenterLng: -122.41,
	}); err == nil {
		t.Fatal("Execute() succeeded with unsupported type")
	}
	if !r.lastRun.IsZero() {
		t.Error("failed session advanced the throttle window")
	}
}

func TestExecuteSave(t *testing.T) {
	r := testRunner(t)
	path := filepath.Join(t.TempDir(), "out.html")
	res, err := r.Execute(context.Background(), Options{
		Points:    scatterPoints(1),
		CenterLat: 37.77,
		CenterLng: -122.41,
		Save:      true,
		Output:    path,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != string(res.HTML) {
		t.Error("saved file differs from returned page")
	}
}

func TestExecuteCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r := NewRunner(c, nil, nil)
	r.MinInterval = 0

	opts := Options{
		Points:    scatterPoints(2),
		CenterLat: 37.77,
		CenterLng: -122.41,
	}
	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if first.CacheHit {
		t.Error("first run reported a cache hit")
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheHit {
		t.Error("second identical run missed the cache")
	}
	if string(first.HTML) != string(second.HTML) {
		t.Error("cached page differs from rendered page")
	}
}

func TestExecuteArchive(t *testing.T) {
	st := store.NewMemoryStore()
	r := NewRunner(nil, st, nil)
	r.MinInterval = 0

	res, err := r.Execute(context.Background(), Options{
		Points:    scatterPoints(1),
		CenterLat: 37.77,
		CenterLng: -122.41,
		Name:      "harbor run",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.DocID == "" {
		t.Fatal("DocID empty with archive store configured")
	}

	doc, err := st.Get(context.Background(), res.DocID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if doc.Name != "harbor run" {
		t.Errorf("Name = %q, want %q", doc.Name, "harbor run")
	}
	if string(doc.HTML) != string(res.HTML) {
		t.Error("archived page differs from returned page")
	}
	if doc.Points != 1 {
		t.Errorf("Points = %d, want 1", doc.Points)
	}
}
