// Package pipeline provides the core plot pipeline for gmplot.
//
// This package implements the complete group → plot → render pipeline that
// is shared by the CLI and the HTTP server. Centralizing it keeps request
// semantics identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Group: partition the ordered point stream into maximal same-style runs
//  2. Plot: dispatch one batched plot operation per run
//  3. Render: serialize the session into the map page
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Points:    points,
//	    CenterLat: 42.5,
//	    CenterLng: -83.0,
//	    Zoom:      13,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page := result.HTML
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/robustify/gmplot/pkg/errors"
	"github.com/robustify/gmplot/pkg/plot"
)

// Default values shared by the CLI and the HTTP server.
const (
	// DefaultZoom is the map zoom level when the request leaves it unset.
	DefaultZoom = 13

	// DefaultMinIntervalSeconds is the minimum time between render
	// sessions per Runner.
	DefaultMinIntervalSeconds = 3.0
)

// Point is one descriptor of the incoming annotation stream.
type Point struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Color string  `json:"color,omitempty"`
	Size  float64 `json:"size,omitempty"`
	Type  string  `json:"type"`
	Text  string  `json:"text,omitempty"`
}

// Options contains all configuration for one render session.
// This struct supports JSON serialization for API requests; its serialized
// form is also the cache key for the rendered page.
type Options struct {
	// Annotation stream
	Points []Point `json:"points"`

	// Map state
	CenterLat float64 `json:"center_lat"`
	CenterLng float64 `json:"center_lng"`
	Zoom      int     `json:"zoom,omitempty"`
	Satellite bool    `json:"satellite,omitempty"`

	// Output options
	Save   bool   `json:"save,omitempty"`   // persist to Output instead of returning only
	Output string `json:"output,omitempty"` // target file path when Save is set
	Name   string `json:"name,omitempty"`   // archive display name

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Points) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no points present in request")
	}
	for _, p := range o.Points {
		if !plot.ValidKinds[plot.Kind(p.Type)] {
			return errors.New(errors.ErrCodeUnsupportedType, "tried to plot an unsupported type %q", p.Type)
		}
	}
	if o.Save && o.Output == "" {
		return errors.New(errors.ErrCodeInvalidInput, "save requested without an output path")
	}
	if o.Zoom == 0 {
		o.Zoom = DefaultZoom
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// MapType returns the plotter map-type token for the request.
func (o *Options) MapType() string {
	if o.Satellite {
		return "satellite"
	}
	return ""
}

// descriptors converts the request points into grouper descriptors.
func (o *Options) descriptors() []plot.PointDesc {
	descs := make([]plot.PointDesc, len(o.Points))
	for i, p := range o.Points {
		descs[i] = plot.PointDesc{
			Lat:   p.Lat,
			Lng:   p.Lng,
			Color: p.Color,
			Size:  p.Size,
			Kind:  plot.Kind(p.Type),
			Text:  p.Text,
		}
	}
	return descs
}
