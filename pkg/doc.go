// Package pkg provides the core libraries for gmplot map rendering.
//
// # Overview
//
// gmplot turns ordered streams of geographic annotations into self-contained
// Google Maps HTML pages. The pkg directory is organized into five areas:
//
//  1. [plot] - Domain logic (style resolution, point grouping, plot sessions)
//  2. [geo] - Spherical geometry (geodesic circle approximation)
//  3. [render] - Serialization (HTML pages, PNG screenshots)
//  4. [pipeline] - Orchestration (group → plot → render, throttling, archival)
//  5. [cache], [store] - Infrastructure (page caching, map archival)
//
// # Architecture
//
// The typical data flow through gmplot:
//
//	Annotation stream (markers, labels, scatter points, lines)
//	         ↓
//	    [plot] package (group runs, resolve styles, accumulate session)
//	         ↓
//	    [geo] package (expand scatter points and circles into polygons)
//	         ↓
//	    [render] package (serialize the session into an HTML page)
//	         ↓
//	    HTML/PNG output, optionally cached and archived
//
// # Quick Start
//
// Render a small map:
//
//	import (
//	    "github.com/robustify/gmplot/pkg/plot"
//	    "github.com/robustify/gmplot/pkg/render"
//	)
//
//	p := plot.New(37.77, -122.41, 13, "")
//	p.Marker(37.77, -122.41, "red")
//	p.Scatter([]float64{37.78, 37.79}, []float64{-122.42, -122.43},
//	    plot.Opts{"color": "blue", "size": 40}, false)
//	page := render.Page(p)
//
// Or run the whole pipeline with caching and throttling:
//
//	import "github.com/robustify/gmplot/pkg/pipeline"
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    CenterLat: 37.77,
//	    CenterLng: -122.41,
//	    Points: []pipeline.Point{
//	        {Lat: 37.77, Lng: -122.41, Color: "red", Type: "marker"},
//	    },
//	})
package pkg
