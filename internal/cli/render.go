package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robustify/gmplot/pkg/pipeline"
	"github.com/robustify/gmplot/pkg/render"
)

const (
	formatHTML = "html"
	formatPNG  = "png"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path; derived from input when empty
	format   string // output format: "html" or "png"
	apiKey   string // Google Maps API key embedded into the page
	iconBase string // marker icon location override
	noCache  bool   // bypass the rendered-page cache
	open     bool   // open the result with the system default application
}

// renderCommand creates the render command.
//
// The input file is a JSON plot request: map center, zoom, and an ordered
// list of annotation points. The default output is an HTML page next to
// the input file; --format png renders a screenshot through headless
// Chrome instead.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [request.json]",
		Short: "Render a plot request to a map page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatHTML, "output format: html (default), png")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "Google Maps API key to embed")
	cmd.Flags().StringVar(&opts.iconBase, "icon-base", "", "marker icon directory or URL prefix")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the rendered-page cache")
	cmd.Flags().BoolVar(&opts.open, "open", false, "open the result after rendering")

	return cmd
}

// validateFormat checks that the format is either "html" or "png".
func validateFormat(f string) error {
	if f != formatHTML && f != formatPNG {
		return fmt.Errorf("invalid format: %s (must be 'html' or 'png')", f)
	}
	return nil
}

// outputPath derives the output file path from the flags and input path.
func outputPath(output, input, format string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}

// runRender loads the request file, runs the pipeline, and writes the
// rendered page (or its screenshot) to the output path.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	logger := loggerFromContext(ctx)

	var req pipeline.Options
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parse request %s: %w", input, err)
	}
	req.Logger = logger
	req.Save = false
	req.Output = ""

	runner, err := c.newRunner(logger, opts.noCache, nil)
	if err != nil {
		return err
	}
	runner.APIKey = opts.apiKey
	runner.IconBase = opts.iconBase

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, req)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d points", res.Stats.Points))

	out := res.HTML
	if opts.format == formatPNG {
		spinner := newSpinnerWithContext(ctx, "Capturing screenshot...")
		spinner.Start()
		out, err = render.PNG(ctx, res.HTML)
		spinner.Stop()
		if err != nil {
			return err
		}
	}

	path := outputPath(opts.output, input, opts.format)
	if err := os.WriteFile(path, out, 0644); err != nil {
		return err
	}

	printSuccess("Generated %s map", opts.format)
	printStats(res.Stats.Points, res.Stats.Groups, res.CacheHit)
	printFile(path)

	if opts.open {
		if err := openFile(path); err != nil {
			printWarning("Could not open %s: %v", path, err)
		}
	}
	return nil
}

// openFile opens path with the platform's default application.
func openFile(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path).Start()
	default:
		return exec.Command("xdg-open", path).Start()
	}
}
