package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/robustify/gmplot/pkg/cache"
	"github.com/robustify/gmplot/pkg/errors"
	"github.com/robustify/gmplot/pkg/observability"
	"github.com/robustify/gmplot/pkg/plot"
	"github.com/robustify/gmplot/pkg/render"
	"github.com/robustify/gmplot/pkg/store"
)

// Runner executes render sessions with caching, throttling, and optional
// archival. One Runner guards one service endpoint: the minimum-interval
// throttle is tracked per Runner, so all sessions of a deployment should go
// through the same instance.
type Runner struct {
	Cache  cache.Cache
	Store  store.Store // optional archive; nil disables archival
	Logger *log.Logger

	// APIKey, when set, is embedded into rendered pages.
	APIKey string

	// IconBase overrides the marker icon location when set.
	IconBase string

	// MinInterval is the required gap between sessions.
	MinInterval time.Duration

	mu      sync.Mutex
	lastRun time.Time
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// HTML is the rendered page.
	HTML []byte

	// DocID is the archive document id, empty when archival is disabled.
	DocID string

	// CacheHit reports whether the page came from cache.
	CacheHit bool

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Points     int
	Groups     int
	RenderTime time.Duration
}

// NewRunner creates a runner with the given cache and archive store.
// If c is nil, a NullCache is used (caching disabled).
// If st is nil, archival is disabled.
func NewRunner(c cache.Cache, st store.Store, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:       c,
		Store:       st,
		Logger:      logger,
		MinInterval: time.Duration(DefaultMinIntervalSeconds * float64(time.Second)),
	}
}

// Execute runs one complete render session.
//
// Failures surface immediately and leave no partial output: a throttled or
// invalid request mutates nothing, and a session that fails mid-plot is
// discarded rather than partially committed.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	if err := r.checkThrottle(); err != nil {
		var throttled *errors.ThrottledError
		if stderrors.As(err, &throttled) {
			observability.Session().OnSessionThrottled(ctx,
				time.Duration(throttled.Elapsed*float64(time.Second)))
		}
		return nil, err
	}

	groups := plot.GroupPoints(opts.descriptors())
	observability.Session().OnGroupComplete(ctx, len(opts.Points), len(groups))
	result := &Result{
		Stats: Stats{Points: len(opts.Points), Groups: len(groups)},
	}

	observability.Session().OnRenderStart(ctx, len(opts.Points))
	renderStart := time.Now()
	page, hit, err := r.renderWithCache(ctx, opts, groups)
	observability.Session().OnRenderComplete(ctx, len(opts.Points), time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.HTML = page
	result.CacheHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	r.markRun()

	opts.Logger.Info("rendered map",
		"points", result.Stats.Points,
		"groups", result.Stats.Groups,
		"cache_hit", hit,
		"duration", result.Stats.RenderTime)

	if opts.Save {
		if err := os.WriteFile(opts.Output, page, 0644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderIO, err, "write %s", opts.Output)
		}
		opts.Logger.Info("saved map", "path", opts.Output)
	}

	if r.Store != nil {
		doc := &store.Document{
			ID:        uuid.NewString(),
			Name:      opts.Name,
			CenterLat: opts.CenterLat,
			CenterLng: opts.CenterLng,
			Zoom:      opts.Zoom,
			Points:    len(opts.Points),
			HTML:      page,
			CreatedAt: time.Now().UTC(),
		}
		if doc.Name == "" {
			doc.Name = fmt.Sprintf("map %s", doc.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		if err := r.Store.Save(ctx, doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "archive map")
		}
		result.DocID = doc.ID
	}

	return result, nil
}

// checkThrottle rejects a session requested before MinInterval elapsed
// since the previous one. A rejection mutates no state.
func (r *Runner) checkThrottle() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lastRun.IsZero() || r.MinInterval <= 0 {
		return nil
	}
	elapsed := time.Since(r.lastRun)
	if elapsed < r.MinInterval {
		cause := &errors.ThrottledError{
			MinInterval: r.MinInterval.Seconds(),
			Elapsed:     elapsed.Seconds(),
		}
		return errors.Wrap(errors.ErrCodeThrottled, cause, "plot request rejected")
	}
	return nil
}

// markRun records a completed session for throttling.
func (r *Runner) markRun() {
	r.mu.Lock()
	r.lastRun = time.Now()
	r.mu.Unlock()
}

// renderWithCache returns the rendered page for the request, consulting the
// page cache first. The cache key is the hash of the serialized request
// plus the page-affecting runner settings.
func (r *Runner) renderWithCache(ctx context.Context, opts Options, groups []*plot.Group) ([]byte, bool, error) {
	keyData, err := json.Marshal(struct {
		Options
		APIKey   string `json:"api_key,omitempty"`
		IconBase string `json:"icon_base,omitempty"`
	}{opts, r.APIKey, r.IconBase})
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize request")
	}
	key := cache.PageKey(cache.Hash(keyData))

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "page")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "page")

	page, err := r.renderPage(opts, groups)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, page, cache.TTLPage); err == nil {
		observability.Cache().OnCacheSet(ctx, "page", len(page))
	}
	return page, false, nil
}

// renderPage builds a fresh plotter session and serializes it.
func (r *Runner) renderPage(opts Options, groups []*plot.Group) ([]byte, error) {
	p := plot.New(opts.CenterLat, opts.CenterLng, opts.Zoom, opts.MapType())
	for _, g := range groups {
		if err := plotGroup(p, g); err != nil {
			return nil, err
		}
	}

	var pageOpts []render.PageOption
	if r.APIKey != "" {
		pageOpts = append(pageOpts, render.WithAPIKey(r.APIKey))
	}
	if r.IconBase != "" {
		pageOpts = append(pageOpts, render.WithIconBase(r.IconBase))
	}
	return render.Page(p, pageOpts...), nil
}

// plotGroup issues one batched plot operation for a run of same-style
// points.
func plotGroup(p *plot.Plotter, g *plot.Group) error {
	lats := make([]float64, len(g.Members))
	lngs := make([]float64, len(g.Members))
	for i, m := range g.Members {
		lats[i] = m.Lat
		lngs[i] = m.Lng
	}

	switch g.Kind {
	case plot.KindScatter:
		p.Scatter(lats, lngs, plot.Opts{"color": g.Color, "size": g.Size}, false)
	case plot.KindLine:
		p.Plot(lats, lngs, plot.Opts{"color": g.Color, "edge_width": g.Size})
	case plot.KindMarker:
		p.Scatter(lats, lngs, plot.Opts{"color": g.Color}, true)
	case plot.KindText, plot.KindMarkerText:
		for _, m := range g.Members {
			p.Text(m.Lat, m.Lng, m.Color, m.Text, g.Kind == plot.KindMarkerText)
		}
	default:
		return errors.New(errors.ErrCodeUnsupportedType, "tried to plot an unsupported type %q", g.Kind)
	}
	return nil
}
