package render

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudscope/cloudscope/pkg/cache"
	"github.com/cloudscope/cloudscope/pkg/layout"
	"github.com/cloudscope/cloudscope/pkg/view"
)

// Format names an export output.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// DefaultExportTTL bounds how long cached artifacts stay valid.
const DefaultExportTTL = 24 * time.Hour

// Exporter renders views to artifacts, caching finished output by content.
type Exporter struct {
	cache cache.Cache
	ttl   time.Duration

	// renderSVG and renderPNG are swappable for tests.
	renderSVG func(ctx context.Context, dot string, mode layout.Mode) ([]byte, error)
	renderPNG func(ctx context.Context, dot string, mode layout.Mode) ([]byte, error)
}

// NewExporter creates an exporter. A nil cache disables caching.
func NewExporter(c cache.Cache) *Exporter {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Exporter{cache: c, ttl: DefaultExportTTL, renderSVG: RenderSVG, renderPNG: RenderPNG}
}

// Export renders the view with the given plan and format.
func (e *Exporter) Export(ctx context.Context, v *view.View, plan layout.Plan, format Format) ([]byte, error) {
	dot := ToDOT(v, plan)
	if format == FormatDOT {
		return []byte(dot), nil
	}

	var render func(ctx context.Context, dot string, mode layout.Mode) ([]byte, error)
	switch format {
	case FormatSVG:
		render = e.renderSVG
	case FormatPNG:
		render = e.renderPNG
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	key := exportKey(v, plan, string(format))
	if data, ok, err := e.cache.Get(ctx, key); err == nil && ok {
		return data, nil
	}

	data, err := render(ctx, dot, plan.Mode)
	if err != nil {
		return nil, err
	}
	if err := e.cache.Set(ctx, key, data, e.ttl); err != nil {
		// Cache failures degrade to uncached exports.
		return data, nil
	}
	return data, nil
}

func exportKey(v *view.View, plan layout.Plan, format string) string {
	viewJSON, _ := json.Marshal(v)
	planJSON, _ := json.Marshal(plan)
	return cache.ExportKey(cache.Hash(viewJSON), cache.Hash(planJSON), format)
}
