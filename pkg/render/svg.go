package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/cloudscope/cloudscope/pkg/layout"
)

// engineFor maps a layout mode to the Graphviz engine that realizes it:
// physics placement for force, ranked trees for hierarchical, packed array
// placement for grid.
func engineFor(mode layout.Mode) graphviz.Layout {
	switch mode {
	case layout.ModeHierarchical:
		return graphviz.DOT
	case layout.ModeGrid:
		return graphviz.OSAGE
	default:
		return graphviz.FDP
	}
}

// RenderSVG renders a DOT graph to SVG with the engine for the given mode.
func RenderSVG(ctx context.Context, dot string, mode layout.Mode) ([]byte, error) {
	data, err := renderGraph(ctx, dot, mode, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(data), nil
}

// RenderPNG renders a DOT graph to PNG with the engine for the given mode.
func RenderPNG(ctx context.Context, dot string, mode layout.Mode) ([]byte, error) {
	return renderGraph(ctx, dot, mode, graphviz.PNG)
}

func renderGraph(ctx context.Context, dot string, mode layout.Mode, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(engineFor(mode))

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root so the viewBox starts at the origin,
// which keeps pan/zoom math simple for embedding surfaces.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
