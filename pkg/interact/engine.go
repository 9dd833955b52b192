// Package interact maintains the selection, search, and detail state layered
// on top of a projected graph view. The engine owns one focus at a time and
// derives highlight/fade sets on demand; it never mutates the graph.
package interact

import (
	"github.com/cloudscope/cloudscope/pkg/errors"
	"github.com/cloudscope/cloudscope/pkg/graph"
)

// Highlight is the derived emphasis state handed to the rendering surface.
// Nodes and edges absent from both sets render normally.
type Highlight struct {
	// Active is true when any emphasis applies; false means render everything
	// normally.
	Active bool
	// Nodes to emphasize.
	Nodes map[string]bool
	// Edges to emphasize, identified by index into the view's edge order.
	Edges []graph.Edge
	// Faded nodes, drawn dimmed. Disjoint from Nodes.
	Faded map[string]bool
	// Recenter asks the surface to animate-center on Nodes.
	Recenter bool
}

// Engine tracks focus and search state for one graph generation. It is not
// safe for concurrent use; the owning session serializes access.
type Engine struct {
	graph *graph.Graph

	focusID  string
	hasFocus bool

	query   string
	matches []string
	gen     uint64

	recenterBound int
}

// DefaultRecenterBound is the largest match count that still moves the view.
const DefaultRecenterBound = 5

// NewEngine returns an engine with no graph attached.
func NewEngine() *Engine {
	return &Engine{recenterBound: DefaultRecenterBound}
}

// SetGraph swaps in a freshly built graph. All focus and search state bound
// to the previous graph's ids is invalidated.
func (e *Engine) SetGraph(g *graph.Graph) {
	e.graph = g
	e.ClearFocus()
	e.clearSearch()
}

// Focus selects a node, replacing any previous focus.
func (e *Engine) Focus(id string) error {
	if e.graph == nil || !e.graph.Has(id) {
		return errors.New(errors.ErrCodeNotFound, "node %q not found", id)
	}
	e.focusID = id
	e.hasFocus = true
	return nil
}

// ClearFocus drops the current selection.
func (e *Engine) ClearFocus() {
	e.focusID = ""
	e.hasFocus = false
}

// Focused returns the selected node id, if any.
func (e *Engine) Focused() (string, bool) {
	return e.focusID, e.hasFocus
}

// Neighborhood returns a node, its direct neighbors, and the connecting
// edges.
func (e *Engine) Neighborhood(id string) (nodes map[string]bool, edges []graph.Edge) {
	nodes = map[string]bool{id: true}
	if e.graph == nil {
		return nodes, nil
	}
	edges = e.graph.EdgesTouching(id)
	for _, edge := range edges {
		nodes[edge.Source] = true
		nodes[edge.Target] = true
	}
	return nodes, edges
}

// Highlight derives the current emphasis state. Focus takes precedence over
// an active search.
func (e *Engine) Highlight() Highlight {
	switch {
	case e.hasFocus:
		nodes, edges := e.Neighborhood(e.focusID)
		return Highlight{
			Active: true,
			Nodes:  nodes,
			Edges:  edges,
			Faded:  e.fadeComplement(nodes),
		}
	case e.query != "" && len(e.matches) > 0:
		nodes := make(map[string]bool, len(e.matches))
		var edges []graph.Edge
		for _, id := range e.matches {
			nodes[id] = true
			edges = append(edges, e.graph.EdgesTouching(id)...)
		}
		return Highlight{
			Active:   true,
			Nodes:    nodes,
			Edges:    edges,
			Faded:    e.fadeComplement(nodes),
			Recenter: len(e.matches) <= e.recenterBound,
		}
	default:
		return Highlight{}
	}
}

func (e *Engine) fadeComplement(kept map[string]bool) map[string]bool {
	faded := make(map[string]bool)
	if e.graph == nil {
		return faded
	}
	for _, n := range e.graph.Nodes {
		if !kept[n.ID] {
			faded[n.ID] = true
		}
	}
	return faded
}
