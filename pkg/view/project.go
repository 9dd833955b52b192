package view

import (
	"github.com/cloudscope/cloudscope/pkg/graph"
)

// NodeElement is a render-ready node: the underlying resource plus its
// presentation attributes.
type NodeElement struct {
	graph.Node
	Style NodeStyle `json:"style"`
}

// EdgeElement is a render-ready edge.
type EdgeElement struct {
	graph.Edge
	Style EdgeStyle `json:"style"`
}

// View is one projection of the graph through the filter. Views are ephemeral
// and rebuilt wholesale on every filter or dataset change.
type View struct {
	Nodes []NodeElement `json:"nodes"`
	Edges []EdgeElement `json:"edges"`
}

// Has reports whether the projected view contains a node id.
func (v *View) Has(id string) bool {
	for _, n := range v.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// Project applies the filter to the graph and attaches presentation styles.
//
// A node passes when both of its grouping values are active. An edge passes
// when both endpoints pass, so the result carries no dangling edges. An
// unconfigured filter passes everything; a configured filter with an empty
// active set passes nothing.
func Project(g *graph.Graph, f *FilterState) *View {
	v := &View{}
	if g == nil {
		return v
	}

	passes := func(n graph.Node) bool { return true }
	if f != nil && f.Configured() {
		passes = func(n graph.Node) bool {
			return f.IsActive(DimensionRegion, n.Region) && f.IsActive(DimensionService, n.Service)
		}
	}

	kept := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if !passes(n) {
			continue
		}
		kept[n.ID] = true
		v.Nodes = append(v.Nodes, NodeElement{Node: n, Style: StyleForNode(n.Type)})
	}
	for _, e := range g.Edges {
		if kept[e.Source] && kept[e.Target] {
			v.Edges = append(v.Edges, EdgeElement{Edge: e, Style: StyleForEdge(e.Type)})
		}
	}
	return v
}
