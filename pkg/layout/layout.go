// Package layout selects layout parameters for the external placement
// algorithm: physics tunables for force mode, root nodes for hierarchical
// mode, and a total node order for grid mode. Placement itself happens
// outside the engine.
package layout

import (
	"sort"

	"github.com/cloudscope/cloudscope/pkg/graph"
	"github.com/cloudscope/cloudscope/pkg/view"
)

// Mode names a layout algorithm.
type Mode string

const (
	ModeForce        Mode = "force"
	ModeHierarchical Mode = "hierarchical"
	ModeGrid         Mode = "grid"
)

// Known reports whether m is a supported mode.
func (m Mode) Known() bool {
	switch m {
	case ModeForce, ModeHierarchical, ModeGrid:
		return true
	}
	return false
}

// ForceParams tunes the physics simulation.
type ForceParams struct {
	Repulsion       float64 `json:"repulsion"`
	IdealEdgeLength float64 `json:"ideal_edge_length"`
	Gravity         float64 `json:"gravity"`
}

// DefaultForceParams works well up to a few thousand nodes.
var DefaultForceParams = ForceParams{
	Repulsion:       4500,
	IdealEdgeLength: 120,
	Gravity:         0.25,
}

// Plan is everything the external layout surface needs for one run. Only the
// fields for the selected mode are populated.
type Plan struct {
	Mode  Mode        `json:"mode"`
	Force ForceParams `json:"force,omitempty"`
	// Roots are node ids the tree layout grows from (hierarchical only).
	Roots []string `json:"roots,omitempty"`
	// Order is the full node id sequence in reading order (grid only).
	Order []string `json:"order,omitempty"`
}

// Select computes the layout plan for the current filtered view. It reads
// view and filter state but never changes them; switching modes re-runs
// placement over whatever is currently projected.
func Select(mode Mode, v *view.View) Plan {
	switch mode {
	case ModeHierarchical:
		return Plan{Mode: mode, Roots: hierarchyRoots(v)}
	case ModeGrid:
		return Plan{Mode: mode, Order: gridOrder(v)}
	default:
		return Plan{Mode: ModeForce, Force: DefaultForceParams}
	}
}

// hierarchyRoots picks tree roots: every network boundary node, plus any
// node that only ever appears as an edge source. Order follows the view.
func hierarchyRoots(v *view.View) []string {
	hasIncoming := make(map[string]bool)
	hasOutgoing := make(map[string]bool)
	for _, e := range v.Edges {
		hasOutgoing[e.Source] = true
		hasIncoming[e.Target] = true
	}

	var roots []string
	for _, n := range v.Nodes {
		if n.Type == graph.TypeVpc || (!hasIncoming[n.ID] && hasOutgoing[n.ID]) {
			roots = append(roots, n.ID)
		}
	}
	return roots
}

// gridOrder sorts nodes by service, then type, both lexicographic, with id as
// a final tiebreaker so the order is total.
func gridOrder(v *view.View) []string {
	nodes := append([]view.NodeElement(nil), v.Nodes...)
	sort.Slice(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if a.Service != b.Service {
			return a.Service < b.Service
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.ID < b.ID
	})

	order := make([]string, len(nodes))
	for i, n := range nodes {
		order[i] = n.ID
	}
	return order
}
