// Package render turns a projected view and a layout plan into Graphviz DOT
// and rendered artifacts (SVG). It is the export path; the interactive
// surface does its own drawing from the same view elements.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cloudscope/cloudscope/pkg/layout"
	"github.com/cloudscope/cloudscope/pkg/view"
)

// fontsize per size class. Large nodes read first at a glance.
var classFontSize = map[view.SizeClass]int{
	view.SizeDefault: 14,
	view.SizeMedium:  18,
	view.SizeLarge:   24,
}

// ToDOT converts a projected view to Graphviz DOT following the layout plan.
// Hierarchical plans pin their roots to the top rank; grid plans emit nodes
// in the plan's reading order so osage places them in sequence.
func ToDOT(v *view.View, plan layout.Plan) string {
	var buf bytes.Buffer
	buf.WriteString("digraph cloudscope {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=\"filled\", fontcolor=white, margin=\"0.15,0.1\"];\n")
	if plan.Mode == layout.ModeForce {
		fmt.Fprintf(&buf, "  K=%.2f;\n", plan.Force.IdealEdgeLength/72)
	}
	buf.WriteString("\n")

	for _, n := range orderedNodes(v, plan) {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n), ", "))
	}

	if plan.Mode == layout.ModeHierarchical && len(plan.Roots) > 0 {
		buf.WriteString("\n  { rank=min;")
		for _, id := range plan.Roots {
			fmt.Fprintf(&buf, " %q;", id)
		}
		buf.WriteString(" }\n")
	}

	buf.WriteString("\n")
	for _, e := range v.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(edgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// orderedNodes follows the grid plan's total order when one is present,
// otherwise the view's own order.
func orderedNodes(v *view.View, plan layout.Plan) []view.NodeElement {
	if plan.Mode != layout.ModeGrid || len(plan.Order) == 0 {
		return v.Nodes
	}
	byID := make(map[string]view.NodeElement, len(v.Nodes))
	for _, n := range v.Nodes {
		byID[n.ID] = n
	}
	out := make([]view.NodeElement, 0, len(v.Nodes))
	for _, id := range plan.Order {
		if n, ok := byID[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

func nodeAttrs(n view.NodeElement) []string {
	return []string{
		fmt.Sprintf("label=%q", n.Label),
		fmt.Sprintf("shape=%q", n.Style.Shape),
		fmt.Sprintf("fillcolor=%q", n.Style.Color),
		fmt.Sprintf("fontsize=%d", classFontSize[n.Style.Size]),
		fmt.Sprintf("tooltip=%q", string(n.Type)),
	}
}

func edgeAttrs(e view.EdgeElement) []string {
	attrs := []string{
		fmt.Sprintf("color=%q", e.Style.Color),
		fmt.Sprintf("fontcolor=%q", e.Style.Color),
	}
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	if e.Style.Dashed {
		attrs = append(attrs, "style=dashed")
	}
	return attrs
}
