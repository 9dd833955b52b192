package interact

import (
	"sort"

	"github.com/cloudscope/cloudscope/pkg/errors"
	"github.com/cloudscope/cloudscope/pkg/graph"
)

// displayMaxLen bounds object-valued property summaries in the detail panel.
const displayMaxLen = 80

// Property is one key/value row in a detail projection, already rendered for
// display.
type Property struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Connection is one edge touching the detailed node, annotated with direction
// and the neighbor's display label so the panel can re-focus on it.
type Connection struct {
	Direction     string         `json:"direction"` // "outbound" or "inbound"
	Type          graph.EdgeType `json:"type"`
	Label         string         `json:"label"`
	NeighborID    string         `json:"neighbor_id"`
	NeighborLabel string         `json:"neighbor_label"`
}

// Detail is the full projection of one node for the detail surface.
type Detail struct {
	ID      string         `json:"id"`
	Type    graph.NodeType `json:"type"`
	Label   string         `json:"label"`
	Region  string         `json:"region"`
	Service string         `json:"service"`
	// Properties holds id, the grouping dimensions, then metadata, in that
	// order. Empty values and the inbound rules key are excluded.
	Properties   []Property   `json:"properties"`
	InboundRules []string     `json:"inbound_rules,omitempty"`
	Connections  []Connection `json:"connections"`
}

// Detail builds the projection for a node.
func (e *Engine) Detail(id string) (Detail, error) {
	if e.graph == nil {
		return Detail{}, errors.New(errors.ErrCodeNotFound, "no graph loaded")
	}
	n, ok := e.graph.Node(id)
	if !ok {
		return Detail{}, errors.New(errors.ErrCodeNotFound, "node %q not found", id)
	}

	d := Detail{
		ID:      n.ID,
		Type:    n.Type,
		Label:   n.Label,
		Region:  n.Region,
		Service: n.Service,
	}

	d.Properties = append(d.Properties, Property{Key: "id", Value: n.ID})
	if n.Region != "" {
		d.Properties = append(d.Properties, Property{Key: "region", Value: n.Region})
	}
	if n.Service != "" {
		d.Properties = append(d.Properties, Property{Key: "service", Value: n.Service})
	}

	keys := make([]string, 0, len(n.Metadata))
	for k := range n.Metadata {
		if k == graph.MetaInboundRules {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := n.Metadata[k]
		if v.IsEmpty() {
			continue
		}
		d.Properties = append(d.Properties, Property{Key: k, Value: v.Display(displayMaxLen)})
	}

	if rules, ok := n.Metadata[graph.MetaInboundRules]; ok {
		d.InboundRules = rules.List()
	}

	for _, edge := range e.graph.EdgesTouching(id) {
		conn := Connection{Type: edge.Type, Label: edge.Label}
		var neighborID string
		if edge.Source == id {
			conn.Direction = "outbound"
			neighborID = edge.Target
		} else {
			conn.Direction = "inbound"
			neighborID = edge.Source
		}
		conn.NeighborID = neighborID
		if neighbor, ok := e.graph.Node(neighborID); ok {
			conn.NeighborLabel = neighbor.Label
		}
		d.Connections = append(d.Connections, conn)
	}

	return d, nil
}

func errNoMatches() error {
	return errors.New(errors.ErrCodeNotFound, "no search matches")
}
