package interact

import (
	"testing"

	"github.com/cloudscope/cloudscope/pkg/errors"
	"github.com/cloudscope/cloudscope/pkg/graph"
)

func chainGraph() *graph.Graph {
	nodes := []graph.Node{
		{ID: "sg:web", Label: "web-sg", Type: graph.TypeSecurityGroup, Region: "eu-west-1", Service: "ec2"},
		{ID: "sg:app", Label: "app-sg", Type: graph.TypeSecurityGroup, Region: "eu-west-1", Service: "ec2"},
		{ID: "rds:db", Label: "orders-db", Type: graph.TypeRDSInstance, Region: "eu-west-1", Service: "rds",
			Metadata: graph.Metadata{
				"engine":    graph.String("postgres"),
				"encrypted": graph.Bool(true),
				"endpoint":  graph.String(""),
			}},
		{ID: "s3:logs", Label: "logs", Type: graph.TypeS3Bucket, Region: "global", Service: "s3"},
	}
	edges := []graph.Edge{
		{Source: "sg:web", Target: "sg:app", Type: graph.EdgeTrafficFlow, Label: "tcp:8080"},
		{Source: "sg:app", Target: "rds:db", Type: graph.EdgeTrafficFlow, Label: "tcp:5432"},
	}
	return graph.New(nodes, edges)
}

func chainEngine() *Engine {
	e := NewEngine()
	e.SetGraph(chainGraph())
	return e
}

func TestFocusNeighborhood(t *testing.T) {
	e := chainEngine()

	if err := e.Focus("sg:app"); err != nil {
		t.Fatalf("focus: %v", err)
	}
	h := e.Highlight()
	if !h.Active {
		t.Fatal("highlight inactive after focus")
	}
	for _, id := range []string{"sg:app", "sg:web", "rds:db"} {
		if !h.Nodes[id] {
			t.Errorf("neighborhood missing %s", id)
		}
	}
	if h.Nodes["s3:logs"] {
		t.Error("unconnected node in neighborhood")
	}
	if !h.Faded["s3:logs"] {
		t.Error("unconnected node not faded")
	}
	if len(h.Edges) != 2 {
		t.Errorf("highlighted edges = %d, want 2", len(h.Edges))
	}
}

func TestFocusReplacesPrevious(t *testing.T) {
	e := chainEngine()

	if err := e.Focus("sg:web"); err != nil {
		t.Fatal(err)
	}
	if err := e.Focus("s3:logs"); err != nil {
		t.Fatal(err)
	}
	id, ok := e.Focused()
	if !ok || id != "s3:logs" {
		t.Errorf("focused = %q, %v, want s3:logs", id, ok)
	}
}

func TestFocusUnknownNode(t *testing.T) {
	e := chainEngine()
	err := e.Focus("sg:ghost")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
	if _, ok := e.Focused(); ok {
		t.Error("failed focus left a selection")
	}
}

func TestSetGraphInvalidatesState(t *testing.T) {
	e := chainEngine()
	if err := e.Focus("sg:web"); err != nil {
		t.Fatal(err)
	}
	e.Search("sg")

	e.SetGraph(chainGraph())

	if _, ok := e.Focused(); ok {
		t.Error("focus survived graph swap")
	}
	if h := e.Highlight(); h.Active {
		t.Error("highlight survived graph swap")
	}
}

func TestClearFocus(t *testing.T) {
	e := chainEngine()
	if err := e.Focus("sg:web"); err != nil {
		t.Fatal(err)
	}
	e.ClearFocus()
	if h := e.Highlight(); h.Active {
		t.Error("highlight active after clear")
	}
}
