package interact

import (
	"reflect"
	"testing"

	"github.com/cloudscope/cloudscope/pkg/graph"
)

func TestDetailProjection(t *testing.T) {
	e := chainEngine()

	d, err := e.Detail("rds:db")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if d.Type != graph.TypeRDSInstance || d.Label != "orders-db" {
		t.Errorf("header = %s/%s", d.Type, d.Label)
	}

	var keys []string
	for _, p := range d.Properties {
		keys = append(keys, p.Key)
	}
	// id first, then grouping dimensions, then metadata sorted. The empty
	// endpoint value is excluded.
	want := []string{"id", "region", "service", "encrypted", "engine"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("property order = %v, want %v", keys, want)
	}

	for _, p := range d.Properties {
		if p.Key == "encrypted" && p.Value != "yes" {
			t.Errorf("boolean rendered %q, want yes", p.Value)
		}
	}
}

func TestDetailConnections(t *testing.T) {
	e := chainEngine()

	d, err := e.Detail("sg:app")
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Connections) != 2 {
		t.Fatalf("connections = %d, want 2", len(d.Connections))
	}

	in, out := d.Connections[0], d.Connections[1]
	if in.Direction != "inbound" || in.NeighborID != "sg:web" || in.NeighborLabel != "web-sg" {
		t.Errorf("inbound connection = %+v", in)
	}
	if out.Direction != "outbound" || out.NeighborID != "rds:db" || out.NeighborLabel != "orders-db" {
		t.Errorf("outbound connection = %+v", out)
	}

	// Re-focusing on a connection neighbor keeps the contract recursive.
	if err := e.Focus(out.NeighborID); err != nil {
		t.Fatalf("refocus: %v", err)
	}
	next, err := e.Detail(out.NeighborID)
	if err != nil || next.ID != "rds:db" {
		t.Errorf("neighbor detail = %+v, %v", next, err)
	}
}

func TestDetailInboundRulesSeparated(t *testing.T) {
	g := graph.New([]graph.Node{
		{ID: "sg:app", Label: "app-sg", Type: graph.TypeSecurityGroup, Region: "eu-west-1", Service: "ec2",
			Metadata: graph.Metadata{
				graph.MetaInboundRules: graph.Strings([]string{"tcp:8080 from sg-web"}),
				"vpc":                  graph.String("vpc-1"),
			}},
	}, nil)
	e := NewEngine()
	e.SetGraph(g)

	d, err := e.Detail("sg:app")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"tcp:8080 from sg-web"}
	if !reflect.DeepEqual(d.InboundRules, want) {
		t.Errorf("inbound rules = %v, want %v", d.InboundRules, want)
	}
	for _, p := range d.Properties {
		if p.Key == graph.MetaInboundRules {
			t.Error("inbound rules leaked into properties")
		}
	}
}

func TestDetailUnknownNode(t *testing.T) {
	e := chainEngine()
	if _, err := e.Detail("ghost"); err == nil {
		t.Error("expected error for unknown node")
	}
}
