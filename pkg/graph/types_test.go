package graph

import (
	"reflect"
	"testing"
)

func testGraph() *Graph {
	nodes := []Node{
		{ID: "a", Label: "web-sg", Type: TypeSecurityGroup, Region: "eu-west-1", Service: "ec2"},
		{ID: "b", Label: "app-sg", Type: TypeSecurityGroup, Region: "eu-west-1", Service: "ec2"},
		{ID: "c", Label: "db", Type: TypeRDSInstance, Region: "us-east-1", Service: "rds"},
	}
	edges := []Edge{
		{Source: "a", Target: "b", Type: EdgeTrafficFlow, Label: "tcp:8080"},
		{Source: "b", Target: "c", Type: EdgeTrafficFlow, Label: "tcp:5432"},
	}
	return New(nodes, edges)
}

func TestGraphLookup(t *testing.T) {
	g := testGraph()

	n, ok := g.Node("b")
	if !ok || n.Label != "app-sg" {
		t.Errorf("Node(b) = %+v, %v", n, ok)
	}
	if _, ok := g.Node("missing"); ok {
		t.Error("Node(missing) should not be found")
	}
	if !g.Has("a") || g.Has("zz") {
		t.Error("Has gave wrong answers")
	}
}

func TestGraphEdgesTouching(t *testing.T) {
	g := testGraph()

	got := g.EdgesTouching("b")
	if len(got) != 2 {
		t.Fatalf("edges touching b = %d, want 2", len(got))
	}
	if got[0].Label != "tcp:8080" || got[1].Label != "tcp:5432" {
		t.Errorf("edges out of insertion order: %+v", got)
	}

	if edges := g.EdgesTouching("zz"); len(edges) != 0 {
		t.Errorf("edges touching unknown node = %d, want 0", len(edges))
	}
}

func TestGraphSelfLoopIndexedOnce(t *testing.T) {
	g := New(
		[]Node{{ID: "a", Type: TypeVpc}},
		[]Edge{{Source: "a", Target: "a", Type: EdgeGeneric}},
	)
	if got := g.EdgesTouching("a"); len(got) != 1 {
		t.Errorf("self loop indexed %d times, want 1", len(got))
	}
}

func TestGraphUniverses(t *testing.T) {
	g := testGraph()

	if got, want := g.Regions(), []string{"eu-west-1", "us-east-1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Regions = %v, want %v", got, want)
	}
	if got, want := g.Services(), []string{"ec2", "rds"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Services = %v, want %v", got, want)
	}
	if got, want := g.Types(), []string{"rds-instance", "security-group"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Types = %v, want %v", got, want)
	}
}

func TestTypeKnown(t *testing.T) {
	if !TypeVpc.Known() || !TypeError.Known() {
		t.Error("known node types reported unknown")
	}
	if NodeType("quantum-teleporter").Known() {
		t.Error("unknown node type reported known")
	}
	if !EdgeTrafficFlow.Known() {
		t.Error("known edge type reported unknown")
	}
	if EdgeType("wormhole").Known() {
		t.Error("unknown edge type reported known")
	}
}
