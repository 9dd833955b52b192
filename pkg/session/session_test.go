package session

import (
	"context"
	"testing"

	"github.com/cloudscope/cloudscope/pkg/errors"
	"github.com/cloudscope/cloudscope/pkg/layout"
	"github.com/cloudscope/cloudscope/pkg/store"
	"github.com/cloudscope/cloudscope/pkg/view"
)

const webTierJSON = `{
  "metadata": {"ingestion_time": "2026-08-01T10:00:00Z", "regions_scanned": ["eu-west-1"]},
  "regional_services": {
    "eu-west-1": {
      "ec2": {
        "vpcs": [{"VpcId": "vpc-1", "CidrBlock": "10.0.0.0/16",
                  "Tags": [{"Key": "Name", "Value": "main"}]}],
        "security_groups": [
          {"GroupId": "sg-web", "GroupName": "web-sg", "VpcId": "vpc-1"},
          {"GroupId": "sg-app", "GroupName": "app-sg", "VpcId": "vpc-1",
           "IpPermissions": [{"IpProtocol": "tcp", "FromPort": 8080, "ToPort": 8080,
                              "UserIdGroupPairs": [{"GroupId": "sg-web"}]}]}
        ]
      }
    }
  }
}`

const dbTierJSON = `{
  "regional_services": {
    "us-east-1": {
      "rds": {"db_instances": [{"DBInstanceIdentifier": "orders", "Engine": "postgres"}]}
    }
  }
}`

func TestAddSourceBuildsGraph(t *testing.T) {
	ctx := context.Background()
	s := New()

	res, err := s.AddSource(ctx, "prod.json", []byte(webTierJSON))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if res.TotalNodes != 3 {
		t.Errorf("nodes = %d, want 3", res.TotalNodes)
	}
	if res.AddedNodes != 3 {
		t.Errorf("added = %d, want 3", res.AddedNodes)
	}
	if !s.Graph().Has("vpc:vpc-1") {
		t.Error("graph missing vpc")
	}

	// The filter resets to all-active, so the view shows everything.
	v := s.View()
	if len(v.Nodes) != 3 {
		t.Errorf("view nodes = %d, want 3", len(v.Nodes))
	}
}

func TestAddSourceRejectsMalformed(t *testing.T) {
	ctx := context.Background()
	s := New()
	if _, err := s.AddSource(ctx, "prod.json", []byte(webTierJSON)); err != nil {
		t.Fatal(err)
	}
	before := len(s.Graph().Nodes)

	_, err := s.AddSource(ctx, "broken.json", []byte(`{"bogus_section": 1}`))
	if !errors.Is(err, errors.ErrCodeIngestion) {
		t.Errorf("err = %v, want INGESTION_FAILED", err)
	}
	if got := len(s.Graph().Nodes); got != before {
		t.Errorf("failed add changed the graph: %d -> %d", before, got)
	}
	if got := len(s.Sources()); got != 1 {
		t.Errorf("sources = %d, want 1", got)
	}
}

func TestRebuildInvalidatesFocusAndResetsFilter(t *testing.T) {
	ctx := context.Background()
	s := New()
	if _, err := s.AddSource(ctx, "prod.json", []byte(webTierJSON)); err != nil {
		t.Fatal(err)
	}

	if err := s.Focus("sg:sg-web"); err != nil {
		t.Fatal(err)
	}
	s.ToggleFilter(view.DimensionService, "ec2")

	if _, err := s.AddSource(ctx, "db.json", []byte(dbTierJSON)); err != nil {
		t.Fatal(err)
	}

	if h := s.Highlight(); h.Active {
		t.Error("focus survived rebuild")
	}
	active := s.FilterActive(view.DimensionService)
	if len(active) != 2 {
		t.Errorf("filter not reset to all-active: %v", active)
	}
}

func TestRemoveSource(t *testing.T) {
	ctx := context.Background()
	s := New()
	if _, err := s.AddSource(ctx, "prod.json", []byte(webTierJSON)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddSource(ctx, "db.json", []byte(dbTierJSON)); err != nil {
		t.Fatal(err)
	}

	res, err := s.RemoveSource(ctx, 0)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if res.Removed != "prod.json" {
		t.Errorf("removed = %q", res.Removed)
	}
	if s.Graph().Has("vpc:vpc-1") {
		t.Error("removed source's nodes survived rebuild")
	}
	if !s.Graph().Has("rds:orders") {
		t.Error("remaining source's nodes missing")
	}
}

func TestRemoveSourceOutOfRange(t *testing.T) {
	ctx := context.Background()
	s := New()
	if _, err := s.AddSource(ctx, "prod.json", []byte(webTierJSON)); err != nil {
		t.Fatal(err)
	}

	for _, idx := range []int{-1, 1, 99} {
		_, err := s.RemoveSource(ctx, idx)
		if !errors.Is(err, errors.ErrCodeStateTransition) {
			t.Errorf("index %d: err = %v, want STATE_TRANSITION", idx, err)
		}
	}
	if got := len(s.Sources()); got != 1 {
		t.Errorf("failed remove changed sources: %d", got)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := New()
	if _, err := s.AddSource(ctx, "prod.json", []byte(webTierJSON)); err != nil {
		t.Fatal(err)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(s.Sources()) != 0 || len(s.Graph().Nodes) != 0 {
		t.Error("clear left data behind")
	}
}

func TestSearchThroughSession(t *testing.T) {
	ctx := context.Background()
	s := New()
	if _, err := s.AddSource(ctx, "prod.json", []byte(webTierJSON)); err != nil {
		t.Fatal(err)
	}

	res := s.Search(ctx, "web")
	if len(res.Matches) != 1 || res.Matches[0] != "sg:sg-web" {
		t.Errorf("matches = %v", res.Matches)
	}

	d, err := s.Confirm()
	if err != nil || d.ID != "sg:sg-web" {
		t.Errorf("confirm = %+v, %v", d, err)
	}

	s.CancelSearch()
	if h := s.Highlight(); h.Active {
		t.Error("highlight active after cancel")
	}
}

func TestLayoutModeSwitchPreservesState(t *testing.T) {
	ctx := context.Background()
	s := New()
	if _, err := s.AddSource(ctx, "prod.json", []byte(webTierJSON)); err != nil {
		t.Fatal(err)
	}
	s.ToggleFilter(view.DimensionService, "ec2")
	if err := s.Focus("vpc:vpc-1"); err != nil {
		t.Fatal(err)
	}

	if err := s.SetLayoutMode(layout.ModeGrid); err != nil {
		t.Fatalf("set mode: %v", err)
	}
	if got := s.FilterActive(view.DimensionService); len(got) != 0 {
		t.Errorf("layout switch altered filter: %v", got)
	}
	if h := s.Highlight(); !h.Active {
		t.Error("layout switch dropped the focus")
	}
	if s.LayoutMode() != layout.ModeGrid {
		t.Error("mode not switched")
	}

	if err := s.SetLayoutMode(layout.Mode("spiral")); !errors.Is(err, errors.ErrCodeStateTransition) {
		t.Errorf("unknown mode err = %v", err)
	}
	if s.LayoutMode() != layout.ModeGrid {
		t.Error("failed switch changed the mode")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	s := New(WithStore(st))
	if _, err := s.AddSource(ctx, "prod.json", []byte(webTierJSON)); err != nil {
		t.Fatal(err)
	}

	restored := New(WithStore(st))
	skipped, err := restored.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("skipped = %v", skipped)
	}
	if !restored.Graph().Has("vpc:vpc-1") {
		t.Error("restored session missing graph data")
	}

	if err := restored.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	persisted, _ := st.List(ctx)
	if len(persisted) != 0 {
		t.Errorf("clear did not reach the store: %d left", len(persisted))
	}
}

func TestEmptySessionIsRenderable(t *testing.T) {
	s := New()
	v := s.View()
	if len(v.Nodes) != 0 || len(v.Edges) != 0 {
		t.Error("empty session projected elements")
	}
	p := s.LayoutPlan()
	if p.Mode != layout.ModeForce {
		t.Errorf("default mode = %s", p.Mode)
	}
}
