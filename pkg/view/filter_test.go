package view

import (
	"reflect"
	"testing"
)

func configuredFilter() *FilterState {
	f := NewFilterState()
	f.SetUniverse([]string{"eu-west-1", "us-east-1"}, []string{"ec2", "rds", "s3"})
	return f
}

func TestFilterUnconfigured(t *testing.T) {
	f := NewFilterState()
	if f.Configured() {
		t.Error("zero filter should be unconfigured")
	}
	if got := f.Universe(DimensionRegion); len(got) != 0 {
		t.Errorf("universe = %v, want empty", got)
	}
}

func TestFilterSetUniverseResetsAllActive(t *testing.T) {
	f := configuredFilter()
	if !f.Configured() {
		t.Fatal("filter should be configured")
	}
	if got, want := f.Active(DimensionRegion), []string{"eu-west-1", "us-east-1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("active regions = %v, want %v", got, want)
	}
	if got, want := f.Active(DimensionService), []string{"ec2", "rds", "s3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("active services = %v, want %v", got, want)
	}
}

func TestFilterToggle(t *testing.T) {
	f := configuredFilter()

	f.Toggle(DimensionService, "rds")
	if f.IsActive(DimensionService, "rds") {
		t.Error("rds still active after toggle off")
	}
	f.Toggle(DimensionService, "rds")
	if !f.IsActive(DimensionService, "rds") {
		t.Error("rds inactive after toggle back on")
	}
}

func TestFilterToggleOutsideUniverseIsNoOp(t *testing.T) {
	f := configuredFilter()
	before := f.Active(DimensionService)

	f.Toggle(DimensionService, "quantum")

	if got := f.Active(DimensionService); !reflect.DeepEqual(got, before) {
		t.Errorf("active set changed: %v -> %v", before, got)
	}
}

func TestFilterSetActiveDropsUnknown(t *testing.T) {
	f := configuredFilter()
	f.SetActive(DimensionRegion, []string{"eu-west-1", "mars-north-1"})

	if got, want := f.Active(DimensionRegion), []string{"eu-west-1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("active = %v, want %v", got, want)
	}
}

func TestFilterClearAndSelectAll(t *testing.T) {
	f := configuredFilter()

	f.Clear(DimensionRegion)
	if got := f.Active(DimensionRegion); len(got) != 0 {
		t.Errorf("active after clear = %v, want empty", got)
	}
	if !f.Configured() {
		t.Error("clearing must not unconfigure the filter")
	}

	f.SelectAll(DimensionRegion)
	if got, want := f.Active(DimensionRegion), []string{"eu-west-1", "us-east-1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("active after select all = %v, want %v", got, want)
	}
}

func TestFilterSetActiveIdempotent(t *testing.T) {
	f := configuredFilter()

	f.SetActive(DimensionService, []string{"ec2"})
	once := f.Active(DimensionService)
	f.SetActive(DimensionService, []string{"ec2"})
	twice := f.Active(DimensionService)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("repeated SetActive changed state: %v vs %v", once, twice)
	}
}
