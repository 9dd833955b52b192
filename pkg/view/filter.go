// Package view projects the resource graph through the active filter state
// into render-ready elements with presentation attributes.
//
// The filter operates on two grouping dimensions - region and service - each
// with a universe of known values supplied from the graph and a set of active
// values. Projection includes a node only when both of its dimension values
// are active, and an edge only when both endpoints survive, so the rendered
// view never contains a dangling edge.
package view

import (
	"sort"
)

// Dimension selects one of the two grouping dimensions.
type Dimension int

const (
	// DimensionRegion groups by geographic region (dimension A).
	DimensionRegion Dimension = iota
	// DimensionService groups by service family (dimension B).
	DimensionService
)

func (d Dimension) String() string {
	if d == DimensionRegion {
		return "region"
	}
	return "service"
}

// FilterState holds the active values per grouping dimension.
//
// The zero FilterState is unconfigured: no universe has been loaded yet, and
// projection treats it as "show everything". Once SetUniverse runs, an empty
// active set is a deliberate state that renders nothing - the two cases stay
// distinguishable via Configured.
//
// All operations are total: values outside the universe are ignored, never
// errors. Active sets are always subsets of the universes.
type FilterState struct {
	configured bool
	universe   [2][]string
	active     [2]map[string]bool
}

// NewFilterState returns an unconfigured filter.
func NewFilterState() *FilterState {
	return &FilterState{}
}

// SetUniverse installs the known values for both dimensions and resets the
// active sets to all-active. Called once per graph rebuild.
func (f *FilterState) SetUniverse(regions, services []string) {
	f.universe[DimensionRegion] = append([]string(nil), regions...)
	f.universe[DimensionService] = append([]string(nil), services...)
	sort.Strings(f.universe[DimensionRegion])
	sort.Strings(f.universe[DimensionService])
	f.configured = true
	f.Reset()
}

// Configured reports whether universes have been loaded.
func (f *FilterState) Configured() bool { return f.configured }

// Universe returns the known values for a dimension, sorted.
func (f *FilterState) Universe(d Dimension) []string {
	return append([]string(nil), f.universe[d]...)
}

// Active returns the active values for a dimension, sorted.
func (f *FilterState) Active(d Dimension) []string {
	out := make([]string, 0, len(f.active[d]))
	for v := range f.active[d] {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// IsActive reports whether a value is currently active in a dimension.
func (f *FilterState) IsActive(d Dimension, value string) bool {
	return f.active[d][value]
}

// SetActive replaces a dimension's active set. Values outside the universe
// are dropped. An empty slice is valid and means "render nothing".
func (f *FilterState) SetActive(d Dimension, values []string) {
	known := make(map[string]bool, len(f.universe[d]))
	for _, v := range f.universe[d] {
		known[v] = true
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if known[v] {
			set[v] = true
		}
	}
	f.active[d] = set
}

// Toggle flips one value's membership in a dimension's active set.
// Toggling a value not in the universe is a no-op.
func (f *FilterState) Toggle(d Dimension, value string) {
	known := false
	for _, v := range f.universe[d] {
		if v == value {
			known = true
			break
		}
	}
	if !known {
		return
	}
	if f.active[d] == nil {
		f.active[d] = make(map[string]bool)
	}
	if f.active[d][value] {
		delete(f.active[d], value)
	} else {
		f.active[d][value] = true
	}
}

// SelectAll activates every known value in a dimension.
func (f *FilterState) SelectAll(d Dimension) {
	set := make(map[string]bool, len(f.universe[d]))
	for _, v := range f.universe[d] {
		set[v] = true
	}
	f.active[d] = set
}

// Clear deactivates every value in a dimension.
func (f *FilterState) Clear(d Dimension) {
	f.active[d] = make(map[string]bool)
}

// Reset returns both dimensions to all-active.
func (f *FilterState) Reset() {
	f.SelectAll(DimensionRegion)
	f.SelectAll(DimensionService)
}
