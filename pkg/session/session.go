// Package session owns one dataset: the ingested sources, the graph built
// from them, and all presentation state layered on top (filter, focus,
// search, layout mode).
//
// A session is a single unit of ownership. Every operation takes the session
// mutex, so state transitions are serialized: no mutation begins while a
// previous one is in flight, and a failed mutation leaves the previous
// consistent state untouched.
//
// Dataset mutations rebuild the graph wholesale. A rebuild resets the filter
// to all-active with the new universes and clears focus and search, since
// node ids from the old graph are no longer meaningful.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cloudscope/cloudscope/pkg/errors"
	"github.com/cloudscope/cloudscope/pkg/graph"
	"github.com/cloudscope/cloudscope/pkg/interact"
	"github.com/cloudscope/cloudscope/pkg/inventory"
	"github.com/cloudscope/cloudscope/pkg/layout"
	"github.com/cloudscope/cloudscope/pkg/observability"
	"github.com/cloudscope/cloudscope/pkg/store"
	"github.com/cloudscope/cloudscope/pkg/view"
)

// SourceInfo describes one ingested source for listings.
type SourceInfo struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	AddedAt time.Time `json:"added_at"`
}

// AddResult reports a completed source addition. AddedNodes is the net node
// count the source contributed, after duplicate-id merging.
type AddResult struct {
	SourceID   string `json:"source_id"`
	Name       string `json:"name"`
	AddedNodes int    `json:"added_nodes"`
	TotalNodes int    `json:"total_nodes"`
	TotalEdges int    `json:"total_edges"`
}

// RemoveResult reports a completed source removal.
type RemoveResult struct {
	Removed    string `json:"removed"`
	TotalNodes int    `json:"total_nodes"`
}

type entry struct {
	src store.Source
	doc *inventory.Document
}

// Session is the serialized owner of one dataset and its presentation state.
type Session struct {
	mu sync.Mutex

	persist store.Store // optional, nil means memory only

	sources []entry
	graph   *graph.Graph
	report  graph.Report
	stats   graph.Stats

	filter *view.FilterState
	engine *interact.Engine
	mode   layout.Mode

	now func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithStore attaches a persistence backend. Sources are written through on
// every mutation; Load restores them.
func WithStore(st store.Store) Option {
	return func(s *Session) { s.persist = st }
}

// New creates an empty session with an empty graph and force layout.
func New(opts ...Option) *Session {
	s := &Session{
		graph:  graph.New(nil, nil),
		filter: view.NewFilterState(),
		engine: interact.NewEngine(),
		mode:   layout.ModeForce,
		now:    time.Now,
	}
	s.engine.SetGraph(s.graph)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load restores persisted sources and rebuilds the graph. Sources that no
// longer decode are skipped and reported via the returned error list; the
// rest still load.
func (s *Session) Load(ctx context.Context) ([]error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.persist == nil {
		return nil, nil
	}
	persisted, err := s.persist.List(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "load sources")
	}

	var skipped []error
	var loaded []entry
	for _, src := range persisted {
		doc, err := inventory.Decode(src.Data)
		if err != nil {
			skipped = append(skipped, errors.Wrap(errors.ErrCodeIngestion, err, "source %q", src.Name))
			continue
		}
		loaded = append(loaded, entry{src: src, doc: doc})
	}

	s.sources = loaded
	s.rebuild(ctx)
	return skipped, nil
}

// AddSource validates and ingests one raw inventory document. A document
// that fails validation is rejected whole; the session keeps its previous
// graph and state.
func (s *Session) AddSource(ctx context.Context, name string, data []byte) (AddResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := inventory.Decode(data)
	if err != nil {
		return AddResult{}, errors.Wrap(errors.ErrCodeIngestion, err, "source %q", name)
	}

	src := store.Source{
		ID:      uuid.NewString(),
		Name:    name,
		AddedAt: s.now().UTC(),
		Data:    data,
	}
	if s.persist != nil {
		if err := s.persist.Put(ctx, src); err != nil {
			return AddResult{}, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "persist source %q", name)
		}
	}

	before := len(s.graph.Nodes)
	s.sources = append(s.sources, entry{src: src, doc: doc})
	s.rebuild(ctx)
	observability.Session().OnSourceAdded(ctx, src.ID, name, len(data))

	return AddResult{
		SourceID:   src.ID,
		Name:       name,
		AddedNodes: len(s.graph.Nodes) - before,
		TotalNodes: len(s.graph.Nodes),
		TotalEdges: len(s.graph.Edges),
	}, nil
}

// RemoveSource drops the source at the given position. An out-of-range index
// fails the operation and changes nothing.
func (s *Session) RemoveSource(ctx context.Context, index int) (RemoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.sources) {
		return RemoveResult{}, errors.New(errors.ErrCodeStateTransition,
			"source index %d out of range (%d sources)", index, len(s.sources))
	}

	removed := s.sources[index]
	if s.persist != nil {
		if err := s.persist.Delete(ctx, removed.src.ID); err != nil {
			return RemoveResult{}, errors.Wrap(errors.ErrCodeStoreUnavailable, err,
				"remove source %q", removed.src.Name)
		}
	}

	s.sources = append(s.sources[:index:index], s.sources[index+1:]...)
	s.rebuild(ctx)
	observability.Session().OnSourceRemoved(ctx, removed.src.ID, removed.src.Name)

	return RemoveResult{
		Removed:    removed.src.Name,
		TotalNodes: len(s.graph.Nodes),
	}, nil
}

// Clear drops all sources and resets the session to empty.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.Clear(ctx); err != nil {
			return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "clear sources")
		}
	}
	s.sources = nil
	s.rebuild(ctx)
	return nil
}

// Sources lists ingested sources in ingestion order.
func (s *Session) Sources() []SourceInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SourceInfo, len(s.sources))
	for i, e := range s.sources {
		out[i] = SourceInfo{ID: e.src.ID, Name: e.src.Name, AddedAt: e.src.AddedAt}
	}
	return out
}

// rebuild reconstructs the graph and derived state from the current sources.
// Callers hold the mutex. The filter resets to all-active over the new
// universes; focus and search are invalidated.
func (s *Session) rebuild(ctx context.Context) {
	observability.Session().OnRebuildStart(ctx, len(s.sources))
	start := time.Now()

	docs := make([]*inventory.Document, len(s.sources))
	for i, e := range s.sources {
		docs[i] = e.doc
	}

	g, report := graph.Build(docs)
	s.graph = g
	s.report = report
	s.stats = graph.ComputeStats(docs)
	s.filter.SetUniverse(g.Regions(), g.Services())
	s.engine.SetGraph(g)

	observability.Session().OnRebuildComplete(ctx, len(g.Nodes), len(g.Edges), time.Since(start), nil)
}

// Graph returns the current graph. Treat it as read-only.
func (s *Session) Graph() *graph.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph
}

// Report returns the build report for the current graph.
func (s *Session) Report() graph.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

// Stats returns the inventory summary for the current sources.
func (s *Session) Stats() graph.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// View projects the graph through the current filter.
func (s *Session) View() *view.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view.Project(s.graph, s.filter)
}

// FilterUniverse returns the known values for a dimension.
func (s *Session) FilterUniverse(d view.Dimension) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter.Universe(d)
}

// FilterActive returns the active values for a dimension.
func (s *Session) FilterActive(d view.Dimension) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter.Active(d)
}

// SetFilter replaces a dimension's active set.
func (s *Session) SetFilter(d view.Dimension, values []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.SetActive(d, values)
}

// ToggleFilter flips one value in a dimension.
func (s *Session) ToggleFilter(d view.Dimension, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Toggle(d, value)
}

// ResetFilters returns both dimensions to all-active.
func (s *Session) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Reset()
}

// Focus selects a node.
func (s *Session) Focus(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Focus(id)
}

// ClearFocus drops the selection.
func (s *Session) ClearFocus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.ClearFocus()
}

// Highlight derives the current emphasis state.
func (s *Session) Highlight() interact.Highlight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Highlight()
}

// Search evaluates a query against the current graph.
func (s *Session) Search(ctx context.Context, query string) interact.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.engine.Search(query)
	observability.Session().OnSearch(ctx, query, len(res.Matches))
	return res
}

// Confirm jumps to the first search match and returns its detail.
func (s *Session) Confirm() (interact.Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Confirm()
}

// CancelSearch clears the query, matches, and focus.
func (s *Session) CancelSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Cancel()
}

// Detail projects one node for the detail surface.
func (s *Session) Detail(id string) (interact.Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Detail(id)
}

// SetLayoutMode switches the layout algorithm. Filter and interaction state
// are untouched; only the placement plan changes.
func (s *Session) SetLayoutMode(mode layout.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !mode.Known() {
		return errors.New(errors.ErrCodeStateTransition, "unknown layout mode %q", mode)
	}
	s.mode = mode
	return nil
}

// LayoutMode returns the current layout mode.
func (s *Session) LayoutMode() layout.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// LayoutPlan computes the placement plan for the current filtered view.
func (s *Session) LayoutPlan() layout.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return layout.Select(s.mode, view.Project(s.graph, s.filter))
}
