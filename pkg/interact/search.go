package interact

import (
	"strings"
	"sync"
	"time"
)

// SearchResult reports one completed search pass.
type SearchResult struct {
	Query string `json:"query"`
	// Generation identifies the input state this result belongs to. Stale
	// results carry an older generation and must be discarded by the caller.
	Generation uint64   `json:"generation"`
	Matches    []string `json:"matches"`
	// Recenter is set when the match count is small enough to move the view.
	Recenter bool `json:"recenter"`
}

// Search runs a query against the current graph and installs the result as
// the active search state. Matching is a case-insensitive substring test on
// label, id, and type. An empty query, or a query with no matches, clears
// highlighting.
func (e *Engine) Search(query string) SearchResult {
	e.gen++
	e.query = query
	e.matches = nil

	if e.graph != nil && query != "" {
		q := strings.ToLower(query)
		for _, n := range e.graph.Nodes {
			if strings.Contains(strings.ToLower(n.Label), q) ||
				strings.Contains(strings.ToLower(n.ID), q) ||
				strings.Contains(strings.ToLower(string(n.Type)), q) {
				e.matches = append(e.matches, n.ID)
			}
		}
	}

	return SearchResult{
		Query:      query,
		Generation: e.gen,
		Matches:    append([]string(nil), e.matches...),
		Recenter:   len(e.matches) > 0 && len(e.matches) <= e.recenterBound,
	}
}

// Matches returns the current match list in graph order.
func (e *Engine) Matches() []string {
	return append([]string(nil), e.matches...)
}

// Confirm jumps to the first match: it focuses that node and returns its
// detail projection. With no matches it reports not-found state unchanged.
func (e *Engine) Confirm() (Detail, error) {
	if len(e.matches) == 0 {
		return Detail{}, errNoMatches()
	}
	first := e.matches[0]
	if err := e.Focus(first); err != nil {
		return Detail{}, err
	}
	return e.Detail(first)
}

// Cancel clears the query, matches, and focus.
func (e *Engine) Cancel() {
	e.clearSearch()
	e.ClearFocus()
}

func (e *Engine) clearSearch() {
	e.query = ""
	e.matches = nil
}

// DefaultDebounce is the pause after the last keystroke before a search runs.
const DefaultDebounce = 250 * time.Millisecond

// Debouncer coalesces rapid input changes into one deferred call. Each Submit
// supersedes the pending one; only the generation of the latest Submit ever
// fires. Latency is the only observable difference from calling run directly.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	gen   uint64
}

// NewDebouncer returns a debouncer with the given delay, or DefaultDebounce
// when delay is zero.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Submit schedules run(query, generation) after the delay, cancelling any
// pending call. run executes on a timer goroutine; the caller is responsible
// for re-serializing into its own loop and for discarding results whose
// generation is no longer current.
func (d *Debouncer) Submit(query string, run func(query string, generation uint64)) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := d.gen == gen
		d.mu.Unlock()
		if current {
			run(query, gen)
		}
	})
	return gen
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Generation returns the latest submitted generation.
func (d *Debouncer) Generation() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen
}
