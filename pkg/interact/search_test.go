package interact

import (
	"reflect"
	"sync"
	"testing"
	"time"
)

func TestSearchSubstringCaseInsensitive(t *testing.T) {
	e := chainEngine()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"Label", "WEB", []string{"sg:web"}},
		{"ID", "rds:", []string{"rds:db"}},
		{"Type", "security-group", []string{"sg:web", "sg:app"}},
		{"Broad", "sg", []string{"sg:web", "sg:app"}},
		{"NoMatch", "zzz", nil},
		{"Empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Search(tt.query)
			if !reflect.DeepEqual(res.Matches, tt.want) {
				t.Errorf("matches = %v, want %v", res.Matches, tt.want)
			}
		})
	}
}

func TestSearchHighlightAndFade(t *testing.T) {
	e := chainEngine()

	e.Search("orders")
	h := e.Highlight()
	if !h.Active || !h.Nodes["rds:db"] {
		t.Fatal("match not highlighted")
	}
	if !h.Faded["sg:web"] || !h.Faded["s3:logs"] {
		t.Error("non-matches not faded")
	}
	if len(h.Edges) != 1 || h.Edges[0].Label != "tcp:5432" {
		t.Errorf("neighbor edges = %+v", h.Edges)
	}
	if !h.Recenter {
		t.Error("small match set should recenter")
	}
}

func TestSearchEmptyQueryClearsHighlight(t *testing.T) {
	e := chainEngine()

	e.Search("sg")
	e.Search("")
	if h := e.Highlight(); h.Active {
		t.Error("highlight active after empty query")
	}
}

func TestSearchZeroMatchesClearsHighlight(t *testing.T) {
	e := chainEngine()

	e.Search("sg")
	e.Search("nothing-matches-this")
	if h := e.Highlight(); h.Active {
		t.Error("highlight active with zero matches")
	}
}

func TestSearchRecenterBound(t *testing.T) {
	e := chainEngine()
	e.recenterBound = 1

	if res := e.Search("orders"); !res.Recenter {
		t.Error("single match should recenter")
	}
	if res := e.Search("sg"); res.Recenter {
		t.Error("broad match should not move the view")
	}
}

func TestConfirmFocusesFirstMatch(t *testing.T) {
	e := chainEngine()

	e.Search("sg")
	d, err := e.Confirm()
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if d.ID != "sg:web" {
		t.Errorf("detail for %s, want first match sg:web", d.ID)
	}
	if id, ok := e.Focused(); !ok || id != "sg:web" {
		t.Errorf("focused = %q, %v", id, ok)
	}
}

func TestCancelClearsEverything(t *testing.T) {
	e := chainEngine()

	e.Search("sg")
	if _, err := e.Confirm(); err != nil {
		t.Fatal(err)
	}
	e.Cancel()

	if h := e.Highlight(); h.Active {
		t.Error("highlight active after cancel")
	}
	if _, ok := e.Focused(); ok {
		t.Error("focus survived cancel")
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var mu sync.Mutex
	var fired []string

	for _, q := range []string{"w", "we", "web"} {
		d.Submit(q, func(query string, gen uint64) {
			mu.Lock()
			fired = append(fired, query)
			mu.Unlock()
		})
	}

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if !reflect.DeepEqual(fired, []string{"web"}) {
		t.Errorf("fired = %v, want only the final query", fired)
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var mu sync.Mutex
	count := 0
	d.Submit("web", func(string, uint64) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	d.Cancel()

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("cancelled submit fired %d times", count)
	}
}
