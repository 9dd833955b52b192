package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cloudscope/cloudscope/pkg/session"
	"github.com/cloudscope/cloudscope/pkg/view"
)

// Explorer styles
var (
	colorCyan  = lipgloss.Color("14")
	colorWhite = lipgloss.Color("15")
	colorDim   = lipgloss.Color("8")
	colorWarn  = lipgloss.Color("11")

	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	normalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	dimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	matchStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorWarn)
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
)

// explorerMode tracks which pane has input focus.
type explorerMode int

const (
	modeBrowse explorerMode = iota
	modeSearch
	modeDetail
	modeFilter
)

// searchTickMsg fires when a debounced search evaluation comes due. Stale
// generations are ignored, so only the last keystroke's evaluation runs.
type searchTickMsg struct {
	generation uint64
}

// filterItem is one toggleable entry in the filter pane.
type filterItem struct {
	dim   view.Dimension
	value string
}

// explorerModel is the bubbletea model for the inventory explorer.
type explorerModel struct {
	sess     *session.Session
	debounce time.Duration

	mode   explorerMode
	nodes  []view.NodeElement
	cursor int
	offset int
	height int

	filterItems  []filterItem
	filterCursor int

	query      string
	generation uint64
	matches    map[string]bool

	detailText string
	status     string
}

func newExplorerModel(sess *session.Session, debounce time.Duration) explorerModel {
	m := explorerModel{sess: sess, debounce: debounce, height: 20}
	m.reload()
	return m
}

// reload re-projects the view after a filter or dataset change.
func (m *explorerModel) reload() {
	m.nodes = m.sess.View().Nodes
	if m.cursor >= len(m.nodes) {
		m.cursor = 0
		m.offset = 0
	}
	report := m.sess.Report()
	m.status = fmt.Sprintf("%d nodes, %d edges", report.Nodes, report.Edges)
	if report.DroppedEdges > 0 {
		m.status += fmt.Sprintf(", %d dropped edges", report.DroppedEdges)
	}
}

func (m explorerModel) Init() tea.Cmd {
	return nil
}

func (m explorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
		return m, nil
	case searchTickMsg:
		if msg.generation == m.generation {
			m.applySearch()
		}
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeDetail:
			return m.updateDetail(msg)
		case modeFilter:
			return m.updateFilter(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m explorerModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}
	case "down", "j":
		if m.cursor < len(m.nodes)-1 {
			m.cursor++
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case "/":
		m.mode = modeSearch
		m.query = ""
	case "f":
		m.mode = modeFilter
		m.filterCursor = 0
		m.filterItems = m.filterItems[:0]
		for _, r := range m.sess.FilterUniverse(view.DimensionRegion) {
			m.filterItems = append(m.filterItems, filterItem{dim: view.DimensionRegion, value: r})
		}
		for _, svc := range m.sess.FilterUniverse(view.DimensionService) {
			m.filterItems = append(m.filterItems, filterItem{dim: view.DimensionService, value: svc})
		}
	case "enter":
		if m.cursor < len(m.nodes) {
			m.openDetail(m.nodes[m.cursor].ID)
		}
	case "esc":
		m.sess.CancelSearch()
		m.matches = nil
	}
	return m, nil
}

func (m explorerModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeBrowse
		m.query = ""
		m.generation++
		m.sess.CancelSearch()
		m.matches = nil
		return m, nil
	case "enter":
		m.applySearch()
		if d, err := m.sess.Confirm(); err == nil {
			m.mode = modeDetail
			m.detailText = renderDetail(d)
			m.jumpTo(d.ID)
		} else {
			m.mode = modeBrowse
		}
		return m, nil
	case "backspace":
		if len(m.query) > 0 {
			m.query = m.query[:len(m.query)-1]
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.query += string(msg.Runes)
		} else {
			return m, nil
		}
	}

	// Reschedule the evaluation; earlier pending ticks become stale.
	m.generation++
	gen := m.generation
	return m, tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return searchTickMsg{generation: gen}
	})
}

func (m explorerModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "f":
		m.mode = modeBrowse
	case "up", "k":
		if m.filterCursor > 0 {
			m.filterCursor--
		}
	case "down", "j":
		if m.filterCursor < len(m.filterItems)-1 {
			m.filterCursor++
		}
	case " ", "enter":
		if m.filterCursor < len(m.filterItems) {
			item := m.filterItems[m.filterCursor]
			m.sess.ToggleFilter(item.dim, item.value)
			m.reload()
		}
	case "r":
		m.sess.ResetFilters()
		m.reload()
	}
	return m, nil
}

func (m explorerModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "enter":
		m.mode = modeBrowse
		m.detailText = ""
	}
	return m, nil
}

// applySearch runs the pending query and records the match set.
func (m *explorerModel) applySearch() {
	res := m.sess.Search(context.Background(), m.query)
	m.matches = make(map[string]bool, len(res.Matches))
	for _, id := range res.Matches {
		m.matches[id] = true
	}
	if res.Recenter && len(res.Matches) > 0 {
		m.jumpTo(res.Matches[0])
	}
}

func (m *explorerModel) jumpTo(id string) {
	for i, n := range m.nodes {
		if n.ID == id {
			m.cursor = i
			if m.cursor < m.offset || m.cursor >= m.offset+m.height {
				m.offset = m.cursor
			}
			return
		}
	}
}

func (m *explorerModel) openDetail(id string) {
	d, err := m.sess.Detail(id)
	if err != nil {
		m.status = err.Error()
		return
	}
	if err := m.sess.Focus(id); err == nil {
		m.mode = modeDetail
		m.detailText = renderDetail(d)
	}
}

func (m explorerModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("cloudscope explorer"))
	b.WriteString("\n\n")

	if m.mode == modeDetail {
		b.WriteString(m.detailText)
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("esc back · q quit"))
		return b.String()
	}

	if m.mode == modeFilter {
		active := map[view.Dimension]map[string]bool{
			view.DimensionRegion:  {},
			view.DimensionService: {},
		}
		for d, set := range active {
			for _, v := range m.sess.FilterActive(d) {
				set[v] = true
			}
		}
		lastDim := view.Dimension(-1)
		for i, item := range m.filterItems {
			if item.dim != lastDim {
				title := "regions"
				if item.dim == view.DimensionService {
					title = "services"
				}
				if lastDim >= 0 {
					b.WriteString("\n")
				}
				b.WriteString(headerStyle.Render(title))
				b.WriteString("\n")
				lastDim = item.dim
			}
			box := "[ ]"
			if active[item.dim][item.value] {
				box = "[x]"
			}
			line := fmt.Sprintf("%s %s", box, item.value)
			if i == m.filterCursor {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString(normalStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
		if len(m.filterItems) == 0 {
			b.WriteString(dimStyle.Render("  no filter dimensions yet"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("space toggle · r reset · esc back"))
		return b.String()
	}

	end := m.offset + m.height
	if end > len(m.nodes) {
		end = len(m.nodes)
	}
	for i := m.offset; i < end; i++ {
		n := m.nodes[i]
		line := fmt.Sprintf("%-18s %-40s %s", n.Type, truncate(n.Label, 40), n.Region)
		switch {
		case i == m.cursor:
			b.WriteString(selectedStyle.Render("> " + line))
		case m.matches[n.ID]:
			b.WriteString(matchStyle.Render("  " + line))
		default:
			b.WriteString(normalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	if len(m.nodes) == 0 {
		b.WriteString(dimStyle.Render("  nothing to show"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.mode == modeSearch {
		b.WriteString("search: " + m.query + "▌\n")
	}
	b.WriteString(dimStyle.Render(m.status + " · / search · f filters · enter details · q quit"))
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
