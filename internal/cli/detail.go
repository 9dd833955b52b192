package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cloudscope/cloudscope/pkg/interact"
)

var (
	detailKeyStyle   = lipgloss.NewStyle().Foreground(colorDim).Width(14)
	detailTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	outboundArrow    = "→"
	inboundArrow     = "←"
)

// renderDetail formats a detail projection for the terminal.
func renderDetail(d interact.Detail) string {
	var b strings.Builder

	b.WriteString(detailTitleStyle.Render(fmt.Sprintf("%s  [%s]", d.Label, d.Type)))
	b.WriteString("\n\n")

	for _, p := range d.Properties {
		b.WriteString(detailKeyStyle.Render(p.Key))
		b.WriteString(" ")
		b.WriteString(p.Value)
		b.WriteString("\n")
	}

	if len(d.InboundRules) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("inbound rules"))
		b.WriteString("\n")
		for _, rule := range d.InboundRules {
			b.WriteString("  " + rule + "\n")
		}
	}

	if len(d.Connections) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("connections"))
		b.WriteString("\n")
		for _, conn := range d.Connections {
			arrow := outboundArrow
			if conn.Direction == "inbound" {
				arrow = inboundArrow
			}
			label := conn.Label
			if label != "" {
				label = " (" + label + ")"
			}
			b.WriteString(fmt.Sprintf("  %s %s%s\n", arrow, conn.NeighborLabel, label))
		}
	}

	return b.String()
}
