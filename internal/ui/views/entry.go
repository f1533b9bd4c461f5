package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// EntryRenderer renders the rows of a list payload
type EntryRenderer struct {
	styles *Styles
}

// NewEntryRenderer creates a new entry renderer
func NewEntryRenderer(styles *Styles) *EntryRenderer {
	return &EntryRenderer{styles: styles}
}

// RenderEntry renders one list row, truncated to width when width is known
func (r *EntryRenderer) RenderEntry(label string, isSelected bool, width int) string {
	marker := "  "
	if isSelected {
		marker = "▸ "
	}
	line := marker + label
	if width > 0 {
		// Main container pads two columns on each side
		if limit := width - 4; limit > 0 && lipgloss.Width(line) > limit {
			line = truncate(line, limit)
		}
	}
	if isSelected {
		return r.styles.Selected.Render(line)
	}
	return r.styles.Entry.Render(line)
}

// RenderList renders the visible window of entries with scroll indicators
func (r *EntryRenderer) RenderList(state ViewState) string {
	lines := make([]string, 0, state.WindowEnd-state.WindowStart+2)
	if state.Above > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", state.Above)))
	}
	for i := state.WindowStart; i < state.WindowEnd && i < len(state.Entries); i++ {
		lines = append(lines, r.RenderEntry(state.Entries[i], i == state.SelectedIndex, state.Width))
	}
	if state.Below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", state.Below)))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}
