package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kailas-cloud/catalog/internal/domain/facet"
	"github.com/kailas-cloud/catalog/internal/usecase/session"
)

const (
	sidebarWidth  = 30
	reservedLines = 8 // header, input, page info, status, borders
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	badgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusBoxStyle = boxStyle.Copy().BorderForeground(lipgloss.Color("11"))
)

// View renders the browser layout.
func (m Model) View() string {
	var b strings.Builder

	total := "loading"
	if m.cat != nil {
		total = fmt.Sprintf("%d items", m.cat.Len())
	}
	b.WriteString(headerStyle.Render("Catalog") + "  " + mutedStyle.Render(total) + "\n")

	b.WriteString(m.box(focusQuery).Render(m.input.View()) + "\n")

	sidebar := lipgloss.JoinVertical(lipgloss.Left,
		m.box(focusTypes).Width(sidebarWidth).Render(m.renderFacets("Types", m.types, m.typeCursor, focusTypes, m.sess.TypeSelected)),
		m.box(focusPlatforms).Width(sidebarWidth).Render(m.renderFacets("Platforms", m.platforms, m.platformCursor, focusPlatforms, m.sess.PlatformSelected)),
	)
	results := m.box(focusResults).Render(m.viewport.View())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, results) + "\n")

	b.WriteString(m.pageInfo() + "\n")
	if m.gotoMode {
		b.WriteString(m.gotoInput.View() + "\n")
	}

	status := m.statusLine()
	if m.err != nil {
		b.WriteString(errorStyle.Render(status))
	} else {
		b.WriteString(statusStyle.Render(status))
	}
	b.WriteString("\n" + mutedStyle.Render(
		"tab focus • space toggle • enter search • ctrl+r reset filters • ctrl+x clear • ctrl+s per-page • ←/→ page • : go to • ctrl+c quit",
	))
	return b.String()
}

func (m Model) box(f focusArea) lipgloss.Style {
	if m.focus == f {
		return focusBoxStyle
	}
	return boxStyle
}

func (m Model) renderFacets(
	title string, ff []facet.Facet, cursor int, area focusArea, selected func(string) bool,
) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(title) + "\n")
	if len(ff) == 0 {
		b.WriteString(mutedStyle.Render("none"))
		return b.String()
	}
	for i, f := range ff {
		mark := "[ ]"
		if selected(f.Value()) {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s (%d)", mark, f.Value(), f.Count())
		if m.focus == area && i == cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < len(ff)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) pageInfo() string {
	if m.sess.State() == session.Initial {
		return mutedStyle.Render(fmt.Sprintf("0 matches • %d per page", m.sess.PageSize()))
	}
	v := m.sess.View()
	return mutedStyle.Render(fmt.Sprintf("Page %d / %d • %d matches • %d per page",
		v.Number, v.TotalPages, m.sess.Matches(), m.sess.PageSize()))
}

func (m Model) renderResults() string {
	switch {
	case m.err != nil:
		return "The catalog could not be loaded."
	case m.cat == nil:
		return "Loading catalog..."
	case m.sess.State() == session.Initial:
		return "Search the catalog, or press Enter to list everything."
	case m.sess.Matches() == 0:
		return "No results\nTry different keywords or adjust filters, then search again."
	}

	v := m.sess.View()
	var b strings.Builder
	for i := range v.Items {
		it := &v.Items[i]
		fmt.Fprintf(&b, "%d. %s  %s %s\n", v.Offset()+i+1,
			headerStyle.Render(it.DisplayTitle()),
			badgeStyle.Render("["+it.DisplayType()+"]"),
			badgeStyle.Render("["+it.DisplayPlatform()+"]"),
		)
		b.WriteString("   " + mutedStyle.Render(it.DisplayLink()) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
