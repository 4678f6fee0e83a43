package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/sortbase/internal/theme"
)

const (
	crumbSep     = " › "
	ellipsis     = "…"
	unsavedLabel = "⚠ not saved"
)

// Layout splits the terminal into header, breadcrumb, content and status
// rows.
type Layout struct {
	Width  int
	Height int
}

// NewLayout creates a Layout for a terminal of the given size.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight is what remains below the header and breadcrumb and above
// the status bar.
func (l Layout) ContentHeight() int {
	return max(l.Height-3, 0)
}

// Header is the content of the top bar.
type Header struct {
	Title string

	// Counts summarises what is in view, e.g. "2 sublists · 5 items".
	Counts string

	// Source is the data file. It is replaced by a warning when Unsaved.
	Source  string
	Unsaved bool
}

// RenderHeader renders the title and counts on the left and the data
// source on the right. A long source is cut from the left so its file name
// stays visible.
func (l Layout) RenderHeader(h Header) string {
	left := theme.HeaderStyle.Render(h.Title)
	if h.Counts != "" {
		left += theme.HeaderStyle.Bold(false).Render(h.Counts)
	}

	var right string
	if h.Unsaved {
		right = theme.UnsavedStyle.Render(unsavedLabel)
	} else {
		room := l.Width - lipgloss.Width(left) - 2
		right = theme.HeaderStyle.Render(TruncateLeft(h.Source, room))
	}

	gap := max(l.Width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	filler := lipgloss.NewStyle().
		Width(gap).
		Background(theme.HeaderStyle.GetBackground()).
		Render("")
	return lipgloss.JoinHorizontal(lipgloss.Top, left, filler, right)
}

// RenderStatusBar renders keyboard hints across the bottom row.
func (l Layout) RenderStatusBar(hints string) string {
	return theme.StatusBarStyle.Width(l.Width).MaxWidth(l.Width).Render(hints)
}

// RenderNotice renders a failure message in place of the hints.
func (l Layout) RenderNotice(msg string) string {
	return theme.NoticeBarStyle.Width(l.Width).MaxWidth(l.Width).Render(msg)
}

// RenderBreadcrumb renders a root-to-current path, dropping the outermost
// names when it does not fit.
func (l Layout) RenderBreadcrumb(names []string) string {
	if len(names) == 0 {
		return ""
	}
	path := strings.Join(names, crumbSep)
	for len(names) > 1 && lipgloss.Width(path) > l.Width-2 {
		names = names[1:]
		path = ellipsis + crumbSep + strings.Join(names, crumbSep)
	}
	return theme.BreadcrumbStyle.Render(path)
}

// RenderWithFrame stacks the rows of a full screen.
func (l Layout) RenderWithFrame(header, breadcrumb, content, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, header, breadcrumb, content, statusBar)
}

// TruncateLeft shortens s to at most width cells, keeping its end.
func TruncateLeft(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(ellipsis+string(r)) > width {
		r = r[1:]
	}
	return ellipsis + string(r)
}
