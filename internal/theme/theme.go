package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// UnsavedStyle marks the header when the last save failed.
var UnsavedStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorRed).
	Padding(0, 1)

// NoticeBarStyle replaces the status bar while a notice is shown.
var NoticeBarStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed).
	Background(ColorSubtle).
	Padding(0, 1)

// DetailPanelStyle wraps the detail view content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for rows in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused row.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// DimmedStyle renders secondary text such as categories and timestamps.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// BreadcrumbStyle renders the path above a list.
var BreadcrumbStyle = lipgloss.NewStyle().
	Foreground(ColorMagenta)

// CategoryStyle renders a list category badge.
var CategoryStyle = lipgloss.NewStyle().
	Foreground(ColorYellow).
	Padding(0, 1)

// HintStyle frames the financials info box.
var HintStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorYellow).
	Foreground(ColorWhite)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// Profit classes understood by ProfitStyle.
const (
	ProfitGain    = "gain"
	ProfitLoss    = "loss"
	ProfitNeutral = "neutral"
)

// ProfitStyle returns a color-coded style for a profit class.
func ProfitStyle(class string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch class {
	case ProfitGain:
		return base.Foreground(ColorGreen)
	case ProfitLoss:
		return base.Foreground(ColorRed)
	case ProfitNeutral:
		return base.Foreground(ColorWhite)
	default:
		return base.Foreground(ColorGray)
	}
}

// EntryBadgeStyle returns the marker style for a sublist or an item row.
func EntryBadgeStyle(isList bool) lipgloss.Style {
	if isList {
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBlue)
	}
	return lipgloss.NewStyle().Foreground(ColorGray)
}
