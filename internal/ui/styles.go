package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kostyay/basementhq/internal/model"
	"github.com/kostyay/basementhq/internal/theme"
)

// Palette-aware style getters

// Status colors stay fixed across themes for legibility.
const (
	degradedColor    = lipgloss.Color("#FFB86C")
	unavailableColor = lipgloss.Color("#FF5555")
	mutedColor       = lipgloss.Color("#8B949E")
)

// PrimaryStyle returns the style for accented text.
func PrimaryStyle(p theme.RenderParameters) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(p.PrimaryColor))
}

// HeaderStyle returns the style for the main header title.
func HeaderStyle(p theme.RenderParameters) lipgloss.Style {
	return PrimaryStyle(p).Bold(true)
}

// BorderStyle returns the style for borders.
func BorderStyle(p theme.RenderParameters) lipgloss.Style {
	return PrimaryStyle(p)
}

// CardStyle returns the frame used around each source.
func CardStyle(p theme.RenderParameters, width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.PrimaryColor)).
		Background(lipgloss.Color(p.CardColor)).
		Padding(0, 1).
		Width(width)
}

// CardTitleStyle returns the style for card titles.
func CardTitleStyle(p theme.RenderParameters) lipgloss.Style {
	return PrimaryStyle(p).Bold(true)
}

// MutedStyle returns the style for secondary text such as timestamps.
func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(mutedColor)
}

// StatusStyle returns the style for a source status badge.
func StatusStyle(p theme.RenderParameters, s model.Status) lipgloss.Style {
	switch s {
	case model.StatusOK:
		return PrimaryStyle(p).Bold(true)
	case model.StatusDegraded:
		return lipgloss.NewStyle().Foreground(degradedColor).Bold(true)
	default:
		return ErrorStyle()
	}
}

// ErrorStyle returns the style for error messages.
func ErrorStyle() lipgloss.Style {
	// Keep error as red for visibility
	return lipgloss.NewStyle().
		Foreground(unavailableColor).
		Bold(true)
}

// LoadingStyle returns the style for loading indicators.
func LoadingStyle() lipgloss.Style {
	return MutedStyle().Italic(true)
}

// FooterKeyStyle returns the style for keyboard shortcut keys in footer.
func FooterKeyStyle(p theme.RenderParameters) lipgloss.Style {
	return PrimaryStyle(p).Bold(true)
}

// FooterDescStyle returns the style for key descriptions in footer.
func FooterDescStyle() lipgloss.Style {
	return MutedStyle()
}

// padRight pads a string to the specified width.
func padRight(s string, width int) string {
	// Use lipgloss to measure visible width (handles ANSI escape codes)
	visibleWidth := lipgloss.Width(s)
	if visibleWidth >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visibleWidth)
}
