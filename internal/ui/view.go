package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/kostyay/basementhq/internal/model"
)

// Layout constants for fixed header/footer with scrollable content.
const (
	headerHeight = 3 // double-line box header (top border + content + bottom border)
	footerHeight = 1 // keybindings
	barWidth     = 24
)

// now is replaced in tests.
var now = time.Now

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Wait for viewport to be initialized
	if !m.ready {
		return LoadingStyle().Render("Initializing...")
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if m.helpMode {
		b.WriteString(m.renderHelp())
	} else {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the double-line header with title and status counts.
func (m Model) renderHeader() string {
	p := m.params
	borderStyle := BorderStyle(p)
	innerWidth := m.width - 2
	if innerWidth < 0 {
		innerWidth = 0
	}

	topLeft, topRight := "╔", "╗"
	bottomLeft, bottomRight := "╚", "╝"
	horizontal, vertical := "═", "║"

	title := " " + p.Title + " "
	remainingWidth := innerWidth - lipgloss.Width(title)
	if remainingWidth < 0 {
		remainingWidth = 0
	}
	leftPad := remainingWidth / 2
	rightPad := remainingWidth - leftPad

	topBorder := borderStyle.Render(topLeft + strings.Repeat(horizontal, leftPad))
	topBorder += HeaderStyle(p).Render(title)
	topBorder += borderStyle.Render(strings.Repeat(horizontal, rightPad) + topRight)

	live := m.spinner.View() + " " + HeaderStyle(p).Render("LIVE")
	if m.paused {
		live = StatusStyle(p, model.StatusDegraded).Render("❚❚ PAUSED")
	}

	var ok, degraded, down int
	for _, rep := range m.reports {
		switch rep.Status {
		case model.StatusOK:
			ok++
		case model.StatusDegraded:
			degraded++
		default:
			down++
		}
	}
	counts := MutedStyle().Render(fmt.Sprintf("   %d ok  %d degraded  %d offline", ok, degraded, down))
	clock := MutedStyle().Render("   " + now().Format("15:04:05"))
	themeName := MutedStyle().Render("   " + p.ThemeName)

	content := live + counts + clock + themeName
	padding := innerWidth - lipgloss.Width(content) - 2
	if padding < 0 {
		padding = 0
	}
	contentLine := borderStyle.Render(vertical) + " " + content + strings.Repeat(" ", padding) + " " + borderStyle.Render(vertical)

	bottomBorder := borderStyle.Render(bottomLeft + strings.Repeat(horizontal, innerWidth) + bottomRight)

	return topBorder + "\n" + contentLine + "\n" + bottomBorder
}

// renderFooter renders the keybinding hints.
func (m Model) renderFooter() string {
	keys := []Keybinding{KeyQuit, KeyRefresh, KeyPause, KeyHelp}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, FooterKeyStyle(m.params).Render(k.Key)+" "+FooterDescStyle().Render(k.Desc))
	}
	return padRight(strings.Join(parts, FooterDescStyle().Render("  ·  ")), m.width)
}

func (m Model) renderHelp() string {
	var b strings.Builder
	for _, k := range []Keybinding{KeyUp, KeyUpAlt, KeyDown, KeyDownAlt, KeyRefresh, KeyPause, KeyHelp, KeyEsc, KeyQuit, KeyQuitAlt} {
		fmt.Fprintf(&b, "%s %s\n", FooterKeyStyle(m.params).Render(padRight(k.Key, 8)), k.Desc)
	}
	b.WriteString("\n")
	b.WriteString(MutedStyle().Render(fmt.Sprintf("fast sources every %s, containers every %s", m.fastInterval, m.containerInterval)))
	return CardStyle(m.params, m.cardWidth()).Render(CardTitleStyle(m.params).Render("KEYBOARD SHORTCUTS") + "\n\n" + b.String())
}

func (m Model) cardWidth() int {
	w := m.width - 2
	if w < 20 {
		w = 20
	}
	return w
}

// updateViewportContent re-renders all cards into the viewport.
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderCards())
}

// displayOrder returns fast sources in configured order, then containers.
func (m Model) displayOrder() []model.SourceID {
	out := make([]model.SourceID, 0, len(m.fastIDs)+1)
	out = append(out, m.fastIDs...)
	return append(out, model.SourceContainers)
}

func (m Model) renderCards() string {
	cards := make([]string, 0, len(m.fastIDs)+1)
	at := now()
	for _, id := range m.displayOrder() {
		rep, ok := m.reports[id]
		cards = append(cards, m.renderCard(id, rep, ok, at))
	}
	return strings.Join(cards, "\n")
}

func (m Model) renderCard(id model.SourceID, rep model.Report, polled bool, at time.Time) string {
	p := m.params
	title := CardTitleStyle(p).Render(sourceTitle(id))

	if !polled {
		body := m.spinner.View() + " " + LoadingStyle().Render("waiting for first poll")
		return CardStyle(p, m.cardWidth()).Render(title + "\n" + body)
	}

	badge := StatusStyle(p, rep.Status).Render(statusBadge(rep.Status))
	age := MutedStyle().Render(formatAge(rep.At, at))
	head := title + "  " + badge + "  " + age

	var lines []string
	if rep.Reason != "" {
		lines = append(lines, StatusStyle(p, rep.Status).Render(rep.Reason))
	}
	if rep.Status == model.StatusOK || !isEmptyPayload(rep.Payload) {
		if body := m.renderPayload(rep.Payload); body != "" {
			lines = append(lines, body)
		}
	}
	body := strings.Join(lines, "\n")
	return CardStyle(p, m.cardWidth()).Render(head + "\n" + body)
}

// isEmptyPayload reports whether a degraded payload carries nothing worth
// showing.
func isEmptyPayload(payload any) bool {
	switch v := payload.(type) {
	case nil:
		return true
	case model.MediaSessions:
		return v.ActiveStreams == 0 && v.Summary == ""
	case model.FilteringStats:
		return v == model.FilteringStats{}
	case model.Weather:
		return v == model.Weather{}
	case model.ContainerInventory:
		return len(v.Containers) == 0 && v.Hidden == 0
	}
	return false
}

func (m Model) renderPayload(payload any) string {
	switch v := payload.(type) {
	case model.HostResources:
		return strings.Join([]string{
			m.meterLine("CPU ", v.CPUPercent),
			m.meterLine("RAM ", v.RAMPercent),
			m.meterLine("DISK", v.DiskPercent),
		}, "\n")

	case model.Throughput:
		return fmt.Sprintf("▼ %-14s ▲ %s\n%s",
			formatRate(v.DownBytesPerSec), formatRate(v.UpBytesPerSec),
			MutedStyle().Render(fmt.Sprintf("total ▼ %s  ▲ %s", humanize.IBytes(v.BytesRecv), humanize.IBytes(v.BytesSent))))

	case model.Reachability:
		target := v.Target
		if v.Service != "" {
			target += " " + v.Service
		}
		if !v.Up {
			return ErrorStyle().Render("DOWN") + "  " + MutedStyle().Render(target)
		}
		return PrimaryStyle(m.params).Render("UP "+formatLatency(v.Latency)) + "  " + MutedStyle().Render(target)

	case model.MediaSessions:
		lines := []string{v.Summary}
		for _, s := range v.Streams {
			line := fmt.Sprintf("  %s · %s", s.User, s.Title)
			if s.Client != "" {
				line += MutedStyle().Render(" (" + s.Client + ")")
			}
			lines = append(lines, truncateString(line, m.cardWidth()))
		}
		return strings.Join(lines, "\n")

	case model.FilteringStats:
		return fmt.Sprintf("queries %s   blocked %s   %.1f%%",
			humanize.Comma(v.TotalQueries), humanize.Comma(v.BlockedQueries), v.BlockRate)

	case model.Weather:
		return fmt.Sprintf("%.1f°C  %s", v.TemperatureC, v.Description)

	case model.ContainerInventory:
		return m.renderContainers(v)
	}
	return ""
}

func (m Model) meterLine(label string, pct float64) string {
	frac := pct / 100
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return label + " " + m.bar.ViewAs(frac) + " " + formatPercent(pct)
}

func (m Model) renderContainers(inv model.ContainerInventory) string {
	summary := fmt.Sprintf("%d running / %d shown", inv.Running(), len(inv.Containers))
	if inv.Hidden > 0 {
		summary += fmt.Sprintf(" (%d hidden)", inv.Hidden)
	}
	lines := []string{summary}

	nameWidth := 4
	for _, c := range inv.Containers {
		if w := lipgloss.Width(c.Name); w > nameWidth {
			nameWidth = w
		}
	}
	for _, c := range inv.Containers {
		var dot string
		switch c.State {
		case model.ContainerRunning:
			dot = PrimaryStyle(m.params).Render("●")
		case model.ContainerExited:
			dot = ErrorStyle().Render("●")
		default:
			dot = StatusStyle(m.params, model.StatusDegraded).Render("●")
		}
		line := fmt.Sprintf("%s %s  %s", dot, padRight(c.Name, nameWidth), MutedStyle().Render(c.Status))
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
