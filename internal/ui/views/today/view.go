package today

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goaldto "dwell/internal/modules/goal/dto"
	reportdto "dwell/internal/modules/report/dto"
	"dwell/internal/platform/timeutil"
	"dwell/internal/ui/theme"
)

// Model renders the day summary pane: tracker totals, goal progress, and the
// list of screen segments.
type Model struct {
	day      reportdto.DayReport
	goal     goaldto.Status
	loaded   bool
	segments viewport.Model
	width    int
	height   int
}

func New() Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)
	return Model{segments: vp}
}

// SetData replaces the rendered day. Called by the root model after each load.
func (m *Model) SetData(day reportdto.DayReport, goal goaldto.Status) {
	m.day = day
	m.goal = goal
	m.loaded = true
	m.segments.SetContent(m.renderSegments())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.segments.SetContent(m.renderSegments())
	}
	var cmd tea.Cmd
	m.segments, cmd = m.segments.Update(msg)
	return m, cmd
}

func (m *Model) resize() {
	half := m.width / 2
	if half < 30 {
		half = m.width
	}
	m.segments.Width = m.width - half - 2
	m.segments.Height = m.height - 2
	if m.segments.Height < 1 {
		m.segments.Height = 1
	}
}

func (m Model) View() string {
	if !m.loaded {
		return theme.Muted.Render("loading…")
	}
	summary := theme.Pane.Width(m.width/2 - 2).Render(m.renderSummary())
	segs := theme.Pane.Width(m.segments.Width).Render(m.segments.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, summary, segs)
}

func (m Model) renderSummary() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.day.Date) + "\n\n")
	sb.WriteString(fmt.Sprintf("%s  %s\n", theme.Muted.Render("screen"), m.day.ScreenText))
	sb.WriteString(fmt.Sprintf("%s  %s\n", theme.Muted.Render("focus "), m.day.FocusText))
	sb.WriteString(fmt.Sprintf("%s  %s\n", theme.Muted.Render("sound "), m.day.SoundText))

	if m.goal.HasGoal {
		sb.WriteString("\n" + theme.Muted.Render("goal") + "\n")
		sb.WriteString(m.renderGoalBar() + "\n")
		sb.WriteString(m.goal.Text + "\n")
	} else {
		sb.WriteString("\n" + theme.Muted.Render("no screen time goal set") + "\n")
	}
	return sb.String()
}

func (m Model) renderGoalBar() string {
	barWidth := m.width/2 - 8
	if barWidth < 10 {
		barWidth = 10
	}
	ratio := m.goal.Progress
	if ratio > 1 {
		ratio = 1
	}
	filled := int(float64(barWidth) * ratio)

	style := theme.Good
	switch {
	case m.goal.OverGoal:
		style = theme.Bad
	case m.goal.Progress >= 0.8:
		style = theme.Hot
	}
	bar := style.Render(strings.Repeat("█", filled)) +
		theme.Muted.Render(strings.Repeat("░", barWidth-filled))
	return bar
}

func (m Model) renderSegments() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Screen segments") + "\n\n")
	if len(m.day.Segments) == 0 {
		sb.WriteString(theme.Muted.Render("none recorded"))
		return sb.String()
	}
	for _, seg := range m.day.Segments {
		sb.WriteString(fmt.Sprintf("%s  %s\n",
			seg.Start.Format("15:04"),
			timeutil.FormatCompact(timeutil.SecondsDuration(seg.Seconds)),
		))
	}
	return sb.String()
}
