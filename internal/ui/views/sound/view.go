package sound

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reportdto "dwell/internal/modules/report/dto"
	"dwell/internal/platform/timeutil"
	"dwell/internal/ui/theme"
)

// Model renders the day's audio-exposure sessions, flagging harmful ones.
type Model struct {
	sessions []reportdto.SoundEntry
	total    string
	loaded   bool
	body     viewport.Model
	width    int
	height   int
}

func New() Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)
	return Model{body: vp}
}

// SetSessions replaces the rendered day. Called by the root model after each
// load.
func (m *Model) SetSessions(sessions []reportdto.SoundEntry, totalText string) {
	m.sessions = sessions
	m.total = totalText
	m.loaded = true
	m.body.SetContent(m.render())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = m.width - 4
		m.body.Height = m.height - 2
		if m.body.Height < 1 {
			m.body.Height = 1
		}
	}
	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.loaded {
		return theme.Muted.Render("loading…")
	}
	return theme.Pane.Width(m.width - 2).Render(m.body.View())
}

func (m Model) render() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Sound exposure") + "  " + theme.Muted.Render(m.total) + "\n\n")
	if len(m.sessions) == 0 {
		sb.WriteString(theme.Muted.Render("no listening sessions"))
		return sb.String()
	}
	for _, s := range m.sessions {
		line := fmt.Sprintf("%s  %-24s %8s  %.0f dB",
			s.Start.Format("15:04"),
			s.DeviceName,
			timeutil.FormatCompact(timeutil.SecondsDuration(s.Seconds)),
			s.EstimatedMaxDB,
		)
		if s.WasHarmful {
			sb.WriteString(theme.Bad.Render(line+"  ⚠ harmful") + "\n")
		} else {
			sb.WriteString(line + "\n")
		}
	}
	return sb.String()
}
