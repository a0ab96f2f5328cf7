package apps

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	reportdto "dwell/internal/modules/report/dto"
	"dwell/internal/ui/theme"
)

type appItem struct {
	entry reportdto.AppEntry
	share float64 // fraction of the day's focus time
}

func (i appItem) Title() string { return i.entry.AppName }
func (i appItem) Description() string {
	return fmt.Sprintf("%s  %.0f%%", i.entry.Text, i.share*100)
}
func (i appItem) FilterValue() string { return i.entry.AppName }

// Model renders the per-application focus ranking for the selected day.
type Model struct {
	list   list.Model
	width  int
	height int
}

func New() Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Apps"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return Model{list: l}
}

// SetApps replaces the ranking. focusSeconds is the day's total focus time,
// so shares stay honest when the ranking is truncated to the top apps.
func (m *Model) SetApps(entries []reportdto.AppEntry, focusSeconds int) tea.Cmd {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		share := 0.0
		if focusSeconds > 0 {
			share = float64(e.Seconds) / float64(focusSeconds)
		}
		items[i] = appItem{entry: e, share: share}
	}
	return m.list.SetItems(items)
}

// Filtering reports whether the list filter is capturing input.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width-2, m.height-2)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return theme.Pane.Width(m.width - 2).Render(m.list.View())
}
