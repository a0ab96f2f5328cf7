package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goaldto "dwell/internal/modules/goal/dto"
	reportdto "dwell/internal/modules/report/dto"
	"dwell/internal/platform/timeutil"
	"dwell/internal/ui/components"
	"dwell/internal/ui/theme"
	appsview "dwell/internal/ui/views/apps"
	soundview "dwell/internal/ui/views/sound"
	todayview "dwell/internal/ui/views/today"
)

// refreshInterval is how often the dashboard re-reads the database while the
// viewed day is today. Historical days are static and load once.
const refreshInterval = 5 * time.Second

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.

type reportPort interface {
	Today(ctx context.Context) (reportdto.DayReport, error)
	ForDate(ctx context.Context, dayKey string) (reportdto.DayReport, error)
}

type goalPort interface {
	Status(ctx context.Context, current time.Duration) (goaldto.Status, error)
	SetGoal(ctx context.Context, minutes int) error
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabToday tabID = iota
	tabApps
	tabSound
	tabCount
)

var tabLabels = [tabCount]string{"Today", "Apps", "Sound"}

// ─── async messages ───────────────────────────────────────────────────────────

type dayLoadedMsg struct {
	day  reportdto.DayReport
	goal goaldto.Status
	err  error
}

type goalSavedMsg struct {
	minutes int
	err     error
}

type refreshTickMsg struct{}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	PrevDay key.Binding
	NextDay key.Binding
	Today   key.Binding
	Refresh key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		PrevDay: key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "previous/next day")),
		NextDay: key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "previous/next day")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "jump to today")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.PrevDay, k.Today},
		{k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the viewed day,
// the periodic refresh, the help overlay, and the command palette. Data access
// goes through the report and goal ports; rendering is delegated to sub-views.
type Model struct {
	report reportPort
	goal   goalPort

	todayView todayview.Model
	appsView  appsview.Model
	soundView soundview.Model

	// dayKey is empty while the dashboard follows the current day.
	dayKey    string
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(report reportPort, goal goalPort) Model {
	return Model{
		report:    report,
		goal:      goal,
		todayView: todayview.New(),
		appsView:  appsview.New(),
		soundView: soundview.New(),
		activeTab: tabToday,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "loading",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadDayCmd(), m.tickCmd())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 64))
		m.help.Width = m.width
		m.propagateSize()

	case dayLoadedMsg:
		if msg.err != nil {
			m.status = "load failed: " + msg.err.Error()
			break
		}
		m.status = "viewing " + msg.day.Date
		if m.dayKey == "" {
			m.status = "live"
		}
		m.todayView.SetData(msg.day, msg.goal)
		cmds = append(cmds, m.appsView.SetApps(msg.day.TopApps, msg.day.FocusSeconds))
		m.soundView.SetSessions(msg.day.SoundSessions, msg.day.SoundText)

	case goalSavedMsg:
		if msg.err != nil {
			m.status = "goal update failed: " + msg.err.Error()
			break
		}
		if msg.minutes <= 0 {
			m.status = "goal cleared"
		} else {
			m.status = "goal set to " + strconv.Itoa(msg.minutes) + "m"
		}
		cmds = append(cmds, m.loadDayCmd())

	case refreshTickMsg:
		cmds = append(cmds, m.tickCmd())
		if m.dayKey == "" {
			cmds = append(cmds, m.loadDayCmd())
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the apps list when its search filter is active.
		if m.activeTab == tabApps && m.appsView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			return m, m.palette.Open()
		case "[":
			m.shiftDay(-1)
			return m, m.loadDayCmd()
		case "]":
			m.shiftDay(1)
			return m, m.loadDayCmd()
		case "t":
			m.dayKey = ""
			return m, m.loadDayCmd()
		case "r":
			return m, m.loadDayCmd()
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabToday:
		m.todayView, tabCmd = m.todayView.Update(msg)
	case tabApps:
		m.appsView, tabCmd = m.appsView.Update(msg)
	case tabSound:
		m.soundView, tabCmd = m.soundView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// shiftDay moves the viewed day by delta days. Moving past today snaps back
// to following the live day.
func (m *Model) shiftDay(delta int) {
	base := time.Now()
	if m.dayKey != "" {
		if t, err := time.Parse("2006-01-02", m.dayKey); err == nil {
			base = t
		}
	}
	day := base.AddDate(0, 0, delta)
	if timeutil.DayKey(day) >= timeutil.DayKey(time.Now()) {
		m.dayKey = ""
		return
	}
	m.dayKey = timeutil.DayKey(day)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabToday:
		return m.todayView.View()
	case tabApps:
		return m.appsView.View()
	case tabSound:
		return m.soundView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "dwell  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  [/]:day  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "goal:set":
		if len(parts) < 2 {
			m.status = "usage: goal:set <minutes>"
			return m, nil
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil || minutes <= 0 {
			m.status = "minutes must be a positive integer"
			return m, nil
		}
		return m, m.saveGoalCmd(minutes)

	case "goal:clear":
		return m, m.saveGoalCmd(0)

	case "date":
		if len(parts) < 2 {
			m.status = "usage: date <2006-01-02>"
			return m, nil
		}
		if _, err := time.Parse("2006-01-02", parts[1]); err != nil {
			m.status = "invalid date: " + parts[1]
			return m, nil
		}
		m.dayKey = parts[1]
		return m, m.loadDayCmd()

	case "today":
		m.dayKey = ""
		return m, m.loadDayCmd()

	case "refresh":
		return m, m.loadDayCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.todayView, _ = m.todayView.Update(sz)
	m.appsView, _ = m.appsView.Update(sz)
	m.soundView, _ = m.soundView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

func (m Model) loadDayCmd() tea.Cmd {
	dayKey := m.dayKey
	return func() tea.Msg {
		ctx := context.Background()
		var (
			day reportdto.DayReport
			err error
		)
		if dayKey == "" {
			day, err = m.report.Today(ctx)
		} else {
			day, err = m.report.ForDate(ctx, dayKey)
		}
		if err != nil {
			return dayLoadedMsg{err: err}
		}
		goal, err := m.goal.Status(ctx, timeutil.SecondsDuration(day.ScreenSeconds))
		if err != nil {
			return dayLoadedMsg{err: err}
		}
		return dayLoadedMsg{day: day, goal: goal}
	}
}

func (m Model) saveGoalCmd(minutes int) tea.Cmd {
	return func() tea.Msg {
		err := m.goal.SetGoal(context.Background(), minutes)
		return goalSavedMsg{minutes: minutes, err: err}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
