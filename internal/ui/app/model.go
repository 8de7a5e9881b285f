package app

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	exportdomain "libtrack/internal/modules/export/domain"
	exportin "libtrack/internal/modules/export/port/in"
	sessiondto "libtrack/internal/modules/session/dto"
	sessionin "libtrack/internal/modules/session/port/in"
	statsdto "libtrack/internal/modules/stats/dto"
	statsin "libtrack/internal/modules/stats/port/in"
	"libtrack/internal/platform/config"
	"libtrack/internal/ui/components"
	"libtrack/internal/ui/theme"
	"libtrack/internal/ui/views/active"
	"libtrack/internal/ui/views/assistant"
	"libtrack/internal/ui/views/leaderboard"
	"libtrack/internal/ui/views/log"
	"libtrack/internal/ui/views/signin"
)

// ─── ports ───────────────────────────────────────────────────────────────────

// AssistantPort mirrors the assistant usecase; a nil implementation is
// replaced by a stub that reports the missing configuration.
type AssistantPort interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Ports collects everything the TUI needs from the application layer.
type Ports struct {
	Session   sessionin.Usecase
	Stats     statsin.Usecase
	Export    exportin.Usecase
	Assistant AssistantPort
	Config    config.Config
}

// ─── tabs ────────────────────────────────────────────────────────────────────

type tabID int

const (
	tabSignIn tabID = iota
	tabActive
	tabLeaderboard
	tabLog
	tabAssistant
)

var tabLabels = []string{"Sign In", "Active", "Leaderboard", "Log", "Assistant"}

// ─── messages ────────────────────────────────────────────────────────────────

type tickMsg time.Time

type statusMsg struct {
	text  string
	isErr bool
}

// ─── key map ─────────────────────────────────────────────────────────────────

type keyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Palette key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Palette: key.NewBinding(
			key.WithKeys("ctrl+p", ":"),
			key.WithHelp(":", "palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Palette, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab},
		{k.Palette, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	ports Ports

	tab         tabID
	signIn      signin.Model
	active      active.Model
	leaderboard leaderboard.Model
	log         log.Model
	assistant   assistant.Model

	palette components.Palette
	help    help.Model
	keys    keyMap

	status   string
	statErr  bool
	width    int
	height   int
	quitting bool
}

func New(ports Ports) Model {
	return Model{
		ports:       ports,
		signIn:      signin.New(ports.Session),
		active:      active.New(activeBridge{ports}),
		leaderboard: leaderboard.New(ports.Stats),
		log:         log.New(ports.Stats),
		assistant:   assistant.New(assistantBridge{ports}),
		palette:     components.NewPalette(),
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.signIn.Init(),
		m.active.Init(),
		m.leaderboard.Init(),
		m.log.Init(),
		m.assistant.Init(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// subViewFiltering reports whether the visible tab is capturing raw text
// input, in which case global single-key bindings must stay out of the way.
func (m Model) subViewFiltering() bool {
	switch m.tab {
	case tabSignIn:
		return m.signIn.Typing()
	case tabActive:
		return m.active.Filtering()
	case tabLeaderboard:
		return m.leaderboard.Filtering()
	case tabLog:
		return m.log.Filtering()
	case tabAssistant:
		return m.assistant.Typing()
	}
	return false
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(m.width)
		m.help.Width = m.width
		return m.propagateSize(msg)

	case tickMsg:
		if m.tab == tabActive {
			m.active.SetNow(time.Time(msg))
		}
		return m, tickCmd()

	case statusMsg:
		m.status = msg.text
		m.statErr = msg.isErr
		return m, nil

	case components.PaletteCancelMsg:
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case signin.SignedInMsg:
		var cmd tea.Cmd
		m.signIn, cmd = m.signIn.Update(msg)
		if msg.Err == nil {
			return m, tea.Batch(cmd, m.active.Reload(), m.leaderboard.Reload())
		}
		return m, cmd

	case active.TimedOutMsg:
		var cmd tea.Cmd
		m.active, cmd = m.active.Update(msg)
		if msg.Err == nil && msg.Out.Completed {
			return m, tea.Batch(cmd,
				m.leaderboard.Reload(),
				m.log.Reload(),
				m.signIn.RefreshHistory(),
			)
		}
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

		if m.palette.Visible() {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}

		if !m.subViewFiltering() {
			switch {
			case key.Matches(msg, m.keys.NextTab):
				m.tab = (m.tab + 1) % tabID(len(tabLabels))
				return m, m.refreshVisible()
			case key.Matches(msg, m.keys.PrevTab):
				m.tab = (m.tab + tabID(len(tabLabels)) - 1) % tabID(len(tabLabels))
				return m, m.refreshVisible()
			case key.Matches(msg, m.keys.Palette):
				return m, m.palette.Open()
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			}
		}
		return m.routeToTab(msg)
	}

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	// Async results carry unexported per-view message types, so every
	// view gets a look and ignores what it does not own.
	return m.routeToAll(msg)
}

func (m Model) propagateSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	// The tab bar and status bar take three rows between them.
	inner := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 3}
	return m.routeToAll(inner)
}

func (m Model) routeToTab(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.tab {
	case tabSignIn:
		m.signIn, cmd = m.signIn.Update(msg)
	case tabActive:
		m.active, cmd = m.active.Update(msg)
	case tabLeaderboard:
		m.leaderboard, cmd = m.leaderboard.Update(msg)
	case tabLog:
		m.log, cmd = m.log.Update(msg)
	case tabAssistant:
		m.assistant, cmd = m.assistant.Update(msg)
	}
	return m, cmd
}

func (m Model) routeToAll(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.signIn, cmd = m.signIn.Update(msg)
	cmds = append(cmds, cmd)
	m.active, cmd = m.active.Update(msg)
	cmds = append(cmds, cmd)
	m.leaderboard, cmd = m.leaderboard.Update(msg)
	cmds = append(cmds, cmd)
	m.log, cmd = m.log.Update(msg)
	cmds = append(cmds, cmd)
	m.assistant, cmd = m.assistant.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// refreshVisible reloads the tab that just became visible so it never
// shows data staled by mutations on another tab.
func (m Model) refreshVisible() tea.Cmd {
	switch m.tab {
	case tabActive:
		return m.active.Reload()
	case tabLeaderboard:
		return m.leaderboard.Reload()
	case tabLog:
		return m.log.Reload()
	case tabSignIn:
		return m.signIn.RefreshHistory()
	}
	return nil
}

// ─── palette commands ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if input == "" {
		return m, nil
	}
	fields := strings.Fields(input)
	verb := fields[0]
	args := fields[1:]

	switch verb {
	case "session:in":
		if len(args) < 2 {
			return m, statusCmd("usage: session:in <name> <level>", true)
		}
		level, err := strconv.Atoi(args[len(args)-1])
		if err != nil {
			return m, statusCmd("level must be a number", true)
		}
		name := strings.Join(args[:len(args)-1], " ")
		return m, m.paletteTimeIn(name, level)

	case "session:out":
		if len(args) != 1 {
			return m, statusCmd("usage: session:out <id>", true)
		}
		return m, m.paletteTimeOut(args[0])

	case "log:add":
		entry, err := parseCompletedArgs(args)
		if err != nil {
			return m, statusCmd(err.Error(), true)
		}
		return m, m.paletteLogAdd(entry)

	case "log:edit":
		if len(args) < 1 {
			return m, statusCmd("usage: log:edit <id> <name> <level> <in> <out> [notes]", true)
		}
		id := args[0]
		entry, err := parseCompletedArgs(args[1:])
		if err != nil {
			return m, statusCmd(err.Error(), true)
		}
		return m, m.paletteLogEdit(id, entry)

	case "log:delete":
		if len(args) != 1 {
			return m, statusCmd("usage: log:delete <id>", true)
		}
		return m, m.paletteLogDelete(args[0])

	case "export:csv", "export:pdf", "export:png":
		if len(args) != 2 {
			return m, statusCmd("usage: "+verb+" <log|leaderboard> <path>", true)
		}
		return m, m.paletteExport(verb, args[0], args[1])

	case "theme:toggle":
		name := theme.Toggle()
		cfg := m.ports.Config
		cfg.Theme = name
		if err := cfg.Save(); err != nil {
			return m, statusCmd("theme switched but not saved: "+err.Error(), true)
		}
		m.ports.Config = cfg
		return m, statusCmd("theme: "+name, false)
	}

	return m, statusCmd("unknown command: "+verb, true)
}

// parseCompletedArgs decodes "<name> <level> <in HH:MM> <out HH:MM>
// [notes…]". Times are taken to be today.
func parseCompletedArgs(args []string) (sessiondto.CompletedInput, error) {
	if len(args) < 4 {
		return sessiondto.CompletedInput{}, fmt.Errorf("usage: <name> <level> <in HH:MM> <out HH:MM> [notes]")
	}
	// Name may contain spaces; level is the first numeric token followed
	// by two clock tokens.
	levelIdx := -1
	for i := 1; i < len(args)-2; i++ {
		if _, err := strconv.Atoi(args[i]); err == nil {
			if _, err := parseClock(args[i+1]); err == nil {
				if _, err := parseClock(args[i+2]); err == nil {
					levelIdx = i
					break
				}
			}
		}
	}
	if levelIdx < 1 {
		return sessiondto.CompletedInput{}, fmt.Errorf("could not find <level> <in HH:MM> <out HH:MM> in arguments")
	}
	level, _ := strconv.Atoi(args[levelIdx])
	timeIn, _ := parseClock(args[levelIdx+1])
	timeOut, _ := parseClock(args[levelIdx+2])
	return sessiondto.CompletedInput{
		StudentName: strings.Join(args[:levelIdx], " "),
		Level:       level,
		TimeIn:      timeIn,
		TimeOut:     timeOut,
		Notes:       strings.Join(args[levelIdx+3:], " "),
	}, nil
}

func parseClock(s string) (time.Time, error) {
	t, err := time.ParseInLocation("15:04", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad time %q, want HH:MM", s)
	}
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}

func statusCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isErr: isErr} }
}

// ─── palette async commands ──────────────────────────────────────────────────

func (m Model) paletteTimeIn(name string, level int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Session.TimeIn(context.Background(), sessiondto.TimeInInput{
			StudentName: name,
			Level:       level,
		})
		if err != nil {
			return statusMsg{text: "sign in failed: " + err.Error(), isErr: true}
		}
		return signin.SignedInMsg{Out: out}
	}
}

func (m Model) paletteTimeOut(sessionID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Session.TimeOut(context.Background(), sessionID)
		return active.TimedOutMsg{Out: out, Err: err}
	}
}

func (m Model) paletteLogAdd(input sessiondto.CompletedInput) tea.Cmd {
	refresh := tea.Batch(m.log.Reload(), m.leaderboard.Reload(), m.signIn.RefreshHistory())
	return tea.Sequence(
		func() tea.Msg {
			if _, err := m.ports.Session.AddCompleted(context.Background(), input); err != nil {
				return statusMsg{text: "add failed: " + err.Error(), isErr: true}
			}
			return statusMsg{text: "log entry added"}
		},
		refresh,
	)
}

func (m Model) paletteLogEdit(id string, input sessiondto.CompletedInput) tea.Cmd {
	refresh := tea.Batch(m.log.Reload(), m.leaderboard.Reload(), m.signIn.RefreshHistory())
	return tea.Sequence(
		func() tea.Msg {
			if err := m.ports.Session.UpdateCompleted(context.Background(), id, input); err != nil {
				return statusMsg{text: "edit failed: " + err.Error(), isErr: true}
			}
			return statusMsg{text: "log entry updated"}
		},
		refresh,
	)
}

func (m Model) paletteLogDelete(id string) tea.Cmd {
	refresh := tea.Batch(m.log.Reload(), m.leaderboard.Reload(), m.signIn.RefreshHistory())
	return tea.Sequence(
		func() tea.Msg {
			if err := m.ports.Session.DeleteCompleted(context.Background(), id); err != nil {
				return statusMsg{text: "delete failed: " + err.Error(), isErr: true}
			}
			return statusMsg{text: "log entry deleted"}
		},
		refresh,
	)
}

func (m Model) paletteExport(verb, view, path string) tea.Cmd {
	dark := theme.Current.Name == config.ThemeDark

	switch view {
	case "log":
		rows := logRows(m.log.Entries())
		return func() tea.Msg {
			var err error
			switch verb {
			case "export:csv":
				var csv string
				csv, err = m.ports.Export.LogCSV(context.Background(), rows)
				if err == nil {
					err = os.WriteFile(path, []byte(csv), 0o644)
				}
			case "export:pdf":
				err = m.ports.Export.LogPDF(context.Background(), rows, path)
			case "export:png":
				err = m.ports.Export.LogPNG(context.Background(), rows, dark, path)
			}
			if err != nil {
				return statusMsg{text: "export failed: " + err.Error(), isErr: true}
			}
			return statusMsg{text: "exported " + path}
		}

	case "leaderboard":
		rows := leaderboardRows(m.leaderboard.SelectedRows())
		return func() tea.Msg {
			var err error
			switch verb {
			case "export:csv":
				var csv string
				csv, err = m.ports.Export.LeaderboardCSV(context.Background(), rows)
				if err == nil {
					err = os.WriteFile(path, []byte(csv), 0o644)
				}
			case "export:pdf":
				err = m.ports.Export.LeaderboardPDF(context.Background(), rows, path)
			case "export:png":
				err = m.ports.Export.LeaderboardPNG(context.Background(), rows, dark, path)
			}
			if err != nil {
				return statusMsg{text: "export failed: " + err.Error(), isErr: true}
			}
			return statusMsg{text: "exported " + path}
		}
	}

	return statusCmd("unknown export view "+view+", want log or leaderboard", true)
}

func logRows(entries []statsdto.LogEntryOutput) []exportdomain.LogRow {
	rows := make([]exportdomain.LogRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, exportdomain.LogRow{
			StudentName: e.StudentName,
			Level:       e.Level,
			TimeIn:      e.TimeIn,
			TimeOut:     e.TimeOut,
			Seconds:     e.Seconds,
			Notes:       e.Notes,
		})
	}
	return rows
}

func leaderboardRows(totals []statsdto.StudentTotalOutput) []exportdomain.LeaderboardRow {
	rows := make([]exportdomain.LeaderboardRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, exportdomain.LeaderboardRow{
			StudentName:    t.StudentName,
			Level:          t.Level,
			SessionCount:   t.SessionCount,
			AverageSeconds: t.AverageSeconds,
			TotalSeconds:   t.TotalSeconds,
		})
	}
	return rows
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	styles := theme.Current

	var body string
	switch m.tab {
	case tabSignIn:
		body = m.signIn.View()
	case tabActive:
		body = m.active.View()
	case tabLeaderboard:
		body = m.leaderboard.View()
	case tabLog:
		body = m.log.View()
	case tabAssistant:
		body = m.assistant.View()
	}

	if m.palette.Visible() {
		body = m.palette.View() + "\n" + body
	}

	return m.renderTabBar() + "\n" + body + "\n" + m.renderStatusBar(styles)
}

func (m Model) renderTabBar() string {
	styles := theme.Current
	parts := make([]string, 0, len(tabLabels)+1)
	parts = append(parts, styles.Title.Render(" libtrack "))
	for i, label := range tabLabels {
		if tabID(i) == m.tab {
			parts = append(parts, styles.Hot.Render("["+label+"]"))
		} else {
			parts = append(parts, styles.Muted.Render(" "+label+" "))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, " "))
}

func (m Model) renderStatusBar(styles theme.Styles) string {
	left := m.help.View(m.keys)
	if m.status != "" {
		msg := m.status
		if m.statErr {
			msg = styles.Danger.Render(msg)
		} else {
			msg = styles.Hot.Render(msg)
		}
		return msg + "  " + left
	}
	return left
}

// ─── port bridges ────────────────────────────────────────────────────────────

// activeBridge narrows the session and stats usecases to what the active
// tab needs.
type activeBridge struct{ ports Ports }

func (b activeBridge) ActiveSorted(ctx context.Context, query statsdto.ActiveQuery) ([]statsdto.ActiveEntryOutput, error) {
	return b.ports.Stats.ActiveSorted(ctx, query)
}

func (b activeBridge) TimeOut(ctx context.Context, sessionID string) (sessiondto.TimeOutOutput, error) {
	return b.ports.Session.TimeOut(ctx, sessionID)
}

// assistantBridge keeps the assistant tab usable when no generator is
// configured.
type assistantBridge struct{ ports Ports }

func (b assistantBridge) Ask(ctx context.Context, question string) (string, error) {
	return b.ports.Assistant.Ask(ctx, question)
}
