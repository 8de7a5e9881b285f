package active

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	sessiondto "libtrack/internal/modules/session/dto"
	statsdto "libtrack/internal/modules/stats/dto"
	"libtrack/internal/platform/duration"
	"libtrack/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type ActivePort interface {
	ActiveSorted(ctx context.Context, query statsdto.ActiveQuery) ([]statsdto.ActiveEntryOutput, error)
	TimeOut(ctx context.Context, sessionID string) (sessiondto.TimeOutOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type loadedMsg struct {
	entries []statsdto.ActiveEntryOutput
	err     error
}

// TimedOutMsg bubbles to the root model so other tabs can refresh.
type TimedOutMsg struct {
	Out sessiondto.TimeOutOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port ActivePort

	table   table.Model
	search  textinput.Model
	entries []statsdto.ActiveEntryOutput
	sortKey string
	desc    bool
	// now drives the elapsed column; the root model ticks it once a
	// second while this tab is visible.
	now    time.Time
	status string
	width  int
	height int
}

func New(port ActivePort) Model {
	columns := []table.Column{
		{Title: "Student", Width: 28},
		{Title: "Level", Width: 6},
		{Title: "Time In", Width: 10},
		{Title: "Elapsed", Width: 10},
	}
	t := table.New(table.WithColumns(columns), table.WithFocused(true))

	search := textinput.New()
	search.Placeholder = "search students…"
	search.CharLimit = 120

	return Model{
		port:    port,
		table:   t,
		search:  search,
		sortKey: "timein",
		now:     time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload refetches the active sessions with the current search and sort.
func (m Model) Reload() tea.Cmd {
	query := statsdto.ActiveQuery{
		Search:     m.search.Value(),
		SortKey:    m.sortKey,
		Descending: m.desc,
	}
	return func() tea.Msg {
		entries, err := m.port.ActiveSorted(context.Background(), query)
		return loadedMsg{entries: entries, err: err}
	}
}

// SetNow refreshes the elapsed column without touching the store.
func (m *Model) SetNow(now time.Time) {
	m.now = now
	m.refreshRows()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(m.width - 4)
		m.table.SetHeight(max(m.height-8, 3))

	case loadedMsg:
		if msg.err != nil {
			m.status = "load failed: " + msg.err.Error()
			return m, nil
		}
		m.entries = msg.entries
		m.refreshRows()

	case TimedOutMsg:
		if msg.Err != nil {
			m.status = "sign out failed: " + msg.Err.Error()
			return m, nil
		}
		if msg.Out.Completed {
			m.status = "signed out"
		} else {
			m.status = "session was already closed"
		}
		return m, m.Reload()

	case tea.KeyMsg:
		if m.search.Focused() {
			switch msg.String() {
			case "esc", "enter":
				m.search.Blur()
				return m, m.Reload()
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, tea.Batch(cmd, m.Reload())
		}

		switch msg.String() {
		case "/":
			return m, m.search.Focus()
		case "n":
			m.sortKey = "name"
			return m, m.Reload()
		case "i":
			m.sortKey = "timein"
			return m, m.Reload()
		case "r":
			m.desc = !m.desc
			return m, m.Reload()
		case "t":
			if id, ok := m.selectedID(); ok {
				return m, m.timeOutCmd(id)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) refreshRows() {
	rows := make([]table.Row, 0, len(m.entries))
	for _, e := range m.entries {
		elapsed := int(m.now.Sub(e.TimeIn).Seconds())
		rows = append(rows, table.Row{
			e.StudentName,
			fmt.Sprintf("%d", e.Level),
			e.TimeIn.Format("15:04:05"),
			duration.FormatClock(elapsed),
		})
	}
	m.table.SetRows(rows)
}

func (m Model) selectedID() (string, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return "", false
	}
	return m.entries[idx].SessionID, true
}

// Filtering reports whether the search box is capturing input.
func (m Model) Filtering() bool { return m.search.Focused() }

func (m Model) View() string {
	styles := theme.Current

	var sb strings.Builder
	header := styles.Title.Render("Currently Signed In") + "  " +
		styles.Badge.Render(fmt.Sprintf("%d active", len(m.entries)))
	sb.WriteString(header + "\n")
	if m.search.Focused() || m.search.Value() != "" {
		sb.WriteString("search: " + m.search.View() + "\n")
	}
	sb.WriteString(m.table.View() + "\n")
	sb.WriteString(styles.Muted.Render("t sign out · n/i sort · r reverse · / search"))
	if m.status != "" {
		sb.WriteString("\n" + m.status)
	}
	return sb.String()
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) timeOutCmd(sessionID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.TimeOut(context.Background(), sessionID)
		return TimedOutMsg{Out: out, Err: err}
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
