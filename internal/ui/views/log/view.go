package log

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	statsdto "libtrack/internal/modules/stats/dto"
	"libtrack/internal/platform/duration"
	"libtrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type LogPort interface {
	Log(ctx context.Context, query statsdto.LogQuery) (statsdto.LogOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type loadedMsg struct {
	out statsdto.LogOutput
	err error
}

// ─── model ───────────────────────────────────────────────────────────────────

// level 0 means any.
var levelFilters = []int{0, 100, 200, 300, 400}

const dateLayout = "2006-01-02"

// Sessions at or past this length get flagged in the table.
const longSessionSeconds = 2 * 60 * 60

type filterField int

const (
	fieldNone filterField = iota
	fieldName
	fieldFrom
	fieldTo
)

type Model struct {
	port LogPort

	table    table.Model
	name     textinput.Model
	from     textinput.Model
	to       textinput.Model
	focused  filterField
	levelIdx int
	out      statsdto.LogOutput
	status   string
	width    int
	height   int
}

func New(port LogPort) Model {
	columns := []table.Column{
		{Title: "", Width: 2},
		{Title: "Student", Width: 22},
		{Title: "Level", Width: 6},
		{Title: "Time In", Width: 17},
		{Title: "Time Out", Width: 17},
		{Title: "Duration", Width: 10},
		{Title: "Notes", Width: 20},
	}
	t := table.New(table.WithColumns(columns), table.WithFocused(true))

	name := textinput.New()
	name.Placeholder = "name…"
	name.CharLimit = 120
	name.Width = 18

	from := textinput.New()
	from.Placeholder = dateLayout
	from.CharLimit = 10
	from.Width = 12

	to := textinput.New()
	to.Placeholder = dateLayout
	to.CharLimit = 10
	to.Width = 12

	return Model{port: port, table: t, name: name, from: from, to: to}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) query() statsdto.LogQuery {
	q := statsdto.LogQuery{
		Name:  m.name.Value(),
		Level: levelFilters[m.levelIdx],
	}
	if t, err := time.ParseInLocation(dateLayout, m.from.Value(), time.Local); err == nil {
		q.From = t
	}
	if t, err := time.ParseInLocation(dateLayout, m.to.Value(), time.Local); err == nil {
		q.To = t
	}
	return q
}

// Reload refetches the completed log with the current filters.
func (m Model) Reload() tea.Cmd {
	query := m.query()
	return func() tea.Msg {
		out, err := m.port.Log(context.Background(), query)
		return loadedMsg{out: out, err: err}
	}
}

// Entries returns the filtered entries in display order, for exports.
func (m Model) Entries() []statsdto.LogEntryOutput {
	return m.out.Entries
}

// SelectedSessionID returns the id under the cursor so the palette can
// target edits and deletes.
func (m Model) SelectedSessionID() (string, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.out.Entries) {
		return "", false
	}
	return m.out.Entries[idx].SessionID, true
}

// Filtering reports whether a filter input is capturing keys.
func (m Model) Filtering() bool { return m.focused != fieldNone }

func (m *Model) focusField(f filterField) tea.Cmd {
	m.name.Blur()
	m.from.Blur()
	m.to.Blur()
	m.focused = f
	switch f {
	case fieldName:
		return m.name.Focus()
	case fieldFrom:
		return m.from.Focus()
	case fieldTo:
		return m.to.Focus()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(m.width - 4)
		m.table.SetHeight(max(m.height-10, 3))

	case loadedMsg:
		if msg.err != nil {
			m.status = "load failed: " + msg.err.Error()
			return m, nil
		}
		m.out = msg.out
		m.refreshRows()

	case tea.KeyMsg:
		if m.focused != fieldNone {
			switch msg.String() {
			case "esc", "enter":
				cmd := m.focusField(fieldNone)
				return m, tea.Batch(cmd, m.Reload())
			case "tab":
				next := m.focused + 1
				if next > fieldTo {
					next = fieldName
				}
				return m, m.focusField(next)
			}
			var cmd tea.Cmd
			switch m.focused {
			case fieldName:
				m.name, cmd = m.name.Update(msg)
			case fieldFrom:
				m.from, cmd = m.from.Update(msg)
			case fieldTo:
				m.to, cmd = m.to.Update(msg)
			}
			return m, tea.Batch(cmd, m.Reload())
		}

		switch msg.String() {
		case "/":
			return m, m.focusField(fieldName)
		case "f":
			return m, m.focusField(fieldFrom)
		case "u":
			return m, m.focusField(fieldTo)
		case "v":
			m.levelIdx = (m.levelIdx + 1) % len(levelFilters)
			return m, m.Reload()
		case "c":
			m.name.SetValue("")
			m.from.SetValue("")
			m.to.SetValue("")
			m.levelIdx = 0
			return m, m.Reload()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) refreshRows() {
	rows := make([]table.Row, 0, len(m.out.Entries))
	for _, e := range m.out.Entries {
		marker := ""
		if e.Seconds >= longSessionSeconds {
			marker = "◆"
		}
		rows = append(rows, table.Row{
			marker,
			e.StudentName,
			fmt.Sprintf("%d", e.Level),
			e.TimeIn.Format("2006-01-02 15:04"),
			e.TimeOut.Format("2006-01-02 15:04"),
			duration.FormatClock(e.Seconds),
			e.Notes,
		})
	}
	m.table.SetRows(rows)
}

func (m Model) View() string {
	styles := theme.Current

	levelLabel := "Any"
	if levelFilters[m.levelIdx] > 0 {
		levelLabel = fmt.Sprintf("%d", levelFilters[m.levelIdx])
	}
	header := styles.Title.Render("Session Log") + "  " +
		styles.Badge.Render(fmt.Sprintf("%d entries · %s total",
			len(m.out.Entries), duration.Format(m.out.TotalSeconds)))

	filters := fmt.Sprintf("name %s  level %s  from %s  to %s",
		m.name.View(), styles.Hot.Render(levelLabel), m.from.View(), m.to.View())

	footer := styles.Muted.Render("/ name · v level · f from · u to · c clear") +
		"  " + styles.Highlight.Render("◆") + styles.Muted.Render(" 2h+ session")
	if m.status != "" {
		footer += "\n" + m.status
	}
	return header + "\n" + filters + "\n" + m.table.View() + "\n" + footer
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
