package leaderboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "libtrack/internal/modules/stats/dto"
	"libtrack/internal/platform/duration"
	"libtrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type LeaderboardPort interface {
	Leaderboard(ctx context.Context, query statsdto.LeaderboardQuery) (statsdto.LeaderboardOutput, error)
	BarChart(ctx context.Context, query statsdto.LeaderboardQuery) (statsdto.BarChartOutput, error)
	PieByLevel(ctx context.Context) (statsdto.PieOutput, error)
	PieByStudent(ctx context.Context) (statsdto.PieOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type loadedMsg struct {
	board statsdto.LeaderboardOutput
	err   error
}

type chartLoadedMsg struct {
	chart statsdto.BarChartOutput
	err   error
}

type pieLoadedMsg struct {
	pie statsdto.PieOutput
	err error
}

// ─── model ───────────────────────────────────────────────────────────────────

type viewMode int

const (
	modeTable viewMode = iota
	modeBar
	modePie
)

// limit 0 means all.
var limits = []int{5, 10, 20, 0}

var sortKeys = []string{"total", "average", "count", "name", "level"}

type Model struct {
	port LeaderboardPort

	table     table.Model
	search    textinput.Model
	board     statsdto.LeaderboardOutput
	chart     statsdto.BarChartOutput
	pie       statsdto.PieOutput
	pieErr    string
	mode      viewMode
	pieByName bool
	limitIdx  int
	sortIdx   int
	desc      bool
	status    string
	width     int
	height    int
}

func New(port LeaderboardPort) Model {
	columns := []table.Column{
		{Title: "Student", Width: 26},
		{Title: "Level", Width: 6},
		{Title: "Sessions", Width: 9},
		{Title: "Average", Width: 10},
		{Title: "Total", Width: 10},
	}
	t := table.New(table.WithColumns(columns), table.WithFocused(true))

	search := textinput.New()
	search.Placeholder = "search students…"
	search.CharLimit = 120

	return Model{port: port, table: t, search: search, desc: true}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) query() statsdto.LeaderboardQuery {
	return statsdto.LeaderboardQuery{
		Search:     m.search.Value(),
		SortKey:    sortKeys[m.sortIdx],
		Descending: m.desc,
		Limit:      limits[m.limitIdx],
	}
}

// Reload refetches whichever representation is on screen.
func (m Model) Reload() tea.Cmd {
	query := m.query()
	switch m.mode {
	case modeBar:
		return func() tea.Msg {
			chart, err := m.port.BarChart(context.Background(), query)
			return chartLoadedMsg{chart: chart, err: err}
		}
	case modePie:
		byName := m.pieByName
		return func() tea.Msg {
			var (
				pie statsdto.PieOutput
				err error
			)
			if byName {
				pie, err = m.port.PieByStudent(context.Background())
			} else {
				pie, err = m.port.PieByLevel(context.Background())
			}
			return pieLoadedMsg{pie: pie, err: err}
		}
	default:
		return func() tea.Msg {
			board, err := m.port.Leaderboard(context.Background(), query)
			return loadedMsg{board: board, err: err}
		}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(m.width - 4)
		m.table.SetHeight(max(m.height-9, 3))

	case loadedMsg:
		if msg.err != nil {
			m.status = "load failed: " + msg.err.Error()
			return m, nil
		}
		m.board = msg.board
		rows := make([]table.Row, 0, len(m.board.Totals))
		for _, t := range m.board.Totals {
			rows = append(rows, table.Row{
				t.StudentName,
				fmt.Sprintf("%d", t.Level),
				fmt.Sprintf("%d", t.SessionCount),
				duration.Format(int(t.AverageSeconds)),
				duration.Format(t.TotalSeconds),
			})
		}
		m.table.SetRows(rows)

	case chartLoadedMsg:
		if msg.err != nil {
			m.status = "chart failed: " + msg.err.Error()
			return m, nil
		}
		m.chart = msg.chart

	case pieLoadedMsg:
		if msg.err != nil {
			m.pieErr = "Not enough data to display pie chart."
			return m, nil
		}
		m.pieErr = ""
		m.pie = msg.pie

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
			if m.mode != modePie {
				return m, m.search.Focus()
			}
		case "v":
			m.mode = (m.mode + 1) % 3
			return m, m.Reload()
		case "p":
			if m.mode == modePie {
				m.pieByName = !m.pieByName
				return m, m.Reload()
			}
		case "l":
			m.limitIdx = (m.limitIdx + 1) % len(limits)
			return m, m.Reload()
		case "s":
			m.sortIdx = (m.sortIdx + 1) % len(sortKeys)
			return m, m.Reload()
		case "r":
			m.desc = !m.desc
			return m, m.Reload()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Filtering reports whether the search box is capturing input.
func (m Model) Filtering() bool { return m.search.Focused() }

// SelectedRows returns the rows currently backing the table view, in
// display order, for exports.
func (m Model) SelectedRows() []statsdto.StudentTotalOutput {
	return m.board.Totals
}

func (m Model) View() string {
	styles := theme.Current

	limitLabel := "All"
	if limits[m.limitIdx] > 0 {
		limitLabel = fmt.Sprintf("Top %d", limits[m.limitIdx])
	}
	header := styles.Title.Render("Student Leaderboard") + "  " +
		styles.Badge.Render(fmt.Sprintf("%d Total Sessions", m.board.TotalSessions)) + "  " +
		styles.Muted.Render(fmt.Sprintf("%s · sort %s", limitLabel, sortKeys[m.sortIdx]))

	var body string
	switch m.mode {
	case modeBar:
		body = m.renderBars()
	case modePie:
		body = m.renderPie()
	default:
		if m.search.Focused() || m.search.Value() != "" {
			header += "\nsearch: " + m.search.View()
		}
		body = m.table.View()
	}

	footer := styles.Muted.Render("v view · s sort · r reverse · l limit · p pie metric · / search")
	if m.status != "" {
		footer += "\n" + m.status
	}
	return header + "\n" + body + "\n" + footer
}

// renderBars draws the bar layout sideways: one row per bar, width
// proportional to value against the axis maximum.
func (m Model) renderBars() string {
	styles := theme.Current
	if len(m.chart.Bars) == 0 {
		return styles.Muted.Render("no data")
	}

	maxWidth := max(m.width-40, 10)
	var sb strings.Builder
	sb.WriteString(styles.Muted.Render(fmt.Sprintf("axis max %s", duration.Format(m.chart.AxisMax))) + "\n")
	for _, bar := range m.chart.Bars {
		w := int(float64(bar.Value) / float64(m.chart.AxisMax) * float64(maxWidth))
		if w < 1 && bar.Value > 0 {
			w = 1
		}
		label := fmt.Sprintf("%-24s", truncate(bar.Label, 24))
		barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(bar.Color))
		sb.WriteString(label + " " + barStyle.Render(strings.Repeat("█", w)) +
			" " + styles.Muted.Render(duration.Format(bar.Value)) + "\n")
	}
	return sb.String()
}

// renderPie lists slices as a legend with swatches and percentages.
func (m Model) renderPie() string {
	styles := theme.Current
	if m.pieErr != "" {
		return styles.Muted.Render(m.pieErr)
	}
	if len(m.pie.Slices) == 0 {
		return styles.Muted.Render("no data")
	}

	metric := "By Level"
	if m.pieByName {
		metric = "By Student"
	}
	var sb strings.Builder
	sb.WriteString(styles.Muted.Render(metric) + "\n")
	for _, slice := range m.pie.Slices {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(slice.Color)).Render("■")
		value := fmt.Sprintf("%g", slice.Value)
		if m.pieByName {
			value = duration.Format(int(slice.Value))
		}
		sb.WriteString(fmt.Sprintf("%s %-22s %10s  %5.1f%%\n",
			swatch, truncate(slice.Label, 22), value, slice.Percent))
	}
	total := fmt.Sprintf("%g", m.pie.Total)
	if m.pieByName {
		total = duration.Format(int(m.pie.Total))
	}
	sb.WriteString(styles.Hot.Render("Total: "+total) + "\n")
	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-2] + "…"
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
