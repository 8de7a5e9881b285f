package signin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	sessiondto "libtrack/internal/modules/session/dto"
	apperrors "libtrack/internal/platform/errors"
	"libtrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SignInPort interface {
	TimeIn(ctx context.Context, input sessiondto.TimeInInput) (sessiondto.TimeInOutput, error)
	Completed(ctx context.Context) ([]sessiondto.CompletedSessionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// SignedInMsg bubbles to the root model so it can refresh other tabs.
type SignedInMsg struct {
	Out sessiondto.TimeInOutput
	Err error
}

type historyLoadedMsg struct {
	sessions []sessiondto.CompletedSessionOutput
	err      error
}

// ─── model ───────────────────────────────────────────────────────────────────

var levels = []int{100, 200, 300, 400}

type Model struct {
	port SignInPort

	name     textinput.Model
	levelIdx int
	// history backs the level recall: a returning student's last level
	// is pre-selected as soon as their name matches.
	history  []sessiondto.CompletedSessionOutput
	recalled string
	status   string
	width    int
	height   int
}

func New(port SignInPort) Model {
	ti := textinput.New()
	ti.Placeholder = "student name"
	ti.CharLimit = 120
	ti.Focus()
	return Model{port: port, name: ti}
}

func (m Model) Init() tea.Cmd {
	return m.loadHistoryCmd()
}

// RefreshHistory reloads the recall index after log mutations elsewhere.
func (m Model) RefreshHistory() tea.Cmd {
	return m.loadHistoryCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.name.Width = min(m.width-8, 48)

	case historyLoadedMsg:
		if msg.err == nil {
			m.history = msg.sessions
		}

	case SignedInMsg:
		if msg.Err != nil {
			switch {
			case errors.Is(msg.Err, apperrors.ErrEmptyName):
				m.status = "enter a student name first"
			case errors.Is(msg.Err, apperrors.ErrStudentAlreadyActive):
				m.status = "that student is already signed in"
			default:
				m.status = "sign in failed: " + msg.Err.Error()
			}
			return m, nil
		}
		m.status = fmt.Sprintf("signed in %s at level %d", msg.Out.StudentName, msg.Out.Level)
		m.name.SetValue("")
		m.recalled = ""

	case tea.KeyMsg:
		switch msg.String() {
		case "left":
			m.levelIdx = (m.levelIdx + len(levels) - 1) % len(levels)
			return m, nil
		case "right":
			m.levelIdx = (m.levelIdx + 1) % len(levels)
			return m, nil
		case "enter":
			return m, m.signInCmd(m.name.Value(), levels[m.levelIdx])
		}
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	m.recallLevel()
	return m, cmd
}

// recallLevel pre-selects the level a returning student last used. The
// completed collection is most-recent-first, so the first match wins.
func (m *Model) recallLevel() {
	name := strings.TrimSpace(m.name.Value())
	if name == "" || strings.EqualFold(name, m.recalled) {
		if name == "" {
			m.recalled = ""
		}
		return
	}
	for _, s := range m.history {
		if strings.EqualFold(s.StudentName, name) {
			for i, level := range levels {
				if level == s.Level {
					m.levelIdx = i
					m.recalled = name
					return
				}
			}
			return
		}
	}
}

// Typing reports whether global key bindings should yield to the name
// field.
func (m Model) Typing() bool { return m.name.Focused() }

func (m Model) View() string {
	styles := theme.Current

	var levelParts []string
	for i, level := range levels {
		label := fmt.Sprintf(" %d ", level)
		if i == m.levelIdx {
			levelParts = append(levelParts, styles.Hot.Render("["+strings.TrimSpace(label)+"]"))
		} else {
			levelParts = append(levelParts, styles.Muted.Render(label))
		}
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Sign In") + "\n\n")
	sb.WriteString("Name:  " + m.name.View() + "\n")
	sb.WriteString("Level: " + strings.Join(levelParts, " ") + "\n\n")
	sb.WriteString(styles.Muted.Render("←/→ level · enter sign in") + "\n")
	if m.recalled != "" {
		sb.WriteString(styles.Muted.Render("recalled last level for "+m.recalled) + "\n")
	}
	if m.status != "" {
		sb.WriteString("\n" + m.status + "\n")
	}
	return styles.Pane.Width(max(m.width-4, 20)).Render(sb.String())
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		sessions, err := m.port.Completed(context.Background())
		return historyLoadedMsg{sessions: sessions, err: err}
	}
}

func (m Model) signInCmd(name string, level int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.TimeIn(context.Background(), sessiondto.TimeInInput{
			StudentName: name,
			Level:       level,
		})
		return SignedInMsg{Out: out, Err: err}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
