package assistant

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	apperrors "libtrack/internal/platform/errors"
	"libtrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type AssistantPort interface {
	Ask(ctx context.Context, question string) (string, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// AskedMsg carries the model's answer back into the transcript.
type AskedMsg struct {
	Question string
	Answer   string
	Err      error
}

// ─── model ───────────────────────────────────────────────────────────────────

var suggestions = []string{
	"Who is here right now?",
	"Who has the most total time this week?",
	"Which level is busiest?",
}

type turn struct {
	role string // "you" or "assistant"
	text string
}

type Model struct {
	port AssistantPort

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	turns    []turn
	waiting  bool
	width    int
	height   int
	ready    bool
}

func New(port AssistantPort) Model {
	ti := textinput.New()
	ti.Placeholder = "ask about the sessions…"
	ti.CharLimit = 500
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{port: port, input: ti, spinner: sp}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Typing reports whether global key bindings should yield to the input.
func (m Model) Typing() bool { return m.input.Focused() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := max(m.height-8, 3)
		if !m.ready {
			m.viewport = viewport.New(m.width-4, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width - 4
			m.viewport.Height = vpHeight
		}
		m.refreshTranscript()

	case AskedMsg:
		m.waiting = false
		answer := msg.Answer
		if msg.Err != nil {
			if errors.Is(msg.Err, apperrors.ErrAssistantUnavailable) {
				answer = "Could not connect to the AI service. Please ensure the API key is configured correctly."
			} else {
				answer = "Sorry, I encountered an error. Please try again."
			}
		}
		m.turns = append(m.turns, turn{role: "assistant", text: answer})
		m.refreshTranscript()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			question := strings.TrimSpace(m.input.Value())
			if question == "" || m.waiting {
				return m, nil
			}
			return m.submit(question)
		case "1", "2", "3":
			// Number keys pick a suggestion while the transcript is empty.
			if len(m.turns) == 0 && m.input.Value() == "" && !m.waiting {
				idx := int(msg.String()[0] - '1')
				if idx < len(suggestions) {
					return m.submit(suggestions[idx])
				}
			}
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) submit(question string) (Model, tea.Cmd) {
	m.turns = append(m.turns, turn{role: "you", text: question})
	m.input.SetValue("")
	m.waiting = true
	m.refreshTranscript()
	m.viewport.GotoBottom()
	return m, tea.Batch(m.spinner.Tick, m.askCmd(question))
}

func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	styles := theme.Current
	var sb strings.Builder
	for i, t := range m.turns {
		if i > 0 {
			sb.WriteString("\n")
		}
		if t.role == "you" {
			sb.WriteString(styles.Hot.Render("you") + "  " + t.text + "\n")
		} else {
			sb.WriteString(styles.Title.Render("assistant") + "\n" + t.text + "\n")
		}
	}
	m.viewport.SetContent(sb.String())
}

func (m Model) View() string {
	styles := theme.Current

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Library Assistant") + "\n")

	if len(m.turns) == 0 && !m.waiting {
		sb.WriteString(styles.Muted.Render("Ask about who is signed in, totals, or the session log.") + "\n\n")
		for i, s := range suggestions {
			sb.WriteString(styles.Muted.Render("  "+string(rune('1'+i))+". "+s) + "\n")
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.viewport.View() + "\n")
	}

	if m.waiting {
		sb.WriteString(m.spinner.View() + " thinking…\n")
	}
	sb.WriteString("> " + m.input.View() + "\n")
	sb.WriteString(styles.Muted.Render("enter ask"))
	return sb.String()
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) askCmd(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := m.port.Ask(context.Background(), question)
		return AskedMsg{Question: question, Answer: answer, Err: err}
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
