// Package tui provides a bubbletea dialogue front end for the bot.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/catbot/internal/bot"
	"github.com/cristianoliveira/catbot/internal/errors"
	"github.com/cristianoliveira/catbot/internal/format"
	"github.com/cristianoliveira/catbot/internal/logging"
	"github.com/cristianoliveira/catbot/internal/task"
	"github.com/cristianoliveira/catbot/internal/ui"
)

const (
	headerFooterLines     = 4
	defaultViewportWidth  = 80
	defaultViewportHeight = 20
	statusClearDuration   = 5 * time.Second
)

// entry is one line of the dialogue.
type entry struct {
	text    string
	msgType errors.MessageType
	user    bool
}

// clearStatusMsg clears the status line if no newer status replaced it.
type clearStatusMsg struct {
	id int
}

// Model is the bubbletea model. Commands run synchronously inside Update, so
// the bot never sees two lines at once.
type Model struct {
	bot       *bot.Bot
	assistant *ui.Assistant
	handler   *errors.TUIHandler
	input     textinput.Model
	viewport  viewport.Model
	entries   []entry
	width     int
	height    int
	status    string
	statusID  int
}

// NewModel wires a bot over list and greets the user.
func NewModel(list *task.List, saver bot.Saver, logger logging.Logger, f *format.Formatter) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "todo buy milk"
	input.CharLimit = 512
	input.Focus()

	m := &Model{
		input:    input,
		viewport: viewport.New(defaultViewportWidth, defaultViewportHeight),
		width:    defaultViewportWidth,
		height:   defaultViewportHeight + headerFooterLines,
	}
	m.handler = errors.NewTUIHandler(func(msg errors.Message) {
		m.status = msg.Text
	})
	m.assistant = ui.NewAssistant(m.handler, f)
	m.bot = bot.New(list, saver, logger)
	m.bot.Initialize(m.assistant)

	m.assistant.Greet()
	m.collect()
	m.refresh()
	return m
}

// Bot returns the bot driven by this model.
func (m *Model) Bot() *bot.Bot {
	return m.bot
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.refresh()
		return m, nil
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.assistant.Cleanup()
		m.collect()
		m.refresh()
		return m, tea.Quit
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the typed line through the bot.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	m.entries = append(m.entries, entry{text: line, user: true})
	m.status = ""
	m.bot.RunLine(line)
	m.collect()
	m.refresh()

	if !m.assistant.IsStillOpen() {
		return m, tea.Quit
	}
	if m.status == "" {
		return m, nil
	}
	m.statusID++
	return m, clearStatusAfter(m.statusID, statusClearDuration)
}

func clearStatusAfter(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

// collect moves the assistant's pending messages into the dialogue.
func (m *Model) collect() {
	for _, msg := range m.handler.Drain() {
		m.entries = append(m.entries, entry{text: msg.Text, msgType: msg.Type})
	}
}

func (m *Model) resize() {
	m.viewport.Width = m.width
	m.viewport.Height = max(1, m.height-headerFooterLines)
	m.input.Width = max(1, m.width-len(m.input.Prompt)-1)
}

func (m *Model) refresh() {
	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		lines = append(lines, renderEntry(e, m.width))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

func (m *Model) View() string {
	var s strings.Builder
	s.WriteString(renderHeader(m.width))
	s.WriteString("\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")
	s.WriteString(renderStatus(m.status, m.width))
	s.WriteString("\n")
	s.WriteString(m.input.View())
	return s.String()
}
