// Package ui implements the interactive console client: a small TUI that
// sends command lines to the server and scrolls the replies.
//
// The literal "quit" input is a local sentinel that exits the client without
// reaching the server.
package ui

import (
	"bufio"
	"fmt"
	"net"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const quitSentinel = "quit"

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	replyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// replyMsg carries one complete reply block from the server.
type replyMsg string

// connErrMsg signals that the connection broke.
type connErrMsg struct{ err error }

// Model is the TUI state for one client connection.
type Model struct {
	conn    net.Conn
	input   textinput.Model
	view    viewport.Model
	replies chan replyBlock
	history []string
	err     error
	ready   bool
}

type replyBlock struct {
	text string
	err  error
}

// NewModel creates a client Model speaking over conn.
func NewModel(conn net.Conn) Model {
	input := textinput.New()
	input.Placeholder = "type a command, man for help, quit to exit"
	input.Focus()

	m := Model{
		conn:    conn,
		input:   input,
		replies: make(chan replyBlock),
	}
	go m.readReplies()
	return m
}

// Run dials the server and runs the client TUI until quit.
func Run(addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer conn.Close()

	_, err = tea.NewProgram(NewModel(conn), tea.WithAltScreen()).Run()
	return err
}

// readReplies reads newline-framed reply blocks off the connection. A block
// ends at the first blank line.
func (m Model) readReplies() {
	scanner := bufio.NewScanner(m.conn)
	var block []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			m.replies <- replyBlock{text: strings.Join(block, "\n")}
			block = nil
			continue
		}
		block = append(block, line)
	}
	err := scanner.Err()
	if err == nil {
		err = fmt.Errorf("server closed the connection")
	}
	m.replies <- replyBlock{err: err}
}

func (m Model) waitForReply() tea.Cmd {
	return func() tea.Msg {
		block := <-m.replies
		if block.err != nil {
			return connErrMsg{err: block.err}
		}
		return replyMsg(block.text)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForReply())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Reserve two rows for the input line and the help line.
		if !m.ready {
			m.view = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = msg.Height - 2
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}

	case replyMsg:
		m.history = append(m.history, replyStyle.Render(string(msg)))
		m.refresh()
		return m, m.waitForReply()

	case connErrMsg:
		m.err = msg.err
		m.history = append(m.history, errorStyle.Render(msg.err.Error()))
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}
	if line == quitSentinel {
		return m, tea.Quit
	}

	m.history = append(m.history, promptStyle.Render("> "+line))
	m.input.Reset()
	m.refresh()

	if m.err != nil {
		return m, nil
	}
	if _, err := fmt.Fprintln(m.conn, line); err != nil {
		m.err = err
		m.history = append(m.history, errorStyle.Render(err.Error()))
		m.refresh()
		return m, nil
	}
	return m, nil
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.view.SetContent(strings.Join(m.history, "\n"))
	m.view.GotoBottom()
}

func (m Model) View() string {
	if !m.ready {
		return "connecting..."
	}
	help := helpStyle.Render("enter: send · quit: exit · esc: abort")
	return m.view.View() + "\n" + m.input.View() + "\n" + help
}
