// Package tui implements the interactive terminal cube viewer.
//
// The viewer owns the display frame loop: a tea.Tick fires roughly 30
// times per second and each frame advances the animation engine by one
// Tick. Tokens from an external feed (BLE session or simulator) and
// from keyboard entry go through the same pipeline as decoded radio
// moves.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/SeamusWaldron/cubeview"
	"github.com/SeamusWaldron/cubeview/internal/render"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const frameInterval = 33 * time.Millisecond

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	statusStyle = lipgloss.NewStyle().Faint(true)
	moveStyle   = lipgloss.NewStyle().Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

type frameMsg time.Time

type tokenMsg string

type statusMsg string

// Model is the bubbletea model for the cube viewer.
type Model struct {
	grid   *cubeview.Grid
	engine *cubeview.Engine
	state  *cubeview.State

	tokens <-chan string // optional external move feed
	status <-chan string // optional session status stream

	// applyFeed: feed tokens go through the pipeline here. False when
	// the feed comes from a Session, which has already applied them;
	// the viewer then only logs.
	applyFeed bool

	statusLine string
	input      string
	lastErr    string
	moveLog    []string
}

// New creates a viewer over an existing pipeline. tokens and status may
// be nil for a keyboard-only viewer. applyFeed controls whether feed
// tokens are applied by the viewer or merely displayed.
func New(grid *cubeview.Grid, engine *cubeview.Engine, state *cubeview.State, tokens, status <-chan string, applyFeed bool) Model {
	return Model{
		grid:       grid,
		engine:     engine,
		state:      state,
		tokens:     tokens,
		status:     status,
		applyFeed:  applyFeed,
		statusLine: "standalone",
	}
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m Model) waitToken() tea.Cmd {
	if m.tokens == nil {
		return nil
	}
	ch := m.tokens
	return func() tea.Msg {
		tok, ok := <-ch
		if !ok {
			return nil
		}
		return tokenMsg(tok)
	}
}

func (m Model) waitStatus() tea.Cmd {
	if m.status == nil {
		return nil
	}
	ch := m.status
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return statusMsg(st)
	}
}

// Init starts the frame loop and the external feeds.
func (m Model) Init() tea.Cmd {
	return tea.Batch(frameTick(), m.waitToken(), m.waitStatus())
}

// Update handles frame ticks, feed messages and key input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.engine.Tick(time.Time(msg))
		return m, frameTick()

	case tokenMsg:
		if m.applyFeed {
			m.applyToken(string(msg))
		} else {
			m.logToken(string(msg))
		}
		return m, m.waitToken()

	case statusMsg:
		m.statusLine = string(msg)
		return m, m.waitStatus()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "ctrl+r":
		m.engine.Reset()
		m.state.Reset()
		m.moveLog = nil
		m.lastErr = ""
		return m, nil

	case "esc":
		m.input = ""
		m.lastErr = ""
		return m, nil

	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil

	case "enter", " ":
		for _, tok := range strings.Fields(m.input) {
			m.applyToken(tok)
		}
		m.input = ""
		return m, nil
	}

	// Everything else accumulates in the input buffer; validity is
	// decided on enter, through the same normalizer as decoded moves.
	if len(msg.String()) == 1 {
		m.input += msg.String()
	}
	return m, nil
}

// applyToken runs one token through the pipeline, recording rejections
// instead of failing.
func (m *Model) applyToken(token string) {
	token = cubeview.Normalize(token)
	if err := m.state.Apply(token); err != nil {
		m.lastErr = fmt.Sprintf("rejected %q", token)
		return
	}
	if err := m.engine.EnqueueNotation(token); err != nil {
		m.lastErr = fmt.Sprintf("rejected %q", token)
		return
	}
	m.lastErr = ""
	m.logToken(token)
}

func (m *Model) logToken(token string) {
	m.moveLog = append(m.moveLog, token)
	if len(m.moveLog) > 16 {
		m.moveLog = m.moveLog[len(m.moveLog)-16:]
	}
}

// View renders the net, animation status and input line.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("cubeview") + "  " + statusStyle.Render(m.statusLine) + "\n\n")
	b.WriteString(render.Net(m.grid))
	b.WriteString("\n")

	frame := m.engine.Frame()
	if frame.Active {
		b.WriteString(fmt.Sprintf("%s %s queued:%d\n",
			moveStyle.Render(frame.Move.Notation()),
			render.ProgressBar(frame.Progress, 20),
			frame.Queued))
	} else {
		b.WriteString(statusStyle.Render("idle") + "\n")
	}

	if len(m.moveLog) > 0 {
		b.WriteString(statusStyle.Render("moves: "+strings.Join(m.moveLog, " ")) + "\n")
	}
	if m.lastErr != "" {
		b.WriteString(errStyle.Render(m.lastErr) + "\n")
	}

	b.WriteString("\n> " + m.input + "\n")
	b.WriteString(helpStyle.Render("type moves + enter · ctrl+r reset · q quit"))
	return b.String()
}
