// Package ui renders conversion progress in the terminal.
package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 40

type state int

const (
	stateConverting state = iota
	stateDone
	stateFailed
	stateCancelled
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// ProgressMsg carries a completion percentage from the converter.
type ProgressMsg int

// DoneMsg reports a finished conversion.
type DoneMsg struct {
	OutPath string
	Bytes   int
}

// ErrMsg reports a failed conversion.
type ErrMsg struct {
	Err error
}

// Model is the state of one conversion shown on screen. It is created when a
// conversion starts and dropped with Reset.
type Model struct {
	fileName string
	percent  int
	state    state
	outPath  string
	outBytes int
	err      error
	cancel   context.CancelFunc
}

// NewModel creates the model for converting fileName. cancel, when set, is
// called if the user quits before the conversion finishes.
func NewModel(fileName string, cancel context.CancelFunc) Model {
	return Model{
		fileName: fileName,
		cancel:   cancel,
	}
}

// Reset clears the conversion state, keeping nothing from the previous run.
func (m Model) Reset() Model {
	return Model{}
}

// Err returns the conversion error, if any.
func (m Model) Err() error {
	return m.err
}

// Init implements tea.Model. There is no startup command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update applies converter and key messages. Done and error messages end the program.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case ProgressMsg:
		// progress never goes backwards on screen
		if p := int(msg); p > m.percent && p <= 100 {
			m.percent = p
		}
	case DoneMsg:
		m.state = stateDone
		m.percent = 100
		m.outPath = msg.OutPath
		m.outBytes = msg.Bytes

		return m, tea.Quit
	case ErrMsg:
		m.state = stateFailed
		m.err = msg.Err
		m.percent = 0

		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		if m.state == stateConverting {
			m.state = stateCancelled

			if m.cancel != nil {
				m.cancel()
			}
		}

		return m, tea.Quit
	}

	return m, nil
}

// View renders the title, the bar and the current status line.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("μ-law conversion: " + m.fileName))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "[%s] %3d%%\n\n", renderBar(m.percent, 100, barWidth), m.percent)

	switch m.state {
	case stateConverting:
		b.WriteString("Processing... (q to abort)\n")
	case stateDone:
		b.WriteString(doneStyle.Render(fmt.Sprintf("Conversion complete! %s (%d bytes)", m.outPath, m.outBytes)))
		b.WriteString("\n")
	case stateFailed:
		b.WriteString(errStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case stateCancelled:
		b.WriteString(errStyle.Render("Conversion aborted"))
		b.WriteString("\n")
	}

	return b.String()
}

// renderBar draws value out of total as a bar of width cells.
func renderBar(value, total, width int) string {
	filled := min(max(value*width/total, 0), width)

	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
