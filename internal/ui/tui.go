package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwbudde/ulaw"
)

// NewProgram builds, but does not start, the progress TUI for fileName
// rendering to out. Extra options are appended after the output option.
func NewProgram(fileName string, cancel context.CancelFunc, out io.Writer, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithOutput(out)}, opts...)

	return tea.NewProgram(NewModel(fileName, cancel), opts...)
}

// Reporter forwards converter progress to a running program, skipping
// repeated percentages.
func Reporter(p *tea.Program) ulaw.ProgressFunc {
	return ulaw.Throttle(func(percent int) {
		p.Send(ProgressMsg(percent))
	})
}
