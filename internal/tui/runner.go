package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ProgramRunner runs a bubbletea program.
type ProgramRunner interface {
	Run(model tea.Model) error
}

// DefaultProgramRunner runs full screen with mouse wheel scrolling.
type DefaultProgramRunner struct{}

// NewDefaultProgramRunner creates a new DefaultProgramRunner.
func NewDefaultProgramRunner() *DefaultProgramRunner {
	return &DefaultProgramRunner{}
}

func (r *DefaultProgramRunner) Run(model tea.Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
