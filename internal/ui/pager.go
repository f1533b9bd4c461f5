package ui

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// errNoProgram is returned when the pager is used before SetProgram
var errNoProgram = errors.New("program not set")

// Pager shows text in ov, handing the terminal over while it runs
type Pager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPager creates a pager; SetProgram must be called before Show
func NewPager() *Pager {
	return &Pager{}
}

// SetProgram sets the program reference for terminal management
func (p *Pager) SetProgram(program *tea.Program) {
	p.program = program
}

// Show blocks until the user leaves the pager
func (p *Pager) Show(content string) error {
	if p.program == nil {
		return errNoProgram
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
