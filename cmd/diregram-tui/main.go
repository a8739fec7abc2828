// Package main provides the diregram-tui binary — Bubble Tea issue browser.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nexusmap/diregram/pkg/ecosystem/tui"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: diregram-tui <file.md>")
		os.Exit(1)
	}

	m := tui.NewModel(os.Args[1])
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
