package main

import "github.com/charmbracelet/lipgloss"

var (
	styleHeading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)
