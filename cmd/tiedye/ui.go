package main

import "github.com/charmbracelet/lipgloss"

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
)

func successText(s string) string { return successStyle.Render(s) }
func errorText(s string) string   { return errorStyle.Render(s) }
func warningText(s string) string { return warningStyle.Render(s) }
func infoText(s string) string    { return infoStyle.Render(s) }
func dimText(s string) string     { return dimStyle.Render(s) }
func headerText(s string) string  { return headerStyle.Render(s) }
