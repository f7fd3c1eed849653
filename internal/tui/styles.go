package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent       = lipgloss.Color("#0078d4")
	colorNonCompliant = lipgloss.Color("#d83b01")
	colorPanel        = lipgloss.Color("#252537")
	colorCard         = lipgloss.Color("#2a2a3b")
	colorText         = lipgloss.Color("#ffffff")
	colorMuted        = lipgloss.Color("#cccccc")
)

const complianceBarWidth = 40

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Background(colorAccent).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			MarginTop(1)

	cardStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorCard).
			Padding(0, 1).
			MarginRight(1)

	cardValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Background(colorCard)

	compliantStyle    = lipgloss.NewStyle().Foreground(colorAccent)
	nonCompliantStyle = lipgloss.NewStyle().Foreground(colorNonCompliant)

	detailsStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Background(colorPanel).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().Foreground(colorMuted)
	noticeStyle = lipgloss.NewStyle().Foreground(colorNonCompliant).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(colorMuted).Faint(true)
)
