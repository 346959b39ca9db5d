package ui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	cardBack  = "░░░"
	emptySlot = "[ ]"
	blankCell = "   "
)

var (
	docStyle      = lipgloss.NewStyle().Margin(1, 2)
	redStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	blackStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	backStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("25"))
	slotStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("220")).Foreground(lipgloss.Color("0")).Bold(true)
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	winStyle      = boxStyle.BorderForeground(lipgloss.Color("220")).Foreground(lipgloss.Color("220")).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).MarginTop(1)
)
