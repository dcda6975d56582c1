package core

import "github.com/charmbracelet/lipgloss"

var (
	ColorText     lipgloss.Color = "#cdd6f4"
	ColorMuted    lipgloss.Color = "#a6adc8"
	ColorSubtle   lipgloss.Color = "#7f849c"
	ColorBorder   lipgloss.Color = "#585b70"
	ColorAccent   lipgloss.Color = "#89b4fa"
	ColorSuccess  lipgloss.Color = "#a6e3a1"
	ColorError    lipgloss.Color = "#f38ba8"
	ColorMantle   lipgloss.Color = "#181825"
	ColorSurface0 lipgloss.Color = "#313244"
)
