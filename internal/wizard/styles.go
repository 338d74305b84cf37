package wizard

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha values, the palette the demo ships with.
const (
	colorText    lipgloss.Color = "#cdd6f4"
	colorMuted   lipgloss.Color = "#a6adc8"
	colorBorder  lipgloss.Color = "#585b70"
	colorAccent  lipgloss.Color = "#89b4fa"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorError   lipgloss.Color = "#f38ba8"
	colorTabOff  lipgloss.Color = "#7f849c"
	colorSurface lipgloss.Color = "#313244"
	colorMantle  lipgloss.Color = "#181825"
)

var (
	appStyle = lipgloss.NewStyle().Foreground(colorText)

	headerAppStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	headerBarStyle = lipgloss.NewStyle().
			Background(colorMantle).
			Foreground(colorText)
	tabSepStyle = lipgloss.NewStyle().
			Foreground(colorBorder).
			Background(colorMantle)

	activeTabStyle = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().
				Background(colorMantle).
				Foreground(colorTabOff).
				Padding(0, 1)

	sectionTitleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	descStyle        = lipgloss.NewStyle().Foreground(colorMuted)
	labelStyle       = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	placeholderStyle = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	disabledStyle    = lipgloss.NewStyle().Foreground(colorBorder)
	cursorStyle      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	fieldErrStyle    = lipgloss.NewStyle().Foreground(colorError)
	helpTextStyle    = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

	focusedButtonStyle = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorAccent).
				Bold(true).
				Padding(0, 1)
	blurredButtonStyle = lipgloss.NewStyle().
				Foreground(colorTabOff).
				Padding(0, 1)

	statusOKStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorError)

	footerBarStyle  = lipgloss.NewStyle().Background(colorMantle)
	footerKeyStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Background(colorMantle)
	footerDescStyle = lipgloss.NewStyle().Foreground(colorMuted).Background(colorMantle)
)
