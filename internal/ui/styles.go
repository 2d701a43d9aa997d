package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Design System Colors - Adaptive based on terminal background
var (
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorAccent    lipgloss.Color

	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorTextDim   lipgloss.Color
)

// Component Styles, built by initializeStyles
var (
	StyleTitle        lipgloss.Style
	StyleLabel        lipgloss.Style
	StyleLabelFocused lipgloss.Style
	StyleSuggestion   lipgloss.Style
	StyleSuggestTop   lipgloss.Style
	StyleHelp         lipgloss.Style
	StyleForm         lipgloss.Style
)

var stylesOnce sync.Once

// setupStyles detects the terminal background and builds the styles. It
// queries the terminal, so it only runs once a form is actually shown.
func setupStyles() {
	stylesOnce.Do(func() {
		initializeColors()
		initializeStyles()
	})
}

// initializeColors sets up adaptive colors based on terminal background
func initializeColors() {
	switch os.Getenv("GLAMOUR_STYLE") {
	case "light":
		setLightThemeColors()
		return
	case "dark":
		setDarkThemeColors()
		return
	}

	if lipgloss.HasDarkBackground() {
		setDarkThemeColors()
	} else {
		setLightThemeColors()
	}
}

func setDarkThemeColors() {
	ColorPrimary = lipgloss.Color("205")
	ColorSecondary = lipgloss.Color("33")
	ColorAccent = lipgloss.Color("214")
	ColorText = lipgloss.Color("252")
	ColorTextMuted = lipgloss.Color("244")
	ColorTextDim = lipgloss.Color("240")
}

func setLightThemeColors() {
	ColorPrimary = lipgloss.Color("125")
	ColorSecondary = lipgloss.Color("24")
	ColorAccent = lipgloss.Color("130")
	ColorText = lipgloss.Color("232")
	ColorTextMuted = lipgloss.Color("240")
	ColorTextDim = lipgloss.Color("244")
}

func initializeStyles() {
	StyleTitle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		MarginBottom(1)

	StyleLabel = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	StyleLabelFocused = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	StyleSuggestion = lipgloss.NewStyle().
		Foreground(ColorTextDim)

	StyleSuggestTop = lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true)

	StyleHelp = lipgloss.NewStyle().
		Foreground(ColorTextDim).
		MarginTop(1)

	StyleForm = lipgloss.NewStyle().
		Padding(1, 2)
}
