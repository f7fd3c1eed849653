package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Dashboard palette
var (
	ColorBackground   = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x2f, A: 0xff}
	ColorPanel        = color.NRGBA{R: 0x25, G: 0x25, B: 0x37, A: 0xff}
	ColorCard         = color.NRGBA{R: 0x2a, G: 0x2a, B: 0x3b, A: 0xff}
	ColorAccent       = color.NRGBA{R: 0x00, G: 0x78, B: 0xd4, A: 0xff}
	ColorAccentHover  = color.NRGBA{R: 0x00, G: 0x91, B: 0xff, A: 0xff}
	ColorAccentActive = color.NRGBA{R: 0x00, G: 0x5a, B: 0x9e, A: 0xff}
	ColorNonCompliant = color.NRGBA{R: 0xd8, G: 0x3b, B: 0x01, A: 0xff}
	ColorText         = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ColorMutedText    = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
)

// DashboardTheme is a dark theme with the console palette and slightly
// reduced paddings. It ignores the system variant.
type DashboardTheme struct{}

// NewDashboardTheme creates the dashboard theme
func NewDashboardTheme() fyne.Theme {
	return &DashboardTheme{}
}

// Color returns theme colors
func (t *DashboardTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return ColorBackground
	case theme.ColorNameOverlayBackground, theme.ColorNameMenuBackground:
		return ColorPanel
	case theme.ColorNameInputBackground, theme.ColorNameHeaderBackground:
		return ColorCard
	case theme.ColorNameForeground:
		return ColorText
	case theme.ColorNamePlaceHolder:
		return ColorMutedText
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return ColorAccent
	case theme.ColorNameHover:
		return ColorAccentHover
	case theme.ColorNameSelection, theme.ColorNamePressed:
		return ColorAccentActive
	case theme.ColorNameButton:
		return ColorAccent
	case theme.ColorNameSuccess:
		return color.NRGBA{R: 46, G: 160, B: 67, A: 255}
	case theme.ColorNameError:
		return ColorNonCompliant
	case theme.ColorNameWarning:
		return color.NRGBA{R: 255, G: 193, B: 7, A: 255}
	}

	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *DashboardTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *DashboardTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *DashboardTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3 // Reduced from default 4
	case theme.SizeNameInnerPadding:
		return 6 // Reduced from default 8
	case theme.SizeNameScrollBar:
		return 12 // Reduced from default 16
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 16
	case theme.SizeNameInputRadius:
		return 6
	case theme.SizeNameSelectionRadius:
		return 4
	}

	return theme.DefaultTheme().Size(name)
}
