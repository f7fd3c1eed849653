package ui

import (
	"fyne.io/fyne/v2"
)

const (
	AppIcon = "intune-dash.png"
)

// LoadLogoResource loads the header logo from the working directory. The
// header falls back to text only when the file is missing.
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}
