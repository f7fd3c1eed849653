package ui

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/intune-dash/internal/config"
)

// SettingsDialog edits the runtime settings. Values live in memory only and
// are lost when the application exits.
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onApplied    func()

	// UI components
	stepIntervalEntry *widget.Entry
	chartRefreshEntry *widget.Entry
	languageSelect    *widget.Select
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onApplied func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onApplied:    onApplied,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	sd.stepIntervalEntry = widget.NewEntry()
	sd.stepIntervalEntry.SetPlaceHolder("0-1000")

	sd.chartRefreshEntry = widget.NewEntry()
	sd.chartRefreshEntry.SetPlaceHolder("0.5-60")

	languageOptions := []string{}
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)
	sd.languageSelect.PlaceHolder = "Select language"

	form := container.NewVBox(
		widget.NewLabel(sd.localization.GetText(KeySimulation)),
		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyStepInterval)+":"),
		sd.stepIntervalEntry,

		widget.NewLabel(sd.localization.GetText(KeyChartRefresh)+":"),
		sd.chartRefreshEntry,

		widget.NewSeparator(),
		widget.NewLabel(sd.localization.GetText(KeyInterface)),
		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.stepIntervalEntry.SetText(strconv.FormatInt(sd.settings.GetStepInterval().Milliseconds(), 10))
	sd.chartRefreshEntry.SetText(strconv.FormatFloat(sd.settings.GetChartRefresh().Seconds(), 'f', -1, 64))
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onSave applies the edited values
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	// Invalid numbers keep the previous value; setters clamp the rest
	if ms, err := strconv.Atoi(strings.TrimSpace(sd.stepIntervalEntry.Text)); err == nil {
		sd.settings.SetStepInterval(time.Duration(ms) * time.Millisecond)
	}

	if secs, err := strconv.ParseFloat(strings.TrimSpace(sd.chartRefreshEntry.Text), 64); err == nil {
		sd.settings.SetChartRefresh(time.Duration(secs * float64(time.Second)))
	}

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	if sd.onApplied != nil {
		sd.onApplied()
	}

	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsApplied), sd.window)
}
