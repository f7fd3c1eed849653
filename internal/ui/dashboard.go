package ui

import (
	"context"
	"errors"
	"image/color"
	"sort"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"github.com/charmbracelet/log"

	"github.com/ytget/intune-dash/internal/chart"
	"github.com/ytget/intune-dash/internal/config"
	"github.com/ytget/intune-dash/internal/model"
	"github.com/ytget/intune-dash/internal/runner"
	"github.com/ytget/intune-dash/internal/sample"
)

// ShutdownTimeout bounds how long closing the window waits for task workers
const ShutdownTimeout = 2 * time.Second

// Dashboard is the single presentation controller of the desktop window. It
// owns every display handle; runner and ticker goroutines reach widgets only
// through fyne.Do.
type Dashboard struct {
	window       fyne.Window
	app          fyne.App
	runner       runner.TaskRunner
	settings     *config.Settings
	localization *Localization
	generator    *sample.Generator
	actions      []model.Action

	// Header
	titleText *canvas.Text
	clockText *canvas.Text

	// Analytics panel
	analyticsTitle *canvas.Text
	statCards      []*StatCard
	chartImage     *canvas.Image

	// Device panel
	devicesTitle *canvas.Text
	deviceTable  *DeviceTable

	// Actions
	actionButtons []*ActionButton
	status        *StatusPanel

	stop      chan struct{}
	closeOnce sync.Once
	tickersWG sync.WaitGroup
}

// NewDashboard builds the dashboard into window and starts its tickers
func NewDashboard(window fyne.Window, app fyne.App, svc runner.TaskRunner, settings *config.Settings, generator *sample.Generator) *Dashboard {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	d := &Dashboard{
		window:       window,
		app:          app,
		runner:       svc,
		settings:     settings,
		localization: localization,
		generator:    generator,
		actions:      model.Actions(generator.Fleet()),
		stop:         make(chan struct{}),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	// Set up callback for runner updates
	d.runner.SetUpdateCallback(d.onTaskUpdate)

	d.setupUI()
	window.SetOnClosed(d.Close)

	d.startTickers()
	log.Debug("dashboard initialized", "devices", len(d.deviceTable.Devices()), "seed", generator.Seed())
	return d
}

// setupUI creates and arranges all UI components
func (d *Dashboard) setupUI() {
	d.createMenu()

	header := d.createHeader()
	analytics := d.createAnalyticsPanel()
	devices := d.createDevicePanel()
	bottom := d.createActionPanel()

	body := container.NewBorder(nil, nil, analytics, nil, devices)
	content := container.NewBorder(header, bottom, nil, nil, body)

	d.window.SetContent(container.NewStack(newGradientBackground(), container.NewPadded(content)))
}

// newGradientBackground stacks two vertical gradients so the lighter tone
// sits in the middle of the window
func newGradientBackground() fyne.CanvasObject {
	top := canvas.NewVerticalGradient(ColorBackground, ColorCard)
	bottom := canvas.NewVerticalGradient(ColorCard, ColorBackground)
	return container.New(layout.NewGridLayoutWithRows(2), top, bottom)
}

func panel(fill fyne.CanvasObject, content fyne.CanvasObject) fyne.CanvasObject {
	return container.NewStack(fill, container.NewPadded(content))
}

func roundedRect(c color.Color, radius float32) *canvas.Rectangle {
	r := canvas.NewRectangle(c)
	r.CornerRadius = radius
	return r
}

func (d *Dashboard) createHeader() fyne.CanvasObject {
	d.titleText = canvas.NewText(d.localization.GetText(KeyAppTitle), ColorText)
	d.titleText.TextSize = HeaderTextSize
	d.titleText.TextStyle = fyne.TextStyle{Bold: true}
	d.titleText.Alignment = fyne.TextAlignCenter

	d.clockText = canvas.NewText(time.Now().Format(ClockFormat), ColorMutedText)
	d.clockText.TextSize = ClockTextSize
	d.clockText.Alignment = fyne.TextAlignCenter

	title := fyne.CanvasObject(d.titleText)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
		title = container.NewCenter(container.NewHBox(logoImage, d.titleText))
	}

	return panel(roundedRect(ColorBackground, PanelRadius), container.NewVBox(title, d.clockText))
}

func (d *Dashboard) createAnalyticsPanel() fyne.CanvasObject {
	d.analyticsTitle = canvas.NewText(d.localization.GetText(KeyAnalytics), ColorText)
	d.analyticsTitle.TextSize = SectionTextSize
	d.analyticsTitle.TextStyle = fyne.TextStyle{Bold: true}

	cards := container.NewVBox()
	for _, field := range d.generator.Stats() {
		card := NewStatCard(d.localizedField(field))
		d.statCards = append(d.statCards, card)
		cards.Add(card)
	}

	img, err := chart.RenderPie(d.generator.Compliance(), ChartWidth, ChartHeight)
	if err != nil {
		log.Warn("initial compliance chart failed", "err", err)
	}
	d.chartImage = canvas.NewImageFromImage(img)
	d.chartImage.FillMode = canvas.ImageFillContain
	d.chartImage.SetMinSize(fyne.NewSize(AnalyticsPanelWidth-20, ChartHeight*(AnalyticsPanelWidth-20)/ChartWidth))

	background := roundedRect(ColorPanel, PanelRadius)
	background.SetMinSize(fyne.NewSize(AnalyticsPanelWidth, 0))

	return panel(background, container.NewVBox(d.analyticsTitle, cards, d.chartImage))
}

func (d *Dashboard) createDevicePanel() fyne.CanvasObject {
	d.devicesTitle = canvas.NewText(d.localization.GetText(KeyDeviceManagement), ColorText)
	d.devicesTitle.TextSize = SectionTextSize
	d.devicesTitle.TextStyle = fyne.TextStyle{Bold: true}

	d.deviceTable = NewDeviceTable(d.generator.Devices(d.settings.GetDeviceCount()), d.localization, d.onDeviceSelected)

	return panel(roundedRect(ColorPanel, PanelRadius),
		container.NewBorder(d.devicesTitle, nil, nil, nil, d.deviceTable.Widget()))
}

func (d *Dashboard) createActionPanel() fyne.CanvasObject {
	buttons := container.NewHBox()
	for _, action := range d.actions {
		act := action // Capture for closure
		btn := NewActionButton(d.localization.Phrase(act.Button), func() {
			if _, err := d.runAction(act); err != nil {
				log.Debug("action not started", "action", act.Key, "err", err)
			}
		})
		d.actionButtons = append(d.actionButtons, btn)
		buttons.Add(btn)
	}

	d.status = NewStatusPanel(d.localization.GetText(KeyReady), d.onCancelTask)

	return panel(roundedRect(ColorBackground, PanelRadius),
		container.NewVBox(container.NewCenter(buttons), d.status.Container()))
}

// createMenu creates the application menu
func (d *Dashboard) createMenu() {
	settingsItem := fyne.NewMenuItem(IconSettings+" "+d.localization.GetText(KeySettings), d.onShowSettings)
	refreshItem := fyne.NewMenuItem(d.localization.GetText(KeyRefreshDevices), d.onRefreshDevices)

	languageMenu := fyne.NewMenu(IconLanguage + " " + d.localization.GetText(KeyLanguage))

	availableLanguages := d.localization.GetAvailableLanguages()
	codes := make([]string, 0, len(availableLanguages))
	for code := range availableLanguages {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(availableLanguages[code], func() {
			d.onLanguageChange(langCode)
		})

		// Mark current language
		if d.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(d.localization.GetText(KeyFile), refreshItem, settingsItem),
		languageMenu,
	)

	d.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (d *Dashboard) onLanguageChange(langCode string) {
	d.localization.SetLanguage(langCode)
	d.settings.SetLanguage(langCode)

	d.refreshUITexts()

	// Recreate menu to update checkmarks
	d.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (d *Dashboard) refreshUITexts() {
	d.window.SetTitle(d.localization.GetText(KeyAppTitle))

	d.titleText.Text = d.localization.GetText(KeyAppTitle)
	d.titleText.Refresh()
	d.analyticsTitle.Text = d.localization.GetText(KeyAnalytics)
	d.analyticsTitle.Refresh()
	d.devicesTitle.Text = d.localization.GetText(KeyDeviceManagement)
	d.devicesTitle.Refresh()

	for i, field := range d.generator.Stats() {
		if i < len(d.statCards) {
			d.statCards[i].SetField(d.localizedField(field))
		}
	}
	for i, action := range d.actions {
		if i < len(d.actionButtons) {
			d.actionButtons[i].SetText(d.localization.Phrase(action.Button))
		}
	}
	d.deviceTable.Refresh()

	if d.runner.ActiveCount() == 0 {
		d.status.Reset(d.localization.GetText(KeyReady))
	}
}

// onShowSettings opens the settings dialog
func (d *Dashboard) onShowSettings() {
	sd := NewSettingsDialog(d.settings, d.localization, d.window, d.onSettingsApplied)
	sd.Show()
}

// onSettingsApplied pushes edited settings into the running components
func (d *Dashboard) onSettingsApplied() {
	d.runner.SetStepInterval(d.settings.GetStepInterval())
	if d.settings.GetLanguage() != d.localization.GetCurrentLanguage() {
		d.onLanguageChange(d.settings.GetLanguage())
	}
	applied := d.settings.Snapshot()
	log.Debug("settings applied",
		"step_interval", applied.Runner.StepInterval,
		"chart_refresh", applied.Dashboard.ChartRefresh,
		"language", applied.Language)
}

// onRefreshDevices replaces the device table with a fresh sample
func (d *Dashboard) onRefreshDevices() {
	d.deviceTable.SetDevices(d.generator.Devices(d.settings.GetDeviceCount()))
	log.Debug("device sample refreshed", "devices", len(d.deviceTable.Devices()))
}

// localizedField translates the label of a stat card
func (d *Dashboard) localizedField(field model.Field) model.Field {
	return model.Field{Label: d.localization.Phrase(field.Label), Value: field.Value}
}

// runAction starts the simulated task behind an action button. A rejected
// start leaves the buttons enabled and explains the refusal in the status
// line.
func (d *Dashboard) runAction(action model.Action) (*runner.Handle, error) {
	handle, err := d.runner.Run(action.Label, func() {
		d.onActionCompleted(action)
	})
	if err != nil {
		notice := d.localization.GetText(KeyTaskFailed) + ": " + err.Error()
		if errors.Is(err, runner.ErrTaskInProgress) {
			notice = IconBusy + " " + d.localization.GetText(KeyTaskBusy)
		}
		d.status.ShowNotice(notice)
		return nil, err
	}

	log.Info("action started", "action", action.Key, "task", handle.ID())
	return handle, nil
}

// onTaskUpdate receives runner snapshots on worker goroutines
func (d *Dashboard) onTaskUpdate(task model.SimulatedTask) {
	fyne.Do(func() {
		d.status.ShowTask(task, d.localization)
	})
}

// onActionCompleted shows the success dialog and a system notification
func (d *Dashboard) onActionCompleted(action model.Action) {
	log.Info("action completed", "action", action.Key)

	fyne.Do(func() {
		dialog.ShowInformation(d.localization.Phrase(action.SuccessTitle), action.SuccessMessage, d.window)
		d.app.SendNotification(&fyne.Notification{
			Title:   d.localization.Phrase(action.Label),
			Content: action.SuccessMessage,
		})
	})
}

// onCancelTask cancels the task shown in the status panel
func (d *Dashboard) onCancelTask(taskID string) {
	if err := d.runner.Cancel(taskID); err != nil {
		log.Debug("cancel ignored", "task", taskID, "err", err)
	}
}

// onDeviceSelected opens the details dialog of a device
func (d *Dashboard) onDeviceSelected(device model.Device) {
	details := d.generator.Details(device)
	newDeviceDetailsDialog(details, d.localization, d.window).Show()
}

// startTickers launches the clock and chart refresh loops
func (d *Dashboard) startTickers() {
	d.tickersWG.Add(2)
	go d.clockLoop()
	go d.chartLoop()
}

func (d *Dashboard) clockLoop() {
	defer d.tickersWG.Done()

	ticker := time.NewTicker(d.settings.GetClockRefresh())
	defer ticker.Stop()

	for {
		select {
		case <-d.stop:
			return
		case now := <-ticker.C:
			text := now.Format(ClockFormat)
			fyne.Do(func() {
				d.clockText.Text = text
				d.clockText.Refresh()
			})
		}
	}
}

// chartLoop redraws the pie chart. The interval is re-read every round so a
// change in the settings dialog applies from the next frame.
func (d *Dashboard) chartLoop() {
	defer d.tickersWG.Done()

	timer := time.NewTimer(d.settings.GetChartRefresh())
	defer timer.Stop()

	for {
		select {
		case <-d.stop:
			return
		case <-timer.C:
			d.refreshChart()
			timer.Reset(d.settings.GetChartRefresh())
		}
	}
}

// refreshChart renders a fresh compliance frame off the UI thread
func (d *Dashboard) refreshChart() {
	img, err := chart.RenderPie(d.generator.Compliance(), ChartWidth, ChartHeight)
	if err != nil {
		log.Warn("compliance chart refresh failed", "err", err)
	}
	fyne.Do(func() {
		d.chartImage.Image = img
		d.chartImage.Refresh()
	})
}

// Close stops the tickers and cancels running tasks. Safe to call twice.
func (d *Dashboard) Close() {
	d.closeOnce.Do(func() {
		close(d.stop)
		d.tickersWG.Wait()

		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := d.runner.Shutdown(ctx); err != nil {
			log.Warn("runner shutdown incomplete", "err", err)
		}
		log.Debug("dashboard closed")
	})
}
