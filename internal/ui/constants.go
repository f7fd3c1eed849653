package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconClose    = "×"
	IconLanguage = "🌐"
	IconBusy     = "⏳"
)

// Text fragments
const (
	ClockFormat = "Date: 2006-01-02 15:04:05"
)

// Layout sizing
const (
	AnalyticsPanelWidth float32 = 350
	StatCardHeight      float32 = 36
	StatCardRadius      float32 = 8
	PanelRadius         float32 = 10

	ActionButtonWidth  float32 = 200
	ActionButtonHeight float32 = 40
	ActionButtonRadius float32 = 6

	ProgressBarWidth float32 = 600

	ChartWidth  = 400
	ChartHeight = 300

	DetailsDialogWidth  float32 = 400
	DetailsDialogHeight float32 = 300

	SettingsDialogWidth  float32 = 420
	SettingsDialogHeight float32 = 300
)

// Text sizes
const (
	HeaderTextSize   float32 = 28
	SectionTextSize  float32 = 20
	CardTextSize     float32 = 12
	ClockTextSize    float32 = 12
	StatusTextSize   float32 = 14
	ButtonTextSize   float32 = 12
	DetailsTitleSize float32 = 16
)

// Device table column widths, in DeviceColumns order
var DeviceColumnWidths = []float32{110, 110, 130, 150, 90}

