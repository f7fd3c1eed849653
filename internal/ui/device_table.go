package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/intune-dash/internal/model"
)

// DeviceTable renders the device management table. Row 0 is the header row;
// selecting any other row reports the device and clears the selection so the
// same row can be opened again.
type DeviceTable struct {
	table        *widget.Table
	devices      []model.Device
	localization *Localization
	onSelect     func(model.Device)
}

// NewDeviceTable creates the table for devices
func NewDeviceTable(devices []model.Device, localization *Localization, onSelect func(model.Device)) *DeviceTable {
	dt := &DeviceTable{
		devices:      devices,
		localization: localization,
		onSelect:     onSelect,
	}

	dt.table = widget.NewTable(
		// 1 header row + data rows
		func() (int, int) {
			return len(dt.devices) + 1, len(model.DeviceColumns)
		},
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			lbl := o.(*widget.Label)
			lbl.SetText(dt.cellText(id))
			lbl.TextStyle = fyne.TextStyle{Bold: id.Row == 0}
			lbl.Importance = dt.cellImportance(id)
			lbl.Refresh()
		},
	)

	for col, width := range DeviceColumnWidths {
		dt.table.SetColumnWidth(col, width)
	}

	dt.table.OnSelected = func(id widget.TableCellID) {
		dt.table.UnselectAll()
		device, ok := dt.DeviceAt(id.Row)
		if !ok || dt.onSelect == nil {
			return
		}
		dt.onSelect(device)
	}

	return dt
}

// Widget returns the underlying table widget
func (dt *DeviceTable) Widget() *widget.Table {
	return dt.table
}

// Devices returns the rows currently shown
func (dt *DeviceTable) Devices() []model.Device {
	return dt.devices
}

// SetDevices replaces the table rows
func (dt *DeviceTable) SetDevices(devices []model.Device) {
	dt.devices = devices
	dt.table.ScrollToTop()
	dt.table.Refresh()
}

// Refresh redraws every cell, e.g. after a language change
func (dt *DeviceTable) Refresh() {
	dt.table.Refresh()
}

// DeviceAt maps a table row to its device; the header row has none
func (dt *DeviceTable) DeviceAt(row int) (model.Device, bool) {
	idx := row - 1
	if idx < 0 || idx >= len(dt.devices) {
		return model.Device{}, false
	}
	return dt.devices[idx], true
}

func (dt *DeviceTable) cellText(id widget.TableCellID) string {
	if id.Col < 0 || id.Col >= len(model.DeviceColumns) {
		return ""
	}
	if id.Row == 0 {
		return dt.localization.Phrase(model.DeviceColumns[id.Col])
	}
	device, ok := dt.DeviceAt(id.Row)
	if !ok {
		return ""
	}
	return dt.localization.Phrase(device.Cells()[id.Col])
}

func (dt *DeviceTable) cellImportance(id widget.TableCellID) widget.Importance {
	if id.Row == 0 {
		return widget.HighImportance
	}
	device, ok := dt.DeviceAt(id.Row)
	if ok && id.Col == complianceColumn && !device.IsCompliant() {
		return widget.DangerImportance
	}
	return widget.MediumImportance
}

// complianceColumn is the index of "Compliance" in model.DeviceColumns
const complianceColumn = 2

// newDeviceDetailsDialog builds the details popup of one device
func newDeviceDetailsDialog(details model.DeviceDetails, localization *Localization, window fyne.Window) *dialog.CustomDialog {
	title := canvas.NewText(localization.GetText(KeyDeviceDetails), ColorText)
	title.TextSize = DetailsTitleSize
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	rows := container.NewVBox(title)
	for _, field := range details.Fields() {
		rows.Add(detailRow(model.Field{
			Label: localization.Phrase(field.Label),
			Value: localization.Phrase(field.Value),
		}))
	}

	d := dialog.NewCustom(
		localization.GetText(KeyDeviceDetails)+": "+details.ID,
		localization.GetText(KeyClose),
		rows,
		window,
	)
	d.Resize(fyne.NewSize(DetailsDialogWidth, DetailsDialogHeight))
	return d
}

func detailRow(field model.Field) fyne.CanvasObject {
	background := canvas.NewRectangle(ColorPanel)

	label := canvas.NewText(field.Label, ColorText)
	label.TextSize = CardTextSize

	value := canvas.NewText(field.Value, ColorAccent)
	value.TextSize = CardTextSize
	value.TextStyle = fyne.TextStyle{Bold: true}

	row := container.NewBorder(nil, nil, container.NewPadded(label), container.NewPadded(value))
	return container.NewStack(background, row)
}
