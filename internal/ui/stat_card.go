package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/intune-dash/internal/model"
)

// StatCard is one analytics card: a label on the left, the value on the right,
// highlighted while the pointer is over it.
type StatCard struct {
	widget.BaseWidget

	field   model.Field
	hovered bool

	background *canvas.Rectangle
	labelText  *canvas.Text
	valueText  *canvas.Text
}

var _ desktop.Hoverable = (*StatCard)(nil)

// NewStatCard creates a card showing field
func NewStatCard(field model.Field) *StatCard {
	c := &StatCard{field: field}
	c.ExtendBaseWidget(c)

	c.background = canvas.NewRectangle(ColorCard)
	c.background.CornerRadius = StatCardRadius
	c.background.SetMinSize(fyne.NewSize(0, StatCardHeight))

	c.labelText = canvas.NewText(field.Label, ColorText)
	c.labelText.TextSize = CardTextSize

	c.valueText = canvas.NewText(field.Value, ColorText)
	c.valueText.TextSize = CardTextSize
	c.valueText.TextStyle = fyne.TextStyle{Bold: true}
	c.valueText.Alignment = fyne.TextAlignTrailing

	return c
}

// Field returns the label/value pair shown by the card
func (c *StatCard) Field() model.Field {
	return c.field
}

// SetField replaces the card content
func (c *StatCard) SetField(field model.Field) {
	c.field = field
	c.labelText.Text = field.Label
	c.valueText.Text = field.Value
	c.Refresh()
}

// Hovered reports whether the pointer is over the card
func (c *StatCard) Hovered() bool {
	return c.hovered
}

// MouseIn highlights the card
func (c *StatCard) MouseIn(*desktop.MouseEvent) {
	c.setHovered(true)
}

// MouseMoved is required by desktop.Hoverable
func (c *StatCard) MouseMoved(*desktop.MouseEvent) {}

// MouseOut restores the card colour
func (c *StatCard) MouseOut() {
	c.setHovered(false)
}

func (c *StatCard) setHovered(hovered bool) {
	c.hovered = hovered
	if hovered {
		c.background.FillColor = ColorAccent
	} else {
		c.background.FillColor = ColorCard
	}
	c.background.Refresh()
}

// CreateRenderer creates the widget renderer
func (c *StatCard) CreateRenderer() fyne.WidgetRenderer {
	row := container.NewBorder(nil, nil,
		container.NewPadded(c.labelText),
		container.NewPadded(c.valueText),
	)
	return widget.NewSimpleRenderer(container.NewStack(c.background, row))
}
