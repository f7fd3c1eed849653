package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// ActionButton is a flat accent-coloured button that lightens while hovered
// and darkens while pressed.
type ActionButton struct {
	widget.BaseWidget

	OnTapped func()

	text    string
	hovered bool

	background *canvas.Rectangle
	label      *canvas.Text
}

var (
	_ desktop.Hoverable  = (*ActionButton)(nil)
	_ desktop.Cursorable = (*ActionButton)(nil)
	_ desktop.Mouseable  = (*ActionButton)(nil)
	_ fyne.Tappable      = (*ActionButton)(nil)
	_ mobile.Touchable   = (*ActionButton)(nil)
)

// NewActionButton creates a button with the given caption
func NewActionButton(text string, onTapped func()) *ActionButton {
	b := &ActionButton{text: text, OnTapped: onTapped}
	b.ExtendBaseWidget(b)

	b.background = canvas.NewRectangle(ColorAccent)
	b.background.CornerRadius = ActionButtonRadius
	b.background.SetMinSize(fyne.NewSize(ActionButtonWidth, ActionButtonHeight))

	b.label = canvas.NewText(text, ColorText)
	b.label.TextSize = ButtonTextSize
	b.label.TextStyle = fyne.TextStyle{Bold: true}
	b.label.Alignment = fyne.TextAlignCenter

	return b
}

// Text returns the caption
func (b *ActionButton) Text() string {
	return b.text
}

// SetText changes the caption
func (b *ActionButton) SetText(text string) {
	b.text = text
	b.label.Text = text
	b.label.Refresh()
}

// Hovered reports whether the pointer is over the button
func (b *ActionButton) Hovered() bool {
	return b.hovered
}

// Tapped runs the button action
func (b *ActionButton) Tapped(*fyne.PointEvent) {
	if b.OnTapped != nil {
		b.OnTapped()
	}
}

// Cursor shows a pointer over the button
func (b *ActionButton) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

// MouseIn lightens the button
func (b *ActionButton) MouseIn(*desktop.MouseEvent) {
	b.hovered = true
	b.paint(ColorAccentHover)
}

// MouseMoved is required by desktop.Hoverable
func (b *ActionButton) MouseMoved(*desktop.MouseEvent) {}

// MouseOut restores the resting colour
func (b *ActionButton) MouseOut() {
	b.hovered = false
	b.paint(ColorAccent)
}

// MouseDown darkens the button while pressed
func (b *ActionButton) MouseDown(*desktop.MouseEvent) {
	b.paint(ColorAccentActive)
}

// MouseUp restores the hover or resting colour
func (b *ActionButton) MouseUp(*desktop.MouseEvent) {
	if b.hovered {
		b.paint(ColorAccentHover)
		return
	}
	b.paint(ColorAccent)
}

// TouchDown darkens the button while a finger rests on it
func (b *ActionButton) TouchDown(*mobile.TouchEvent) {
	b.paint(ColorAccentActive)
}

// TouchUp restores the resting colour; the tap itself arrives via Tapped
func (b *ActionButton) TouchUp(*mobile.TouchEvent) {
	b.paint(ColorAccent)
}

// TouchCancel restores the resting colour
func (b *ActionButton) TouchCancel(*mobile.TouchEvent) {
	b.paint(ColorAccent)
}

func (b *ActionButton) paint(fill color.Color) {
	b.background.FillColor = fill
	b.background.Refresh()
}

// CreateRenderer creates the widget renderer
func (b *ActionButton) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(b.background, container.NewCenter(b.label)))
}
