package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/charmbracelet/log"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ytget/intune-dash/internal/model"
)

// Palette of the compliance chart, as hex without the leading '#'
const (
	CompliantHex    = "0078d4"
	NonCompliantHex = "d83b01"
	BackgroundHex   = "252537"
	LabelHex        = "ffffff"
)

// minSide is the smallest width or height a chart is drawn at
const minSide = 16

// ErrEmptySample is returned when both slices of a sample are zero
var ErrEmptySample = errors.New("compliance sample is empty")

// RenderPie draws the compliance pie chart. On failure it returns a blank
// background-coloured image of the requested size together with the error,
// so callers can always display something.
func RenderPie(sample model.ComplianceSample, width, height int) (image.Image, error) {
	width, height = clampSize(width), clampSize(height)

	if sample.Total() <= 0 || math.IsNaN(sample.Total()) {
		return Blank(width, height), ErrEmptySample
	}

	pie := gochart.PieChart{
		Width:  width,
		Height: height,
		Background: gochart.Style{
			FillColor: drawing.ColorFromHex(BackgroundHex),
		},
		Canvas: gochart.Style{
			FillColor: drawing.ColorFromHex(BackgroundHex),
		},
		Values: []gochart.Value{
			sliceValue("Compliant", sample.Compliant, sample.Total(), CompliantHex),
			sliceValue("Non-compliant", sample.NonCompliant, sample.Total(), NonCompliantHex),
		},
	}

	var buf bytes.Buffer
	if err := pie.Render(gochart.PNG, &buf); err != nil {
		log.Warn("pie chart render failed, showing blank fallback", "err", err)
		return Blank(width, height), fmt.Errorf("rendering pie chart: %w", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		log.Warn("pie chart decode failed, showing blank fallback", "err", err)
		return Blank(width, height), fmt.Errorf("decoding pie chart: %w", err)
	}
	return img, nil
}

// SliceLabel formats a legend label such as "Compliant 94%"
func SliceLabel(name string, value, total float64) string {
	if total <= 0 {
		return name + " 0%"
	}
	return fmt.Sprintf("%s %.0f%%", name, value/total*100)
}

// Blank returns a solid image in the chart background colour
func Blank(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, clampSize(width), clampSize(height)))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: BackgroundColor()}, image.Point{}, draw.Src)
	return img
}

// BackgroundColor returns the chart background as a color.Color
func BackgroundColor() color.Color {
	return drawing.ColorFromHex(BackgroundHex)
}

func sliceValue(name string, value, total float64, hex string) gochart.Value {
	return gochart.Value{
		Label: SliceLabel(name, value, total),
		Value: value,
		Style: gochart.Style{
			FillColor:   drawing.ColorFromHex(hex),
			StrokeColor: drawing.ColorFromHex(BackgroundHex),
			StrokeWidth: 2,
			FontColor:   drawing.ColorFromHex(LabelHex),
			FontSize:    11,
		},
	}
}

func clampSize(n int) int {
	if n < minSide {
		return minSide
	}
	return n
}
