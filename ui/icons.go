package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/ghostcat/ghostcat/common"
)

// IconConfig defines the configuration for icon generation.
type IconConfig struct {
	Size        int
	FillColor   color.RGBA
	BorderColor color.RGBA
	WheelColor  color.RGBA
	ShowWheel   bool
}

// DefaultActiveIconConfig is used while a device is connected.
func DefaultActiveIconConfig() IconConfig {
	return IconConfig{
		Size:        common.TrayIconSize,
		FillColor:   color.RGBA{53, 132, 228, 255},  // Blue
		BorderColor: color.RGBA{28, 113, 216, 255},  // Dark blue
		WheelColor:  color.RGBA{255, 255, 255, 255}, // White
		ShowWheel:   true,
	}
}

// DefaultIdleIconConfig is used when no device is available.
func DefaultIdleIconConfig() IconConfig {
	return IconConfig{
		Size:        common.TrayIconSize,
		FillColor:   color.RGBA{117, 117, 117, 255}, // Dark gray
		BorderColor: color.RGBA{158, 158, 158, 255}, // Gray
		WheelColor:  color.RGBA{189, 189, 189, 255}, // Light gray
		ShowWheel:   false,
	}
}

// IconGenerator generates PNG icons for the system tray.
type IconGenerator struct {
	config IconConfig
}

// NewIconGenerator creates a new icon generator with the given config.
func NewIconGenerator(config IconConfig) *IconGenerator {
	return &IconGenerator{config: config}
}

// Generate creates a PNG icon and returns the bytes.
func (g *IconGenerator) Generate() []byte {
	img := g.Image()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		common.LogError("Encoding tray icon: %v", err)
		return nil
	}
	return buf.Bytes()
}

// Image draws the icon.
func (g *IconGenerator) Image() *image.RGBA {
	size := g.config.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	g.drawBody(img)
	g.drawSplit(img)
	if g.config.ShowWheel {
		g.drawWheel(img)
	}
	return img
}

// inBody reports whether (x, y) falls inside the mouse outline, an ellipse
// slightly narrower than the icon.
func (g *IconGenerator) inBody(x, y float64) bool {
	size := float64(g.config.Size)
	cx, cy := size/2, size/2
	rx, ry := size*0.34, size*0.46
	dx, dy := (x-cx)/rx, (y-cy)/ry
	return dx*dx+dy*dy <= 1
}

func (g *IconGenerator) drawBody(img *image.RGBA) {
	size := g.config.Size
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			if !g.inBody(fx, fy) {
				continue
			}
			isBorder := !g.inBody(fx-1, fy) || !g.inBody(fx+1, fy) ||
				!g.inBody(fx, fy-1) || !g.inBody(fx, fy+1)
			if isBorder {
				img.Set(x, y, g.config.BorderColor)
			} else {
				img.Set(x, y, g.config.FillColor)
			}
		}
	}
}

// drawSplit draws the line between the two main buttons.
func (g *IconGenerator) drawSplit(img *image.RGBA) {
	size := g.config.Size
	cx := size / 2
	for y := 0; y < int(math.Round(float64(size)*0.4)); y++ {
		if g.inBody(float64(cx)+0.5, float64(y)+0.5) {
			img.Set(cx, y, g.config.BorderColor)
		}
	}
}

func (g *IconGenerator) drawWheel(img *image.RGBA) {
	size := g.config.Size
	cx := size / 2
	top := int(float64(size) * 0.2)
	for y := top; y < top+4; y++ {
		img.Set(cx, y, g.config.WheelColor)
	}
}

// GenerateActiveIcon generates the device-connected icon.
func GenerateActiveIcon() []byte {
	return NewIconGenerator(DefaultActiveIconConfig()).Generate()
}

// GenerateIdleIcon generates the no-device icon.
func GenerateIdleIcon() []byte {
	return NewIconGenerator(DefaultIdleIconConfig()).Generate()
}
