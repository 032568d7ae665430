package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/ghostcat/ghostcat/common"
	"github.com/ghostcat/ghostcat/ratbag"
)

// svgDirs are searched for a device picture named after its model.
var svgDirs = []string{
	"/usr/share/ghostcat/svg",
	"/usr/local/share/ghostcat/svg",
	"data/svg",
}

// MouseMap shows the device picture with one label per button that is
// mapped to a resolution action.
type MouseMap struct {
	box    *gtk.Box
	labels *gtk.Box

	buttonLabels map[int]*gtk.Label
}

// NewMouseMap creates the map for device.
func NewMouseMap(device *ratbag.Device) *MouseMap {
	m := &MouseMap{
		buttonLabels: make(map[int]*gtk.Label),
	}

	m.box = gtk.NewBox(gtk.OrientationVertical, common.MouseMapSpacing)
	m.box.AddCSSClass("mouse-map")
	m.box.SetVAlign(gtk.AlignStart)

	if svg := devicePicture(device.Model()); svg != "" {
		picture := gtk.NewPictureForFilename(svg)
		picture.SetCanShrink(true)
		picture.SetSizeRequest(240, 320)
		m.box.Append(picture)
	} else {
		icon := gtk.NewImage()
		icon.SetFromIconName("input-mouse-symbolic")
		icon.SetPixelSize(160)
		icon.AddCSSClass("empty-state-icon")
		m.box.Append(icon)
	}

	name := gtk.NewLabel(device.Name())
	name.AddCSSClass("title-4")
	m.box.Append(name)

	m.labels = gtk.NewBox(gtk.OrientationVertical, 4)
	m.labels.AddCSSClass("button-labels")
	m.box.Append(m.labels)

	return m
}

// devicePicture returns the SVG for model, or "" when none is installed.
func devicePicture(model string) string {
	if model == "" {
		return ""
	}
	file := strings.ReplaceAll(model, ":", "-") + ".svg"
	for _, dir := range svgDirs {
		p := filepath.Join(common.ExpandHome(dir), file)
		if common.FileExists(p) {
			return p
		}
	}
	if exe, err := os.Executable(); err == nil {
		p := filepath.Join(filepath.Dir(exe), "data", "svg", file)
		if common.FileExists(p) {
			return p
		}
	}
	return ""
}

// AddLabel shows text next to the button.
func (m *MouseMap) AddLabel(buttonIndex int, text string) {
	if label, ok := m.buttonLabels[buttonIndex]; ok {
		label.SetText(labelText(buttonIndex, text))
		return
	}

	label := gtk.NewLabel(labelText(buttonIndex, text))
	label.SetName(fmt.Sprintf("button%d", buttonIndex))
	label.SetXAlign(0)
	label.AddCSSClass("button-label")
	m.buttonLabels[buttonIndex] = label
	m.relayout()
}

// RemoveLabel removes the button's label.
func (m *MouseMap) RemoveLabel(buttonIndex int) {
	label, ok := m.buttonLabels[buttonIndex]
	if !ok {
		return
	}
	delete(m.buttonLabels, buttonIndex)
	m.labels.Remove(label)
}

// relayout keeps the labels ordered by button index.
func (m *MouseMap) relayout() {
	indices := make([]int, 0, len(m.buttonLabels))
	for idx, label := range m.buttonLabels {
		indices = append(indices, idx)
		if label.Parent() != nil {
			m.labels.Remove(label)
		}
	}
	sort.Ints(indices)
	for _, idx := range indices {
		m.labels.Append(m.buttonLabels[idx])
	}
}

func labelText(buttonIndex int, text string) string {
	return fmt.Sprintf("Button %d: %s", buttonIndex, text)
}

// Widget returns the map's root widget.
func (m *MouseMap) Widget() *gtk.Box {
	return m.box
}
