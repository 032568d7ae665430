package ui

import (
	"fmt"
	"strconv"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/ghostcat/ghostcat/dpi"
	"github.com/ghostcat/ghostcat/ratbag"
)

// ResolutionRow is one resolution in the page's list. Its details hold the
// DPI picker and are revealed by activating the row.
type ResolutionRow struct {
	page       *ResolutionsPage
	resolution *ratbag.Resolution

	row      *gtk.ListBoxRow
	dpiLabel *gtk.Label

	activeLabel   *gtk.Label
	activeButton  *gtk.Button
	disableButton *gtk.Button
	shiftLabel    *gtk.Label
	shiftButton   *gtk.Button

	revealer    *gtk.Revealer
	dpiDropDown *gtk.DropDown
	dpiValues   []uint32
	updatingDPI bool
}

// NewResolutionRow creates the row for r.
func NewResolutionRow(page *ResolutionsPage, r *ratbag.Resolution) *ResolutionRow {
	rr := &ResolutionRow{
		page:       page,
		resolution: r,
	}

	rr.row = gtk.NewListBoxRow()
	rr.row.SetName(fmt.Sprintf("resolution-%d", r.Index()))
	rr.row.SetActivatable(true)
	rr.row.AddCSSClass("resolution-row")

	outer := gtk.NewBox(gtk.OrientationVertical, 6)
	outer.SetMarginTop(8)
	outer.SetMarginBottom(8)
	outer.SetMarginStart(12)
	outer.SetMarginEnd(12)

	header := gtk.NewBox(gtk.OrientationHorizontal, 8)

	rr.dpiLabel = gtk.NewLabel("")
	rr.dpiLabel.SetXAlign(0)
	rr.dpiLabel.SetHExpand(true)
	rr.dpiLabel.AddCSSClass("dpi-label")
	header.Append(rr.dpiLabel)

	rr.activeLabel = gtk.NewLabel("Active")
	rr.activeLabel.AddCSSClass("status-badge")
	rr.activeLabel.AddCSSClass("active-badge")
	rr.activeLabel.SetVisible(false)
	header.Append(rr.activeLabel)

	rr.shiftLabel = gtk.NewLabel("Shift")
	rr.shiftLabel.AddCSSClass("status-badge")
	rr.shiftLabel.AddCSSClass("shift-badge")
	rr.shiftLabel.SetTooltipText("Used while the DPI-shift button is held")
	rr.shiftLabel.SetVisible(false)
	header.Append(rr.shiftLabel)

	rr.activeButton = gtk.NewButtonWithLabel("Set Active")
	rr.activeButton.AddCSSClass("flat")
	rr.activeButton.ConnectClicked(func() {
		page.requestActive(r.Index())
	})
	header.Append(rr.activeButton)

	rr.shiftButton = gtk.NewButtonWithLabel("Set Shift")
	rr.shiftButton.AddCSSClass("flat")
	rr.shiftButton.SetTooltipText("Make this the DPI-shift target")
	rr.shiftButton.ConnectClicked(func() {
		page.requestShiftTarget(r.Index())
	})
	header.Append(rr.shiftButton)

	rr.disableButton = gtk.NewButtonWithLabel("")
	rr.disableButton.AddCSSClass("flat")
	rr.disableButton.ConnectClicked(func() {
		page.toggleDisabled(r.Index())
	})
	header.Append(rr.disableButton)

	outer.Append(header)
	outer.Append(rr.createDetails())

	rr.row.SetChild(outer)
	rr.updateDPI()
	return rr
}

func (rr *ResolutionRow) createDetails() *gtk.Revealer {
	rr.revealer = gtk.NewRevealer()
	rr.revealer.SetTransitionType(gtk.RevealerTransitionTypeSlideDown)
	rr.revealer.SetRevealChild(false)

	box := gtk.NewBox(gtk.OrientationHorizontal, 8)
	box.SetMarginTop(6)

	label := gtk.NewLabel("Resolution")
	label.AddCSSClass("dim-label")
	box.Append(label)

	rr.dpiValues = rr.resolution.SupportedDPIs()
	names := make([]string, len(rr.dpiValues))
	for i, v := range rr.dpiValues {
		names[i] = strconv.FormatUint(uint64(v), 10)
	}
	rr.dpiDropDown = gtk.NewDropDown(gtk.NewStringList(names), nil)
	rr.dpiDropDown.SetSensitive(len(names) > 0)
	rr.dpiDropDown.NotifyProperty("selected", func() {
		if rr.updatingDPI {
			return
		}
		idx := int(rr.dpiDropDown.Selected())
		if idx >= 0 && idx < len(rr.dpiValues) && rr.dpiValues[idx] != rr.resolution.DPI().X {
			rr.page.setDPI(rr.resolution, rr.dpiValues[idx])
		}
	})
	box.Append(rr.dpiDropDown)

	unit := gtk.NewLabel("DPI")
	box.Append(unit)

	rr.revealer.SetChild(box)
	return rr.revealer
}

// updateDPI refreshes the row's DPI text and picker from the cache.
func (rr *ResolutionRow) updateDPI() {
	d := rr.resolution.DPI()
	rr.dpiLabel.SetText(d.String())

	rr.updatingDPI = true
	defer func() { rr.updatingDPI = false }()
	for i, v := range rr.dpiValues {
		if v == d.X {
			rr.dpiDropDown.SetSelected(uint(i))
			break
		}
	}
}

// apply renders state onto the row's widgets.
func (rr *ResolutionRow) apply(state dpi.RowState) {
	rr.activeLabel.SetVisible(state.ActiveVisible)
	rr.activeButton.SetVisible(!state.ActiveVisible)
	rr.activeButton.SetSensitive(state.ActiveSensitive)

	rr.disableButton.SetSensitive(state.DisableSensitive)
	if rr.resolution.IsDisabled() {
		rr.disableButton.SetLabel("Enable")
		rr.row.AddCSSClass("disabled-resolution")
	} else {
		rr.disableButton.SetLabel("Disable")
		rr.row.RemoveCSSClass("disabled-resolution")
	}

	rr.shiftLabel.SetVisible(state.ShiftVisible)
	rr.shiftButton.SetVisible(!state.ShiftVisible)
	rr.shiftButton.SetSensitive(state.ShiftSensitive)
}

// ToggleRevealer shows or hides the row details.
func (rr *ResolutionRow) ToggleRevealer() {
	rr.revealer.SetRevealChild(!rr.revealer.RevealChild())
}

// Widget returns the list box row.
func (rr *ResolutionRow) Widget() *gtk.ListBoxRow {
	return rr.row
}
