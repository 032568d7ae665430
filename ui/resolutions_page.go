package ui

import (
	"context"
	"fmt"
	"sort"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/ghostcat/ghostcat/common"
	"github.com/ghostcat/ghostcat/dpi"
	"github.com/ghostcat/ghostcat/ratbag"
)

// ResolutionsPage shows one profile's resolutions next to the device map.
type ResolutionsPage struct {
	mainWindow *MainWindow
	device     *ratbag.Device
	profile    *ratbag.Profile

	box        *gtk.Box
	mouseMap   *MouseMap
	profileBar *gtk.Box
	listBox    *gtk.ListBox

	resolutions []*ratbag.Resolution
	rows        map[int]*ResolutionRow
	dpiWatches  []func()

	page *dpi.Page
}

// NewResolutionsPage builds the page for profile and starts reconciling it
// with the daemon.
func NewResolutionsPage(ctx context.Context, mw *MainWindow, client *ratbag.Client, device *ratbag.Device, profile *ratbag.Profile) (*ResolutionsPage, error) {
	resolutions, err := profile.Resolutions(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading resolutions: %w", err)
	}
	buttons, err := profile.Buttons(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading buttons: %w", err)
	}
	sort.Slice(resolutions, func(i, j int) bool {
		return resolutions[i].Index() < resolutions[j].Index()
	})

	rp := &ResolutionsPage{
		mainWindow:  mw,
		device:      device,
		profile:     profile,
		resolutions: resolutions,
		rows:        make(map[int]*ResolutionRow),
	}
	rp.createLayout()

	cfg := mw.app.GetConfig()
	dpiResolutions := make([]dpi.Resolution, len(resolutions))
	for i, r := range resolutions {
		dpiResolutions[i] = r
	}
	dpiButtons := make([]dpi.Button, len(buttons))
	for i, b := range buttons {
		dpiButtons[i] = b
	}

	rp.page = dpi.NewPage(dpi.Config{
		Profile:          profile,
		Resolutions:      dpiResolutions,
		Buttons:          dpiButtons,
		Events:           client.Bus(),
		Scheduler:        glibScheduler{},
		View:             rp,
		Labels:           rp.mouseMap,
		PollInterval:     cfg.PollInterval(),
		PollTimeout:      cfg.PollTimeout(),
		InitialActive:    cfg.InitialActive,
		UpdatePolicy:     cfg.UpdatePolicy,
		Logger:           common.GetLogger(),
		OnHardwareChange: rp.onHardwareChange,
	})

	bus := client.Bus()
	rp.dpiWatches = append(rp.dpiWatches,
		bus.Watch(profile.ID(), ratbag.PropIsActive, func(interface{}) {
			rp.updateProfileBar()
			mw.updateTray()
		}),
	)
	for _, r := range resolutions {
		r := r
		rp.dpiWatches = append(rp.dpiWatches,
			bus.Watch(r.ID(), ratbag.PropResolution, func(interface{}) {
				if row, ok := rp.rows[r.Index()]; ok {
					row.updateDPI()
				}
				if r.Index() == rp.page.ActiveIndex() {
					mw.updateTray()
				}
			}),
			bus.Watch(r.ID(), ratbag.PropIsActive, func(interface{}) {
				mw.updateTray()
			}),
		)
	}

	// Teardown must happen before the widgets are finalized.
	rp.box.ConnectDestroy(rp.Close)

	return rp, nil
}

func (rp *ResolutionsPage) createLayout() {
	rp.box = gtk.NewBox(gtk.OrientationHorizontal, common.MouseMapSpacing)
	rp.box.SetMarginTop(common.MouseMapBorder)
	rp.box.SetMarginBottom(common.MouseMapBorder)
	rp.box.SetMarginStart(common.MouseMapBorder)
	rp.box.SetMarginEnd(common.MouseMapBorder)

	rp.mouseMap = NewMouseMap(rp.device)
	rp.box.Append(rp.mouseMap.Widget())

	column := gtk.NewBox(gtk.OrientationVertical, 12)
	column.SetHExpand(true)
	column.Append(rp.createProfileBar())

	scrolled := gtk.NewScrolledWindow()
	scrolled.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)
	scrolled.SetHExpand(true)
	scrolled.SetVExpand(true)

	rp.listBox = gtk.NewListBox()
	rp.listBox.SetSelectionMode(gtk.SelectionNone)
	rp.listBox.AddCSSClass("boxed-list")
	rp.listBox.AddCSSClass("resolutions-list")

	// Rows are inserted at the head, so walk the resolutions backwards to
	// end up in index order.
	for i := len(rp.resolutions) - 1; i >= 0; i-- {
		r := rp.resolutions[i]
		row := NewResolutionRow(rp, r)
		rp.rows[r.Index()] = row
		rp.listBox.Insert(row.Widget(), 0)
	}

	rp.listBox.ConnectRowActivated(func(lbr *gtk.ListBoxRow) {
		if row := rp.rowFor(lbr); row != nil {
			rp.page.ActivateRow(row)
		}
	})

	scrolled.SetChild(rp.listBox)
	column.Append(scrolled)
	rp.box.Append(column)
}

// createProfileBar builds the notice shown while the profile is not the
// device's active one.
func (rp *ResolutionsPage) createProfileBar() *gtk.Box {
	rp.profileBar = gtk.NewBox(gtk.OrientationHorizontal, 12)
	rp.profileBar.AddCSSClass("profile-bar")

	label := gtk.NewLabel("This profile is not active on the device.")
	label.SetXAlign(0)
	label.SetHExpand(true)
	label.SetWrap(true)
	rp.profileBar.Append(label)

	button := gtk.NewButtonWithLabel("Set Active Profile")
	button.SetVAlign(gtk.AlignCenter)
	button.ConnectClicked(func() {
		rp.mainWindow.setActiveProfile(rp.profile)
	})
	rp.profileBar.Append(button)

	rp.updateProfileBar()
	return rp.profileBar
}

func (rp *ResolutionsPage) updateProfileBar() {
	rp.profileBar.SetVisible(!rp.profile.IsActive())
}

func (rp *ResolutionsPage) rowFor(lbr *gtk.ListBoxRow) *ResolutionRow {
	if lbr == nil {
		return nil
	}
	var index int
	if _, err := fmt.Sscanf(lbr.Name(), "resolution-%d", &index); err != nil {
		return nil
	}
	return rp.rows[index]
}

// Render applies the computed state to every row.
func (rp *ResolutionsPage) Render(states []dpi.RowState) {
	for _, state := range states {
		if row, ok := rp.rows[state.Index]; ok {
			row.apply(state)
		}
	}
}

func (rp *ResolutionsPage) onHardwareChange(r dpi.Resolution) {
	rp.mainWindow.updateTray()

	if !rp.mainWindow.app.GetConfig().NotifyDPIChanges {
		return
	}
	res, ok := r.(*ratbag.Resolution)
	if !ok {
		return
	}
	if err := NotifyDPIChanged(rp.device.Name(), res.DPI().String()); err != nil {
		common.LogDebug("DPI notification failed: %v", err)
	}
}

// requestActive runs a set-active request and reports failures in the
// status bar.
func (rp *ResolutionsPage) requestActive(index int) {
	if err := rp.page.RequestActive(index); err != nil {
		rp.mainWindow.SetStatus(fmt.Sprintf("Failed to activate resolution %d", index))
	}
}

func (rp *ResolutionsPage) requestShiftTarget(index int) {
	if err := rp.page.RequestShiftTarget(index); err != nil {
		rp.mainWindow.SetStatus(fmt.Sprintf("Failed to set DPI shift target %d", index))
	}
}

func (rp *ResolutionsPage) toggleDisabled(index int) {
	if err := rp.page.ToggleDisabled(index); err != nil {
		rp.mainWindow.SetStatus(fmt.Sprintf("Failed to toggle resolution %d", index))
	}
}

func (rp *ResolutionsPage) setDPI(r *ratbag.Resolution, value uint32) {
	ctx, cancel := context.WithTimeout(context.Background(), common.CallTimeout)
	defer cancel()

	d := r.DPI()
	d.X, d.Y = value, value
	if err := r.SetDPI(ctx, d); err != nil {
		common.LogError("Failed to set DPI of %s: %v", r.ID(), err)
		rp.mainWindow.SetStatus("Failed to set DPI")
	}
}

// ActiveResolution returns the resolution the page shows as active.
func (rp *ResolutionsPage) ActiveResolution() *ratbag.Resolution {
	idx := rp.page.ActiveIndex()
	for _, r := range rp.resolutions {
		if r.Index() == idx {
			return r
		}
	}
	return nil
}

// Resolutions returns the profile's resolutions in index order.
func (rp *ResolutionsPage) Resolutions() []*ratbag.Resolution {
	return rp.resolutions
}

// Widget returns the page's root widget.
func (rp *ResolutionsPage) Widget() gtk.Widgetter {
	return rp.box
}

// Close stops the poll and drops every subscription.
func (rp *ResolutionsPage) Close() {
	for _, cancel := range rp.dpiWatches {
		cancel()
	}
	rp.dpiWatches = nil
	if rp.page != nil {
		rp.page.Close()
	}
}
