package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/ghostcat/ghostcat/common"
	"github.com/ghostcat/ghostcat/ratbag"
)

// Content stack pages.
const (
	contentProfiles = "profiles"
	contentEmpty    = "empty"
	contentError    = "error"
)

// MainWindow represents the main application window.
type MainWindow struct {
	app       *Application
	window    *gtk.ApplicationWindow
	headerBar *gtk.HeaderBar

	deviceDropDown *gtk.DropDown
	commitButton   *gtk.Button
	content        *gtk.Stack
	profileStack   *gtk.Stack
	stackSwitcher  *gtk.StackSwitcher
	errorTitle     *gtk.Label
	errorMessage   *gtk.Label

	statusBar   *gtk.Box
	statusLabel *gtk.Label

	devices       []*ratbag.Device
	device        *ratbag.Device
	pages         []*ResolutionsPage
	watch         *ratbag.DeviceWatch
	deviceWatches []func()
}

// NewMainWindow creates a new main window.
func NewMainWindow(app *Application) *MainWindow {
	mw := &MainWindow{
		app: app,
	}

	mw.window = gtk.NewApplicationWindow(app.app)
	mw.window.SetTitle(common.AppName)
	mw.window.SetDefaultSize(common.DefaultWindowWidth, common.DefaultWindowHeight)
	mw.window.SetIconName(common.AppID)

	mw.createLayout()
	mw.reload()

	return mw
}

// createLayout creates the window layout.
func (mw *MainWindow) createLayout() {
	mw.headerBar = gtk.NewHeaderBar()

	mw.deviceDropDown = gtk.NewDropDown(gtk.NewStringList(nil), nil)
	mw.deviceDropDown.SetTooltipText("Select device")
	mw.deviceDropDown.NotifyProperty("selected", func() {
		idx := int(mw.deviceDropDown.Selected())
		if idx >= 0 && idx < len(mw.devices) && mw.devices[idx] != mw.device {
			mw.selectDevice(mw.devices[idx])
		}
	})
	mw.headerBar.PackStart(mw.deviceDropDown)

	mw.profileStack = gtk.NewStack()
	mw.profileStack.SetTransitionType(gtk.StackTransitionTypeCrossfade)
	mw.stackSwitcher = gtk.NewStackSwitcher()
	mw.stackSwitcher.SetStack(mw.profileStack)
	mw.headerBar.SetTitleWidget(mw.stackSwitcher)

	menuButton := gtk.NewMenuButton()
	menuButton.SetIconName("open-menu-symbolic")
	menuButton.SetTooltipText("Menu")
	menuButton.SetMenuModel(mw.createMenu())
	mw.headerBar.PackEnd(menuButton)

	mw.commitButton = gtk.NewButtonWithLabel("Apply")
	mw.commitButton.AddCSSClass("suggested-action")
	mw.commitButton.SetTooltipText("Write changes to the device (Ctrl+S)")
	mw.commitButton.SetActionName("app.commit")
	mw.headerBar.PackEnd(mw.commitButton)

	// Set header bar as titlebar (prevents double bar)
	mw.window.SetTitlebar(mw.headerBar)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 0)

	mw.content = gtk.NewStack()
	mw.content.SetVExpand(true)
	mw.content.AddNamed(mw.profileStack, contentProfiles)
	mw.content.AddNamed(mw.createEmptyState(), contentEmpty)
	mw.content.AddNamed(mw.createErrorState(), contentError)
	mainBox.Append(mw.content)

	mw.createStatusBar()
	mainBox.Append(mw.statusBar)

	mw.window.SetChild(mainBox)
}

// createMenu creates the application menu.
func (mw *MainWindow) createMenu() *gio.Menu {
	menu := gio.NewMenu()

	deviceSection := gio.NewMenu()
	deviceSection.Append("Reload Devices", "app.refresh")
	deviceSection.Append("Apply Changes", "app.commit")
	menu.AppendSection("", &deviceSection.MenuModel)

	settingsSection := gio.NewMenu()
	settingsSection.Append("Preferences", "app.preferences")
	menu.AppendSection("", &settingsSection.MenuModel)

	appSection := gio.NewMenu()
	appSection.Append("About GhostCAT", "app.about")
	appSection.Append("Quit", "app.quit")
	menu.AppendSection("", &appSection.MenuModel)

	return menu
}

func (mw *MainWindow) createEmptyState() *gtk.Box {
	box := gtk.NewBox(gtk.OrientationVertical, 12)
	box.SetVAlign(gtk.AlignCenter)
	box.SetHAlign(gtk.AlignCenter)

	icon := gtk.NewImage()
	icon.SetFromIconName("input-mouse-symbolic")
	icon.SetPixelSize(96)
	icon.AddCSSClass("empty-state-icon")
	box.Append(icon)

	title := gtk.NewLabel("No Devices Found")
	title.AddCSSClass("title-2")
	box.Append(title)

	hint := gtk.NewLabel("Connect a supported mouse and press F5.")
	hint.AddCSSClass("dim-label")
	box.Append(hint)

	return box
}

func (mw *MainWindow) createErrorState() *gtk.Box {
	box := gtk.NewBox(gtk.OrientationVertical, 12)
	box.SetVAlign(gtk.AlignCenter)
	box.SetHAlign(gtk.AlignCenter)

	icon := gtk.NewImage()
	icon.SetFromIconName("dialog-error-symbolic")
	icon.SetPixelSize(96)
	icon.AddCSSClass("empty-state-icon")
	box.Append(icon)

	mw.errorTitle = gtk.NewLabel("")
	mw.errorTitle.AddCSSClass("title-2")
	box.Append(mw.errorTitle)

	mw.errorMessage = gtk.NewLabel("")
	mw.errorMessage.SetWrap(true)
	mw.errorMessage.SetMaxWidthChars(60)
	mw.errorMessage.AddCSSClass("dim-label")
	box.Append(mw.errorMessage)

	retry := gtk.NewButtonWithLabel("Retry")
	retry.SetHAlign(gtk.AlignCenter)
	retry.SetActionName("app.refresh")
	box.Append(retry)

	return box
}

// createStatusBar creates the status bar.
func (mw *MainWindow) createStatusBar() {
	mw.statusBar = gtk.NewBox(gtk.OrientationHorizontal, 12)
	mw.statusBar.AddCSSClass("status-bar")

	mw.statusLabel = gtk.NewLabel("Ready")
	mw.statusLabel.SetXAlign(0)
	mw.statusLabel.SetHExpand(true)
	mw.statusBar.Append(mw.statusLabel)
}

// Show displays the window.
func (mw *MainWindow) Show() {
	mw.window.Show()
}

// SetStatus updates the status text.
func (mw *MainWindow) SetStatus(text string) {
	if mw.statusLabel != nil {
		mw.statusLabel.SetText(text)
	}
}

// reload re-reads the device list and rebuilds the profile pages.
func (mw *MainWindow) reload() {
	client, err := mw.app.Client()
	if err != nil {
		mw.showErrorState(err)
		return
	}
	mw.watchDevices(client.Bus())

	ctx, cancel := context.WithTimeout(context.Background(), common.CallTimeout)
	defer cancel()

	devices, err := client.Devices(ctx)
	if err != nil {
		mw.showErrorState(err)
		return
	}

	mw.devices = devices
	names := make([]string, len(devices))
	for i, d := range devices {
		names[i] = d.Name()
	}

	if len(devices) == 0 {
		mw.closePages()
		mw.device = nil
		mw.deviceDropDown.SetModel(gtk.NewStringList(nil))
		mw.deviceDropDown.SetVisible(false)
		mw.content.SetVisibleChildName(contentEmpty)
		mw.app.setCommitEnabled(false)
		return
	}

	selected := 0
	for i, d := range devices {
		if mw.device != nil && d.ID() == mw.device.ID() {
			selected = i
		}
	}

	mw.device = nil
	mw.deviceDropDown.SetModel(gtk.NewStringList(names))
	mw.deviceDropDown.SetVisible(len(devices) > 1)
	mw.deviceDropDown.SetSelected(uint(selected))
	if mw.device == nil {
		mw.selectDevice(devices[selected])
	}
}

// watchDevices keeps one device list subscription per client, so hotplug
// is noticed even while no device is shown.
func (mw *MainWindow) watchDevices(bus *ratbag.Bus) {
	if mw.watch != nil && mw.watch.Bus() == bus {
		return
	}
	if mw.watch != nil {
		mw.watch.Close()
	}
	mw.watch = ratbag.NewDeviceWatch(bus, mw.reload, func(deviceID string) {
		if mw.device != nil && mw.device.ID() == deviceID {
			mw.SetStatus("Device resynchronized")
			mw.selectDevice(mw.device)
		}
	})
}

func (mw *MainWindow) showErrorState(err error) {
	common.LogError("Daemon unavailable: %v", err)
	mw.closePages()
	mw.device = nil

	switch {
	case errors.Is(err, common.ErrVersionMismatch):
		mw.errorTitle.SetText("Incompatible ghostcatd Version")
	default:
		mw.errorTitle.SetText("Cannot Connect to ghostcatd")
	}
	mw.errorMessage.SetText(err.Error())
	mw.content.SetVisibleChildName(contentError)
	mw.app.setCommitEnabled(false)
	mw.SetStatus("Daemon unavailable")
}

// selectDevice closes every existing page and builds one page per profile
// of device.
func (mw *MainWindow) selectDevice(device *ratbag.Device) {
	mw.closePages()
	mw.device = device

	client, err := mw.app.Client()
	if err != nil {
		mw.showErrorState(err)
		return
	}

	mw.watchDevices(client.Bus())
	mw.watch.Follow(device.ID())

	ctx, cancel := context.WithTimeout(context.Background(), common.CallTimeout)
	defer cancel()

	profiles, err := device.Profiles(ctx)
	if err != nil {
		mw.showErrorState(err)
		return
	}

	visible := ""
	for _, profile := range profiles {
		if profile.IsDisabled() {
			continue
		}
		mw.deviceWatches = append(mw.deviceWatches,
			client.Bus().Watch(profile.ID(), ratbag.PropIsDirty, func(interface{}) {
				mw.updateCommit()
			}),
		)
		page, err := NewResolutionsPage(ctx, mw, client, device, profile)
		if err != nil {
			common.LogError("Building page for %s: %v", profile.ID(), err)
			continue
		}
		name := fmt.Sprintf("profile%d", profile.Index())
		mw.profileStack.AddTitled(page.Widget(), name, profile.DisplayName())
		mw.pages = append(mw.pages, page)
		if profile.IsActive() || visible == "" {
			visible = name
		}
	}

	if len(mw.pages) == 0 {
		mw.content.SetVisibleChildName(contentEmpty)
		mw.app.setCommitEnabled(false)
		return
	}

	mw.profileStack.SetVisibleChildName(visible)
	mw.content.SetVisibleChildName(contentProfiles)
	mw.updateCommit()

	mw.SetStatus(fmt.Sprintf("%s: %d profiles", device.Name(), len(mw.pages)))
	mw.updateTray()
}

// closePages tears down every page before its widgets go away. The device
// list subscription survives.
func (mw *MainWindow) closePages() {
	if mw.watch != nil {
		mw.watch.Follow("")
	}
	for _, cancel := range mw.deviceWatches {
		cancel()
	}
	mw.deviceWatches = nil

	for _, page := range mw.pages {
		page.Close()
		mw.profileStack.Remove(page.Widget())
	}
	mw.pages = nil
}

// close drops every subscription, including the device list one.
func (mw *MainWindow) close() {
	mw.closePages()
	if mw.watch != nil {
		mw.watch.Close()
		mw.watch = nil
	}
}

// updateCommit enables Apply while the device has uncommitted changes.
func (mw *MainWindow) updateCommit() {
	if mw.device == nil || len(mw.pages) == 0 {
		mw.app.setCommitEnabled(false)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), common.CallTimeout)
	defer cancel()

	dirty, err := mw.device.IsDirty(ctx)
	if err != nil {
		common.LogWarn("Reading dirty state of %s: %v", mw.device.Name(), err)
		dirty = true
	}
	mw.app.setCommitEnabled(dirty)
}

// setActiveProfile makes profile the device's active profile.
func (mw *MainWindow) setActiveProfile(profile *ratbag.Profile) {
	ctx, cancel := context.WithTimeout(context.Background(), common.CallTimeout)
	defer cancel()

	if err := profile.SetActive(ctx); err != nil {
		common.LogError("Activating %s: %v", profile.ID(), err)
		mw.SetStatus("Failed to activate " + profile.DisplayName())
		return
	}
	mw.SetStatus(profile.DisplayName() + " is now active")
}

// activePage returns the page of the device's active profile.
func (mw *MainWindow) activePage() *ResolutionsPage {
	for _, page := range mw.pages {
		if page.profile.IsActive() {
			return page
		}
	}
	return nil
}

// commit writes the selected device's pending changes to the hardware.
func (mw *MainWindow) commit() {
	if mw.device == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), common.CallTimeout)
	defer cancel()

	if err := mw.device.Commit(ctx); err != nil {
		common.LogError("Commit failed: %v", err)
		mw.SetStatus("Failed to apply changes")
		if errors.Is(err, common.ErrCommitFailed) {
			_ = NotifyCommitFailed(mw.device.Name())
		}
		return
	}
	mw.SetStatus("Changes applied to " + mw.device.Name())
	mw.updateCommit()
}

// cycleResolution activates the next enabled resolution of the active
// profile.
func (mw *MainWindow) cycleResolution() {
	page := mw.activePage()
	if page == nil {
		return
	}
	next, ok := nextEnabledIndex(page.Resolutions(), page.page.ActiveIndex())
	if !ok {
		return
	}
	if err := page.page.RequestActive(next); err != nil {
		mw.SetStatus("Failed to switch resolution")
	}
}

// updateTray pushes the active DPI to the tray indicator.
func (mw *MainWindow) updateTray() {
	tray := mw.app.GetTray()
	if tray == nil {
		return
	}
	page := mw.activePage()
	if page == nil || mw.device == nil {
		tray.SetIdle()
		return
	}
	if r := page.ActiveResolution(); r != nil {
		tray.SetActiveDPI(mw.device.Name(), r.DPI().String())
	}
}

// nextEnabledIndex returns the index after current, wrapping, skipping
// disabled resolutions.
func nextEnabledIndex(resolutions []*ratbag.Resolution, current int) (int, bool) {
	n := len(resolutions)
	if n == 0 {
		return 0, false
	}
	start := 0
	for i, r := range resolutions {
		if r.Index() == current {
			start = i
			break
		}
	}
	for step := 1; step <= n; step++ {
		r := resolutions[(start+step)%n]
		if !r.IsDisabled() && r.Index() != current {
			return r.Index(), true
		}
	}
	return 0, false
}
