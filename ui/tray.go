package ui

import (
	"fmt"

	"fyne.io/systray"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/ghostcat/ghostcat/common"
)

// Pre-generated icons for performance.
var (
	iconActive = GenerateActiveIcon()
	iconIdle   = GenerateIdleIcon()
)

// TrayIndicator manages the system tray icon and menu.
// It shows the active resolution and can cycle through resolutions
// without opening the main window.
type TrayIndicator struct {
	app        *Application
	statusItem *systray.MenuItem
	cycleItem  *systray.MenuItem
	ready      chan struct{}
}

// NewTrayIndicator creates a new system tray indicator.
func NewTrayIndicator(app *Application) *TrayIndicator {
	return &TrayIndicator{
		app:   app,
		ready: make(chan struct{}),
	}
}

// Run starts the system tray indicator.
// This should be called from a goroutine as it blocks.
func (t *TrayIndicator) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the systray is ready.
func (t *TrayIndicator) onReady() {
	systray.SetIcon(iconIdle)
	systray.SetTitle(common.AppName)
	systray.SetTooltip(common.AppName + " - No device")

	t.statusItem = systray.AddMenuItem("○  No device", "Active resolution")
	t.statusItem.Disable()

	systray.AddSeparator()

	t.cycleItem = systray.AddMenuItem("Cycle Resolution", "Switch to the next resolution")
	t.cycleItem.Disable()
	go func() {
		for range t.cycleItem.ClickedCh {
			glib.IdleAdd(func() {
				if t.app.window != nil {
					t.app.window.cycleResolution()
				}
			})
		}
	}()

	showItem := systray.AddMenuItem("Open "+common.AppName, "Show main window")
	go func() {
		for range showItem.ClickedCh {
			glib.IdleAdd(t.app.showWindow)
		}
	}()

	systray.AddSeparator()

	quitItem := systray.AddMenuItem("Quit", "Close "+common.AppName)
	go func() {
		for range quitItem.ClickedCh {
			glib.IdleAdd(t.app.Quit)
		}
	}()

	close(t.ready)
}

// onExit is called when the systray is about to exit.
func (t *TrayIndicator) onExit() {
	common.LogInfo("Tray indicator cleanup completed")
}

// isReady reports whether the menu items exist yet.
func (t *TrayIndicator) isReady() bool {
	select {
	case <-t.ready:
		return true
	default:
		return false
	}
}

// SetActiveDPI shows the device's active resolution.
func (t *TrayIndicator) SetActiveDPI(deviceName, dpi string) {
	if !t.isReady() {
		return
	}
	systray.SetIcon(iconActive)
	systray.SetTooltip(trayTooltip(deviceName, dpi))
	t.statusItem.SetTitle(fmt.Sprintf("●  %s: %s", deviceName, dpi))
	t.cycleItem.Enable()
}

// SetIdle shows that no device is available.
func (t *TrayIndicator) SetIdle() {
	if !t.isReady() {
		return
	}
	systray.SetIcon(iconIdle)
	systray.SetTooltip(trayTooltip("", ""))
	t.statusItem.SetTitle("○  No device")
	t.cycleItem.Disable()
}

// Quit removes the tray icon.
func (t *TrayIndicator) Quit() {
	systray.Quit()
}

func trayTooltip(deviceName, dpi string) string {
	if deviceName == "" {
		return common.AppName + " - No device"
	}
	return fmt.Sprintf("%s - %s at %s", common.AppName, deviceName, dpi)
}
