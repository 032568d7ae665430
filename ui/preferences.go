package ui

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/ghostcat/ghostcat/common"
	"github.com/ghostcat/ghostcat/config"
)

// PreferencesDialog represents the preferences dialog.
type PreferencesDialog struct {
	window     *gtk.Window
	mainWindow *MainWindow
	config     *config.Config

	notifySwitch    *gtk.Switch
	traySwitch      *gtk.Switch
	confirmSwitch   *gtk.Switch
	intervalSpin    *gtk.SpinButton
	themeDropDown   *gtk.DropDown
	initialDropDown *gtk.DropDown
}

var (
	themeIDs   = []string{common.ThemeAuto, common.ThemeLight, common.ThemeDark}
	initialIDs = []string{common.InitialActiveFirst, common.InitialActiveNone}
)

// NewPreferencesDialog creates a new preferences dialog.
func NewPreferencesDialog(mainWindow *MainWindow) *PreferencesDialog {
	pd := &PreferencesDialog{
		mainWindow: mainWindow,
		config:     mainWindow.app.config,
	}

	pd.build()
	return pd
}

func (pd *PreferencesDialog) build() {
	pd.window = gtk.NewWindow()
	pd.window.SetTitle("Preferences")
	pd.window.SetTransientFor(&pd.mainWindow.window.Window)
	pd.window.SetModal(true)
	pd.window.SetDefaultSize(500, 520)
	pd.window.SetResizable(false)

	rootBox := gtk.NewBox(gtk.OrientationVertical, 0)

	scrolled := gtk.NewScrolledWindow()
	scrolled.SetVExpand(true)
	scrolled.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 20)
	mainBox.SetMarginTop(24)
	mainBox.SetMarginBottom(16)
	mainBox.SetMarginStart(24)
	mainBox.SetMarginEnd(24)

	// Device section
	deviceSection := pd.createSection("Device", "input-mouse-symbolic")
	deviceCard := pd.createCard()

	pd.intervalSpin = gtk.NewSpinButtonWithRange(1, 60, 1)
	pd.intervalSpin.SetValue(float64(pd.config.PollIntervalSeconds))
	pd.intervalSpin.SetVAlign(gtk.AlignCenter)
	deviceCard.Append(pd.createSettingRow(
		"Poll Interval",
		"Seconds between checks for resolution changes made on the mouse",
		pd.intervalSpin,
	))

	deviceCard.Append(pd.createSeparator())

	pd.confirmSwitch = gtk.NewSwitch()
	pd.confirmSwitch.SetActive(pd.config.UpdatePolicy == common.UpdateConfirmed)
	pd.confirmSwitch.SetVAlign(gtk.AlignCenter)
	deviceCard.Append(pd.createSettingRow(
		"Wait for Confirmation",
		"Only mark a resolution active once the device reports it",
		pd.confirmSwitch,
	))

	deviceCard.Append(pd.createSeparator())

	pd.initialDropDown = gtk.NewDropDown(gtk.NewStringList([]string{"First Resolution", "None"}), nil)
	pd.initialDropDown.SetSelected(indexOf(initialIDs, pd.config.InitialActive))
	pd.initialDropDown.SetVAlign(gtk.AlignCenter)
	pd.initialDropDown.AddCSSClass("flat")
	deviceCard.Append(pd.createSettingRow(
		"Unknown Active Resolution",
		"What to show when the device reports no active resolution",
		pd.initialDropDown,
	))

	deviceSection.Append(deviceCard)
	mainBox.Append(deviceSection)

	// Notifications section
	notifySection := pd.createSection("Notifications", "preferences-system-notifications-symbolic")
	notifyCard := pd.createCard()

	pd.notifySwitch = gtk.NewSwitch()
	pd.notifySwitch.SetActive(pd.config.NotifyDPIChanges)
	pd.notifySwitch.SetVAlign(gtk.AlignCenter)
	notifyCard.Append(pd.createSettingRow(
		"Resolution Alerts",
		"Notify when the DPI button on the mouse changes resolution",
		pd.notifySwitch,
	))

	notifyCard.Append(pd.createSeparator())

	pd.traySwitch = gtk.NewSwitch()
	pd.traySwitch.SetActive(pd.config.ShowTray)
	pd.traySwitch.SetVAlign(gtk.AlignCenter)
	notifyCard.Append(pd.createSettingRow(
		"Tray Icon",
		"Show the active resolution in the system tray (restart required)",
		pd.traySwitch,
	))

	notifySection.Append(notifyCard)
	mainBox.Append(notifySection)

	// Appearance section
	appearSection := pd.createSection("Appearance", "preferences-desktop-theme-symbolic")
	appearCard := pd.createCard()

	pd.themeDropDown = gtk.NewDropDown(gtk.NewStringList([]string{"System Default", "Light", "Dark"}), nil)
	pd.themeDropDown.SetSelected(indexOf(themeIDs, pd.config.Theme))
	pd.themeDropDown.SetVAlign(gtk.AlignCenter)
	pd.themeDropDown.AddCSSClass("flat")
	appearCard.Append(pd.createSettingRow(
		"Theme",
		"Choose the visual appearance of the application",
		pd.themeDropDown,
	))

	appearSection.Append(appearCard)
	mainBox.Append(appearSection)

	scrolled.SetChild(mainBox)
	rootBox.Append(scrolled)

	buttonBar := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBar.SetHAlign(gtk.AlignEnd)
	buttonBar.SetMarginTop(16)
	buttonBar.SetMarginBottom(20)
	buttonBar.SetMarginStart(24)
	buttonBar.SetMarginEnd(24)

	cancelBtn := gtk.NewButtonWithLabel("Cancel")
	cancelBtn.ConnectClicked(func() {
		pd.window.Close()
	})
	buttonBar.Append(cancelBtn)

	saveBtn := gtk.NewButtonWithLabel("Save")
	saveBtn.AddCSSClass("suggested-action")
	saveBtn.ConnectClicked(func() {
		pd.savePreferences()
		pd.window.Close()
	})
	buttonBar.Append(saveBtn)

	rootBox.Append(buttonBar)

	pd.window.SetChild(rootBox)
}

// createSection creates a section with icon and title.
func (pd *PreferencesDialog) createSection(title string, iconName string) *gtk.Box {
	section := gtk.NewBox(gtk.OrientationVertical, 8)

	headerBox := gtk.NewBox(gtk.OrientationHorizontal, 8)

	icon := gtk.NewImage()
	icon.SetFromIconName(iconName)
	icon.SetPixelSize(18)
	icon.AddCSSClass("dim-label")
	headerBox.Append(icon)

	label := gtk.NewLabel(title)
	label.SetXAlign(0)
	label.AddCSSClass("heading")
	label.AddCSSClass("dim-label")
	headerBox.Append(label)

	section.Append(headerBox)

	return section
}

func (pd *PreferencesDialog) createCard() *gtk.Box {
	card := gtk.NewBox(gtk.OrientationVertical, 0)
	card.AddCSSClass("card")
	return card
}

// createSettingRow creates a row with title, description, and widget.
func (pd *PreferencesDialog) createSettingRow(title string, description string, widget gtk.Widgetter) *gtk.Box {
	row := gtk.NewBox(gtk.OrientationHorizontal, 12)
	row.SetMarginTop(14)
	row.SetMarginBottom(14)
	row.SetMarginStart(16)
	row.SetMarginEnd(16)

	textBox := gtk.NewBox(gtk.OrientationVertical, 4)
	textBox.SetHExpand(true)

	titleLabel := gtk.NewLabel(title)
	titleLabel.SetXAlign(0)
	textBox.Append(titleLabel)

	descLabel := gtk.NewLabel(description)
	descLabel.SetXAlign(0)
	descLabel.AddCSSClass("dim-label")
	descLabel.AddCSSClass("caption")
	descLabel.SetWrap(true)
	textBox.Append(descLabel)

	row.Append(textBox)
	row.Append(widget)

	return row
}

func (pd *PreferencesDialog) createSeparator() *gtk.Separator {
	sep := gtk.NewSeparator(gtk.OrientationHorizontal)
	sep.SetMarginStart(16)
	sep.SetMarginEnd(16)
	return sep
}

// indexOf returns the position of id in ids, or 0 if not found.
func indexOf(ids []string, id string) uint {
	for i, v := range ids {
		if v == id {
			return uint(i)
		}
	}
	return 0
}

// savePreferences saves the current preferences to the config file.
// Poll and policy changes apply to pages built after the next reload.
func (pd *PreferencesDialog) savePreferences() {
	pd.config.NotifyDPIChanges = pd.notifySwitch.Active()
	pd.config.ShowTray = pd.traySwitch.Active()
	pd.config.PollIntervalSeconds = pd.intervalSpin.ValueAsInt()
	if pd.confirmSwitch.Active() {
		pd.config.UpdatePolicy = common.UpdateConfirmed
	} else {
		pd.config.UpdatePolicy = common.UpdateOptimistic
	}
	if idx := pd.initialDropDown.Selected(); int(idx) < len(initialIDs) {
		pd.config.InitialActive = initialIDs[idx]
	}
	if idx := pd.themeDropDown.Selected(); int(idx) < len(themeIDs) {
		pd.config.Theme = themeIDs[idx]
		pd.mainWindow.app.ApplyTheme(pd.config.Theme)
	}

	if err := pd.config.Save(); err != nil {
		common.LogError("Saving preferences: %v", err)
		pd.mainWindow.SetStatus("Could not save preferences")
		return
	}

	pd.mainWindow.reload()
	pd.mainWindow.SetStatus("Preferences saved")
}

// Show displays the preferences dialog.
func (pd *PreferencesDialog) Show() {
	pd.window.Show()
}
