package ui

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/ghostcat/ghostcat/common"
	"github.com/ghostcat/ghostcat/config"
	"github.com/ghostcat/ghostcat/ratbag"
)

// Application represents the main application
type Application struct {
	app     *gtk.Application
	window  *MainWindow
	config  *config.Config
	version string
	tray    *TrayIndicator

	commitAction *gio.SimpleAction

	clientMu sync.Mutex
	client   *ratbag.Client
}

// NewApplication creates a new application
func NewApplication(cfg *config.Config, version string) *Application {
	glib.SetPrgname(common.ConfigDirName)
	glib.SetApplicationName(common.AppName)

	app := gtk.NewApplication(common.AppID, gio.ApplicationFlagsNone)

	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	application := &Application{
		app:     app,
		config:  cfg,
		version: version,
	}

	app.ConnectStartup(application.onStartup)
	app.ConnectActivate(application.onActivate)
	app.ConnectShutdown(application.onShutdown)

	return application
}

// Run runs the application
func (a *Application) Run(args []string) int {
	return a.app.Run(args)
}

func (a *Application) onStartup() {
	adw.Init()
	a.setupActions()
}

// onActivate is called when the application is activated
func (a *Application) onActivate() {
	if a.window != nil {
		a.window.window.Present()
		return
	}

	a.ApplyTheme(a.config.Theme)
	a.setupAppIcon()
	LoadStyles(a.config.CustomCSSPath())

	a.window = NewMainWindow(a)
	a.window.Show()

	if a.config.ShowTray {
		a.tray = NewTrayIndicator(a)
		go a.tray.Run()
	}
}

func (a *Application) onShutdown() {
	if a.window != nil {
		a.window.close()
	}
	if a.tray != nil {
		a.tray.Quit()
	}

	a.clientMu.Lock()
	defer a.clientMu.Unlock()
	if a.client != nil {
		if err := a.client.Close(); err != nil {
			common.LogWarn("Closing daemon connection: %v", err)
		}
		a.client = nil
	}
}

// Client returns the daemon client, connecting on first use. A failed
// connection is not cached so a later refresh can retry.
func (a *Application) Client() (*ratbag.Client, error) {
	a.clientMu.Lock()
	defer a.clientMu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), common.CallTimeout)
	defer cancel()

	client, err := ratbag.NewClient(ctx, ratbag.Options{
		DeveloperMode: a.config.DeveloperMode,
		APIVersion:    a.config.APIVersion,
		Dispatch:      idleDispatch,
		Logger:        common.GetLogger(),
	})
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

// setCommitEnabled toggles app.commit and every widget bound to it.
func (a *Application) setCommitEnabled(enabled bool) {
	if a.commitAction != nil {
		a.commitAction.SetEnabled(enabled)
	}
}

// idleDispatch runs fn on the GTK main loop.
func idleDispatch(fn func()) {
	glib.IdleAdd(fn)
}

// setupActions installs the application-wide actions.
func (a *Application) setupActions() {
	aboutAction := gio.NewSimpleAction("about", nil)
	aboutAction.ConnectActivate(func(_ *glib.Variant) {
		a.showAbout()
	})
	a.app.AddAction(aboutAction)

	quitAction := gio.NewSimpleAction("quit", nil)
	quitAction.ConnectActivate(func(_ *glib.Variant) {
		a.Quit()
	})
	a.app.AddAction(quitAction)
	a.app.SetAccelsForAction("app.quit", []string{"<Control>q"})

	commitAction := gio.NewSimpleAction("commit", nil)
	commitAction.ConnectActivate(func(_ *glib.Variant) {
		if a.window != nil {
			a.window.commit()
		}
	})
	commitAction.SetEnabled(false)
	a.app.AddAction(commitAction)
	a.commitAction = commitAction
	a.app.SetAccelsForAction("app.commit", []string{"<Control>s"})

	refreshAction := gio.NewSimpleAction("refresh", nil)
	refreshAction.ConnectActivate(func(_ *glib.Variant) {
		if a.window != nil {
			a.window.reload()
			a.window.SetStatus("Devices reloaded")
		}
	})
	a.app.AddAction(refreshAction)
	a.app.SetAccelsForAction("app.refresh", []string{"F5"})

	preferencesAction := gio.NewSimpleAction("preferences", nil)
	preferencesAction.ConnectActivate(func(_ *glib.Variant) {
		if a.window != nil {
			NewPreferencesDialog(a.window).Show()
		}
	})
	a.app.AddAction(preferencesAction)
	a.app.SetAccelsForAction("app.preferences", []string{"<Control>comma"})
}

// showAbout presents the about window. The window is a required resource:
// failing to build it is a programming error.
func (a *Application) showAbout() {
	about := adw.NewAboutWindow()
	if about == nil {
		panic("ui: about window could not be built")
	}
	if w := a.GetWindow(); w != nil {
		about.SetTransientFor(w)
	}
	about.SetModal(true)
	about.SetApplicationName(common.AppName)
	about.SetApplicationIcon(common.AppID)
	about.SetVersion(a.version)
	about.SetComments("Configure programmable mice through ghostcatd.")
	about.SetLicenseType(gtk.LicenseGPL20)
	about.Present()
}

// setupAppIcon sets up the application icon
func (a *Application) setupAppIcon() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	iconTheme := gtk.IconThemeGetForDisplay(display)
	if iconTheme == nil {
		return
	}

	// GTK4 looks for theme subdirectories (like "hicolor") inside these paths
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		iconTheme.AddSearchPath(filepath.Join(execDir, "data", "icons"))
	}
	if cwd, err := os.Getwd(); err == nil {
		iconTheme.AddSearchPath(filepath.Join(cwd, "data", "icons"))
	}

	gtk.WindowSetDefaultIconName(common.AppID)
}

// GetConfig returns the configuration
func (a *Application) GetConfig() *config.Config {
	return a.config
}

// ApplyTheme applies the specified theme to the application.
// Supported values: "auto" (system default), "light", "dark"
func (a *Application) ApplyTheme(theme string) {
	settings := gtk.SettingsGetDefault()
	if settings == nil {
		return
	}

	switch theme {
	case common.ThemeLight:
		settings.SetObjectProperty("gtk-application-prefer-dark-theme", false)
	case common.ThemeDark:
		settings.SetObjectProperty("gtk-application-prefer-dark-theme", true)
	default:
		// follow the system
	}
}

// GetWindow returns the main window
func (a *Application) GetWindow() *gtk.Window {
	if a.window != nil {
		return &a.window.window.Window
	}
	return nil
}

// showWindow shows the main window
func (a *Application) showWindow() {
	if a.window != nil {
		a.window.window.Present()
	}
}

// Quit destroys every window and quits the application.
func (a *Application) Quit() {
	for _, w := range a.app.Windows() {
		w.Destroy()
	}
	a.app.Quit()
}

// GetTray returns the tray indicator, or nil when it is disabled.
func (a *Application) GetTray() *TrayIndicator {
	return a.tray
}
