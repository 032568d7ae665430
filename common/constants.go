// Package common provides shared constants, types, and utilities
// used across the GhostCAT application.
package common

import "time"

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "org.freedesktop.GhostCAT"
	// AppName is the display name of the application.
	AppName = "GhostCAT"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "ghostcat"
)

// File names used by the application.
const (
	ConfigFileName = "config.yaml"
	StyleFileName  = "style.css"
	LogFileName    = "ghostcat.log"
)

// Daemon defaults.
const (
	// RequiredAPIVersion is the ghostcatd API version this client speaks.
	RequiredAPIVersion = 2
	// PollInterval is how often a page re-reads the active resolution.
	PollInterval = 2 * time.Second
	// PollCallTimeout bounds each live property read during a poll tick.
	PollCallTimeout = 500 * time.Millisecond
	// CallTimeout bounds regular method calls to the daemon.
	CallTimeout = 5 * time.Second
)

// UI constants.
const (
	// DefaultWindowWidth is the default main window width.
	DefaultWindowWidth = 900
	// DefaultWindowHeight is the default main window height.
	DefaultWindowHeight = 600
	// MouseMapSpacing is the spacing between the device map and its labels.
	MouseMapSpacing = 20
	// MouseMapBorder is the border around the device map.
	MouseMapBorder = 20
	// TrayIconSize is the size of the system tray icon.
	TrayIconSize = 22
)

// Initial active policies.
const (
	InitialActiveFirst = "first"
	InitialActiveNone  = "none"
)

// Update policies for set-active / set-shift requests.
const (
	UpdateOptimistic = "optimistic"
	UpdateConfirmed  = "confirmed"
)

// Theme values.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)
