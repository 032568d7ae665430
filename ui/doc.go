// Package ui provides the graphical user interface for GhostCAT.
//
// This package implements the GTK4-based user interface including:
//
//   - Main application window with one page per device profile
//   - Resolution rows with active and DPI-shift controls
//   - Device map with labels for buttons bound to resolution actions
//   - System tray indicator showing the active resolution
//   - Preferences dialog and desktop notifications
//
// # Architecture
//
// The UI is built on GTK4 using the gotk4 bindings. Key components:
//
//   - Application: GTK application lifecycle and the lazy daemon client
//   - MainWindow: device selection, profile stack and status bar
//   - ResolutionsPage: GTK front-end for a dpi.Page
//   - TrayIndicator: System tray integration
//
// The reconciliation logic itself lives in package dpi; this package only
// renders what a dpi.Page computes and forwards user input to it.
//
// # Thread Safety
//
// GTK operations must execute on the main thread. The daemon client is
// created with a dispatcher that routes every change notification through
// glib.IdleAdd, and the poll backstop runs on glib timeouts, so page state
// is only ever touched from the main loop. Tray menu callbacks arrive on
// their own goroutines and hop back the same way:
//
//	go func() {
//	    for range item.ClickedCh {
//	        glib.IdleAdd(func() {
//	            window.cycleResolution()
//	        })
//	    }
//	}()
package ui
