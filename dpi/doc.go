// Package dpi holds the resolution reconciliation logic shared by the GTK
// and terminal front-ends.
//
// A Page tracks which resolution of a profile is active and which is the
// DPI-shift target. It learns about changes from daemon notifications and,
// as a backstop for changes made with the mouse's own DPI buttons, polls
// the daemon on a schedule. Every state change ends in ApplyButtonStates,
// a pure function of the cached indices, the profile's activity flag and
// the rows' disabled flags, whose result is handed to a View.
//
// The package knows nothing about widgets: front-ends provide a View, a
// LabelSurface for the device map, a Scheduler and an EventSource.
package dpi
