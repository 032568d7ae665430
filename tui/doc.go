// Package tui is a terminal front-end for one profile's resolutions.
//
// It drives the same dpi.Page as the GTK window. Bubble Tea's update loop
// is the control thread: daemon notifications reach it as messages sent
// through Program.Send, and the poll backstop is a chain of tea.Tick
// commands.
package tui
