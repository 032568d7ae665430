// Package cli provides command-line interface functionality for GhostCAT.
// It lists devices and switches resolutions from the terminal without
// launching the GUI application.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ghostcat/ghostcat/common"
	"github.com/ghostcat/ghostcat/config"
	"github.com/ghostcat/ghostcat/ratbag"
)

// CLI represents the command-line interface.
type CLI struct {
	client *ratbag.Client
	out    io.Writer
}

// New connects to ghostcatd and creates a new CLI instance.
func New(ctx context.Context, cfg *config.Config) (*CLI, error) {
	client, err := ratbag.NewClient(ctx, ratbag.Options{
		DeveloperMode: cfg.DeveloperMode,
		APIVersion:    cfg.APIVersion,
		Logger:        common.GetLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ghostcatd: %w", err)
	}

	return &CLI{
		client: client,
		out:    os.Stdout,
	}, nil
}

// Close releases the daemon connection.
func (c *CLI) Close() error {
	return c.client.Close()
}

// resolutionLine is one row of the --list table.
type resolutionLine struct {
	Device        string
	Profile       int
	ProfileActive bool
	Resolution    int
	DPI           string
	Active        bool
	Shift         bool
	Disabled      bool
}

// ListDevices lists every device with its profiles and resolutions.
func (c *CLI) ListDevices(ctx context.Context) error {
	devices, err := c.client.Devices(ctx)
	if err != nil {
		return err
	}

	if len(devices) == 0 {
		fmt.Fprintln(c.out, "No devices found.")
		fmt.Fprintln(c.out, "Check that ghostcatd is running and the mouse is connected.")
		return nil
	}

	var lines []resolutionLine
	for _, device := range devices {
		profiles, err := device.Profiles(ctx)
		if err != nil {
			return common.WrapError(err, "listing profiles of "+device.Name())
		}
		for _, profile := range profiles {
			if profile.IsDisabled() {
				continue
			}
			resolutions, err := profile.Resolutions(ctx)
			if err != nil {
				return common.WrapError(err, "listing resolutions of "+profile.DisplayName())
			}
			for _, r := range resolutions {
				lines = append(lines, resolutionLine{
					Device:        fmt.Sprintf("%s (%s)", device.Name(), sysname(device.ID())),
					Profile:       profile.Index(),
					ProfileActive: profile.IsActive(),
					Resolution:    r.Index(),
					DPI:           r.DPI().String(),
					Active:        r.IsActive(),
					Shift:         r.IsDpiShiftTarget(),
					Disabled:      r.IsDisabled(),
				})
			}
		}
	}

	return writeTable(c.out, lines)
}

// writeTable prints lines as an aligned table.
func writeTable(out io.Writer, lines []resolutionLine) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DEVICE\tPROFILE\tRES\tDPI\tFLAGS")
	fmt.Fprintln(w, "------\t-------\t---\t---\t-----")

	for _, l := range lines {
		profile := strconv.Itoa(l.Profile)
		if l.ProfileActive {
			profile += "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			l.Device, profile, l.Resolution, l.DPI, markers(l.Active, l.Shift, l.Disabled))
	}

	return w.Flush()
}

// markers formats the resolution flags column.
func markers(active, shift, disabled bool) string {
	var flags []string
	if active {
		flags = append(flags, "active")
	}
	if shift {
		flags = append(flags, "shift")
	}
	if disabled {
		flags = append(flags, "disabled")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

// Target names one resolution as DEVICE:PROFILE:RES.
type Target struct {
	Device     string
	Profile    int
	Resolution int
}

// ParseTarget parses DEVICE:PROFILE:RES. DEVICE may itself contain colons.
func ParseTarget(s string) (Target, error) {
	var t Target

	last := strings.LastIndex(s, ":")
	if last < 0 {
		return t, fmt.Errorf("invalid target %q: want DEVICE:PROFILE:RES", s)
	}
	mid := strings.LastIndex(s[:last], ":")
	if mid < 0 {
		return t, fmt.Errorf("invalid target %q: want DEVICE:PROFILE:RES", s)
	}

	t.Device = strings.TrimSpace(s[:mid])
	if t.Device == "" {
		return t, fmt.Errorf("invalid target %q: empty device", s)
	}

	var err error
	if t.Profile, err = strconv.Atoi(s[mid+1 : last]); err != nil || t.Profile < 0 {
		return t, fmt.Errorf("invalid profile index in %q", s)
	}
	if t.Resolution, err = strconv.Atoi(s[last+1:]); err != nil || t.Resolution < 0 {
		return t, fmt.Errorf("invalid resolution index in %q", s)
	}
	return t, nil
}

// SetActive activates the target resolution and commits the device.
func (c *CLI) SetActive(ctx context.Context, target string) error {
	t, err := ParseTarget(target)
	if err != nil {
		return err
	}

	devices, err := c.client.Devices(ctx)
	if err != nil {
		return err
	}
	device := findDevice(devices, t.Device)
	if device == nil {
		return fmt.Errorf("%w: %s", common.ErrDeviceNotFound, t.Device)
	}

	profile, err := device.Profile(ctx, t.Profile)
	if err != nil {
		return err
	}
	resolutions, err := profile.Resolutions(ctx)
	if err != nil {
		return err
	}

	var res *ratbag.Resolution
	for _, r := range resolutions {
		if r.Index() == t.Resolution {
			res = r
			break
		}
	}
	if res == nil {
		return fmt.Errorf("%w: %s profile %d resolution %d",
			common.ErrResolutionNotFound, device.Name(), t.Profile, t.Resolution)
	}
	if res.IsDisabled() {
		return fmt.Errorf("resolution %d of profile %d is disabled", t.Resolution, t.Profile)
	}

	if err := res.SetActive(ctx); err != nil {
		return fmt.Errorf("failed to activate resolution: %w", err)
	}
	if err := device.Commit(ctx); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "✓ %s profile %d now at %s\n", device.Name(), t.Profile, res.DPI())
	return nil
}

// findDevice matches by system name or by name (case-insensitive).
func findDevice(devices []*ratbag.Device, name string) *ratbag.Device {
	for _, d := range devices {
		if matchDevice(sysname(d.ID()), d.Name(), name) {
			return d
		}
	}
	return nil
}

func matchDevice(sys, display, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	return strings.ToLower(sys) == query || strings.ToLower(display) == query
}

// sysname returns the last element of a device object path.
func sysname(id string) string {
	return path.Base(id)
}

// PrintHelp prints CLI usage help.
func PrintHelp() {
	fmt.Println(`GhostCAT - Configure programmable mice

Usage:
  ghostcat [OPTIONS]

Options:
  --version                    Show version and exit
  --verbose                    Enable verbose logging
  --config PATH                Use an alternative config file
  --list                       List devices, profiles and resolutions
  --set-active DEV:PROF:RES    Activate a resolution and commit
  --tui                        Run the terminal interface
  --help                       Show this help message

Examples:
  ghostcat --list
  ghostcat --set-active hidraw0:0:2
  ghostcat --set-active "Logitech G502 HERO:1:0"
  ghostcat --tui

Notes:
  - ghostcatd must be running (use developer_mode for a session-bus daemon)
  - Run without options to launch the GUI`)
}
