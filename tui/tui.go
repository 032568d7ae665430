package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ghostcat/ghostcat/common"
	"github.com/ghostcat/ghostcat/config"
	"github.com/ghostcat/ghostcat/dpi"
	"github.com/ghostcat/ghostcat/ratbag"
	"golang.org/x/term"
)

// Run shows the active profile of the first device until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return common.ErrNotTerminal
	}

	// Dispatches blocked on a program that never ran are released when
	// Run returns.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := emptyModel()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	client, err := ratbag.NewClient(ctx, ratbag.Options{
		DeveloperMode: cfg.DeveloperMode,
		APIVersion:    cfg.APIVersion,
		Dispatch:      dispatcher(p),
		Logger:        common.GetLogger(),
	})
	if err != nil {
		return err
	}
	defer client.Close()

	opts, err := load(ctx, client, cfg)
	if err != nil {
		return err
	}
	m.bind(opts)

	_, err = p.Run()
	m.page.Close()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// dispatcher hands fn to the program's update loop. It returns without
// running fn once the program's context is done.
func dispatcher(p *tea.Program) ratbag.Dispatcher {
	return func(fn func()) {
		p.Send(dispatchMsg(fn))
	}
}

// load picks the first device's active profile.
func load(ctx context.Context, client *ratbag.Client, cfg *config.Config) (options, error) {
	loadCtx, cancel := context.WithTimeout(ctx, common.CallTimeout)
	defer cancel()

	devices, err := client.Devices(loadCtx)
	if err != nil {
		return options{}, err
	}
	if len(devices) == 0 {
		return options{}, common.ErrDeviceNotFound
	}
	device := devices[0]

	profile, err := device.ActiveProfile(loadCtx)
	if errors.Is(err, common.ErrProfileNotFound) {
		common.LogWarn("%s reports no active profile, showing profile 0", device.Name())
		profile, err = device.Profile(loadCtx, 0)
	}
	if err != nil {
		return options{}, err
	}

	resolutions, err := profile.Resolutions(loadCtx)
	if err != nil {
		return options{}, err
	}
	buttons, err := profile.Buttons(loadCtx)
	if err != nil {
		return options{}, err
	}

	opts := options{
		Title:       fmt.Sprintf("%s · %s", device.Name(), profile.DisplayName()),
		Profile:     profile,
		Resolutions: make([]resolution, len(resolutions)),
		Buttons:     make([]dpi.Button, len(buttons)),
		Events:      client.Bus(),
		Config:      cfg,
		Commit:      device.Commit,
		Logger:      common.GetLogger(),
	}
	for i, r := range resolutions {
		opts.Resolutions[i] = r
	}
	for i, b := range buttons {
		opts.Buttons[i] = b
	}
	return opts, nil
}
