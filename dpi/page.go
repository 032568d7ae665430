package dpi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ghostcat/ghostcat/common"
	"github.com/ghostcat/ghostcat/ratbag"
)

// Config wires a Page to its profile and front-end.
type Config struct {
	Profile     Profile
	Resolutions []Resolution
	Buttons     []Button

	// Events delivers daemon property changes. Optional.
	Events EventSource
	// Scheduler drives the poll backstop. Optional.
	Scheduler Scheduler
	// View renders row state. Optional.
	View View
	// Labels hosts button labels on the device map. Optional.
	Labels LabelSurface

	PollInterval  time.Duration
	PollTimeout   time.Duration
	InitialActive string
	UpdatePolicy  string

	Logger common.Logger

	// OnHardwareChange is called when a poll finds the active resolution
	// changed without a notification, i.e. a DPI button on the mouse.
	OnHardwareChange func(r Resolution)
}

// Page reconciles the active and shift-target resolution of one profile
// with the daemon. All methods must be called on the control thread.
type Page struct {
	cfg    Config
	logger common.Logger

	ctx    context.Context
	cancel context.CancelFunc

	activeIndex   int
	shiftIndex    int
	activeAssumed bool

	overlay  *LabelOverlay
	expander Expander

	unwatch   []func()
	stopPoll  func()
	closeOnce sync.Once
	closed    bool
}

// NewPage builds the page state, installs button labels, subscribes to
// change events and starts the poll schedule.
func NewPage(cfg Config) *Page {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = common.PollInterval
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = common.PollCallTimeout
	}
	if cfg.InitialActive == "" {
		cfg.InitialActive = common.InitialActiveFirst
	}
	if cfg.UpdatePolicy == "" {
		cfg.UpdatePolicy = common.UpdateOptimistic
	}
	if cfg.Labels == nil {
		cfg.Labels = nopSurface{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = common.GetLogger()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Page{
		cfg:        cfg,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		shiftIndex: -1,
		overlay:    NewLabelOverlay(cfg.Labels),
	}

	p.activeIndex = -1
	for _, r := range cfg.Resolutions {
		if r.IsActive() {
			p.activeIndex = r.Index()
			break
		}
	}
	if p.activeIndex < 0 && cfg.InitialActive == common.InitialActiveFirst {
		p.activeIndex = 0
		p.activeAssumed = true
		logger.Warn("No active resolution reported for profile %s, assuming the first", cfg.Profile.ID())
	}

	for _, r := range cfg.Resolutions {
		if r.IsDpiShiftTarget() {
			p.shiftIndex = r.Index()
			break
		}
	}

	for _, b := range cfg.Buttons {
		p.overlay.Update(b)
	}

	p.subscribe()
	p.ApplyButtonStates()

	if cfg.Scheduler != nil {
		p.stopPoll = cfg.Scheduler.Every(cfg.PollInterval, p.Poll)
	}
	return p
}

func (p *Page) subscribe() {
	events := p.cfg.Events
	if events == nil {
		return
	}

	p.unwatch = append(p.unwatch,
		events.Watch(p.cfg.Profile.ID(), ratbag.PropIsActive, func(interface{}) {
			p.onProfileActiveChanged()
		}))

	for _, r := range p.cfg.Resolutions {
		r := r
		p.unwatch = append(p.unwatch,
			events.Watch(r.ID(), ratbag.PropIsActive, func(v interface{}) {
				p.onActiveChanged(r, flag(v, r.IsActive))
			}),
			events.Watch(r.ID(), ratbag.PropIsDpiShiftTarget, func(v interface{}) {
				p.onShiftTargetChanged(r, flag(v, r.IsDpiShiftTarget))
			}),
			events.Watch(r.ID(), ratbag.PropIsDisabled, func(interface{}) {
				p.onDisabledChanged()
			}),
		)
	}

	for _, b := range p.cfg.Buttons {
		b := b
		p.unwatch = append(p.unwatch,
			events.Watch(b.ID(), ratbag.PropMapping, func(interface{}) {
				p.onButtonChanged(b)
			}))
	}
}

// flag returns v as a bool, falling back to the cached accessor.
func flag(v interface{}, cached func() bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return cached()
}

func (p *Page) onActiveChanged(r Resolution, active bool) {
	if p.closed {
		return
	}
	if active {
		p.activeIndex = r.Index()
		p.activeAssumed = false
	}
	p.ApplyButtonStates()
}

func (p *Page) onShiftTargetChanged(r Resolution, target bool) {
	if p.closed {
		return
	}
	if target {
		p.shiftIndex = r.Index()
	}
	p.ApplyButtonStates()
}

func (p *Page) onProfileActiveChanged() {
	if p.closed {
		return
	}
	p.ApplyButtonStates()
}

func (p *Page) onDisabledChanged() {
	if p.closed {
		return
	}
	p.ApplyButtonStates()
}

func (p *Page) onButtonChanged(b Button) {
	if p.closed {
		return
	}
	p.overlay.Update(b)
}

// UpdateActiveLabels records index as the active resolution and re-renders.
func (p *Page) UpdateActiveLabels(index int) {
	p.activeIndex = index
	p.activeAssumed = false
	p.ApplyButtonStates()
}

// UpdateShiftTarget records index as the shift target and re-renders.
func (p *Page) UpdateShiftTarget(index int) {
	p.shiftIndex = index
	p.ApplyButtonStates()
}

// RequestActive asks the daemon to activate the resolution at index.
// With the optimistic policy the row is shown active immediately and
// rolled back if the call fails; with the confirmed policy the page waits
// for the IsActive notification.
func (p *Page) RequestActive(index int) error {
	r, err := p.resolution(index)
	if err != nil {
		return err
	}
	if p.closed {
		return nil
	}

	prev := p.activeIndex
	optimistic := p.cfg.UpdatePolicy == common.UpdateOptimistic
	if optimistic {
		p.UpdateActiveLabels(index)
	}

	if err := r.SetActive(p.ctx); err != nil {
		p.logger.Error("Failed to activate resolution %d: %v", index, err)
		if optimistic && !p.closed && p.activeIndex == index {
			p.activeIndex = prev
			p.ApplyButtonStates()
		}
		return err
	}
	return nil
}

// RequestShiftTarget asks the daemon to make the resolution at index the
// DPI-shift target, following the same policy as RequestActive.
func (p *Page) RequestShiftTarget(index int) error {
	r, err := p.resolution(index)
	if err != nil {
		return err
	}
	if p.closed {
		return nil
	}

	prev := p.shiftIndex
	optimistic := p.cfg.UpdatePolicy == common.UpdateOptimistic
	if optimistic {
		p.UpdateShiftTarget(index)
	}

	if err := r.SetDpiShiftTarget(p.ctx); err != nil {
		p.logger.Error("Failed to set shift target %d: %v", index, err)
		if optimistic && !p.closed && p.shiftIndex == index {
			p.shiftIndex = prev
			p.ApplyButtonStates()
		}
		return err
	}
	return nil
}

// ToggleDisabled flips the resolution's IsDisabled flag on the daemon.
// The rows update when the change notification arrives.
func (p *Page) ToggleDisabled(index int) error {
	r, err := p.resolution(index)
	if err != nil {
		return err
	}
	if p.closed {
		return nil
	}
	if err := r.SetDisabled(p.ctx, !r.IsDisabled()); err != nil {
		p.logger.Error("Failed to toggle resolution %d: %v", index, err)
		return err
	}
	return nil
}

func (p *Page) resolution(index int) (Resolution, error) {
	for _, r := range p.cfg.Resolutions {
		if r.Index() == index {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: index %d", common.ErrResolutionNotFound, index)
}

// Poll re-reads every resolution's IsActive from the daemon and corrects
// the cached active index if the hardware switched DPI on its own. It
// returns false only once the page is closed.
func (p *Page) Poll() bool {
	if p.closed {
		return false
	}
	if !p.cfg.Profile.IsActive() {
		return true
	}

	for _, r := range p.cfg.Resolutions {
		ctx, cancel := context.WithTimeout(p.ctx, p.cfg.PollTimeout)
		active, err := r.LiveIsActive(ctx)
		cancel()
		if err != nil {
			p.logger.Debug("Poll of %s failed: %v", r.ID(), err)
			return !p.closed
		}
		if p.closed {
			return false
		}
		if active && r.Index() != p.activeIndex {
			p.logger.Debug("Poll found resolution %d active (cached %d)", r.Index(), p.activeIndex)
			p.activeIndex = r.Index()
			p.activeAssumed = false
			p.ApplyButtonStates()
			if p.cfg.OnHardwareChange != nil {
				p.cfg.OnHardwareChange(r)
			}
			break
		}
	}
	return true
}

// ApplyButtonStates recomputes every row's state and hands it to the view.
func (p *Page) ApplyButtonStates() []RowState {
	rows := make([]rowInput, 0, len(p.cfg.Resolutions))
	for _, r := range p.cfg.Resolutions {
		rows = append(rows, rowInput{index: r.Index(), disabled: r.IsDisabled()})
	}
	states := computeRowStates(rows, p.activeIndex, p.shiftIndex, p.cfg.Profile.IsActive())
	if !p.closed && p.cfg.View != nil {
		p.cfg.View.Render(states)
	}
	return states
}

// ActivateRow toggles row expansion.
func (p *Page) ActivateRow(row Revealer) {
	p.expander.Activate(row)
}

// ActiveIndex returns the cached active resolution index, or -1.
func (p *Page) ActiveIndex() int {
	return p.activeIndex
}

// ShiftTargetIndex returns the cached shift-target index, or -1.
func (p *Page) ShiftTargetIndex() int {
	return p.shiftIndex
}

// ActiveAssumed reports whether the active index is the initial guess
// made because no resolution reported itself active.
func (p *Page) ActiveAssumed() bool {
	return p.activeAssumed
}

// Resolutions returns the page's resolutions in profile order.
func (p *Page) Resolutions() []Resolution {
	return p.cfg.Resolutions
}

// Closed reports whether Close has run.
func (p *Page) Closed() bool {
	return p.closed
}

// Close stops the poll and drops every event subscription. It is safe to
// call more than once.
func (p *Page) Close() {
	p.closeOnce.Do(func() {
		p.closed = true
		if p.stopPoll != nil {
			p.stopPoll()
			p.stopPoll = nil
		}
		for _, unwatch := range p.unwatch {
			unwatch()
		}
		p.unwatch = nil
		p.cancel()
	})
}

type nopSurface struct{}

func (nopSurface) AddLabel(int, string) {}
func (nopSurface) RemoveLabel(int)      {}
