package dpi

import (
	"context"
	"time"

	"github.com/ghostcat/ghostcat/ratbag"
)

// Profile is the profile a page is bound to.
type Profile interface {
	ID() string
	IsActive() bool
}

// Resolution is one DPI row's backing object. The flag accessors return
// cached values; LiveIsActive goes to the daemon.
type Resolution interface {
	ID() string
	Index() int
	IsActive() bool
	IsDisabled() bool
	IsDpiShiftTarget() bool
	LiveIsActive(ctx context.Context) (bool, error)
	SetActive(ctx context.Context) error
	SetDpiShiftTarget(ctx context.Context) error
	SetDisabled(ctx context.Context, disabled bool) error
}

// Button is a device button that may carry a resolution action.
type Button interface {
	ID() string
	Index() int
	ActionType() ratbag.ActionType
	Special() ratbag.Special
}

// EventSource delivers property changes on the control thread.
// *ratbag.Bus implements it.
type EventSource interface {
	Watch(entityID, property string, fn func(value interface{})) (cancel func())
}

// Scheduler runs fn every interval on the control thread until fn returns
// false or cancel is called.
type Scheduler interface {
	Every(interval time.Duration, fn func() bool) (cancel func())
}

// View renders per-row state.
type View interface {
	Render(states []RowState)
}

// LabelSurface is the device map that hosts button labels.
type LabelSurface interface {
	AddLabel(buttonIndex int, text string)
	RemoveLabel(buttonIndex int)
}

// Revealer is a row whose details can be shown or hidden.
type Revealer interface {
	ToggleRevealer()
}
