package ratbag

import (
	"context"
	"fmt"
)

// Resolution is one DPI setting of a profile.
type Resolution struct {
	*object
}

// Index returns the resolution's stable position in its profile.
func (r *Resolution) Index() int { return int(r.uintProp(PropIndex)) }

// IsActive reports the cached active flag.
func (r *Resolution) IsActive() bool { return r.boolProp(PropIsActive) }

// IsDisabled reports whether the resolution is skipped when cycling.
func (r *Resolution) IsDisabled() bool { return r.boolProp(PropIsDisabled) }

// IsDpiShiftTarget reports whether the DPI-shift button switches to this
// resolution while held.
func (r *Resolution) IsDpiShiftTarget() bool { return r.boolProp(PropIsDpiShiftTarget) }

// DPI returns the configured value.
func (r *Resolution) DPI() DPI {
	v, ok := r.value(PropResolution)
	if !ok {
		return DPI{}
	}
	d, err := decodeDPI(v)
	if err != nil {
		return DPI{}
	}
	return d
}

// SupportedDPIs returns the values the hardware accepts.
func (r *Resolution) SupportedDPIs() []uint32 {
	v, _ := r.value(PropResolutions)
	values, _ := v.([]uint32)
	return values
}

// LiveIsActive reads IsActive straight from the daemon. ctx should carry
// a short deadline; the daemon is not auto-started.
func (r *Resolution) LiveIsActive(ctx context.Context) (bool, error) {
	v, err := r.live(ctx, PropIsActive)
	if err != nil {
		return false, err
	}
	active, ok := v.Value().(bool)
	if !ok {
		return false, fmt.Errorf("IsActive of %s is %T, not bool", r.ID(), v.Value())
	}
	return active, nil
}

// SetActive makes this the profile's active resolution.
func (r *Resolution) SetActive(ctx context.Context) error {
	return r.call(ctx, "SetActive")
}

// SetDpiShiftTarget makes this the profile's DPI-shift target.
func (r *Resolution) SetDpiShiftTarget(ctx context.Context) error {
	return r.call(ctx, "SetDpiShiftTarget")
}

// SetDisabled writes IsDisabled.
func (r *Resolution) SetDisabled(ctx context.Context, disabled bool) error {
	return r.set(ctx, PropIsDisabled, disabled)
}

// SetDPI writes the resolution value.
func (r *Resolution) SetDPI(ctx context.Context, d DPI) error {
	return r.set(ctx, PropResolution, encodeDPI(d))
}
