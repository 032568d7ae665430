package ratbag

import (
	"context"
	"fmt"

	"github.com/ghostcat/ghostcat/common"
)

// Device is a mouse managed by the daemon.
type Device struct {
	*object
}

// Name returns the device's display name.
func (d *Device) Name() string { return d.stringProp(PropName) }

// Model returns the device's model identifier, e.g. "usb:046d:c539:0".
func (d *Device) Model() string { return d.stringProp(PropModel) }

// Profiles returns the device's profiles in index order.
func (d *Device) Profiles(ctx context.Context) ([]*Profile, error) {
	paths := d.pathsProp(PropProfiles)
	profiles := make([]*Profile, 0, len(paths))
	for _, p := range paths {
		obj, err := d.client.lookup(ctx, p, ProfileInterface)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, &Profile{object: obj})
	}
	return profiles, nil
}

// ActiveProfile returns the profile whose IsActive flag is set.
func (d *Device) ActiveProfile(ctx context.Context) (*Profile, error) {
	profiles, err := d.Profiles(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		if p.IsActive() {
			return p, nil
		}
	}
	return nil, common.WrapError(common.ErrProfileNotFound, "no active profile on "+d.Name())
}

// Profile returns the profile with the given index.
func (d *Device) Profile(ctx context.Context, index int) (*Profile, error) {
	profiles, err := d.Profiles(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		if p.Index() == index {
			return p, nil
		}
	}
	return nil, common.WrapError(common.ErrProfileNotFound, fmt.Sprintf("profile %d on %s", index, d.Name()))
}

// IsDirty reports whether any profile has changes not yet committed.
func (d *Device) IsDirty(ctx context.Context) (bool, error) {
	profiles, err := d.Profiles(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range profiles {
		if p.IsDirty() {
			return true, nil
		}
	}
	return false, nil
}

// Commit writes pending changes to the hardware.
func (d *Device) Commit(ctx context.Context) error {
	if err := d.call(ctx, "Commit"); err != nil {
		return fmt.Errorf("%w: %w", common.ErrCommitFailed, err)
	}
	return nil
}

// Profile is one of a device's stored configurations.
type Profile struct {
	*object
}

// Index returns the profile's position on the device.
func (p *Profile) Index() int { return int(p.uintProp(PropIndex)) }

// Name returns the profile's name, which may be empty.
func (p *Profile) Name() string { return p.stringProp(PropName) }

// IsActive reports whether this is the device's active profile.
func (p *Profile) IsActive() bool { return p.boolProp(PropIsActive) }

// IsDirty reports whether the profile has uncommitted changes.
func (p *Profile) IsDirty() bool { return p.boolProp(PropIsDirty) }

// IsDisabled reports whether the profile is disabled.
func (p *Profile) IsDisabled() bool { return p.boolProp(PropDisabled) }

// DisplayName returns the name, or "Profile N" when the name is empty.
func (p *Profile) DisplayName() string {
	if name := p.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("Profile %d", p.Index()+1)
}

// Resolutions returns the profile's resolutions in index order.
func (p *Profile) Resolutions(ctx context.Context) ([]*Resolution, error) {
	paths := p.pathsProp(PropResolutions)
	resolutions := make([]*Resolution, 0, len(paths))
	for _, rp := range paths {
		obj, err := p.client.lookup(ctx, rp, ResolutionInterface)
		if err != nil {
			return nil, err
		}
		resolutions = append(resolutions, &Resolution{object: obj})
	}
	return resolutions, nil
}

// Buttons returns the profile's buttons in index order.
func (p *Profile) Buttons(ctx context.Context) ([]*Button, error) {
	paths := p.pathsProp(PropButtons)
	buttons := make([]*Button, 0, len(paths))
	for _, bp := range paths {
		obj, err := p.client.lookup(ctx, bp, ButtonInterface)
		if err != nil {
			return nil, err
		}
		buttons = append(buttons, &Button{object: obj})
	}
	return buttons, nil
}

// SetActive makes this the device's active profile.
func (p *Profile) SetActive(ctx context.Context) error {
	return p.call(ctx, "SetActive")
}
