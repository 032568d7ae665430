package ratbag

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// String returns the lowercase name of the action type.
func (a ActionType) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionButton:
		return "button"
	case ActionSpecial:
		return "special"
	case ActionKey:
		return "key"
	case ActionMacro:
		return "macro"
	default:
		return "unknown"
	}
}

var specialDescriptions = map[Special]string{
	SpecialUnknown:             "Unknown",
	SpecialDoubleClick:         "Doubleclick",
	SpecialWheelLeft:           "Wheel Left",
	SpecialWheelRight:          "Wheel Right",
	SpecialWheelUp:             "Wheel Up",
	SpecialWheelDown:           "Wheel Down",
	SpecialRatchetModeSwitch:   "Ratchet Mode",
	SpecialResolutionCycleUp:   "Cycle Resolution Up",
	SpecialResolutionCycleDown: "Cycle Resolution Down",
	SpecialResolutionUp:        "Resolution Up",
	SpecialResolutionDown:      "Resolution Down",
	SpecialResolutionAlternate: "Resolution Switch",
	SpecialResolutionDefault:   "Default Resolution",
	SpecialProfileCycleUp:      "Cycle Profile Up",
	SpecialProfileCycleDown:    "Cycle Profile Down",
	SpecialProfileUp:           "Profile Up",
	SpecialProfileDown:         "Profile Down",
	SpecialSecondMode:          "Second Mode",
	SpecialBatteryLevel:        "Battery Level",
}

// String returns the human-readable description shown on the device map.
func (s Special) String() string {
	if d, ok := specialDescriptions[s]; ok {
		return d
	}
	if s == SpecialInvalid {
		return "Invalid"
	}
	return fmt.Sprintf("Special %d", int64(s))
}

// IsResolution reports whether s is one of the six resolution actions.
func (s Special) IsResolution() bool {
	switch s {
	case SpecialResolutionCycleUp, SpecialResolutionCycleDown,
		SpecialResolutionUp, SpecialResolutionDown,
		SpecialResolutionAlternate, SpecialResolutionDefault:
		return true
	}
	return false
}

// Mapping is a decoded button mapping.
type Mapping struct {
	Type ActionType
	// Special is SpecialInvalid unless Type is ActionSpecial.
	Special Special
	// Button is the logical button number for ActionButton.
	Button uint32
}

// DPI is a resolution value. Devices with separate axes report X and Y;
// everything else reports X == Y.
type DPI struct {
	X, Y     uint32
	Separate bool
}

// String formats the value the way the resolution rows show it.
func (d DPI) String() string {
	if d.Separate && d.X != d.Y {
		return fmt.Sprintf("%d×%d DPI", d.X, d.Y)
	}
	return fmt.Sprintf("%d DPI", d.X)
}

// decodeMapping decodes a Button.Mapping value of signature (uv).
func decodeMapping(v interface{}) (Mapping, error) {
	m := Mapping{Type: ActionUnknown, Special: SpecialInvalid}

	fields, ok := v.([]interface{})
	if !ok || len(fields) != 2 {
		return m, fmt.Errorf("unexpected mapping value %T", v)
	}
	actionType, ok := toUint32(fields[0])
	if !ok {
		return m, fmt.Errorf("unexpected action type %T", fields[0])
	}
	m.Type = ActionType(actionType)

	inner := fields[1]
	if variant, ok := inner.(dbus.Variant); ok {
		inner = variant.Value()
	}

	switch m.Type {
	case ActionSpecial:
		switch s := inner.(type) {
		case uint32:
			m.Special = Special(s)
		case int32:
			m.Special = Special(s)
		default:
			return m, fmt.Errorf("unexpected special value %T", inner)
		}
	case ActionButton:
		if b, ok := toUint32(inner); ok {
			m.Button = b
		}
	}
	return m, nil
}

// decodeDPI decodes a Resolution.Resolution value: either u or (uu).
func decodeDPI(v interface{}) (DPI, error) {
	if variant, ok := v.(dbus.Variant); ok {
		v = variant.Value()
	}
	switch val := v.(type) {
	case uint32:
		return DPI{X: val, Y: val}, nil
	case []interface{}:
		if len(val) != 2 {
			return DPI{}, fmt.Errorf("unexpected resolution tuple of length %d", len(val))
		}
		x, okX := toUint32(val[0])
		y, okY := toUint32(val[1])
		if !okX || !okY {
			return DPI{}, fmt.Errorf("unexpected resolution tuple %v", val)
		}
		return DPI{X: x, Y: y, Separate: true}, nil
	default:
		return DPI{}, fmt.Errorf("unexpected resolution value %T", v)
	}
}

// dpiPair marshals as the (uu) struct.
type dpiPair struct {
	X, Y uint32
}

// encodeDPI is the inverse of decodeDPI.
func encodeDPI(d DPI) interface{} {
	if d.Separate {
		return dpiPair{X: d.X, Y: d.Y}
	}
	return d.X
}

func toUint32(v interface{}) (uint32, bool) {
	switch n := v.(type) {
	case uint32:
		return n, true
	case int32:
		if n < 0 {
			return 0, false
		}
		return uint32(n), true
	case uint64:
		return uint32(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint32(n), true
	}
	return 0, false
}
