package ratbag

// Button is a physical button of a profile.
type Button struct {
	*object
}

// Index returns the button's position on the device.
func (b *Button) Index() int { return int(b.uintProp(PropIndex)) }

// Mapping returns the decoded action mapping. Undecodable mappings report
// ActionUnknown.
func (b *Button) Mapping() Mapping {
	v, ok := b.value(PropMapping)
	if !ok {
		return Mapping{Type: ActionUnknown, Special: SpecialInvalid}
	}
	m, _ := decodeMapping(v)
	return m
}

// ActionType returns the kind of action the button is mapped to.
func (b *Button) ActionType() ActionType { return b.Mapping().Type }

// Special returns the special action, or SpecialInvalid.
func (b *Button) Special() Special { return b.Mapping().Special }
