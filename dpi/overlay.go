package dpi

import "github.com/ghostcat/ghostcat/ratbag"

// LabelOverlay keeps one label on the device map for each button mapped
// to a resolution action.
type LabelOverlay struct {
	surface LabelSurface
	labels  map[int]string
}

// NewLabelOverlay creates an overlay drawing on surface.
func NewLabelOverlay(surface LabelSurface) *LabelOverlay {
	return &LabelOverlay{
		surface: surface,
		labels:  make(map[int]string),
	}
}

// Update removes the button's current label, if any, and adds a new one
// when the button is mapped to a resolution special action.
func (o *LabelOverlay) Update(b Button) {
	idx := b.Index()
	if _, ok := o.labels[idx]; ok {
		delete(o.labels, idx)
		o.surface.RemoveLabel(idx)
	}

	if text, ok := LabelFor(b); ok {
		o.labels[idx] = text
		o.surface.AddLabel(idx, text)
	}
}

// Label returns the label currently shown for a button.
func (o *LabelOverlay) Label(buttonIndex int) (string, bool) {
	text, ok := o.labels[buttonIndex]
	return text, ok
}

// Len returns the number of labels shown.
func (o *LabelOverlay) Len() int {
	return len(o.labels)
}

// LabelFor returns the overlay text for b and whether it gets one.
func LabelFor(b Button) (string, bool) {
	if b.ActionType() != ratbag.ActionSpecial {
		return "", false
	}
	special := b.Special()
	if !special.IsResolution() {
		return "", false
	}
	return special.String(), true
}
