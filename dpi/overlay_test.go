package dpi

import (
	"testing"

	"github.com/ghostcat/ghostcat/ratbag"
)

func TestLabelFor(t *testing.T) {
	tests := []struct {
		name    string
		action  ratbag.ActionType
		special ratbag.Special
		want    string
		wantOK  bool
	}{
		{"cycle up", ratbag.ActionSpecial, ratbag.SpecialResolutionCycleUp, "Cycle Resolution Up", true},
		{"cycle down", ratbag.ActionSpecial, ratbag.SpecialResolutionCycleDown, "Cycle Resolution Down", true},
		{"default", ratbag.ActionSpecial, ratbag.SpecialResolutionDefault, "Default Resolution", true},
		{"wheel", ratbag.ActionSpecial, ratbag.SpecialWheelUp, "", false},
		{"profile", ratbag.ActionSpecial, ratbag.SpecialProfileCycleUp, "", false},
		{"plain button", ratbag.ActionButton, ratbag.SpecialResolutionUp, "", false},
		{"macro", ratbag.ActionMacro, ratbag.SpecialInvalid, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeButton{index: 1, action: tt.action, special: tt.special}
			got, ok := LabelFor(b)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("LabelFor() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLabelOverlay_ToggleSequence(t *testing.T) {
	surface := &fakeSurface{labels: make(map[int]string), t: t}
	overlay := NewLabelOverlay(surface)
	b := &fakeButton{index: 5, action: ratbag.ActionButton, special: ratbag.SpecialInvalid}

	sequence := []struct {
		action  ratbag.ActionType
		special ratbag.Special
	}{
		{ratbag.ActionSpecial, ratbag.SpecialResolutionUp},
		{ratbag.ActionSpecial, ratbag.SpecialResolutionDown},
		{ratbag.ActionSpecial, ratbag.SpecialWheelDown},
		{ratbag.ActionSpecial, ratbag.SpecialResolutionAlternate},
		{ratbag.ActionSpecial, ratbag.SpecialResolutionAlternate},
		{ratbag.ActionKey, ratbag.SpecialInvalid},
		{ratbag.ActionSpecial, ratbag.SpecialResolutionCycleDown},
	}

	for i, step := range sequence {
		b.action = step.action
		b.special = step.special
		overlay.Update(b)

		want, wantOK := LabelFor(b)
		got, ok := overlay.Label(5)
		if ok != wantOK || got != want {
			t.Errorf("step %d: Label() = %q, %v, want %q, %v", i, got, ok, want, wantOK)
		}
		if surface.labels[5] != want {
			t.Errorf("step %d: surface label = %q, want %q", i, surface.labels[5], want)
		}
		if overlay.Len() > 1 || len(surface.labels) > 1 {
			t.Errorf("step %d: %d labels, want at most 1", i, len(surface.labels))
		}
	}
}
