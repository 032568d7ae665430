package ratbag

import (
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestSpecialValues(t *testing.T) {
	tests := []struct {
		special Special
		want    int64
	}{
		{SpecialUnknown, 1 << 30},
		{SpecialDoubleClick, 1<<30 + 1},
		{SpecialResolutionCycleUp, 1<<30 + 7},
		{SpecialResolutionDefault, 1<<30 + 12},
		{SpecialBatteryLevel, 1<<30 + 18},
	}

	for _, tt := range tests {
		t.Run(tt.special.String(), func(t *testing.T) {
			if int64(tt.special) != tt.want {
				t.Errorf("Special = %d, want %d", int64(tt.special), tt.want)
			}
		})
	}
}

func TestSpecial_IsResolution(t *testing.T) {
	resolution := map[Special]bool{
		SpecialResolutionCycleUp:   true,
		SpecialResolutionCycleDown: true,
		SpecialResolutionUp:        true,
		SpecialResolutionDown:      true,
		SpecialResolutionAlternate: true,
		SpecialResolutionDefault:   true,
	}

	for s := SpecialUnknown; s <= SpecialBatteryLevel; s++ {
		if got := s.IsResolution(); got != resolution[s] {
			t.Errorf("%v.IsResolution() = %v, want %v", s, got, resolution[s])
		}
	}
	if SpecialInvalid.IsResolution() {
		t.Error("SpecialInvalid.IsResolution() = true, want false")
	}
}

func TestSpecial_String(t *testing.T) {
	tests := []struct {
		special Special
		want    string
	}{
		{SpecialResolutionCycleUp, "Cycle Resolution Up"},
		{SpecialResolutionAlternate, "Resolution Switch"},
		{SpecialInvalid, "Invalid"},
		{Special(7), "Special 7"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.special.String(); got != tt.want {
				t.Errorf("Special.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeMapping(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    Mapping
		wantErr bool
	}{
		{
			name:  "special",
			value: []interface{}{uint32(ActionSpecial), dbus.MakeVariant(uint32(SpecialResolutionUp))},
			want:  Mapping{Type: ActionSpecial, Special: SpecialResolutionUp},
		},
		{
			name:  "button",
			value: []interface{}{uint32(ActionButton), dbus.MakeVariant(uint32(3))},
			want:  Mapping{Type: ActionButton, Special: SpecialInvalid, Button: 3},
		},
		{
			name:  "macro",
			value: []interface{}{uint32(ActionMacro), dbus.MakeVariant([]interface{}{})},
			want:  Mapping{Type: ActionMacro, Special: SpecialInvalid},
		},
		{
			name:    "not a struct",
			value:   uint32(2),
			want:    Mapping{Type: ActionUnknown, Special: SpecialInvalid},
			wantErr: true,
		},
		{
			name:    "special with bad payload",
			value:   []interface{}{uint32(ActionSpecial), dbus.MakeVariant("x")},
			want:    Mapping{Type: ActionSpecial, Special: SpecialInvalid},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeMapping(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeMapping() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("decodeMapping() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeDPI(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    DPI
		str     string
		wantErr bool
	}{
		{"single", dbus.MakeVariant(uint32(800)), DPI{X: 800, Y: 800}, "800 DPI", false},
		{"pair", []interface{}{uint32(800), uint32(1600)}, DPI{X: 800, Y: 1600, Separate: true}, "800×1600 DPI", false},
		{"equal pair", []interface{}{uint32(400), uint32(400)}, DPI{X: 400, Y: 400, Separate: true}, "400 DPI", false},
		{"short tuple", []interface{}{uint32(1)}, DPI{}, "", true},
		{"string", "800", DPI{}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeDPI(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeDPI() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("decodeDPI() = %+v, want %+v", got, tt.want)
			}
			if !tt.wantErr && got.String() != tt.str {
				t.Errorf("DPI.String() = %q, want %q", got.String(), tt.str)
			}
		})
	}
}

func TestEncodeDPI(t *testing.T) {
	if got := encodeDPI(DPI{X: 800, Y: 800}); got != uint32(800) {
		t.Errorf("encodeDPI(single) = %#v, want uint32(800)", got)
	}
	if got := encodeDPI(DPI{X: 800, Y: 1600, Separate: true}); got != (dpiPair{X: 800, Y: 1600}) {
		t.Errorf("encodeDPI(pair) = %#v, want dpiPair{800, 1600}", got)
	}
}
