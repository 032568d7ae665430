package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Target
		wantErr bool
	}{
		{"sysname", "hidraw0:0:2", Target{"hidraw0", 0, 2}, false},
		{"name with spaces", "Logitech G502 HERO:1:0", Target{"Logitech G502 HERO", 1, 0}, false},
		{"name with colon", "dev:a:3:4", Target{"dev:a", 3, 4}, false},
		{"missing parts", "hidraw0:1", Target{}, true},
		{"no colon", "hidraw0", Target{}, true},
		{"empty device", ":1:2", Target{}, true},
		{"bad profile", "hidraw0:x:2", Target{}, true},
		{"bad resolution", "hidraw0:1:", Target{}, true},
		{"negative", "hidraw0:-1:2", Target{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTarget(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTarget(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseTarget(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMarkers(t *testing.T) {
	tests := []struct {
		active, shift, disabled bool
		want                    string
	}{
		{false, false, false, "-"},
		{true, false, false, "active"},
		{false, true, false, "shift"},
		{false, true, true, "shift,disabled"},
		{true, true, false, "active,shift"},
	}

	for _, tt := range tests {
		if got := markers(tt.active, tt.shift, tt.disabled); got != tt.want {
			t.Errorf("markers(%v, %v, %v) = %q, want %q", tt.active, tt.shift, tt.disabled, got, tt.want)
		}
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	lines := []resolutionLine{
		{Device: "G502 (hidraw0)", Profile: 0, ProfileActive: true, Resolution: 0, DPI: "800 DPI", Active: true},
		{Device: "G502 (hidraw0)", Profile: 0, ProfileActive: true, Resolution: 1, DPI: "1600 DPI", Shift: true},
		{Device: "G502 (hidraw0)", Profile: 1, Resolution: 0, DPI: "400×800 DPI", Disabled: true},
	}

	if err := writeTable(&buf, lines); err != nil {
		t.Fatalf("writeTable() error = %v", err)
	}

	out := buf.String()
	rows := strings.Split(strings.TrimSpace(out), "\n")
	if len(rows) != 5 {
		t.Fatalf("writeTable() wrote %d lines, want 5:\n%s", len(rows), out)
	}
	if !strings.HasPrefix(rows[0], "DEVICE") {
		t.Errorf("header = %q, want DEVICE first", rows[0])
	}
	for i, want := range []string{"0*", "active"} {
		if !strings.Contains(rows[2], want) {
			t.Errorf("row 2 missing %q (part %d): %q", want, i, rows[2])
		}
	}
	if !strings.Contains(rows[3], "shift") {
		t.Errorf("row 3 = %q, want shift marker", rows[3])
	}
	if !strings.Contains(rows[4], "disabled") || strings.Contains(rows[4], "1*") {
		t.Errorf("row 4 = %q, want disabled and inactive profile", rows[4])
	}
}

func TestMatchDevice(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"hidraw0", true},
		{"HIDRAW0", true},
		{"logitech g502", true},
		{" Logitech G502 ", true},
		{"hidraw1", false},
		{"G502", false},
	}

	for _, tt := range tests {
		if got := matchDevice("hidraw0", "Logitech G502", tt.query); got != tt.want {
			t.Errorf("matchDevice(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestSysname(t *testing.T) {
	if got := sysname("/org/freedesktop/ratbag1/device/hidraw3"); got != "hidraw3" {
		t.Errorf("sysname() = %q, want %q", got, "hidraw3")
	}
}
