package styles

import (
	"testing"
	"time"
)

func TestFormatOffset(t *testing.T) {
	tests := []struct {
		name     string
		clicks   int
		expected string
	}{
		{"zero", 0, "0"},
		{"positive", 3, "+3"},
		{"negative", -7, "-7"},
		{"large", 25, "+25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatOffset(tt.clicks)
			if got != tt.expected {
				t.Errorf("FormatOffset(%d) = %q, want %q",
					tt.clicks, got, tt.expected)
			}
		})
	}
}

func TestFormatInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		expected string
	}{
		{"sub second", 700 * time.Millisecond, "700ms"},
		{"one second", time.Second, "1s"},
		{"fractional seconds", 1500 * time.Millisecond, "1.5s"},
		{"whole seconds", 3 * time.Second, "3s"},
		{"just under a second", 999 * time.Millisecond, "999ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatInterval(tt.interval)
			if got != tt.expected {
				t.Errorf("FormatInterval(%s) = %q, want %q",
					tt.interval, got, tt.expected)
			}
		})
	}
}

func TestFormatClickValues(t *testing.T) {
	tests := []struct {
		name     string
		values   []int
		expected string
	}{
		{"empty", nil, ""},
		{"single", []int{5}, "5"},
		{"several", []int{1, 2, 5}, "1, 2, 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatClickValues(tt.values)
			if got != tt.expected {
				t.Errorf("FormatClickValues(%v) = %q, want %q",
					tt.values, got, tt.expected)
			}
		})
	}
}
