package domain

import (
	"math"
	"testing"
)

func TestCalculatePerMinute(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		duration int
		want     float64
	}{
		{"zero duration", 100, 0, 0},
		{"negative duration", 100, -5, 0},
		{"gold per minute", 12631, 1574, 481.5},
		{"zero value", 0, 600, 0},
		{"one minute", 42, 60, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePerMinute(tt.value, tt.duration)
			if math.Abs(got-tt.want) > 0.05 {
				t.Errorf("CalculatePerMinute(%v, %d) = %v, want %v", tt.value, tt.duration, got, tt.want)
			}
		})
	}
}

func TestFormatPlayerDisplayName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		uuid string
		want string
	}{
		{"name present", "Shade", "b16d580e-087c-4cbd-83ee-e9d8e3a8f84c", "Shade"},
		{"uuid fallback", "", "b16d580e-087c-4cbd-83ee-e9d8e3a8f84c", "user-b16d580e..."},
		{"short uuid", "", "abc", "user-abc..."},
		{"nothing", "", "", "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPlayerDisplayName(tt.in, tt.uuid); got != tt.want {
				t.Errorf("FormatPlayerDisplayName(%q, %q) = %q, want %q", tt.in, tt.uuid, got, tt.want)
			}
		})
	}
}

func TestNormalizeUUID(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"dashed", "B16D580E-087C-4CBD-83EE-E9D8E3A8F84C", "b16d580e-087c-4cbd-83ee-e9d8e3a8f84c", false},
		{"undashed", "b16d580e087c4cbd83eee9d8e3a8f84c", "b16d580e-087c-4cbd-83ee-e9d8e3a8f84c", false},
		{"whitespace", " b16d580e087c4cbd83eee9d8e3a8f84c ", "b16d580e-087c-4cbd-83ee-e9d8e3a8f84c", false},
		{"too short", "abcd", "", true},
		{"not hex", "zzzz580e087c4cbd83eee9d8e3a8f84c", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeUUID(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeUUID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeUUID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
