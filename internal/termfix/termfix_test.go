// ABOUTME: Tests for COLORFGBG background detection
// ABOUTME: Covers light and dark palette indexes plus malformed values

package termfix

import "testing"

func TestHasDarkBackground(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  bool
	}{
		{value: "", want: true},
		{value: "15;0", want: true},
		{value: "0;15", want: false},
		{value: "0;7", want: false},
		{value: "0;default;15", want: false},
		{value: "12;8", want: true},
		{value: "default;default", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			if got := hasDarkBackground(tt.value); got != tt.want {
				t.Errorf("hasDarkBackground(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
