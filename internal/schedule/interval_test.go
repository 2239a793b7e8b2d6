package schedule

import (
	"errors"
	"testing"
)

func TestToMinutes_Anchors(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"23:59", 1439},
		{"08:30", 510},
		{"12:00", 720},
		{"09:15:00", 555}, // seconds ignored
	}
	for _, tt := range tests {
		got, err := ToMinutes(tt.in)
		if err != nil {
			t.Fatalf("ToMinutes(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ToMinutes(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestToMinutes_StrictlyIncreasing(t *testing.T) {
	prev := -1
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			got, err := ToMinutes(FormatMinutes(h*60 + m))
			if err != nil {
				t.Fatalf("unexpected error at %02d:%02d: %v", h, m, err)
			}
			if got <= prev {
				t.Fatalf("ToMinutes not increasing at %02d:%02d: %d <= %d", h, m, got, prev)
			}
			prev = got
		}
	}
}

func TestToMinutes_Malformed(t *testing.T) {
	for _, in := range []string{"", "garbage", "25:00", "12:60", "12", "12:0x", "::", "-1:30", "12:345", "ab:cd", "09:15:zz", "09:15:99", "09:15:5"} {
		if _, err := ToMinutes(in); err == nil {
			t.Errorf("ToMinutes(%q) expected error, got nil", in)
		} else {
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("ToMinutes(%q) expected ValidationError, got %T", in, err)
			}
		}
	}
}

func TestFormatMinutes_Truncation(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{1439, "23:59"},
		{510, "08:30"},
	}
	for _, tt := range tests {
		if got := FormatMinutes(tt.in); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.in, got, tt.want)
		}
		if len(FormatMinutes(tt.in)) != 5 {
			t.Errorf("FormatMinutes(%d) not 5 chars", tt.in)
		}
	}
}

func TestOverlaps_Symmetric(t *testing.T) {
	cases := [][4]int{
		{480, 510, 495, 525},
		{480, 510, 510, 540},
		{0, 1440, 600, 630},
		{600, 630, 600, 630},
	}
	for _, c := range cases {
		ab := Overlaps(c[0], c[1], c[2], c[3])
		ba := Overlaps(c[2], c[3], c[0], c[1])
		if ab != ba {
			t.Errorf("Overlaps not symmetric for %v: %v vs %v", c, ab, ba)
		}
	}
}

func TestOverlaps_HalfOpen(t *testing.T) {
	// Back-to-back intervals share an endpoint but do not overlap.
	if Overlaps(480, 510, 510, 540) {
		t.Error("touching endpoints must not overlap")
	}
	if Overlaps(510, 540, 480, 510) {
		t.Error("touching endpoints must not overlap (reversed)")
	}
	if !Overlaps(480, 511, 510, 540) {
		t.Error("one-minute intersection must overlap")
	}
	// Containment counts as overlap.
	if !Overlaps(480, 540, 495, 510) {
		t.Error("contained interval must overlap")
	}
}
