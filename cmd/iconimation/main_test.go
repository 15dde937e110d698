package main

import "testing"

func TestParseCodepoint(t *testing.T) {
	tests := []struct {
		in   string
		want rune
	}{
		{"U+E86C", 0xE86C},
		{"u+41", 'A'},
		{"0x41", 'A'},
		{"0X2665", 0x2665},
		{"65", 65},
		{"5", 5}, // decimal wins over the literal digit character
		{"A", 'A'},
		{"♥", 0x2665},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseCodepoint(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("parseCodepoint(%q) = U+%04X, want U+%04X", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseCodepointRejects(t *testing.T) {
	for _, in := range []string{"", "U+", "U+ZZZZ", "0xGG", "abc"} {
		t.Run(in, func(t *testing.T) {
			if _, err := parseCodepoint(in); err == nil {
				t.Errorf("parseCodepoint(%q) accepted", in)
			}
		})
	}
}

func TestVariationFlag(t *testing.T) {
	var v variationFlags
	if err := v.Set("wght=700"); err != nil {
		t.Fatal(err)
	}
	if err := v.Set("wdth=87.5"); err != nil {
		t.Fatal(err)
	}
	if len(v) != 2 || v[0].Tag != "wght" || v[0].Value != 700 || v[1].Value != 87.5 {
		t.Errorf("variations = %+v", v)
	}

	for _, bad := range []string{"", "wght", "toolong=1", "wght=heavy", "=5"} {
		if err := v.Set(bad); err == nil {
			t.Errorf("Set(%q) accepted", bad)
		}
	}
}
