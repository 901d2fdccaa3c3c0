package units

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestParseDimension(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		feet    float64
		pair    *[2]float64
		wantErr bool
	}{
		{name: "feet-dash-inches", in: `12'-6"`, feet: 12.5},
		{name: "feet-space-inches", in: `10' 4"`, feet: 10 + 4.0/12},
		{name: "feet-inches-compact", in: `12'6"`, feet: 12.5},
		{name: "bare-feet", in: "8'", feet: 8},
		{name: "curly-quote", in: "8’", feet: 8},
		{name: "pair", in: "12x16'", pair: &[2]float64{12, 16}},
		{name: "pair-no-tick", in: "12X16", pair: &[2]float64{12, 16}},
		{name: "garbage", in: "hallway", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "bare-number", in: "100", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDimension(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDimension(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if tt.pair != nil {
				if d.Pair == nil || d.Pair[0] != tt.pair[0] || d.Pair[1] != tt.pair[1] {
					t.Errorf("ParseDimension(%q) pair = %v, want %v", tt.in, d.Pair, tt.pair)
				}
				return
			}
			if !d.Scalar() || !almostEqual(d.Feet, tt.feet) {
				t.Errorf("ParseDimension(%q) = %v, want %v ft", tt.in, d.Feet, tt.feet)
			}
		})
	}
}

func TestParseRatio(t *testing.T) {
	a, b, err := ParseRatio("1:6")
	if err != nil || a != 1 || b != 6 {
		t.Errorf("ParseRatio(1:6) = %v,%v,%v", a, b, err)
	}
	for _, bad := range []string{"", "1", "0:6", "x:y"} {
		if _, _, err := ParseRatio(bad); err == nil {
			t.Errorf("ParseRatio(%q) expected error", bad)
		}
	}
}

func TestParseBrickSize(t *testing.T) {
	l, w, h, err := ParseBrickSize("190x90x90")
	if err != nil || l != 190 || w != 90 || h != 90 {
		t.Errorf("ParseBrickSize = %v,%v,%v,%v", l, w, h, err)
	}
	if _, _, _, err := ParseBrickSize("190x90"); err == nil {
		t.Error("expected error for two-part size")
	}
}

func TestConversions(t *testing.T) {
	if !almostEqual(FeetToMeters(10), 3.048) {
		t.Error("FeetToMeters(10) != 3.048")
	}
	if !almostEqual(MetersToFeet(FeetToMeters(7.5)), 7.5) {
		t.Error("ft->m->ft roundtrip drifted")
	}
	if !almostEqual(MmToMeters(230), 0.23) {
		t.Error("MmToMeters(230) != 0.23")
	}
}
