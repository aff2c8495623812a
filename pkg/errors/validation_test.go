package errors

import (
	"math"
	"testing"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"positive", 5, false},
		{"tiny positive", 1e-9, false},

		{"zero", 0, true},
		{"negative", -1, true},
		{"NaN", math.NaN(), true},
		{"+Inf", math.Inf(1), true},
		{"-Inf", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("step size", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidArgument) {
				t.Errorf("ValidatePositive(%v) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidArgument)
			}
		})
	}
}

func TestValidateCount(t *testing.T) {
	if err := ValidateCount("count", 1); err != nil {
		t.Errorf("ValidateCount(1) error = %v", err)
	}
	for _, n := range []int{0, -5} {
		if err := ValidateCount("count", n); !Is(err, ErrCodeInvalidArgument) {
			t.Errorf("ValidateCount(%d) error = %v, want INVALID_ARGUMENT", n, err)
		}
	}
}

func TestValidateFinite(t *testing.T) {
	if err := ValidateFinite("anchor", 1, 2, 3); err != nil {
		t.Errorf("ValidateFinite() error = %v", err)
	}
	if err := ValidateFinite("anchor", 1, math.NaN(), 3); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("ValidateFinite(NaN) error = %v, want INVALID_INPUT", err)
	}
}

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "W-101", false},
		{"valid with spaces", "Window Tag", false},
		{"valid unicode", "Fenster_1", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier("feature", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "scenes/level1.json", false},
		{"valid absolute", "/tmp/scene.yaml", false},
		{"valid dotted name", "scene..v2.json", false},
		{"parent directory", "../floor.json", false},
		{"nested parent", "a/../../b/floor.yaml", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "scene\x00.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
