package errors

import (
	"strings"
	"testing"
)

func TestValidateSequence(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"dna", "ACGT", false},
		{"protein", "HEAGAWGHEE", false},
		{"lowercase", "acgt", false},
		{"stop codon", "MKV*", false},
		{"at limit", strings.Repeat("A", MaxSequenceLength), false},

		{"too long", strings.Repeat("A", MaxSequenceLength+1), true},
		{"gap", "AC-GT", true},
		{"digit", "AC1GT", true},
		{"space", "AC GT", true},
		{"newline", "AC\nGT", true},
		{"null byte", "AC\x00GT", true},
		{"non-ascii letter", "ACÄGT", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSequence(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSequence(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSequence) {
				t.Errorf("GetCode() = %v, want %v", GetCode(err), ErrCodeInvalidSequence)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	supported := []string{"text", "json", "svg"}
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"text", "text", false},
		{"svg", "svg", false},

		{"empty", "", true},
		{"unknown", "pdf", true},
		{"case sensitive", "JSON", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.input, supported)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default", "", false},
		{"global", "global", false},
		{"semi-global", "semi-global", false},
		{"semiglobal", "semiglobal", false},
		{"mixed case", " Global ", false},

		{"local", "local", true},
		{"typo", "globl", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
