package gamechanger

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"", ""},
		{"   ", ""},
		{"Aces 12U", "Aces 12U"},
		{"  Aces   12U  ", "Aces 12U"},
		{"Aces\n\t12U", "Aces 12U"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeText(tt.in); got != tt.expected {
				t.Errorf("NormalizeText(%q) = %q, expected %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		in       string
		expected int
	}{
		{"", 0},
		{"-", 0},
		{"  7 ", 7},
		{"0", 0},
		{"12", 12},
		{"3.0", 3},
		{"4.2", 4},
		{"abc", 0},
		{"1a", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ToInt(tt.in); got != tt.expected {
				t.Errorf("ToInt(%q) = %d, expected %d", tt.in, got, tt.expected)
			}
		})
	}
}

func TestCleanPlayerName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Raiden Sheets", "Raiden Sheets"},
		{"Raiden Sheets (SS, P)", "Raiden Sheets"},
		{"Raiden Sheets #12 (SS)", "Raiden Sheets"},
		{"#4 Declan Soares", "Declan Soares"},
		{"  Mason   Maloney  ", "Mason Maloney"},
		{"(P)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CleanPlayerName(tt.in); got != tt.expected {
				t.Errorf("CleanPlayerName(%q) = %q, expected %q", tt.in, got, tt.expected)
			}
		})
	}
}
