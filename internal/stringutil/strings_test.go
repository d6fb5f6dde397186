package stringutil

import "testing"

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"7", true},
		{"42", true},
		{"007", true},
		{"", false},
		{"4a", false},
		{"-1", false},
		{"3.5", false},
		{" 7", false},
	}

	for _, tt := range tests {
		if got := IsNumeric(tt.input); got != tt.want {
			t.Errorf("IsNumeric(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNormalizePunct(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"en dash", "Regional Centre – Kochi", "Regional Centre - Kochi"},
		{"em dash", "Centre — Thrissur", "Centre - Thrissur"},
		{"minus sign", "RC − Kollam", "RC - Kollam"},
		{"nbsp", "Regional Centre", "Regional Centre"},
		{"replacement char", "Kochi�", "Kochi "},
		{"plain ascii untouched", "RC - Kannur", "RC - Kannur"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePunct(tt.input); got != tt.want {
				t.Errorf("NormalizePunct(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  BA   History ", "ba history"},
		{"BA\tHistory", "ba history"},
		{"", ""},
		{"MBA", "mba"},
	}

	for _, tt := range tests {
		if got := Fold(tt.input); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// The extracted key must be independent of whether the source used an en-dash
// or a plain hyphen.
func TestCleanCenterKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"en dash prefix", "Regional Centre – Kochi", "kochi"},
		{"plain hyphen prefix", "Regional Centre - Kochi", "kochi"},
		{"american spelling", "Regional Center Kozhikode", "kozhikode"},
		{"no prefix", "Kochi", "kochi"},
		{"nbsp inside", "Regional Centre – Kochi", "kochi"},
		{"bare name upper", "KOCHI", "kochi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCenterKey(tt.input); got != tt.want {
				t.Errorf("CleanCenterKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
