package doctorRepo

import "testing"

func TestNormalizeEmail(t *testing.T) {
	tests := map[string]string{
		"Doc@Example.com":    "doc@example.com",
		"  rao@clinic.org  ": "rao@clinic.org",
		"":                   "",
	}
	for in, want := range tests {
		if got := normalizeEmail(in); got != want {
			t.Errorf("normalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}
