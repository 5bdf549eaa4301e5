package utils

import "testing"

func TestNormalizePlate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"kz 123 abc", "KZ123ABC"},
		{"  KZ-123-ABC  ", "KZ123ABC"},
		{"kz123abc", "KZ123ABC"},
		{"A 001 BC 02", "A001BC02"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizePlate(tc.in); got != tc.want {
			t.Errorf("NormalizePlate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
