package utils

import "testing"

func TestNormalizePhoneNumber(t *testing.T) {
	tests := []struct {
		in, region, want string
	}{
		{"(650) 253-0000", "US", "+16502530000"},
		{"+44 20 7031 3000", "US", "+442070313000"},
		{"  not a phone ", "US", "not a phone"},
		{"", "US", ""},
	}
	for _, tt := range tests {
		if got := NormalizePhoneNumber(tt.in, tt.region); got != tt.want {
			t.Fatalf("NormalizePhoneNumber(%q,%q) = %q, want %q", tt.in, tt.region, got, tt.want)
		}
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	if err := ValidatePhoneNumber("650-253-0000", "US"); err != nil {
		t.Fatalf("expected valid number, got %v", err)
	}
	if err := ValidatePhoneNumber("123", "US"); err == nil {
		t.Fatalf("expected invalid number")
	}
}
