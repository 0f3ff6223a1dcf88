package phone

import "testing"

func TestNormalizeStripsFormatting(t *testing.T) {
	inputs := []string{"98765-43210", "(987) 654 3210", "9876543210"}
	for _, input := range inputs {
		if got := Normalize(input); got != "9876543210" {
			t.Fatalf("Normalize(%q) = %q, want 9876543210", input, got)
		}
	}
}

func TestNormalizeCountryPrefix(t *testing.T) {
	if got := Normalize("+91 98765 43210"); got != "9876543210" {
		t.Fatalf("Normalize with country prefix = %q, want 9876543210", got)
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("9876543210") {
		t.Fatal("ten digit number should be valid")
	}
	if IsValid("987654321") {
		t.Fatal("nine digit number should be invalid")
	}
	if IsValid("98765432100") {
		t.Fatal("eleven digit number should be invalid")
	}
	if IsValid("98765x3210") {
		t.Fatal("number with letters should be invalid")
	}
}
