package history

import "testing"

func TestPaymentRoundTrip(t *testing.T) {
	entries := []PaymentEntry{
		{Amount: "5000", Date: "2024-01-01", UTR: "UTR123", Approved: true, CreditedRMID: "rm-1", CreditedRMName: "Asha", PackageTier: "Premium"},
		{Amount: "1500.50", Date: "2024-02-01", UTR: "", Approved: false, CreditedRMID: "rm-2", CreditedRMName: "Ravi", PackageTier: ""},
	}

	encoded, err := EncodePayment(entries)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded := DecodePayment(encoded)
	if len(decoded) != len(entries) {
		t.Fatalf("decoded %d entries, want %d", len(decoded), len(entries))
	}
	for i := range entries {
		if decoded[i] != entries[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, decoded[i], entries[i])
		}
	}
}

func TestPaymentApprovedFlagVariants(t *testing.T) {
	cases := []struct {
		name    string
		encoded string
		want    bool
	}{
		{"one", "100__2024-01-01__UTR__1__rm__Asha__Basic", true},
		{"zero", "100__2024-01-01__UTR__0__rm__Asha__Basic", false},
		{"true word", "100__2024-01-01__UTR__true__rm__Asha__Basic", true},
		{"empty flag", "100__2024-01-01__UTR____rm__Asha__Basic", true},
		{"flag missing entirely", "100__2024-01-01__UTR", true},
	}

	for _, tc := range cases {
		decoded := DecodePayment(tc.encoded)
		if len(decoded) != 1 {
			t.Fatalf("%s: decoded %d entries, want 1", tc.name, len(decoded))
		}
		if decoded[0].Approved != tc.want {
			t.Fatalf("%s: approved = %v, want %v", tc.name, decoded[0].Approved, tc.want)
		}
	}
}

func TestPaymentDecodePadsMissingFields(t *testing.T) {
	decoded := DecodePayment("100__2024-01-01__UTR__0")
	if len(decoded) != 1 {
		t.Fatalf("decoded %d entries, want 1", len(decoded))
	}
	entry := decoded[0]
	if entry.CreditedRMID != "" || entry.CreditedRMName != "" || entry.PackageTier != "" {
		t.Fatalf("missing fields should decode empty, got %+v", entry)
	}
}

func TestPaymentEncodeRejectsDelimiters(t *testing.T) {
	if _, err := EncodePayment([]PaymentEntry{{Amount: "100", UTR: "a__b"}}); err == nil {
		t.Fatal("field containing delimiter should be rejected")
	}
}

func TestValidateAmount(t *testing.T) {
	valid := []string{"0", "100", "1500.50", ".5", "100."}
	for _, value := range valid {
		if err := ValidateAmount(value); err != nil {
			t.Fatalf("ValidateAmount(%q) = %v, want nil", value, err)
		}
	}

	invalid := []string{"", "  ", "-5", "1.2.3", "abc", "1,000", "."}
	for _, value := range invalid {
		if err := ValidateAmount(value); err == nil {
			t.Fatalf("ValidateAmount(%q) = nil, want error", value)
		}
	}
}
