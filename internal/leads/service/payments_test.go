package service

import (
	"testing"

	"github.com/Iamalive23802/Dream-Trade/internal/leads/domain"
	"github.com/Iamalive23802/Dream-Trade/internal/leads/history"
)

func TestFreshPaymentNeverApproved(t *testing.T) {
	incoming := []history.PaymentEntry{
		{Amount: "5000", Date: "2024-01-01", UTR: "UTR123", Approved: true},
	}

	// Even an approver submitting a UTR cannot approve a brand new entry.
	merged, approvedNow, err := mergePayments(nil, incoming, domain.RoleFinancialManager)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if len(merged) != 1 || merged[0].Approved {
		t.Fatalf("fresh entry persisted approved: %+v", merged)
	}
	if len(approvedNow) != 0 {
		t.Fatalf("approvedNow = %+v, want empty", approvedNow)
	}
}

func TestApproverWithUTRApprovesExistingEntry(t *testing.T) {
	existing := []history.PaymentEntry{
		{Amount: "5000", Date: "2024-01-01", Approved: false},
	}
	incoming := []history.PaymentEntry{
		{Amount: "5000", Date: "2024-01-01", UTR: "UTR123"},
	}

	for _, role := range []string{domain.RoleFinancialManager, domain.RoleSuperAdmin} {
		merged, approvedNow, err := mergePayments(existing, incoming, role)
		if err != nil {
			t.Fatalf("merge failed: %v", err)
		}
		if !merged[0].Approved {
			t.Fatalf("%s with UTR should approve", role)
		}
		if len(approvedNow) != 1 {
			t.Fatalf("approvedNow = %+v, want one entry", approvedNow)
		}
	}
}

func TestNonApproverCannotApprove(t *testing.T) {
	existing := []history.PaymentEntry{{Amount: "5000", Approved: false}}
	incoming := []history.PaymentEntry{{Amount: "5000", UTR: "UTR123"}}

	for _, role := range []string{domain.RoleRelationshipManager, domain.RoleTeamLeader, domain.RoleAdmin} {
		merged, _, err := mergePayments(existing, incoming, role)
		if err != nil {
			t.Fatalf("merge failed: %v", err)
		}
		if merged[0].Approved {
			t.Fatalf("%s must not approve payments", role)
		}
	}
}

func TestEmptyUTRDoesNotApprove(t *testing.T) {
	existing := []history.PaymentEntry{{Amount: "5000", Approved: false}}
	incoming := []history.PaymentEntry{{Amount: "5000", UTR: ""}}

	merged, _, err := mergePayments(existing, incoming, domain.RoleFinancialManager)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if merged[0].Approved {
		t.Fatal("approval requires a non-empty UTR")
	}
}

func TestApprovedEntryIsImmutable(t *testing.T) {
	existing := []history.PaymentEntry{
		{Amount: "5000", Date: "2024-01-01", UTR: "UTR123", Approved: true, CreditedRMName: "Asha"},
	}
	incoming := []history.PaymentEntry{
		{Amount: "1", Date: "tampered", UTR: "other", CreditedRMName: "Mallory"},
	}

	merged, _, err := mergePayments(existing, incoming, domain.RoleSuperAdmin)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if merged[0] != existing[0] {
		t.Fatalf("approved entry was modified: %+v", merged[0])
	}
}

func TestApprovedEntrySurvivesClientDrop(t *testing.T) {
	existing := []history.PaymentEntry{
		{Amount: "5000", Approved: true},
		{Amount: "100", Approved: false},
	}

	merged, _, err := mergePayments(existing, nil, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if len(merged) != 1 || merged[0].Amount != "5000" {
		t.Fatalf("merged = %+v, want only the approved entry kept", merged)
	}
}

func TestMergeRejectsBadAmountOrTier(t *testing.T) {
	if _, _, err := mergePayments(nil, []history.PaymentEntry{{Amount: "abc"}}, domain.RoleAdmin); err == nil {
		t.Fatal("bad amount should be rejected")
	}
	if _, _, err := mergePayments(nil, []history.PaymentEntry{{Amount: "100", PackageTier: "Gold"}}, domain.RoleAdmin); err == nil {
		t.Fatal("unknown package tier should be rejected")
	}
}
