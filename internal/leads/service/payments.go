package service

import (
	"github.com/Iamalive23802/Dream-Trade/internal/leads/domain"
	"github.com/Iamalive23802/Dream-Trade/internal/leads/history"
	"github.com/Iamalive23802/Dream-Trade/platform/apperr"
)

// mergePayments reconciles the client-submitted payment log with the stored
// one and reports which entries got approved by this merge. Both slices are
// chronological. Rules:
//   - an already-approved stored entry is immutable and survives even if the
//     client dropped it
//   - a stored unapproved entry becomes approved only when a financial
//     manager or super admin supplies a non-empty UTR
//   - a fresh entry is never persisted approved, whoever submits it
func mergePayments(existing, incoming []history.PaymentEntry, callerRole string) (merged, approvedNow []history.PaymentEntry, err error) {
	for _, entry := range incoming {
		if err := history.ValidateAmount(entry.Amount); err != nil {
			return nil, nil, err
		}
		if !domain.IsValidPackageTier(entry.PackageTier) {
			return nil, nil, apperr.Validation("unknown package tier")
		}
	}

	size := len(incoming)
	if len(existing) > size {
		size = len(existing)
	}

	for i := 0; i < size; i++ {
		switch {
		case i < len(existing) && existing[i].Approved:
			merged = append(merged, existing[i])
		case i >= len(incoming):
			// Stored unapproved entry dropped by the client.
			continue
		case i < len(existing):
			entry := incoming[i]
			entry.Approved = domain.CanApprovePayments(callerRole) && entry.UTR != ""
			if entry.Approved {
				approvedNow = append(approvedNow, entry)
			}
			merged = append(merged, entry)
		default:
			entry := incoming[i]
			entry.Approved = false
			merged = append(merged, entry)
		}
	}
	return merged, approvedNow, nil
}
