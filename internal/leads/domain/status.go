// Package domain contains the lead bounded context's core types and
// enumerations.
package domain

// Pipeline statuses a lead moves through. The set is fixed; the codec relies
// on it to disambiguate legacy note encodings, so entries must never be
// renamed without a data migration.
const (
	StatusNew                         = "New"
	StatusFreeTrial                   = "Free Trial"
	StatusFreeTrialFollowUp           = "Free Trial – Follow Up"
	StatusFollowUp                    = "Follow Up"
	StatusFollowUpNoResponse          = "Follow Up (No Response)"
	StatusPromiseToPay                = "Promise To Pay"
	StatusPaidClient                  = "Paid Client"
	StatusCallBackWithPresentation    = "Call Back With Presentation"
	StatusCallBackWithoutPresentation = "Call Back Without Presentation"
	StatusNotInterested               = "Not Interested"
	StatusNonTrader                   = "Non Trader"
	StatusLessFunds                   = "Less Funds"
	StatusLanguageBarrier             = "Language Barrier"
	StatusDisconnectedCall            = "Disconnected Call"
	StatusSwitchedOff                 = "Switched Off"
	StatusRinging                     = "Ringing"
	StatusNotReachable                = "Not Reachable"
	StatusOutOfService                = "Out Of Service"
	StatusBusy                        = "Busy"
	StatusIncomingCallsNotAllowed     = "Incoming Calls Not Allowed"
	StatusInvalidNumber               = "Invalid Number"
	StatusLossClient                  = "Loss Client"
	StatusWon                         = "Won"
)

// Statuses lists every pipeline status in presentation order.
var Statuses = []string{
	StatusNew,
	StatusFreeTrial,
	StatusFreeTrialFollowUp,
	StatusFollowUp,
	StatusFollowUpNoResponse,
	StatusPromiseToPay,
	StatusPaidClient,
	StatusCallBackWithPresentation,
	StatusCallBackWithoutPresentation,
	StatusNotInterested,
	StatusNonTrader,
	StatusLessFunds,
	StatusLanguageBarrier,
	StatusDisconnectedCall,
	StatusSwitchedOff,
	StatusRinging,
	StatusNotReachable,
	StatusOutOfService,
	StatusBusy,
	StatusIncomingCallsNotAllowed,
	StatusInvalidNumber,
	StatusLossClient,
	StatusWon,
}

var statusSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Statuses))
	for _, status := range Statuses {
		set[status] = struct{}{}
	}
	return set
}()

// IsKnownStatus reports whether value is one of the fixed pipeline statuses.
func IsKnownStatus(value string) bool {
	_, ok := statusSet[value]
	return ok
}

// Package tiers a payment entry may carry. The empty tier is valid and means
// "not specified".
const (
	PackageTierBasic    = "Basic"
	PackageTierAdvanced = "Advanced"
	PackageTierPremium  = "Premium"
)

// IsValidPackageTier reports whether value is an accepted package tier.
func IsValidPackageTier(value string) bool {
	switch value {
	case "", PackageTierBasic, PackageTierAdvanced, PackageTierPremium:
		return true
	default:
		return false
	}
}
