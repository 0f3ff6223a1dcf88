// Package notification consumes domain events for operational visibility.
// Real-time push delivery is out of scope; clients poll the new-count
// endpoint instead. This subscriber gives operators a structured audit trail
// of assignment and approval activity.
package notification

import (
	"context"

	"github.com/Iamalive23802/Dream-Trade/internal/events"
	"github.com/Iamalive23802/Dream-Trade/platform/logger"
)

// Subscriber logs assignment and payment events.
type Subscriber struct {
	log *logger.Logger
}

// Register attaches the subscriber to the bus.
func Register(bus events.Bus, log *logger.Logger) {
	sub := &Subscriber{log: log}
	bus.Subscribe(events.LeadAssigned{}.EventName(), sub.onLeadAssigned)
	bus.Subscribe(events.LeadCreated{}.EventName(), sub.onLeadCreated)
	bus.Subscribe(events.PaymentApproved{}.EventName(), sub.onPaymentApproved)
}

func (s *Subscriber) onLeadAssigned(_ context.Context, event events.Event) {
	assigned, ok := event.(events.LeadAssigned)
	if !ok {
		return
	}
	s.log.Info("lead assigned",
		"lead_id", assigned.LeadID.String(),
		"assigned_to", assigned.AssignedTo.String(),
		"assigned_by", assigned.AssignedBy.String(),
	)
}

func (s *Subscriber) onLeadCreated(_ context.Context, event events.Event) {
	created, ok := event.(events.LeadCreated)
	if !ok {
		return
	}
	s.log.Info("lead created", "lead_id", created.LeadID.String(), "full_name", created.FullName)
}

func (s *Subscriber) onPaymentApproved(_ context.Context, event events.Event) {
	approved, ok := event.(events.PaymentApproved)
	if !ok {
		return
	}
	s.log.Info("payment approved",
		"lead_id", approved.LeadID.String(),
		"approved_by", approved.ApprovedBy.String(),
		"amount", approved.Amount,
	)
}
