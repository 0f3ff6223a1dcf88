// Package events provides a lightweight in-process event bus for
// cross-module communication without direct coupling.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is implemented by every domain event published on the bus.
type Event interface {
	// EventName returns a stable identifier for the event type.
	EventName() string
}

// LeadCreated is published after a lead has been persisted.
type LeadCreated struct {
	LeadID     uuid.UUID
	FullName   string
	AssignedTo *uuid.UUID
	OccurredAt time.Time
}

func (LeadCreated) EventName() string { return "lead.created" }

// LeadAssigned is published when a lead changes hands, including the
// initial assignment at creation time.
type LeadAssigned struct {
	LeadID     uuid.UUID
	AssignedTo uuid.UUID
	AssignedBy uuid.UUID
	TeamID     *uuid.UUID
	OccurredAt time.Time
}

func (LeadAssigned) EventName() string { return "lead.assigned" }

// PaymentApproved is published when a payment entry is approved.
type PaymentApproved struct {
	LeadID     uuid.UUID
	ApprovedBy uuid.UUID
	Amount     string
	OccurredAt time.Time
}

func (PaymentApproved) EventName() string { return "payment.approved" }
