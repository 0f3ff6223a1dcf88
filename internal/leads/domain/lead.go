package domain

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a prospective client tracked through the sales pipeline.
// Notes and PaymentHistory carry the encoded history logs; the history
// package owns their wire format.
type Lead struct {
	ID                uuid.UUID
	Date              *time.Time
	FullName          string
	Phone             string
	AltNumber         string
	Email             string
	Profession        string
	StateName         string
	InvestmentCapital string
	Segment           string
	Gender            string
	DOB               string
	Age               string
	Language          string
	DeematAccountName string
	PanCardNumber     string
	AadharCardNumber  string
	Status            string
	Tags              string
	Notes             string
	PaymentHistory    string
	TeamID            *uuid.UUID
	AssignedTo        *uuid.UUID
	AssignedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ListFilters are the optional refinements a caller may apply on top of the
// role-derived visibility scope. Each filter ANDs with the rest.
type ListFilters struct {
	Status     string
	AssignedTo *uuid.UUID
	Unassigned bool
	Tag        string
	Name       string
	DateFrom   *time.Time
	DateTo     *time.Time
}
