// Package transport defines the wire representations for the leads API.
// Persisted names are snake_case; the JSON surface is camelCase.
package transport

import (
	"strings"
	"time"

	"github.com/Iamalive23802/Dream-Trade/internal/leads/domain"
	"github.com/Iamalive23802/Dream-Trade/internal/leads/history"
	"github.com/Iamalive23802/Dream-Trade/internal/leads/visibility"

	"github.com/google/uuid"
)

// StatusEntryDTO is one status/note record, newest first on the JSON surface.
type StatusEntryDTO struct {
	Status    string `json:"status"`
	Note      string `json:"note"`
	Timestamp string `json:"timestamp"`
}

// PaymentEntryDTO is one payment record, newest first on the JSON surface.
type PaymentEntryDTO struct {
	Amount         string `json:"amount"`
	Date           string `json:"date"`
	UTR            string `json:"utr"`
	Approved       bool   `json:"approved"`
	AssignedTo     string `json:"assignedTo"`
	AssignedToName string `json:"assignedToName"`
	PackageTier    string `json:"packageTier"`
}

// CreateLeadRequest is the payload for creating a lead.
type CreateLeadRequest struct {
	FullName          string            `json:"fullName" binding:"required"`
	Phone             string            `json:"phone" binding:"required"`
	AltNumber         string            `json:"altNumber"`
	Email             string            `json:"email"`
	Profession        string            `json:"profession"`
	StateName         string            `json:"stateName"`
	InvestmentCapital string            `json:"investmentCapital"`
	Segment           string            `json:"segment"`
	Gender            string            `json:"gender"`
	DOB               string            `json:"dob"`
	Age               string            `json:"age"`
	Language          string            `json:"language"`
	DeematAccountName string            `json:"deematAccountName"`
	PanCardNumber     string            `json:"panCardNumber"`
	AadharCardNumber  string            `json:"aadharCardNumber"`
	Status            string            `json:"status"`
	Tags              string            `json:"tags"`
	AssignedTo        string            `json:"assignedTo"`
	TeamID            string            `json:"teamId"`
	Notes             []StatusEntryDTO  `json:"notes"`
	PaymentHistory    []PaymentEntryDTO `json:"paymentHistory"`
}

// UpdateLeadRequest is the payload for editing a lead. Status is required;
// the update path has no meaningful default for it.
type UpdateLeadRequest struct {
	FullName          string            `json:"fullName" binding:"required"`
	Phone             string            `json:"phone" binding:"required"`
	AltNumber         string            `json:"altNumber"`
	Email             string            `json:"email"`
	Profession        string            `json:"profession"`
	StateName         string            `json:"stateName"`
	InvestmentCapital string            `json:"investmentCapital"`
	Segment           string            `json:"segment"`
	Gender            string            `json:"gender"`
	DOB               string            `json:"dob"`
	Age               string            `json:"age"`
	Language          string            `json:"language"`
	DeematAccountName string            `json:"deematAccountName"`
	PanCardNumber     string            `json:"panCardNumber"`
	AadharCardNumber  string            `json:"aadharCardNumber"`
	Status            string            `json:"status" binding:"required"`
	Tags              string            `json:"tags"`
	AssignedTo        string            `json:"assignedTo"`
	TeamID            string            `json:"teamId"`
	Notes             []StatusEntryDTO  `json:"notes"`
	PaymentHistory    []PaymentEntryDTO `json:"paymentHistory"`
}

// AssignLeadRequest targets the dedicated assign operation.
type AssignLeadRequest struct {
	AssignedTo string `json:"assignedTo" binding:"required"`
}

// NewCountResponse carries the new-assignment count.
type NewCountResponse struct {
	Count int `json:"count"`
}

// LeadResponse is the full lead representation returned to clients.
type LeadResponse struct {
	ID                uuid.UUID         `json:"id"`
	Date              *time.Time        `json:"date"`
	FullName          string            `json:"fullName"`
	Phone             string            `json:"phone"`
	AltNumber         string            `json:"altNumber"`
	Email             string            `json:"email"`
	Profession        string            `json:"profession"`
	StateName         string            `json:"stateName"`
	InvestmentCapital string            `json:"investmentCapital"`
	Segment           string            `json:"segment"`
	Gender            string            `json:"gender"`
	DOB               string            `json:"dob"`
	Age               string            `json:"age"`
	Language          string            `json:"language"`
	DeematAccountName string            `json:"deematAccountName"`
	PanCardNumber     string            `json:"panCardNumber"`
	AadharCardNumber  string            `json:"aadharCardNumber"`
	Status            string            `json:"status"`
	Tags              string            `json:"tags"`
	TeamID            *uuid.UUID        `json:"teamId"`
	AssignedTo        *uuid.UUID        `json:"assignedTo"`
	AssignedAt        *time.Time        `json:"assignedAt"`
	Notes             []StatusEntryDTO  `json:"notes"`
	PaymentHistory    []PaymentEntryDTO `json:"paymentHistory"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// ToLeadResponse maps a lead for the given caller role. The phone is masked
// per role and both history logs are flipped to newest-first order.
func ToLeadResponse(lead *domain.Lead, callerRole string) LeadResponse {
	return LeadResponse{
		ID:                lead.ID,
		Date:              lead.Date,
		FullName:          lead.FullName,
		Phone:             visibility.MaskPhone(lead.Phone, callerRole),
		AltNumber:         visibility.MaskPhone(lead.AltNumber, callerRole),
		Email:             lead.Email,
		Profession:        lead.Profession,
		StateName:         lead.StateName,
		InvestmentCapital: lead.InvestmentCapital,
		Segment:           lead.Segment,
		Gender:            lead.Gender,
		DOB:               lead.DOB,
		Age:               lead.Age,
		Language:          lead.Language,
		DeematAccountName: lead.DeematAccountName,
		PanCardNumber:     lead.PanCardNumber,
		AadharCardNumber:  lead.AadharCardNumber,
		Status:            lead.Status,
		Tags:              lead.Tags,
		TeamID:            lead.TeamID,
		AssignedTo:        lead.AssignedTo,
		AssignedAt:        lead.AssignedAt,
		Notes:             toStatusDTOs(history.ReverseStatus(history.DecodeStatus(lead.Notes))),
		PaymentHistory:    toPaymentDTOs(history.ReversePayment(history.DecodePayment(lead.PaymentHistory))),
		CreatedAt:         lead.CreatedAt,
		UpdatedAt:         lead.UpdatedAt,
	}
}

// ToLeadResponses maps a list of leads for the given caller role.
func ToLeadResponses(leads []*domain.Lead, callerRole string) []LeadResponse {
	out := make([]LeadResponse, 0, len(leads))
	for _, lead := range leads {
		out = append(out, ToLeadResponse(lead, callerRole))
	}
	return out
}

func toStatusDTOs(entries []history.StatusEntry) []StatusEntryDTO {
	out := make([]StatusEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, StatusEntryDTO{Status: entry.Status, Note: entry.Note, Timestamp: entry.Timestamp})
	}
	return out
}

func toPaymentDTOs(entries []history.PaymentEntry) []PaymentEntryDTO {
	out := make([]PaymentEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, PaymentEntryDTO{
			Amount:         entry.Amount,
			Date:           entry.Date,
			UTR:            entry.UTR,
			Approved:       entry.Approved,
			AssignedTo:     entry.CreditedRMID,
			AssignedToName: entry.CreditedRMName,
			PackageTier:    entry.PackageTier,
		})
	}
	return out
}

// StatusEntries converts the newest-first JSON list to codec entries in the
// same order; callers reverse before encoding.
func StatusEntries(dtos []StatusEntryDTO) []history.StatusEntry {
	out := make([]history.StatusEntry, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, history.StatusEntry{Status: dto.Status, Note: dto.Note, Timestamp: dto.Timestamp})
	}
	return out
}

// PaymentEntries converts the newest-first JSON list to codec entries in the
// same order.
func PaymentEntries(dtos []PaymentEntryDTO) []history.PaymentEntry {
	out := make([]history.PaymentEntry, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, history.PaymentEntry{
			Amount:         dto.Amount,
			Date:           dto.Date,
			UTR:            dto.UTR,
			Approved:       dto.Approved,
			CreditedRMID:   dto.AssignedTo,
			CreditedRMName: dto.AssignedToName,
			PackageTier:    dto.PackageTier,
		})
	}
	return out
}

// ParseOptionalID normalizes an optional id field: blank means absent.
func ParseOptionalID(value string) (*uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
