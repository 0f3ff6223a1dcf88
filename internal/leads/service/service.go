package service

import (
	"context"
	"time"

	"github.com/Iamalive23802/Dream-Trade/internal/events"
	"github.com/Iamalive23802/Dream-Trade/internal/leads/domain"
	"github.com/Iamalive23802/Dream-Trade/internal/leads/history"
	"github.com/Iamalive23802/Dream-Trade/internal/leads/transport"
	"github.com/Iamalive23802/Dream-Trade/internal/leads/visibility"
	"github.com/Iamalive23802/Dream-Trade/platform/apperr"
	"github.com/Iamalive23802/Dream-Trade/platform/logger"
	"github.com/Iamalive23802/Dream-Trade/platform/phone"

	"github.com/google/uuid"
)

// LeadStore is the persistence surface the service depends on.
type LeadStore interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error)
	Update(ctx context.Context, lead *domain.Lead) error
	UpdateAssignment(ctx context.Context, id uuid.UUID, assignedTo *uuid.UUID, teamID *uuid.UUID, assignedAt *time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListVisible(ctx context.Context, scope visibility.Scope, filters domain.ListFilters) ([]*domain.Lead, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
	NewAssignedCount(ctx context.Context, userID uuid.UUID, since *time.Time) (int, error)
	CountByStatus(ctx context.Context, scope visibility.Scope) (map[string]int, error)
}

// CallerIdentity is the authenticated caller as seen by the service.
type CallerIdentity struct {
	ID     uuid.UUID
	Role   string
	TeamID *uuid.UUID
}

func (c CallerIdentity) caller() Caller {
	return Caller{ID: c.ID, Role: c.Role}
}

// Service implements lead management.
type Service struct {
	store LeadStore
	dir   UserDirectory
	bus   events.Bus
	log   *logger.Logger
	now   func() time.Time
}

// New creates the lead service.
func New(store LeadStore, dir UserDirectory, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store: store,
		dir:   dir,
		bus:   bus,
		log:   log,
		now:   time.Now,
	}
}

// List returns the leads visible to the caller after applying filters.
func (s *Service) List(ctx context.Context, caller CallerIdentity, filters domain.ListFilters) ([]*domain.Lead, error) {
	scope := visibility.Resolve(caller.Role, caller.ID, caller.TeamID)
	return s.store.ListVisible(ctx, scope, filters)
}

// Get returns one lead if the caller's scope contains it.
func (s *Service) Get(ctx context.Context, caller CallerIdentity, id uuid.UUID) (*domain.Lead, error) {
	lead, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	scope := visibility.Resolve(caller.Role, caller.ID, caller.TeamID)
	if !scope.Contains(lead) {
		// Out-of-scope reads as not found, not forbidden.
		return nil, apperr.NotFound("lead not found")
	}
	return lead, nil
}

// StatusSummary aggregates the caller's visible leads per status.
func (s *Service) StatusSummary(ctx context.Context, caller CallerIdentity) (map[string]int, error) {
	scope := visibility.Resolve(caller.Role, caller.ID, caller.TeamID)
	return s.store.CountByStatus(ctx, scope)
}

// Create validates and persists a new lead.
func (s *Service) Create(ctx context.Context, caller CallerIdentity, req transport.CreateLeadRequest) (*domain.Lead, error) {
	normalized := phone.Normalize(req.Phone)
	if !phone.IsValid(normalized) {
		return nil, apperr.Validation("phone must contain exactly 10 digits").WithDetails(map[string]string{"field": "phone"})
	}

	exists, err := s.store.PhoneExists(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("a lead with this phone number already exists")
	}

	status := req.Status
	if status == "" {
		status = domain.StatusNew
	}
	if !domain.IsKnownStatus(status) {
		return nil, apperr.Validation("unknown status").WithDetails(map[string]string{"field": "status"})
	}

	requested, err := parseRequestedAssignment(req.AssignedTo, req.TeamID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	assignment, err := ResolveCreateAssignment(ctx, s.dir, requested, caller.caller(), now)
	if err != nil {
		return nil, err
	}

	notes, err := history.EncodeStatus(history.ReverseStatus(transport.StatusEntries(req.Notes)))
	if err != nil {
		return nil, err
	}

	// Payment entries submitted at creation are all fresh, never approved.
	payments, _, err := mergePayments(nil, history.ReversePayment(transport.PaymentEntries(req.PaymentHistory)), caller.Role)
	if err != nil {
		return nil, err
	}
	paymentHistory, err := history.EncodePayment(payments)
	if err != nil {
		return nil, err
	}

	date := now
	lead := &domain.Lead{
		ID:                uuid.New(),
		Date:              &date,
		FullName:          req.FullName,
		Phone:             normalized,
		AltNumber:         phone.Normalize(req.AltNumber),
		Email:             req.Email,
		Profession:        req.Profession,
		StateName:         req.StateName,
		InvestmentCapital: req.InvestmentCapital,
		Segment:           req.Segment,
		Gender:            req.Gender,
		DOB:               req.DOB,
		Age:               req.Age,
		Language:          req.Language,
		DeematAccountName: req.DeematAccountName,
		PanCardNumber:     req.PanCardNumber,
		AadharCardNumber:  req.AadharCardNumber,
		Status:            status,
		Tags:              req.Tags,
		Notes:             notes,
		PaymentHistory:    paymentHistory,
		TeamID:            assignment.TeamID,
		AssignedTo:        assignment.AssignedTo,
		AssignedAt:        assignment.AssignedAt,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.store.Create(ctx, lead); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.LeadCreated{
		LeadID:     lead.ID,
		FullName:   lead.FullName,
		AssignedTo: lead.AssignedTo,
		OccurredAt: now,
	})
	if lead.AssignedTo != nil {
		s.bus.Publish(ctx, events.LeadAssigned{
			LeadID:     lead.ID,
			AssignedTo: *lead.AssignedTo,
			AssignedBy: caller.ID,
			TeamID:     lead.TeamID,
			OccurredAt: now,
		})
	}

	return lead, nil
}

// Update edits an existing lead. Assignment changes go through the update
// resolver; history strings are replaced as a whole.
func (s *Service) Update(ctx context.Context, caller CallerIdentity, id uuid.UUID, req transport.UpdateLeadRequest) (*domain.Lead, error) {
	lead, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if !domain.IsKnownStatus(req.Status) {
		return nil, apperr.Validation("unknown status").WithDetails(map[string]string{"field": "status"})
	}

	normalized := phone.Normalize(req.Phone)
	if !phone.IsValid(normalized) {
		return nil, apperr.Validation("phone must contain exactly 10 digits").WithDetails(map[string]string{"field": "phone"})
	}
	if normalized != lead.Phone {
		exists, err := s.store.PhoneExists(ctx, normalized)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperr.Conflict("a lead with this phone number already exists")
		}
	}

	requested, err := parseRequestedAssignment(req.AssignedTo, req.TeamID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	current := Assignment{AssignedTo: lead.AssignedTo, TeamID: lead.TeamID, AssignedAt: lead.AssignedAt}
	assignment, err := ResolveUpdateAssignment(ctx, s.dir, requested, caller.caller(), current, now)
	if err != nil {
		return nil, err
	}

	notes, err := history.EncodeStatus(history.ReverseStatus(transport.StatusEntries(req.Notes)))
	if err != nil {
		return nil, err
	}

	existingPayments := history.DecodePayment(lead.PaymentHistory)
	incomingPayments := history.ReversePayment(transport.PaymentEntries(req.PaymentHistory))
	mergedPayments, approvedNow, err := mergePayments(existingPayments, incomingPayments, caller.Role)
	if err != nil {
		return nil, err
	}
	paymentHistory, err := history.EncodePayment(mergedPayments)
	if err != nil {
		return nil, err
	}

	lead.FullName = req.FullName
	lead.Phone = normalized
	lead.AltNumber = phone.Normalize(req.AltNumber)
	lead.Email = req.Email
	lead.Profession = req.Profession
	lead.StateName = req.StateName
	lead.InvestmentCapital = req.InvestmentCapital
	lead.Segment = req.Segment
	lead.Gender = req.Gender
	lead.DOB = req.DOB
	lead.Age = req.Age
	lead.Language = req.Language
	lead.DeematAccountName = req.DeematAccountName
	lead.PanCardNumber = req.PanCardNumber
	lead.AadharCardNumber = req.AadharCardNumber
	lead.Status = req.Status
	lead.Tags = req.Tags
	lead.Notes = notes
	lead.PaymentHistory = paymentHistory
	lead.UpdatedAt = now

	assigneeChanged := !sameAssignee(current.AssignedTo, assignment.AssignedTo)
	lead.AssignedTo = assignment.AssignedTo
	lead.TeamID = assignment.TeamID
	lead.AssignedAt = assignment.AssignedAt

	if err := s.store.Update(ctx, lead); err != nil {
		return nil, err
	}

	if assigneeChanged && lead.AssignedTo != nil {
		s.bus.Publish(ctx, events.LeadAssigned{
			LeadID:     lead.ID,
			AssignedTo: *lead.AssignedTo,
			AssignedBy: caller.ID,
			TeamID:     lead.TeamID,
			OccurredAt: now,
		})
	}
	for _, entry := range approvedNow {
		s.bus.Publish(ctx, events.PaymentApproved{
			LeadID:     lead.ID,
			ApprovedBy: caller.ID,
			Amount:     entry.Amount,
			OccurredAt: now,
		})
	}

	return lead, nil
}

// Assign hands a lead to a user via the dedicated assign operation.
func (s *Service) Assign(ctx context.Context, caller CallerIdentity, id uuid.UUID, target uuid.UUID) (*domain.Lead, error) {
	lead, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	current := Assignment{AssignedTo: lead.AssignedTo, TeamID: lead.TeamID, AssignedAt: lead.AssignedAt}
	assignment, err := ResolveDedicatedAssignment(ctx, s.dir, target, current, now)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateAssignment(ctx, id, assignment.AssignedTo, assignment.TeamID, assignment.AssignedAt); err != nil {
		return nil, err
	}

	changed := !sameAssignee(current.AssignedTo, assignment.AssignedTo)
	lead.AssignedTo = assignment.AssignedTo
	lead.TeamID = assignment.TeamID
	lead.AssignedAt = assignment.AssignedAt

	if changed && lead.AssignedTo != nil {
		s.bus.Publish(ctx, events.LeadAssigned{
			LeadID:     lead.ID,
			AssignedTo: *lead.AssignedTo,
			AssignedBy: caller.ID,
			TeamID:     lead.TeamID,
			OccurredAt: now,
		})
	}

	return lead, nil
}

// Delete removes a lead. Route-level middleware restricts this to admins.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

// NewAssignedCount counts leads assigned to the caller since their last
// login. Only frontline roles receive notifications; everyone else gets 0.
func (s *Service) NewAssignedCount(ctx context.Context, caller CallerIdentity) (int, error) {
	if !domain.IsFrontlineRole(caller.Role) {
		return 0, nil
	}

	self, err := s.dir.FindUser(ctx, caller.ID)
	if err != nil {
		return 0, err
	}
	if self == nil {
		return 0, apperr.NotFound("user not found")
	}

	return s.store.NewAssignedCount(ctx, caller.ID, self.LastLogin)
}

func parseRequestedAssignment(assignedTo, teamID string) (RequestedAssignment, error) {
	assignee, err := transport.ParseOptionalID(assignedTo)
	if err != nil {
		return RequestedAssignment{}, apperr.Validation("assignedTo must be a valid id")
	}
	team, err := transport.ParseOptionalID(teamID)
	if err != nil {
		return RequestedAssignment{}, apperr.Validation("teamId must be a valid id")
	}
	return RequestedAssignment{AssignedTo: assignee, TeamID: team}, nil
}

func sameAssignee(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
