// Package service implements user account management.
package service

import (
	"context"
	"strings"
	"time"

	leaddomain "github.com/Iamalive23802/Dream-Trade/internal/leads/domain"
	leadsvc "github.com/Iamalive23802/Dream-Trade/internal/leads/service"
	"github.com/Iamalive23802/Dream-Trade/internal/users/domain"
	"github.com/Iamalive23802/Dream-Trade/platform/apperr"
	"github.com/Iamalive23802/Dream-Trade/platform/logger"
	"github.com/Iamalive23802/Dream-Trade/platform/validator"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var validRoles = map[string]struct{}{
	leaddomain.RoleSuperAdmin:          {},
	leaddomain.RoleAdmin:               {},
	leaddomain.RoleTeamLeader:          {},
	leaddomain.RoleRelationshipManager: {},
	leaddomain.RoleFinancialManager:    {},
}

// UserStore is the persistence surface the service depends on.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	ListActiveFrontline(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// CredentialMailer sends a new account its initial credentials. A nil mailer
// disables the mail without disabling account creation.
type CredentialMailer interface {
	SendCredentials(ctx context.Context, to, name, password string) error
}

// CreateUserInput is the admin-supplied account data.
type CreateUserInput struct {
	FullName string
	Email    string
	Password string
	Role     string
	TeamID   *uuid.UUID
}

// UpdateUserInput is the editable slice of an account. An empty Password
// keeps the current one.
type UpdateUserInput struct {
	FullName string
	Email    string
	Password string
	Role     string
	Status   string
	TeamID   *uuid.UUID
}

// Service implements account management.
type Service struct {
	store    UserStore
	mailer   CredentialMailer
	validate *validator.Validator
	log      *logger.Logger
	now      func() time.Time
}

// New creates the users service.
func New(store UserStore, mailer CredentialMailer, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		mailer:   mailer,
		validate: validator.New(),
		log:      log,
		now:      time.Now,
	}
}

// Create provisions an account and mails its credentials. Mail failure does
// not roll the account back; admins can resend manually.
func (s *Service) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := validateRole(input.Role); err != nil {
		return nil, err
	}
	if err := s.validate.Var(input.Email, "required,email"); err != nil {
		return nil, apperr.Validation("a valid email is required")
	}
	if strings.TrimSpace(input.Password) == "" {
		return nil, apperr.Validation("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	now := s.now()
	user := &domain.User{
		ID:           uuid.New(),
		FullName:     strings.TrimSpace(input.FullName),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		Role:         input.Role,
		Status:       domain.StatusActive,
		TeamID:       input.TeamID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendCredentials(ctx, user.Email, user.FullName, input.Password); err != nil {
			s.log.Warn("credential mail failed", "email", user.Email, "error", err.Error())
		}
	}
	return user, nil
}

// Get returns one account.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.store.GetByID(ctx, id)
}

// List returns every account.
func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	return s.store.List(ctx)
}

// Update edits an account.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateRole(input.Role); err != nil {
		return nil, err
	}
	if err := s.validate.Var(input.Email, "required,email"); err != nil {
		return nil, apperr.Validation("a valid email is required")
	}
	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status != domain.StatusActive && status != domain.StatusInactive {
		return nil, apperr.Validation("status must be active or inactive")
	}

	user.FullName = strings.TrimSpace(input.FullName)
	user.Email = strings.ToLower(strings.TrimSpace(input.Email))
	user.Role = input.Role
	user.Status = status
	user.TeamID = input.TeamID
	user.UpdatedAt = s.now()

	user.PasswordHash = ""
	if strings.TrimSpace(input.Password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.store.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func validateRole(role string) error {
	if _, ok := validRoles[role]; !ok {
		return apperr.Validation("unknown role")
	}
	return nil
}

// Directory adapts the users store to the leads context's lookup interfaces.
type Directory struct {
	store UserStore
}

// NewDirectory creates the adapter the leads module consumes.
func NewDirectory(store UserStore) *Directory {
	return &Directory{store: store}
}

// FindUser implements the leads user directory. A missing user is (nil, nil),
// not an error.
func (d *Directory) FindUser(ctx context.Context, id uuid.UUID) (*leadsvc.UserRef, error) {
	user, err := d.store.GetByID(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	ref := toUserRef(user)
	return &ref, nil
}

// ListAssignable implements the bulk import roster.
func (d *Directory) ListAssignable(ctx context.Context) ([]leadsvc.UserRef, error) {
	users, err := d.store.ListActiveFrontline(ctx)
	if err != nil {
		return nil, err
	}
	refs := make([]leadsvc.UserRef, 0, len(users))
	for _, user := range users {
		refs = append(refs, toUserRef(user))
	}
	return refs, nil
}

func toUserRef(user *domain.User) leadsvc.UserRef {
	return leadsvc.UserRef{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		TeamID:    user.TeamID,
		Active:    user.IsActive(),
		LastLogin: user.LastLogin,
	}
}
