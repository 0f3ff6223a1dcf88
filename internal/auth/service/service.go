// Package service implements login for the auth context.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/Iamalive23802/Dream-Trade/internal/auth/domain"
	leaddomain "github.com/Iamalive23802/Dream-Trade/internal/leads/domain"
	"github.com/Iamalive23802/Dream-Trade/platform/apperr"
	"github.com/Iamalive23802/Dream-Trade/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AccountStore is the persistence surface the login flow needs.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// AssignmentCounter counts leads assigned to a user after a reference time.
// Implemented by the leads repository.
type AssignmentCounter interface {
	NewAssignedCount(ctx context.Context, userID uuid.UUID, since *time.Time) (int, error)
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(user *domain.User, now time.Time) (string, error)
}

// LoginResult is everything the login endpoint returns.
type LoginResult struct {
	Token    string
	User     *domain.User
	NewLeads int
}

// Service implements authentication.
type Service struct {
	store   AccountStore
	counter AssignmentCounter
	issuer  TokenIssuer
	log     *logger.Logger
	now     func() time.Time
}

// New creates the auth service.
func New(store AccountStore, counter AssignmentCounter, issuer TokenIssuer, log *logger.Logger) *Service {
	return &Service{
		store:   store,
		counter: counter,
		issuer:  issuer,
		log:     log,
		now:     time.Now,
	}
}

// Login authenticates the account and returns a token plus the number of
// leads assigned since the previous login. The count MUST be computed with
// the old last_login before the marker advances; computing it after would
// hide exactly the leads the notification exists to announce.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.store.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil || !verifyPassword(user.PasswordHash, password) {
		s.log.AuthEvent("login", email, false, "invalid credentials")
		return nil, apperr.Unauthorized("invalid email or password")
	}
	if !user.IsActive() {
		s.log.AuthEvent("login", email, false, "account inactive")
		return nil, apperr.Forbidden("account is inactive")
	}

	newLeads := 0
	if leaddomain.IsFrontlineRole(user.Role) {
		newLeads, err = s.counter.NewAssignedCount(ctx, user.ID, user.LastLogin)
		if err != nil {
			return nil, err
		}
	}

	now := s.now()
	if err := s.store.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(user, now)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to issue token", err)
	}

	s.log.AuthEvent("login", email, true, "")
	return &LoginResult{Token: token, User: user, NewLeads: newLeads}, nil
}

// verifyPassword accepts bcrypt hashes and, for accounts migrated from the
// old system, a stored plaintext password. Plaintext rows are identified by
// the missing bcrypt prefix.
func verifyPassword(stored, password string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return stored != "" && stored == password
}
