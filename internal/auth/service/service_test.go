package service

import (
	"context"
	"testing"
	"time"

	"github.com/Iamalive23802/Dream-Trade/internal/auth/domain"
	leaddomain "github.com/Iamalive23802/Dream-Trade/internal/leads/domain"
	"github.com/Iamalive23802/Dream-Trade/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type fakeStore struct {
	user           *domain.User
	lastLoginSetAt *time.Time
	countAtUpdate  *int // snapshot of counter calls when last_login advanced
	counter        *fakeCounter
}

func (f *fakeStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeStore) UpdateLastLogin(_ context.Context, _ uuid.UUID, at time.Time) error {
	f.lastLoginSetAt = &at
	if f.counter != nil {
		calls := f.counter.calls
		f.countAtUpdate = &calls
	}
	return nil
}

type fakeCounter struct {
	calls     int
	count     int
	seenSince *time.Time
}

func (f *fakeCounter) NewAssignedCount(_ context.Context, _ uuid.UUID, since *time.Time) (int, error) {
	f.calls++
	f.seenSince = since
	return f.count, nil
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(_ *domain.User, _ time.Time) (string, error) {
	return "signed-token", nil
}

func activeRM(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	lastLogin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.User{
		ID:           uuid.New(),
		Email:        "rm@example.com",
		PasswordHash: string(hash),
		Role:         leaddomain.RoleRelationshipManager,
		Status:       "Active",
		LastLogin:    &lastLogin,
	}
}

func TestLoginCountsBeforeAdvancingLastLogin(t *testing.T) {
	user := activeRM(t, "secret")
	counter := &fakeCounter{count: 4}
	store := &fakeStore{user: user, counter: counter}
	svc := New(store, counter, fakeIssuer{}, logger.New("development"))

	result, err := svc.Login(context.Background(), user.Email, "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.NewLeads != 4 {
		t.Fatalf("new leads = %d, want 4", result.NewLeads)
	}
	// The count must have been taken before last_login moved.
	if store.countAtUpdate == nil || *store.countAtUpdate != 1 {
		t.Fatal("count was not computed before last_login advanced")
	}
	// And it must have used the old last_login as the reference.
	if counter.seenSince == nil || !counter.seenSince.Equal(*user.LastLogin) {
		t.Fatalf("counter reference = %v, want old last_login", counter.seenSince)
	}
	if store.lastLoginSetAt == nil {
		t.Fatal("last_login was never advanced")
	}
}

func TestLoginNonFrontlineGetsZeroCount(t *testing.T) {
	user := activeRM(t, "secret")
	user.Role = leaddomain.RoleAdmin
	counter := &fakeCounter{count: 9}
	store := &fakeStore{user: user, counter: counter}
	svc := New(store, counter, fakeIssuer{}, logger.New("development"))

	result, err := svc.Login(context.Background(), user.Email, "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.NewLeads != 0 {
		t.Fatalf("admin new leads = %d, want 0", result.NewLeads)
	}
	if counter.calls != 0 {
		t.Fatal("counter must not run for non-frontline roles")
	}
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	user := activeRM(t, "secret")
	user.Status = "inactive"
	store := &fakeStore{user: user}
	svc := New(store, &fakeCounter{}, fakeIssuer{}, logger.New("development"))

	if _, err := svc.Login(context.Background(), user.Email, "secret"); err == nil {
		t.Fatal("inactive account must not log in")
	}
	if store.lastLoginSetAt != nil {
		t.Fatal("failed login must not advance last_login")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	user := activeRM(t, "secret")
	store := &fakeStore{user: user}
	svc := New(store, &fakeCounter{}, fakeIssuer{}, logger.New("development"))

	if _, err := svc.Login(context.Background(), user.Email, "wrong"); err == nil {
		t.Fatal("wrong password must fail")
	}
}

func TestLoginAcceptsLegacyPlaintextPassword(t *testing.T) {
	user := activeRM(t, "ignored")
	user.PasswordHash = "legacy-plaintext"
	store := &fakeStore{user: user}
	counter := &fakeCounter{}
	store.counter = counter
	svc := New(store, counter, fakeIssuer{}, logger.New("development"))

	if _, err := svc.Login(context.Background(), user.Email, "legacy-plaintext"); err != nil {
		t.Fatalf("legacy plaintext login failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), user.Email, "other"); err == nil {
		t.Fatal("mismatched plaintext must fail")
	}
}
