package service

import (
	"context"
	"strings"
	"testing"

	leaddomain "github.com/Iamalive23802/Dream-Trade/internal/leads/domain"
	"github.com/Iamalive23802/Dream-Trade/internal/users/domain"
	"github.com/Iamalive23802/Dream-Trade/platform/apperr"
	"github.com/Iamalive23802/Dream-Trade/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	users map[uuid.UUID]*domain.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeStore) Create(_ context.Context, user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

func (f *fakeStore) List(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, user := range f.users {
		out = append(out, user)
	}
	return out, nil
}

func (f *fakeStore) ListActiveFrontline(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, user := range f.users {
		if user.IsActive() && leaddomain.IsFrontlineRole(user.Role) {
			out = append(out, user)
		}
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, user *domain.User) error {
	stored, ok := f.users[user.ID]
	if !ok {
		return apperr.NotFound("user not found")
	}
	if user.PasswordHash == "" {
		user.PasswordHash = stored.PasswordHash
	}
	f.users[user.ID] = user
	return nil
}

type recordingMailer struct {
	sentTo []string
}

func (m *recordingMailer) SendCredentials(_ context.Context, to, _, _ string) error {
	m.sentTo = append(m.sentTo, to)
	return nil
}

func TestCreateHashesPasswordAndMailsCredentials(t *testing.T) {
	store := newFakeStore()
	mailer := &recordingMailer{}
	svc := New(store, mailer, logger.New("development"))

	user, err := svc.Create(context.Background(), CreateUserInput{
		FullName: "Asha Patel",
		Email:    "Asha@Example.com",
		Password: "sup3r-secret",
		Role:     leaddomain.RoleRelationshipManager,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.Email != "asha@example.com" {
		t.Fatalf("email = %q, want lowercased", user.Email)
	}
	if user.PasswordHash == "sup3r-secret" || !strings.HasPrefix(user.PasswordHash, "$2") {
		t.Fatalf("password stored unhashed: %q", user.PasswordHash)
	}
	if user.Status != domain.StatusActive {
		t.Fatalf("status = %q, want active", user.Status)
	}
	if len(mailer.sentTo) != 1 || mailer.sentTo[0] != "asha@example.com" {
		t.Fatalf("credentials mailed to %v", mailer.sentTo)
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	svc := New(newFakeStore(), nil, logger.New("development"))

	cases := []CreateUserInput{
		{FullName: "X", Email: "x@example.com", Password: "pw", Role: "owner"},
		{FullName: "X", Email: "not-an-email", Password: "pw", Role: leaddomain.RoleAdmin},
		{FullName: "X", Email: "x@example.com", Password: "  ", Role: leaddomain.RoleAdmin},
	}
	for i, input := range cases {
		if _, err := svc.Create(context.Background(), input); err == nil {
			t.Fatalf("case %d: create should have failed", i)
		}
	}
}

func TestUpdateKeepsPasswordWhenBlank(t *testing.T) {
	store := newFakeStore()
	svc := New(store, nil, logger.New("development"))

	user, err := svc.Create(context.Background(), CreateUserInput{
		FullName: "Ravi",
		Email:    "ravi@example.com",
		Password: "original-pw",
		Role:     leaddomain.RoleTeamLeader,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	originalHash := user.PasswordHash

	updated, err := svc.Update(context.Background(), user.ID, UpdateUserInput{
		FullName: "Ravi K",
		Email:    "ravi@example.com",
		Role:     leaddomain.RoleTeamLeader,
		Status:   "Active",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.PasswordHash != originalHash {
		t.Fatal("blank password must keep the stored hash")
	}
	if updated.Status != domain.StatusActive {
		t.Fatalf("status = %q, want normalized active", updated.Status)
	}
}

func TestDirectoryAdapter(t *testing.T) {
	store := newFakeStore()
	teamID := uuid.New()
	rm := &domain.User{
		ID:       uuid.New(),
		FullName: "Asha",
		Email:    "asha@example.com",
		Role:     leaddomain.RoleRelationshipManager,
		Status:   "Active",
		TeamID:   &teamID,
	}
	admin := &domain.User{
		ID:     uuid.New(),
		Role:   leaddomain.RoleAdmin,
		Status: "active",
	}
	store.users[rm.ID] = rm
	store.users[admin.ID] = admin

	dir := NewDirectory(store)

	ref, err := dir.FindUser(context.Background(), rm.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if ref == nil || !ref.Active || ref.TeamID == nil || *ref.TeamID != teamID {
		t.Fatalf("ref = %+v", ref)
	}

	// Missing users come back as nil, not as an error.
	ref, err = dir.FindUser(context.Background(), uuid.New())
	if err != nil || ref != nil {
		t.Fatalf("missing user = (%+v, %v), want (nil, nil)", ref, err)
	}

	roster, err := dir.ListAssignable(context.Background())
	if err != nil {
		t.Fatalf("roster failed: %v", err)
	}
	if len(roster) != 1 || roster[0].ID != rm.ID {
		t.Fatalf("roster = %+v, want only the frontline RM", roster)
	}
}
