package service

import (
	"context"
	"testing"
	"time"

	"github.com/Iamalive23802/Dream-Trade/internal/leads/domain"

	"github.com/google/uuid"
)

type fakeDirectory struct {
	users map[uuid.UUID]*UserRef
}

func (f *fakeDirectory) FindUser(_ context.Context, id uuid.UUID) (*UserRef, error) {
	return f.users[id], nil
}

func newFakeDirectory(users ...*UserRef) *fakeDirectory {
	dir := &fakeDirectory{users: make(map[uuid.UUID]*UserRef)}
	for _, user := range users {
		dir.users[user.ID] = user
	}
	return dir
}

func TestCreateSelfAssignsFrontlineCaller(t *testing.T) {
	teamID := uuid.New()
	rm := &UserRef{ID: uuid.New(), Role: domain.RoleRelationshipManager, TeamID: &teamID, Active: true}
	dir := newFakeDirectory(rm)
	now := time.Now()

	got, err := ResolveCreateAssignment(context.Background(), dir, RequestedAssignment{}, Caller{ID: rm.ID, Role: rm.Role}, now)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.AssignedTo == nil || *got.AssignedTo != rm.ID {
		t.Fatalf("assigned_to = %v, want caller", got.AssignedTo)
	}
	if got.TeamID == nil || *got.TeamID != teamID {
		t.Fatalf("team_id = %v, want caller's team", got.TeamID)
	}
	if got.AssignedAt == nil || !got.AssignedAt.Equal(now) {
		t.Fatalf("assigned_at = %v, want now", got.AssignedAt)
	}
}

func TestCreateExplicitActiveAssigneeWins(t *testing.T) {
	teamID := uuid.New()
	target := &UserRef{ID: uuid.New(), Role: domain.RoleRelationshipManager, TeamID: &teamID, Active: true}
	dir := newFakeDirectory(target)

	req := RequestedAssignment{AssignedTo: &target.ID}
	got, err := ResolveCreateAssignment(context.Background(), dir, req, Caller{ID: uuid.New(), Role: domain.RoleAdmin}, time.Now())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.AssignedTo == nil || *got.AssignedTo != target.ID {
		t.Fatalf("assigned_to = %v, want explicit target", got.AssignedTo)
	}
	if got.TeamID == nil || *got.TeamID != teamID {
		t.Fatalf("team_id = %v, want derived from target", got.TeamID)
	}
}

func TestCreateInactiveAssigneeFallsThrough(t *testing.T) {
	inactive := &UserRef{ID: uuid.New(), Role: domain.RoleRelationshipManager, Active: false}
	dir := newFakeDirectory(inactive)

	// Admin caller: falls through to unassigned, not an error.
	req := RequestedAssignment{AssignedTo: &inactive.ID}
	got, err := ResolveCreateAssignment(context.Background(), dir, req, Caller{ID: uuid.New(), Role: domain.RoleAdmin}, time.Now())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.AssignedTo != nil {
		t.Fatalf("assigned_to = %v, want nil", got.AssignedTo)
	}
	if got.AssignedAt != nil {
		t.Fatal("unassigned lead must have no assigned_at")
	}

	// Frontline caller: falls through to self-assignment.
	rm := &UserRef{ID: uuid.New(), Role: domain.RoleRelationshipManager, Active: true}
	dir.users[rm.ID] = rm
	got, err = ResolveCreateAssignment(context.Background(), dir, req, Caller{ID: rm.ID, Role: rm.Role}, time.Now())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.AssignedTo == nil || *got.AssignedTo != rm.ID {
		t.Fatalf("assigned_to = %v, want caller", got.AssignedTo)
	}
}

func TestUpdateFrontlineCannotReassign(t *testing.T) {
	userA := uuid.New()
	userB := &UserRef{ID: uuid.New(), Role: domain.RoleRelationshipManager, Active: true}
	dir := newFakeDirectory(userB)
	teamID := uuid.New()
	assignedAt := time.Now().Add(-time.Hour)
	current := Assignment{AssignedTo: &userA, TeamID: &teamID, AssignedAt: &assignedAt}

	req := RequestedAssignment{AssignedTo: &userB.ID}
	caller := Caller{ID: userA, Role: domain.RoleRelationshipManager}
	got, err := ResolveUpdateAssignment(context.Background(), dir, req, caller, current, time.Now())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.AssignedTo == nil || *got.AssignedTo != userA {
		t.Fatalf("assigned_to = %v, want unchanged %v", got.AssignedTo, userA)
	}
	if got.TeamID == nil || *got.TeamID != teamID {
		t.Fatalf("team_id = %v, want unchanged", got.TeamID)
	}
	if got.AssignedAt == nil || !got.AssignedAt.Equal(assignedAt) {
		t.Fatalf("assigned_at = %v, want unchanged", got.AssignedAt)
	}
}

func TestUpdateNoOpReassignKeepsTimestamp(t *testing.T) {
	teamID := uuid.New()
	user := &UserRef{ID: uuid.New(), Role: domain.RoleRelationshipManager, TeamID: &teamID, Active: true}
	dir := newFakeDirectory(user)
	assignedAt := time.Now().Add(-24 * time.Hour)
	current := Assignment{AssignedTo: &user.ID, TeamID: &teamID, AssignedAt: &assignedAt}

	req := RequestedAssignment{AssignedTo: &user.ID}
	got, err := ResolveUpdateAssignment(context.Background(), dir, req, Caller{ID: uuid.New(), Role: domain.RoleAdmin}, current, time.Now())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.AssignedAt == nil || !got.AssignedAt.Equal(assignedAt) {
		t.Fatalf("assigned_at = %v, want original %v", got.AssignedAt, assignedAt)
	}
}

func TestUpdateAbsentAssigneeRetainsCurrent(t *testing.T) {
	userA := uuid.New()
	assignedAt := time.Now().Add(-time.Hour)
	current := Assignment{AssignedTo: &userA, AssignedAt: &assignedAt}
	dir := newFakeDirectory()

	got, err := ResolveUpdateAssignment(context.Background(), dir, RequestedAssignment{}, Caller{ID: uuid.New(), Role: domain.RoleAdmin}, current, time.Now())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.AssignedTo == nil || *got.AssignedTo != userA {
		t.Fatalf("assigned_to = %v, want retained", got.AssignedTo)
	}
	if got.AssignedAt == nil || !got.AssignedAt.Equal(assignedAt) {
		t.Fatalf("assigned_at = %v, want retained", got.AssignedAt)
	}
}

func TestUpdateInvalidAssigneeRetainsCurrent(t *testing.T) {
	userA := uuid.New()
	missing := uuid.New()
	assignedAt := time.Now().Add(-time.Hour)
	current := Assignment{AssignedTo: &userA, AssignedAt: &assignedAt}
	dir := newFakeDirectory()

	req := RequestedAssignment{AssignedTo: &missing}
	got, err := ResolveUpdateAssignment(context.Background(), dir, req, Caller{ID: uuid.New(), Role: domain.RoleAdmin}, current, time.Now())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.AssignedTo == nil || *got.AssignedTo != userA {
		t.Fatalf("assigned_to = %v, want retained", got.AssignedTo)
	}
}

func TestUpdateUnassignedStaysUnassigned(t *testing.T) {
	dir := newFakeDirectory()
	got, err := ResolveUpdateAssignment(context.Background(), dir, RequestedAssignment{}, Caller{ID: uuid.New(), Role: domain.RoleAdmin}, Assignment{}, time.Now())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.AssignedTo != nil {
		t.Fatalf("assigned_to = %v, want nil", got.AssignedTo)
	}
	if got.AssignedAt != nil {
		t.Fatal("assigned_at must be nil when assigned_to is nil")
	}
}

func TestUpdateReassignRefreshesTimestamp(t *testing.T) {
	userA := uuid.New()
	userB := &UserRef{ID: uuid.New(), Role: domain.RoleRelationshipManager, Active: true}
	dir := newFakeDirectory(userB)
	oldAt := time.Now().Add(-time.Hour)
	current := Assignment{AssignedTo: &userA, AssignedAt: &oldAt}
	now := time.Now()

	req := RequestedAssignment{AssignedTo: &userB.ID}
	got, err := ResolveUpdateAssignment(context.Background(), dir, req, Caller{ID: uuid.New(), Role: domain.RoleAdmin}, current, now)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.AssignedTo == nil || *got.AssignedTo != userB.ID {
		t.Fatalf("assigned_to = %v, want new assignee", got.AssignedTo)
	}
	if got.AssignedAt == nil || !got.AssignedAt.Equal(now) {
		t.Fatalf("assigned_at = %v, want refreshed", got.AssignedAt)
	}
}

func TestDedicatedAssignDoesNotCheckActive(t *testing.T) {
	// Inactive users are valid targets on this path.
	teamID := uuid.New()
	target := &UserRef{ID: uuid.New(), Role: domain.RoleRelationshipManager, TeamID: &teamID, Active: false}
	dir := newFakeDirectory(target)
	now := time.Now()

	got, err := ResolveDedicatedAssignment(context.Background(), dir, target.ID, Assignment{}, now)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.AssignedTo == nil || *got.AssignedTo != target.ID {
		t.Fatalf("assigned_to = %v, want target", got.AssignedTo)
	}
	if got.TeamID == nil || *got.TeamID != teamID {
		t.Fatalf("team_id = %v, want filled from target", got.TeamID)
	}
}

func TestDedicatedAssignNeverOverwritesTeam(t *testing.T) {
	existingTeam := uuid.New()
	otherTeam := uuid.New()
	target := &UserRef{ID: uuid.New(), TeamID: &otherTeam, Active: true}
	dir := newFakeDirectory(target)

	current := Assignment{TeamID: &existingTeam}
	got, err := ResolveDedicatedAssignment(context.Background(), dir, target.ID, current, time.Now())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.TeamID == nil || *got.TeamID != existingTeam {
		t.Fatalf("team_id = %v, want existing team kept", got.TeamID)
	}
}

func TestDedicatedAssignMissingUserFails(t *testing.T) {
	dir := newFakeDirectory()
	if _, err := ResolveDedicatedAssignment(context.Background(), dir, uuid.New(), Assignment{}, time.Now()); err == nil {
		t.Fatal("assigning to a missing user must fail")
	}
}
