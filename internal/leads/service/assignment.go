// Package service implements the lead bounded context's business logic.
package service

import (
	"context"
	"time"

	"github.com/Iamalive23802/Dream-Trade/internal/leads/domain"
	"github.com/Iamalive23802/Dream-Trade/platform/apperr"

	"github.com/google/uuid"
)

// UserRef is the slice of a user record the resolver and notifier need.
type UserRef struct {
	ID        uuid.UUID
	FullName  string
	Email     string
	Role      string
	TeamID    *uuid.UUID
	Active    bool
	LastLogin *time.Time
}

// UserDirectory resolves user ids to records. FindUser returns (nil, nil)
// when the user does not exist; errors are reserved for lookup failures.
type UserDirectory interface {
	FindUser(ctx context.Context, id uuid.UUID) (*UserRef, error)
}

// Caller identifies the authenticated user driving an operation.
type Caller struct {
	ID   uuid.UUID
	Role string
}

// Assignment is the resolved {assigned_to, team_id, assigned_at} tuple.
type Assignment struct {
	AssignedTo *uuid.UUID
	TeamID     *uuid.UUID
	AssignedAt *time.Time
}

// RequestedAssignment carries the assignment fields of a create or update
// payload after empty strings have been normalized to nil.
type RequestedAssignment struct {
	AssignedTo *uuid.UUID
	TeamID     *uuid.UUID
}

// ResolveCreateAssignment computes the assignment for a new lead.
// An explicitly requested assignee wins when that user exists and is active.
// Otherwise frontline callers are assigned the lead themselves, and anyone
// else leaves it unassigned. An invalid explicit assignee is not an error;
// resolution falls through to the role-based default.
func ResolveCreateAssignment(ctx context.Context, dir UserDirectory, req RequestedAssignment, caller Caller, now time.Time) (Assignment, error) {
	if req.AssignedTo != nil {
		user, err := dir.FindUser(ctx, *req.AssignedTo)
		if err != nil {
			return Assignment{}, err
		}
		if user != nil && user.Active {
			return assignTo(user, req.TeamID, now), nil
		}
	}

	if domain.IsFrontlineRole(caller.Role) {
		self, err := dir.FindUser(ctx, caller.ID)
		if err != nil {
			return Assignment{}, err
		}
		if self != nil {
			return assignTo(self, req.TeamID, now), nil
		}
	}

	return Assignment{TeamID: req.TeamID}, nil
}

// ResolveUpdateAssignment computes the assignment for an edited lead.
// Frontline callers can never move a lead; their requested values are
// replaced with the lead's current ones. An absent or invalid requested
// assignee silently retains the current assignment. The timestamp refreshes
// only on a real change of hands.
func ResolveUpdateAssignment(ctx context.Context, dir UserDirectory, req RequestedAssignment, caller Caller, current Assignment, now time.Time) (Assignment, error) {
	if domain.IsFrontlineRole(caller.Role) {
		return current, nil
	}

	final := Assignment{
		AssignedTo: current.AssignedTo,
		TeamID:     current.TeamID,
	}
	if req.TeamID != nil {
		final.TeamID = req.TeamID
	}

	if req.AssignedTo != nil {
		user, err := dir.FindUser(ctx, *req.AssignedTo)
		if err != nil {
			return Assignment{}, err
		}
		if user != nil && user.Active {
			final.AssignedTo = &user.ID
			if req.TeamID == nil && user.TeamID != nil {
				final.TeamID = user.TeamID
			}
		}
	}

	final.AssignedAt = recomputeAssignedAt(current, final.AssignedTo, now)
	return final, nil
}

// ResolveDedicatedAssignment handles the standalone assign operation.
// The target must exist but its active status is deliberately not checked;
// admins use this path to hand leads to users being onboarded. The team is
// only filled in when the lead has none, never overwritten.
func ResolveDedicatedAssignment(ctx context.Context, dir UserDirectory, target uuid.UUID, current Assignment, now time.Time) (Assignment, error) {
	user, err := dir.FindUser(ctx, target)
	if err != nil {
		return Assignment{}, err
	}
	if user == nil {
		return Assignment{}, apperr.NotFound("assignee not found")
	}

	final := Assignment{
		AssignedTo: &user.ID,
		TeamID:     current.TeamID,
	}
	if final.TeamID == nil {
		final.TeamID = user.TeamID
	}

	final.AssignedAt = recomputeAssignedAt(current, final.AssignedTo, now)
	return final, nil
}

func assignTo(user *UserRef, requestedTeam *uuid.UUID, now time.Time) Assignment {
	team := requestedTeam
	if team == nil {
		team = user.TeamID
	}
	at := now
	return Assignment{AssignedTo: &user.ID, TeamID: team, AssignedAt: &at}
}

// recomputeAssignedAt applies the changed-and-non-null rule: a new assignee
// gets a fresh timestamp, an unassigned lead gets none, and reassigning the
// same user leaves the original timestamp alone.
func recomputeAssignedAt(current Assignment, finalAssignee *uuid.UUID, now time.Time) *time.Time {
	if finalAssignee == nil {
		return nil
	}
	if current.AssignedTo == nil || *current.AssignedTo != *finalAssignee {
		at := now
		return &at
	}
	return current.AssignedAt
}
