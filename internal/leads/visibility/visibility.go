// Package visibility decides which leads a caller may read and how fields
// are masked, as a pure function of the caller's role, id and team.
package visibility

import (
	"strings"

	"github.com/Iamalive23802/Dream-Trade/internal/leads/domain"

	"github.com/google/uuid"
)

// Scope describes the set of leads visible to a caller. Exactly one of the
// fields is in effect: All, None, AssignedTo or TeamID.
type Scope struct {
	All        bool
	None       bool
	AssignedTo *uuid.UUID
	TeamID     *uuid.UUID
}

type scopeBuilder func(callerID uuid.UUID, callerTeamID *uuid.UUID) Scope

var scopeBuilders = map[string]scopeBuilder{
	domain.RoleRelationshipManager: ownAssigned,
	domain.RoleFinancialManager:    ownAssigned,
	domain.RoleTeamLeader:          ownTeam,
	domain.RoleAdmin:               everything,
	domain.RoleSuperAdmin:          everything,
}

// Resolve maps the caller's role to a visibility scope. Unrecognized roles
// fall through to full visibility; that default predates this code and is
// relied on by existing admin tooling.
func Resolve(role string, callerID uuid.UUID, callerTeamID *uuid.UUID) Scope {
	builder, ok := scopeBuilders[role]
	if !ok {
		return Scope{All: true}
	}
	return builder(callerID, callerTeamID)
}

func ownAssigned(callerID uuid.UUID, _ *uuid.UUID) Scope {
	id := callerID
	return Scope{AssignedTo: &id}
}

func ownTeam(_ uuid.UUID, callerTeamID *uuid.UUID) Scope {
	if callerTeamID == nil {
		return Scope{None: true}
	}
	id := *callerTeamID
	return Scope{TeamID: &id}
}

func everything(_ uuid.UUID, _ *uuid.UUID) Scope {
	return Scope{All: true}
}

// Contains reports whether the lead falls inside the scope. The repository
// pushes the same predicate into SQL; this form serves in-memory checks.
func (s Scope) Contains(lead *domain.Lead) bool {
	switch {
	case s.None:
		return false
	case s.All:
		return true
	case s.AssignedTo != nil:
		return lead.AssignedTo != nil && *lead.AssignedTo == *s.AssignedTo
	case s.TeamID != nil:
		return lead.TeamID != nil && *lead.TeamID == *s.TeamID
	default:
		return false
	}
}

const phoneMask = "******"

// MaskPhone hides all but the first two digits for roles that must not see
// full numbers. Admin roles see the number unmasked.
func MaskPhone(phone, role string) string {
	switch role {
	case domain.RoleAdmin, domain.RoleSuperAdmin:
		return phone
	}
	if len(phone) <= 2 {
		return phone + phoneMask
	}
	return phone[:2] + phoneMask
}

// Matches reports whether the lead satisfies every populated filter.
// Filters compose with AND; an empty filter set matches everything.
func Matches(lead *domain.Lead, filters domain.ListFilters) bool {
	if filters.Status != "" && lead.Status != filters.Status {
		return false
	}
	if filters.Unassigned && lead.AssignedTo != nil {
		return false
	}
	if filters.AssignedTo != nil {
		if lead.AssignedTo == nil || *lead.AssignedTo != *filters.AssignedTo {
			return false
		}
	}
	if filters.Tag != "" && !containsTag(lead.Tags, filters.Tag) {
		return false
	}
	if filters.Name != "" && !strings.Contains(strings.ToLower(lead.FullName), strings.ToLower(filters.Name)) {
		return false
	}
	if filters.DateFrom != nil {
		if lead.Date == nil || lead.Date.Before(*filters.DateFrom) {
			return false
		}
	}
	if filters.DateTo != nil {
		if lead.Date == nil || lead.Date.After(*filters.DateTo) {
			return false
		}
	}
	return true
}

func containsTag(tags, wanted string) bool {
	for _, tag := range strings.Split(tags, ",") {
		if strings.EqualFold(strings.TrimSpace(tag), strings.TrimSpace(wanted)) {
			return true
		}
	}
	return false
}
