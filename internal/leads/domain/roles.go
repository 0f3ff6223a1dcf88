package domain

// User roles known to the system.
const (
	RoleSuperAdmin          = "super_admin"
	RoleAdmin               = "admin"
	RoleTeamLeader          = "team_leader"
	RoleRelationshipManager = "relationship_mgr"
	RoleFinancialManager    = "financial_manager"
)

// IsFrontlineRole reports whether the role owns leads directly. Frontline
// users see only their own assigned leads and receive new-assignment
// notifications.
func IsFrontlineRole(role string) bool {
	return role == RoleRelationshipManager || role == RoleFinancialManager
}

// CanApprovePayments reports whether the role may approve payment entries by
// supplying a UTR.
func CanApprovePayments(role string) bool {
	return role == RoleFinancialManager || role == RoleSuperAdmin
}
