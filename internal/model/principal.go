package model

const (
	RoleAdmin      = "ADMIN"
	RoleDispatcher = "DISPATCHER"
	RoleDriver     = "DRIVER"
	RoleViewer     = "VIEWER"
)

// Principal is the authenticated caller, extracted from the access token by
// the HTTP middleware and passed explicitly into every service call.
type Principal struct {
	UserID string
	OrgID  string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsDispatcher() bool {
	return p.Role == RoleDispatcher
}

// CanSchedule reports whether the caller may mutate assignments and blocks.
func (p Principal) CanSchedule() bool {
	return p.IsAdmin() || p.IsDispatcher()
}
