package types

// PermissionLevel is the role carried in the access token and on members.
type PermissionLevel int

const (
	PermissionUser    PermissionLevel = 0
	PermissionManager PermissionLevel = 1
	PermissionAdmin   PermissionLevel = 2
)

// Valid reports whether p is one of the known levels.
func (p PermissionLevel) Valid() bool {
	return p >= PermissionUser && p <= PermissionAdmin
}

// String returns a lower-case label for the level.
func (p PermissionLevel) String() string {
	switch p {
	case PermissionUser:
		return "user"
	case PermissionManager:
		return "manager"
	case PermissionAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// ParsePermissionLevel maps a label back to its level.
func ParsePermissionLevel(s string) (PermissionLevel, bool) {
	for _, p := range []PermissionLevel{PermissionUser, PermissionManager, PermissionAdmin} {
		if p.String() == s {
			return p, true
		}
	}
	return -1, false
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// AuthResponse is returned by the login and register endpoints.
type AuthResponse struct {
	AccessToken  string    `json:"accessToken"`
	ATExpireDate Timestamp `json:"atExpireDate"`
	MemberID     int       `json:"memberId"`
}
