package types

// Member is a staff account of the event.
type Member struct {
	ID              int             `json:"id"`
	Email           string          `json:"email"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	PermissionLevel PermissionLevel `json:"permissionLevel"`
}

// MemberForm creates or updates a member. Password is only sent when set.
type MemberForm struct {
	Email           string          `json:"email"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	PermissionLevel PermissionLevel `json:"permissionLevel"`
	Password        *string         `json:"password,omitempty"`
}
