package models

// Identity is the resolved session for a request. It is owned by the session
// gate; everything downstream receives it by reference, treats it as
// immutable, and must tolerate its absence (a nil *Identity is the anonymous
// state).
type Identity struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// IsDeveloper reports whether the identity carries the seller role.
func (i *Identity) IsDeveloper() bool {
	return i != nil && i.Role == RoleDeveloper
}

// DashboardTarget is the view a post-login redirect should land on,
// classified from the identity's role.
func (i *Identity) DashboardTarget() string {
	if i.IsDeveloper() {
		return "developer-dashboard"
	}
	return "customer-dashboard"
}
