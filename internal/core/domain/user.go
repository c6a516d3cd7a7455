package domain

import "time"

// Role defines a user's scope within the system.
type Role string

const (
	// RoleOwner has system-wide scope across all branches.
	RoleOwner Role = "OWNER"
	// RoleStaff is confined to a single home branch.
	RoleStaff Role = "STAFF"
)

// User represents an application user.
// BranchID is required for STAFF and nil for OWNER.
type User struct {
	UserID       string    `json:"userID"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Role         Role      `json:"role"`
	BranchID     *string   `json:"branchID,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AuthUser is the authenticated caller as carried through request context.
// It holds everything the authorization guard needs to make scoping
// decisions without another user lookup.
type AuthUser struct {
	UserID   string
	Role     Role
	BranchID *string
}

// HomeBranch returns the user's branch id, or empty string when unscoped (OWNER).
func (u AuthUser) HomeBranch() string {
	if u.BranchID == nil {
		return ""
	}
	return *u.BranchID
}
