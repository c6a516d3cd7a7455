package domain

import "time"

// Branch represents a physical branch of the business. Branches own accounts
// and staff users; branch names are unique system-wide.
type Branch struct {
	BranchID  string    `json:"branchID"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"` // UserID reference
}
