package dto

import (
	"time"

	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBranchRequest defines the data needed to create a branch.
type CreateBranchRequest struct {
	Name string `json:"name" binding:"required,min=2,max=120"`
}

// RenameBranchRequest defines the data for renaming a branch.
type RenameBranchRequest struct {
	Name string `json:"name" binding:"required,min=2,max=120"`
}

// BranchAccountSummary is the compact account listing embedded in a branch.
type BranchAccountSummary struct {
	AccountID   string             `json:"accountID"`
	AccountType domain.AccountType `json:"type"`
}

// BranchResponse defines the data returned for a branch, including the
// derived net total over all of its accounts.
type BranchResponse struct {
	BranchID  string                 `json:"branchID"`
	Name      string                 `json:"name"`
	Balance   decimal.Decimal        `json:"balance"`
	Accounts  []BranchAccountSummary `json:"accounts"`
	CreatedAt time.Time              `json:"createdAt"`
}

// ListBranchesResponse wraps the list of branches.
type ListBranchesResponse struct {
	Branches []BranchResponse `json:"branches"`
}

// ToBranchResponse converts a domain.Branch plus its derived total and
// account summaries.
func ToBranchResponse(branch *domain.Branch, balance decimal.Decimal, accounts []BranchAccountSummary) BranchResponse {
	if accounts == nil {
		accounts = []BranchAccountSummary{}
	}
	return BranchResponse{
		BranchID:  branch.BranchID,
		Name:      branch.Name,
		Balance:   balance,
		Accounts:  accounts,
		CreatedAt: branch.CreatedAt,
	}
}
