package dto

import (
	"time"

	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	BranchID    string             `json:"branchId" binding:"required,uuid"`
	Name        string             `json:"name" binding:"required,min=2,max=120"`
	AccountType domain.AccountType `json:"type" binding:"required,oneof=CASH BANK_TRANSFER"`
}

// AccountResponse defines the data returned for an account. The balance is
// derived at read time, never stored.
type AccountResponse struct {
	AccountID   string             `json:"accountID"`
	BranchID    string             `json:"branchID"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"type"`
	IsActive    bool               `json:"isActive"`
	Balance     decimal.Decimal    `json:"balance"`
	CreatedAt   time.Time          `json:"createdAt"`
	CreatedBy   string             `json:"createdBy"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	BranchID string `form:"branchId" binding:"omitempty,uuid"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// AccountBalanceResponse is the payload of a standalone balance read.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain.Account plus its derived balance.
func ToAccountResponse(acc *domain.Account, balance decimal.Decimal) AccountResponse {
	return AccountResponse{
		AccountID:   acc.AccountID,
		BranchID:    acc.BranchID,
		Name:        acc.Name,
		AccountType: acc.AccountType,
		IsActive:    acc.IsActive,
		Balance:     balance,
		CreatedAt:   acc.CreatedAt,
		CreatedBy:   acc.CreatedBy,
	}
}
