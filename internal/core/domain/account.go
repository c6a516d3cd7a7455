package domain

import "time"

// AccountType distinguishes how money is physically held on an account.
type AccountType string

const (
	Cash         AccountType = "CASH"
	BankTransfer AccountType = "BANK_TRANSFER"
)

// Account represents a financial account owned by a branch.
// The balance is never stored on the account row; it is always derived as the
// sum of the account's ledger entries at read time.
type Account struct {
	AccountID   string      `json:"accountID"`
	BranchID    string      `json:"branchID"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   time.Time   `json:"createdAt"`
	CreatedBy   string      `json:"createdBy"` // UserID reference
}
