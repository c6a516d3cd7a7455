package dto

import (
	"time"

	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Amounts are decimal.Decimal throughout: shopspring accepts both JSON numbers
// and strings on unmarshal and marshals back as quoted strings, which keeps
// large VND values exact across the wire. Integrality and positivity are
// checked again in the services before anything touches the ledger.

// DepositRequest is the payload for recording a deposit.
type DepositRequest struct {
	AccountID string          `json:"accountId" binding:"required,uuid"`
	Amount    decimal.Decimal `json:"amount" binding:"required,vndamount"`
	Note      string          `json:"note" binding:"max=500"`
}

// WithdrawRequest is the payload for recording a withdrawal.
type WithdrawRequest struct {
	AccountID string          `json:"accountId" binding:"required,uuid"`
	Amount    decimal.Decimal `json:"amount" binding:"required,vndamount"`
	Note      string          `json:"note" binding:"max=500"`
}

// OrderPaymentRequest is the payload for paying an order out of an account.
type OrderPaymentRequest struct {
	AccountID string          `json:"accountId" binding:"required,uuid"`
	Amount    decimal.Decimal `json:"amount" binding:"required,vndamount"`
	OrderID   string          `json:"orderId" binding:"required"`
	Note      string          `json:"note" binding:"max=500"`
}

// TransferRequest is the payload for moving money between two accounts.
// Cross-branch moves must be opted into explicitly.
type TransferRequest struct {
	FromAccountID    string          `json:"fromAccountId" binding:"required,uuid"`
	ToAccountID      string          `json:"toAccountId" binding:"required,uuid"`
	Amount           decimal.Decimal `json:"amount" binding:"required,vndamount"`
	Note             string          `json:"note" binding:"max=500"`
	AllowCrossBranch bool            `json:"allowCrossBranch"`
}

// TransactionResponse mirrors a domain ledger entry.
type TransactionResponse struct {
	TxID      string          `json:"txID"`
	AccountID string          `json:"accountID"`
	BranchID  string          `json:"branchID"`
	UserID    string          `json:"userID"`
	TxType    domain.TxType   `json:"txType"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	Meta      *domain.TxMeta  `json:"meta,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// EntryResponse is returned by the single-entry operations (deposit, withdraw,
// order payment): the new entry plus the post-write balance.
type EntryResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Balance     decimal.Decimal     `json:"balance"`
}

// TransferResponse is returned by transfers: both legs and the post-write
// balances of the two accounts, keyed by account id.
type TransferResponse struct {
	Debit    TransactionResponse        `json:"debit"`
	Credit   TransactionResponse        `json:"credit"`
	Balances map[string]decimal.Decimal `json:"balances"`
}

// ListTransactionsParams are the query parameters for listing ledger entries.
type ListTransactionsParams struct {
	BranchID  string `form:"branchId" binding:"omitempty,uuid"`
	AccountID string `form:"accountId" binding:"omitempty,uuid"`
	UserID    string `form:"userId" binding:"omitempty,uuid"`
	Type      string `form:"type" binding:"omitempty,oneof=DEPOSIT WITHDRAW TRANSFER ORDER_PAYMENT"`
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	Offset    int    `form:"offset,default=0" binding:"min=0"`
}

// ListTransactionsResponse wraps a page of ledger entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TxID:      txn.TxID,
		AccountID: txn.AccountID,
		BranchID:  txn.BranchID,
		UserID:    txn.UserID,
		TxType:    txn.TxType,
		Amount:    txn.Amount,
		Note:      txn.Note,
		Meta:      txn.Meta,
		CreatedAt: txn.CreatedAt,
	}
}

// ToListTransactionsResponse converts a slice of domain transactions.
func ToListTransactionsResponse(txns []domain.Transaction) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: res}
}
