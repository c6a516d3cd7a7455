package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxType classifies a ledger entry.
type TxType string

const (
	TxDeposit      TxType = "DEPOSIT"
	TxWithdraw     TxType = "WITHDRAW"
	TxTransfer     TxType = "TRANSFER"
	TxOrderPayment TxType = "ORDER_PAYMENT"
)

// TransferDirection labels the legs of a transfer in their metadata.
const (
	DirectionOutbound = "outbound"
	DirectionInbound  = "inbound"
)

// TxMeta carries structured metadata on a ledger entry. Only the fields
// relevant to the entry's type are set.
type TxMeta struct {
	OrderID      string `json:"orderId,omitempty"`
	Direction    string `json:"direction,omitempty"`
	CrossBranch  bool   `json:"crossBranch,omitempty"`
	FromBranchID string `json:"fromBranchId,omitempty"`
	ToBranchID   string `json:"toBranchId,omitempty"`
}

// Transaction is one immutable ledger entry. Amounts are whole VND, signed:
// positive means money entering the account, negative means money leaving it.
// Entries are append-only; corrections are new offsetting entries.
type Transaction struct {
	TxID      string          `json:"txID"`
	AccountID string          `json:"accountID"`
	BranchID  string          `json:"branchID"` // account's branch at creation time
	UserID    string          `json:"userID"`   // acting user
	TxType    TxType          `json:"txType"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	Meta      *TxMeta         `json:"meta,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// TxLink ties the debit and credit legs of one logical transfer together.
// Created atomically with both legs, never mutated.
type TxLink struct {
	LinkID     string    `json:"linkID"`
	DebitTxID  string    `json:"debitTxID"`
	CreditTxID string    `json:"creditTxID"`
	CreatedAt  time.Time `json:"createdAt"`
}
