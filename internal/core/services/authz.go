package services

import (
	"github.com/cashbookvn/cashbook_backend/internal/apperrors"
	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
)

// Operation is the kind of action being authorized against the ledger.
type Operation string

const (
	OpRead         Operation = "read"
	OpDeposit      Operation = "deposit"
	OpWithdraw     Operation = "withdraw"
	OpTransfer     Operation = "transfer"
	OpOrderPayment Operation = "order_payment"
	// OpManage covers registry mutations: branches, accounts, deactivation.
	OpManage Operation = "manage"
)

// Authorize decides whether the caller may perform op against the given
// branch. branchID may be empty for operations that are role-gated before any
// account is resolved (the OWNER-only mutations).
//
// Rules:
//   - no caller: ErrUnauthenticated (callers must be able to tell "log in"
//     apart from "not allowed")
//   - OWNER: permitted everywhere, for every operation
//   - STAFF: deposit and read only, and only within the home branch
func Authorize(actor *domain.AuthUser, op Operation, branchID string) error {
	if actor == nil || actor.UserID == "" {
		return apperrors.ErrUnauthenticated
	}
	if actor.Role == domain.RoleOwner {
		return nil
	}
	if actor.Role != domain.RoleStaff {
		return apperrors.ErrForbidden
	}

	switch op {
	case OpDeposit, OpRead:
		if branchID != "" && actor.HomeBranch() == branchID {
			return nil
		}
		return apperrors.ErrForbidden
	default:
		return apperrors.ErrForbidden
	}
}

// ScopeToBranch resolves the effective branch filter for a read: OWNER may
// request any branch (or none), STAFF is silently pinned to the home branch
// regardless of what was requested.
func ScopeToBranch(actor *domain.AuthUser, requested string) (string, error) {
	if actor == nil || actor.UserID == "" {
		return "", apperrors.ErrUnauthenticated
	}
	if actor.Role == domain.RoleStaff {
		return actor.HomeBranch(), nil
	}
	return requested, nil
}
