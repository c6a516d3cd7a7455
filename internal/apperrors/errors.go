package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthenticated indicates that no valid session/token was presented.
var ErrUnauthenticated = errors.New("authentication required")

// ErrForbidden indicates a valid session with insufficient role or branch scope.
var ErrForbidden = errors.New("operation not permitted")

// ErrAccountInactive indicates the referenced account exists but is disabled.
var ErrAccountInactive = errors.New("account is inactive")

// ErrInsufficientFunds indicates the derived balance does not cover the requested amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrCrossBranchNotAllowed indicates a transfer spans branches without the explicit opt-in flag.
var ErrCrossBranchNotAllowed = errors.New("cross-branch transfer requires explicit allowCrossBranch flag")
