package core

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrConfiguration asset or production not open, operation disabled, module unset
	ErrConfiguration ErrorCode = 100100
	// ErrAccess caller not allowed
	ErrAccess ErrorCode = 100101
	// ErrInsufficientLiquidity pool can not fund the request
	ErrInsufficientLiquidity ErrorCode = 100102
	// ErrUndercollateralized health check failed
	ErrUndercollateralized ErrorCode = 100103
	// ErrArithmetic overflow, underflow or division by zero
	ErrArithmetic ErrorCode = 100104
	// ErrReentrancy nested call into a guarded operation
	ErrReentrancy ErrorCode = 100105
	// ErrExternalCall collaborator call failed
	ErrExternalCall ErrorCode = 100106
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

// Name category name of the code
func (e ErrorCode) Name() string {
	switch e {
	case ErrConfiguration:
		return "configuration"
	case ErrAccess:
		return "access"
	case ErrInsufficientLiquidity:
		return "insufficient_liquidity"
	case ErrUndercollateralized:
		return "undercollateralized"
	case ErrArithmetic:
		return "arithmetic"
	case ErrReentrancy:
		return "reentrancy"
	case ErrExternalCall:
		return "external_call"
	default:
		return "unknown"
	}
}

// Error aborts an operation with a categorized reason
type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code.Name(), e.Reason, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Code.Name(), e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches a bare ErrorCode, or an *Error with the same code and reason
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case ErrorCode:
		return e.Code == t
	case *Error:
		return e.Code == t.Code && (t.Reason == "" || t.Reason == e.Reason)
	}

	return false
}

// NewError new categorized error
func NewError(code ErrorCode, reason string) *Error {
	return &Error{Code: code, Reason: reason}
}

// Require returns a categorized error when cond does not hold
func Require(cond bool, code ErrorCode, reason string) error {
	if cond {
		return nil
	}

	return NewError(code, reason)
}

// External keeps categorized errors raised inside the ledger and wraps
// any other collaborator failure as ErrExternalCall
func External(err error, reason string) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{Code: ErrExternalCall, Reason: reason, Err: err}
}

// CodeOf category of err, ErrUnknown when uncategorized
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}

	return ErrUnknown
}
