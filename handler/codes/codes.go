package codes

import (
	"errors"
	"strconv"

	"tokenbank/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

// With with specified error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// Get get error code
func Get(code twirp.ErrorCode) int {
	switch code {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(code)
	}
}

// FromError converts ledger errors into twirp errors carrying the ledger
// code, other errors become internal errors
func FromError(err error) twirp.Error {
	if twerr, ok := err.(twirp.Error); ok {
		return twerr
	}

	var e *core.Error
	if !errors.As(err, &e) {
		return twirp.InternalErrorWith(err)
	}

	var twerr twirp.Error
	switch e.Code {
	case core.ErrAccess:
		twerr = twirp.NewError(twirp.PermissionDenied, e.Error())
	case core.ErrConfiguration:
		twerr = twirp.NewError(twirp.FailedPrecondition, e.Error())
	case core.ErrInsufficientLiquidity, core.ErrUndercollateralized:
		twerr = twirp.NewError(twirp.FailedPrecondition, e.Error())
	case core.ErrReentrancy:
		twerr = twirp.NewError(twirp.Aborted, e.Error())
	default:
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(int(e.Code)))
}
