package escrow

import (
	"fmt"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

// Error is an escrow policy or state violation.
type Error struct {
	Code   model.ReasonCode
	Height uint64
}

func (e *Error) Error() string {
	return fmt.Sprintf("escrow %s at height %d", e.Code, e.Height)
}

// Is matches on Code so that errors.Is works against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidReward  = &Error{Code: model.ReasonInvalidReward}
	ErrUnauthorized   = &Error{Code: model.ReasonUnauthorized}
	ErrLockActive     = &Error{Code: model.ReasonLockActive}
	ErrAlreadySlashed = &Error{Code: model.ReasonAlreadySlashed}
	ErrRecordNotFound = &Error{Code: model.ReasonUnknownHeight}
)

func newError(code model.ReasonCode, height uint64) *Error {
	return &Error{Code: code, Height: height}
}
