package miner

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

// ErrRejected is matched by every *RejectionError.
var ErrRejected = errors.New("compliance check failed")

// RejectionError reports a compliance rejection. The chain is left untouched.
type RejectionError struct {
	Reason   model.ReasonCode
	Evidence map[string]any
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrRejected, e.Reason)
}

// Is reports whether target is ErrRejected.
func (e *RejectionError) Is(target error) bool {
	return target == ErrRejected
}
