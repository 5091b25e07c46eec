package chain

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

// These values identify a specific RuleError and are matched with errors.Is.
var (
	// ErrPrevHashMismatch indicates the candidate does not extend the tail.
	ErrPrevHashMismatch = &RuleError{Reason: model.ReasonPrevHashMismatch}
	// ErrMerkleMismatch indicates the header root does not match the transactions.
	ErrMerkleMismatch = &RuleError{Reason: model.ReasonMerkleMismatch}
	// ErrHashMismatch indicates the block hash does not match its header.
	ErrHashMismatch = &RuleError{Reason: model.ReasonHashMismatch}
	// ErrIndexMismatch indicates the header index is not the block position.
	ErrIndexMismatch = &RuleError{Reason: model.ReasonIndexMismatch}

	// ErrEmptyChain is returned when a chain has no blocks.
	ErrEmptyChain = errors.New("chain: empty chain")
)

// RuleError identifies a block that violates a chain invariant. Index is the
// position the block holds, or would have held, in the chain.
type RuleError struct {
	Reason model.ReasonCode
	Index  uint64
	Err    error
}

func (e *RuleError) Error() string {
	msg := fmt.Sprintf("%s at index %d", e.Reason, e.Index)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *RuleError) Unwrap() error {
	return e.Err
}

// Is matches any RuleError with the same reason.
func (e *RuleError) Is(target error) bool {
	var t *RuleError
	if !errors.As(target, &t) {
		return false
	}
	return t.Reason == e.Reason
}

func newRuleError(reason model.ReasonCode, index uint64, cause error) *RuleError {
	return &RuleError{Reason: reason, Index: index, Err: cause}
}
