package chain

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

// ValidationResult reports the outcome of a full chain walk.
type ValidationResult struct {
	Valid  bool             `json:"valid"`
	Index  uint64           `json:"index"`
	Reason model.ReasonCode `json:"reason"`
}

// String renders the reason tagged with the failing index.
func (r ValidationResult) String() string {
	if r.Valid {
		return string(r.Reason)
	}
	return fmt.Sprintf("%s@%d", r.Reason, r.Index)
}

// Err returns the failure as a *RuleError, or nil when valid.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return newRuleError(r.Reason, r.Index, nil)
}

func validResult() ValidationResult {
	return ValidationResult{Valid: true, Reason: model.ReasonChainValid}
}

func resultFromError(err error) ValidationResult {
	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		return ValidationResult{Index: ruleErr.Index, Reason: ruleErr.Reason}
	}
	return ValidationResult{Reason: model.ReasonHashMismatch}
}

// ValidateBlocks walks blocks once and reports the first failing index. For
// every block past the first it checks linkage, then the Merkle root, then the
// block hash, then that the header index equals the position.
func ValidateBlocks(blocks []model.Block) ValidationResult {
	for i, b := range blocks {
		if err := checkBlock(blocks, i, b); err != nil {
			return resultFromError(err)
		}
	}
	return validResult()
}

func checkBlock(blocks []model.Block, i int, b model.Block) error {
	index := uint64(i)
	if i > 0 {
		if err := VerifyLink(blocks[i-1], b, index); err != nil {
			return err
		}
	}
	if err := VerifyBlock(b, index); err != nil {
		return err
	}
	if b.Header.Index != index {
		return newRuleError(model.ReasonIndexMismatch, index, nil)
	}
	return nil
}
