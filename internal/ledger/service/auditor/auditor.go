// Package auditor re-validates a persisted journal.
package auditor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/chain"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
	"github.com/goodnatureofminers/complianceledger/pkg/workerpool"
	"go.uber.org/zap"
)

const defaultWorkerCount = 8

// verdict is the content check outcome of one block.
type verdict struct {
	err error
}

// ErrEmptyJournal is returned when the source holds no blocks.
var ErrEmptyJournal = errors.New("journal is empty")

// Auditor verifies block contents concurrently and linkage serially. Its
// result is the same as Blockchain.Validate on the same blocks.
type Auditor struct {
	source      BlockSource
	workerCount int
	metrics     Metrics
	logger      *zap.Logger
}

func New(source BlockSource, workerCount int, metrics Metrics, logger *zap.Logger) (*Auditor, error) {
	if source == nil {
		return nil, errors.New("block source is required")
	}
	if metrics == nil {
		return nil, errors.New("auditor metrics is required")
	}
	if workerCount <= 0 {
		workerCount = defaultWorkerCount
	}
	return &Auditor{source: source, workerCount: workerCount, metrics: metrics, logger: logger}, nil
}

// Audit loads the journal and validates it. Only load failures and
// cancellation are returned as errors.
func (a *Auditor) Audit(ctx context.Context) (res chain.ValidationResult, err error) {
	started := time.Now()
	var loaded int
	defer func() {
		a.metrics.ObserveAudit(res.Reason, loaded, err, started)
	}()

	blocks, err := a.source.LoadBlocks(ctx)
	if err != nil {
		return chain.ValidationResult{}, fmt.Errorf("load journal: %w", err)
	}
	loaded = len(blocks)
	if loaded == 0 {
		err = ErrEmptyJournal
		return chain.ValidationResult{}, err
	}

	positions := make([]int, loaded)
	for i := range positions {
		positions[i] = i
	}
	verdicts, err := workerpool.Map(ctx, a.workerCount, positions, func(_ context.Context, i int) (verdict, error) {
		return verdict{err: chain.VerifyBlock(blocks[i], uint64(i))}, nil
	})
	if err != nil {
		return chain.ValidationResult{}, fmt.Errorf("verify blocks: %w", err)
	}

	res = firstFailure(blocks, verdicts)
	if res.Valid {
		a.logger.Info("journal valid", zap.Int("blocks", loaded))
	} else {
		a.logger.Warn("journal invalid",
			zap.Uint64("index", res.Index),
			zap.String("reason", string(res.Reason)),
		)
	}
	return res, nil
}

// firstFailure walks blocks in order applying the same checks as
// chain.ValidateBlocks, using the precomputed content results.
func firstFailure(blocks []model.Block, verdicts []verdict) chain.ValidationResult {
	for i, b := range blocks {
		index := uint64(i)
		if i > 0 {
			if err := chain.VerifyLink(blocks[i-1], b, index); err != nil {
				return resultAt(err, index)
			}
		}
		if verdicts[i].err != nil {
			return resultAt(verdicts[i].err, index)
		}
		if b.Header.Index != index {
			return chain.ValidationResult{Index: index, Reason: model.ReasonIndexMismatch}
		}
	}
	return chain.ValidationResult{Valid: true, Reason: model.ReasonChainValid}
}

func resultAt(err error, index uint64) chain.ValidationResult {
	var ruleErr *chain.RuleError
	if errors.As(err, &ruleErr) {
		return chain.ValidationResult{Index: index, Reason: ruleErr.Reason}
	}
	return chain.ValidationResult{Index: index, Reason: model.ReasonHashMismatch}
}
