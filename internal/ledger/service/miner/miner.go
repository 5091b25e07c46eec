// Package miner gates block production on a compliance check and hands
// accepted blocks to the escrow ledger and the journal.
package miner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/clock"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/chain"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/codec"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/compliance"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/merkle"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
	"github.com/goodnatureofminers/complianceledger/pkg/safe"
	"go.uber.org/zap"
)

// Reward describes the escrow created for each mined block. A zero Amount
// disables escrow creation.
type Reward struct {
	Notary string
	Amount uint64
}

// Miner builds and appends compliant blocks. Mine calls are serialized.
type Miner struct {
	mu      sync.Mutex
	checker ComplianceChecker
	chain   Chain
	escrow  Escrow
	journal Journal
	reward  Reward
	clock   clock.Clock
	metrics Metrics
	logger  *zap.Logger
}

// Option customizes a Miner.
type Option func(*Miner)

// WithEscrow creates an escrow record for every accepted block.
func WithEscrow(e Escrow, reward Reward) Option {
	return func(m *Miner) {
		m.escrow = e
		m.reward = reward
	}
}

// WithJournal forwards every accepted block to j.
func WithJournal(j Journal) Option {
	return func(m *Miner) { m.journal = j }
}

// WithClock overrides the wall clock.
func WithClock(c clock.Clock) Option {
	return func(m *Miner) { m.clock = c }
}

func New(checker ComplianceChecker, c Chain, metrics Metrics, logger *zap.Logger, opts ...Option) (*Miner, error) {
	if checker == nil {
		return nil, errors.New("compliance checker is required")
	}
	if c == nil {
		return nil, errors.New("chain is required")
	}
	if metrics == nil {
		return nil, errors.New("miner metrics is required")
	}
	m := &Miner{
		checker: checker,
		chain:   c,
		clock:   clock.System{},
		metrics: metrics,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.escrow != nil && m.reward.Amount > 0 && m.reward.Notary == "" {
		return nil, errors.New("escrow notary is required when a reward is set")
	}
	return m, nil
}

// Mine runs the compliance check and, if it passes, appends a block holding
// txs. A failed check returns a *RejectionError and leaves the chain as it
// was. Escrow and journal failures after a successful append are logged and
// do not undo the append.
func (m *Miner) Mine(ctx context.Context, txs []model.Transaction) (block model.Block, err error) {
	started := time.Now()
	var reason model.ReasonCode
	defer func() {
		m.metrics.ObserveMine(reason, err, started)
	}()

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	result, err := m.checker.PerformCheck(ctx, now)
	if err != nil {
		return model.Block{}, fmt.Errorf("compliance check: %w", err)
	}
	reason = result.Reason
	if !result.OK {
		m.logger.Info("block rejected", zap.String("reason", string(result.Reason)))
		return model.Block{}, &RejectionError{Reason: result.Reason, Evidence: result.Evidence}
	}

	candidate, err := m.buildBlock(result.Evidence, txs, now)
	if err != nil {
		return model.Block{}, err
	}
	block, err = m.chain.Append(candidate)
	if err != nil {
		return model.Block{}, fmt.Errorf("append block %d: %w", candidate.Header.Index, err)
	}
	m.logger.Info("block mined",
		zap.Uint64("index", block.Header.Index),
		zap.String("hash", block.Hash),
		zap.Int("transactions", len(block.Transactions)),
	)

	m.afterAppend(ctx, block, now)
	return block, nil
}

func (m *Miner) buildBlock(evidence map[string]any, txs []model.Transaction, now time.Time) (model.Block, error) {
	complianceHash, err := codec.Digest(evidence)
	if err != nil {
		return model.Block{}, fmt.Errorf("digest compliance evidence: %w", err)
	}
	root, err := merkle.Root(txs)
	if err != nil {
		return model.Block{}, fmt.Errorf("merkle root: %w", err)
	}
	tail, err := m.chain.Latest()
	if err != nil {
		return model.Block{}, fmt.Errorf("latest block: %w", err)
	}
	index, err := safe.Uint64(m.chain.Len())
	if err != nil {
		return model.Block{}, fmt.Errorf("chain length: %w", err)
	}

	return chain.NewBlock(model.BlockHeader{
		Index:                 index,
		Timestamp:             compliance.FormatTimestamp(now),
		PreviousHash:          tail.Hash,
		TransactionMerkleRoot: root,
		ComplianceDataHash:    complianceHash,
		Nonce:                 0,
	}, txs)
}

func (m *Miner) afterAppend(ctx context.Context, block model.Block, now time.Time) {
	entry := model.InsertBlock{Block: block}

	if m.escrow != nil && m.reward.Amount > 0 {
		rec, err := m.escrow.CreateEscrow(m.reward.Notary, m.reward.Amount, block.Header.Index, now)
		if err != nil {
			m.logger.Error("create escrow failed", zap.Uint64("index", block.Header.Index), zap.Error(err))
		} else {
			entry.Escrow = &rec
		}
	}

	if m.journal == nil {
		return
	}
	if err := m.journal.WriteBlock(ctx, entry); err != nil {
		m.metrics.ObserveJournalFailure()
		m.logger.Error("journal write failed", zap.Uint64("index", block.Header.Index), zap.Error(err))
	}
}
