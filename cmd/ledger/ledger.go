package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/chain"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/compliance"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/escrow"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/repository/clickhouse"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/repository/leveldb"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/service/journal"
	"github.com/goodnatureofminers/complianceledger/internal/metrics"
	"go.uber.org/zap"
)

// storage holds the open journal backends.
type storage struct {
	local  *leveldb.Repository
	remote *clickhouse.Repository
	writer *journal.BlockWriter
	sink   journal.Writer
	escrow journal.EscrowWriter
}

func openStorage(ctx context.Context, logger *zap.Logger) (*storage, error) {
	local, err := leveldb.NewRepository(
		filepath.Join(config.DataDir, "journal"),
		metrics.NewRepository("leveldb"),
		logger.Named("leveldb"),
	)
	if err != nil {
		return nil, err
	}
	s := &storage{local: local, sink: local, escrow: local}
	if config.ClickhouseDSN == "" {
		return s, nil
	}

	remote, err := clickhouse.NewRepository(config.ClickhouseDSN, metrics.NewRepository("clickhouse"))
	if err != nil {
		_ = local.Close()
		return nil, err
	}
	s.remote = remote
	s.writer = journal.NewBlockWriter(remote, logger.Named("journal"))
	// Pending entries are flushed on Stop, after ctx is already canceled.
	s.writer.Start(context.WithoutCancel(ctx))
	s.sink = journal.Tee{local, s.writer}
	s.escrow = journal.EscrowTee{local, journal.NewEscrowRecordWriter(remote)}
	return s, nil
}

func (s *storage) Close(logger *zap.Logger) {
	if s.writer != nil {
		s.writer.Stop()
	}
	if s.remote != nil {
		if err := s.remote.Close(); err != nil {
			logger.Error("close clickhouse", zap.Error(err))
		}
	}
	if err := s.local.Close(); err != nil {
		logger.Error("close leveldb", zap.Error(err))
	}
}

// restore rebuilds the chain and escrow from the local journal. An empty
// journal gets the genesis block.
func (s *storage) restore(ctx context.Context, esc *escrow.HonestyEscrow, logger *zap.Logger) (*chain.Blockchain, error) {
	blocks, err := s.local.LoadBlocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load journal: %w", err)
	}
	if len(blocks) == 0 {
		c := chain.NewBlockchain()
		genesis, err := c.Latest()
		if err != nil {
			return nil, err
		}
		if err := s.sink.WriteBlock(ctx, model.InsertBlock{Block: genesis}); err != nil {
			return nil, fmt.Errorf("journal genesis: %w", err)
		}
		logger.Info("journal initialized with genesis", zap.String("hash", genesis.Hash))
		return c, nil
	}

	c, err := chain.Restore(blocks)
	if err != nil {
		return nil, fmt.Errorf("restore chain: %w", err)
	}
	records, err := s.local.EscrowRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load escrow records: %w", err)
	}
	esc.Load(records)
	logger.Info("chain restored", zap.Int("blocks", c.Len()), zap.Int("escrow_records", len(records)))

	if err := s.catchUp(ctx, c, esc, logger); err != nil {
		return nil, err
	}
	return c, nil
}

// catchUp mirrors blocks the ClickHouse journal is missing, for example after
// the daemon ran without a DSN for a while.
func (s *storage) catchUp(ctx context.Context, c *chain.Blockchain, esc *escrow.HonestyEscrow, logger *zap.Logger) error {
	if s.remote == nil {
		return nil
	}
	tip, ok, err := s.remote.MaxBlockIndex(ctx)
	if err != nil {
		return fmt.Errorf("read clickhouse tip: %w", err)
	}
	var next uint64
	if ok {
		next = tip + 1
	}

	blocks := c.Blocks()
	if next > uint64(len(blocks)) {
		logger.Warn("clickhouse journal is ahead of the local journal",
			zap.Uint64("clickhouse_tip", tip),
			zap.Int("local_blocks", len(blocks)),
		)
		return nil
	}
	for _, b := range blocks[next:] {
		entry := model.InsertBlock{Block: b}
		if rec, found := esc.Record(b.Header.Index); found {
			entry.Escrow = &rec
		}
		if err := s.writer.WriteBlock(ctx, entry); err != nil {
			return fmt.Errorf("mirror block %d: %w", b.Header.Index, err)
		}
	}
	if n := uint64(len(blocks)) - next; n > 0 {
		logger.Info("clickhouse journal caught up", zap.Uint64("from", next), zap.Uint64("blocks", n))
	}
	return nil
}

func newChecker(logger *zap.Logger) (compliance.Checker, error) {
	switch config.Checker {
	case "pass":
		return compliance.NewPassingChecker(nil), nil
	case "reject":
		return compliance.NewRejectingChecker(model.ReasonLowLightEnvironment), nil
	}

	policy := compliance.DefaultPolicy()
	if config.PolicyFile != "" {
		var err error
		if policy, err = compliance.LoadPolicy(config.PolicyFile); err != nil {
			return nil, err
		}
	}
	issuer, err := compliance.NewIssuer(
		compliance.StaticIdentityProvider{},
		compliance.NewStaticWeatherOracle(),
		compliance.DeterministicSigner{},
		policy,
	)
	if err != nil {
		return nil, err
	}
	return compliance.NewAttestationChecker(
		compliance.DemoAttestationSource{DeviceID: config.DeviceID, Signer: config.Notary},
		issuer,
		metrics.NewCompliance("attestation"),
		logger.Named("compliance"),
	)
}
