// Package journal forwards accepted blocks and escrow state changes to durable
// storage.
package journal

import (
	"context"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
	"github.com/goodnatureofminers/complianceledger/pkg/batcher"
	"go.uber.org/zap"
)

// BlockWriter batches journal entries in front of ClickHouse. Entries are
// flushed in the order they were written.
type BlockWriter struct {
	repo         ClickhouseRepository
	logger       *zap.Logger
	blockBatcher *batcher.Batcher[model.InsertBlock]
}

func NewBlockWriter(repo ClickhouseRepository, logger *zap.Logger) *BlockWriter {
	w := &BlockWriter{
		repo:   repo,
		logger: logger,
	}

	w.blockBatcher = batcher.New[model.InsertBlock](
		logger.Named("blockBatcher"),
		w.flush,
		blockBatcherCapacity,
		blockBatcherFlushInterval,
		blockBatcherRPS,
	)
	return w
}

func (w *BlockWriter) Start(ctx context.Context) {
	w.blockBatcher.Start(ctx)
}

// Stop flushes pending entries and waits for the flush to finish.
func (w *BlockWriter) Stop() {
	w.blockBatcher.Stop()
}

func (w *BlockWriter) WriteBlock(ctx context.Context, b model.InsertBlock) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return w.blockBatcher.Add(ctx, b)
}

// flush writes transactions and escrow records before block headers, so a
// header row is only visible once its payload is stored.
func (w *BlockWriter) flush(ctx context.Context, entries []model.InsertBlock) error {
	blocks := make([]model.Block, 0, len(entries))
	records := make([]model.EscrowRecord, 0, len(entries))

	for _, entry := range entries {
		blocks = append(blocks, entry.Block)
		if entry.Escrow != nil {
			records = append(records, *entry.Escrow)
		}
	}

	if err := w.repo.InsertTransactions(ctx, blocks); err != nil {
		return err
	}
	if err := w.repo.InsertEscrowRecords(ctx, records); err != nil {
		return err
	}
	if err := w.repo.InsertBlocks(ctx, blocks); err != nil {
		return err
	}
	w.logger.Debug("journal flushed",
		zap.Uint64("from", blocks[0].Header.Index),
		zap.Uint64("to", blocks[len(blocks)-1].Header.Index),
	)
	return nil
}

// Tee writes every entry to each writer in order and stops at the first error.
type Tee []Writer

func (t Tee) WriteBlock(ctx context.Context, b model.InsertBlock) error {
	for _, w := range t {
		if err := w.WriteBlock(ctx, b); err != nil {
			return err
		}
	}
	return nil
}
