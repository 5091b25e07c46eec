package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
	"github.com/goodnatureofminers/complianceledger/pkg/safe"
)

const insertBlocksQuery = `
INSERT INTO ledger_blocks (
	block_index,
	hash,
	previous_hash,
	transaction_merkle_root,
	compliance_data_hash,
	timestamp,
	nonce,
	tx_count
) VALUES`

// InsertBlocks stores block headers in ClickHouse.
func (r *Repository) InsertBlocks(ctx context.Context, blocks []model.Block) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_blocks", err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertBlocksQuery)
	if err != nil {
		return fmt.Errorf("prepare blocks batch: %w", err)
	}

	for _, block := range blocks {
		var txCount uint32
		txCount, err = safe.Uint32(len(block.Transactions))
		if err != nil {
			return fmt.Errorf("block %d tx count: %w", block.Header.Index, err)
		}
		if err = batch.Append(
			block.Header.Index,
			block.Hash,
			block.Header.PreviousHash,
			block.Header.TransactionMerkleRoot,
			block.Header.ComplianceDataHash,
			block.Header.Timestamp,
			block.Header.Nonce,
			txCount,
		); err != nil {
			return fmt.Errorf("append block: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert blocks: %w", err)
	}
	return nil
}
