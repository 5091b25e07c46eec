package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/codec"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
	"github.com/goodnatureofminers/complianceledger/pkg/safe"
)

const insertTransactionsQuery = `
INSERT INTO ledger_transactions (
	block_index,
	position,
	leaf_hash,
	payload
) VALUES`

// InsertTransactions stores the canonical encoding of every transaction of
// blocks, keyed by block index and position.
func (r *Repository) InsertTransactions(ctx context.Context, blocks []model.Block) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transactions", err, start)
	}()

	if countTransactions(blocks) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertTransactionsQuery)
	if err != nil {
		return fmt.Errorf("prepare transactions batch: %w", err)
	}

	for _, block := range blocks {
		for i, tx := range block.Transactions {
			var (
				payload  []byte
				position uint32
			)
			payload, err = codec.Encode(tx)
			if err != nil {
				return fmt.Errorf("encode transaction %d/%d: %w", block.Header.Index, i, err)
			}
			position, err = safe.Uint32(i)
			if err != nil {
				return fmt.Errorf("transaction position %d/%d: %w", block.Header.Index, i, err)
			}
			if err = batch.Append(
				block.Header.Index,
				position,
				codec.DigestBytes(payload),
				string(payload),
			); err != nil {
				return fmt.Errorf("append transaction: %w", err)
			}
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}

func countTransactions(blocks []model.Block) int {
	n := 0
	for _, b := range blocks {
		n += len(b.Transactions)
	}
	return n
}
