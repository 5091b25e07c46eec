package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/codec"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

const loadBlocksQuery = `
SELECT
	block_index,
	hash,
	previous_hash,
	transaction_merkle_root,
	compliance_data_hash,
	timestamp,
	nonce
FROM ledger_blocks FINAL
ORDER BY block_index ASC`

const loadTransactionsQuery = `
SELECT
	block_index,
	payload
FROM ledger_transactions FINAL
ORDER BY block_index ASC, position ASC`

// LoadBlocks reads the whole journal in index order with transactions
// attached. Blocks are returned as stored; callers validate them.
func (r *Repository) LoadBlocks(ctx context.Context) (blocks []model.Block, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("load_blocks", err, start)
	}()

	blocks, err = r.loadHeaders(ctx)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return blocks, nil
	}

	positions := make(map[uint64]int, len(blocks))
	for i, b := range blocks {
		positions[b.Header.Index] = i
	}
	if err = r.attachTransactions(ctx, blocks, positions); err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *Repository) loadHeaders(ctx context.Context) (blocks []model.Block, err error) {
	rows, err := r.conn.Query(ctx, loadBlocksQuery)
	if err != nil {
		return nil, fmt.Errorf("query blocks: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var b model.Block
		if err = rows.Scan(
			&b.Header.Index,
			&b.Hash,
			&b.Header.PreviousHash,
			&b.Header.TransactionMerkleRoot,
			&b.Header.ComplianceDataHash,
			&b.Header.Timestamp,
			&b.Header.Nonce,
		); err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		b.Transactions = []model.Transaction{}
		blocks = append(blocks, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blocks: %w", err)
	}
	return blocks, nil
}

func (r *Repository) attachTransactions(ctx context.Context, blocks []model.Block, positions map[uint64]int) (err error) {
	rows, err := r.conn.Query(ctx, loadTransactionsQuery)
	if err != nil {
		return fmt.Errorf("query transactions: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var (
			index   uint64
			payload string
		)
		if err = rows.Scan(&index, &payload); err != nil {
			return fmt.Errorf("scan transaction: %w", err)
		}
		pos, ok := positions[index]
		if !ok {
			return fmt.Errorf("transaction references unknown block %d", index)
		}
		tx, decodeErr := codec.DecodeTransaction([]byte(payload))
		if decodeErr != nil {
			err = fmt.Errorf("block %d: %w", index, decodeErr)
			return err
		}
		blocks[pos].Transactions = append(blocks[pos].Transactions, tx)
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("iterate transactions: %w", err)
	}
	return nil
}
