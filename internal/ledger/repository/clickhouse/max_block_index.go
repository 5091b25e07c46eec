package clickhouse

import (
	"context"
	"fmt"
	"time"
)

const maxBlockIndexQuery = `
SELECT count() AS blocks, coalesce(max(block_index), toUInt64(0)) AS max_index
FROM ledger_blocks FINAL`

// MaxBlockIndex returns the highest journaled block index. ok is false when
// the journal is empty.
func (r *Repository) MaxBlockIndex(ctx context.Context) (index uint64, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("max_block_index", err, start)
	}()

	rows, err := r.conn.Query(ctx, maxBlockIndexQuery)
	if err != nil {
		return 0, false, fmt.Errorf("query max block index: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		return 0, false, fmt.Errorf("max block index not found")
	}

	var count uint64
	if err = rows.Scan(&count, &index); err != nil {
		return 0, false, fmt.Errorf("scan max block index: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, false, fmt.Errorf("iterate max block index: %w", err)
	}

	return index, count > 0, nil
}
