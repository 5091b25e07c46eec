package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

const insertEscrowRecordsQuery = `
INSERT INTO escrow_records (
	block_height,
	notary,
	liquid_amount,
	escrow_amount,
	release_timestamp,
	is_slashed
) VALUES`

// InsertEscrowRecords stores escrow record snapshots. The newest row per
// height wins on merge.
func (r *Repository) InsertEscrowRecords(ctx context.Context, records []model.EscrowRecord) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_escrow_records", err, start)
	}()

	if len(records) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertEscrowRecordsQuery)
	if err != nil {
		return fmt.Errorf("prepare escrow batch: %w", err)
	}

	for _, rec := range records {
		if err = batch.Append(
			rec.BlockHeight,
			rec.Notary,
			rec.LiquidAmount,
			rec.EscrowAmount,
			rec.ReleaseTimestamp,
			rec.IsSlashed,
		); err != nil {
			return fmt.Errorf("append escrow record: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert escrow records: %w", err)
	}
	return nil
}
