package journal

import (
	"context"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

// EscrowRecordWriter appends escrow state changes to ClickHouse. The
// escrow_records table keeps the newest row per height, so a slashed or
// released record replaces the one written with its block.
type EscrowRecordWriter struct {
	repo ClickhouseRepository
}

func NewEscrowRecordWriter(repo ClickhouseRepository) *EscrowRecordWriter {
	return &EscrowRecordWriter{repo: repo}
}

func (w *EscrowRecordWriter) WriteEscrowRecord(ctx context.Context, rec model.EscrowRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.repo.InsertEscrowRecords(ctx, []model.EscrowRecord{rec})
}

// EscrowTee writes every record to each writer in order and stops at the first
// error.
type EscrowTee []EscrowWriter

func (t EscrowTee) WriteEscrowRecord(ctx context.Context, rec model.EscrowRecord) error {
	for _, w := range t {
		if err := w.WriteEscrowRecord(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
