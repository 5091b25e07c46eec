package journal

import (
	"context"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ClickhouseRepository interface {
		InsertBlocks(ctx context.Context, blocks []model.Block) error
		InsertTransactions(ctx context.Context, blocks []model.Block) error
		InsertEscrowRecords(ctx context.Context, records []model.EscrowRecord) error
	}
	Writer interface {
		WriteBlock(ctx context.Context, b model.InsertBlock) error
	}
	EscrowWriter interface {
		WriteEscrowRecord(ctx context.Context, rec model.EscrowRecord) error
	}
)
