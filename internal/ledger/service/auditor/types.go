package auditor

import (
	"context"
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BlockSource interface {
		LoadBlocks(ctx context.Context) ([]model.Block, error)
	}
	Metrics interface {
		ObserveAudit(reason model.ReasonCode, blocks int, err error, started time.Time)
	}
)
