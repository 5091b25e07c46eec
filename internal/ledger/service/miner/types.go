package miner

import (
	"context"
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ComplianceChecker interface {
		PerformCheck(ctx context.Context, now time.Time) (model.ComplianceResult, error)
	}
	Chain interface {
		Len() int
		Latest() (model.Block, error)
		Append(candidate model.Block) (model.Block, error)
	}
	Escrow interface {
		CreateEscrow(notary string, reward, height uint64, now time.Time) (model.EscrowRecord, error)
	}
	Journal interface {
		WriteBlock(ctx context.Context, b model.InsertBlock) error
	}
	Metrics interface {
		ObserveMine(reason model.ReasonCode, err error, started time.Time)
		ObserveJournalFailure()
	}
)
