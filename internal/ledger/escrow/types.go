package escrow

import (
	"context"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics observes escrow state transitions.
	Metrics interface {
		ObserveEscrowEvent(event string, amount uint64, err error)
	}
	// Journal persists the state of a record after it is slashed or released.
	Journal interface {
		WriteEscrowRecord(ctx context.Context, rec model.EscrowRecord) error
	}
)
