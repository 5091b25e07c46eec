// Package transport exposes the ledger over REST and gRPC health.
package transport

import (
	"github.com/goodnatureofminers/complianceledger/internal/ledger/chain"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ChainReader interface {
		Len() int
		Latest() (model.Block, error)
		Block(index uint64) (model.Block, bool)
		Validate() chain.ValidationResult
	}
	EscrowReader interface {
		Record(height uint64) (model.EscrowRecord, bool)
	}
	Validator interface {
		Validate() chain.ValidationResult
	}
)
