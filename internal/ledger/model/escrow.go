package model

import "time"

// EscrowRecord tracks the split reward for a mined height.
type EscrowRecord struct {
	Notary           string
	LiquidAmount     uint64
	EscrowAmount     uint64
	BlockHeight      uint64
	ReleaseTimestamp time.Time
	IsSlashed        bool
}
