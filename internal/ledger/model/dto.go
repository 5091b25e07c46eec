package model

// InsertBlock groups an accepted block with the escrow record created for it.
// It is one append-only journal entry.
type InsertBlock struct {
	Block  Block
	Escrow *EscrowRecord
}
