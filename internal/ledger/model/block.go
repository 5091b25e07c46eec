// Package model defines domain models for the compliance ledger.
package model

// BlockHeader carries every field that participates in a block hash.
type BlockHeader struct {
	Index                 uint64 `json:"index"`
	Timestamp             string `json:"timestamp"`
	PreviousHash          string `json:"previous_hash"`
	TransactionMerkleRoot string `json:"transaction_merkle_root"`
	ComplianceDataHash    string `json:"compliance_data_hash"`
	Nonce                 uint64 `json:"nonce"`
}

// Block is a header, its ordered transactions and the digest of the header.
type Block struct {
	Header       BlockHeader   `json:"header"`
	Transactions []Transaction `json:"transactions"`
	Hash         string        `json:"block_hash"`
}

// Clone returns a copy of the block that shares no mutable state with b.
func (b Block) Clone() Block {
	txs := make([]Transaction, len(b.Transactions))
	for i, tx := range b.Transactions {
		txs[i] = tx.Clone()
	}
	return Block{Header: b.Header, Transactions: txs, Hash: b.Hash}
}

const (
	// SentinelHash marks a missing predecessor or missing compliance digest.
	SentinelHash = "0"
	// GenesisTimestamp is the fixed timestamp of the genesis block.
	GenesisTimestamp = "2009-01-01T00:00:00Z"
)
