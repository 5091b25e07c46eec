// Package chain implements block construction and the append-only Blockchain.
package chain

import (
	"fmt"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/codec"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/merkle"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

// HeaderHash is the digest of the canonical header encoding.
func HeaderHash(h model.BlockHeader) (string, error) {
	return codec.Digest(h)
}

// NewBlock builds a block from a header and its transactions. The header is
// taken as given, including its Merkle root and index; both are checked only
// when the block is appended to a Blockchain.
func NewBlock(header model.BlockHeader, txs []model.Transaction) (model.Block, error) {
	hash, err := HeaderHash(header)
	if err != nil {
		return model.Block{}, fmt.Errorf("hash header %d: %w", header.Index, err)
	}
	normalized, err := normalizeTransactions(txs)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d: %w", header.Index, err)
	}
	return model.Block{Header: header, Transactions: normalized, Hash: hash}, nil
}

// normalizeTransactions rebuilds every transaction from its canonical
// encoding. The result shares nothing with txs and holds only map[string]any,
// []any, json.Number, string, bool and nil values, which Clone copies deeply.
func normalizeTransactions(txs []model.Transaction) ([]model.Transaction, error) {
	out := make([]model.Transaction, len(txs))
	for i, tx := range txs {
		raw, err := codec.Encode(tx)
		if err != nil {
			return nil, fmt.Errorf("encode transaction %d: %w", i, err)
		}
		if out[i], err = codec.DecodeTransaction(raw); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	return out, nil
}

// Genesis returns the fixed first block of every chain.
func Genesis() model.Block {
	txs := []model.Transaction{{"type": "genesis"}}
	root, err := merkle.Root(txs)
	if err != nil {
		panic(fmt.Sprintf("genesis merkle root: %v", err))
	}
	b, err := NewBlock(model.BlockHeader{
		Index:                 0,
		Timestamp:             model.GenesisTimestamp,
		PreviousHash:          model.SentinelHash,
		TransactionMerkleRoot: root,
		ComplianceDataHash:    model.SentinelHash,
		Nonce:                 0,
	}, txs)
	if err != nil {
		panic(fmt.Sprintf("genesis block: %v", err))
	}
	return b
}

// VerifyBlock recomputes the Merkle root and block hash of b. It does not
// look at linkage. index is used for error reporting only.
func VerifyBlock(b model.Block, index uint64) error {
	root, err := merkle.Root(b.Transactions)
	if err != nil {
		return newRuleError(model.ReasonMerkleMismatch, index, err)
	}
	if root != b.Header.TransactionMerkleRoot {
		return newRuleError(model.ReasonMerkleMismatch, index, nil)
	}

	hash, err := HeaderHash(b.Header)
	if err != nil {
		return newRuleError(model.ReasonHashMismatch, index, err)
	}
	if hash != b.Hash {
		return newRuleError(model.ReasonHashMismatch, index, nil)
	}
	return nil
}

// VerifyLink checks that b extends prev at position index.
func VerifyLink(prev, b model.Block, index uint64) error {
	if b.Header.PreviousHash != prev.Hash {
		return newRuleError(model.ReasonPrevHashMismatch, index, nil)
	}
	return nil
}
