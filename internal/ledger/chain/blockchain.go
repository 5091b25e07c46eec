package chain

import (
	"fmt"
	"sync"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

// Blockchain is an ordered, append-only sequence of blocks starting at the
// genesis block. All methods are safe for concurrent use; Append holds an
// exclusive lock across reading the tail and extending the sequence.
type Blockchain struct {
	mu     sync.RWMutex
	blocks []model.Block
}

// NewBlockchain returns a chain holding only the genesis block.
func NewBlockchain() *Blockchain {
	return &Blockchain{blocks: []model.Block{Genesis()}}
}

// Restore rebuilds a chain from previously accepted blocks. The first block
// must be the genesis block and the whole sequence must validate.
func Restore(blocks []model.Block) (*Blockchain, error) {
	if len(blocks) == 0 {
		return NewBlockchain(), nil
	}
	genesis := Genesis()
	if blocks[0].Hash != genesis.Hash {
		return nil, newRuleError(model.ReasonHashMismatch, 0, fmt.Errorf("restored genesis %s differs from %s", blocks[0].Hash, genesis.Hash))
	}

	restored := make([]model.Block, len(blocks))
	for i, b := range blocks {
		txs, err := normalizeTransactions(b.Transactions)
		if err != nil {
			return nil, newRuleError(model.ReasonMerkleMismatch, uint64(i), err)
		}
		b.Transactions = txs
		restored[i] = b
	}
	if res := ValidateBlocks(restored); !res.Valid {
		return nil, fmt.Errorf("restore chain: %w", res.Err())
	}
	return &Blockchain{blocks: restored}, nil
}

// Len returns the number of blocks, genesis included.
func (c *Blockchain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blocks)
}

// Latest returns the tail block.
func (c *Blockchain) Latest() (model.Block, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest()
}

func (c *Blockchain) latest() (model.Block, error) {
	if len(c.blocks) == 0 {
		return model.Block{}, ErrEmptyChain
	}
	return c.blocks[len(c.blocks)-1].Clone(), nil
}

// Block returns the block at index.
func (c *Blockchain) Block(index uint64) (model.Block, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if index >= uint64(len(c.blocks)) {
		return model.Block{}, false
	}
	return c.blocks[index].Clone(), true
}

// Blocks returns a copy of the whole sequence.
func (c *Blockchain) Blocks() []model.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Block, len(c.blocks))
	for i, b := range c.blocks {
		out[i] = b.Clone()
	}
	return out
}

// Append validates candidate against the tail and appends it. Checks run in
// order and the first failure is returned as a *RuleError: previous hash,
// Merkle root, block hash, then index.
func (c *Blockchain) Append(candidate model.Block) (model.Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tail, err := c.latest()
	if err != nil {
		return model.Block{}, err
	}
	index := uint64(len(c.blocks))

	// Checks run on a private copy so later edits by the caller cannot
	// reach the stored block.
	txs, err := normalizeTransactions(candidate.Transactions)
	if err != nil {
		return model.Block{}, newRuleError(model.ReasonMerkleMismatch, index, err)
	}
	candidate.Transactions = txs

	if err := VerifyLink(tail, candidate, index); err != nil {
		return model.Block{}, err
	}
	if err := VerifyBlock(candidate, index); err != nil {
		return model.Block{}, err
	}
	if candidate.Header.Index != index {
		return model.Block{}, newRuleError(model.ReasonIndexMismatch, index,
			fmt.Errorf("header index %d", candidate.Header.Index))
	}

	c.blocks = append(c.blocks, candidate)
	return candidate.Clone(), nil
}

// Validate walks the whole chain. See ValidateBlocks.
func (c *Blockchain) Validate() ValidationResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.blocks) == 0 {
		return ValidationResult{Reason: model.ReasonHashMismatch}
	}
	return ValidateBlocks(c.blocks)
}
