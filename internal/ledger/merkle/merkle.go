// Package merkle builds order-sensitive Merkle roots over transaction batches.
package merkle

import (
	"fmt"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/codec"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

// EmptyRoot is the root of an empty transaction list: the digest of no bytes.
var EmptyRoot = codec.DigestBytes(nil)

// ProofStep is one sibling on the path from a leaf to the root.
type ProofStep struct {
	Hash string `json:"hash"`
	// Left is true when the sibling sits to the left of the running hash.
	Left bool `json:"left"`
}

// Proof proves that a leaf is included under Root.
type Proof struct {
	LeafIndex int         `json:"leaf_index"`
	LeafHash  string      `json:"leaf_hash"`
	Root      string      `json:"root"`
	Siblings  []ProofStep `json:"siblings"`
}

// Root returns the Merkle root of txs.
func Root(txs []model.Transaction) (string, error) {
	leaves, err := Leaves(txs)
	if err != nil {
		return "", err
	}
	root, _ := build(leaves)
	return root, nil
}

// Leaves digests every transaction in order.
func Leaves(txs []model.Transaction) ([]string, error) {
	leaves := make([]string, len(txs))
	for i, tx := range txs {
		h, err := codec.Digest(tx)
		if err != nil {
			return nil, fmt.Errorf("digest transaction %d: %w", i, err)
		}
		leaves[i] = h
	}
	return leaves, nil
}

// Build returns the root of txs together with an inclusion proof per transaction.
func Build(txs []model.Transaction) (string, []Proof, error) {
	leaves, err := Leaves(txs)
	if err != nil {
		return "", nil, err
	}
	root, layers := build(leaves)

	proofs := make([]Proof, len(leaves))
	for i := range leaves {
		proof := Proof{LeafIndex: i, LeafHash: leaves[i], Root: root}
		idx := i
		for _, layer := range layers[:len(layers)-1] {
			if idx%2 == 0 {
				sibling := layer[idx]
				if idx+1 < len(layer) {
					sibling = layer[idx+1]
				}
				proof.Siblings = append(proof.Siblings, ProofStep{Hash: sibling})
			} else {
				proof.Siblings = append(proof.Siblings, ProofStep{Hash: layer[idx-1], Left: true})
			}
			idx /= 2
		}
		proofs[i] = proof
	}
	return root, proofs, nil
}

// VerifyProof recomputes the root from the proof path.
func VerifyProof(p Proof) bool {
	running := p.LeafHash
	for _, step := range p.Siblings {
		if step.Left {
			running = HashPair(step.Hash, running)
		} else {
			running = HashPair(running, step.Hash)
		}
	}
	return running == p.Root
}

// HashPair hashes the concatenation of two hex digests.
func HashPair(left, right string) string {
	return codec.DigestString(left + right)
}

// build returns the root and every layer from the leaves up to the root.
func build(leaves []string) (string, [][]string) {
	if len(leaves) == 0 {
		return EmptyRoot, nil
	}

	layer := leaves
	layers := [][]string{layer}
	for len(layer) > 1 {
		next := make([]string, 0, (len(layer)+1)/2)
		for i := 0; i < len(layer); i += 2 {
			left := layer[i]
			right := left
			if i+1 < len(layer) {
				right = layer[i+1]
			}
			next = append(next, HashPair(left, right))
		}
		layer = next
		layers = append(layers, layer)
	}
	return layer[0], layers
}
