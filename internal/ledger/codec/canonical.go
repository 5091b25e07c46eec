// Package codec implements the canonical encoding and digests used for every
// hash in the ledger.
//
// A value is canonicalized by round-tripping it through JSON into generic maps,
// slices and json.Number literals, then re-encoding it. Map keys come out sorted
// at every nesting level, insignificant whitespace is dropped, HTML characters
// are not escaped and numbers keep the literal produced by the first pass.
package codec

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
)

// Encode returns the canonical bytes of v.
func Encode(v any) ([]byte, error) {
	raw, err := marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("normalize value: %w", err)
	}

	out, err := marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("encode normalized value: %w", err)
	}
	return out, nil
}

// Digest returns the lowercase hex SHA-256 of the canonical encoding of v.
func Digest(v any) (string, error) {
	b, err := Encode(v)
	if err != nil {
		return "", err
	}
	return DigestBytes(b), nil
}

// DigestBytes returns the lowercase hex SHA-256 of b.
func DigestBytes(b []byte) string {
	return hex.EncodeToString(chainhash.HashB(b))
}

// DigestString is DigestBytes over the UTF-8 bytes of s.
func DigestString(s string) string {
	return DigestBytes([]byte(s))
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// DecodeTransaction parses a canonical transaction encoding. Numbers are kept
// as json.Number so that re-encoding reproduces the input bytes.
func DecodeTransaction(b []byte) (model.Transaction, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var tx model.Transaction
	if err := dec.Decode(&tx); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	if tx == nil {
		return nil, fmt.Errorf("decode transaction: %s is not an object", b)
	}
	return tx, nil
}
