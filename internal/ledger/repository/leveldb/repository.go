// Package leveldb is an embedded append-only journal. The daemon reads it back
// on boot to restore the chain.
package leveldb

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
	"github.com/syndtr/goleveldb/leveldb"
	ldbErrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
	"go.uber.org/zap"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

var (
	blockPrefix  = []byte("blk/")
	escrowPrefix = []byte("esc/")
)

// Repository stores one entry per block keyed by big-endian index so that
// iteration order is append order.
type Repository struct {
	db      *leveldb.DB
	metrics Metrics
	logger  *zap.Logger
}

// NewRepository opens or creates the database at path. A corrupted database
// is recovered before use.
func NewRepository(path string, metrics Metrics, logger *zap.Logger) (*Repository, error) {
	if path == "" {
		return nil, errors.New("leveldb path is required")
	}
	if metrics == nil {
		return nil, errors.New("leveldb metrics is required")
	}

	db, err := leveldb.OpenFile(path, nil)
	var corrupted *ldbErrors.ErrCorrupted
	if errors.As(err, &corrupted) {
		logger.Warn("leveldb corruption detected", zap.String("path", path), zap.Error(err))
		db, err = leveldb.RecoverFile(path, nil)
		if err == nil {
			logger.Warn("leveldb recovered from corruption", zap.String("path", path))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", path, err)
	}

	return &Repository{db: db, metrics: metrics, logger: logger}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// WriteBlock stores the block and its escrow record in one atomic batch.
// Writes are synced to disk before returning.
func (r *Repository) WriteBlock(ctx context.Context, entry model.InsertBlock) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("write_block", err, start)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}

	blockValue, err := json.Marshal(entry.Block)
	if err != nil {
		return fmt.Errorf("encode block %d: %w", entry.Block.Header.Index, err)
	}

	batch := new(leveldb.Batch)
	batch.Put(key(blockPrefix, entry.Block.Header.Index), blockValue)
	if entry.Escrow != nil {
		var escrowValue []byte
		escrowValue, err = json.Marshal(entry.Escrow)
		if err != nil {
			return fmt.Errorf("encode escrow %d: %w", entry.Escrow.BlockHeight, err)
		}
		batch.Put(key(escrowPrefix, entry.Escrow.BlockHeight), escrowValue)
	}

	if err = r.db.Write(batch, &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("write block %d: %w", entry.Block.Header.Index, err)
	}
	return nil
}

// WriteEscrowRecord replaces the stored record at rec.BlockHeight, for
// example after the record was slashed or released.
func (r *Repository) WriteEscrowRecord(ctx context.Context, rec model.EscrowRecord) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("write_escrow_record", err, start)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode escrow %d: %w", rec.BlockHeight, err)
	}
	if err = r.db.Put(key(escrowPrefix, rec.BlockHeight), value, &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("write escrow %d: %w", rec.BlockHeight, err)
	}
	return nil
}

// LoadBlocks returns every journaled block in index order.
func (r *Repository) LoadBlocks(ctx context.Context) (blocks []model.Block, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("load_blocks", err, start)
	}()

	iter := r.db.NewIterator(util.BytesPrefix(blockPrefix), nil)
	defer iter.Release()

	for iter.Next() {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		var b model.Block
		if err = decode(iter.Value(), &b); err != nil {
			return nil, fmt.Errorf("decode block at key %x: %w", iter.Key(), err)
		}
		blocks = append(blocks, b)
	}
	if err = iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate blocks: %w", err)
	}
	return blocks, nil
}

// EscrowRecords returns every journaled escrow record in height order.
func (r *Repository) EscrowRecords(ctx context.Context) (records []model.EscrowRecord, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("escrow_records", err, start)
	}()

	iter := r.db.NewIterator(util.BytesPrefix(escrowPrefix), nil)
	defer iter.Release()

	for iter.Next() {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		var rec model.EscrowRecord
		if err = decode(iter.Value(), &rec); err != nil {
			return nil, fmt.Errorf("decode escrow at key %x: %w", iter.Key(), err)
		}
		records = append(records, rec)
	}
	if err = iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate escrow records: %w", err)
	}
	return records, nil
}

func key(prefix []byte, index uint64) []byte {
	k := make([]byte, len(prefix)+8)
	copy(k, prefix)
	binary.BigEndian.PutUint64(k[len(prefix):], index)
	return k
}

// decode keeps numbers as json.Number so transactions re-encode to the bytes
// that were hashed.
func decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
