// Package escrow holds reward records keyed by block height. A quarter of each
// reward is paid out immediately and the rest stays locked until it is either
// released to the notary or slashed.
package escrow

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
	"go.uber.org/zap"
)

// LockPeriod is five years of 365 days. Leap days are ignored.
const LockPeriod = 5 * 365 * 24 * time.Hour

const (
	EventCreate  = "create"
	EventSlash   = "slash"
	EventRelease = "release"
)

// HonestyEscrow is safe for concurrent use.
type HonestyEscrow struct {
	mu      sync.Mutex
	records map[uint64]*model.EscrowRecord
	metrics Metrics
	journal Journal
	logger  *zap.Logger
}

// Option customizes a HonestyEscrow.
type Option func(*HonestyEscrow)

// WithJournal writes every slashed or released record to j so that Load can
// bring the state back after a restart.
func WithJournal(j Journal) Option {
	return func(e *HonestyEscrow) { e.journal = j }
}

func NewHonestyEscrow(metrics Metrics, logger *zap.Logger, opts ...Option) *HonestyEscrow {
	e := &HonestyEscrow{
		records: make(map[uint64]*model.EscrowRecord),
		metrics: metrics,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateEscrow splits reward into liquid (floor of 25%) and escrowed parts and
// stores the record at height. An existing record at height is replaced.
func (e *HonestyEscrow) CreateEscrow(notary string, reward, height uint64, now time.Time) (rec model.EscrowRecord, err error) {
	defer func() {
		e.observe(EventCreate, rec.EscrowAmount, err)
	}()

	if reward == 0 {
		return model.EscrowRecord{}, newError(model.ReasonInvalidReward, height)
	}

	liquid := reward / 4
	record := &model.EscrowRecord{
		Notary:           notary,
		LiquidAmount:     liquid,
		EscrowAmount:     reward - liquid,
		BlockHeight:      height,
		ReleaseTimestamp: now.UTC().Add(LockPeriod),
	}

	e.mu.Lock()
	prev, exists := e.records[height]
	e.records[height] = record
	e.mu.Unlock()

	if exists {
		e.logger.Warn("escrow record overwritten",
			zap.Uint64("height", height),
			zap.String("previous_notary", prev.Notary),
			zap.Uint64("previous_escrow", prev.EscrowAmount),
			zap.Bool("previous_slashed", prev.IsSlashed),
		)
	}
	return *record, nil
}

// SlashAndReimburse forfeits the escrowed amount at height. It returns the
// forfeited amount and the victim it is owed to; moving the funds is up to the
// caller.
func (e *HonestyEscrow) SlashAndReimburse(height uint64, victim string) (amount uint64, to string, err error) {
	defer func() {
		e.observe(EventSlash, amount, err)
	}()

	e.mu.Lock()
	defer e.mu.Unlock()

	record, ok := e.records[height]
	if !ok {
		return 0, "", newError(model.ReasonUnknownHeight, height)
	}
	if record.IsSlashed {
		return 0, "", newError(model.ReasonAlreadySlashed, height)
	}
	amount = record.EscrowAmount
	record.IsSlashed = true
	record.EscrowAmount = 0
	e.persist(EventSlash, *record)
	return amount, victim, nil
}

// ReleaseFunds pays the escrowed amount at height to its notary once the lock
// has expired. A release after a successful release returns zero.
func (e *HonestyEscrow) ReleaseFunds(height uint64, caller string, now time.Time) (amount uint64, err error) {
	defer func() {
		e.observe(EventRelease, amount, err)
	}()

	e.mu.Lock()
	defer e.mu.Unlock()

	record, ok := e.records[height]
	if !ok {
		return 0, newError(model.ReasonUnknownHeight, height)
	}
	if caller != record.Notary {
		return 0, newError(model.ReasonUnauthorized, height)
	}
	if record.IsSlashed {
		return 0, newError(model.ReasonAlreadySlashed, height)
	}
	if now.Before(record.ReleaseTimestamp) {
		return 0, newError(model.ReasonLockActive, height)
	}
	amount = record.EscrowAmount
	if amount > 0 {
		record.EscrowAmount = 0
		e.persist(EventRelease, *record)
	}
	return amount, nil
}

// Record returns a copy of the record at height.
func (e *HonestyEscrow) Record(height uint64) (model.EscrowRecord, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	record, ok := e.records[height]
	if !ok {
		return model.EscrowRecord{}, false
	}
	return *record, true
}

// Records returns copies of all records ordered by height.
func (e *HonestyEscrow) Records() []model.EscrowRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]model.EscrowRecord, 0, len(e.records))
	for _, r := range e.records {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BlockHeight < out[j].BlockHeight })
	return out
}

// Load replaces the held records with records, for example after reading
// them back from a journal. Later entries win on duplicate heights.
func (e *HonestyEscrow) Load(records []model.EscrowRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.records = make(map[uint64]*model.EscrowRecord, len(records))
	for i := range records {
		r := records[i]
		e.records[r.BlockHeight] = &r
	}
}

// persist runs under e.mu so journal writes for one height keep their order.
// A failed write is logged and the in-memory transition stands.
func (e *HonestyEscrow) persist(event string, rec model.EscrowRecord) {
	if e.journal == nil {
		return
	}
	if err := e.journal.WriteEscrowRecord(context.Background(), rec); err != nil {
		e.logger.Error("escrow journal write failed",
			zap.String("event", event),
			zap.Uint64("height", rec.BlockHeight),
			zap.Error(err),
		)
	}
}

func (e *HonestyEscrow) observe(event string, amount uint64, err error) {
	if e.metrics != nil {
		e.metrics.ObserveEscrowEvent(event, amount, err)
	}
}
