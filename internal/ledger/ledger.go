// Package ledger owns the ordered collection of transactions and keeps the
// persisted ledger record in step with it.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/atlas/internal/model"
	"github.com/theirongolddev/atlas/internal/money"
	"github.com/theirongolddev/atlas/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DateLayout is the accepted transaction date format.
const DateLayout = "2006-01-02"

// ErrInvalidTransaction is wrapped by every ValidationError.
var ErrInvalidTransaction = errors.New("invalid transaction")

// ValidationError describes why a transaction was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidTransaction
}

// record is the persisted shape of the ledger.
type record struct {
	Transactions []model.Transaction `json:"transactions"`
}

// Ledger is the in-memory transaction list backed by a Records store.
// It is not safe for concurrent use.
type Ledger struct {
	records store.Records
	log     zerolog.Logger
	newID   func() string
	txs     []model.Transaction
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(lg *Ledger) { lg.log = l }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(lg *Ledger) { lg.newID = fn }
}

// New returns an empty ledger persisting through records.
func New(records store.Records, opts ...Option) *Ledger {
	l := &Ledger{
		records: records,
		log:     zerolog.Nop(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load replaces the in-memory state with the persisted record. A missing
// record yields an empty ledger; a corrupt one is logged and also yields
// an empty ledger. Only storage failures are returned.
func (l *Ledger) Load(ctx context.Context) error {
	data, err := l.records.Get(ctx, store.LedgerKey)
	if errors.Is(err, store.ErrNotFound) {
		l.txs = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading ledger: %w", err)
	}

	txs, err := decode(data)
	if err != nil {
		l.log.Warn().Err(&store.CorruptStateError{Key: store.LedgerKey, Err: err}).
			Msg("starting with an empty ledger")
		l.txs = nil
		return nil
	}

	kept := txs[:0]
	for i, tx := range txs {
		if err := checkStored(tx); err != nil {
			l.log.Warn().Err(&store.CorruptStateError{Key: store.LedgerKey, Err: err}).
				Int("index", i).Str("id", tx.ID).Msg("dropping unreadable transaction")
			continue
		}
		kept = append(kept, tx)
	}
	txs = kept

	l.txs = txs
	l.log.Debug().Int("transactions", len(txs)).Msg("ledger loaded")
	return nil
}

func decode(data []byte) ([]model.Transaction, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	field, ok := raw["transactions"]
	if !ok {
		return nil, errors.New("missing transactions field")
	}
	var txs []model.Transaction
	if err := json.Unmarshal(field, &txs); err != nil {
		return nil, fmt.Errorf("transactions: %w", err)
	}
	if txs == nil {
		return nil, errors.New("transactions is not an array")
	}
	return txs, nil
}

// checkStored accepts any record the aggregates can use, including legacy
// same-account transfers that Validate would reject.
func checkStored(tx model.Transaction) error {
	if !tx.Type.Valid() {
		return fmt.Errorf("unknown type %q", tx.Type)
	}
	return money.CheckRange(tx.Amount)
}

// Validate checks tx and returns a normalized copy with its amount rounded.
func Validate(tx model.Transaction) (model.Transaction, error) {
	if !tx.Type.Valid() {
		return tx, &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown type %q", tx.Type)}
	}

	if err := money.CheckRange(tx.Amount); err != nil {
		return tx, &ValidationError{Field: "amount", Reason: err.Error()}
	}
	tx.Amount = money.RoundCents(tx.Amount)
	if !tx.Amount.IsPositive() {
		return tx, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	if tx.Date == "" {
		return tx, &ValidationError{Field: "date", Reason: "is required"}
	}
	if _, err := time.Parse(DateLayout, tx.Date); err != nil {
		return tx, &ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", tx.Date)}
	}

	tx.Normalize()
	if tx.Type == model.Transfer && tx.FromAccount == tx.ToAccount {
		return tx, &ValidationError{Field: "transfer", Reason: "from and to accounts must differ"}
	}
	return tx, nil
}

// Append validates tx, assigns it a fresh ID and adds it at the end.
// Any ID set by the caller is replaced. On error the ledger is unchanged.
func (l *Ledger) Append(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	tx, err := Validate(tx)
	if err != nil {
		return model.Transaction{}, err
	}
	tx.ID = l.newID()

	next := make([]model.Transaction, len(l.txs), len(l.txs)+1)
	copy(next, l.txs)
	next = append(next, tx)

	if err := l.persist(ctx, next); err != nil {
		return model.Transaction{}, err
	}
	l.txs = next

	l.log.Info().Str("id", tx.ID).Str("type", string(tx.Type)).
		Str("amount", tx.Amount.StringFixed(2)).Msg("transaction appended")
	return tx, nil
}

// Remove deletes the transaction with the given ID. An unknown ID is a
// no-op and reports false.
func (l *Ledger) Remove(ctx context.Context, id string) (bool, error) {
	idx := -1
	for i, tx := range l.txs {
		if tx.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.log.Debug().Str("id", id).Msg("remove: no such transaction")
		return false, nil
	}

	next := make([]model.Transaction, 0, len(l.txs)-1)
	next = append(next, l.txs[:idx]...)
	next = append(next, l.txs[idx+1:]...)

	if err := l.persist(ctx, next); err != nil {
		return false, err
	}
	l.txs = next

	l.log.Info().Str("id", id).Msg("transaction removed")
	return true, nil
}

// List returns a copy of the transactions in insertion order.
func (l *Ledger) List() []model.Transaction {
	out := make([]model.Transaction, len(l.txs))
	copy(out, l.txs)
	return out
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	return len(l.txs)
}

// Get returns the transaction with the given ID.
func (l *Ledger) Get(id string) (model.Transaction, bool) {
	for _, tx := range l.txs {
		if tx.ID == id {
			return tx, true
		}
	}
	return model.Transaction{}, false
}

func (l *Ledger) persist(ctx context.Context, txs []model.Transaction) error {
	if txs == nil {
		txs = []model.Transaction{}
	}
	data, err := json.Marshal(record{Transactions: txs})
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	if err := l.records.Put(ctx, store.LedgerKey, data); err != nil {
		l.log.Error().Err(err).Msg("persisting ledger")
		return fmt.Errorf("saving ledger: %w", err)
	}
	return nil
}
