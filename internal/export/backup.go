// Package export writes the ledger to JSON backups, CSV and XLSX, and
// restores JSON backups.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/theirongolddev/atlas/internal/ledger"
	"github.com/theirongolddev/atlas/internal/model"
)

// BackupVersion is the current backup format version.
const BackupVersion = 1

// Backup is a full export of the profile and the ledger.
type Backup struct {
	Version    int            `json:"version"`
	ExportedAt time.Time      `json:"exportedAt"`
	Profile    *model.Profile `json:"profile"`
	Ledger     LedgerRecord   `json:"ledger"`
}

// LedgerRecord mirrors the persisted ledger record.
type LedgerRecord struct {
	Transactions []model.Transaction `json:"transactions"`
}

// NewBackup assembles a backup. A nil profile is exported as null.
func NewBackup(p *model.Profile, txs []model.Transaction, now time.Time) Backup {
	if txs == nil {
		txs = []model.Transaction{}
	}
	return Backup{
		Version:    BackupVersion,
		ExportedAt: now.UTC(),
		Profile:    p,
		Ledger:     LedgerRecord{Transactions: txs},
	}
}

// WriteJSON writes b as indented JSON.
func WriteJSON(w io.Writer, b Backup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	return nil
}

// ReadJSON decodes a backup and checks its version.
func ReadJSON(r io.Reader) (Backup, error) {
	var b Backup
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return Backup{}, fmt.Errorf("reading backup: %w", err)
	}
	if b.Version < 1 || b.Version > BackupVersion {
		return Backup{}, fmt.Errorf("reading backup: unsupported version %d", b.Version)
	}
	return b, nil
}

// Appender adds validated transactions to a ledger.
type Appender interface {
	Append(ctx context.Context, tx model.Transaction) (model.Transaction, error)
}

// ProfileReplacer replaces the stored profile.
type ProfileReplacer interface {
	Replace(ctx context.Context, p model.Profile) error
}

// ImportResult summarizes an import.
type ImportResult struct {
	Added           int
	Skipped         int
	ProfileReplaced bool
	Problems        []string
}

// Import appends every backed-up transaction through the ledger, so each
// gets a fresh ID and full validation. Invalid entries are skipped and
// reported; storage errors stop the import.
func Import(ctx context.Context, b Backup, txs Appender, profiles ProfileReplacer) (ImportResult, error) {
	var res ImportResult

	if b.Profile != nil {
		if err := profiles.Replace(ctx, *b.Profile); err != nil {
			return res, err
		}
		res.ProfileReplaced = true
	}

	for i, tx := range b.Ledger.Transactions {
		if _, err := txs.Append(ctx, tx); err != nil {
			if errors.Is(err, ledger.ErrInvalidTransaction) {
				res.Skipped++
				res.Problems = append(res.Problems, fmt.Sprintf("entry %d (%s): %v", i+1, tx.Date, err))
				continue
			}
			return res, err
		}
		res.Added++
	}
	return res, nil
}
