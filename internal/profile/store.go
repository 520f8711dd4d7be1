package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/theirongolddev/atlas/internal/model"
	"github.com/theirongolddev/atlas/internal/store"

	"github.com/rs/zerolog"
)

// Store holds the current profile, or nil when none is configured.
type Store struct {
	records store.Records
	log     zerolog.Logger
	current *model.Profile
}

// NewStore returns an unconfigured profile store.
func NewStore(records store.Records, log zerolog.Logger) *Store {
	return &Store{records: records, log: log}
}

// Load reads the persisted profile. Missing or corrupt records leave the
// store unconfigured.
func (s *Store) Load(ctx context.Context) error {
	s.current = nil

	data, err := s.records.Get(ctx, store.ProfileKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	var p *model.Profile
	err = json.Unmarshal(data, &p)
	if err == nil && p == nil {
		err = errors.New("profile is null")
	}
	if err != nil {
		s.log.Warn().Err(&store.CorruptStateError{Key: store.ProfileKey, Err: err}).
			Msg("ignoring stored profile")
		return nil
	}
	s.current = p
	return nil
}

// Current returns a copy of the profile, or nil.
func (s *Store) Current() *model.Profile {
	if s.current == nil {
		return nil
	}
	p := *s.current
	p.Monthly.FixedItems = append([]model.FixedItem(nil), s.current.Monthly.FixedItems...)
	return &p
}

// Configured reports whether a profile exists.
func (s *Store) Configured() bool {
	return s.current != nil
}

// Replace persists p as the whole profile. The CreatedAt of an existing
// profile is kept. When p is itemized its fixed total is recomputed.
func (s *Store) Replace(ctx context.Context, p model.Profile) error {
	if s.current != nil && !s.current.CreatedAt.IsZero() {
		p.CreatedAt = s.current.CreatedAt
	}
	if p.Monthly.FixedItems != nil {
		p.Monthly.FixedExpenses = p.Monthly.FixedTotal()
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := s.records.Put(ctx, store.ProfileKey, data); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	s.current = &p
	s.log.Info().Int("fixed_items", len(p.Monthly.FixedItems)).Msg("profile saved")
	return nil
}

// Reset deletes the profile. Transactions are not touched.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.records.Delete(ctx, store.ProfileKey); err != nil {
		return fmt.Errorf("resetting profile: %w", err)
	}
	s.current = nil
	s.log.Info().Msg("profile reset")
	return nil
}
