// Package app wires the store, the ledger and the profile together and
// builds the dashboard snapshot consumed by the CLI and the TUI.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/atlas/internal/ledger"
	"github.com/theirongolddev/atlas/internal/logger"
	"github.com/theirongolddev/atlas/internal/model"
	"github.com/theirongolddev/atlas/internal/pipeline"
	"github.com/theirongolddev/atlas/internal/profile"
	"github.com/theirongolddev/atlas/internal/store"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// App is the application root. It is not safe for concurrent use.
type App struct {
	Ledger   *ledger.Ledger
	Profiles *profile.Store

	records store.Records
	closer  func() error
	log     zerolog.Logger
	now     func() time.Time
}

// Options configures New.
type Options struct {
	Logger zerolog.Logger
	Now    func() time.Time
	IDs    func() string
}

// New builds an App over records and loads the persisted state.
func New(ctx context.Context, records store.Records, opts Options) (*App, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ledgerOpts := []ledger.Option{ledger.WithLogger(logger.Component(opts.Logger, "ledger"))}
	if opts.IDs != nil {
		ledgerOpts = append(ledgerOpts, ledger.WithIDGenerator(opts.IDs))
	}

	a := &App{
		Ledger:   ledger.New(records, ledgerOpts...),
		Profiles: profile.NewStore(records, logger.Component(opts.Logger, "profile")),
		records:  records,
		log:      opts.Logger,
		now:      opts.Now,
	}
	if err := a.Reload(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// Open opens the SQLite database at dbPath and builds an App over it.
func Open(ctx context.Context, dbPath string, opts Options) (*App, error) {
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	a, err := New(ctx, db, opts)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	a.closer = db.Close
	logger.Component(opts.Logger, "store").Debug().Str("path", dbPath).Msg("database opened")
	return a, nil
}

// Close releases the underlying store.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}

// Reload re-reads the ledger and the profile from the store.
func (a *App) Reload(ctx context.Context) error {
	if err := a.Ledger.Load(ctx); err != nil {
		return err
	}
	return a.Profiles.Load(ctx)
}

// Now returns the current time from the configured clock.
func (a *App) Now() time.Time {
	return a.now()
}

// Today returns the current date as YYYY-MM-DD.
func (a *App) Today() string {
	return a.now().Format(ledger.DateLayout)
}

// CurrentMonth returns the current YYYY-MM.
func (a *App) CurrentMonth() string {
	return pipeline.CurrentYearMonth(a.now())
}

// StorePath returns the database file, or "" for an in-memory store.
func (a *App) StorePath() string {
	if p, ok := a.records.(interface{ Path() string }); ok {
		return p.Path()
	}
	return ""
}

// LastChange reports when the ledger was last written. ok is false for
// stores that don't track it or when nothing has been saved yet.
func (a *App) LastChange(ctx context.Context) (t time.Time, ok bool) {
	tracked, isTracked := a.records.(interface {
		UpdatedAt(ctx context.Context, key string) (time.Time, error)
	})
	if !isTracked {
		return time.Time{}, false
	}
	t, err := tracked.UpdatedAt(ctx, store.LedgerKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			a.log.Warn().Err(err).Msg("reading ledger timestamp")
		}
		return time.Time{}, false
	}
	return t, true
}

// SaveProfile builds a profile from raw input and replaces the stored one.
func (a *App) SaveProfile(ctx context.Context, in profile.Input) (model.Profile, error) {
	p, err := profile.Build(in, a.now(), a.Profiles.Current())
	if err != nil {
		return model.Profile{}, err
	}
	if err := a.Profiles.Replace(ctx, p); err != nil {
		return model.Profile{}, err
	}
	return *a.Profiles.Current(), nil
}

// Snapshot is everything the dashboard shows for one month.
type Snapshot struct {
	YearMonth    string
	Greeting     string
	Profile      *model.Profile
	Plan         profile.Plan
	NetBalance   decimal.Decimal
	Month        model.MonthlySummary
	Balances     model.Balances
	TotalBalance decimal.Decimal
	Categories   []model.CategoryTotal
	Top          []model.CategoryTotal
	Insights     []model.Insight
	Trend        []model.MonthlySummary
	Recent       []model.Transaction
	Count        int
}

// SnapshotOptions tunes the derived views.
type SnapshotOptions struct {
	TopCategories int
	TrendMonths   int
}

// Snapshot derives the dashboard for ym from the current state.
func (a *App) Snapshot(ym string, opts SnapshotOptions) Snapshot {
	if ym == "" {
		ym = a.CurrentMonth()
	}
	txs := a.Ledger.List()
	p := a.Profiles.Current()

	var fixed decimal.Decimal
	if p != nil {
		fixed = p.Monthly.FixedExpenses
	}

	balances := pipeline.AccountBalances(txs, p)
	total := pipeline.TotalFromAccounts(balances)
	month := pipeline.MonthlySummary(txs, ym)

	return Snapshot{
		YearMonth:    ym,
		Greeting:     profile.Greeting(p),
		Profile:      p,
		Plan:         profile.PlanFor(p),
		NetBalance:   pipeline.NetBalance(txs),
		Month:        month,
		Balances:     balances,
		TotalBalance: total,
		Categories:   pipeline.CategoryTotals(txs, ym),
		Top:          pipeline.TopCategories(txs, ym, opts.TopCategories),
		Insights:     pipeline.DeriveInsights(month, fixed, total),
		Trend:        pipeline.MonthlyTrend(txs, ym, opts.TrendMonths),
		Recent:       pipeline.SortRecent(txs),
		Count:        a.Ledger.Len(),
	}
}

// ValidateMonth checks a YYYY-MM string.
func ValidateMonth(ym string) error {
	if _, err := time.Parse("2006-01", ym); err != nil {
		return fmt.Errorf("month %q: expected YYYY-MM", ym)
	}
	return nil
}
