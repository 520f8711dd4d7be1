package ledger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/theirongolddev/atlas/internal/model"
	"github.com/theirongolddev/atlas/internal/store"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type failingRecords struct {
	*store.Memory
	failPut bool
}

func (f *failingRecords) Put(ctx context.Context, key string, value []byte) error {
	if f.failPut {
		return errors.New("disk full")
	}
	return f.Memory.Put(ctx, key, value)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("tx-%d", n)
	}
}

func newTestLedger(t *testing.T, records store.Records) *Ledger {
	t.Helper()
	l := New(records, WithIDGenerator(sequentialIDs()))
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return l
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAppendAssignsIDAndPersists(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	l := newTestLedger(t, mem)

	got, err := l.Append(ctx, model.Transaction{
		ID: "caller-id", Type: model.Expense, Amount: amt("12.345"), Date: "2024-01-10",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if got.ID != "tx-1" {
		t.Errorf("ID = %q, want tx-1", got.ID)
	}
	if !got.Amount.Equal(amt("12.35")) {
		t.Errorf("Amount = %s, want 12.35", got.Amount)
	}
	if got.Category != model.DefaultCategory || got.Account != model.Checking {
		t.Errorf("defaults not applied: %+v", got)
	}

	reloaded := newTestLedger(t, mem)
	if reloaded.Len() != 1 || reloaded.List()[0].ID != "tx-1" {
		t.Fatalf("reloaded ledger = %+v", reloaded.List())
	}
}

func TestAppendRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		tx    model.Transaction
		field string
	}{
		{"zero amount", model.Transaction{Type: model.Income, Amount: amt("0"), Date: "2024-01-01"}, "amount"},
		{"negative amount", model.Transaction{Type: model.Income, Amount: amt("-5"), Date: "2024-01-01"}, "amount"},
		{"rounds to zero", model.Transaction{Type: model.Expense, Amount: amt("0.004"), Date: "2024-01-01"}, "amount"},
		{"out of range amount", model.Transaction{Type: model.Income, Amount: amt("1e400"), Date: "2024-01-01"}, "amount"},
		{"huge exponent", model.Transaction{Type: model.Expense, Amount: amt("1e900000000"), Date: "2024-01-01"}, "amount"},
		{"missing date", model.Transaction{Type: model.Expense, Amount: amt("5")}, "date"},
		{"bad date", model.Transaction{Type: model.Expense, Amount: amt("5"), Date: "01/02/2024"}, "date"},
		{"unknown type", model.Transaction{Type: "refund", Amount: amt("5"), Date: "2024-01-01"}, "type"},
		{"same account transfer", model.Transaction{
			Type: model.Transfer, Amount: amt("5"), Date: "2024-01-01",
			FromAccount: "Savings", ToAccount: model.Savings,
		}, "transfer"},
		{"unknown endpoints collapse to checking", model.Transaction{
			Type: model.Transfer, Amount: amt("5"), Date: "2024-01-01",
			FromAccount: "", ToAccount: "wallet",
		}, "transfer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := store.NewMemory()
			l := newTestLedger(t, mem)

			_, err := l.Append(context.Background(), tt.tx)
			if !errors.Is(err, ErrInvalidTransaction) {
				t.Fatalf("err = %v, want ErrInvalidTransaction", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Fatalf("ValidationError field = %+v, want %q", ve, tt.field)
			}
			if l.Len() != 0 {
				t.Fatalf("ledger changed: %d entries", l.Len())
			}
			if _, err := mem.Get(context.Background(), store.LedgerKey); !errors.Is(err, store.ErrNotFound) {
				t.Fatalf("rejected append was persisted: %v", err)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	l := newTestLedger(t, mem)

	for _, date := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		if _, err := l.Append(ctx, model.Transaction{Type: model.Income, Amount: amt("1"), Date: date}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	removed, err := l.Remove(ctx, "tx-2")
	if err != nil || !removed {
		t.Fatalf("Remove(tx-2) = %v, %v", removed, err)
	}
	ids := []string{}
	for _, tx := range l.List() {
		ids = append(ids, tx.ID)
	}
	if strings.Join(ids, ",") != "tx-1,tx-3" {
		t.Fatalf("remaining = %v", ids)
	}

	removed, err = l.Remove(ctx, "missing")
	if err != nil || removed {
		t.Fatalf("Remove(missing) = %v, %v; want false, nil", removed, err)
	}
	if l.Len() != 2 {
		t.Fatalf("Len = %d after no-op remove", l.Len())
	}

	if newTestLedger(t, mem).Len() != 2 {
		t.Fatal("removal not persisted")
	}
}

func TestListReturnsCopy(t *testing.T) {
	l := newTestLedger(t, store.NewMemory())
	if _, err := l.Append(context.Background(), model.Transaction{Type: model.Income, Amount: amt("1"), Date: "2024-01-01"}); err != nil {
		t.Fatal(err)
	}
	list := l.List()
	list[0].Note = "edited"
	if l.List()[0].Note == "edited" {
		t.Fatal("List exposed internal slice")
	}
}

func TestFailedWriteLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	rec := &failingRecords{Memory: store.NewMemory()}
	l := newTestLedger(t, rec)

	if _, err := l.Append(ctx, model.Transaction{Type: model.Income, Amount: amt("1"), Date: "2024-01-01"}); err != nil {
		t.Fatal(err)
	}

	rec.failPut = true
	if _, err := l.Append(ctx, model.Transaction{Type: model.Income, Amount: amt("2"), Date: "2024-01-02"}); err == nil {
		t.Fatal("expected write error")
	}
	if removed, err := l.Remove(ctx, "tx-1"); err == nil || removed {
		t.Fatalf("Remove with failing store = %v, %v", removed, err)
	}
	if l.Len() != 1 {
		t.Fatalf("Len = %d, want 1", l.Len())
	}
}

func TestLoadCorruptRecordStartsEmpty(t *testing.T) {
	cases := map[string]string{
		"not json":        `{"transactions":`,
		"non-array":       `{"transactions":{"id":"x"}}`,
		"null array":      `{"transactions":null}`,
		"missing field":   `{"items":[]}`,
		"bad amount type": `{"transactions":[{"id":"a","type":"income","amount":"lots","date":"2024-01-01"}]}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			mem := store.NewMemory()
			if err := mem.Put(context.Background(), store.LedgerKey, []byte(raw)); err != nil {
				t.Fatal(err)
			}

			buf := &bytes.Buffer{}
			l := New(mem, WithLogger(zerolog.New(buf)))
			if err := l.Load(context.Background()); err != nil {
				t.Fatalf("Load returned %v, want nil", err)
			}
			if l.Len() != 0 {
				t.Fatalf("Len = %d, want 0", l.Len())
			}
			if !strings.Contains(buf.String(), "corrupt ledger record") {
				t.Errorf("corruption not logged: %s", buf.String())
			}
		})
	}
}

func TestLoadDropsUnreadableEntries(t *testing.T) {
	mem := store.NewMemory()
	raw := `{"transactions":[
		null,
		{"id":"ok","type":"expense","amount":12.5,"date":"2024-01-05","category":"Food"},
		{"id":"typeless","amount":3,"date":"2024-01-06"},
		{"id":"huge","type":"income","amount":1e400,"date":"2024-01-07"}
	]}`
	if err := mem.Put(context.Background(), store.LedgerKey, []byte(raw)); err != nil {
		t.Fatal(err)
	}

	buf := &bytes.Buffer{}
	l := New(mem, WithLogger(zerolog.New(buf)))
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	txs := l.List()
	if len(txs) != 1 || txs[0].ID != "ok" {
		t.Fatalf("List = %+v, want only the readable entry", txs)
	}
	if got := strings.Count(buf.String(), "dropping unreadable transaction"); got != 3 {
		t.Errorf("logged %d drops, want 3: %s", got, buf.String())
	}
}

func TestLoadLegacyRecord(t *testing.T) {
	mem := store.NewMemory()
	legacy := `{"transactions":[
		{"id":"1","type":"income","amount":1000,"date":"2024-01-05"},
		{"id":"2","type":"transfer","amount":300,"date":"2024-01-15","fromAccount":"checking","toAccount":"savings","note":""}
	]}`
	if err := mem.Put(context.Background(), store.LedgerKey, []byte(legacy)); err != nil {
		t.Fatal(err)
	}
	l := newTestLedger(t, mem)
	txs := l.List()
	if len(txs) != 2 {
		t.Fatalf("len = %d, want 2", len(txs))
	}
	if txs[0].Account != model.Checking || txs[0].Category != model.DefaultCategory {
		t.Errorf("legacy income not normalized: %+v", txs[0])
	}
	if got, ok := l.Get("2"); !ok || got.ToAccount != model.Savings {
		t.Errorf("Get(2) = %+v, %v", got, ok)
	}
}
