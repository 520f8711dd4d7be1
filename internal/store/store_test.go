package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func exerciseRecords(t *testing.T, r Records) {
	t.Helper()
	ctx := context.Background()

	if _, err := r.Get(ctx, LedgerKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store err = %v, want ErrNotFound", err)
	}

	if err := r.Put(ctx, LedgerKey, []byte(`{"transactions":[]}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := r.Put(ctx, LedgerKey, []byte(`{"transactions":[{"id":"x"}]}`)); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}

	got, err := r.Get(ctx, LedgerKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `{"transactions":[{"id":"x"}]}` {
		t.Fatalf("Get = %s", got)
	}

	if _, err := r.Get(ctx, ProfileKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("profile key leaked from ledger key: %v", err)
	}

	if err := r.Delete(ctx, LedgerKey); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := r.Delete(ctx, LedgerKey); err != nil {
		t.Fatalf("Delete missing key: %v", err)
	}
	if _, err := r.Get(ctx, LedgerKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after Delete err = %v, want ErrNotFound", err)
	}
}

func TestMemoryRecords(t *testing.T) {
	exerciseRecords(t, NewMemory())
}

func TestMemoryReturnsCopies(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	buf := []byte("abc")
	if err := m.Put(ctx, "k", buf); err != nil {
		t.Fatal(err)
	}
	buf[0] = 'z'
	got, _ := m.Get(ctx, "k")
	if string(got) != "abc" {
		t.Fatalf("stored value aliased caller buffer: %s", got)
	}
}

func TestSQLiteRecords(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "atlas.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	exerciseRecords(t, db)
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "atlas.db")
	ctx := context.Background()

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := db.Put(ctx, ProfileKey, []byte(`{"name":"Ana"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := db.UpdatedAt(ctx, ProfileKey); err != nil {
		t.Fatalf("UpdatedAt: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopening runs migrations again, which must be a no-op.
	db, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	got, err := db.Get(ctx, ProfileKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `{"name":"Ana"}` {
		t.Fatalf("Get = %s", got)
	}
}

func TestCorruptStateErrorUnwraps(t *testing.T) {
	inner := errors.New("bad json")
	err := error(&CorruptStateError{Key: LedgerKey, Err: inner})
	if !errors.Is(err, inner) {
		t.Fatal("CorruptStateError does not unwrap")
	}
	var cse *CorruptStateError
	if !errors.As(err, &cse) || cse.Key != LedgerKey {
		t.Fatalf("errors.As = %+v", cse)
	}
}
