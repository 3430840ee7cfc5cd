package db

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/fbz-tec/skytrack/core/dataset"
)

func openMemory(t *testing.T) *SQLStore {
	t.Helper()
	store := NewSQLStore(MemoryPath, true)
	if err := store.Connect(); err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func airlineFixture() *dataset.ResultSet {
	rs := dataset.New("airline", "airline_id", "airline_name", "fleet_share")
	rs.Append(int64(1), "Delta", 0.4)
	rs.Append(int64(2), "United", nil)
	return rs
}

func TestSQLStoreLoadAndFetch(t *testing.T) {
	store := openMemory(t)
	ctx := context.Background()

	if err := store.Load(ctx, airlineFixture()); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	rs, err := store.Fetch(ctx, "airlines", "SELECT airline_id, airline_name, fleet_share FROM airline ORDER BY airline_id")
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}

	if rs.Name != "airlines" {
		t.Errorf("Name = %q", rs.Name)
	}
	if !reflect.DeepEqual(rs.Columns, []string{"airline_id", "airline_name", "fleet_share"}) {
		t.Errorf("Columns = %v", rs.Columns)
	}
	want := [][]any{{int64(1), "Delta", 0.4}, {int64(2), "United", nil}}
	if !reflect.DeepEqual(rs.Rows, want) {
		t.Errorf("Rows = %#v, want %#v", rs.Rows, want)
	}

	n, err := store.QueryInt64(ctx, "SELECT COUNT(*) FROM airline")
	if err != nil || n != 2 {
		t.Errorf("QueryInt64() = %d, %v", n, err)
	}
}

func TestSQLStoreLoadAppends(t *testing.T) {
	store := openMemory(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := store.Load(ctx, airlineFixture()); err != nil {
			t.Fatalf("Load() #%d failed: %v", i+1, err)
		}
	}
	if n, _ := store.QueryInt64(ctx, "SELECT COUNT(*) FROM airline"); n != 4 {
		t.Errorf("row count = %d, want 4", n)
	}
}

func TestSQLStoreLoadRejectsRaggedRows(t *testing.T) {
	store := openMemory(t)
	rs := dataset.New("bad", "a", "b")
	rs.Append(1)

	if err := store.Load(context.Background(), rs); err == nil {
		t.Error("Load() should reject rows with the wrong arity")
	}
}

func TestSQLStoreMissingFile(t *testing.T) {
	store := NewSQLStore(filepath.Join(t.TempDir(), "missing.db"), false)
	if err := store.Connect(); err == nil {
		store.Close()
		t.Error("Connect() should fail for a missing snapshot without create")
	}
}

func TestSQLStoreQueryError(t *testing.T) {
	store := openMemory(t)
	if _, err := store.Fetch(context.Background(), "x", "SELECT * FROM nope"); err == nil {
		t.Error("Fetch() on a missing table should fail")
	}
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	src := openMemory(t)
	if err := src.Load(ctx, airlineFixture()); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "snap", "airport.db")
	dst := NewSQLStore(path, true)
	if err := dst.Connect(); err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}

	copied, err := Snapshot(ctx, src, dst, []string{"airline"})
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}
	if copied["airline"] != 2 {
		t.Errorf("copied = %v", copied)
	}
	dst.Close()

	reopened := NewSQLStore(path, false)
	if err := reopened.Connect(); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	if n, err := reopened.QueryInt64(ctx, "SELECT COUNT(*) FROM airline"); err != nil || n != 2 {
		t.Errorf("snapshot row count = %d, %v", n, err)
	}

	if _, err := Snapshot(ctx, src, reopened, []string{"flights"}); err == nil {
		t.Error("Snapshot() of a missing source table should fail")
	}
}
