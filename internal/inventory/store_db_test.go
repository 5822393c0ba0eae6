package inventory_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/stoolap/stoolap/pkg/driver"
	"go.uber.org/zap"

	"StockBook/internal/inventory"
)

// Each test gets its own file-backed database so state never leaks between
// tests or reopens within one test.
func openDB(t *testing.T, path string) *sql.DB {
	t.Helper()

	db, err := sql.Open("stoolap", "file://"+path)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping database: %v", err)
	}
	return db
}

func TestDBStoreCRUD(t *testing.T) {
	ctx := context.Background()
	db := openDB(t, filepath.Join(t.TempDir(), "crud.db"))
	store := inventory.NewDBStore(db)
	defer store.Close()

	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	// Init is a create-if-absent; a second call must not fail.
	if err := store.Init(ctx); err != nil {
		t.Fatalf("second init: %v", err)
	}

	if err := store.Insert(ctx, *inventory.NewRecord(2, "B", 2, dec(t, "2.0"))); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.Insert(ctx, *inventory.NewRecord(1, "A", 1, dec(t, "1.0"))); err != nil {
		t.Fatalf("insert: %v", err)
	}

	records, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 2 || records[0].ID() != 1 || records[1].ID() != 2 {
		t.Fatalf("loaded records = %v", records)
	}
	if records[0].Name() != "A" || records[0].Quantity() != 1 || !records[0].Price().Equal(dec(t, "1.0")) {
		t.Fatalf("row 1 = %s", &records[0])
	}

	if err := store.Update(ctx, *inventory.NewRecord(1, "A", 7, dec(t, "1.25"))); err != nil {
		t.Fatalf("update: %v", err)
	}
	records, err = store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load after update: %v", err)
	}
	if records[0].Quantity() != 7 || !records[0].Price().Equal(dec(t, "1.25")) {
		t.Fatalf("row 1 after update = %s", &records[0])
	}

	if err := store.Delete(ctx, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	records, err = store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load after delete: %v", err)
	}
	if len(records) != 1 || records[0].ID() != 1 {
		t.Fatalf("rows after delete = %v", records)
	}
}

func TestCatalogPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "roundtrip.db")

	c, err := inventory.Open(ctx, inventory.NewDBStore(openDB(t, path)), inventory.Deps{Log: zap.NewNop()})
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	mustAdd(t, c, 1, "A", 1, "1.0")
	mustAdd(t, c, 2, "B", 2, "2.0")
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	c, err = inventory.Open(ctx, inventory.NewDBStore(openDB(t, path)), inventory.Deps{Log: zap.NewNop()})
	if err != nil {
		t.Fatalf("reopen catalog: %v", err)
	}
	defer c.Close()

	records := mustList(t, c)
	if len(records) != 2 {
		t.Fatalf("reopened catalog holds %d records, want 2", len(records))
	}
	for i, want := range []struct {
		id       int64
		name     string
		quantity int64
		price    string
	}{{1, "A", 1, "1.0"}, {2, "B", 2, "2.0"}} {
		r := records[i]
		if r.ID() != want.id || r.Name() != want.name || r.Quantity() != want.quantity || !r.Price().Equal(dec(t, want.price)) {
			t.Fatalf("record %d = %s", i, &r)
		}
	}
}

func TestCatalogScenarioOverDB(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scenario.db")

	c, err := inventory.Open(ctx, inventory.NewDBStore(openDB(t, path)), inventory.Deps{Log: zap.NewNop()})
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	defer c.Close()

	mustAdd(t, c, 1, "Pen", 10, "1.50")

	quantity := int64(5)
	if err := c.Update(ctx, 1, &quantity, nil); err != nil {
		t.Fatalf("update: %v", err)
	}
	r := mustList(t, c)[0]
	if r.Quantity() != 5 || !r.Price().Equal(dec(t, "1.50")) {
		t.Fatalf("after update: %s", &r)
	}

	if err := c.RemoveByID(ctx, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(mustList(t, c)) != 0 {
		t.Fatal("catalog not empty after remove")
	}
}
