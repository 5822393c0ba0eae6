package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"StockBook/pkg/kit"
)

// Deps carries the ambient pieces a Catalog reports through. Both are
// optional; nil disables them.
type Deps struct {
	Log     *zap.Logger
	Metrics *kit.Metrics
}

// Catalog owns the id→Record index and keeps it in lockstep with the
// backing Store. Every mutation goes to the store first and touches memory
// only after the store commit has returned, so a storage failure leaves
// the index exactly as it was.
//
// A Catalog is open from construction until Close; operations on a closed
// catalog fail with ErrCatalogClosed. Execution is single-threaded per the
// tool's usage model, so there is no locking.
type Catalog struct {
	store Store
	log   *zap.Logger
	met   *kit.Metrics

	m      map[int64]*Record
	order  []int64 // insertion order, drives List and FindByNameContains
	closed bool
}

// Open initializes the backing table if needed and loads every persisted
// row into the index. The store stays owned by the caller until Open
// succeeds; afterwards Close releases it.
func Open(ctx context.Context, store Store, deps Deps) (*Catalog, error) {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	c := &Catalog{
		store: store,
		log:   log,
		met:   deps.Metrics,
		m:     map[int64]*Record{},
	}

	if err := store.Init(ctx); err != nil {
		return nil, &StorageError{Op: "init", Err: err}
	}

	records, err := store.LoadAll(ctx)
	if err != nil {
		return nil, &StorageError{Op: "load", Err: err}
	}
	for i := range records {
		r := records[i]
		c.m[r.ID()] = &r
		c.order = append(c.order, r.ID())
	}

	log.Info("catalog opened", zap.Int("records", len(c.order)))
	return c, nil
}

// Add inserts a record under its id. A duplicate id rejects the whole
// operation; neither the index nor the store changes.
func (c *Catalog) Add(ctx context.Context, r *Record) (err error) {
	defer c.observe("add", time.Now(), &err)

	if c.closed {
		return ErrCatalogClosed
	}
	if _, ok := c.m[r.ID()]; ok {
		c.log.Warn("add rejected", zap.Int64("id", r.ID()), zap.Error(ErrDuplicateID))
		return ErrDuplicateID
	}

	cp := *r
	if err := c.store.Insert(ctx, cp); err != nil {
		c.log.Error("insert failed", zap.Int64("id", r.ID()), zap.Error(err))
		return &StorageError{Op: "insert", Err: err}
	}

	c.m[cp.ID()] = &cp
	c.order = append(c.order, cp.ID())
	c.log.Info("record added", zap.Int64("id", cp.ID()), zap.String("name", cp.Name()))
	return nil
}

// RemoveByID deletes the record under id from the store and the index.
func (c *Catalog) RemoveByID(ctx context.Context, id int64) (err error) {
	defer c.observe("remove", time.Now(), &err)

	if c.closed {
		return ErrCatalogClosed
	}
	if _, ok := c.m[id]; !ok {
		c.log.Warn("remove rejected", zap.Int64("id", id), zap.Error(ErrNotFound))
		return ErrNotFound
	}

	if err := c.store.Delete(ctx, id); err != nil {
		c.log.Error("delete failed", zap.Int64("id", id), zap.Error(err))
		return &StorageError{Op: "delete", Err: err}
	}

	delete(c.m, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.log.Info("record removed", zap.Int64("id", id))
	return nil
}

// Update applies the supplied fields to the record under id. Nil means
// "leave unchanged"; with both fields nil the call succeeds without a
// store write. The store rewrite always carries both columns so the row
// matches current record state.
func (c *Catalog) Update(ctx context.Context, id int64, quantity *int64, price *decimal.Decimal) (err error) {
	defer c.observe("update", time.Now(), &err)

	if c.closed {
		return ErrCatalogClosed
	}
	r, ok := c.m[id]
	if !ok {
		c.log.Warn("update rejected", zap.Int64("id", id), zap.Error(ErrNotFound))
		return ErrNotFound
	}
	if quantity == nil && price == nil {
		return nil
	}

	next := *r
	if quantity != nil {
		next.SetQuantity(*quantity)
	}
	if price != nil {
		next.SetPrice(*price)
	}

	if err := c.store.Update(ctx, next); err != nil {
		c.log.Error("update failed", zap.Int64("id", id), zap.Error(err))
		return &StorageError{Op: "update", Err: err}
	}

	*r = next
	c.log.Info("record updated", zap.Int64("id", id),
		zap.Int64("quantity", next.Quantity()), zap.String("price", next.Price().String()))
	return nil
}

// FindByNameContains returns copies of the records whose name contains the
// substring, case-insensitively, in insertion order. The empty substring
// matches everything.
func (c *Catalog) FindByNameContains(substring string) (out []Record, err error) {
	defer c.observe("find", time.Now(), &err)

	if c.closed {
		return nil, ErrCatalogClosed
	}

	needle := strings.ToLower(substring)
	out = make([]Record, 0, len(c.order))
	for _, id := range c.order {
		r := c.m[id]
		if strings.Contains(strings.ToLower(r.Name()), needle) {
			out = append(out, *r)
		}
	}
	return out, nil
}

// List returns copies of every record in insertion order.
func (c *Catalog) List() (out []Record, err error) {
	defer c.observe("list", time.Now(), &err)

	if c.closed {
		return nil, ErrCatalogClosed
	}

	out = make([]Record, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.m[id])
	}
	return out, nil
}

// Len reports how many records the catalog holds.
func (c *Catalog) Len() int { return len(c.order) }

// Close releases the backing store and marks the catalog closed. Calling
// Close again is a no-op.
func (c *Catalog) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	if err := c.store.Close(); err != nil {
		c.log.Error("store close failed", zap.Error(err))
		return &StorageError{Op: "close", Err: err}
	}
	c.log.Info("catalog closed")
	return nil
}

func (c *Catalog) observe(op string, start time.Time, errp *error) {
	if c.met == nil {
		return
	}

	outcome := "ok"
	switch err := *errp; {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		outcome = "not_found"
	case errors.Is(err, ErrDuplicateID):
		outcome = "duplicate"
	case errors.Is(err, ErrCatalogClosed):
		outcome = "closed"
	default:
		outcome = "storage_error"
	}

	c.met.Observe(op, outcome, time.Since(start))
}
