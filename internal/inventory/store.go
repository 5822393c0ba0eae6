package inventory

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateID   = errors.New("record id already exists")
	ErrCatalogClosed = errors.New("catalog closed")
)

// StorageError marks a failure of the backing store itself (open, write,
// commit), as opposed to the expected not-found/duplicate outcomes.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "storage " + e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// Store is the persistent side of the catalog. Every mutation is committed
// before the call returns; the catalog relies on durability being visible
// the moment a call succeeds.
type Store interface {
	// Init creates the products table if it does not exist yet.
	Init(ctx context.Context) error

	// LoadAll returns every persisted record, ordered by id.
	// Returns an empty slice (not nil) when the table is empty.
	LoadAll(ctx context.Context) ([]Record, error)

	// Insert persists a new record. The catalog guarantees the id is not
	// already present.
	Insert(ctx context.Context, r Record) error

	// Update rewrites the quantity and price columns of the row matching
	// the record's id, from current record state.
	Update(ctx context.Context, r Record) error

	// Delete removes the row with the given id.
	Delete(ctx context.Context, id int64) error

	Ping(ctx context.Context) error
	Close() error
}
