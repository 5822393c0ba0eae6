package inventory

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

// DBStore persists records in a products table through database/sql. The
// handle is injected at construction and owned by the store from then on;
// Close releases it.
type DBStore struct {
	db *sql.DB
}

func NewDBStore(db *sql.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Init(ctx context.Context) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS products (
				id INTEGER PRIMARY KEY,
				name TEXT NOT NULL,
				quantity INTEGER NOT NULL,
				price FLOAT NOT NULL
			)
		`)
		return err
	})
}

func (s *DBStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *DBStore) LoadAll(ctx context.Context) ([]Record, error) {
	var out []Record

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, name, quantity, price
			FROM products
			ORDER BY id ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Record, 0, 16)
		for rows.Next() {
			var (
				id       int64
				name     string
				quantity int64
				price    float64
			)
			if err := rows.Scan(&id, &name, &quantity, &price); err != nil {
				return err
			}
			out = append(out, *NewRecord(id, name, quantity, decimal.NewFromFloat(price)))
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DBStore) Insert(ctx context.Context, r Record) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO products (id, name, quantity, price)
			VALUES (?, ?, ?, ?)
		`, r.ID(), r.Name(), r.Quantity(), r.Price().InexactFloat64())
		return err
	})
}

func (s *DBStore) Update(ctx context.Context, r Record) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			UPDATE products
			SET quantity = ?, price = ?
			WHERE id = ?
		`, r.Quantity(), r.Price().InexactFloat64(), r.ID())
		return err
	})
}

func (s *DBStore) Delete(ctx context.Context, id int64) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			DELETE FROM products
			WHERE id = ?
		`, id)
		return err
	})
}

func (s *DBStore) Close() error {
	return s.db.Close()
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
