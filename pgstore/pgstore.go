// Package pgstore wraps a msgplus Value as a database/sql Scanner/Valuer
// pair backed by a Postgres bytea column, and a minimal table-backed Store
// on top of it.
package pgstore

import (
	"database/sql"
	"database/sql/driver"
	"fmt"

	_ "github.com/lib/pq"

	"msgplus"
)

// Column is a msgplus Value that knows how to read/write itself to a
// database/sql bytea column via its wire encoding.
type Column struct {
	Value msgplus.Value
}

// Value implements driver.Valuer.
func (c Column) Value() (driver.Value, error) {
	wire, err := msgplus.Marshal(c.Value)
	if err != nil {
		return nil, fmt.Errorf("pgstore: encode: %w", err)
	}
	return wire, nil
}

// Scan implements sql.Scanner.
func (c *Column) Scan(src interface{}) error {
	var wire []byte
	switch t := src.(type) {
	case []byte:
		wire = t
	case nil:
		c.Value = msgplus.Nil()
		return nil
	default:
		return fmt.Errorf("pgstore: cannot scan %T into Column", src)
	}
	v, err := msgplus.Unmarshal(wire)
	if err != nil {
		return fmt.Errorf("pgstore: decode: %w", err)
	}
	c.Value = v
	return nil
}

// Store is a single-table key/value store over Postgres, one row per id,
// holding the wire encoding in a bytea column.
type Store struct {
	db    *sql.DB
	table string
}

// Open connects via the lib/pq driver and returns a Store over table,
// which must already exist with columns (id text primary key, value bytea).
func Open(dsn, table string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("pgstore: open: %w", err)
	}
	return &Store{db: db, table: table}, nil
}

// Put upserts v under id.
func (s *Store) Put(id string, v msgplus.Value) error {
	_, err := s.db.Exec(
		fmt.Sprintf(`INSERT INTO %s (id, value) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET value = EXCLUDED.value`, s.table),
		id, Column{Value: v},
	)
	return err
}

// Get loads the Value stored under id.
func (s *Store) Get(id string) (msgplus.Value, bool, error) {
	var col Column
	err := s.db.QueryRow(
		fmt.Sprintf(`SELECT value FROM %s WHERE id = $1`, s.table), id,
	).Scan(&col)
	if err == sql.ErrNoRows {
		return msgplus.Value{}, false, nil
	}
	if err != nil {
		return msgplus.Value{}, false, err
	}
	return col.Value, true, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error { return s.db.Close() }
