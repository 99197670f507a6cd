package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/QASchoolUSA/QAXP-Booking/internal/model"
)

// OpenMySQL connects to MySQL and verifies the connection.
func OpenMySQL(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=Local matches the
	// wall-clock semantics used everywhere else in this service
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// MySQLStore keeps the booking set as a single-row JSON blob in the
// booking_sets table, keyed by BookingsKey.  The store contract is a
// whole-collection replace, so the row is rewritten in full on every
// SaveAll rather than mapped to per-booking rows.
type MySQLStore struct {
	db  *sql.DB
	key string
}

// NewMySQLStore ensures the blob table exists and returns the store.
func NewMySQLStore(db *sql.DB) (*MySQLStore, error) {
	const ddl = `CREATE TABLE IF NOT EXISTS booking_sets (
        name VARCHAR(64) NOT NULL PRIMARY KEY,
        data MEDIUMBLOB NOT NULL,
        updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
    )`
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("create booking_sets: %w", err)
	}
	return &MySQLStore{db: db, key: BookingsKey}, nil
}

// Load fetches and decodes the blob row.  A missing row is an empty set.
func (s *MySQLStore) Load(ctx context.Context) ([]model.Booking, error) {
	const q = `SELECT data FROM booking_sets WHERE name = ?`
	var data []byte
	if err := s.db.QueryRowContext(ctx, q, s.key).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []model.Booking{}, nil
		}
		return nil, fmt.Errorf("select %s: %w", s.key, err)
	}
	var bookings []model.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.key, err)
	}
	return bookings, nil
}

// SaveAll rewrites the blob row.  REPLACE keeps the write a single
// statement, so the set is either fully replaced or untouched.
func (s *MySQLStore) SaveAll(ctx context.Context, bookings []model.Booking) error {
	data, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}
	const q = `REPLACE INTO booking_sets (name, data) VALUES (?, ?)`
	if _, err := s.db.ExecContext(ctx, q, s.key, data); err != nil {
		return fmt.Errorf("replace %s: %w", s.key, err)
	}
	return nil
}
