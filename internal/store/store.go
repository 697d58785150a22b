// Package store keeps the client's local browsing history in SQLite:
// recently viewed products and checkout receipts. It is the terminal
// client's stand-in for browser history; nothing in it is authoritative for
// the shop.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"redseam/internal/logging"
	"redseam/internal/types"
)

// Store manages the local history database.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// ViewedProduct is one recently-viewed row.
type ViewedProduct struct {
	ProductID int
	Name      string
	Price     float64
	SeenAt    time.Time
}

// Order is one checkout receipt.
type Order struct {
	ID        int64
	Subtotal  float64
	Delivery  float64
	Total     float64
	LineCount int
	Message   string
	CreatedAt time.Time
}

// Open creates or opens the history store at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.Get(logging.CategoryStore).Debug("history store open at %s", dbPath)
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS viewed_products (
		product_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		price REAL NOT NULL,
		seen_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_viewed_seen_at ON viewed_products(seen_at);

	CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		subtotal REAL NOT NULL,
		delivery REAL NOT NULL,
		total REAL NOT NULL,
		line_count INTEGER NOT NULL,
		message TEXT,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordView upserts a product into the recently-viewed list. Called when a
// detail view loads; failures are the caller's to log, never to surface.
func (s *Store) RecordView(p *types.ProductDetail) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO viewed_products (product_id, name, price, seen_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(product_id) DO UPDATE SET
			name = excluded.name,
			price = excluded.price,
			seen_at = excluded.seen_at`,
		p.ID, p.Name, p.Price, time.Now().UTC())
	return err
}

// RecentlyViewed returns up to n products, most recent first.
func (s *Store) RecentlyViewed(n int) ([]ViewedProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT product_id, name, price, seen_at
		FROM viewed_products
		ORDER BY seen_at DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ViewedProduct
	for rows.Next() {
		var v ViewedProduct
		if err := rows.Scan(&v.ProductID, &v.Name, &v.Price, &v.SeenAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// RecordOrder persists a checkout receipt. Implements cart.ReceiptRecorder.
func (s *Store) RecordOrder(subtotal, delivery, total float64, lineCount int, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO orders (subtotal, delivery, total, line_count, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		subtotal, delivery, total, lineCount, message, time.Now().UTC())
	return err
}

// Orders returns up to n receipts, most recent first.
func (s *Store) Orders(n int) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, subtotal, delivery, total, line_count, message, created_at
		FROM orders
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Subtotal, &o.Delivery, &o.Total, &o.LineCount, &o.Message, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
