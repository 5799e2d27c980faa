package leads

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const leadsSchema = `
CREATE TABLE IF NOT EXISTS leads (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	full_name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	message TEXT NOT NULL DEFAULT '',
	interested_in TEXT NOT NULL DEFAULT '',
	plan TEXT NOT NULL DEFAULT '',
	add_ons TEXT NOT NULL DEFAULT '[]',
	billing TEXT NOT NULL DEFAULT '',
	locale TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at);
`

// SQLiteStore writes leads to a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens path and creates the leads table when missing.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(leadsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create leads table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, lead Lead) error {
	addOns, err := json.Marshal(lead.AddOns)
	if err != nil {
		return fmt.Errorf("encode add-ons: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO leads (id, kind, full_name, email, phone, message, interested_in, plan, add_ons, billing, locale, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lead.ID, string(lead.Kind), lead.FullName, lead.Email, lead.Phone, lead.Message,
		lead.InterestedIn, lead.Plan, string(addOns), lead.Billing, lead.Locale, lead.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, full_name, email, phone, message, interested_in, plan, add_ons, billing, locale, created_at
		FROM leads ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	var out []Lead
	for rows.Next() {
		var (
			l       Lead
			kind    string
			addOns  string
			created time.Time
		)
		if err := rows.Scan(&l.ID, &kind, &l.FullName, &l.Email, &l.Phone, &l.Message,
			&l.InterestedIn, &l.Plan, &addOns, &l.Billing, &l.Locale, &created); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		l.Kind = Kind(kind)
		l.CreatedAt = created
		if err := json.Unmarshal([]byte(addOns), &l.AddOns); err != nil {
			return nil, fmt.Errorf("decode add-ons: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
