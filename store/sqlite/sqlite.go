/*
Package sqlite provides the SQLite-backed case store.

PURPOSE:
  Persists the full case-management data set: cases, certificates of
  capacity, terminations, payroll entries, the document checklist,
  generated-document records and the activity log. In production the
  same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

APPEND-ONLY ENFORCEMENT:
  payroll_entries and activity_log are append-only:
  - No UPDATE statements on either table
  - Payroll corrections are made with a new entry, never by editing

KEY TABLES:
  cases:            One row per workers' compensation case
  certificates:     COC history per case (head = current certificate)
  terminations:     At most one termination proceeding per case
  payroll_entries:  Immutable record of computed compensation figures
  checklist_items:  The fixed required-document checklist per case
  documents:        Audit trail of generated documents
  activity_log:     Append-only audit log

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better
  concurrency: multiple readers don't block, single writer at a time.

USAGE:
  store, err := sqlite.New("./data/workcover.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - claims/types.go: Record types and storage sentinel errors
  - api/server.go: HTTP surface over this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	sq "github.com/Masterminds/squirrel"
	gonanoid "github.com/matoous/go-nanoid/v2"
	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite-backed case store.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at dbPath and migrates the
// schema. Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cases (
		id TEXT PRIMARY KEY,
		worker_name TEXT NOT NULL,
		state TEXT NOT NULL,
		entity TEXT NOT NULL DEFAULT '',
		site TEXT NOT NULL DEFAULT '',
		claim_number TEXT NOT NULL DEFAULT '',
		date_of_injury TEXT NOT NULL DEFAULT '',
		injury_description TEXT NOT NULL DEFAULT '',
		shift_structure TEXT NOT NULL DEFAULT '',
		current_capacity TEXT NOT NULL,
		piawe TEXT,
		reduction_rate TEXT NOT NULL,
		priority TEXT NOT NULL,
		status TEXT NOT NULL,
		strategy TEXT NOT NULL DEFAULT '',
		next_action TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_cases_status ON cases(status);
	CREATE INDEX IF NOT EXISTS idx_cases_state_worker ON cases(state, worker_name);

	CREATE TABLE IF NOT EXISTS certificates (
		id TEXT PRIMARY KEY,
		case_id TEXT NOT NULL REFERENCES cases(id),
		cert_from TEXT NOT NULL DEFAULT '',
		cert_to TEXT NOT NULL DEFAULT '',
		capacity TEXT NOT NULL,
		days_per_week INTEGER,
		hours_per_day REAL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);

	-- Hot path: certificate history and latest-per-case lookups
	CREATE INDEX IF NOT EXISTS idx_certificates_case_to
		ON certificates(case_id, cert_to DESC, created_at DESC);

	CREATE TABLE IF NOT EXISTS terminations (
		id TEXT PRIMARY KEY,
		case_id TEXT NOT NULL UNIQUE REFERENCES cases(id),
		termination_type TEXT NOT NULL,
		approved_by TEXT NOT NULL DEFAULT '',
		approved_date TEXT NOT NULL DEFAULT '',
		assigned_to TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		letter_drafted BOOLEAN NOT NULL DEFAULT FALSE,
		letter_sent BOOLEAN NOT NULL DEFAULT FALSE,
		response_received BOOLEAN NOT NULL DEFAULT FALSE,
		completed_date TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_terminations_status ON terminations(status);

	-- Append-only: compensation figures as computed at the time
	CREATE TABLE IF NOT EXISTS payroll_entries (
		id TEXT PRIMARY KEY,
		case_id TEXT NOT NULL REFERENCES cases(id),
		period_from TEXT NOT NULL DEFAULT '',
		period_to TEXT NOT NULL DEFAULT '',
		piawe TEXT NOT NULL,
		reduction_rate TEXT NOT NULL,
		days_off INTEGER NOT NULL DEFAULT 0,
		hours_worked REAL NOT NULL DEFAULT 0,
		estimated_wages TEXT NOT NULL,
		compensation_payable TEXT NOT NULL,
		top_up TEXT NOT NULL,
		back_pay_expenses TEXT NOT NULL,
		total_payable TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_payroll_case
		ON payroll_entries(case_id, period_to DESC);

	CREATE TABLE IF NOT EXISTS checklist_items (
		id TEXT PRIMARY KEY,
		case_id TEXT NOT NULL REFERENCES cases(id),
		doc_type TEXT NOT NULL,
		is_present BOOLEAN NOT NULL DEFAULT FALSE,
		UNIQUE(case_id, doc_type)
	);

	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		case_id TEXT NOT NULL REFERENCES cases(id),
		doc_type TEXT NOT NULL,
		filename TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_documents_case ON documents(case_id);

	-- Append-only audit log; case_id is '' for system-wide entries
	CREATE TABLE IF NOT EXISTS activity_log (
		id TEXT PRIMARY KEY,
		case_id TEXT NOT NULL DEFAULT '',
		worker_name TEXT NOT NULL DEFAULT '',
		action TEXT NOT NULL,
		details TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_activity_case ON activity_log(case_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_activity_created ON activity_log(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// qb is the statement builder; SQLite uses ? placeholders.
var qb = sq.StatementBuilder

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newID returns a short collision-resistant record ID.
func newID() string {
	return gonanoid.MustGenerate(idAlphabet, 14)
}

// execer is satisfied by both *sql.DB and *sql.Tx so insert helpers can
// run standalone or inside a transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
