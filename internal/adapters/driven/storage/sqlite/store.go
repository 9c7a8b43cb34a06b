package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/sizhu-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
	"github.com/custodia-labs/sizhu-cli/internal/core/ports/driven"
)

// dbFile is the database file name inside the data directory.
const dbFile = "charts.db"

// Store is the SQLite-backed chart history.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in dataDir.
// If dataDir is empty, defaults to ~/.sizhu/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".sizhu", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ChartStore returns a ChartStore interface backed by this store.
func (s *Store) ChartStore() driven.ChartStore {
	return &chartStore{store: s}
}

// migrate applies pending NNN_name.up.sql files in version order.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// apply runs one migration and records its version atomically.
func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// version returns the highest applied migration.
func (s *Store) version() (int, error) {
	var v int
	err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v)
	return v, err
}

// ==================== Chart Store ====================

// chartStore implements driven.ChartStore.
type chartStore struct {
	store *Store
}

var _ driven.ChartStore = (*chartStore)(nil)

// Save stores or updates a chart record.
// The chart is stored as JSON; the birth columns exist for querying.
func (s *chartStore) Save(ctx context.Context, record domain.ChartRecord) error {
	if record.ID == "" {
		return fmt.Errorf("%w: chart record has no id", domain.ErrInvalidInput)
	}

	chartJSON, err := json.Marshal(record.Chart)
	if err != nil {
		return fmt.Errorf("marshalling chart: %w", err)
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	in := record.Chart.Birth.Input
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO charts (id, subject, label, gender, birth_date, birth_hour, full_bazi, chart, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			subject = excluded.subject,
			label = excluded.label,
			gender = excluded.gender,
			birth_date = excluded.birth_date,
			birth_hour = excluded.birth_hour,
			full_bazi = excluded.full_bazi,
			chart = excluded.chart
	`, record.ID, record.Subject, record.Label, record.Chart.Gender.String(),
		in.Date.String(), in.Hour, record.Chart.FullBaZi(), string(chartJSON),
		record.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving chart: %w", err)
	}
	return nil
}

// Get retrieves a chart record by ID.
func (s *chartStore) Get(ctx context.Context, id string) (*domain.ChartRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, subject, label, chart, created_at
		FROM charts WHERE id = ?
	`, id)

	record, err := scanChart(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// List returns records for a subject, newest first.
func (s *chartStore) List(ctx context.Context, subject string, limit int) ([]domain.ChartRecord, error) {
	query := `SELECT id, subject, label, chart, created_at FROM charts`
	var args []any
	if subject != "" {
		query += ` WHERE subject = ?`
		args = append(args, subject)
	}
	query += ` ORDER BY created_at DESC, id ASC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing charts: %w", err)
	}
	defer rows.Close()

	var records []domain.ChartRecord
	for rows.Next() {
		record, err := scanChart(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating charts: %w", err)
	}
	return records, nil
}

// Delete removes a chart record.
func (s *chartStore) Delete(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, `DELETE FROM charts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting chart: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting chart: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanChart(row rowScanner) (*domain.ChartRecord, error) {
	var record domain.ChartRecord
	var chartJSON string
	var createdAt sql.NullTime
	if err := row.Scan(&record.ID, &record.Subject, &record.Label, &chartJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning chart: %w", err)
	}

	if err := json.Unmarshal([]byte(chartJSON), &record.Chart); err != nil {
		return nil, fmt.Errorf("unmarshalling chart: %w", err)
	}
	if createdAt.Valid {
		record.CreatedAt = createdAt.Time
	}
	return &record, nil
}
