package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driven"
)

// DatabaseName is the history database file inside the data directory.
const DatabaseName = "history.db"

// Store is the SQLite-backed local database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.fieldlens/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".fieldlens", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseName)

	// WAL lets the TUI and a CLI invocation share the file.
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

// ExportHistoryStore returns an ExportHistoryStore backed by this store.
func (s *Store) ExportHistoryStore() driven.ExportHistoryStore {
	return &exportHistoryStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
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
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_export_history.up.sql" -> 1
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

		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, content string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(content); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Export History Store ====================

// exportHistoryStore implements driven.ExportHistoryStore.
type exportHistoryStore struct {
	store *Store
}

var _ driven.ExportHistoryStore = (*exportHistoryStore)(nil)

// Record saves an export, assigning an ID when empty.
func (s *exportHistoryStore) Record(ctx context.Context, rec *domain.ExportRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: nil export record", domain.ErrInvalidInput)
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	var sector sql.NullInt64
	if rec.Sector != nil {
		sector = sql.NullInt64{Int64: int64(*rec.Sector), Valid: true}
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO export_history (id, job_id, sector, kind, path, size, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			job_id = excluded.job_id,
			sector = excluded.sector,
			kind = excluded.kind,
			path = excluded.path,
			size = excluded.size,
			created_at = excluded.created_at
	`, rec.ID, rec.JobID, sector, string(rec.Kind), rec.Path, rec.Size, rec.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("saving export record: %w", err)
	}
	return nil
}

// List returns the most recent records first. limit <= 0 returns all.
func (s *exportHistoryStore) List(ctx context.Context, limit int) ([]domain.ExportRecord, error) {
	query := `
		SELECT id, job_id, sector, kind, path, size, created_at
		FROM export_history
		ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing export history: %w", err)
	}
	defer rows.Close()

	return scanExportRecords(rows)
}

// ListByJob returns the records of one job, most recent first.
func (s *exportHistoryStore) ListByJob(ctx context.Context, jobID string) ([]domain.ExportRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, job_id, sector, kind, path, size, created_at
		FROM export_history
		WHERE job_id = ?
		ORDER BY created_at DESC, rowid DESC
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("listing export history: %w", err)
	}
	defer rows.Close()

	return scanExportRecords(rows)
}

// Clear removes every record.
func (s *exportHistoryStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM export_history"); err != nil {
		return fmt.Errorf("clearing export history: %w", err)
	}
	return nil
}

func scanExportRecords(rows *sql.Rows) ([]domain.ExportRecord, error) {
	records := []domain.ExportRecord{}
	for rows.Next() {
		var (
			rec       domain.ExportRecord
			sector    sql.NullInt64
			kind      string
			createdAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.JobID, &sector, &kind, &rec.Path, &rec.Size, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning export record: %w", err)
		}
		rec.Kind = domain.ExportKind(kind)
		if sector.Valid {
			n := int(sector.Int64)
			rec.Sector = &n
		}
		rec.CreatedAt = time.Unix(0, createdAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return records, nil
}
