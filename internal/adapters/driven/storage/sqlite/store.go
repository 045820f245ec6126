package sqlite

import (
	"context"
	"database/sql"
	"embed"
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

	"github.com/custodia-labs/margin-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/margin-cli/internal/core/domain"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driven"
)

// Store is a SQLite-based cache holding anchors and reading positions
// for offline sessions.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.margin/data/cache.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".margin", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "cache.db")

	// Open database with WAL mode for better concurrency
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

// AnnotationStore returns an AnnotationStore interface backed by this store.
func (s *Store) AnnotationStore() driven.AnnotationStore {
	return &annotationStore{store: s}
}

// ProgressStore returns a ProgressStore interface backed by this store.
func (s *Store) ProgressStore() driven.ProgressStore {
	return &progressStore{store: s}
}

// Position retrieves the cached reading position for a copy.
func (s *Store) Position(ctx context.Context, copyID string) (*domain.ReadingPosition, error) {
	return (&progressStore{store: s}).Position(ctx, copyID)
}

// migrate runs all pending migrations.
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
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
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

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Annotation Store ====================

// annotationStore implements driven.AnnotationStore.
type annotationStore struct {
	store *Store
}

var _ driven.AnnotationStore = (*annotationStore)(nil)

// List retrieves all anchors for a copy, newest first.
func (a *annotationStore) List(ctx context.Context, copyID string) ([]domain.Anchor, error) {
	rows, err := a.store.db.QueryContext(ctx, `
		SELECT id, copy_id, kind, page, pos_left, pos_top, pos_width, pos_height,
		       text, body, color, created_at
		FROM anchors WHERE copy_id = ?
		ORDER BY created_at DESC, id DESC
	`, copyID)
	if err != nil {
		return nil, fmt.Errorf("listing anchors: %w", err)
	}
	defer rows.Close()

	anchors := []domain.Anchor{}
	for rows.Next() {
		var anchor domain.Anchor
		var createdAt sql.NullTime
		if err := rows.Scan(&anchor.ID, &anchor.CopyID, &anchor.Kind, &anchor.Page,
			&anchor.Position.Left, &anchor.Position.Top,
			&anchor.Position.Width, &anchor.Position.Height,
			&anchor.Text, &anchor.Body, &anchor.Color, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning anchor: %w", err)
		}
		if createdAt.Valid {
			anchor.CreatedAt = createdAt.Time
		}
		anchors = append(anchors, anchor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating anchors: %w", err)
	}
	return anchors, nil
}

// Create stores a new anchor. A locally generated id marks anchors
// created offline that have not been assigned a server id yet.
func (a *annotationStore) Create(ctx context.Context, anchor domain.Anchor) (*domain.Anchor, error) {
	if anchor.ID == "" {
		anchor.ID = "local-" + uuid.NewString()
	}
	if anchor.CreatedAt.IsZero() {
		anchor.CreatedAt = time.Now().UTC()
	}

	_, err := a.store.db.ExecContext(ctx, `
		INSERT INTO anchors (id, copy_id, kind, page, pos_left, pos_top, pos_width, pos_height,
		                     text, body, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			page = excluded.page,
			pos_left = excluded.pos_left,
			pos_top = excluded.pos_top,
			pos_width = excluded.pos_width,
			pos_height = excluded.pos_height,
			text = excluded.text,
			body = excluded.body,
			color = excluded.color
	`, anchor.ID, anchor.CopyID, string(anchor.Kind), anchor.Page,
		anchor.Position.Left, anchor.Position.Top, anchor.Position.Width, anchor.Position.Height,
		anchor.Text, anchor.Body, anchor.Color, anchor.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("saving anchor: %w", err)
	}
	return &anchor, nil
}

// Delete removes an anchor by id. Deleting an unknown id is a no-op.
func (a *annotationStore) Delete(ctx context.Context, id string) error {
	if _, err := a.store.db.ExecContext(ctx, "DELETE FROM anchors WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting anchor: %w", err)
	}
	return nil
}

// ==================== Progress Store ====================

// progressStore implements driven.ProgressStore.
type progressStore struct {
	store *Store
}

var _ driven.ProgressStore = (*progressStore)(nil)

// SaveProgress upserts the reading position for a copy. Last write wins.
func (p *progressStore) SaveProgress(ctx context.Context, pos domain.ReadingPosition) error {
	savedAt := pos.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now().UTC()
	}

	_, err := p.store.db.ExecContext(ctx, `
		INSERT INTO reading_positions (copy_id, current_page, total_pages, zoom, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(copy_id) DO UPDATE SET
			current_page = excluded.current_page,
			total_pages = excluded.total_pages,
			zoom = excluded.zoom,
			saved_at = excluded.saved_at
	`, pos.CopyID, pos.CurrentPage, pos.TotalPages, pos.Zoom, savedAt)
	if err != nil {
		return fmt.Errorf("saving reading position: %w", err)
	}
	return nil
}

// Position retrieves the cached reading position for a copy.
func (p *progressStore) Position(ctx context.Context, copyID string) (*domain.ReadingPosition, error) {
	row := p.store.db.QueryRowContext(ctx, `
		SELECT copy_id, current_page, total_pages, zoom, saved_at
		FROM reading_positions WHERE copy_id = ?
	`, copyID)

	var pos domain.ReadingPosition
	var savedAt sql.NullTime
	if err := row.Scan(&pos.CopyID, &pos.CurrentPage, &pos.TotalPages, &pos.Zoom, &savedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning reading position: %w", err)
	}
	if savedAt.Valid {
		pos.SavedAt = savedAt.Time
	}
	return &pos, nil
}
