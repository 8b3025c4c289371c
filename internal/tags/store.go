package tags

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"sunflower/internal/config"
	"sunflower/internal/services"
)

// Store manages tag persistence backed by SQLite.
//
// Reads run directly against the database; every mutating operation is
// serialized through an in-process mutex plus a cross-process file lock so
// concurrent CLI invocations cannot interleave writes.
type Store struct {
	db   *sql.DB
	path string

	writeMu  sync.Mutex
	fileLock *flock.Flock
}

// Open initializes or connects to the tag database and verifies its schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:       db,
		path:     dbPath,
		fileLock: flock.New(dbPath + ".lock"),
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the location of the database file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) lockWrites() (func(), error) {
	s.writeMu.Lock()
	if err := s.fileLock.Lock(); err != nil {
		s.writeMu.Unlock()
		return nil, services.Wrap(services.ErrIO, "tags", "lock", "acquire write lock", err)
	}
	return func() {
		_ = s.fileLock.Unlock()
		s.writeMu.Unlock()
	}, nil
}

// FindAll returns every stored tag ordered by insertion.
func (s *Store) FindAll(ctx context.Context) ([]Tag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+tagColumns+` FROM tags ORDER BY id`)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "tags", "find all", "query tags", err)
	}
	defer rows.Close()

	var result []Tag
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, tag)
	}
	return result, rows.Err()
}

// FindByFileName returns the tag stored for a file name, or nil when absent.
func (s *Store) FindByFileName(ctx context.Context, fileName string) (*Tag, error) {
	if fileName == "" {
		return nil, services.Wrap(services.ErrInvalidArgument, "tags", "find by file name", "file name is required", nil)
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+tagColumns+` FROM tags WHERE file_name = ?`, fileName)
	tag, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "tags", "find by file name", "query tag", err)
	}
	return &tag, nil
}

// FindAlbumsByArtist returns the distinct albums stored for an artist in
// first-seen order. Artist matching is case-sensitive and exact.
func (s *Store) FindAlbumsByArtist(ctx context.Context, artist string) ([]string, error) {
	if artist == "" {
		return nil, services.Wrap(services.ErrInvalidArgument, "tags", "find albums", "artist is required", nil)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT album FROM tags WHERE artist = ? ORDER BY id`, artist)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "tags", "find albums", "query albums", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	var albums []string
	for rows.Next() {
		var album string
		if err := rows.Scan(&album); err != nil {
			return nil, err
		}
		if _, ok := seen[album]; ok {
			continue
		}
		seen[album] = struct{}{}
		albums = append(albums, album)
	}
	return albums, rows.Err()
}

// Insert persists a new tag and assigns its identifier. A tag with the same
// file name must not already exist.
func (s *Store) Insert(ctx context.Context, tag *Tag) error {
	if tag == nil || tag.FileName == "" {
		return services.Wrap(services.ErrInvalidArgument, "tags", "insert", "file name is required", nil)
	}

	unlock, err := s.lockWrites()
	if err != nil {
		return err
	}
	defer unlock()

	return s.insertLocked(ctx, s.db, tag)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) insertLocked(ctx context.Context, db execer, tag *Tag) error {
	var existing int64
	err := db.QueryRowContext(ctx, `SELECT id FROM tags WHERE file_name = ?`, tag.FileName).Scan(&existing)
	switch {
	case err == nil:
		return services.Wrap(services.ErrConflict, "tags", "insert",
			fmt.Sprintf("tag for %q already exists", tag.FileName), nil)
	case !errors.Is(err, sql.ErrNoRows):
		return services.Wrap(services.ErrIO, "tags", "insert", "check existing tag", err)
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	res, err := db.ExecContext(ctx,
		`INSERT INTO tags (file_name, artist, title, album, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		tag.FileName, tag.Artist, tag.Title, tag.Album, timestamp, timestamp,
	)
	if err != nil {
		return services.Wrap(services.ErrIO, "tags", "insert", "persist tag", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return services.Wrap(services.ErrIO, "tags", "insert", "last insert id", err)
	}
	tag.ID = id
	tag.CreatedAt = now
	tag.UpdatedAt = now
	return nil
}

// Update replaces the artist, title, and album of an existing tag. The file
// name is immutable and the tag must already exist.
func (s *Store) Update(ctx context.Context, tag *Tag) error {
	if tag == nil || tag.ID == 0 {
		return services.Wrap(services.ErrInvalidArgument, "tags", "update", "tag id is required", nil)
	}

	unlock, err := s.lockWrites()
	if err != nil {
		return err
	}
	defer unlock()

	return s.updateLocked(ctx, s.db, tag)
}

func (s *Store) updateLocked(ctx context.Context, db execer, tag *Tag) error {
	now := time.Now().UTC()
	res, err := db.ExecContext(ctx,
		`UPDATE tags SET artist = ?, title = ?, album = ?, updated_at = ? WHERE id = ?`,
		tag.Artist, tag.Title, tag.Album, now.Format(time.RFC3339Nano), tag.ID,
	)
	if err != nil {
		return services.Wrap(services.ErrIO, "tags", "update", "persist tag", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return services.Wrap(services.ErrIO, "tags", "update", "rows affected", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "tags", "update",
			fmt.Sprintf("no tag with id %d", tag.ID), nil)
	}
	tag.UpdatedAt = now
	return nil
}

// DeleteAll removes every stored tag and reports how many were deleted.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	unlock, err := s.lockWrites()
	if err != nil {
		return 0, err
	}
	defer unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM tags`)
	if err != nil {
		return 0, services.Wrap(services.ErrIO, "tags", "delete all", "clear tags", err)
	}
	return res.RowsAffected()
}

// MergeBackup applies a backup sequence: tags whose file name already exists
// are updated in place, the rest are inserted. The sequence is processed in
// order, so the last entry wins for duplicate file names, and applying the
// same backup twice leaves the store unchanged after the first application.
func (s *Store) MergeBackup(ctx context.Context, backup []Tag) error {
	for i := range backup {
		if backup[i].FileName == "" {
			return services.Wrap(services.ErrInvalidArgument, "tags", "merge backup",
				fmt.Sprintf("entry %d has no file name", i), nil)
		}
	}

	unlock, err := s.lockWrites()
	if err != nil {
		return err
	}
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return services.Wrap(services.ErrIO, "tags", "merge backup", "begin tx", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range backup {
		incoming := backup[i]

		var existingID int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM tags WHERE file_name = ?`, incoming.FileName).Scan(&existingID)
		switch {
		case err == nil:
			existing := Tag{
				ID:     existingID,
				Artist: incoming.Artist,
				Title:  incoming.Title,
				Album:  incoming.Album,
			}
			if err := s.updateLocked(ctx, tx, &existing); err != nil {
				return err
			}
		case errors.Is(err, sql.ErrNoRows):
			fresh := Tag{
				FileName: incoming.FileName,
				Artist:   incoming.Artist,
				Title:    incoming.Title,
				Album:    incoming.Album,
			}
			if err := s.insertLocked(ctx, tx, &fresh); err != nil {
				return err
			}
		default:
			return services.Wrap(services.ErrIO, "tags", "merge backup", "check existing tag", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return services.Wrap(services.ErrIO, "tags", "merge backup", "commit", err)
	}
	return nil
}

// Count returns the number of stored tags.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM tags`).Scan(&count); err != nil {
		return 0, services.Wrap(services.ErrIO, "tags", "count", "count tags", err)
	}
	return count, nil
}

const tagColumns = "id, file_name, artist, title, album, created_at, updated_at"

func scanTag(scanner interface{ Scan(dest ...any) error }) (Tag, error) {
	var (
		tag        Tag
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(&tag.ID, &tag.FileName, &tag.Artist, &tag.Title, &tag.Album, &createdRaw, &updatedRaw); err != nil {
		return Tag{}, err
	}
	if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		tag.CreatedAt = created
	}
	if updated, err := time.Parse(time.RFC3339Nano, updatedRaw); err == nil {
		tag.UpdatedAt = updated
	}
	return tag, nil
}
