package preferences

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nutrimcp/backend/internal/domain"
)

// SQLiteStore persists language preferences in a SQLite database
type SQLiteStore struct {
	db *sql.DB
}

var _ domain.PreferenceStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) the database at dbPath
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS language_preferences (
        user_id TEXT PRIMARY KEY,
        language TEXT NOT NULL,
        updated_at DATETIME NOT NULL
    );
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetLanguage returns the stored language of userID
func (s *SQLiteStore) GetLanguage(ctx context.Context, userID string) (domain.Language, error) {
	var lang string
	err := s.db.QueryRowContext(ctx,
		`SELECT language FROM language_preferences WHERE user_id = ?`,
		strings.TrimSpace(userID),
	).Scan(&lang)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrPreferenceNotSet
	}
	if err != nil {
		return "", fmt.Errorf("failed to read preference: %w", err)
	}
	return domain.Language(lang), nil
}

// SetLanguage stores lang for userID, replacing any previous choice
func (s *SQLiteStore) SetLanguage(ctx context.Context, userID string, lang domain.Language) error {
	if err := validate(userID, lang); err != nil {
		return err
	}

	query := `
        INSERT INTO language_preferences (user_id, language, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT(user_id) DO UPDATE SET language = excluded.language, updated_at = excluded.updated_at
    `
	if _, err := s.db.ExecContext(ctx, query, strings.TrimSpace(userID), string(lang), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}
	return nil
}
