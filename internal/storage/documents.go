package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kodama-kanban/kodama/internal/models"
)

// Document keys. Two independent documents reconstruct the full board state;
// a missing document falls back to the default seed for that document only.
const (
	keyTaskLists = "task_lists"
	keyTags      = "tags"
)

// Source loads previously persisted board state. The bool result reports
// whether the document existed at all.
type Source interface {
	LoadLists(ctx context.Context) ([]models.TaskList, bool, error)
	LoadTags(ctx context.Context) ([]models.Tag, bool, error)
}

// Persister durably writes a full board snapshot.
type Persister interface {
	SaveSnapshot(ctx context.Context, lists []models.TaskList, tags []models.Tag) error
}

// Store combines loading and saving; *DocumentStore is the SQLite-backed
// implementation used by the application.
type Store interface {
	Source
	Persister
}

// DocumentStore reads and writes the two board documents in SQLite.
type DocumentStore struct {
	db *sql.DB
}

var _ Store = (*DocumentStore)(nil)

// NewDocumentStore wraps an already opened database.
func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// LoadLists loads the task-list document.
func (s *DocumentStore) LoadLists(ctx context.Context) ([]models.TaskList, bool, error) {
	raw, ok, err := s.loadDocument(ctx, keyTaskLists)
	if err != nil || !ok {
		return nil, false, err
	}

	var lists []models.TaskList
	if err := json.Unmarshal(raw, &lists); err != nil {
		return nil, false, fmt.Errorf("failed to decode task lists: %w", err)
	}
	return lists, true, nil
}

// LoadTags loads the tag-collection document.
func (s *DocumentStore) LoadTags(ctx context.Context) ([]models.Tag, bool, error) {
	raw, ok, err := s.loadDocument(ctx, keyTags)
	if err != nil || !ok {
		return nil, false, err
	}

	var tags []models.Tag
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, false, fmt.Errorf("failed to decode tags: %w", err)
	}
	return tags, true, nil
}

// SaveSnapshot writes both documents in a single transaction so a torn write
// can never leave one document newer than the other.
func (s *DocumentStore) SaveSnapshot(ctx context.Context, lists []models.TaskList, tags []models.Tag) error {
	listsJSON, err := json.Marshal(lists)
	if err != nil {
		return fmt.Errorf("failed to encode task lists: %w", err)
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const upsert = `
		INSERT INTO documents (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

	if _, err := tx.ExecContext(ctx, upsert, keyTaskLists, string(listsJSON)); err != nil {
		return fmt.Errorf("failed to save task lists: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsert, keyTags, string(tagsJSON)); err != nil {
		return fmt.Errorf("failed to save tags: %w", err)
	}

	return tx.Commit()
}

func (s *DocumentStore) loadDocument(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM documents WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load document %q: %w", key, err)
	}
	return []byte(value), true, nil
}
