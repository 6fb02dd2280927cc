package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/songrec/internal/models"
	"github.com/desertthunder/songrec/internal/shared"
)

const historyColumns = `id, sequence, kind, query, selected, result_count, created_at`

// HistoryRepository implements models.Repository[*models.HistoryEntry].
//
// History rows are append-only; Delete and Clear remove them permanently.
type HistoryRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.HistoryEntry] = (*HistoryRepository)(nil)

// NewHistoryRepository creates a new HistoryRepository with the given database connection
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create inserts a new [models.HistoryEntry] with generated ID and sequence
func (r *HistoryRepository) Create(entry *models.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	sequence, err := NextSequence(r.db, "history")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()

	query := `
		INSERT INTO history (id, sequence, kind, query, selected, result_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		string(entry.Kind()),
		entry.Query(),
		entry.Selected(),
		entry.ResultCount(),
		entry.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	entry.SetID(id)
	entry.SetSequence(sequence)
	return nil
}

// Get retrieves a history entry by ID
func (r *HistoryRepository) Get(id string) (*models.HistoryEntry, error) {
	row := r.db.QueryRow(`SELECT `+historyColumns+` FROM history WHERE id = ?`, id)

	entry, err := scanHistory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: history entry %s", shared.ErrNotFound, id)
	}
	return entry, err
}

// Delete removes a history entry by ID
func (r *HistoryRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	return expectOneRow(result, "history entry", id)
}

// List retrieves history entries newest first, filtered by "kind" and capped by "limit"
func (r *HistoryRepository) List(criteria map[string]any) ([]*models.HistoryEntry, error) {
	query := `SELECT ` + historyColumns + ` FROM history WHERE 1 = 1`
	args := []any{}

	switch kind := criteria["kind"].(type) {
	case models.HistoryKind:
		query += " AND kind = ?"
		args = append(args, string(kind))
	case string:
		if kind != "" {
			query += " AND kind = ?"
			args = append(args, kind)
		}
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*models.HistoryEntry
	for rows.Next() {
		entry, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return entries, nil
}

// Recent returns the newest limit entries of any kind
func (r *HistoryRepository) Recent(limit int) ([]*models.HistoryEntry, error) {
	return r.List(map[string]any{"limit": limit})
}

// Clear removes all history and returns how many entries were dropped
func (r *HistoryRepository) Clear() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM history`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	return result.RowsAffected()
}

func scanHistory(s scanner) (*models.HistoryEntry, error) {
	var (
		id          string
		sequence    int
		kind        string
		query       string
		selected    string
		resultCount int
		createdAt   time.Time
	)

	err := s.Scan(&id, &sequence, &kind, &query, &selected, &resultCount, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan history entry: %w", err)
	}

	entry := models.NewHistoryEntry(models.HistoryKind(kind), query, selected, resultCount)
	entry.SetID(id)
	entry.SetSequence(sequence)
	entry.SetCreatedAt(createdAt)
	return entry, nil
}
