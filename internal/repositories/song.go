package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/songrec/internal/models"
	"github.com/desertthunder/songrec/internal/shared"
)

const songColumns = `id, sequence, name, artist, genre, mood, created_at, updated_at, deleted_at`

// SongRepository implements models.Repository[*models.CachedSong] for the local song cache.
//
// Songs are keyed by normalized name and artist. Deletes are soft.
type SongRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.CachedSong] = (*SongRepository)(nil)

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// Create inserts a new [models.CachedSong] with generated ID and sequence
func (r *SongRepository) Create(song *models.CachedSong) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	sequence, err := NextSequence(r.db, "songs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	s := song.Song()

	query := `
		INSERT INTO songs (id, sequence, song_key, name, artist, genre, mood, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		shared.NormalizeSongKey(s.Name, s.Artist),
		s.Name,
		s.Artist,
		s.Genre,
		s.Mood,
		song.CreatedAt(),
		song.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert song: %w", err)
	}

	song.SetID(id)
	song.SetSequence(sequence)
	return nil
}

// Get retrieves a song by ID, excluding soft-deleted songs
func (r *SongRepository) Get(id string) (*models.CachedSong, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE id = ? AND deleted_at IS NULL`
	return r.scanOne(r.db.QueryRow(query, id), id)
}

// GetByKey retrieves a song by name and artist, ignoring case and extra whitespace
func (r *SongRepository) GetByKey(name, artist string) (*models.CachedSong, error) {
	key := shared.NormalizeSongKey(name, artist)
	query := `SELECT ` + songColumns + ` FROM songs WHERE song_key = ? AND deleted_at IS NULL`
	return r.scanOne(r.db.QueryRow(query, key), key)
}

// GetByName retrieves the first song with the given name, preferring rows that carry an artist
func (r *SongRepository) GetByName(name string) (*models.CachedSong, error) {
	query := `
		SELECT ` + songColumns + `
		FROM songs
		WHERE name = ? COLLATE NOCASE AND deleted_at IS NULL
		ORDER BY artist = '' ASC, sequence ASC
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRow(query, strings.TrimSpace(name)), name)
}

// Update overwrites the song fields and key of an existing song
func (r *SongRepository) Update(song *models.CachedSong) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	now := time.Now()
	s := song.Song()

	query := `
		UPDATE songs
		SET song_key = ?, name = ?, artist = ?, genre = ?, mood = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		shared.NormalizeSongKey(s.Name, s.Artist),
		s.Name,
		s.Artist,
		s.Genre,
		s.Mood,
		now,
		song.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}

	if err := expectOneRow(result, "song", song.ID()); err != nil {
		return err
	}
	song.SetUpdatedAt(now)
	return nil
}

// Delete soft-deletes a song by ID
func (r *SongRepository) Delete(id string) error {
	result, err := r.db.Exec(`UPDATE songs SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	return expectOneRow(result, "song", id)
}

// Clear removes every cached song, including soft-deleted ones, and returns how many rows were dropped
func (r *SongRepository) Clear() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM songs`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear songs: %w", err)
	}
	return result.RowsAffected()
}

// Count returns the number of cached songs
func (r *SongRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM songs WHERE deleted_at IS NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return n, nil
}

// List retrieves all songs matching the given criteria ("artist", "genre", "mood", "limit")
func (r *SongRepository) List(criteria map[string]any) ([]*models.CachedSong, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE deleted_at IS NULL`
	args := []any{}

	for _, col := range []string{"artist", "genre", "mood"} {
		if v, ok := criteria[col].(string); ok && v != "" {
			query += " AND " + col + " = ? COLLATE NOCASE"
			args = append(args, v)
		}
	}

	query += " ORDER BY sequence ASC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return r.query(query, args...)
}

// Search returns songs whose name contains q, case-insensitively, ordered by name
func (r *SongRepository) Search(q string, limit int) ([]*models.CachedSong, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + songColumns + `
		FROM songs
		WHERE name LIKE ? ESCAPE '\' AND deleted_at IS NULL
		ORDER BY name COLLATE NOCASE ASC
		LIMIT ?
	`
	return r.query(query, "%"+escapeLike(strings.TrimSpace(q))+"%", limit)
}

func (r *SongRepository) query(query string, args ...any) ([]*models.CachedSong, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []*models.CachedSong
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return songs, nil
}

func (r *SongRepository) scanOne(row *sql.Row, lookup string) (*models.CachedSong, error) {
	song, err := scanSong(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: song %s", shared.ErrNotFound, lookup)
	}
	return song, err
}

// scanSong scans a songs row from either [sql.Row] or [sql.Rows]
func scanSong(s scanner) (*models.CachedSong, error) {
	var (
		id        string
		sequence  int
		song      models.Song
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := s.Scan(&id, &sequence, &song.Name, &song.Artist, &song.Genre, &song.Mood, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}

	cached := models.NewCachedSong(song)
	cached.SetID(id)
	cached.SetSequence(sequence)
	cached.SetCreatedAt(createdAt)
	cached.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		cached.SetDeletedAt(&deletedAt.Time)
	}
	return cached, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
