package models

import (
	"fmt"
	"time"
)

// HistoryKind labels what produced a history entry.
type HistoryKind string

const (
	HistorySearch    HistoryKind = "search"
	HistorySelect    HistoryKind = "select"
	HistoryRecommend HistoryKind = "recommend"
	HistoryWeather   HistoryKind = "weather"
)

// HistoryEntry records a query the user ran and, when relevant, what they picked.
type HistoryEntry struct {
	id          string
	sequence    int
	kind        HistoryKind
	query       string
	selected    string
	resultCount int
	createdAt   time.Time
}

var _ Model = (*HistoryEntry)(nil)

// NewHistoryEntry creates an unsaved [HistoryEntry].
func NewHistoryEntry(kind HistoryKind, query, selected string, resultCount int) *HistoryEntry {
	return &HistoryEntry{
		kind:        kind,
		query:       query,
		selected:    selected,
		resultCount: resultCount,
		createdAt:   time.Now(),
	}
}

func (h *HistoryEntry) ID() string           { return h.id }
func (h *HistoryEntry) Sequence() int        { return h.sequence }
func (h *HistoryEntry) Kind() HistoryKind    { return h.kind }
func (h *HistoryEntry) Query() string        { return h.query }
func (h *HistoryEntry) Selected() string     { return h.selected }
func (h *HistoryEntry) ResultCount() int     { return h.resultCount }
func (h *HistoryEntry) CreatedAt() time.Time { return h.createdAt }

func (h *HistoryEntry) SetID(id string)          { h.id = id }
func (h *HistoryEntry) SetSequence(seq int)      { h.sequence = seq }
func (h *HistoryEntry) SetCreatedAt(t time.Time) { h.createdAt = t }

// Validate checks required fields.
func (h *HistoryEntry) Validate() error {
	switch h.kind {
	case HistorySearch, HistorySelect, HistoryRecommend, HistoryWeather:
	default:
		return fmt.Errorf("unknown history kind %q", h.kind)
	}
	if h.query == "" {
		return fmt.Errorf("query is required")
	}
	if h.resultCount < 0 {
		return fmt.Errorf("result count must not be negative")
	}
	return nil
}

// CachedSong is a [Song] persisted in the local cache.
type CachedSong struct {
	id        string
	sequence  int
	song      Song
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

var _ Model = (*CachedSong)(nil)

// NewCachedSong creates an unsaved [CachedSong].
func NewCachedSong(song Song) *CachedSong {
	now := time.Now()
	return &CachedSong{song: song, createdAt: now, updatedAt: now}
}

func (c *CachedSong) ID() string            { return c.id }
func (c *CachedSong) Sequence() int         { return c.sequence }
func (c *CachedSong) Song() Song            { return c.song }
func (c *CachedSong) CreatedAt() time.Time  { return c.createdAt }
func (c *CachedSong) UpdatedAt() time.Time  { return c.updatedAt }
func (c *CachedSong) DeletedAt() *time.Time { return c.deletedAt }

func (c *CachedSong) SetID(id string)           { c.id = id }
func (c *CachedSong) SetSequence(seq int)       { c.sequence = seq }
func (c *CachedSong) SetCreatedAt(t time.Time)  { c.createdAt = t }
func (c *CachedSong) SetUpdatedAt(t time.Time)  { c.updatedAt = t }
func (c *CachedSong) SetDeletedAt(t *time.Time) { c.deletedAt = t }

// Validate checks required fields.
func (c *CachedSong) Validate() error {
	if c.song.Name == "" {
		return fmt.Errorf("song name is required")
	}
	return nil
}
