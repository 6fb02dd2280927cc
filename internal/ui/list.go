package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/songrec/internal/models"
)

var _ list.Item = songItem{}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Name }
func (i songItem) Title() string       { return i.song.Name }

// Description renders the card details: artist, genre, mood and the match label when present.
func (i songItem) Description() string {
	parts := []string{i.song.ArtistOrDefault(), i.song.GenreOrDefault(), i.song.MoodOrDefault()}
	if label := i.song.MatchLabel(); label != "" {
		parts = append(parts, label)
	}
	return strings.Join(parts, " · ")
}

func songItems(songs []models.Song) []list.Item {
	items := make([]list.Item, len(songs))
	for i, s := range songs {
		items[i] = songItem{song: s}
	}
	return items
}

// newSongList creates a list with filtering and built-in chrome turned off; the model owns the keys.
func newSongList(title string, compact bool) list.Model {
	delegate := list.NewDefaultDelegate()
	if compact {
		delegate.ShowDescription = false
		delegate.SetSpacing(0)
	}

	l := list.New(nil, delegate, 0, 0)
	l.Title = title
	l.SetShowTitle(title != "")
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()
	return l
}

func selectedSong(l list.Model) (models.Song, bool) {
	item, ok := l.SelectedItem().(songItem)
	if !ok {
		return models.Song{}, false
	}
	return item.song, true
}
