package models

import (
	"fmt"
	"math"
)

const (
	UnknownArtist = "Unknown Artist"
	VariousGenre  = "Various"
	NeutralMood   = "Neutral"
)

// Song is a single song record returned by the recommendation server.
//
// Search results only carry a name; recommendations fill in the remaining fields.
type Song struct {
	Name       string  `json:"song"`
	Artist     string  `json:"artist,omitempty"`
	Genre      string  `json:"genre,omitempty"`
	Mood       string  `json:"mood,omitempty"`
	Similarity float64 `json:"similarity_score,omitempty"`
}

// DisplayName is the text written back into the search box when the song is selected.
func (s Song) DisplayName() string { return s.Name }

// ArtistOrDefault returns the artist or [UnknownArtist].
func (s Song) ArtistOrDefault() string {
	if s.Artist == "" {
		return UnknownArtist
	}
	return s.Artist
}

// GenreOrDefault returns the genre or [VariousGenre].
func (s Song) GenreOrDefault() string {
	if s.Genre == "" {
		return VariousGenre
	}
	return s.Genre
}

// MoodOrDefault returns the mood or [NeutralMood].
func (s Song) MoodOrDefault() string {
	if s.Mood == "" {
		return NeutralMood
	}
	return s.Mood
}

// MatchLabel renders the similarity score as a whole percentage ("87% match").
//
// Returns an empty string when the server sent no score.
func (s Song) MatchLabel() string {
	if s.Similarity <= 0 {
		return ""
	}
	return fmt.Sprintf("%d%% match", int(math.Round(s.Similarity*100)))
}

// SongsFromNames wraps plain song names (as returned by /search-songs) in [Song] values.
func SongsFromNames(names []string) []Song {
	songs := make([]Song, len(names))
	for i, n := range names {
		songs[i] = Song{Name: n}
	}
	return songs
}
