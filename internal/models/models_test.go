package models

import "testing"

func TestSong(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		s := Song{Name: "Imagine"}
		if s.ArtistOrDefault() != UnknownArtist {
			t.Errorf("expected %s, got %s", UnknownArtist, s.ArtistOrDefault())
		}
		if s.GenreOrDefault() != VariousGenre {
			t.Errorf("expected %s, got %s", VariousGenre, s.GenreOrDefault())
		}
		if s.MoodOrDefault() != NeutralMood {
			t.Errorf("expected %s, got %s", NeutralMood, s.MoodOrDefault())
		}
	})

	t.Run("MatchLabel", func(t *testing.T) {
		tc := []struct {
			score float64
			want  string
		}{
			{0, ""},
			{0.874, "87% match"},
			{0.875, "88% match"},
			{1, "100% match"},
		}
		for _, tt := range tc {
			if got := (Song{Similarity: tt.score}).MatchLabel(); got != tt.want {
				t.Errorf("MatchLabel(%v) = %q, want %q", tt.score, got, tt.want)
			}
		}
	})

	t.Run("SongsFromNames", func(t *testing.T) {
		songs := SongsFromNames([]string{"a", "b"})
		if len(songs) != 2 || songs[0].Name != "a" || songs[1].DisplayName() != "b" {
			t.Errorf("unexpected songs %+v", songs)
		}
	})
}

func TestValidation(t *testing.T) {
	if err := (LyricsRequest{Theme: "  "}).Validate(); err == nil {
		t.Error("expected error for blank theme")
	}
	if err := (SongRequest{Prompt: "lofi beat"}).Validate(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if err := (Coordinates{Latitude: 91}).Validate(); err == nil {
		t.Error("expected error for latitude out of range")
	}
	if err := NewHistoryEntry("bogus", "q", "", 0).Validate(); err == nil {
		t.Error("expected error for unknown kind")
	}
	if err := NewHistoryEntry(HistorySearch, "", "", 0).Validate(); err == nil {
		t.Error("expected error for empty query")
	}
	if err := NewCachedSong(Song{}).Validate(); err == nil {
		t.Error("expected error for empty song name")
	}
}

func TestWeatherSummary(t *testing.T) {
	w := Weather{City: "London", Temperature: 11.6, FeelsLike: 9.4, Humidity: 80, Description: "light rain"}
	want := "London: 12°C, light rain (feels like 9°C, 80% humidity)"
	if got := w.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
