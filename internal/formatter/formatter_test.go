package formatter

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/songrec/internal/models"
	"github.com/desertthunder/songrec/internal/shared"
	th "github.com/desertthunder/songrec/internal/testing"
)

func sampleRecommendations() Recommendations {
	return Recommendations{
		Seed: "Bohemian Rhapsody",
		Songs: []models.Song{
			{Name: "Don't Stop Me Now", Artist: "Queen", Genre: "Rock", Mood: "Happy", Similarity: 0.874},
			{Name: "Mystery, Song"},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("RecommendationsToCSV", func(t *testing.T) {
		data, err := RecommendationsToCSV(sampleRecommendations())
		if err != nil {
			t.Fatalf("RecommendationsToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "Rank,Song,Artist,Genre,Mood,Similarity\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "1,Don't Stop Me Now,Queen,Rock,Happy,0.8740") {
			t.Errorf("CSV missing first row, got: %s", output)
		}
		if !strings.Contains(output, `2,"Mystery, Song",Unknown Artist,Various,Neutral,0.0000`) {
			t.Errorf("CSV should quote commas and apply defaults, got: %s", output)
		}
	})

	t.Run("RecommendationsToMarkdown", func(t *testing.T) {
		data, err := RecommendationsToMarkdown(sampleRecommendations())
		if err != nil {
			t.Fatalf("RecommendationsToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Recommendations for Bohemian Rhapsody",
			"**Songs**: 2",
			"1. **Don't Stop Me Now** - Queen (87% match)",
			"2. **Mystery, Song** - Unknown Artist\n",
			"https://open.spotify.com/search/",
			"https://music.youtube.com/search?q=",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got: %s", want, output)
			}
		}
	})

	t.Run("RecommendationsToText", func(t *testing.T) {
		r := sampleRecommendations()
		r.Mood = "calm"
		data, err := RecommendationsToText(r)
		if err != nil {
			t.Fatalf("RecommendationsToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Recommendations for: Bohemian Rhapsody") || !strings.Contains(output, "Mood: calm") {
			t.Errorf("text missing header, got: %s", output)
		}
		if !strings.Contains(output, "1. Don't Stop Me Now") {
			t.Errorf("text missing card, got: %s", output)
		}
	})

	t.Run("RecommendationsToJSON", func(t *testing.T) {
		data, err := RecommendationsToJSON(Recommendations{Seed: "x"})
		if err != nil {
			t.Fatalf("RecommendationsToJSON failed: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if recs, ok := decoded["recommendations"].([]any); !ok || len(recs) != 0 {
			t.Errorf("expected empty recommendations array, got %v", decoded["recommendations"])
		}
	})

	t.Run("Export Dispatches On Format", func(t *testing.T) {
		r := sampleRecommendations()
		csvData, _ := Export(r, FormatCSV)
		if !strings.HasPrefix(string(csvData), "Rank,") {
			t.Error("expected CSV output")
		}
		jsonData, _ := Export(r, Format("unknown"))
		if !strings.HasPrefix(string(jsonData), "{") {
			t.Error("expected JSON fallback")
		}
	})
}

func TestParseFormat(t *testing.T) {
	tc := []struct {
		in   string
		want Format
	}{
		{"", FormatJSON},
		{"JSON", FormatJSON},
		{"csv", FormatCSV},
		{"md", FormatMarkdown},
		{"markdown", FormatMarkdown},
		{"text", FormatText},
	}
	for _, tt := range tc {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, shared.ErrInvalidFlag) {
		t.Errorf("expected ErrInvalidFlag, got %v", err)
	}
	if FormatMarkdown.Extension() != "md" || FormatText.Extension() != "txt" {
		t.Error("unexpected extensions")
	}
}

func TestCard(t *testing.T) {
	t.Run("Full Record", func(t *testing.T) {
		got := Card(models.Song{Name: "Yellow", Artist: "Coldplay", Genre: "Rock", Mood: "Calm", Similarity: 0.5}, 3)
		want := "3. Yellow\n   Coldplay\n   Rock · Calm · 50% match\n"
		if got != want {
			t.Errorf("Card() = %q, want %q", got, want)
		}
	})

	t.Run("Defaults Without Index", func(t *testing.T) {
		got := Card(models.Song{Name: "Yellow"}, 0)
		want := "Yellow\n   Unknown Artist\n   Various · Neutral\n"
		if got != want {
			t.Errorf("Card() = %q, want %q", got, want)
		}
	})
}

func TestWeatherToText(t *testing.T) {
	out := WeatherToText(&models.WeatherRecommendations{
		Weather: models.Weather{City: "Oslo", Temperature: -2.4, FeelsLike: -6, Humidity: 70, Description: "snow"},
		Mood:    "cozy",
		Songs:   []models.Song{{Name: "Let It Snow"}},
	})
	if !strings.Contains(out, "Oslo: -2°C, snow") || !strings.Contains(out, "Mood: cozy") || !strings.Contains(out, "1. Let It Snow") {
		t.Errorf("unexpected weather text: %s", out)
	}
}

func TestFilenames(t *testing.T) {
	t.Run("LyricsFilename", func(t *testing.T) {
		if got := LyricsFilename("  Summer   Love ", "pop"); got != "lyrics-summer-love-pop.txt" {
			t.Errorf("LyricsFilename() = %q", got)
		}
	})

	t.Run("SongFilename", func(t *testing.T) {
		ts := time.UnixMilli(1700000000123)
		if got := SongFilename(ts); got != "song-description-1700000000123.txt" {
			t.Errorf("SongFilename() = %q", got)
		}
	})

	t.Run("RecommendationsFilename", func(t *testing.T) {
		if got := RecommendationsFilename("Don't Stop Me Now!", FormatMarkdown); got != "don-t-stop-me-now.md" {
			t.Errorf("RecommendationsFilename() = %q", got)
		}
		if got := RecommendationsFilename("???", FormatCSV); got != "recommendations.csv" {
			t.Errorf("RecommendationsFilename() = %q", got)
		}
	})
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")

	path, err := WriteFile(dir, "lyrics-x-pop.txt", []byte("la la la"))
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	th.AssertFileExists(t, path)
	if got := th.MustReadFile(t, path); got != "la la la" {
		t.Errorf("unexpected content %q", got)
	}
}
