// package formatter renders recommendations and generated text for files, the clipboard and the terminal
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/songrec/internal/models"
	"github.com/desertthunder/songrec/internal/shared"
)

// Format is an export file format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
)

// ParseFormat maps a flag value to a [Format]. Empty selects JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want json, csv, markdown or txt)", shared.ErrInvalidFlag, s)
	}
}

// Extension returns the file extension for f, without the dot.
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// Recommendations is a seed song with the songs recommended for it.
type Recommendations struct {
	Seed  string        `json:"seed"`
	Mood  string        `json:"mood,omitempty"`
	Songs []models.Song `json:"recommendations"`
}

// RecommendationsToCSV renders recommendations with columns: Rank, Song, Artist, Genre, Mood, Similarity
func RecommendationsToCSV(r Recommendations) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Rank", "Song", "Artist", "Genre", "Mood", "Similarity"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, s := range r.Songs {
		record := []string{
			strconv.Itoa(i + 1),
			s.Name,
			s.ArtistOrDefault(),
			s.GenreOrDefault(),
			s.MoodOrDefault(),
			strconv.FormatFloat(s.Similarity, 'f', 4, 64),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// RecommendationsToMarkdown renders recommendations as a numbered list with streaming links
func RecommendationsToMarkdown(r Recommendations) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Recommendations for %s\n\n", r.Seed)
	if r.Mood != "" {
		fmt.Fprintf(&buf, "**Mood**: %s\n", r.Mood)
	}
	fmt.Fprintf(&buf, "**Songs**: %d\n\n", len(r.Songs))

	for i, s := range r.Songs {
		match := ""
		if label := s.MatchLabel(); label != "" {
			match = fmt.Sprintf(" (%s)", label)
		}
		fmt.Fprintf(&buf, "%d. **%s** - %s%s\n", i+1, s.Name, s.ArtistOrDefault(), match)
		fmt.Fprintf(&buf, "   - %s · %s\n", s.GenreOrDefault(), s.MoodOrDefault())
		fmt.Fprintf(&buf, "   - [Spotify](%s) · [YouTube Music](%s)\n",
			shared.SpotifySearchURL(s.Name, s.Artist), shared.YouTubeMusicSearchURL(s.Name, s.Artist))
	}

	return buf.Bytes(), nil
}

// RecommendationsToText renders recommendations as plain text cards
func RecommendationsToText(r Recommendations) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Recommendations for: %s\n", r.Seed)
	if r.Mood != "" {
		fmt.Fprintf(&buf, "Mood: %s\n", r.Mood)
	}
	fmt.Fprintf(&buf, "Songs: %d\n\n", len(r.Songs))

	for i, s := range r.Songs {
		buf.WriteString(Card(s, i+1))
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// RecommendationsToJSON renders recommendations as indented JSON
func RecommendationsToJSON(r Recommendations) ([]byte, error) {
	if r.Songs == nil {
		r.Songs = []models.Song{}
	}
	return shared.MarshalJSON(r, true)
}

// Export renders r in the given format.
func Export(r Recommendations, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return RecommendationsToCSV(r)
	case FormatMarkdown:
		return RecommendationsToMarkdown(r)
	case FormatText:
		return RecommendationsToText(r)
	default:
		return RecommendationsToJSON(r)
	}
}

// Card renders one song the way the recommendation list shows it. index is 1-based; 0 omits the number.
func Card(s models.Song, index int) string {
	var b strings.Builder

	if index > 0 {
		fmt.Fprintf(&b, "%d. %s\n", index, s.Name)
	} else {
		fmt.Fprintf(&b, "%s\n", s.Name)
	}
	fmt.Fprintf(&b, "   %s\n", s.ArtistOrDefault())
	fmt.Fprintf(&b, "   %s · %s", s.GenreOrDefault(), s.MoodOrDefault())
	if label := s.MatchLabel(); label != "" {
		fmt.Fprintf(&b, " · %s", label)
	}
	b.WriteString("\n")

	return b.String()
}

// WeatherToText renders a weather recommendation result
func WeatherToText(w *models.WeatherRecommendations) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", w.Weather.Summary())
	fmt.Fprintf(&b, "Mood: %s\n\n", w.Mood)
	for i, s := range w.Songs {
		b.WriteString(Card(s, i+1))
	}
	return b.String()
}

var whitespace = regexp.MustCompile(`\s+`)

// LyricsFilename returns lyrics-<theme>-<genre>.txt with the theme lowercased and spaces turned into dashes
func LyricsFilename(theme, genre string) string {
	theme = whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(theme)), "-")
	return fmt.Sprintf("lyrics-%s-%s.txt", theme, strings.TrimSpace(genre))
}

// SongFilename returns song-description-<unix millis>.txt
func SongFilename(t time.Time) string {
	return fmt.Sprintf("song-description-%d.txt", t.UnixMilli())
}

// RecommendationsFilename returns a file name for a seed's export, e.g. bohemian-rhapsody.csv
func RecommendationsFilename(seed string, f Format) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(seed), "-"), "-")
	if slug == "" {
		slug = "recommendations"
	}
	return slug + "." + f.Extension()
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// WriteFile writes data to name inside dir, creating dir when needed, and returns the full path
func WriteFile(dir, name string, data []byte) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}
