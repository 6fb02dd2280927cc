package testing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/songrec/internal/models"
)

// FakeServer imitates the recommendation server's JSON API over a fixed catalog.
type FakeServer struct {
	*httptest.Server

	Songs   []models.Song
	Weather models.Weather
	Mood    string

	mu     sync.Mutex
	calls  map[string]int
	status map[string]int
}

// NewFakeServer starts a [FakeServer] that is closed when the test ends.
func NewFakeServer(t *testing.T, songs []models.Song) *FakeServer {
	t.Helper()

	f := &FakeServer{
		Songs:   songs,
		Weather: models.Weather{City: "Testville", Temperature: 21.4, FeelsLike: 20.6, Humidity: 40, Condition: "Clear", Description: "clear sky"},
		Mood:    "happy",
		calls:   make(map[string]int),
		status:  make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /search-songs", f.searchSongs)
	mux.HandleFunc("GET /get-songs", f.getSongs)
	mux.HandleFunc("POST /recommend", f.recommend)
	mux.HandleFunc("POST /weather-recommend", f.weatherRecommend)
	mux.HandleFunc("POST /generate-lyrics", f.generateLyrics)
	mux.HandleFunc("POST /generate-song", f.generateSong)

	f.Server = httptest.NewServer(f.track(mux))
	t.Cleanup(f.Close)
	return f
}

// FailWith makes every request to path answer with status and an error body.
func (f *FakeServer) FailWith(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[path] = status
}

// Calls returns how many requests reached path.
func (f *FakeServer) Calls(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *FakeServer) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls[r.URL.Path]++
		status, fail := f.status[r.URL.Path]
		f.mu.Unlock()

		if fail {
			writeJSON(w, status, map[string]any{"error": fmt.Sprintf("forced failure (%d)", status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeServer) names() []string {
	names := make([]string, len(f.Songs))
	for i, s := range f.Songs {
		names[i] = s.Name
	}
	return names
}

func (f *FakeServer) searchSongs(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))
	songs := []string{}
	for _, name := range f.names() {
		if strings.Contains(strings.ToLower(name), q) {
			songs = append(songs, name)
		}
		if len(songs) == 50 {
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "songs": songs})
}

func (f *FakeServer) getSongs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "songs": f.names()})
}

func (f *FakeServer) recommend(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SongName string `json:"song_name"`
	}
	json.NewDecoder(r.Body).Decode(&body)

	found := false
	recs := []models.Song{}
	for i, s := range f.Songs {
		if strings.EqualFold(s.Name, body.SongName) {
			found = true
			continue
		}
		s.Similarity = 1 - float64(i+1)/float64(len(f.Songs)+1)
		recs = append(recs, s)
	}

	if !found || len(recs) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Song not found or no recommendations available"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "recommendations": recs})
}

func (f *FakeServer) weatherRecommend(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"weather":         f.Weather,
		"mood":            f.Mood,
		"recommendations": f.Songs,
	})
}

func (f *FakeServer) generateLyrics(w http.ResponseWriter, r *http.Request) {
	var req models.LyricsRequest
	json.NewDecoder(r.Body).Decode(&req)
	if req.Theme == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Theme is required"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"lyrics":   fmt.Sprintf("[Verse 1]\nA %s %s song about %s", req.Mood, req.Genre, req.Theme),
		"theme":    req.Theme,
		"genre":    req.Genre,
		"mood":     req.Mood,
		"language": req.Language,
	})
}

func (f *FakeServer) generateSong(w http.ResponseWriter, r *http.Request) {
	var req models.SongRequest
	json.NewDecoder(r.Body).Decode(&req)
	if req.Prompt == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Prompt is required"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"song_description": fmt.Sprintf("A %s tempo track: %s", req.Tempo, req.Prompt),
		"prompt":           req.Prompt,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Catalog is a small song list shared by tests.
func Catalog() []models.Song {
	return []models.Song{
		{Name: "Bohemian Rhapsody", Artist: "Queen", Genre: "Rock", Mood: "Epic"},
		{Name: "Blinding Lights", Artist: "The Weeknd", Genre: "Pop", Mood: "Energetic"},
		{Name: "Clair de Lune", Artist: "Debussy", Genre: "Classical", Mood: "Calm"},
		{Name: "Don't Stop Me Now", Artist: "Queen", Genre: "Rock", Mood: "Happy"},
		{Name: "Lose Yourself", Artist: "Eminem", Genre: "Hip-Hop", Mood: "Intense"},
	}
}
