package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/songrec/internal/models"
)

// SongSearcher finds cached songs by substring.
type SongSearcher interface {
	Search(ctx context.Context, q string) ([]models.Song, error)
}

// SearchHandler serves /search-songs and /get-songs from the local song cache using the
// recommendation server's JSON shape, so clients can point at it unchanged.
type SearchHandler struct {
	searcher SongSearcher
	logger   *log.Logger
}

// NewSearchHandler creates a [SearchHandler].
func NewSearchHandler(searcher SongSearcher, logger *log.Logger) *SearchHandler {
	return &SearchHandler{searcher: searcher, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *SearchHandler) Routes() []string {
	return []string{"/search-songs", "/get-songs"}
}

func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := ""
	if r.URL.Path == "/search-songs" {
		q = r.URL.Query().Get("q")
	}

	songs, err := h.searcher.Search(r.Context(), q)
	if err != nil {
		h.logger.Error("song cache search failed", "query", q, "err", err)
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	names := make([]string, len(songs))
	for i, s := range songs {
		names[i] = s.Name
	}
	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "songs": names})
}

// UnavailableHandler answers server-only endpoints with 503 while running offline.
type UnavailableHandler struct{}

// Routes returns the endpoints that need the real recommendation server.
func (UnavailableHandler) Routes() []string {
	return []string{"/recommend", "/weather-recommend", "/generate-lyrics", "/generate-song"}
}

func (UnavailableHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusServiceUnavailable, "not available in offline mode")
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError writes {"error": msg} with the given status.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

// NewOfflineRouter wires the offline search server: song cache search, 503 for
// server-only endpoints, JSON 404s, request logging and panic recovery.
func NewOfflineRouter(searcher SongSearcher, logger *log.Logger) *BasicRouter {
	router := NewBasicRouter()
	router.Use(Recover(logger), Logging(logger))
	router.Handler(NewSearchHandler(searcher, logger))
	router.Handler(UnavailableHandler{})
	router.NotFound()
	return router
}
